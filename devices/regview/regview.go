// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package regview renders 8 bit registers as rows of coloured bit blocks on a
// terminal using ANSI color codes.
//
// Each row shows the register name, its address, the 8 bits from MSB to LSB
// and the hexadecimal value.
package regview // import "periph.io/x/efm8/devices/regview"

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Reg is one register snapshot.
type Reg struct {
	Name  string
	Addr  uint8
	Value uint8
}

// Palette is the colors used for set and cleared bits.
type Palette struct {
	Set   color.NRGBA
	Clear color.NRGBA
}

// DefaultPalette is green for 1 and dark grey for 0.
var DefaultPalette = Palette{
	Set:   color.NRGBA{0, 200, 0, 255},
	Clear: color.NRGBA{40, 40, 40, 255},
}

// Dev is a register viewer that outputs to a terminal.
type Dev struct {
	w   io.Writer
	p   Palette
	buf bytes.Buffer
}

// New returns a Dev that renders to w.
//
// If p is nil, DefaultPalette is used.
func New(w io.Writer, p *Palette) *Dev {
	d := &Dev{w: w, p: DefaultPalette}
	if p != nil {
		d.p = *p
	}
	return d
}

// NewStdout returns a Dev that renders to the console, including Windows
// consoles.
func NewStdout() *Dev {
	return New(colorable.NewColorableStdout(), nil)
}

func (d *Dev) String() string {
	return "RegView"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

// Write renders one row per register.
func (d *Dev) Write(regs ...Reg) error {
	d.buf.Reset()
	for _, r := range regs {
		d.row(r)
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (d *Dev) row(r Reg) {
	fmt.Fprintf(&d.buf, "\033[0m%-9s %#02x ", r.Name, r.Addr)
	for i := 7; i >= 0; i-- {
		c := d.p.Clear
		if r.Value&(1<<uint(i)) != 0 {
			c = d.p.Set
		}
		_, _ = io.WriteString(&d.buf, ansi256.Default.Block(c))
	}
	fmt.Fprintf(&d.buf, "\033[0m %02X\n", r.Value)
}

var _ fmt.Stringer = &Dev{}
