// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0

import (
	"errors"
	"sync"

	"periph.io/x/efm8/conn/sfr"
	"periph.io/x/periph/conn"
)

// ErrNoSFR is returned by operations that need direct SFR access when the
// Dev was created without one.
var ErrNoSFR = errors.New("usb0: no SFR bus available")

// Opts holds the configuration of a Dev.
type Opts struct {
	// SFR is the direct special function register space of the target. It is
	// optional; without it the power helpers return ErrNoSFR and Critical
	// cannot mask the USB0 interrupt.
	SFR sfr.Bus
	// MaxPolls bounds waits on hardware ready bits. 0 means DefaultMaxPolls.
	MaxPolls int
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{MaxPolls: DefaultMaxPolls}

// New returns a Dev that accesses the core through w.
func New(w Window, opts *Opts) (*Dev, error) {
	if w == nil {
		return nil, errors.New("usb0: nil window")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{w: w, sfr: opts.SFR, maxPolls: opts.MaxPolls}
	if d.maxPolls == 0 {
		d.maxPolls = DefaultMaxPolls
	}
	return d, nil
}

// NewSFR returns a Dev that reaches both the indirect window and the direct
// SFRs through b.
//
// opts.SFR is ignored.
func NewSFR(b sfr.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	w, err := NewSFRWindow(b, opts.MaxPolls)
	if err != nil {
		return nil, err
	}
	o := *opts
	o.SFR = b
	return New(w, &o)
}

// Dev is a handle to the USB0 function controller.
//
// Dev is not safe for concurrent use and its methods are not reentrant: the
// indirect window and the endpoint selected by SetIndex are shared state.
// Callers that share a Dev, or that need a consistent view across multiple
// reads, must group the calls inside Critical.
type Dev struct {
	w        Window
	sfr      sfr.Bus
	maxPolls int

	mu sync.Mutex
}

func (d *Dev) String() string {
	return "usb0"
}

// Halt implements conn.Resource.
//
// Every operation is synchronous so there is nothing to stop.
func (d *Dev) Halt() error {
	return nil
}

// ReadUint8 reads the core register addr.
//
// It writes the address register once, then reads the data register once.
func (d *Dev) ReadUint8(addr uint8) (uint8, error) {
	if err := d.w.WriteAddr(addr, true); err != nil {
		return 0, err
	}
	return d.w.ReadData()
}

// WriteUint8 writes v to the core register addr.
//
// It writes the address register once, then the data register once.
func (d *Dev) WriteUint8(addr, v uint8) error {
	if err := d.w.WriteAddr(addr, false); err != nil {
		return err
	}
	return d.w.WriteData(v)
}

// ReadUint16 reads a 16 bits register whose high byte is at addrHigh and
// low byte at addrHigh-1.
//
// The two bytes are read separately, high byte first. If the value can
// change in between, like the frame number, wrap the call in Critical and
// accept that the core itself may still advance; the read is not atomic.
func (d *Dev) ReadUint16(addrHigh uint8) (uint16, error) {
	h, err := d.ReadUint8(addrHigh)
	if err != nil {
		return 0, err
	}
	l, err := d.ReadUint8(addrHigh - 1)
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// Critical runs fn with exclusive access to the device.
//
// Concurrent callers of Critical are serialized. When an SFR bus is
// available the USB0 interrupt is masked on the target for the duration of
// fn, so the firmware's own ISR cannot touch the window either, and is
// restored on every exit path including a panic.
//
// fn must not call Critical.
func (d *Dev) Critical(fn func() error) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sfr != nil {
		old, uerr := sfr.Update(d.sfr, SFREIE1, eie1EUSB0, 0)
		if uerr != nil {
			return uerr
		}
		if old&eie1EUSB0 != 0 {
			defer func() {
				if _, err2 := sfr.Update(d.sfr, SFREIE1, 0, eie1EUSB0); err == nil {
					err = err2
				}
			}()
		}
	}
	return fn()
}

var _ conn.Resource = &Dev{}
