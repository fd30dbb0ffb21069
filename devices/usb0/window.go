// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0

import (
	"errors"
	"fmt"

	"periph.io/x/efm8/conn/sfr"
)

// ErrTimeout is returned when the hardware did not become ready within the
// allowed number of polls.
var ErrTimeout = errors.New("usb0: timed out waiting for hardware")

// Window is the two-register indirect access port of the USB0 core.
//
// Each method must map to exactly one access of the corresponding register.
// A WriteAddr must immediately precede the data access it targets; the
// window holds no lock, so at most one address/data sequence may be in
// flight.
type Window interface {
	// WriteAddr writes the address register. When read is true, the core
	// latches the addressed register into the data register.
	WriteAddr(addr uint8, read bool) error
	// ReadData reads the data register.
	ReadData() (uint8, error)
	// WriteData writes the data register, storing v in the register last
	// selected by WriteAddr.
	WriteData(v uint8) error
}

// DefaultMaxPolls is the number of BUSY polls before giving up.
//
// A transaction on the core completes in a few CPU cycles, much faster than
// any host bridge round trip, so the first poll normally succeeds.
const DefaultMaxPolls = 64

// SFRWindow is a Window over the USB0ADR and USB0DAT special function
// registers.
type SFRWindow struct {
	b        sfr.Bus
	maxPolls int
}

// NewSFRWindow returns a Window that accesses the core through b.
//
// maxPolls bounds every wait on the BUSY bit. 0 means DefaultMaxPolls.
func NewSFRWindow(b sfr.Bus, maxPolls int) (*SFRWindow, error) {
	if b == nil {
		return nil, errors.New("usb0: nil SFR bus")
	}
	if maxPolls < 0 {
		return nil, fmt.Errorf("usb0: invalid max polls %d", maxPolls)
	}
	if maxPolls == 0 {
		maxPolls = DefaultMaxPolls
	}
	return &SFRWindow{b: b, maxPolls: maxPolls}, nil
}

// WriteAddr implements Window.
//
// A read sets BUSY along with the address, which initiates the read; the
// data register is valid once BUSY clears.
func (s *SFRWindow) WriteAddr(addr uint8, read bool) error {
	if err := s.wait(); err != nil {
		return err
	}
	v := addr & adrMask
	if read {
		v |= adrBUSY
	}
	if err := s.b.WriteSFR(SFRUSB0ADR, v); err != nil {
		return err
	}
	if read {
		return s.wait()
	}
	return nil
}

// ReadData implements Window.
func (s *SFRWindow) ReadData() (uint8, error) {
	return s.b.ReadSFR(SFRUSB0DAT)
}

// WriteData implements Window.
func (s *SFRWindow) WriteData(v uint8) error {
	if err := s.b.WriteSFR(SFRUSB0DAT, v); err != nil {
		return err
	}
	return s.wait()
}

func (s *SFRWindow) wait() error {
	for i := 0; i < s.maxPolls; i++ {
		v, err := s.b.ReadSFR(SFRUSB0ADR)
		if err != nil {
			return err
		}
		if v&adrBUSY == 0 {
			return nil
		}
	}
	return ErrTimeout
}

var _ Window = &SFRWindow{}
