// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sfr defines access to the 8-bit special function registers of a
// 8051 class microcontroller.
//
// The SFR space spans addresses 0x80 to 0xFF. On the host side it is reached
// through a bridge, either a USB device (see periph.io/x/efm8/hostextra/usbbridge)
// or any periph conn.Conn via MMR.
package sfr

import (
	"encoding/binary"
	"errors"
	"fmt"

	"periph.io/x/periph/conn"
	"periph.io/x/periph/conn/mmr"
)

// Bus is an 8-bit special function register space.
//
// Each call must map to exactly one bus transaction on the target.
type Bus interface {
	ReadSFR(addr uint8) (uint8, error)
	WriteSFR(addr, v uint8) error
}

// MMR is a Bus over a memory mapped register device, where the register
// address is the SFR address.
//
// This is the layout used by I²C and SPI SFR bridges.
type MMR struct {
	d mmr.Dev8
}

// NewMMR returns a Bus that uses c for each access.
func NewMMR(c conn.Conn) (*MMR, error) {
	if c == nil {
		return nil, errors.New("sfr: nil connection")
	}
	return &MMR{d: mmr.Dev8{Conn: c, Order: binary.BigEndian}}, nil
}

func (m *MMR) String() string {
	return fmt.Sprintf("sfr.MMR(%s)", m.d.Conn)
}

// ReadSFR implements Bus.
func (m *MMR) ReadSFR(addr uint8) (uint8, error) {
	v, err := m.d.ReadUint8(addr)
	if err != nil {
		return 0, fmt.Errorf("sfr: read %#02x: %v", addr, err)
	}
	return v, nil
}

// WriteSFR implements Bus.
func (m *MMR) WriteSFR(addr, v uint8) error {
	if err := m.d.WriteUint8(addr, v); err != nil {
		return fmt.Errorf("sfr: write %#02x: %v", addr, err)
	}
	return nil
}

// Update does a read-modify-write of a single register: bits in clear are
// cleared first, then bits in set are set.
//
// It is not atomic with respect to the target's own code.
func Update(b Bus, addr, clear, set uint8) (old uint8, err error) {
	if old, err = b.ReadSFR(addr); err != nil {
		return 0, err
	}
	return old, b.WriteSFR(addr, old&^clear|set)
}

var _ Bus = &MMR{}
