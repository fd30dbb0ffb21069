// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usbbridge

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"periph.io/x/efm8/conn/sfr"
	"periph.io/x/periph/conn"
)

// IDs of the bridge firmware.
const (
	VenID = 0x10C4 // Silicon Labs
	DevID = 0x8A5F
)

const (
	reqReadSFR  = 0x01
	reqWriteSFR = 0x02

	// bmRequestType: vendor, device recipient.
	vendorIn  = 0xC0
	vendorOut = 0x40
)

// Desc describes a bridge on a USB bus.
type Desc struct {
	// ID is "bus:addr" or the OS specific instance path.
	ID     string
	Bus    int
	Addr   int
	Serial string
}

func (d *Desc) String() string {
	if d.Serial != "" {
		return d.ID + "(" + d.Serial + ")"
	}
	return d.ID
}

// handle is the part of *gousb.Device used by Dev.
type handle interface {
	Control(rType, request uint8, val, idx uint16, data []byte) (int, error)
	Close() error
}

// Dev is an open bridge.
//
// It implements sfr.Bus. It is safe for concurrent use; each access is a
// single control transfer.
type Dev struct {
	desc Desc

	mu     sync.Mutex
	h      handle
	closed bool
}

func newDev(desc Desc, h handle) *Dev {
	return &Dev{desc: desc, h: h}
}

func (d *Dev) String() string {
	return "usbbridge(" + d.desc.String() + ")"
}

// Desc returns the description of the bridge.
func (d *Dev) Desc() Desc {
	return d.desc
}

// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	return nil
}

// Close closes the USB handle.
func (d *Dev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errors.New("usbbridge: already closed")
	}
	d.closed = true
	return d.h.Close()
}

// ReadSFR implements sfr.Bus.
func (d *Dev) ReadSFR(addr uint8) (uint8, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, errors.New("usbbridge: closed")
	}
	var b [1]byte
	n, err := d.h.Control(vendorIn, reqReadSFR, 0, uint16(addr), b[:])
	if err != nil {
		return 0, fmt.Errorf("usbbridge: read %#02x: %v", addr, err)
	}
	if n != 1 {
		return 0, errors.New("usbbridge: read " + strconv.Itoa(n) + " bytes, expected 1")
	}
	return b[0], nil
}

// WriteSFR implements sfr.Bus.
func (d *Dev) WriteSFR(addr, v uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errors.New("usbbridge: closed")
	}
	if _, err := d.h.Control(vendorOut, reqWriteSFR, uint16(v), uint16(addr), nil); err != nil {
		return fmt.Errorf("usbbridge: write %#02x: %v", addr, err)
	}
	return nil
}

var _ sfr.Bus = &Dev{}
var _ conn.Resource = &Dev{}
