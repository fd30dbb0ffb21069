// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package usb0test is meant to be used to test drivers over a simulated
// USB0 core.
package usb0test

import (
	"fmt"
	"sync"

	"periph.io/x/efm8/conn/sfr/sfrtest"
	"periph.io/x/efm8/devices/usb0"
)

// Kind is the kind of window access.
type Kind uint8

const (
	Addr      Kind = iota // Address register write
	ReadData              // Data register read
	WriteData             // Data register write
)

// Op is one recorded window access.
type Op struct {
	Kind  Kind
	Value uint8 // Address for Addr, data otherwise
	Read  bool  // Read intent, for Addr only
}

func (o Op) String() string {
	switch o.Kind {
	case Addr:
		if o.Read {
			return fmt.Sprintf("A %#02x r", o.Value)
		}
		return fmt.Sprintf("A %#02x w", o.Value)
	case ReadData:
		return fmt.Sprintf("R %#02x", o.Value)
	default:
		return fmt.Sprintf("W %#02x", o.Value)
	}
}

// Core simulates the USB0 core register file.
//
// Endpoint registers 0x11 to 0x17 are banked per endpoint and selected by
// INDEX. IN1INT, OUT1INT and CMINT are cleared on read. Each endpoint
// direction holds up to two queued packets; a FLUSH write drops one.
//
// It implements usb0.Window.
type Core struct {
	sync.Mutex
	// Regs holds the registers that are not banked.
	Regs [0x40]uint8
	// EP holds the banked registers, EP[n][addr-0x11].
	EP [usb0.NumEndpoints][7]uint8
	// Log is every window access, in order.
	Log []Op
	// Busy is the number of USB0ADR reads that report BUSY after each
	// access, when accessed through MapSFR. -1 means BUSY never clears.
	Busy int

	queued  [usb0.NumEndpoints][2]int // [ep][0=OUT, 1=IN]
	addr    uint8
	data    uint8
	pending int
}

// WriteAddr implements usb0.Window.
func (c *Core) WriteAddr(addr uint8, read bool) error {
	c.Lock()
	defer c.Unlock()
	c.Log = append(c.Log, Op{Kind: Addr, Value: addr, Read: read})
	c.addr = addr & 0x3F
	if read {
		c.data = c.get(c.addr)
		switch c.addr {
		case usb0.RegIN1INT, usb0.RegOUT1INT, usb0.RegCMINT:
			c.Regs[c.addr] = 0
		}
	}
	c.pending = c.Busy
	return nil
}

// ReadData implements usb0.Window.
func (c *Core) ReadData() (uint8, error) {
	c.Lock()
	defer c.Unlock()
	c.Log = append(c.Log, Op{Kind: ReadData, Value: c.data})
	return c.data, nil
}

// WriteData implements usb0.Window.
func (c *Core) WriteData(v uint8) error {
	c.Lock()
	defer c.Unlock()
	c.Log = append(c.Log, Op{Kind: WriteData, Value: v})
	c.set(c.addr, v)
	c.pending = c.Busy
	return nil
}

// MapSFR exposes the core on s through USB0ADR and USB0DAT, so a
// usb0.SFRWindow over s drives it.
func (c *Core) MapSFR(s *sfrtest.Space) {
	s.Map(usb0.SFRUSB0ADR, sfrtest.Hook{
		OnRead: func() uint8 {
			c.Lock()
			defer c.Unlock()
			v := c.addr
			if c.pending != 0 {
				v |= 0x80
				if c.pending > 0 {
					c.pending--
				}
			}
			return v
		},
		OnWrite: func(v uint8) {
			_ = c.WriteAddr(v&0x3F, v&0x80 != 0)
		},
	})
	s.Map(usb0.SFRUSB0DAT, sfrtest.Hook{
		OnRead: func() uint8 {
			v, _ := c.ReadData()
			return v
		},
		OnWrite: func(v uint8) {
			_ = c.WriteData(v)
		},
	})
}

// Reg returns the value of register addr as seen with the current INDEX,
// without side effect.
func (c *Core) Reg(addr uint8) uint8 {
	c.Lock()
	defer c.Unlock()
	return c.get(addr)
}

// EPReg returns the banked register addr of endpoint ep.
func (c *Core) EPReg(ep, addr uint8) uint8 {
	c.Lock()
	defer c.Unlock()
	return c.EP[ep][addr-usb0.RegEINCSRL]
}

// SetReg sets register addr as seen with the current INDEX, without side
// effect.
func (c *Core) SetReg(addr, v uint8) {
	c.Lock()
	defer c.Unlock()
	if isBanked(addr) {
		c.EP[c.index()][addr-usb0.RegEINCSRL] = v
		return
	}
	c.Regs[addr] = v
}

// SetEPReg sets the banked register addr of endpoint ep.
func (c *Core) SetEPReg(ep, addr, v uint8) {
	c.Lock()
	defer c.Unlock()
	c.EP[ep][addr-usb0.RegEINCSRL] = v
}

// Queue adds n packets to the FIFO of endpoint ep, up to one per buffer
// half, as if the host sent them (OUT) or the firmware loaded them (IN).
func (c *Core) Queue(ep uint8, in bool, n int) {
	c.Lock()
	defer c.Unlock()
	q := &c.queued[ep][dirIndex(in)]
	if *q += n; *q > 2 {
		*q = 2
	}
	c.refresh(ep)
}

// Queued returns the number of packets held by the FIFO of endpoint ep.
func (c *Core) Queued(ep uint8, in bool) int {
	c.Lock()
	defer c.Unlock()
	return c.queued[ep][dirIndex(in)]
}

// Writes returns the data writes, as address and value pairs, in order.
func (c *Core) Writes() [][2]uint8 {
	c.Lock()
	defer c.Unlock()
	var out [][2]uint8
	var addr uint8
	for _, o := range c.Log {
		switch o.Kind {
		case Addr:
			addr = o.Value
		case WriteData:
			out = append(out, [2]uint8{addr, o.Value})
		}
	}
	return out
}

// Reset clears the access log.
func (c *Core) Reset() {
	c.Lock()
	defer c.Unlock()
	c.Log = nil
}

//

func (c *Core) index() uint8 {
	return c.Regs[usb0.RegINDEX] % usb0.NumEndpoints
}

func isBanked(addr uint8) bool {
	return addr >= usb0.RegEINCSRL && addr <= usb0.RegEOUTCNTH
}

func dirIndex(in bool) int {
	if in {
		return 1
	}
	return 0
}

func (c *Core) get(addr uint8) uint8 {
	if isBanked(addr) {
		return c.EP[c.index()][addr-usb0.RegEINCSRL]
	}
	return c.Regs[addr]
}

// set applies a data write with the side effects of the hardware.
func (c *Core) set(addr, v uint8) {
	ep := c.index()
	switch {
	case addr == usb0.RegINDEX:
		c.Regs[addr] = v & 0x0F
	case addr == usb0.RegE0CSR && ep == 0:
		r := &c.EP[0][0]
		if v&0x80 != 0 { // SSUEND
			*r &^= 0x10
		}
		if v&0x40 != 0 { // SOPRDY
			*r &^= 0x01
		}
		// INPRDY, DATAEND and SDSTL are set by writing 1; STSTL is cleared
		// by writing 0.
		*r = *r&^0x2E | v&0x2E
	case addr == usb0.RegEINCSRL:
		if v&0x08 != 0 && c.queued[ep][1] > 0 { // FLUSH
			c.queued[ep][1]--
		}
		// FLUSH and CLRDT are write only; FIFONE is read only.
		c.EP[ep][0] = v &^ 0x4A
		c.refresh(ep)
	case addr == usb0.RegEOUTCSRL:
		if v&0x10 != 0 && c.queued[ep][0] > 0 { // FLUSH
			c.queued[ep][0]--
		}
		// FLUSH and CLRDT are write only; OPRDY and FIFOFUL are read only.
		c.EP[ep][addr-usb0.RegEINCSRL] = v &^ 0x93
		c.refresh(ep)
	case isBanked(addr):
		c.EP[ep][addr-usb0.RegEINCSRL] = v
	default:
		c.Regs[addr] = v
	}
}

// refresh recomputes the FIFO status bits of endpoint ep from its queues.
func (c *Core) refresh(ep uint8) {
	if ep == 0 {
		return
	}
	in := &c.EP[ep][0]
	*in &^= 0x02
	if c.queued[ep][1] > 0 {
		*in |= 0x02 // FIFONE
	}
	out := &c.EP[ep][usb0.RegEOUTCSRL-usb0.RegEINCSRL]
	*out &^= 0x03
	if c.queued[ep][0] > 0 {
		*out |= 0x01 // OPRDY
	}
	if c.queued[ep][0] == 2 {
		*out |= 0x02 // FIFOFUL
	}
}

var _ usb0.Window = &Core{}
