// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0_test

import (
	"testing"

	"periph.io/x/efm8/devices/usb0"
	"periph.io/x/efm8/devices/usb0/usb0test"
)

func TestFlags(t *testing.T) {
	data := []struct {
		name string
		f    func(d *usb0.Dev) (bool, error)
		ep   uint8
		reg  uint8
		mask uint8
	}{
		{"IsSuspended", (*usb0.Dev).IsSuspended, 0, usb0.RegPOWER, 0x02},
		{"GetSetupEnd", (*usb0.Dev).GetSetupEnd, 0, usb0.RegE0CSR, 0x10},
		{"Ep0SentStall", (*usb0.Dev).Ep0SentStall, 0, usb0.RegE0CSR, 0x04},
		{"Ep0OutPacketReady", (*usb0.Dev).Ep0OutPacketReady, 0, usb0.RegE0CSR, 0x01},
		{"Ep0InPacketReady", (*usb0.Dev).Ep0InPacketReady, 0, usb0.RegE0CSR, 0x02},
		{"EpnInGetSentStall", (*usb0.Dev).EpnInGetSentStall, 1, usb0.RegEINCSRL, 0x20},
		{"EpnOutGetSentStall", (*usb0.Dev).EpnOutGetSentStall, 2, usb0.RegEOUTCSRL, 0x40},
		{"EpnGetOutPacketReady", (*usb0.Dev).EpnGetOutPacketReady, 3, usb0.RegEOUTCSRL, 0x01},
		{"EpnGetDataError", (*usb0.Dev).EpnGetDataError, 1, usb0.RegEOUTCSRL, 0x08},
	}
	for _, line := range data {
		for _, set := range []bool{false, true} {
			d, c := newDev(t)
			if err := d.SetIndex(line.ep); err != nil {
				t.Fatal(err)
			}
			// Set every other bit so only the mask matters.
			v := ^line.mask
			if set {
				v = line.mask
			}
			c.SetReg(line.reg, v)
			c.Reset()
			got, err := line.f(d)
			if err != nil {
				t.Fatal(err)
			}
			if got != set {
				t.Fatalf("%s() = %t; want %t", line.name, got, set)
			}
			if len(c.Log) != 2 || c.Log[0].Kind != usb0test.Addr || c.Log[0].Value != line.reg {
				t.Fatalf("%s() ops = %v", line.name, c.Log)
			}
		}
	}
}

func TestInterruptFlags(t *testing.T) {
	data := []struct {
		name string
		f    func(d *usb0.Dev) (uint8, error)
		reg  uint8
	}{
		{"GetCommonInterrupts", (*usb0.Dev).GetCommonInterrupts, usb0.RegCMINT},
		{"GetInInterrupts", (*usb0.Dev).GetInInterrupts, usb0.RegIN1INT},
		{"GetOutInterrupts", (*usb0.Dev).GetOutInterrupts, usb0.RegOUT1INT},
	}
	for _, line := range data {
		d, c := newDev(t)
		c.SetReg(line.reg, 0x05)
		v, err := line.f(d)
		if err != nil {
			t.Fatal(err)
		}
		if v != 0x05 {
			t.Fatalf("%s() = %#02x", line.name, v)
		}
		// Clear on read.
		if v, err = line.f(d); err != nil || v != 0 {
			t.Fatalf("%s() = %#02x, %v on second read", line.name, v, err)
		}
	}
}

func TestEp0GetCount(t *testing.T) {
	d, c := newDev(t)
	c.SetEPReg(0, usb0.RegE0CNT, 8)
	n, err := d.Ep0GetCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Fatalf("Ep0GetCount() = %d", n)
	}
}

func TestEpOutGetCount(t *testing.T) {
	d, c := newDev(t)
	c.SetEPReg(1, usb0.RegEOUTCNTH, 0x01)
	c.SetEPReg(1, usb0.RegEOUTCNTL, 0x40)
	if err := d.SetIndex(1); err != nil {
		t.Fatal(err)
	}
	n, err := d.EpOutGetCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0x140 {
		t.Fatalf("EpOutGetCount() = %#x", n)
	}
}

func TestGetSofNumber(t *testing.T) {
	d, c := newDev(t)
	c.SetReg(usb0.RegFRAMEH, 0x05)
	c.SetReg(usb0.RegFRAMEL, 0xDC)
	n, err := d.GetSofNumber()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1500 {
		t.Fatalf("GetSofNumber() = %d", n)
	}
	if c.Log[0].Value != usb0.RegFRAMEH || c.Log[2].Value != usb0.RegFRAMEL {
		t.Fatalf("ops = %v", c.Log)
	}
}
