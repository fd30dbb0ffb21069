// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0_test

import (
	"errors"
	"reflect"
	"testing"

	"periph.io/x/efm8/conn/sfr/sfrtest"
	"periph.io/x/efm8/devices/usb0"
)

func TestNewSFRWindow(t *testing.T) {
	if _, err := usb0.NewSFRWindow(nil, 0); err == nil {
		t.Fatal("expected error on nil bus")
	}
	if _, err := usb0.NewSFRWindow(&sfrtest.Space{}, -1); err == nil {
		t.Fatal("expected error on negative polls")
	}
}

func TestSFRWindow_read(t *testing.T) {
	s, c := newSpace()
	c.Busy = 1
	c.SetReg(usb0.RegINDEX, 2)
	d, err := usb0.NewSFR(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	v, err := d.ReadUint8(usb0.RegINDEX)
	if err != nil {
		t.Fatal(err)
	}
	if v != 2 {
		t.Fatalf("ReadUint8() = %d", v)
	}
	want := []sfrtest.Access{
		{Addr: 0x96, Value: 0x00},
		{Write: true, Addr: 0x96, Value: 0x8E},
		{Addr: 0x96, Value: 0x8E},
		{Addr: 0x96, Value: 0x0E},
		{Addr: 0x97, Value: 0x02},
	}
	if !reflect.DeepEqual(s.Log, want) {
		t.Fatalf("accesses = %v; want %v", s.Log, want)
	}
}

func TestSFRWindow_write(t *testing.T) {
	s, c := newSpace()
	d, err := usb0.NewSFR(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.WriteUint8(usb0.RegFADDR, 0x05); err != nil {
		t.Fatal(err)
	}
	want := []sfrtest.Access{
		{Addr: 0x96, Value: 0x00},
		{Write: true, Addr: 0x96, Value: 0x00},
		{Write: true, Addr: 0x97, Value: 0x05},
		{Addr: 0x96, Value: 0x00},
	}
	if !reflect.DeepEqual(s.Log, want) {
		t.Fatalf("accesses = %v; want %v", s.Log, want)
	}
	if v := c.Reg(usb0.RegFADDR); v != 0x05 {
		t.Fatalf("FADDR = %#02x", v)
	}
}

func TestSFRWindow_timeout(t *testing.T) {
	s, c := newSpace()
	c.Busy = -1
	d, err := usb0.NewSFR(s, &usb0.Opts{MaxPolls: 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.ReadUint8(usb0.RegPOWER); err != usb0.ErrTimeout {
		t.Fatalf("ReadUint8() = %v", err)
	}
	// One poll before the address write, then 3 failing ones.
	polls := 0
	for _, a := range s.Log {
		if !a.Write && a.Addr == usb0.SFRUSB0ADR {
			polls++
		}
	}
	if polls != 4 {
		t.Fatalf("%d polls", polls)
	}
	// BUSY is stuck, even the first poll of the next access fails.
	if err := d.WriteUint8(usb0.RegPOWER, 1); err != usb0.ErrTimeout {
		t.Fatalf("WriteUint8() = %v", err)
	}
}

func TestSFRWindow_err(t *testing.T) {
	s := &sfrtest.Space{Err: errors.New("nak")}
	w, err := usb0.NewSFRWindow(s, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteAddr(0, true); err != s.Err {
		t.Fatal(err)
	}
	if _, err := w.ReadData(); err != s.Err {
		t.Fatal(err)
	}
	if err := w.WriteData(0); err != s.Err {
		t.Fatal(err)
	}
}
