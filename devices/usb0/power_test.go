// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0_test

import (
	"reflect"
	"testing"

	"periph.io/x/efm8/conn/sfr/sfrtest"
	"periph.io/x/efm8/devices/usb0"
)

func TestNoSFR(t *testing.T) {
	d, _ := newDev(t)
	if _, err := d.GetInterruptsEnabled(); err != usb0.ErrNoSFR {
		t.Fatal(err)
	}
	if err := d.EnableInterrupts(); err != usb0.ErrNoSFR {
		t.Fatal(err)
	}
	if err := d.DisableInterrupts(); err != usb0.ErrNoSFR {
		t.Fatal(err)
	}
	if _, err := d.IsRegulatorEnabled(); err != usb0.ErrNoSFR {
		t.Fatal(err)
	}
	if err := d.SuspendOscillator(); err != usb0.ErrNoSFR {
		t.Fatal(err)
	}
	if err := d.InitCore(nil); err != usb0.ErrNoSFR {
		t.Fatal(err)
	}
}

func TestInterruptsEnabled(t *testing.T) {
	s, _ := newSpace()
	d, err := usb0.NewSFR(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Regs[usb0.SFREIE1] = 0x08
	if ok, err := d.GetInterruptsEnabled(); err != nil || ok {
		t.Fatalf("GetInterruptsEnabled() = %t, %v", ok, err)
	}
	if err := d.EnableInterrupts(); err != nil {
		t.Fatal(err)
	}
	if v := s.Regs[usb0.SFREIE1]; v != 0x0A {
		t.Fatalf("EIE1 = %#02x", v)
	}
	if ok, err := d.GetInterruptsEnabled(); err != nil || !ok {
		t.Fatalf("GetInterruptsEnabled() = %t, %v", ok, err)
	}
	if err := d.DisableInterrupts(); err != nil {
		t.Fatal(err)
	}
	if v := s.Regs[usb0.SFREIE1]; v != 0x08 {
		t.Fatalf("EIE1 = %#02x", v)
	}
}

func TestIsRegulatorEnabled(t *testing.T) {
	s, _ := newSpace()
	d, err := usb0.NewSFR(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := d.IsRegulatorEnabled(); err != nil || !ok {
		t.Fatalf("IsRegulatorEnabled() = %t, %v", ok, err)
	}
	s.Regs[usb0.SFRREG01CN] = 0x80
	if ok, err := d.IsRegulatorEnabled(); err != nil || ok {
		t.Fatalf("IsRegulatorEnabled() = %t, %v", ok, err)
	}
}

func TestSuspendOscillator(t *testing.T) {
	s, _ := newSpace()
	clksel := uint8(0x82)
	reads := 0
	s.Map(usb0.SFRCLKSEL, sfrtest.Hook{
		OnRead: func() uint8 {
			reads++
			// The divider becomes ready on the third poll after the restore.
			if reads >= 4 {
				return clksel | 0x80
			}
			return clksel
		},
		OnWrite: func(v uint8) { clksel = v },
	})
	d, err := usb0.NewSFR(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SuspendOscillator(); err != nil {
		t.Fatal(err)
	}
	if w := s.Writes(usb0.SFROSCICN); !reflect.DeepEqual(w, []uint8{0x20}) {
		t.Fatalf("OSCICN writes = %v", w)
	}
	if w := s.Writes(usb0.SFRCLKSEL); !reflect.DeepEqual(w, []uint8{0x02}) {
		t.Fatalf("CLKSEL writes = %v", w)
	}
}

func TestSuspendOscillator_timeout(t *testing.T) {
	s, _ := newSpace()
	reads := 0
	s.Map(usb0.SFRCLKSEL, sfrtest.Hook{
		OnRead: func() uint8 {
			reads++
			return 0x02
		},
	})
	d, err := usb0.NewSFR(s, &usb0.Opts{MaxPolls: 4})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SuspendOscillator(); err != usb0.ErrTimeout {
		t.Fatalf("SuspendOscillator() = %v", err)
	}
	if reads != 5 {
		t.Fatalf("%d CLKSEL reads; want the save plus 4 polls", reads)
	}
}

func TestInitCore(t *testing.T) {
	s, c := newSpace()
	d, err := usb0.NewSFR(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.InitCore(nil); err != nil {
		t.Fatal(err)
	}
	want := [][2]uint8{
		{usb0.RegPOWER, 0x08},
		{usb0.RegIN1IE, 0x03},
		{usb0.RegOUT1IE, 0x02},
		{usb0.RegCMIE, 0x07},
		{usb0.RegCLKREC, 0x89},
		{usb0.RegPOWER, 0x01},
	}
	if w := c.Writes(); !reflect.DeepEqual(w, want) {
		t.Fatalf("writes = %x; want %x", w, want)
	}
	if v := s.Regs[usb0.SFRUSB0XCN]; v != 0xE0 {
		t.Fatalf("USB0XCN = %#02x", v)
	}
	if v := s.Regs[usb0.SFREIE1]; v != 0x02 {
		t.Fatalf("EIE1 = %#02x", v)
	}
}

func TestInitCore_lowSpeed(t *testing.T) {
	s, c := newSpace()
	d, err := usb0.NewSFR(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := usb0.DefaultCoreConfig
	cfg.Speed = usb0.LowSpeed
	if err := d.InitCore(&cfg); err != nil {
		t.Fatal(err)
	}
	if v := s.Regs[usb0.SFRUSB0XCN]; v != 0xC0 {
		t.Fatalf("USB0XCN = %#02x", v)
	}
	if v := c.Reg(usb0.RegCLKREC); v != 0xA9 {
		t.Fatalf("CLKREC = %#02x", v)
	}
}

func TestSetAddress(t *testing.T) {
	d, c := newDev(t)
	if err := d.SetAddress(0x2A); err != nil {
		t.Fatal(err)
	}
	if v := c.Reg(usb0.RegFADDR); v != 0x2A {
		t.Fatalf("FADDR = %#02x", v)
	}
	if err := d.SetAddress(0x80); err == nil {
		t.Fatal("expected error")
	}
}

func TestResume(t *testing.T) {
	d, c := newDev(t)
	if err := d.Resume(true); err != nil {
		t.Fatal(err)
	}
	if err := d.Resume(false); err != nil {
		t.Fatal(err)
	}
	want := [][2]uint8{{usb0.RegPOWER, 0x05}, {usb0.RegPOWER, 0x01}}
	if w := c.Writes(); !reflect.DeepEqual(w, want) {
		t.Fatalf("writes = %x; want %x", w, want)
	}
}
