// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0_test

import (
	"context"
	"testing"
	"time"

	"periph.io/x/efm8/devices/usb0"
)

func TestInterrupts(t *testing.T) {
	d, c := newDev(t)
	c.SetReg(usb0.RegCMINT, usb0.IntReset)
	c.SetReg(usb0.RegIN1INT, usb0.IntEP0)
	c.SetReg(usb0.RegOUT1INT, usb0.IntEP1)
	e, err := d.Interrupts()
	if err != nil {
		t.Fatal(err)
	}
	want := usb0.Event{Common: usb0.IntReset, In: usb0.IntEP0, Out: usb0.IntEP1}
	if e != want {
		t.Fatalf("Interrupts() = %+v; want %+v", e, want)
	}
	order := []uint8{usb0.RegCMINT, usb0.RegIN1INT, usb0.RegOUT1INT}
	for i, addr := range order {
		if v := c.Log[2*i].Value; v != addr {
			t.Fatalf("read #%d at %#02x; want %#02x", i, v, addr)
		}
	}
	if e, err = d.Interrupts(); err != nil || e.Pending() {
		t.Fatalf("Interrupts() = %+v, %v; flags must clear on read", e, err)
	}
}

func TestPoll(t *testing.T) {
	d, c := newDev(t)
	c.SetReg(usb0.RegCMINT, usb0.IntSOF)
	ctx, cancel := context.WithCancel(context.Background())
	ch := d.Poll(ctx, time.Millisecond)
	select {
	case e := <-ch:
		if e.Common != usb0.IntSOF || e.In != 0 || e.Out != 0 {
			t.Fatalf("event = %+v", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event")
	}
	cancel()
	for range ch {
		t.Fatal("unexpected event")
	}
	if v := c.Reg(usb0.RegCMINT); v != 0 {
		t.Fatalf("CMINT = %#02x", v)
	}
}
