// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0

import (
	"context"
	"log"
	"time"
)

// Event is a snapshot of the interrupt flags of the core.
type Event struct {
	Common uint8 // IntSuspend, IntResume, IntReset, IntSOF
	In     uint8 // IntEP0 to IntEP3
	Out    uint8 // IntEP1 to IntEP3
}

// Pending returns true if any flag is set.
func (e Event) Pending() bool {
	return e.Common|e.In|e.Out != 0
}

// Interrupts reads, and thus clears, all the interrupt flags in one critical
// section.
//
// The order is the one used by an interrupt service routine: common, IN,
// then OUT.
func (d *Dev) Interrupts() (Event, error) {
	var e Event
	err := d.Critical(func() error {
		var err error
		if e.Common, err = d.GetCommonInterrupts(); err != nil {
			return err
		}
		if e.In, err = d.GetInInterrupts(); err != nil {
			return err
		}
		e.Out, err = d.GetOutInterrupts()
		return err
	})
	return e, err
}

// Poll reads the interrupt flags every period and sends each non-empty
// snapshot on the returned channel.
//
// The flags are cleared on read, so Poll must be the only reader of the
// interrupt registers while it runs. The channel is closed once ctx is
// done. Read errors are logged and polling continues.
func (d *Dev) Poll(ctx context.Context, every time.Duration) <-chan Event {
	c := make(chan Event)
	go func() {
		defer close(c)
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			e, err := d.Interrupts()
			if err != nil {
				log.Printf("usb0: poll: %v", err)
				continue
			}
			if !e.Pending() {
				continue
			}
			select {
			case c <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	return c
}
