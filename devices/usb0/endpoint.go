// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0

import "fmt"

// Dir is the direction of an endpoint, from the host's point of view.
type Dir bool

const (
	Out Dir = false // Host to device
	In  Dir = true  // Device to host
)

func (d Dir) String() string {
	if d {
		return "IN"
	}
	return "OUT"
}

// FIFOSize returns the FIFO capacity in bytes available to one buffer half
// of endpoint ep.
//
// In split mode the endpoint's FIFO is shared between both directions so
// each gets half of it.
func FIFOSize(ep uint8, split bool) int {
	if split {
		return 16 << ep
	}
	return 32 << ep
}

// SetIndex selects the endpoint whose control and status registers are
// visible at the endpoint register addresses.
//
// All the Ep* accessors and stall helpers work on the selected endpoint.
func (d *Dev) SetIndex(ep uint8) error {
	if err := checkEP(ep); err != nil {
		return err
	}
	return d.WriteUint8(RegINDEX, ep)
}

// ActivateEndpoint configures endpoint ep.
//
// Double buffering is enabled when packetSize fits in FIFOSize(ep, split).
// A larger packetSize is accepted as-is and leaves double buffering
// disabled; validate the packet size against FIFOSize beforehand when this
// matters.
//
// The data toggle is reset. For an OUT endpoint that is not in split mode,
// the IN side of the endpoint is cleared since the OUT side then owns the
// whole FIFO.
func (d *Dev) ActivateEndpoint(ep uint8, packetSize uint16, dir Dir, split, iso bool) error {
	if err := d.SetIndex(ep); err != nil {
		return err
	}
	var mask uint8
	if int(packetSize) <= FIFOSize(ep, split) {
		mask |= inhDBIEN
	}
	if iso {
		mask |= inhISO
	}
	if dir == In {
		mask |= inhDIRSEL
		if split {
			mask |= inhSPLIT
		}
		if err := d.WriteUint8(RegEINCSRL, inCLRDT); err != nil {
			return err
		}
		return d.WriteUint8(RegEINCSRH, mask)
	}
	// inhDBIEN and inhISO have the same position as outhDBOEN and outhISO.
	if err := d.WriteUint8(RegEOUTCSRL, outCLRDT); err != nil {
		return err
	}
	if err := d.WriteUint8(RegEOUTCSRH, mask); err != nil {
		return err
	}
	if !split {
		return d.WriteUint8(RegEINCSRH, 0)
	}
	return nil
}

// AbortInEndpoint flushes both buffer halves of the IN endpoint ep.
//
// A flush only clears the buffer half currently exposed, so it is issued
// twice.
func (d *Dev) AbortInEndpoint(ep uint8) error {
	return d.abort(ep, RegEINCSRL, inFLUSH)
}

// AbortOutEndpoint flushes both buffer halves of the OUT endpoint ep.
func (d *Dev) AbortOutEndpoint(ep uint8) error {
	return d.abort(ep, RegEOUTCSRL, outFLUSH)
}

// AbortEndpoint calls AbortInEndpoint or AbortOutEndpoint.
func (d *Dev) AbortEndpoint(ep uint8, isIn bool) error {
	if isIn {
		return d.AbortInEndpoint(ep)
	}
	return d.AbortOutEndpoint(ep)
}

func (d *Dev) abort(ep, reg, flush uint8) error {
	if err := d.SetIndex(ep); err != nil {
		return err
	}
	if err := d.WriteUint8(reg, flush); err != nil {
		return err
	}
	return d.WriteUint8(reg, flush)
}

// Ep0SendStall makes endpoint 0 answer the current request with a STALL.
//
// Endpoint 0 must be selected.
func (d *Dev) Ep0SendStall() error {
	return d.WriteUint8(RegE0CSR, e0SDSTL)
}

// Ep0ClearSentStall acknowledges a sent STALL on endpoint 0.
func (d *Dev) Ep0ClearSentStall() error {
	return d.WriteUint8(RegE0CSR, 0)
}

// Ep0ServicedSetupEnd acknowledges a setup end condition on endpoint 0.
func (d *Dev) Ep0ServicedSetupEnd() error {
	return d.WriteUint8(RegE0CSR, e0SSUEND)
}

// Ep0ServicedOutPacketReady releases the OUT packet of endpoint 0. When last
// is true the data stage of the control transfer is also ended.
func (d *Dev) Ep0ServicedOutPacketReady(last bool) error {
	v := e0SOPRDY
	if last {
		v |= e0DATAEND
	}
	return d.WriteUint8(RegE0CSR, v)
}

// Ep0SetInPacketReady marks the endpoint 0 IN FIFO as loaded. When last is
// true the data stage of the control transfer is also ended.
func (d *Dev) Ep0SetInPacketReady(last bool) error {
	v := e0INPRDY
	if last {
		v |= e0DATAEND
	}
	return d.WriteUint8(RegE0CSR, v)
}

// EpnInStall halts the selected IN endpoint.
func (d *Dev) EpnInStall() error {
	return d.WriteUint8(RegEINCSRL, inSDSTL)
}

// EpnInEndStall resumes the selected IN endpoint and resets its data toggle.
func (d *Dev) EpnInEndStall() error {
	return d.WriteUint8(RegEINCSRL, inCLRDT)
}

// EpnInSetPacketReady marks the IN FIFO of the selected endpoint as loaded.
func (d *Dev) EpnInSetPacketReady() error {
	return d.WriteUint8(RegEINCSRL, inINPRDY)
}

// EpnInClearSentStall acknowledges a sent STALL on the selected IN endpoint.
func (d *Dev) EpnInClearSentStall() error {
	return d.WriteUint8(RegEINCSRL, 0)
}

// EpnOutStall halts the selected OUT endpoint.
func (d *Dev) EpnOutStall() error {
	return d.WriteUint8(RegEOUTCSRL, outSDSTL)
}

// EpnOutEndStall resumes the selected OUT endpoint and resets its data
// toggle.
func (d *Dev) EpnOutEndStall() error {
	return d.WriteUint8(RegEOUTCSRL, outCLRDT)
}

// EpnOutClearSentStall acknowledges a sent STALL on the selected OUT
// endpoint.
func (d *Dev) EpnOutClearSentStall() error {
	return d.WriteUint8(RegEOUTCSRL, 0)
}

// EpnOutClearPacketReady releases the OUT packet of the selected endpoint.
func (d *Dev) EpnOutClearPacketReady() error {
	return d.WriteUint8(RegEOUTCSRL, 0)
}

//

func checkEP(ep uint8) error {
	if ep >= NumEndpoints {
		return fmt.Errorf("usb0: invalid endpoint %d", ep)
	}
	return nil
}
