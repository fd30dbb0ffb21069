// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0

// Each query below is a single register read; the result is only valid at
// the time of the read. Group queries inside Critical for a consistent view.

// GetCommonInterrupts returns the pending common interrupts (IntSuspend,
// IntResume, IntReset, IntSOF). Reading clears them.
func (d *Dev) GetCommonInterrupts() (uint8, error) {
	return d.ReadUint8(RegCMINT)
}

// GetInInterrupts returns the pending endpoint 0 and IN endpoint interrupts.
// Reading clears them.
func (d *Dev) GetInInterrupts() (uint8, error) {
	return d.ReadUint8(RegIN1INT)
}

// GetOutInterrupts returns the pending OUT endpoint interrupts. Reading
// clears them.
func (d *Dev) GetOutInterrupts() (uint8, error) {
	return d.ReadUint8(RegOUT1INT)
}

// GetIndex returns the selected endpoint.
func (d *Dev) GetIndex() (uint8, error) {
	return d.ReadUint8(RegINDEX)
}

// IsSuspended returns true when the bus is in suspend mode.
func (d *Dev) IsSuspended() (bool, error) {
	return d.test(RegPOWER, powerSUSMD)
}

// GetSetupEnd returns true when a control transfer ended before its data
// stage completed.
func (d *Dev) GetSetupEnd() (bool, error) {
	return d.test(RegE0CSR, e0SUEND)
}

// Ep0SentStall returns true when endpoint 0 sent a STALL.
func (d *Dev) Ep0SentStall() (bool, error) {
	return d.test(RegE0CSR, e0STSTL)
}

// Ep0OutPacketReady returns true when endpoint 0 received a packet.
func (d *Dev) Ep0OutPacketReady() (bool, error) {
	return d.test(RegE0CSR, e0OPRDY)
}

// Ep0InPacketReady returns true while the endpoint 0 IN packet has not been
// sent.
func (d *Dev) Ep0InPacketReady() (bool, error) {
	return d.test(RegE0CSR, e0INPRDY)
}

// Ep0GetCount returns the number of bytes in the endpoint 0 OUT FIFO.
func (d *Dev) Ep0GetCount() (uint8, error) {
	return d.ReadUint8(RegE0CNT)
}

// EpnInGetSentStall returns true when the selected IN endpoint sent a STALL.
func (d *Dev) EpnInGetSentStall() (bool, error) {
	return d.test(RegEINCSRL, inSTSTL)
}

// EpnOutGetSentStall returns true when the selected OUT endpoint sent a
// STALL.
func (d *Dev) EpnOutGetSentStall() (bool, error) {
	return d.test(RegEOUTCSRL, outSTSTL)
}

// EpnGetOutPacketReady returns true when the selected OUT endpoint holds a
// packet.
func (d *Dev) EpnGetOutPacketReady() (bool, error) {
	return d.test(RegEOUTCSRL, outOPRDY)
}

// EpnGetDataError returns true when the packet of the selected isochronous
// OUT endpoint has a CRC or bit stuffing error.
func (d *Dev) EpnGetDataError() (bool, error) {
	return d.test(RegEOUTCSRL, outDATERR)
}

// EpOutGetCount returns the number of bytes in the OUT FIFO of the selected
// endpoint.
func (d *Dev) EpOutGetCount() (uint16, error) {
	return d.ReadUint16(RegEOUTCNTH)
}

// GetSofNumber returns the 11 bits frame number of the last start of frame.
//
// The frame number advances every millisecond; see ReadUint16.
func (d *Dev) GetSofNumber() (uint16, error) {
	return d.ReadUint16(RegFRAMEH)
}

//

func (d *Dev) test(addr, mask uint8) (bool, error) {
	v, err := d.ReadUint8(addr)
	if err != nil {
		return false, err
	}
	return v&mask != 0, nil
}
