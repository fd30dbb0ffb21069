// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0

// USB0 core registers, reachable only through the indirect window.
const (
	RegFADDR    uint8 = 0x00 // Function address
	RegPOWER    uint8 = 0x01 // Power management
	RegIN1INT   uint8 = 0x02 // Endpoint 0 and IN endpoints interrupt flags, clear on read
	RegOUT1INT  uint8 = 0x04 // OUT endpoints interrupt flags, clear on read
	RegCMINT    uint8 = 0x06 // Common interrupt flags, clear on read
	RegIN1IE    uint8 = 0x07 // IN1INT enable
	RegOUT1IE   uint8 = 0x09 // OUT1INT enable
	RegCMIE     uint8 = 0x0B // CMINT enable
	RegFRAMEL   uint8 = 0x0C // Frame number, low byte
	RegFRAMEH   uint8 = 0x0D // Frame number, high byte
	RegINDEX    uint8 = 0x0E // Endpoint select
	RegCLKREC   uint8 = 0x0F // Clock recovery control
	RegE0CSR    uint8 = 0x11 // Endpoint 0 control/status, when INDEX is 0
	RegEINCSRL  uint8 = 0x11 // IN control/status low byte, when INDEX is not 0
	RegEINCSRH  uint8 = 0x12 // IN control/status high byte
	RegEOUTCSRL uint8 = 0x14 // OUT control/status low byte
	RegEOUTCSRH uint8 = 0x15 // OUT control/status high byte
	RegE0CNT    uint8 = 0x16 // Endpoint 0 OUT byte count, when INDEX is 0
	RegEOUTCNTL uint8 = 0x16 // OUT byte count low byte
	RegEOUTCNTH uint8 = 0x17 // OUT byte count high byte
	RegFIFO0    uint8 = 0x20 // Endpoint 0 FIFO; endpoint n is at RegFIFO0+n
)

// NumEndpoints is the number of endpoints of the core, including endpoint 0.
const NumEndpoints = 4

// Common interrupt flags, as returned by GetCommonInterrupts.
const (
	IntSuspend uint8 = 0x01
	IntResume  uint8 = 0x02
	IntReset   uint8 = 0x04
	IntSOF     uint8 = 0x08
)

// Endpoint interrupt flags, as returned by GetInInterrupts and
// GetOutInterrupts. Bit n is endpoint n; bit 0 of the IN flags is endpoint 0
// in both directions.
const (
	IntEP0 uint8 = 0x01
	IntEP1 uint8 = 0x02
	IntEP2 uint8 = 0x04
	IntEP3 uint8 = 0x08
)

// POWER bits.
const (
	powerSUSEN  uint8 = 0x01
	powerSUSMD  uint8 = 0x02
	powerRESUME uint8 = 0x04
	powerUSBRST uint8 = 0x08
	powerUSBINH uint8 = 0x10
	powerISOUD  uint8 = 0x80
)

// E0CSR bits.
const (
	e0OPRDY   uint8 = 0x01
	e0INPRDY  uint8 = 0x02
	e0STSTL   uint8 = 0x04
	e0DATAEND uint8 = 0x08
	e0SUEND   uint8 = 0x10
	e0SDSTL   uint8 = 0x20
	e0SOPRDY  uint8 = 0x40
	e0SSUEND  uint8 = 0x80
)

// EINCSRL bits.
const (
	inINPRDY uint8 = 0x01
	inFIFONE uint8 = 0x02
	inUNDRUN uint8 = 0x04
	inFLUSH  uint8 = 0x08
	inSDSTL  uint8 = 0x10
	inSTSTL  uint8 = 0x20
	inCLRDT  uint8 = 0x40
)

// EINCSRH bits.
const (
	inhSPLIT  uint8 = 0x04
	inhFCDT   uint8 = 0x08
	inhDIRSEL uint8 = 0x20
	inhISO    uint8 = 0x40
	inhDBIEN  uint8 = 0x80
)

// EOUTCSRL bits.
const (
	outOPRDY   uint8 = 0x01
	outFIFOFUL uint8 = 0x02
	outOVRUN   uint8 = 0x04
	outDATERR  uint8 = 0x08
	outFLUSH   uint8 = 0x10
	outSDSTL   uint8 = 0x20
	outSTSTL   uint8 = 0x40
	outCLRDT   uint8 = 0x80
)

// EOUTCSRH bits.
const (
	outhISO   uint8 = 0x40
	outhDBOEN uint8 = 0x80
)

// Direct special function registers used by the driver.
const (
	SFRUSB0ADR uint8 = 0x96 // Indirect window address register
	SFRUSB0DAT uint8 = 0x97 // Indirect window data register
	SFRCLKSEL  uint8 = 0xA9
	SFROSCICN  uint8 = 0xB2
	SFRREG01CN uint8 = 0xC9
	SFRUSB0XCN uint8 = 0xD7 // Transceiver control
	SFREIE1    uint8 = 0xE6 // Extended interrupt enable 1
)

const (
	adrBUSY   uint8 = 0x80
	adrAUTORD uint8 = 0x40
	adrMask   uint8 = 0x3F

	clkselDIVRDY   uint8 = 0x80
	oscicnSUSPEND  uint8 = 0x20
	reg01cnREG0DIS uint8 = 0x80
	eie1EUSB0      uint8 = 0x02
)
