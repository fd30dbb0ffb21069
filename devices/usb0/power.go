// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usb0

import (
	"errors"

	"periph.io/x/efm8/conn/sfr"
)

// Speed is the bus speed the transceiver is configured for.
type Speed uint8

const (
	FullSpeed Speed = iota
	LowSpeed
)

func (s Speed) String() string {
	if s == LowSpeed {
		return "low"
	}
	return "full"
}

// CoreConfig is the configuration applied by InitCore.
type CoreConfig struct {
	Speed Speed
	// InEnable, OutEnable and CommonEnable are the interrupt enable masks,
	// same layout as the interrupt flags.
	InEnable     uint8
	OutEnable    uint8
	CommonEnable uint8
}

// DefaultCoreConfig enables endpoint 0 and endpoint 1 in both directions
// plus the reset, resume and suspend interrupts.
var DefaultCoreConfig = CoreConfig{
	Speed:        FullSpeed,
	InEnable:     IntEP0 | IntEP1,
	OutEnable:    IntEP1,
	CommonEnable: IntSuspend | IntResume | IntReset,
}

// InitCore resets the core, enables its interrupts, the transceiver and
// clock recovery, then releases the core with suspend detection enabled.
func (d *Dev) InitCore(cfg *CoreConfig) error {
	if d.sfr == nil {
		return ErrNoSFR
	}
	if cfg == nil {
		cfg = &DefaultCoreConfig
	}
	if err := d.ForceReset(); err != nil {
		return err
	}
	if err := d.WriteUint8(RegIN1IE, cfg.InEnable); err != nil {
		return err
	}
	if err := d.WriteUint8(RegOUT1IE, cfg.OutEnable); err != nil {
		return err
	}
	if err := d.WriteUint8(RegCMIE, cfg.CommonEnable); err != nil {
		return err
	}
	// Transceiver enable, pull-up enable and speed select; clock recovery
	// enable with the matching speed.
	xcn, clkrec := uint8(0xE0), uint8(0x89)
	if cfg.Speed == LowSpeed {
		xcn, clkrec = 0xC0, 0xA9
	}
	if err := d.sfr.WriteSFR(SFRUSB0XCN, xcn); err != nil {
		return err
	}
	if err := d.WriteUint8(RegCLKREC, clkrec); err != nil {
		return err
	}
	if err := d.EnableInterrupts(); err != nil {
		return err
	}
	return d.EnableSuspendDetection()
}

// SetAddress sets the function address assigned by the host.
func (d *Dev) SetAddress(addr uint8) error {
	if addr > 127 {
		return errors.New("usb0: function address must be below 128")
	}
	return d.WriteUint8(RegFADDR, addr)
}

// ForceReset forces an asynchronous reset of the core.
func (d *Dev) ForceReset() error {
	return d.WriteUint8(RegPOWER, powerUSBRST)
}

// EnableSuspendDetection clears the inhibit bit and enables suspend
// detection.
func (d *Dev) EnableSuspendDetection() error {
	return d.WriteUint8(RegPOWER, powerSUSEN)
}

// Resume drives resume signaling on the bus when set is true, and stops it
// when false. The USB specification requires 10 to 15ms of signaling.
func (d *Dev) Resume(set bool) error {
	v := powerSUSEN
	if set {
		v |= powerRESUME
	}
	return d.WriteUint8(RegPOWER, v)
}

// GetInterruptsEnabled returns true when the USB0 interrupt is enabled on
// the target.
func (d *Dev) GetInterruptsEnabled() (bool, error) {
	if d.sfr == nil {
		return false, ErrNoSFR
	}
	v, err := d.sfr.ReadSFR(SFREIE1)
	if err != nil {
		return false, err
	}
	return v&eie1EUSB0 != 0, nil
}

// EnableInterrupts enables the USB0 interrupt on the target.
func (d *Dev) EnableInterrupts() error {
	if d.sfr == nil {
		return ErrNoSFR
	}
	_, err := sfr.Update(d.sfr, SFREIE1, 0, eie1EUSB0)
	return err
}

// DisableInterrupts disables the USB0 interrupt on the target.
func (d *Dev) DisableInterrupts() error {
	if d.sfr == nil {
		return ErrNoSFR
	}
	_, err := sfr.Update(d.sfr, SFREIE1, eie1EUSB0, 0)
	return err
}

// IsRegulatorEnabled returns true when the internal voltage regulator is
// enabled.
func (d *Dev) IsRegulatorEnabled() (bool, error) {
	if d.sfr == nil {
		return false, ErrNoSFR
	}
	v, err := d.sfr.ReadSFR(SFRREG01CN)
	if err != nil {
		return false, err
	}
	return v&reg01cnREG0DIS == 0, nil
}

// SuspendOscillator suspends the internal oscillator until the core detects
// resume signaling, then restores the system clock selection.
//
// It returns ErrTimeout if the clock divider does not report ready within
// the configured number of polls.
func (d *Dev) SuspendOscillator() error {
	if d.sfr == nil {
		return ErrNoSFR
	}
	clksel, err := d.sfr.ReadSFR(SFRCLKSEL)
	if err != nil {
		return err
	}
	clksel &^= clkselDIVRDY
	if _, err := sfr.Update(d.sfr, SFROSCICN, 0, oscicnSUSPEND); err != nil {
		return err
	}
	if err := d.sfr.WriteSFR(SFRCLKSEL, clksel); err != nil {
		return err
	}
	for i := 0; i < d.maxPolls; i++ {
		v, err := d.sfr.ReadSFR(SFRCLKSEL)
		if err != nil {
			return err
		}
		if v&clkselDIVRDY != 0 {
			return nil
		}
	}
	return ErrTimeout
}
