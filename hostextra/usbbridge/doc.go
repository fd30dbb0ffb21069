// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package usbbridge exposes the SFR space of a Silicon Labs 8051 target
// through a USB bridge.
//
// The bridge is a small vendor class firmware (VID 0x10C4, PID 0x8A5F) that
// answers two device recipient vendor requests, with wIndex holding the SFR
// address:
//
//  0x01 READ_SFR   IN, returns one byte
//  0x02 WRITE_SFR  OUT, wValue holds the byte, no data stage
//
// Each request maps to exactly one SFR access on the target, which makes
// the bridge usable as the transport for periph.io/x/efm8/devices/usb0.
//
// The bridges found at host initialization are returned by All().
//
// Debian
//
// This includes Raspbian and Ubuntu.
//
// This package uses github.com/google/gousb which needs cgo and libusb:
//
//  sudo apt install pkg-config libusb-1.0-0-dev
//
// MacOS
//
//  brew install pkgconfig libusb
//
// Windows
//
// Install the WinUSB driver for the bridge, for example with Zadig.
// Enumerate() uses WMI and works without it.
package usbbridge
