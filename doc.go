// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package efm8 is for documentation only.
//
// It drives the USB0 function controller of Silicon Labs C8051F3xx and EFM8UB
// microcontrollers from a host, through a bridge that proxies special function
// register (SFR) accesses.
//
// Layout
//
// conn/sfr defines the SFR bus and an implementation over any periph
// conn.Conn. devices/usb0 is the USB0 core driver. hostextra/usbbridge is the
// USB bridge driver. cmd/usb0 is a command line tool.
//
// cgo
//
// The USB bridge uses libusb via cgo. You need pkg-config and the libusb
// headers, on Debian (this includes Raspbian and Ubuntu) run:
//
//  sudo apt install pkg-config libusb-1.0-0-dev
//
// On MacOS, install Homebrew (https://brew.sh) then run:
//
//  brew install pkgconfig libusb
package efm8
