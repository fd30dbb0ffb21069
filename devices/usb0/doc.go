// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package usb0 controls the USB0 function controller found on Silicon Labs
// C8051F32x, C8051F34x, C8051F38x and EFM8UB microcontrollers.
//
// The core's registers are not memory mapped. They are reached through a
// two-register window: USB0ADR selects the core register, USB0DAT transfers
// the data. This package exposes that window as the Window interface, builds
// byte and 16 bits accesses on it, and the endpoint control and status
// primitives a USB stack needs.
//
// Concurrency
//
// The window is a single shared resource: an address write followed by a
// data access from another context reads or writes the wrong register.
// Firmware on the target that also uses the window must have its USB0
// interrupt masked while the host drives the core; Dev.Critical does this
// when an SFR bus is available.
//
// Datasheet
//
// https://www.silabs.com/documents/public/data-sheets/C8051F38x.pdf
//
// https://www.silabs.com/documents/public/reference-manuals/efm8ub2-rm.pdf
package usb0
