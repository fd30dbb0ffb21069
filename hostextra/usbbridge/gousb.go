// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usbbridge

import (
	"strconv"
	"sync"

	"github.com/google/gousb"
)

var (
	ctxOnce sync.Once
	usbCtx  *gousb.Context
)

// libusb returns the process wide libusb context. It stays open as long as
// the process since the opened devices depend on it.
func libusb() *gousb.Context {
	ctxOnce.Do(func() {
		usbCtx = gousb.NewContext()
	})
	return usbCtx
}

func isBridge(d *gousb.DeviceDesc) bool {
	return d.Vendor == VenID && d.Product == DevID
}

func fromDesc(d *gousb.DeviceDesc) Desc {
	return Desc{
		ID:   strconv.Itoa(d.Bus) + ":" + strconv.Itoa(d.Address),
		Bus:  d.Bus,
		Addr: d.Address,
	}
}

func openAll() ([]opened, error) {
	// OpenDevices returns the devices that could be opened along with the
	// last error. If the user needs root access, LIBUSB_ERROR_ACCESS (-3) is
	// returned.
	devs, err := libusb().OpenDevices(isBridge)
	out := make([]opened, 0, len(devs))
	for _, d := range devs {
		desc := fromDesc(d.Desc)
		if s, err := d.SerialNumber(); err == nil {
			desc.Serial = s
		}
		out = append(out, opened{desc: desc, h: d})
	}
	return out, err
}

// scan lists the bridges without opening them.
func scan() ([]Desc, error) {
	var out []Desc
	_, err := libusb().OpenDevices(func(d *gousb.DeviceDesc) bool {
		if isBridge(d) {
			out = append(out, fromDesc(d))
		}
		return false
	})
	return out, err
}
