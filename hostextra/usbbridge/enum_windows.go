// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usbbridge

import "github.com/StackExchange/wmi"

// pnpEntity represents a Win32_PnPEntity instance. It intentionally leaves
// a lot of members out.
type pnpEntity struct {
	DeviceID string
	Name     string
}

// Enumerate lists the connected bridges without opening them.
//
// It uses WMI so it works even when no WinUSB driver is bound to the
// bridge. Bus and Addr are not known and left to 0.
func Enumerate() ([]Desc, error) {
	// https://msdn.microsoft.com/en-us/library/aa394353.aspx
	var dst []pnpEntity
	if err := wmi.Query(`SELECT DeviceID, Name FROM Win32_PnPEntity WHERE DeviceID LIKE 'USB\\VID_10C4&PID_8A5F\\%'`, &dst); err != nil {
		return nil, err
	}
	out := make([]Desc, 0, len(dst))
	for _, e := range dst {
		out = append(out, fromPnP(e.DeviceID))
	}
	return out, nil
}
