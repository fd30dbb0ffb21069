// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usbbridge

import "strings"

// fromPnP converts a Windows device instance path like
// `USB\VID_10C4&PID_8A5F\0001` into a Desc. The last component is the
// serial number when the device reports one.
func fromPnP(id string) Desc {
	d := Desc{ID: id}
	if i := strings.LastIndexByte(id, '\\'); i != -1 && i+1 < len(id) {
		if s := id[i+1:]; !strings.Contains(s, "&") {
			d.Serial = s
		}
	}
	return d
}
