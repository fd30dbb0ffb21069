// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// +build !windows

package usbbridge

// Enumerate lists the connected bridges without opening them.
func Enumerate() ([]Desc, error) {
	return scan()
}
