// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usbbridge

import (
	"log"
	"sort"
	"sync"

	"periph.io/x/periph"
)

// All returns all the bridges opened at host initialization, sorted by bus
// and address.
func All() []*Dev {
	mu.Lock()
	defer mu.Unlock()
	out := make([]*Dev, len(all))
	copy(out, all)
	return out
}

//

var (
	mu  sync.Mutex
	all []*Dev
)

// opened is a bridge handle freshly returned by the OS layer.
type opened struct {
	desc Desc
	h    handle
}

type byLocation []*Dev

func (b byLocation) Len() int      { return len(b) }
func (b byLocation) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byLocation) Less(i, j int) bool {
	if b[i].desc.Bus != b[j].desc.Bus {
		return b[i].desc.Bus < b[j].desc.Bus
	}
	return b[i].desc.Addr < b[j].desc.Addr
}

// driver implements periph.Driver.
type driver struct {
	// openAll opens every connected bridge. Devices that could be opened are
	// returned even when err is not nil.
	openAll func() ([]opened, error)
}

func (d *driver) String() string {
	return "usbbridge"
}

func (d *driver) Prerequisites() []string {
	return nil
}

func (d *driver) After() []string {
	return nil
}

func (d *driver) Init() (bool, error) {
	devs, err := d.openAll()
	if err != nil {
		// Failures happen all the time on USB, typically a permission issue on
		// one device. Keep the ones that worked.
		log.Printf("usbbridge: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	for _, o := range devs {
		all = append(all, newDev(o.desc, o.h))
	}
	sort.Sort(byLocation(all))
	if len(devs) == 0 {
		return false, err
	}
	return true, nil
}

func (d *driver) reset() {
	mu.Lock()
	defer mu.Unlock()
	all = nil
	d.openAll = openAll
}

var drv driver

func init() {
	drv.reset()
	periph.MustRegister(&drv)
}

var _ periph.Driver = &driver{}
