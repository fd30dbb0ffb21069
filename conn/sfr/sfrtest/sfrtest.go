// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sfrtest is meant to be used to test drivers over a simulated SFR
// space.
package sfrtest

import (
	"fmt"
	"sync"

	"periph.io/x/efm8/conn/sfr"
)

// Access is one recorded SFR access.
type Access struct {
	Write bool
	Addr  uint8
	Value uint8
}

func (a Access) String() string {
	if a.Write {
		return fmt.Sprintf("W %#02x=%#02x", a.Addr, a.Value)
	}
	return fmt.Sprintf("R %#02x=%#02x", a.Addr, a.Value)
}

// Hook intercepts accesses to one address.
//
// A nil OnRead returns the stored value. A nil OnWrite stores the value.
type Hook struct {
	OnRead  func() uint8
	OnWrite func(v uint8)
}

// Space is a simulated 256 bytes SFR space.
//
// It implements sfr.Bus.
type Space struct {
	sync.Mutex
	Regs  [256]uint8
	Log   []Access
	hooks map[uint8]Hook
	// Err, when set, is returned by every access.
	Err error
}

// Map installs a hook for addr, replacing any previous one.
func (s *Space) Map(addr uint8, h Hook) {
	s.Lock()
	defer s.Unlock()
	if s.hooks == nil {
		s.hooks = map[uint8]Hook{}
	}
	s.hooks[addr] = h
}

// ReadSFR implements sfr.Bus.
func (s *Space) ReadSFR(addr uint8) (uint8, error) {
	s.Lock()
	if s.Err != nil {
		defer s.Unlock()
		return 0, s.Err
	}
	h, ok := s.hooks[addr]
	s.Unlock()
	var v uint8
	if ok && h.OnRead != nil {
		v = h.OnRead()
	}
	s.Lock()
	defer s.Unlock()
	if !ok || h.OnRead == nil {
		v = s.Regs[addr]
	}
	s.Log = append(s.Log, Access{Addr: addr, Value: v})
	return v, nil
}

// WriteSFR implements sfr.Bus.
func (s *Space) WriteSFR(addr, v uint8) error {
	s.Lock()
	if s.Err != nil {
		defer s.Unlock()
		return s.Err
	}
	s.Log = append(s.Log, Access{Write: true, Addr: addr, Value: v})
	h, ok := s.hooks[addr]
	if !ok || h.OnWrite == nil {
		s.Regs[addr] = v
		s.Unlock()
		return nil
	}
	s.Unlock()
	h.OnWrite(v)
	return nil
}

// Writes returns the values written to addr, in order.
func (s *Space) Writes(addr uint8) []uint8 {
	s.Lock()
	defer s.Unlock()
	var out []uint8
	for _, a := range s.Log {
		if a.Write && a.Addr == addr {
			out = append(out, a.Value)
		}
	}
	return out
}

// Reset clears the access log.
func (s *Space) Reset() {
	s.Lock()
	defer s.Unlock()
	s.Log = nil
}

var _ sfr.Bus = &Space{}
