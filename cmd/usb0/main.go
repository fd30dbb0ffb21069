// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// usb0 drives the USB0 core of a Silicon Labs 8051 target through an SFR
// bridge.
//
// Commands:
//
//  list                               lists the USB bridges
//  dump                               prints the USB0 core registers
//  init [low]                         runs the core initialization sequence
//  activate <ep> <size> <in|out> [split] [iso]
//  abort <ep> <in|out>                flushes both FIFO halves
//  sof                                prints the last frame number
//  irq                                prints pending interrupts until ^C
//  suspend-osc                        suspends the internal oscillator
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"periph.io/x/efm8/conn/sfr"
	"periph.io/x/efm8/devices/regview"
	"periph.io/x/efm8/devices/usb0"
	"periph.io/x/efm8/hostextra"
	"periph.io/x/efm8/hostextra/usbbridge"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi"
	"periph.io/x/periph/conn/spi/spireg"
)

// regs is the order used by dump.
var regs = []struct {
	name string
	addr uint8
}{
	{"FADDR", usb0.RegFADDR},
	{"POWER", usb0.RegPOWER},
	{"IN1IE", usb0.RegIN1IE},
	{"OUT1IE", usb0.RegOUT1IE},
	{"CMIE", usb0.RegCMIE},
	{"FRAMEL", usb0.RegFRAMEL},
	{"FRAMEH", usb0.RegFRAMEH},
	{"INDEX", usb0.RegINDEX},
	{"CLKREC", usb0.RegCLKREC},
	{"EINCSRL", usb0.RegEINCSRL},
	{"EINCSRH", usb0.RegEINCSRH},
	{"EOUTCSRL", usb0.RegEOUTCSRL},
	{"EOUTCSRH", usb0.RegEOUTCSRH},
	{"EOUTCNTL", usb0.RegEOUTCNTL},
	{"EOUTCNTH", usb0.RegEOUTCNTH},
}

func list() error {
	all, err := usbbridge.Enumerate()
	if err != nil {
		return err
	}
	plural := ""
	if len(all) != 1 {
		plural = "s"
	}
	fmt.Printf("Found %d bridge%s\n", len(all), plural)
	for i, d := range all {
		fmt.Printf("- Bridge #%d: %s\n", i, d.String())
	}
	return nil
}

func dump(d *usb0.Dev) error {
	out := make([]regview.Reg, 0, len(regs))
	// CMINT, IN1INT and OUT1INT are clear-on-read and are skipped.
	err := d.Critical(func() error {
		for _, r := range regs {
			v, err := d.ReadUint8(r.addr)
			if err != nil {
				return err
			}
			out = append(out, regview.Reg{Name: r.name, Addr: r.addr, Value: v})
		}
		return nil
	})
	if err != nil {
		return err
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		v := regview.NewStdout()
		defer v.Halt()
		return v.Write(out...)
	}
	for _, r := range out {
		fmt.Printf("%-9s %#02x: %#02x\n", r.Name, r.Addr, r.Value)
	}
	return nil
}

func parseEP(s string) (uint8, error) {
	ep, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(ep), nil
}

func parseDir(s string) (usb0.Dir, error) {
	switch s {
	case "in":
		return usb0.In, nil
	case "out":
		return usb0.Out, nil
	default:
		return usb0.Out, fmt.Errorf("invalid direction %q", s)
	}
}

func activate(d *usb0.Dev, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: activate <ep> <size> <in|out> [split] [iso]")
	}
	ep, err := parseEP(args[0])
	if err != nil {
		return err
	}
	size, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		return err
	}
	dir, err := parseDir(args[2])
	if err != nil {
		return err
	}
	split, iso := false, false
	for _, a := range args[3:] {
		switch a {
		case "split":
			split = true
		case "iso":
			iso = true
		default:
			return fmt.Errorf("unexpected %q", a)
		}
	}
	if int(size) > usb0.FIFOSize(ep, split) {
		log.Printf("packet size %d exceeds FIFO size %d, double buffering disabled", size, usb0.FIFOSize(ep, split))
	}
	return d.Critical(func() error {
		return d.ActivateEndpoint(ep, uint16(size), dir, split, iso)
	})
}

func abort(d *usb0.Dev, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: abort <ep> <in|out>")
	}
	ep, err := parseEP(args[0])
	if err != nil {
		return err
	}
	dir, err := parseDir(args[1])
	if err != nil {
		return err
	}
	return d.Critical(func() error {
		return d.AbortEndpoint(ep, dir == usb0.In)
	})
}

func irq(d *usb0.Dev) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		cancel()
	}()
	for e := range d.Poll(ctx, 10*time.Millisecond) {
		fmt.Printf("common=%#02x in=%#02x out=%#02x\n", e.Common, e.In, e.Out)
	}
	return nil
}

func run(d *usb0.Dev, cmd string, args []string) error {
	switch cmd {
	case "dump":
		return dump(d)
	case "init":
		cfg := usb0.DefaultCoreConfig
		if len(args) == 1 && args[0] == "low" {
			cfg.Speed = usb0.LowSpeed
		}
		return d.InitCore(&cfg)
	case "activate":
		return activate(d, args)
	case "abort":
		return abort(d, args)
	case "sof":
		var n uint16
		err := d.Critical(func() error {
			var err error
			n, err = d.GetSofNumber()
			return err
		})
		if err != nil {
			return err
		}
		fmt.Printf("frame %d\n", n)
		return nil
	case "irq":
		return irq(d)
	case "suspend-osc":
		return d.SuspendOscillator()
	default:
		return fmt.Errorf("unknown command %q, try -help", cmd)
	}
}

// open returns the SFR bus selected by the flags and a function to release
// it.
func open(i2cName string, i2cAddr int, spiName string, hz physic.Frequency) (sfr.Bus, func(), error) {
	if i2cName != "" && spiName != "" {
		return nil, nil, errors.New("use only one of -i2c and -spi")
	}
	if i2cName != "" {
		b, err := i2creg.Open(i2cName)
		if err != nil {
			return nil, nil, err
		}
		m, err := sfr.NewMMR(&i2c.Dev{Bus: b, Addr: uint16(i2cAddr)})
		if err != nil {
			b.Close()
			return nil, nil, err
		}
		return m, func() { b.Close() }, nil
	}
	if spiName != "" {
		p, err := spireg.Open(spiName)
		if err != nil {
			return nil, nil, err
		}
		c, err := p.Connect(hz, spi.Mode0, 8)
		if err != nil {
			p.Close()
			return nil, nil, err
		}
		m, err := sfr.NewMMR(c)
		if err != nil {
			p.Close()
			return nil, nil, err
		}
		return m, func() { p.Close() }, nil
	}
	all := usbbridge.All()
	if len(all) == 0 {
		return nil, nil, errors.New("found no USB bridge, try -i2c or -spi")
	}
	if len(all) > 1 {
		return nil, nil, fmt.Errorf("found %d USB bridges, unplug all but one", len(all))
	}
	return all[0], func() { all[0].Close() }, nil
}

func mainImpl() error {
	verbose := flag.Bool("v", false, "verbose mode")
	i2cName := flag.String("i2c", "", "I²C bus to use instead of the USB bridge")
	i2cAddr := flag.Int("a", 0x50, "I²C address of the bridge")
	spiName := flag.String("spi", "", "SPI port to use instead of the USB bridge")
	hz := physic.MegaHertz
	flag.Var(&hz, "hz", "SPI speed")
	maxPolls := flag.Int("polls", usb0.DefaultMaxPolls, "maximum USB0ADR.BUSY polls before timing out")
	flag.Parse()
	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() == 0 {
		return errors.New("specify a command, try -help")
	}
	cmd, args := flag.Arg(0), flag.Args()[1:]

	if _, err := hostextra.Init(); err != nil {
		return err
	}
	if cmd == "list" {
		return list()
	}

	b, closer, err := open(*i2cName, *i2cAddr, *spiName, hz)
	if err != nil {
		return err
	}
	defer closer()
	d, err := usb0.NewSFR(b, &usb0.Opts{MaxPolls: *maxPolls})
	if err != nil {
		return err
	}
	log.Printf("using %s over %s", d, b)
	return run(d, cmd, args)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "usb0: %s.\n", err)
		os.Exit(1)
	}
}
