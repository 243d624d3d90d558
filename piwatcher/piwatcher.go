// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package piwatcher controls the Omzlo PiWatcher, an I²C power watchdog
// for the Raspberry Pi. It can cut and restore the Pi's power when the
// host stops sending heartbeats, wake it after a programmed delay, and
// report why the last boot happened.
//
// # Datasheet
//
// https://omzlo.com/articles/the-piwatcher
package piwatcher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddress is the fixed I²C address of the PiWatcher.
const DefaultAddress uint16 = 0x62

const (
	regStatus = 0x00
	regWatch  = 0x01
	regWake   = 0x02
	regTime   = 0x04
)

// MaxWatch is the longest supported heartbeat interval. The watch
// register counts whole seconds in a single byte.
const MaxWatch = 255 * time.Second

// MaxWake is the longest supported wake delay. The wake register counts
// 2 second units in 16 bits.
const MaxWake = 131070 * time.Second

// ErrInvalidDuration is returned when a watch or wake duration is
// negative or beyond what its register can hold.
var ErrInvalidDuration = errors.New("piwatcher: duration out of range")

// Status reports the boot cause and button state.
type Status byte

const (
	// StatusButtonBoot is set when the last boot was caused by the
	// PiWatcher's push button.
	StatusButtonBoot Status = 1 << 5
	// StatusTimerBoot is set when the last boot was caused by the wake
	// timer expiring.
	StatusTimerBoot Status = 1 << 6
	// StatusButtonPressed is set while the push button is held down.
	StatusButtonPressed Status = 1 << 7
)

func (s Status) String() string {
	parts := []string{"OK"}
	if s&StatusButtonBoot != 0 {
		parts = append(parts, "BUTTON_BOOT")
	}
	if s&StatusTimerBoot != 0 {
		parts = append(parts, "TIMER_BOOT")
	}
	if s&StatusButtonPressed != 0 {
		parts = append(parts, "BUTTON_PRESSED")
	}
	return strings.Join(parts, " ")
}

// Dev is a handle to a PiWatcher.
type Dev struct {
	d *i2c.Dev
}

// New opens a PiWatcher on the given bus and confirms it responds.
func New(b i2c.Bus) (*Dev, error) {
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: DefaultAddress}}
	if _, err := d.Status(); err != nil {
		return nil, err
	}
	return d, nil
}

// Status reads the status register. Reading it also counts as a
// heartbeat, so polling Status keeps the watchdog fed.
func (d *Dev) Status() (Status, error) {
	var buf [1]byte
	if err := d.d.Tx([]byte{regStatus}, buf[:]); err != nil {
		return 0, fmt.Errorf("piwatcher: reading status: %w", err)
	}
	return Status(buf[0]), nil
}

// Heartbeat resets the watchdog countdown.
func (d *Dev) Heartbeat() error {
	_, err := d.Status()
	return err
}

// ClearStatus clears the boot cause flags.
func (d *Dev) ClearStatus() error {
	if err := d.d.Tx([]byte{regStatus, 0xFF}, nil); err != nil {
		return fmt.Errorf("piwatcher: clearing status: %w", err)
	}
	return nil
}

// SetWatch arms the watchdog: if no heartbeat arrives within interval,
// the PiWatcher power-cycles the Pi. A zero interval disarms it.
// Intervals round up to the next whole second, at most MaxWatch.
func (d *Dev) SetWatch(interval time.Duration) error {
	if interval < 0 || interval > MaxWatch {
		return fmt.Errorf("%w: watch %s", ErrInvalidDuration, interval)
	}
	secs := (interval + time.Second - 1) / time.Second
	if err := d.d.Tx([]byte{regWatch, byte(secs)}, nil); err != nil {
		return fmt.Errorf("piwatcher: setting watch: %w", err)
	}
	return nil
}

// Watch returns the currently armed watchdog interval. Zero means
// disarmed.
func (d *Dev) Watch() (time.Duration, error) {
	var buf [1]byte
	if err := d.d.Tx([]byte{regWatch}, buf[:]); err != nil {
		return 0, fmt.Errorf("piwatcher: reading watch: %w", err)
	}
	return time.Duration(buf[0]) * time.Second, nil
}

// SetWake programs the delay after which the PiWatcher restores power
// once the Pi has shut down. A zero delay disables the timer. The
// hardware counts 2 second units, so delays round up to the next even
// second, at most MaxWake.
func (d *Dev) SetWake(delay time.Duration) error {
	if delay < 0 || delay > MaxWake {
		return fmt.Errorf("%w: wake %s", ErrInvalidDuration, delay)
	}
	units := (delay + 2*time.Second - 1) / (2 * time.Second)
	if err := d.d.Tx([]byte{regWake, byte(units), byte(units >> 8)}, nil); err != nil {
		return fmt.Errorf("piwatcher: setting wake: %w", err)
	}
	return nil
}

// Wake returns the currently programmed wake delay. Zero means
// disabled.
func (d *Dev) Wake() (time.Duration, error) {
	var buf [2]byte
	if err := d.d.Tx([]byte{regWake}, buf[:]); err != nil {
		return 0, fmt.Errorf("piwatcher: reading wake: %w", err)
	}
	units := time.Duration(buf[0]) | time.Duration(buf[1])<<8
	return units * 2 * time.Second, nil
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("PiWatcher{%s}", d.d)
}

// Halt implements conn.Resource. It disarms the watchdog so the
// PiWatcher does not power-cycle the Pi after the process exits.
func (d *Dev) Halt() error {
	return d.SetWatch(0)
}

var _ conn.Resource = &Dev{}
