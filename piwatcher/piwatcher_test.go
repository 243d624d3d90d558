// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piwatcher

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestNew(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x62, W: []byte{0x00}, R: []byte{0x00}},
		},
	}
	dev, err := New(&bus)
	if err != nil {
		t.Fatal(err)
	}
	if dev == nil {
		t.Fatal("expected device")
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{0, "OK"},
		{StatusButtonBoot, "OK BUTTON_BOOT"},
		{StatusTimerBoot, "OK TIMER_BOOT"},
		{StatusButtonPressed, "OK BUTTON_PRESSED"},
		{StatusButtonBoot | StatusTimerBoot | StatusButtonPressed, "OK BUTTON_BOOT TIMER_BOOT BUTTON_PRESSED"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Fatalf("Status(%#02x).String() = %q, want %q", byte(tt.s), got, tt.want)
		}
	}
}

func TestStatus(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x62, W: []byte{0x00}, R: []byte{0x60}},
		},
	}
	dev := Dev{d: &i2c.Dev{Bus: &bus, Addr: DefaultAddress}}
	s, err := dev.Status()
	if err != nil {
		t.Fatal(err)
	}
	if s != StatusButtonBoot|StatusTimerBoot {
		t.Fatalf("Status = %s", s)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestHeartbeat(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x62, W: []byte{0x00}, R: []byte{0x00}},
			{Addr: 0x62, W: []byte{0x00}, R: []byte{0x00}},
		},
	}
	dev := Dev{d: &i2c.Dev{Bus: &bus, Addr: DefaultAddress}}
	if err := dev.Heartbeat(); err != nil {
		t.Fatal(err)
	}
	if err := dev.Heartbeat(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetWatch(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x62, W: []byte{0x01, 0x08}, R: nil},
			{Addr: 0x62, W: []byte{0x01, 0x02}, R: nil},
			{Addr: 0x62, W: []byte{0x01, 0x00}, R: nil},
		},
	}
	dev := Dev{d: &i2c.Dev{Bus: &bus, Addr: DefaultAddress}}
	if err := dev.SetWatch(8 * time.Second); err != nil {
		t.Fatal(err)
	}
	// Fractional intervals round up.
	if err := dev.SetWatch(1500 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetWatch(0); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetWatchRange(t *testing.T) {
	bus := i2ctest.Playback{}
	dev := Dev{d: &i2c.Dev{Bus: &bus, Addr: DefaultAddress}}
	if err := dev.SetWatch(256 * time.Second); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("SetWatch(256s) = %v, want ErrInvalidDuration", err)
	}
	if err := dev.SetWatch(-time.Second); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("SetWatch(-1s) = %v, want ErrInvalidDuration", err)
	}
	// Rejected durations generate no bus traffic.
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWatch(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x62, W: []byte{0x01}, R: []byte{0x08}},
		},
	}
	dev := Dev{d: &i2c.Dev{Bus: &bus, Addr: DefaultAddress}}
	got, err := dev.Watch()
	if err != nil {
		t.Fatal(err)
	}
	if got != 8*time.Second {
		t.Fatalf("Watch = %s", got)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetWake(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x62, W: []byte{0x02, 0x2C, 0x01}, R: nil},
			{Addr: 0x62, W: []byte{0x02, 0x2D, 0x01}, R: nil},
			{Addr: 0x62, W: []byte{0x02, 0xFF, 0xFF}, R: nil},
			{Addr: 0x62, W: []byte{0x02, 0x00, 0x00}, R: nil},
		},
	}
	dev := Dev{d: &i2c.Dev{Bus: &bus, Addr: DefaultAddress}}
	if err := dev.SetWake(600 * time.Second); err != nil {
		t.Fatal(err)
	}
	// Odd delays round up to the next 2 second unit.
	if err := dev.SetWake(601 * time.Second); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetWake(MaxWake); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetWake(0); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetWake(MaxWake + time.Second); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("SetWake(MaxWake+1s) = %v, want ErrInvalidDuration", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWake(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x62, W: []byte{0x02}, R: []byte{0x2C, 0x01}},
		},
	}
	dev := Dev{d: &i2c.Dev{Bus: &bus, Addr: DefaultAddress}}
	got, err := dev.Wake()
	if err != nil {
		t.Fatal(err)
	}
	if got != 600*time.Second {
		t.Fatalf("Wake = %s", got)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestClearStatus(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x62, W: []byte{0x00, 0xFF}, R: nil},
		},
	}
	dev := Dev{d: &i2c.Dev{Bus: &bus, Addr: DefaultAddress}}
	if err := dev.ClearStatus(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestHalt(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x62, W: []byte{0x01, 0x00}, R: nil},
		},
	}
	dev := Dev{d: &i2c.Dev{Bus: &bus, Addr: DefaultAddress}}
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}
