// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp3008

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestNew(t *testing.T) {
	port := spitest.Playback{
		Playback: conntest.Playback{DontPanic: true},
	}
	dev, err := New(&port, nil)
	if err != nil {
		t.Fatal(err)
	}
	if dev.ref != 3300*physic.MilliVolt {
		t.Fatalf("default reference = %s", dev.ref)
	}
	if err := port.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		channel int
		io      conntest.IO
		raw     int32
		v       physic.ElectricPotential
	}{
		{
			name:    "channel 0 mid-scale",
			channel: 0,
			io:      conntest.IO{W: []byte{0x01, 0x80, 0x00}, R: []byte{0x00, 0x02, 0x9B}},
			raw:     667,
			v:       2149511718 * physic.NanoVolt,
		},
		{
			name:    "channel 7 full-scale",
			channel: 7,
			io:      conntest.IO{W: []byte{0x01, 0xF0, 0x00}, R: []byte{0x00, 0x03, 0xFF}},
			raw:     1023,
			v:       3296777343 * physic.NanoVolt,
		},
		{
			name:    "channel 3 zero",
			channel: 3,
			io:      conntest.IO{W: []byte{0x01, 0xB0, 0x00}, R: []byte{0x00, 0x00, 0x00}},
			raw:     0,
			v:       0,
		},
		{
			name:    "undefined reply bits are masked",
			channel: 1,
			io:      conntest.IO{W: []byte{0x01, 0x90, 0x00}, R: []byte{0xFF, 0xFF, 0x01}},
			raw:     0x301,
			v:       2478222656 * physic.NanoVolt,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := spitest.Playback{
				Playback: conntest.Playback{
					Ops:       []conntest.IO{tt.io},
					DontPanic: true,
				},
			}
			dev, err := New(&port, nil)
			if err != nil {
				t.Fatal(err)
			}
			s, err := dev.Read(tt.channel)
			if err != nil {
				t.Fatal(err)
			}
			if s.Raw != tt.raw {
				t.Fatalf("Raw = %d, want %d", s.Raw, tt.raw)
			}
			if s.V != tt.v {
				t.Fatalf("V = %d, want %d", s.V, tt.v)
			}
			if err := port.Close(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestReadCustomReference(t *testing.T) {
	port := spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				{W: []byte{0x01, 0x80, 0x00}, R: []byte{0x00, 0x02, 0x00}},
			},
			DontPanic: true,
		},
	}
	dev, err := New(&port, &Opts{Reference: 5 * physic.Volt})
	if err != nil {
		t.Fatal(err)
	}
	s, err := dev.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if want := 2500 * physic.MilliVolt; s.V != want {
		t.Fatalf("V = %s, want %s", s.V, want)
	}
	if err := port.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadInvalidChannel(t *testing.T) {
	port := spitest.Playback{
		Playback: conntest.Playback{DontPanic: true},
	}
	dev, err := New(&port, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, ch := range []int{-1, 8, 100} {
		if _, err := dev.Read(ch); !errors.Is(err, ErrInvalidChannel) {
			t.Fatalf("Read(%d) = %v, want ErrInvalidChannel", ch, err)
		}
	}
	if _, err := dev.PinForChannel(8); !errors.Is(err, ErrInvalidChannel) {
		t.Fatalf("PinForChannel(8) = %v, want ErrInvalidChannel", err)
	}
	// No bus traffic for rejected channels.
	if err := port.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPinForChannel(t *testing.T) {
	port := spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				{W: []byte{0x01, 0xB0, 0x00}, R: []byte{0x00, 0x01, 0x00}},
			},
			DontPanic: true,
		},
	}
	dev, err := New(&port, nil)
	if err != nil {
		t.Fatal(err)
	}
	pin, err := dev.PinForChannel(3)
	if err != nil {
		t.Fatal(err)
	}
	if pin.Name() != "MCP3008_CH3" {
		t.Fatalf("Name = %q", pin.Name())
	}
	if pin.Number() != 3 {
		t.Fatalf("Number = %d", pin.Number())
	}
	if pin.Function() != "ADC" {
		t.Fatalf("Function = %q", pin.Function())
	}
	_, max := pin.Range()
	if max.Raw != 1023 {
		t.Fatalf("Range max Raw = %d", max.Raw)
	}
	if max.V != 3300*physic.MilliVolt {
		t.Fatalf("Range max V = %s", max.V)
	}
	s, err := pin.Read()
	if err != nil {
		t.Fatal(err)
	}
	if s.Raw != 256 {
		t.Fatalf("Raw = %d, want 256", s.Raw)
	}
	if err := port.Close(); err != nil {
		t.Fatal(err)
	}
}
