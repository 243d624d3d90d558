// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mcp3008 reads the Microchip MCP3008 8-channel 10-bit A/D
// converter over SPI. Boards without an on-chip ADC use one of these to
// sense analog rails, the photo frame's battery divider among them.
//
// Each channel is exposed as an analog.PinADC, so consumers stay
// oblivious to which ADC actually does the sampling.
//
// # Datasheet
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/21295d.pdf
package mcp3008

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Channels is the number of single-ended inputs.
const Channels = 8

// maxCount is the full-scale reading of the 10-bit converter.
const maxCount = 1<<10 - 1

// ErrInvalidChannel is returned for channel numbers outside 0 to 7.
var ErrInvalidChannel = errors.New("mcp3008: invalid channel")

// Opts holds the configuration options for the device.
type Opts struct {
	// Reference is the voltage on VREF, the full-scale value. Defaults
	// to 3.3V.
	Reference physic.ElectricPotential
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	Reference: 3300 * physic.MilliVolt,
}

// Dev represents an MCP3008 A/D converter.
type Dev struct {
	mu  sync.Mutex
	c   conn.Conn
	ref physic.ElectricPotential
}

// New opens the converter on the given SPI port. Opts can be nil.
func New(p spi.Port, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	ref := opts.Reference
	if ref == 0 {
		ref = DefaultOpts.Reference
	}

	// 1.35MHz is the worst-case limit at 2.7V supply; safe at any VDD.
	c, err := p.Connect(1350*physic.KiloHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("mcp3008: connecting: %w", err)
	}
	return &Dev{c: c, ref: ref}, nil
}

// Read samples one single-ended channel.
func (d *Dev) Read(channel int) (analog.Sample, error) {
	if channel < 0 || channel >= Channels {
		return analog.Sample{}, fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Start bit, then single-ended mode and channel in the top nibble of
	// the second byte. The reply carries the 10-bit result in the low
	// bits of the last two bytes.
	w := [3]byte{0x01, byte(8|channel) << 4, 0x00}
	var r [3]byte
	if err := d.c.Tx(w[:], r[:]); err != nil {
		return analog.Sample{}, fmt.Errorf("mcp3008: reading channel %d: %w", channel, err)
	}
	raw := int32(r[1]&0x03)<<8 | int32(r[2])
	return analog.Sample{
		Raw: raw,
		V:   physic.ElectricPotential(int64(raw) * int64(d.ref) / (maxCount + 1)),
	}, nil
}

// PinForChannel returns a channel as an analog pin.
func (d *Dev) PinForChannel(channel int) (analog.PinADC, error) {
	if channel < 0 || channel >= Channels {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}
	return &analogPin{d: d, channel: channel}, nil
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("MCP3008{%s}", d.c)
}

// Halt implements conn.Resource. The converter idles whenever CS is
// inactive; there is nothing to stop.
func (d *Dev) Halt() error {
	return nil
}

type analogPin struct {
	d       *Dev
	channel int
}

func (p *analogPin) Read() (analog.Sample, error) {
	return p.d.Read(p.channel)
}

func (p *analogPin) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, analog.Sample{Raw: maxCount, V: p.d.ref}
}

func (p *analogPin) Name() string {
	return fmt.Sprintf("MCP3008_CH%d", p.channel)
}

func (p *analogPin) Number() int {
	return p.channel
}

func (p *analogPin) Function() string {
	return "ADC"
}

func (p *analogPin) String() string {
	return fmt.Sprintf("%s(%d)", p.Name(), p.channel)
}

func (p *analogPin) Halt() error {
	return nil
}

var _ conn.Resource = &Dev{}
var _ analog.PinADC = &analogPin{}
