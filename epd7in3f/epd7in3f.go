// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd7in3f

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var (
	// ErrBusyTimeout is returned when the panel holds its busy line past
	// the configured limit. During Init this means the panel is absent or
	// unpowered; around a refresh it usually means the refresh never
	// completed and the panel needs a reset.
	ErrBusyTimeout = errors.New("epd7in3f: busy wait timed out")

	// ErrInvalidColor is returned for color values outside the palette.
	ErrInvalidColor = errors.New("epd7in3f: invalid color")
)

const (
	// The busy line stays asserted for up to 35 seconds on a cold
	// refresh; 50 seconds covers the worst case with margin.
	defaultBusyTimeout = 50 * time.Second
	busyPollInterval   = 10 * time.Millisecond
)

type panelState uint8

const (
	stateUninitialized panelState = iota
	stateInitialized
	stateRendering
	stateSleeping
)

// Opts holds optional wiring for the display.
type Opts struct {
	// Enable drives the panel's power rail through the board's load
	// switch. Init asserts it, Sleep drops it. Leave nil when the rail is
	// hardwired.
	Enable gpio.PinOut

	// WatchdogFeed is called between frame rows and busy polls. Leave nil
	// when no watchdog is armed.
	WatchdogFeed func()

	// BusyTimeout caps a single busy wait. Defaults to 50 seconds.
	BusyTimeout time.Duration
}

// Dev is a handle to the panel.
type Dev struct {
	c conn.Conn

	dc     gpio.PinOut
	cs     gpio.PinOut
	rst    gpio.PinOut
	busy   gpio.PinIO
	enable gpio.PinOut

	feed        func()
	busyTimeout time.Duration
	state       panelState
}

// New opens the panel on the given SPI port. The panel stays untouched
// until Init; opts may be nil.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIO, opts *Opts) (*Dev, error) {
	c, err := p.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("epd7in3f: connecting: %w", err)
	}

	d := &Dev{
		c:           c,
		dc:          dc,
		cs:          cs,
		rst:         rst,
		busy:        busy,
		busyTimeout: defaultBusyTimeout,
	}
	if opts != nil {
		d.enable = opts.Enable
		d.feed = opts.WatchdogFeed
		if opts.BusyTimeout > 0 {
			d.busyTimeout = opts.BusyTimeout
		}
	}
	return d, nil
}

// Init powers the panel rail, resets the controller and runs the vendor
// bring-up sequence. It must succeed before anything can be drawn; a
// failure here is not recoverable without another Init.
func (d *Dev) Init() error {
	d.state = stateUninitialized

	if d.enable != nil {
		if err := d.enable.Out(gpio.High); err != nil {
			return fmt.Errorf("epd7in3f: powering panel: %w", err)
		}
	}
	if err := d.reset(); err != nil {
		return err
	}
	if err := d.waitUntilIdle(); err != nil {
		return err
	}
	time.Sleep(30 * time.Millisecond)

	eh := errorHandler{d: *d}
	initDisplay(&eh)
	if eh.err != nil {
		return eh.err
	}
	d.state = stateInitialized
	return nil
}

// Render streams the buffer into panel RAM and refreshes. The refresh
// takes tens of seconds; WatchdogFeed keeps a watchdog alive throughout.
// A sleeping or fresh panel is initialized first. The buffer is streamed
// in place, nothing of frame size is allocated.
func (d *Dev) Render(b *Buffer) error {
	return d.render(func(eh *errorHandler) {
		writeImage(eh, b.pix, d.feed)
	})
}

// Clear refreshes the whole panel to a single color. Clearing to White
// between images reduces ghosting.
func (d *Dev) Clear(c Color) error {
	if c > Clean {
		return ErrInvalidColor
	}
	return d.render(func(eh *errorHandler) {
		writeSolid(eh, c, d.feed)
	})
}

func (d *Dev) render(write func(*errorHandler)) error {
	if d.state != stateInitialized {
		if err := d.Init(); err != nil {
			return err
		}
	}
	d.state = stateRendering

	eh := errorHandler{d: *d}
	write(&eh)
	updateDisplay(&eh)
	if eh.err != nil {
		// Panel state is unknown now; force a re-init before the next use.
		d.state = stateUninitialized
		return eh.err
	}
	d.state = stateInitialized
	return nil
}

// Sleep puts the controller into deep sleep and cuts the panel rail. The
// shown image stays visible without power; the next Render wakes the
// panel by itself.
func (d *Dev) Sleep() error {
	eh := errorHandler{d: *d}
	sleepDisplay(&eh)
	d.state = stateSleeping

	// The rail goes down even when the sleep command failed; a dead rail
	// is the better failure mode on battery.
	if d.enable != nil {
		if err := d.enable.Out(gpio.Low); err != nil && eh.err == nil {
			eh.err = fmt.Errorf("epd7in3f: cutting panel power: %w", err)
		}
	}
	return eh.err
}

// ColorModel implements display.Drawer with the panel's 7-color palette.
func (d *Dev) ColorModel() color.Model {
	return Palette
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// Draw implements display.Drawer. The panel has no partial update, so
// dstRect must cover the full bounds. Callers driving the panel
// repeatedly should allocate one Buffer and use Render instead.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	if dstRect != d.Bounds() {
		return fmt.Errorf("epd7in3f: partial updates are not supported, dstRect must be %v", d.Bounds())
	}
	b := NewBuffer()
	draw.Src.Draw(b, dstRect, src, srcPts)
	return d.Render(b)
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("epd7in3f.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, Width, Height)
}

// Halt implements conn.Resource by putting the panel to sleep.
func (d *Dev) Halt() error {
	return d.Sleep()
}

func (d *Dev) reset() error {
	eh := errorHandler{d: *d}

	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)
	eh.rstOut(gpio.Low)
	time.Sleep(5 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)

	return eh.err
}

// waitUntilIdle blocks while the busy line is asserted. Busy is active
// low on this panel.
func (d *Dev) waitUntilIdle() error {
	deadline := time.Now().Add(d.busyTimeout)
	for d.busy.Read() == gpio.Low {
		time.Sleep(busyPollInterval)
		if d.feed != nil {
			d.feed()
		}
		if time.Now().After(deadline) {
			return ErrBusyTimeout
		}
	}
	return nil
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
var _ draw.Image = &Buffer{}
