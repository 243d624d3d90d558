// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd7in3f

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

func idleBusyPin() *gpiotest.Pin {
	// Busy is active low; a high pin means the panel is idle.
	return &gpiotest.Pin{N: "BUSY", L: gpio.High, EdgesChan: make(chan gpio.Level, 1)}
}

func TestNew(t *testing.T) {
	dev, err := New(&spitest.Playback{}, &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "CS"}, &gpiotest.Pin{N: "RST"}, idleBusyPin(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if dev.state != stateUninitialized {
		t.Errorf("fresh device state = %d, want uninitialized", dev.state)
	}
	if got := dev.Bounds(); got.Dx() != Width || got.Dy() != Height {
		t.Errorf("Bounds() = %v, want %dx%d", got, Width, Height)
	}
}

func TestInitSequence(t *testing.T) {
	port := &spitest.Record{}
	enable := &gpiotest.Pin{N: "EPD_EN"}
	dev, err := New(port, &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "CS"}, &gpiotest.Pin{N: "RST"}, idleBusyPin(), &Opts{Enable: enable})
	if err != nil {
		t.Fatal(err)
	}

	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}

	// 19 commands, each followed by one data burst.
	if len(port.Ops) != 38 {
		t.Errorf("Init() performed %d transfers, want 38", len(port.Ops))
	}
	if w := port.Ops[0].W; len(w) != 1 || w[0] != cmdH {
		t.Errorf("first transfer = %#v, want command %#x", w, cmdH)
	}
	if enable.L != gpio.High {
		t.Error("panel enable line is not high after Init()")
	}
	if dev.state != stateInitialized {
		t.Errorf("state = %d, want initialized", dev.state)
	}
}

func TestInitBusyTimeout(t *testing.T) {
	// Busy stuck active: the panel never comes up.
	busy := &gpiotest.Pin{N: "BUSY", L: gpio.Low, EdgesChan: make(chan gpio.Level, 1)}
	dev, err := New(&spitest.Playback{Playback: conntest.Playback{DontPanic: true}}, &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "CS"}, &gpiotest.Pin{N: "RST"}, busy, &Opts{
		BusyTimeout: 30 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := dev.Init(); !errors.Is(err, ErrBusyTimeout) {
		t.Fatalf("Init() = %v, want ErrBusyTimeout", err)
	}
	if dev.state != stateUninitialized {
		t.Errorf("state = %d, want uninitialized after timeout", dev.state)
	}
}

func TestRenderStreamsWholeFrame(t *testing.T) {
	port := &spitest.Record{}
	feeds := 0
	dev, err := New(port, &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "CS"}, &gpiotest.Pin{N: "RST"}, idleBusyPin(), &Opts{
		WatchdogFeed: func() { feeds++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	dev.state = stateInitialized

	if err := dev.Render(NewBuffer()); err != nil {
		t.Fatal(err)
	}

	// 0x10 + 480 rows, then power on, refresh + data, power off + data.
	if want := 1 + Height + 5; len(port.Ops) != want {
		t.Errorf("Render() performed %d transfers, want %d", len(port.Ops), want)
	}
	if w := port.Ops[0].W; len(w) != 1 || w[0] != dataStartTransmission {
		t.Errorf("first transfer = %#v, want command %#x", w, dataStartTransmission)
	}
	if w := port.Ops[1].W; len(w) != rowBytes {
		t.Errorf("row transfer carries %d bytes, want %d", len(w), rowBytes)
	}
	if feeds != Height {
		t.Errorf("watchdog fed %d times, want %d", feeds, Height)
	}
	if dev.state != stateInitialized {
		t.Errorf("state = %d, want initialized", dev.state)
	}
}

func TestRenderReinitializesSleepingPanel(t *testing.T) {
	port := &spitest.Record{}
	dev, err := New(port, &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "CS"}, &gpiotest.Pin{N: "RST"}, idleBusyPin(), nil)
	if err != nil {
		t.Fatal(err)
	}
	dev.state = stateSleeping

	if err := dev.Render(NewBuffer()); err != nil {
		t.Fatal(err)
	}

	// Init sequence first, then the frame.
	if w := port.Ops[0].W; len(w) != 1 || w[0] != cmdH {
		t.Errorf("first transfer = %#v, want init command %#x", w, cmdH)
	}
	if dev.state != stateInitialized {
		t.Errorf("state = %d, want initialized", dev.state)
	}
}

func TestRenderBusyTimeoutLeavesBufferIntact(t *testing.T) {
	port := &spitest.Record{}
	busy := &gpiotest.Pin{N: "BUSY", L: gpio.Low, EdgesChan: make(chan gpio.Level, 1)}
	dev, err := New(port, &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "CS"}, &gpiotest.Pin{N: "RST"}, busy, &Opts{
		BusyTimeout: 30 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	dev.state = stateInitialized

	buf := NewBuffer()
	buf.SetPixel(10, 10, Orange)
	want := append([]byte(nil), buf.pix...)

	if err := dev.Render(buf); !errors.Is(err, ErrBusyTimeout) {
		t.Fatalf("Render() = %v, want ErrBusyTimeout", err)
	}
	if !bytes.Equal(buf.pix, want) {
		t.Error("failed refresh modified the buffer")
	}
	if dev.state != stateUninitialized {
		t.Errorf("state = %d, want uninitialized for re-init", dev.state)
	}
}

func TestClear(t *testing.T) {
	port := &spitest.Record{}
	dev, err := New(port, &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "CS"}, &gpiotest.Pin{N: "RST"}, idleBusyPin(), nil)
	if err != nil {
		t.Fatal(err)
	}
	dev.state = stateInitialized

	if err := dev.Clear(Color(9)); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("Clear(9) = %v, want ErrInvalidColor", err)
	}
	if len(port.Ops) != 0 {
		t.Fatalf("invalid clear still touched the bus: %d transfers", len(port.Ops))
	}

	if err := dev.Clear(White); err != nil {
		t.Fatal(err)
	}
	if want := 1 + Height + 5; len(port.Ops) != want {
		t.Errorf("Clear() performed %d transfers, want %d", len(port.Ops), want)
	}
}

func TestSleep(t *testing.T) {
	port := &spitest.Record{}
	enable := &gpiotest.Pin{N: "EPD_EN", L: gpio.High}
	dev, err := New(port, &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "CS"}, &gpiotest.Pin{N: "RST"}, idleBusyPin(), &Opts{Enable: enable})
	if err != nil {
		t.Fatal(err)
	}
	dev.state = stateInitialized

	if err := dev.Sleep(); err != nil {
		t.Fatal(err)
	}

	if len(port.Ops) != 2 {
		t.Fatalf("Sleep() performed %d transfers, want 2", len(port.Ops))
	}
	if w := port.Ops[0].W; len(w) != 1 || w[0] != deepSleep {
		t.Errorf("first transfer = %#v, want command %#x", w, deepSleep)
	}
	if w := port.Ops[1].W; len(w) != 1 || w[0] != deepSleepCheck {
		t.Errorf("second transfer = %#v, want %#x", w, deepSleepCheck)
	}
	if enable.L != gpio.Low {
		t.Error("panel enable line is not low after Sleep()")
	}
	if dev.state != stateSleeping {
		t.Errorf("state = %d, want sleeping", dev.state)
	}
}

func TestString(t *testing.T) {
	dev, err := New(&spitest.Playback{}, &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "CS"}, &gpiotest.Pin{N: "RST"}, idleBusyPin(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := dev.String(); got == "" {
		t.Error("String() is empty")
	}
}
