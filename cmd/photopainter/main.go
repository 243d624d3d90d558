// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// photopainter runs one lifecycle pass of the e-paper picture frame.
//
// On battery power it renders fresh artwork, arms the RTC wake alarm
// and cuts the board's power. On USB power it serves a maintenance
// console on stdin/stdout instead. With -preview it renders the
// artwork to the terminal and exits, no hardware required.
//
// The defaults match the stock board wiring. Launched from an init
// system, stdin/stdout should be the serial console.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"io"
	"log"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/photopainter/firmware/console"
	"github.com/photopainter/firmware/content"
	"github.com/photopainter/firmware/epd7in3f"
	"github.com/photopainter/firmware/frame"
	"github.com/photopainter/firmware/mcp3008"
	"github.com/photopainter/firmware/pcf85063"
	"github.com/photopainter/firmware/piwatcher"
	"github.com/photopainter/firmware/power"
	"github.com/photopainter/firmware/termview"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func mainImpl() error {
	spiName := flag.String("spi", "SPI0.0", "SPI port of the panel")
	adcName := flag.String("adc", "SPI0.1", "SPI port of the MCP3008 battery ADC")
	i2cName := flag.String("i2c", "", "I2C bus of the RTC and watchdog, empty for the first available")

	dcPin := flag.String("dc", "GPIO8", "panel data/command pin")
	csPin := flag.String("cs", "GPIO9", "panel chip select pin")
	rstPin := flag.String("rst", "GPIO12", "panel reset pin")
	busyPin := flag.String("busy", "GPIO13", "panel busy pin")
	enPin := flag.String("epd-en", "GPIO16", "panel power rail pin")
	vbusPin := flag.String("vbus", "GPIO24", "USB VBUS sense pin")
	chargePin := flag.String("charge", "GPIO17", "charger status pin")
	battEnPin := flag.String("batt-en", "GPIO18", "battery power latch pin")
	buttonPin := flag.String("button", "GPIO19", "user button pin, empty for none")
	actLEDPin := flag.String("act-led", "GPIO25", "activity LED pin, empty for none")
	pwrLEDPin := flag.String("pwr-led", "GPIO26", "power LED pin, empty for none")

	art := flag.String("art", "random", "artwork style: random or calendar")
	seed := flag.Int64("seed", 0, "random walk seed, 0 derives it from the clock")
	rotate := flag.Bool("rotate", false, "rotate the artwork 180 degrees")
	wakeHour := flag.Int("wake-hour", 6, "hour of the daily wake alarm")
	forceConsole := flag.Bool("console", false, "serve the console regardless of the power source")
	preview := flag.Bool("preview", false, "render the artwork to the terminal and exit")
	date := flag.String("date", "", "render for this date (2006-01-02) instead of today, -preview only")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	randomArt := func(dst draw.Image, now time.Time) error {
		s := *seed
		if s == 0 {
			s = now.Unix()
		}
		return content.RandomWalk(dst, s)
	}
	calendarArt := func(dst draw.Image, now time.Time) error {
		return content.Calendar(dst, now)
	}
	var autonomousArt frame.Renderer
	switch *art {
	case "random":
		autonomousArt = randomArt
	case "calendar":
		autonomousArt = calendarArt
	default:
		return fmt.Errorf("unknown art style %q", *art)
	}

	if *preview {
		return runPreview(autonomousArt, *date, *rotate)
	}

	if _, err := host.Init(); err != nil {
		return err
	}

	// The RTC and the watchdog share the I2C bus.
	bus, err := i2creg.Open(*i2cName)
	if err != nil {
		return err
	}
	defer bus.Close()
	rtc, err := pcf85063.New(bus)
	if err != nil {
		return err
	}

	// The watchdog is an add-on. Without it the frame still works, it
	// just cannot recover from a hang by power-cycling itself.
	var feed func()
	wd, err := piwatcher.New(bus)
	if err != nil {
		log.Printf("no watchdog: %v", err)
		wd = nil
	} else {
		feed = func() {
			if err := wd.Heartbeat(); err != nil {
				log.Printf("watchdog heartbeat: %v", err)
			}
		}
	}

	port, err := spireg.Open(*spiName)
	if err != nil {
		return err
	}
	defer port.Close()

	dc, err := pin(*dcPin)
	if err != nil {
		return err
	}
	cs, err := pin(*csPin)
	if err != nil {
		return err
	}
	rst, err := pin(*rstPin)
	if err != nil {
		return err
	}
	busy, err := pin(*busyPin)
	if err != nil {
		return err
	}
	en, err := pin(*enPin)
	if err != nil {
		return err
	}
	display, err := epd7in3f.New(port, dc, cs, rst, busy, &epd7in3f.Opts{
		Enable:       en,
		WatchdogFeed: feed,
	})
	if err != nil {
		return err
	}

	adcPort, err := spireg.Open(*adcName)
	if err != nil {
		return err
	}
	defer adcPort.Close()
	adc, err := mcp3008.New(adcPort, nil)
	if err != nil {
		return err
	}
	batt, err := adc.PinForChannel(0)
	if err != nil {
		return err
	}
	vbus, err := pin(*vbusPin)
	if err != nil {
		return err
	}
	charge, err := pin(*chargePin)
	if err != nil {
		return err
	}
	monitor, err := power.New(batt, vbus, charge, nil)
	if err != nil {
		return err
	}

	battEn, err := pin(*battEnPin)
	if err != nil {
		return err
	}
	// The latch must be held high before anything slow happens or the
	// board powers off under us once the wake pulse ends.
	if err := battEn.Out(gpio.High); err != nil {
		return err
	}

	fopts := &frame.Opts{
		RandomArt:     randomArt,
		CalendarArt:   calendarArt,
		AutonomousArt: autonomousArt,
		WakeHour:      *wakeHour,
		Rotate180:     *rotate,
	}
	if wd != nil {
		fopts.Watchdog = wd
	}
	if fopts.ActivityLED, err = optionalPin(*actLEDPin); err != nil {
		return err
	}
	if fopts.PowerLED, err = optionalPin(*pwrLEDPin); err != nil {
		return err
	}
	button, err := optionalPin(*buttonPin)
	if err != nil {
		return err
	}
	if button != nil {
		if err := button.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return err
		}
		fopts.Button = button
	}
	ctl := frame.New(display, rtc, monitor, battEn, fopts)

	mode := frame.ModeConsole
	if *forceConsole {
		if err := ctl.Boot(); err != nil {
			return err
		}
	} else {
		if mode, err = ctl.Run(); err != nil {
			return err
		}
	}
	if mode != frame.ModeConsole {
		return nil
	}

	con := console.New(stdio{os.Stdin, os.Stdout}, ctl, &console.Opts{
		Version:      version,
		WatchdogFeed: feed,
	})
	err = con.Run()
	if errors.Is(err, console.ErrReset) {
		if wd == nil {
			return errors.New("reset requested but no watchdog present")
		}
		// Stop feeding and let the watchdog power-cycle the board.
		log.Printf("reset requested, waiting for the watchdog")
		time.Sleep(30 * time.Second)
		return errors.New("watchdog did not reset the board")
	}
	return err
}

// runPreview renders one frame of artwork to the terminal through the
// panel's 7 color palette.
func runPreview(r frame.Renderer, date string, rotate bool) error {
	now := time.Now()
	if date != "" {
		var err error
		if now, err = time.Parse("2006-01-02", date); err != nil {
			return err
		}
	}
	buf := epd7in3f.NewBuffer()
	buf.Rotate180 = rotate
	if err := r(buf, now); err != nil {
		return err
	}
	tv := termview.New(nil)
	if err := tv.Draw(tv.Bounds(), buf, image.Point{}); err != nil {
		return err
	}
	return tv.Halt()
}

func pin(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no GPIO pin %q", name)
	}
	return p, nil
}

func optionalPin(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	return pin(name)
}

// stdio joins stdin and stdout into the console's serial stream.
type stdio struct {
	io.Reader
	io.Writer
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "photopainter: %s.\n", err)
		os.Exit(1)
	}
}
