// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package console implements the interactive maintenance console the
// photo frame exposes over its USB serial port. It is a line protocol:
// a banner, a "> " prompt, one command per line, case-insensitive.
package console

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/photopainter/firmware/pcf85063"
	"github.com/photopainter/firmware/power"
)

// ErrReset is returned by Run when the user asked for a device reset.
// The caller stops feeding the watchdog and lets it power-cycle the
// board.
var ErrReset = errors.New("console: reset requested")

// feedInterval paces watchdog feeds while the console sits idle
// waiting for input.
const feedInterval = 4 * time.Second

// Frame is the part of the device the console drives.
type Frame interface {
	// DrawRandom renders random walk art and refreshes the panel.
	DrawRandom() error
	// DrawCalendar renders the calendar page and refreshes the panel.
	DrawCalendar() error
	// ClearDisplay refreshes the panel to solid white.
	ClearDisplay() error
	// Now reads the hardware clock.
	Now() (pcf85063.Time, error)
	// SetTime writes the hardware clock.
	SetTime(pcf85063.Time) error
	// Battery reports the current power state.
	Battery() (power.Status, error)
	// Sleep programs a wake alarm and powers the board down. When it
	// returns nil the power rail is already being cut.
	Sleep(d time.Duration) error
}

// Opts holds the configuration options for the console.
type Opts struct {
	// Version is reported by the VERSION command.
	Version string
	// WatchdogFeed, when set, is called periodically while the console
	// waits for input and once per received line.
	WatchdogFeed func()
}

// Console runs the command loop on a serial stream.
type Console struct {
	out     lineWriter
	in      io.Reader
	frame   Frame
	version string
	feed    func()
}

// New returns a console bound to rw. Opts can be nil.
func New(rw io.ReadWriter, f Frame, opts *Opts) *Console {
	c := &Console{
		out:   lineWriter{w: rw},
		in:    rw,
		frame: f,
	}
	if opts != nil {
		c.version = opts.Version
		c.feed = opts.WatchdogFeed
	}
	if c.version == "" {
		c.version = "dev"
	}
	return c
}

// Run prints the banner and serves commands until the input closes, a
// write fails, the user powers the board down with SLEEP, or requests a
// reset. In the reset case the returned error is ErrReset.
func (c *Console) Run() error {
	if c.feed != nil {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			t := time.NewTicker(feedInterval)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					c.feed()
				case <-stop:
					return
				}
			}
		}()
	}

	c.out.line("")
	c.out.line("Waveshare Photo Painter Console")
	c.out.line("Type HELP for commands")
	c.out.prompt()
	if c.out.err != nil {
		return c.out.err
	}

	sc := newLineScanner(c.in)
	for sc.Scan() {
		if c.feed != nil {
			c.feed()
		}
		if line := strings.TrimSpace(sc.Text()); line != "" {
			stop, err := c.dispatch(line)
			if stop {
				return err
			}
			if err != nil {
				return err
			}
		}
		c.out.prompt()
		if c.out.err != nil {
			return c.out.err
		}
	}
	return sc.Err()
}

// dispatch runs one command line. stop reports that the console loop is
// over: after a reset request (err is ErrReset) or once the board is
// powering down (err is nil).
func (c *Console) dispatch(line string) (stop bool, err error) {
	fields := strings.Fields(line)
	switch strings.ToUpper(fields[0]) {
	case "DRAWRANDOM":
		c.out.line("Drawing random walk art...")
		if err := c.frame.DrawRandom(); err != nil {
			c.out.line("ERROR: Display update failed")
		} else {
			c.out.line("Random walk art complete!")
		}
	case "DRAWCALENDAR", "GO":
		c.out.line("Drawing calendar page...")
		if err := c.frame.DrawCalendar(); err != nil {
			c.out.line("ERROR: Display update failed")
		} else {
			c.out.line("Calendar page complete!")
		}
	case "CLEAR":
		c.out.line("Clearing display to white...")
		if err := c.frame.ClearDisplay(); err != nil {
			c.out.line("ERROR: Failed to update display")
		} else {
			c.out.line("Display cleared!")
		}
	case "TIME":
		if t, err := c.frame.Now(); err != nil {
			c.out.line("ERROR: Failed to read RTC time")
		} else {
			c.out.linef("Time: %s", t)
		}
	case "SETTIME":
		c.setTime(fields[1:])
	case "SLEEP":
		return c.sleep(fields[1:])
	case "BATTERY", "VBAT":
		c.battery()
	case "VERSION", "VER":
		c.out.linef("Firmware version: %s", c.version)
	case "RESET":
		c.out.line("Resetting device...")
		if c.out.err != nil {
			return true, c.out.err
		}
		return true, ErrReset
	case "HELP", "?":
		c.help()
	default:
		c.out.line("Unknown command. Type HELP for help.")
	}
	return false, c.out.err
}

func (c *Console) setTime(args []string) {
	vals, ok := parseInts(args, 6)
	if !ok {
		c.out.line("Unknown command. Type HELP for help.")
		return
	}
	year, month, day := vals[0], vals[1], vals[2]
	hour, minute, second := vals[3], vals[4], vals[5]
	switch {
	case year < 2000 || year > 2099:
		c.out.line("ERROR: Year must be 2000-2099")
	case month < 1 || month > 12:
		c.out.line("ERROR: Month must be 1-12")
	case day < 1 || day > 31:
		c.out.line("ERROR: Day must be 1-31")
	case hour < 0 || hour > 23:
		c.out.line("ERROR: Hour must be 0-23")
	case minute < 0 || minute > 59:
		c.out.line("ERROR: Minute must be 0-59")
	case second < 0 || second > 59:
		c.out.line("ERROR: Second must be 0-59")
	default:
		t := pcf85063.FromTime(time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC))
		if err := c.frame.SetTime(t); err != nil {
			c.out.line("ERROR: Failed to set RTC time")
		} else {
			c.out.linef("Time set to: %s", t)
		}
	}
}

func (c *Console) sleep(args []string) (bool, error) {
	vals, ok := parseInts(args, 1)
	if !ok {
		c.out.line("Unknown command. Type HELP for help.")
		return false, c.out.err
	}
	seconds := vals[0]
	if seconds <= 0 {
		c.out.line("ERROR: Sleep time must be > 0")
		return false, c.out.err
	}
	c.out.linef("Deep sleep for %d seconds (power off)...", seconds)
	if err := c.frame.Sleep(time.Duration(seconds) * time.Second); err != nil {
		c.out.line("ERROR: Failed to enter deep sleep")
		return false, c.out.err
	}
	// Power is on the way out; end the session.
	return true, c.out.err
}

func (c *Console) battery() {
	st, err := c.frame.Battery()
	if err != nil {
		c.out.line("ERROR: Failed to read battery")
		return
	}
	c.out.linef("Battery: %dmV", st.Millivolts())
	switch {
	case st.USBPresent && st.Charging:
		c.out.line("USB power connected, charging")
	case st.USBPresent:
		c.out.line("USB power connected, not charging (full)")
	default:
		c.out.line("Running on battery")
	}
	if !st.USBPresent && st.Low {
		c.out.line("WARNING: Battery voltage is low!")
	}
}

func (c *Console) help() {
	c.out.line("Available commands:")
	c.out.line("Display Commands:")
	c.out.line("  DRAWCALENDAR - Draw calendar page with date and quote")
	c.out.line("  DRAWRANDOM   - Draw random walk art")
	c.out.line("  GO           - Alias for DRAWCALENDAR")
	c.out.line("  CLEAR        - Clear display to white")
	c.out.line("")
	c.out.line("RTC Commands:")
	c.out.line("  TIME         - Display current RTC time")
	c.out.line("  SETTIME Y M D H M S - Set RTC time")
	c.out.line("                 Example: SETTIME 2025 12 6 14 39 30")
	c.out.line("  SLEEP n      - Deep sleep for n seconds, RTC alarm wakes")
	c.out.line("")
	c.out.line("System Commands:")
	c.out.line("  BATTERY      - Show battery voltage and status")
	c.out.line("  VERSION      - Show firmware version")
	c.out.line("  RESET        - Soft reset device")
	c.out.line("  HELP or ?    - Show this help")
}

// parseInts parses exactly n integer arguments.
func parseInts(args []string, n int) ([]int, bool) {
	if len(args) < n {
		return nil, false
	}
	vals := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Split(scanConsoleLines)
	return sc
}

// scanConsoleLines is bufio.ScanLines extended to treat a bare carriage
// return as a line ending too, since serial terminals commonly send
// only \r.
func scanConsoleLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			advance++
		}
		return advance, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// lineWriter writes console output and latches the first error so
// command handlers don't have to check every write.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s+"\r\n")
}

func (lw *lineWriter) linef(format string, args ...interface{}) {
	lw.line(fmt.Sprintf(format, args...))
}

func (lw *lineWriter) prompt() {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, "> ")
}
