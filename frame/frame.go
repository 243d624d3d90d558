// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package frame is the photo frame's lifecycle controller. A battery
// boot is one pass: render new artwork, program the next wake alarm,
// cut the battery power. A USB boot instead hands control to the
// maintenance console, with the frame serving its commands.
//
// Power is latched by a MOSFET on the battery enable pin; driving it
// low with no USB present turns the board off until the RTC alarm
// output or the user button powers it back up.
package frame

import (
	"errors"
	"fmt"
	"image/draw"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/photopainter/firmware/epd7in3f"
	"github.com/photopainter/firmware/pcf85063"
	"github.com/photopainter/firmware/power"
)

// ErrNoRenderer is returned when a draw operation has no renderer
// configured for it.
var ErrNoRenderer = errors.New("frame: no renderer configured")

// defaultWatchInterval is how long the watchdog waits for a heartbeat
// before power-cycling the board.
const defaultWatchInterval = 8 * time.Second

// defaultWakeHour is the hour of the daily wake alarm.
const defaultWakeHour = 6

// State identifies a stage of the lifecycle pass.
type State int

const (
	StateBoot State = iota
	StateModeSelect
	StateConsole
	StatePrepareContent
	StateRender
	StateProgramAlarm
	StatePowerDown
)

func (s State) String() string {
	switch s {
	case StateBoot:
		return "Boot"
	case StateModeSelect:
		return "ModeSelect"
	case StateConsole:
		return "Console"
	case StatePrepareContent:
		return "PrepareContent"
	case StateRender:
		return "Render"
	case StateProgramAlarm:
		return "ProgramAlarm"
	case StatePowerDown:
		return "PowerDown"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Mode is the outcome of mode selection at boot.
type Mode int

const (
	// ModeAutonomous is a battery boot: render, arm the alarm, power
	// down.
	ModeAutonomous Mode = iota
	// ModeConsole is a USB boot: serve the maintenance console.
	ModeConsole
	// ModeLowBattery aborts the pass: the battery cannot survive a
	// render, so the board disables its alarm and powers down.
	ModeLowBattery
)

func (m Mode) String() string {
	switch m {
	case ModeAutonomous:
		return "Autonomous"
	case ModeConsole:
		return "Console"
	case ModeLowBattery:
		return "LowBattery"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Display is the e-paper panel the frame draws on.
type Display interface {
	Render(*epd7in3f.Buffer) error
	Clear(epd7in3f.Color) error
	Sleep() error
}

// Clock is the battery-backed RTC that keeps time across power-downs
// and wakes the board.
type Clock interface {
	Now() (pcf85063.Time, error)
	SetTime(pcf85063.Time) error
	SetAlarm(pcf85063.Alarm) error
	ClearAlarmFlag() error
	DisableAlarm() error
	AlarmTriggered() (bool, error)
}

// PowerMonitor reports battery and USB state.
type PowerMonitor interface {
	Status() (power.Status, error)
}

// Watchdog power-cycles the board when heartbeats stop.
type Watchdog interface {
	SetWatch(time.Duration) error
	Heartbeat() error
}

// Renderer draws one frame of artwork into dst. now is the wall clock
// time the artwork should reflect.
type Renderer func(dst draw.Image, now time.Time) error

// Opts holds the configuration options for the controller.
type Opts struct {
	// Watchdog, when set, is armed at boot and fed on every state
	// transition.
	Watchdog Watchdog
	// WatchInterval overrides the 8s watchdog interval.
	WatchInterval time.Duration
	// RandomArt renders random walk art. Used by the autonomous pass
	// and the console's DRAWRANDOM.
	RandomArt Renderer
	// CalendarArt renders the calendar page. Used by the console's
	// DRAWCALENDAR.
	CalendarArt Renderer
	// AutonomousArt overrides which renderer the autonomous pass uses.
	// Defaults to RandomArt.
	AutonomousArt Renderer
	// ActivityLED, when set, is lit while the panel refreshes.
	ActivityLED gpio.PinOut
	// PowerLED, when set, is lit at boot and flashed on low battery.
	PowerLED gpio.PinOut
	// Button, when set, is sampled at boot to tell a button wake from a
	// cold boot. Active low.
	Button gpio.PinIn
	// WakeHour is the hour of the daily wake alarm. Defaults to 6.
	WakeHour int
	// Rotate180 flips the rendered artwork for upside-down mounting.
	Rotate180 bool
	// OnTransition, when set, observes every state change.
	OnTransition func(State)
}

// Controller owns one lifecycle pass of the frame.
type Controller struct {
	display       Display
	clock         Clock
	power         PowerMonitor
	batteryEnable gpio.PinOut

	watchdog      Watchdog
	watchInterval time.Duration
	randomArt     Renderer
	calendarArt   Renderer
	autonomous    Renderer
	activityLED   gpio.PinOut
	powerLED      gpio.PinOut
	button        gpio.PinIn
	wakeHour      int
	rotate        bool
	onTransition  func(State)

	state State
}

// New returns a controller over the frame's hardware. batteryEnable is
// the power latch pin; driving it low powers the board down. Opts can
// be nil.
func New(d Display, c Clock, p PowerMonitor, batteryEnable gpio.PinOut, opts *Opts) *Controller {
	ctl := &Controller{
		display:       d,
		clock:         c,
		power:         p,
		batteryEnable: batteryEnable,
		watchInterval: defaultWatchInterval,
		wakeHour:      defaultWakeHour,
	}
	if opts != nil {
		ctl.watchdog = opts.Watchdog
		if opts.WatchInterval > 0 {
			ctl.watchInterval = opts.WatchInterval
		}
		ctl.randomArt = opts.RandomArt
		ctl.calendarArt = opts.CalendarArt
		ctl.autonomous = opts.AutonomousArt
		ctl.activityLED = opts.ActivityLED
		ctl.powerLED = opts.PowerLED
		ctl.button = opts.Button
		if opts.WakeHour > 0 {
			ctl.wakeHour = opts.WakeHour
		}
		ctl.rotate = opts.Rotate180
		ctl.onTransition = opts.OnTransition
	}
	if ctl.autonomous == nil {
		ctl.autonomous = ctl.randomArt
	}
	return ctl
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Run drives one whole lifecycle pass. For ModeConsole it returns after
// mode selection so the caller can serve the console over its serial
// stream; for the other modes the board is powering down when it
// returns.
func (c *Controller) Run() (Mode, error) {
	if err := c.Boot(); err != nil {
		return ModeAutonomous, err
	}
	mode, err := c.SelectMode()
	if err != nil {
		return mode, err
	}
	if mode == ModeAutonomous {
		return mode, c.RunAutonomous()
	}
	return mode, nil
}

// Boot arms the watchdog, lights the power LED and logs the wake cause.
func (c *Controller) Boot() error {
	c.transition(StateBoot)
	if c.watchdog != nil {
		if err := c.watchdog.SetWatch(c.watchInterval); err != nil {
			return fmt.Errorf("frame: arming watchdog: %w", err)
		}
	}
	c.led(c.powerLED, gpio.High)
	c.led(c.activityLED, gpio.Low)

	fired, err := c.clock.AlarmTriggered()
	switch {
	case err != nil:
		log.Printf("frame: reading wake cause: %v", err)
	case fired:
		log.Printf("frame: woken by RTC alarm")
	case c.button != nil && c.button.Read() == gpio.Low:
		log.Printf("frame: woken by button")
	default:
		log.Printf("frame: cold boot or button wake")
	}
	return nil
}

// SelectMode inspects the power supply and picks how this pass runs.
// On ModeLowBattery the board is already powering down when SelectMode
// returns.
func (c *Controller) SelectMode() (Mode, error) {
	c.transition(StateModeSelect)
	st, err := c.power.Status()
	if err != nil {
		return ModeAutonomous, fmt.Errorf("frame: reading power status: %w", err)
	}
	log.Printf("frame: battery %dmV, usb=%v, charging=%v", st.Millivolts(), st.USBPresent, st.Charging)

	if st.USBPresent {
		c.transition(StateConsole)
		return ModeConsole, nil
	}
	if st.Low {
		return ModeLowBattery, c.lowBatteryShutdown()
	}
	return ModeAutonomous, nil
}

// RunAutonomous renders artwork, arms the daily wake alarm and powers
// down. A render failure is logged but never blocks the alarm or the
// power-down: a frame that fails to draw must still wake up tomorrow,
// and must not drain its battery waiting.
func (c *Controller) RunAutonomous() error {
	c.led(c.activityLED, gpio.High)
	c.transition(StatePrepareContent)
	buf, err := c.prepare(c.autonomous)
	if err == nil {
		c.transition(StateRender)
		err = c.display.Render(buf)
	}
	if err != nil {
		log.Printf("frame: render failed: %v", err)
	}
	c.led(c.activityLED, gpio.Low)

	c.transition(StateProgramAlarm)
	if err := c.armWake(0); err != nil {
		log.Printf("frame: arming wake alarm: %v", err)
	}

	c.transition(StatePowerDown)
	if err := c.display.Sleep(); err != nil {
		log.Printf("frame: sleeping panel: %v", err)
	}
	return c.powerOff()
}

// DrawRandom renders random walk art and refreshes the panel.
func (c *Controller) DrawRandom() error {
	return c.draw(c.randomArt)
}

// DrawCalendar renders the calendar page and refreshes the panel.
func (c *Controller) DrawCalendar() error {
	return c.draw(c.calendarArt)
}

// ClearDisplay refreshes the panel to solid white.
func (c *Controller) ClearDisplay() error {
	c.led(c.activityLED, gpio.High)
	defer c.led(c.activityLED, gpio.Low)
	return c.display.Clear(epd7in3f.White)
}

// Now reads the hardware clock.
func (c *Controller) Now() (pcf85063.Time, error) {
	return c.clock.Now()
}

// SetTime writes the hardware clock.
func (c *Controller) SetTime(t pcf85063.Time) error {
	return c.clock.SetTime(t)
}

// Battery reports the current power state.
func (c *Controller) Battery() (power.Status, error) {
	return c.power.Status()
}

// Sleep programs a wake alarm for d from now, capped by the daily wake,
// then powers the board down. If arming the alarm fails the board stays
// up and the error is returned.
func (c *Controller) Sleep(d time.Duration) error {
	if err := c.armWake(d); err != nil {
		return err
	}
	c.transition(StatePowerDown)
	if err := c.display.Sleep(); err != nil {
		log.Printf("frame: sleeping panel: %v", err)
	}
	return c.powerOff()
}

func (c *Controller) draw(r Renderer) error {
	c.led(c.activityLED, gpio.High)
	defer c.led(c.activityLED, gpio.Low)
	buf, err := c.prepare(r)
	if err != nil {
		return err
	}
	return c.display.Render(buf)
}

// prepare renders artwork into a fresh panel buffer.
func (c *Controller) prepare(r Renderer) (*epd7in3f.Buffer, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}
	now, err := c.clock.Now()
	if err != nil {
		return nil, fmt.Errorf("frame: reading clock: %w", err)
	}
	buf := epd7in3f.NewBuffer()
	buf.Rotate180 = c.rotate
	if err := r(buf, now.AsTime()); err != nil {
		return nil, fmt.Errorf("frame: rendering: %w", err)
	}
	c.heartbeat()
	return buf, nil
}

// armWake writes the clock back (so drift resets from a trusted read)
// and programs the next wake alarm: the earlier of now+d and the daily
// wake hour. d <= 0 means the daily wake alone.
func (c *Controller) armWake(d time.Duration) error {
	now, err := c.clock.Now()
	if err != nil {
		return fmt.Errorf("frame: reading clock: %w", err)
	}
	wake := nextWake(now.AsTime(), c.wakeHour, d)
	if err := c.clock.SetTime(now); err != nil {
		return fmt.Errorf("frame: writing clock: %w", err)
	}
	if err := c.clock.SetAlarm(alarmAt(wake)); err != nil {
		return fmt.Errorf("frame: setting alarm: %w", err)
	}
	if err := c.clock.ClearAlarmFlag(); err != nil {
		return fmt.Errorf("frame: clearing alarm flag: %w", err)
	}
	log.Printf("frame: next wake %s", wake.Format("2006-01-02 15:04:05"))
	return nil
}

// lowBatteryShutdown flashes the power LED, disables the wake alarm so
// the board does not brown out mid-render tomorrow, and powers down.
func (c *Controller) lowBatteryShutdown() error {
	log.Printf("frame: battery low, powering down")
	if c.powerLED != nil {
		for i := 0; i < 5; i++ {
			c.led(c.powerLED, gpio.High)
			time.Sleep(200 * time.Millisecond)
			c.led(c.powerLED, gpio.Low)
			time.Sleep(100 * time.Millisecond)
		}
	}
	if err := c.clock.DisableAlarm(); err != nil {
		log.Printf("frame: disabling alarm: %v", err)
	}
	c.transition(StatePowerDown)
	if err := c.display.Sleep(); err != nil {
		log.Printf("frame: sleeping panel: %v", err)
	}
	return c.powerOff()
}

func (c *Controller) powerOff() error {
	if err := c.batteryEnable.Out(gpio.Low); err != nil {
		return fmt.Errorf("frame: releasing power latch: %w", err)
	}
	return nil
}

func (c *Controller) transition(s State) {
	c.state = s
	log.Printf("frame: %s", s)
	c.heartbeat()
	if c.onTransition != nil {
		c.onTransition(s)
	}
}

func (c *Controller) heartbeat() {
	if c.watchdog == nil {
		return
	}
	if err := c.watchdog.Heartbeat(); err != nil {
		log.Printf("frame: watchdog heartbeat: %v", err)
	}
}

func (c *Controller) led(p gpio.PinOut, l gpio.Level) {
	if p != nil {
		_ = p.Out(l)
	}
}

// nextWake picks the next alarm moment: the daily wake hour, or now+d
// when that comes sooner. d <= 0 means no deadline.
func nextWake(now time.Time, wakeHour int, d time.Duration) time.Time {
	daily := time.Date(now.Year(), now.Month(), now.Day(), wakeHour, 0, 0, 0, now.Location())
	if !daily.After(now) {
		daily = daily.AddDate(0, 0, 1)
	}
	if d <= 0 {
		return daily
	}
	if deadline := now.Add(d); deadline.Before(daily) {
		return deadline
	}
	return daily
}

// alarmAt converts a wake moment to alarm register fields. Matching on
// second, minute, hour and day pins the exact moment; the weekday field
// stays masked.
func alarmAt(t time.Time) pcf85063.Alarm {
	return pcf85063.Alarm{
		Second:        t.Second(),
		SecondEnabled: true,
		Minute:        t.Minute(),
		MinuteEnabled: true,
		Hour:          t.Hour(),
		HourEnabled:   true,
		Day:           t.Day(),
		DayEnabled:    true,
	}
}
