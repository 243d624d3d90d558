// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf85063

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

var (
	// ErrInvalidTime is returned when a Time field is outside the range
	// the chip can store.
	ErrInvalidTime = errors.New("pcf85063: time field out of range")

	// ErrInvalidAlarm is returned when an enabled Alarm field is outside
	// the range the chip can match.
	ErrInvalidAlarm = errors.New("pcf85063: alarm field out of range")

	// ErrInvalidBCD is returned when a time register holds a nibble above
	// 9, meaning the register content is corrupt rather than merely wrong.
	ErrInvalidBCD = errors.New("pcf85063: invalid BCD digits")
)

// Time is a calendar time as the chip stores it. Year is relative to 2000
// and spans 0 to 99.
type Time struct {
	Year    int
	Month   time.Month
	Day     int
	Weekday time.Weekday
	Hour    int
	Minute  int
	Second  int
}

// AsTime converts t to a time.Time in UTC.
func (t Time) AsTime() time.Time {
	return time.Date(2000+t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, 0, time.UTC)
}

// String formats t as "2006-01-02 15:04:05".
func (t Time) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		2000+t.Year, int(t.Month), t.Day, t.Hour, t.Minute, t.Second)
}

func (t Time) validate() error {
	switch {
	case t.Year < 0 || t.Year > 99:
		return fmt.Errorf("%w: year %d", ErrInvalidTime, t.Year)
	case t.Month < time.January || t.Month > time.December:
		return fmt.Errorf("%w: month %d", ErrInvalidTime, int(t.Month))
	case t.Day < 1 || t.Day > 31:
		return fmt.Errorf("%w: day %d", ErrInvalidTime, t.Day)
	case t.Weekday < time.Sunday || t.Weekday > time.Saturday:
		return fmt.Errorf("%w: weekday %d", ErrInvalidTime, int(t.Weekday))
	case t.Hour < 0 || t.Hour > 23:
		return fmt.Errorf("%w: hour %d", ErrInvalidTime, t.Hour)
	case t.Minute < 0 || t.Minute > 59:
		return fmt.Errorf("%w: minute %d", ErrInvalidTime, t.Minute)
	case t.Second < 0 || t.Second > 59:
		return fmt.Errorf("%w: second %d", ErrInvalidTime, t.Second)
	}
	return nil
}

// FromTime converts a time.Time to the chip's representation. The year is
// clamped to the 2000 to 2099 window the chip can hold.
func FromTime(t time.Time) Time {
	y := t.Year() - 2000
	if y < 0 {
		y = 0
	} else if y > 99 {
		y = 99
	}
	return Time{
		Year:    y,
		Month:   t.Month(),
		Day:     t.Day(),
		Weekday: t.Weekday(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}
}

// Alarm selects which time fields must match for the alarm interrupt to
// fire. Only fields with their Enabled flag set take part in the match:
// enabling Minute and Hour alone gives a daily alarm, adding Day pins it
// to one date.
type Alarm struct {
	Second         int
	SecondEnabled  bool
	Minute         int
	MinuteEnabled  bool
	Hour           int
	HourEnabled    bool
	Day            int
	DayEnabled     bool
	Weekday        time.Weekday
	WeekdayEnabled bool
}

func (a Alarm) validate() error {
	switch {
	case a.SecondEnabled && (a.Second < 0 || a.Second > 59):
		return fmt.Errorf("%w: second %d", ErrInvalidAlarm, a.Second)
	case a.MinuteEnabled && (a.Minute < 0 || a.Minute > 59):
		return fmt.Errorf("%w: minute %d", ErrInvalidAlarm, a.Minute)
	case a.HourEnabled && (a.Hour < 0 || a.Hour > 23):
		return fmt.Errorf("%w: hour %d", ErrInvalidAlarm, a.Hour)
	case a.DayEnabled && (a.Day < 1 || a.Day > 31):
		return fmt.Errorf("%w: day %d", ErrInvalidAlarm, a.Day)
	case a.WeekdayEnabled && (a.Weekday < time.Sunday || a.Weekday > time.Saturday):
		return fmt.Errorf("%w: weekday %d", ErrInvalidAlarm, int(a.Weekday))
	}
	return nil
}

// Dev is a handle to a PCF85063 on an I²C bus.
type Dev struct {
	d *i2c.Dev
}

// New opens the RTC at its fixed address 0x51.
//
// The chip is probed by reading Control_1 and, when needed, switched to
// 24-hour mode with the clock divider running. The time registers are
// never touched: a software reset here would destroy the very state the
// chip is there to preserve across power-down.
func New(b i2c.Bus) (*Dev, error) {
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: DefaultAddress}}
	ctrl1, err := d.readReg(regControl1)
	if err != nil {
		return nil, fmt.Errorf("pcf85063: probing: %w", err)
	}
	if ctrl1&(ctrl1Mode12|ctrl1Stop) != 0 {
		if err := d.writeReg(regControl1, ctrl1&^(ctrl1Mode12|ctrl1Stop)); err != nil {
			return nil, fmt.Errorf("pcf85063: selecting 24-hour mode: %w", err)
		}
	}
	return d, nil
}

// Now reads the current time in one 7-byte burst. The chip freezes the
// counters for the duration of the burst, so the fields are coherent.
func (d *Dev) Now() (Time, error) {
	var buf [7]byte
	if err := d.d.Tx([]byte{regSeconds}, buf[:]); err != nil {
		return Time{}, fmt.Errorf("pcf85063: reading time: %w", err)
	}

	var t Time
	var err error
	if t.Second, err = fromBCD(buf[0] & maskSeconds); err != nil {
		return Time{}, fmt.Errorf("%w (seconds 0x%02X)", err, buf[0])
	}
	if t.Minute, err = fromBCD(buf[1] & maskMinutes); err != nil {
		return Time{}, fmt.Errorf("%w (minutes 0x%02X)", err, buf[1])
	}
	if t.Hour, err = fromBCD(buf[2] & maskHours); err != nil {
		return Time{}, fmt.Errorf("%w (hours 0x%02X)", err, buf[2])
	}
	if t.Day, err = fromBCD(buf[3] & maskDays); err != nil {
		return Time{}, fmt.Errorf("%w (days 0x%02X)", err, buf[3])
	}
	wd, err := fromBCD(buf[4] & maskWeekdays)
	if err != nil {
		return Time{}, fmt.Errorf("%w (weekdays 0x%02X)", err, buf[4])
	}
	t.Weekday = time.Weekday(wd)
	m, err := fromBCD(buf[5] & maskMonths)
	if err != nil {
		return Time{}, fmt.Errorf("%w (months 0x%02X)", err, buf[5])
	}
	t.Month = time.Month(m)
	if t.Year, err = fromBCD(buf[6] & maskYears); err != nil {
		return Time{}, fmt.Errorf("%w (years 0x%02X)", err, buf[6])
	}
	return t, nil
}

// SetTime programs the clock. Each of the seven time registers is written
// in its own two-byte transaction; the chip's write latching misbehaves on
// multi-register time bursts, so a burst write here is never correct.
func (d *Dev) SetTime(t Time) error {
	if err := t.validate(); err != nil {
		return err
	}
	for _, w := range []struct {
		reg byte
		val byte
	}{
		{regSeconds, toBCD(t.Second)},
		{regMinutes, toBCD(t.Minute)},
		{regHours, toBCD(t.Hour)},
		{regDays, toBCD(t.Day)},
		{regWeekdays, toBCD(int(t.Weekday))},
		{regMonths, toBCD(int(t.Month))},
		{regYears, toBCD(t.Year)},
	} {
		if err := d.writeReg(w.reg, w.val); err != nil {
			return fmt.Errorf("pcf85063: writing register 0x%02X: %w", w.reg, err)
		}
	}
	return nil
}

// SetAlarm programs the alarm registers and enables the alarm interrupt.
// A stale alarm flag is dropped so the interrupt line only asserts on the
// next real match.
func (d *Dev) SetAlarm(a Alarm) error {
	if err := a.validate(); err != nil {
		return err
	}
	for _, w := range []struct {
		reg byte
		val byte
	}{
		{regAlarmSecond, alarmField(toBCD(a.Second), a.SecondEnabled)},
		{regAlarmMinute, alarmField(toBCD(a.Minute), a.MinuteEnabled)},
		{regAlarmHour, alarmField(toBCD(a.Hour), a.HourEnabled)},
		{regAlarmDay, alarmField(toBCD(a.Day), a.DayEnabled)},
		{regAlarmWeekday, alarmField(toBCD(int(a.Weekday)), a.WeekdayEnabled)},
	} {
		if err := d.writeReg(w.reg, w.val); err != nil {
			return fmt.Errorf("pcf85063: writing register 0x%02X: %w", w.reg, err)
		}
	}
	return d.updateControl2(func(v byte) byte {
		return (v | ctrl2AIE) &^ ctrl2AF
	})
}

// ReadAlarm returns the programmed alarm. Disabled fields read back as
// zero values with their Enabled flag cleared.
func (d *Dev) ReadAlarm() (Alarm, error) {
	var buf [5]byte
	if err := d.d.Tx([]byte{regAlarmSecond}, buf[:]); err != nil {
		return Alarm{}, fmt.Errorf("pcf85063: reading alarm: %w", err)
	}

	var a Alarm
	var err error
	if a.SecondEnabled = buf[0]&aeDisable == 0; a.SecondEnabled {
		if a.Second, err = fromBCD(buf[0] & maskSeconds); err != nil {
			return Alarm{}, fmt.Errorf("%w (alarm seconds 0x%02X)", err, buf[0])
		}
	}
	if a.MinuteEnabled = buf[1]&aeDisable == 0; a.MinuteEnabled {
		if a.Minute, err = fromBCD(buf[1] & maskMinutes); err != nil {
			return Alarm{}, fmt.Errorf("%w (alarm minutes 0x%02X)", err, buf[1])
		}
	}
	if a.HourEnabled = buf[2]&aeDisable == 0; a.HourEnabled {
		if a.Hour, err = fromBCD(buf[2] & maskHours); err != nil {
			return Alarm{}, fmt.Errorf("%w (alarm hours 0x%02X)", err, buf[2])
		}
	}
	if a.DayEnabled = buf[3]&aeDisable == 0; a.DayEnabled {
		if a.Day, err = fromBCD(buf[3] & maskDays); err != nil {
			return Alarm{}, fmt.Errorf("%w (alarm days 0x%02X)", err, buf[3])
		}
	}
	if a.WeekdayEnabled = buf[4]&aeDisable == 0; a.WeekdayEnabled {
		wd, err := fromBCD(buf[4] & maskWeekdays)
		if err != nil {
			return Alarm{}, fmt.Errorf("%w (alarm weekdays 0x%02X)", err, buf[4])
		}
		a.Weekday = time.Weekday(wd)
	}
	return a, nil
}

// AlarmTriggered reports whether the alarm has fired since the flag was
// last cleared. On the PhotoPainter board the alarm output is what powers
// the device back up, so at boot this distinguishes an alarm wake from a
// button press.
func (d *Dev) AlarmTriggered() (bool, error) {
	v, err := d.readReg(regControl2)
	if err != nil {
		return false, fmt.Errorf("pcf85063: reading Control_2: %w", err)
	}
	return v&ctrl2AF != 0, nil
}

// ClearAlarmFlag acknowledges a fired alarm. The alarm interrupt enable is
// left as it is, so a programmed alarm stays armed for its next match.
func (d *Dev) ClearAlarmFlag() error {
	return d.updateControl2(func(v byte) byte {
		return v &^ ctrl2AF
	})
}

// DisableAlarm masks every alarm field and turns the alarm interrupt off.
// Used when the battery is too low to survive another wake-up.
func (d *Dev) DisableAlarm() error {
	for _, reg := range []byte{regAlarmSecond, regAlarmMinute, regAlarmHour, regAlarmDay, regAlarmWeekday} {
		if err := d.writeReg(reg, aeDisable); err != nil {
			return fmt.Errorf("pcf85063: writing register 0x%02X: %w", reg, err)
		}
	}
	return d.updateControl2(func(v byte) byte {
		return v &^ (ctrl2AIE | ctrl2AF)
	})
}

// OscillatorStopped reports whether the oscillator lost power since the
// time was last set, meaning Now() returns a time not to be trusted.
func (d *Dev) OscillatorStopped() (bool, error) {
	v, err := d.readReg(regSeconds)
	if err != nil {
		return false, fmt.Errorf("pcf85063: reading seconds: %w", err)
	}
	return v&osFlag != 0, nil
}

// RAM reads the chip's single byte of battery-backed scratch RAM.
func (d *Dev) RAM() (byte, error) {
	v, err := d.readReg(regRAM)
	if err != nil {
		return 0, fmt.Errorf("pcf85063: reading RAM: %w", err)
	}
	return v, nil
}

// SetRAM writes the chip's single byte of battery-backed scratch RAM.
func (d *Dev) SetRAM(v byte) error {
	if err := d.writeReg(regRAM, v); err != nil {
		return fmt.Errorf("pcf85063: writing RAM: %w", err)
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("PCF85063{%s}", d.d)
}

// Halt implements conn.Resource. The clock keeps running; there is nothing
// to stop.
func (d *Dev) Halt() error {
	return nil
}

func (d *Dev) updateControl2(f func(byte) byte) error {
	v, err := d.readReg(regControl2)
	if err != nil {
		return fmt.Errorf("pcf85063: reading Control_2: %w", err)
	}
	if err := d.writeReg(regControl2, f(v)); err != nil {
		return fmt.Errorf("pcf85063: writing Control_2: %w", err)
	}
	return nil
}

func (d *Dev) readReg(reg byte) (byte, error) {
	var buf [1]byte
	if err := d.d.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (d *Dev) writeReg(reg, val byte) error {
	return d.d.Tx([]byte{reg, val}, nil)
}

func alarmField(bcd byte, enabled bool) byte {
	if !enabled {
		return aeDisable
	}
	return bcd
}

func toBCD(v int) byte {
	return byte(v/10)<<4 | byte(v%10)
}

func fromBCD(b byte) (int, error) {
	hi, lo := int(b>>4), int(b&0x0F)
	if hi > 9 || lo > 9 {
		return 0, ErrInvalidBCD
	}
	return hi*10 + lo, nil
}
