// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package power reads the photo frame's supply state: battery voltage
// through a resistor divider on an ADC pin, USB presence on the VBUS
// sense pin and the charger's open-drain status pin.
//
// The battery decides the device's whole behavior. On USB power the
// firmware stays up and serves the console; on battery it renders once
// and cuts its own supply, and below the low-battery threshold it skips
// even that, because a brown-out mid-refresh leaves the panel streaked.
package power

import (
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// LowThreshold is the battery voltage below which rendering is skipped.
// Exactly this voltage still counts as usable.
const LowThreshold = 3100 * physic.MilliVolt

// defaultDivider matches the board's 2:1 resistor divider plus the
// measurement being taken at a third of the battery rail.
const defaultDivider = 3

// Opts holds optional configuration.
type Opts struct {
	// Divider is the ratio of battery voltage to the voltage seen by the
	// ADC pin. Defaults to 3, the stock board's divider.
	Divider int
}

// Status is a one-shot snapshot of the supply.
type Status struct {
	// Battery is the battery rail voltage, after undoing the divider.
	Battery physic.ElectricPotential
	// USBPresent reports VBUS carrying voltage.
	USBPresent bool
	// Charging reports the charger actively charging. Only ever true
	// while USBPresent is.
	Charging bool
	// Low reports the battery being below LowThreshold.
	Low bool
}

// Millivolts returns the battery voltage in whole millivolts.
func (s Status) Millivolts() int {
	return int(s.Battery / physic.MilliVolt)
}

func (s Status) String() string {
	return fmt.Sprintf("%s usb=%t charging=%t low=%t", s.Battery, s.USBPresent, s.Charging, s.Low)
}

// Monitor reads the supply state.
type Monitor struct {
	battery analog.PinADC
	vbus    gpio.PinIn
	charge  gpio.PinIn
	divider int
}

// New wires up a Monitor. battery senses the divided battery rail, vbus
// is high when USB power is present and charge is pulled low by the
// charger while charging. opts may be nil.
func New(battery analog.PinADC, vbus, charge gpio.PinIn, opts *Opts) (*Monitor, error) {
	if err := vbus.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("power: configuring VBUS sense: %w", err)
	}
	if err := charge.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("power: configuring charge sense: %w", err)
	}
	m := &Monitor{
		battery: battery,
		vbus:    vbus,
		charge:  charge,
		divider: defaultDivider,
	}
	if opts != nil && opts.Divider > 0 {
		m.divider = opts.Divider
	}
	return m, nil
}

// BatteryVoltage samples the ADC once and scales the reading back to the
// battery rail. No averaging: the rail is buffered well enough that one
// sample is representative, and on wake-up every millisecond of being
// awake costs charge.
func (m *Monitor) BatteryVoltage() (physic.ElectricPotential, error) {
	s, err := m.battery.Read()
	if err != nil {
		return 0, fmt.Errorf("power: reading battery ADC: %w", err)
	}
	_, max := m.battery.Range()
	if max.Raw <= 0 {
		// Pin reports engineering units directly.
		return s.V * physic.ElectricPotential(m.divider), nil
	}
	counts := int64(max.Raw) + 1
	v := physic.ElectricPotential(int64(s.Raw) * int64(max.V) / counts)
	return v * physic.ElectricPotential(m.divider), nil
}

// USBPresent reports whether VBUS carries voltage.
func (m *Monitor) USBPresent() bool {
	return m.vbus.Read() == gpio.High
}

// Charging reports whether the charger is actively charging. The status
// pin floats when USB is absent, so it is only meaningful combined with
// VBUS.
func (m *Monitor) Charging() bool {
	return m.charge.Read() == gpio.Low && m.USBPresent()
}

// Status reads everything in one go.
func (m *Monitor) Status() (Status, error) {
	v, err := m.BatteryVoltage()
	if err != nil {
		return Status{}, err
	}
	usb := m.USBPresent()
	return Status{
		Battery:    v,
		USBPresent: usb,
		Charging:   m.charge.Read() == gpio.Low && usb,
		Low:        isLow(v),
	}, nil
}

func (m *Monitor) String() string {
	return fmt.Sprintf("power.Monitor{%s, %s, %s}", m.battery, m.vbus, m.charge)
}

func isLow(v physic.ElectricPotential) bool {
	return v < LowThreshold
}
