// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf85063

// DefaultAddress is the fixed I²C address of the PCF85063.
const DefaultAddress = 0x51

// Register map.
const (
	regControl1     byte = 0x00
	regControl2     byte = 0x01
	regOffset       byte = 0x02
	regRAM          byte = 0x03
	regSeconds      byte = 0x04
	regMinutes      byte = 0x05
	regHours        byte = 0x06
	regDays         byte = 0x07
	regWeekdays     byte = 0x08
	regMonths       byte = 0x09
	regYears        byte = 0x0A
	regAlarmSecond  byte = 0x0B
	regAlarmMinute  byte = 0x0C
	regAlarmHour    byte = 0x0D
	regAlarmDay     byte = 0x0E
	regAlarmWeekday byte = 0x0F
	regTimerValue   byte = 0x10
	regTimerMode    byte = 0x11
)

// Control_1 bits.
const (
	ctrl1Stop   byte = 1 << 5 // STOP: freezes the clock divider
	ctrl1Mode12 byte = 1 << 1 // 12_24: 1 selects 12-hour mode
)

// Control_2 bits.
const (
	ctrl2AIE byte = 1 << 7 // alarm interrupt enable
	ctrl2AF  byte = 1 << 6 // alarm flag, cleared by writing 0
	ctrl2MI  byte = 1 << 5 // minute interrupt enable
	ctrl2HMI byte = 1 << 4 // half-minute interrupt enable
	ctrl2TF  byte = 1 << 3 // timer flag
)

// Valid payload bits per time register. Anything outside is undefined on
// reads and must be masked before BCD decoding.
const (
	maskSeconds  byte = 0x7F
	maskMinutes  byte = 0x7F
	maskHours    byte = 0x3F
	maskDays     byte = 0x3F
	maskWeekdays byte = 0x07
	maskMonths   byte = 0x1F
	maskYears    byte = 0xFF
)

// osFlag in the seconds register reports that the oscillator stopped and
// the kept time is not to be trusted.
const osFlag byte = 1 << 7

// aeDisable is the AE_x bit carried by every alarm register. The bit is
// active low: a cleared bit means the field takes part in the match.
const aeDisable byte = 1 << 7
