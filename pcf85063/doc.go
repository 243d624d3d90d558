// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf85063 controls an NXP PCF85063A/TP real-time clock over I²C.
//
// The chip keeps civil time in BCD registers and can assert an interrupt
// line when the current time matches a programmed alarm, which is what lets
// a self-powered device cut its own supply and still wake up later.
//
// Time registers are written one register per transaction. The chip latches
// the time counters on the first read of a burst, so reads use a single
// 7-byte burst instead.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/PCF85063A.pdf
package pcf85063
