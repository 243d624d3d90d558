// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package firmware is the firmware of a battery powered 7 color e-paper
// picture frame.
//
// The frame spends almost all of its life powered off. The RTC's alarm
// output powers it up once a day, the frame renders fresh artwork to
// the panel, programs the next alarm and cuts its own power again. On
// USB power it serves a maintenance console instead.
//
// Each concern lives in its own package: pcf85063 drives the RTC,
// epd7in3f the panel, mcp3008 the battery ADC, piwatcher the external
// watchdog, power the supply monitoring, content the artwork, console
// the serial protocol and frame ties them together. cmd/photopainter is
// the binary.
package firmware
