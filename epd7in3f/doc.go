// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epd7in3f controls the Waveshare 7.3 inch F e-paper display, an
// 800x480 panel showing seven colors with a shared black/white/color
// refresh of roughly 35 seconds.
//
// The panel is framebuffer driven: pixels are packed two per byte into a
// Buffer, the whole buffer is streamed over SPI, and a single refresh
// commits it. A refresh draws around 40 mA where holding the image draws
// nothing, so battery-powered users initialize, render once and put the
// panel into deep sleep.
//
// Streaming and refreshing take long enough that a hardware watchdog
// would fire in between; Opts.WatchdogFeed is called between image rows
// and busy-wait polls to keep it quiet.
//
// # Datasheet
//
// https://files.waveshare.com/upload/1/18/7.3inch_e-Paper_%28F%29_Datasheet.pdf
//
// https://www.waveshare.com/wiki/7.3inch_e-Paper_HAT_(F)_Manual
package epd7in3f
