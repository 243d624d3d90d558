// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package content generates the artwork the photo frame shows: a daily
// calendar page with a quote and L-system fractals, and random walk
// line art. Generators draw into any draw.Image; on the frame that is
// an epd7in3f.Buffer, which quantizes everything to the panel's seven
// color palette.
package content
