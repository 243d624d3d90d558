// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd7in3f

import (
	"bytes"
	"image"
	"image/color"
)

// Display resolution.
const (
	Width  = 800
	Height = 480
)

const (
	// Two pixels per byte.
	rowBytes   = Width / 2
	bufferSize = rowBytes * Height
)

// Color is one of the panel's pixel values. The panel knows seven real
// colors; Clean drives the particles to a neutral state and is only useful
// for de-ghosting, not for drawing.
type Color byte

const (
	Black Color = iota
	White
	Green
	Blue
	Red
	Yellow
	Orange
	Clean
)

// RGBA implements color.Color with the nominal sRGB rendering of c.
func (c Color) RGBA() (r, g, b, a uint32) {
	var v color.RGBA
	switch c {
	case Black:
		v = color.RGBA{A: 0xFF}
	case Green:
		v = color.RGBA{G: 0xFF, A: 0xFF}
	case Blue:
		v = color.RGBA{B: 0xFF, A: 0xFF}
	case Red:
		v = color.RGBA{R: 0xFF, A: 0xFF}
	case Yellow:
		v = color.RGBA{R: 0xFF, G: 0xFF, A: 0xFF}
	case Orange:
		v = color.RGBA{R: 0xFF, G: 0xA5, A: 0xFF}
	default:
		// White, and Clean which leaves the panel white.
		v = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	return v.RGBA()
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Orange:
		return "orange"
	case Clean:
		return "clean"
	}
	return "invalid"
}

// Palette holds the seven drawable colors. Arbitrary colors are matched
// against it, so images prepared with exactly these sRGB values map onto
// the panel without surprises.
var Palette = color.Palette{Black, White, Green, Blue, Red, Yellow, Orange}

// Buffer is a packed 4-bit frame for the panel, two pixels per byte with
// the even x pixel in the high nibble. It is 187.5 KiB and meant to be
// allocated once and reused for every frame.
//
// Buffer implements draw.Image so image/draw and any renderer targeting
// the standard image interfaces can compose straight into panel memory.
type Buffer struct {
	// Rotate180 flips the coordinate system for mounts with the panel
	// upside down, as on the stock frame.
	Rotate180 bool

	pix []byte
}

// NewBuffer returns a framebuffer cleared to white.
func NewBuffer() *Buffer {
	b := &Buffer{pix: make([]byte, bufferSize)}
	b.fill(White)
	return b
}

// SetPixel sets the pixel at (x, y). Out-of-range coordinates and invalid
// color values are ignored. This is the hot path for generated drawings,
// hence no error return.
func (b *Buffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= Width || y < 0 || y >= Height || c > Clean {
		return
	}
	if b.Rotate180 {
		x, y = Width-1-x, Height-1-y
	}
	i := (y*Width + x) / 2
	if x%2 == 0 {
		b.pix[i] = byte(c)<<4 | b.pix[i]&0x0F
	} else {
		b.pix[i] = b.pix[i]&0xF0 | byte(c)
	}
}

// PixelAt returns the color of the pixel at (x, y). Out-of-range
// coordinates read as White.
func (b *Buffer) PixelAt(x, y int) Color {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return White
	}
	if b.Rotate180 {
		x, y = Width-1-x, Height-1-y
	}
	i := (y*Width + x) / 2
	if x%2 == 0 {
		return Color(b.pix[i] >> 4)
	}
	return Color(b.pix[i] & 0x0F)
}

// Fill floods the whole frame with c.
func (b *Buffer) Fill(c Color) error {
	if c > Clean {
		return ErrInvalidColor
	}
	b.fill(c)
	return nil
}

func (b *Buffer) fill(c Color) {
	for i := range b.pix {
		b.pix[i] = byte(c)<<4 | byte(c)
	}
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model {
	return Palette
}

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color {
	return b.PixelAt(x, y)
}

// Set implements draw.Image. The color is reduced to the nearest palette
// entry.
func (b *Buffer) Set(x, y int, c color.Color) {
	b.SetPixel(x, y, Palette.Convert(c).(Color))
}

func solidRow(c Color) []byte {
	return bytes.Repeat([]byte{byte(c)<<4 | byte(c)}, rowBytes)
}
