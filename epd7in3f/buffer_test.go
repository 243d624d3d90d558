// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd7in3f

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestNewBufferStartsWhite(t *testing.T) {
	b := NewBuffer()
	if len(b.pix) != bufferSize {
		t.Fatalf("buffer holds %d bytes, want %d", len(b.pix), bufferSize)
	}
	if !bytes.Equal(b.pix, bytes.Repeat([]byte{0x11}, bufferSize)) {
		t.Error("fresh buffer is not all white")
	}
}

func TestSetPixelPacking(t *testing.T) {
	for _, tc := range []struct {
		name  string
		x, y  int
		color Color
		index int
		want  byte
	}{
		// Even x lands in the high nibble, odd x in the low nibble.
		{"origin", 0, 0, Black, 0, 0x01},
		{"odd x", 1, 0, Red, 0, 0x14},
		{"next byte", 2, 0, Green, 1, 0x21},
		{"second row", 0, 1, Blue, rowBytes, 0x31},
		{"last pixel", Width - 1, Height - 1, Orange, bufferSize - 1, 0x16},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuffer()
			b.SetPixel(tc.x, tc.y, tc.color)
			if got := b.pix[tc.index]; got != tc.want {
				t.Errorf("pix[%d] = %#02x, want %#02x", tc.index, got, tc.want)
			}
			if got := b.PixelAt(tc.x, tc.y); got != tc.color {
				t.Errorf("PixelAt(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.color)
			}
		})
	}
}

func TestSetPixelIgnoresBadInput(t *testing.T) {
	b := NewBuffer()
	fresh := NewBuffer()

	b.SetPixel(-1, 0, Black)
	b.SetPixel(Width, 0, Black)
	b.SetPixel(0, -1, Black)
	b.SetPixel(0, Height, Black)
	b.SetPixel(0, 0, Color(8))

	if !bytes.Equal(b.pix, fresh.pix) {
		t.Error("out-of-range or invalid writes modified the buffer")
	}
	if len(b.pix) != bufferSize {
		t.Errorf("buffer length changed to %d", len(b.pix))
	}
}

func TestRotate180(t *testing.T) {
	b := NewBuffer()
	b.Rotate180 = true

	b.SetPixel(0, 0, Black)

	// Logical (0,0) lands on physical (Width-1, Height-1), an odd x, so
	// the last byte's low nibble.
	if got := b.pix[bufferSize-1]; got != 0x10 {
		t.Errorf("pix[last] = %#02x, want 0x10", got)
	}
	if got := b.PixelAt(0, 0); got != Black {
		t.Errorf("PixelAt(0, 0) = %v, want black", got)
	}
}

func TestFill(t *testing.T) {
	b := NewBuffer()
	if err := b.Fill(Red); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b.pix, bytes.Repeat([]byte{0x44}, bufferSize)) {
		t.Error("Fill(Red) did not set every nibble")
	}
	if err := b.Fill(Color(9)); err != ErrInvalidColor {
		t.Errorf("Fill(9) = %v, want ErrInvalidColor", err)
	}
}

func TestDrawIntoBuffer(t *testing.T) {
	b := NewBuffer()

	draw.Src.Draw(b, image.Rect(0, 0, 4, 1), &image.Uniform{color.RGBA{R: 0xFF, A: 0xFF}}, image.Point{})

	for x := 0; x < 4; x++ {
		if got := b.PixelAt(x, 0); got != Red {
			t.Errorf("PixelAt(%d, 0) = %v, want red", x, got)
		}
	}
	if got := b.PixelAt(4, 0); got != White {
		t.Errorf("PixelAt(4, 0) = %v, want white", got)
	}
}

func TestSetMapsToNearestPaletteEntry(t *testing.T) {
	b := NewBuffer()

	// Slightly off red still has to land on the red ink.
	b.Set(0, 0, color.RGBA{R: 0xF0, G: 0x10, B: 0x08, A: 0xFF})

	if got := b.PixelAt(0, 0); got != Red {
		t.Errorf("PixelAt(0, 0) = %v, want red", got)
	}
}
