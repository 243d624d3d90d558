// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview implements a display.Drawer that renders a scaled
// down preview of the panel to a terminal using ANSI color codes.
//
// Useful for iterating on artwork without waiting 35 seconds for an
// e-paper refresh.
package termview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// DefaultOpts matches the 7.3 inch panel at a scale that fits a
// regular terminal.
var DefaultOpts = Opts{
	Width:  800,
	Height: 480,
	Scale:  8,
}

// Opts represents the options available for this display.
type Opts struct {
	// Width and Height are the emulated panel's resolution in pixels.
	Width  int
	Height int
	// Scale is how many source pixels one character column covers. A
	// character cell being about twice as tall as wide, one row covers
	// 2*Scale pixels so the preview keeps the panel's aspect ratio.
	Scale int
	// Palette overrides the ANSI palette used for quantization.
	Palette *ansi256.Palette
	// W overrides where the preview is written. Defaults to stdout.
	W io.Writer

	_ struct{}
}

// Dev is a panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	size    image.Point
	scale   int
	palette ansi256.Palette

	pixels []byte
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	d := &Dev{
		w:       w,
		size:    image.Point{X: opts.Width, Y: opts.Height},
		scale:   scale,
		palette: *p,
		pixels:  make([]byte, 3*opts.Width*opts.Height),
	}
	for i := range d.pixels {
		d.pixels[i] = 0xFF
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermView{%dx%d}", d.size.X, d.size.Y)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: d.size}
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	if dY := r.Dy(); dY < srcR.Dy() {
		srcR.Max.Y = srcR.Min.Y + dY
	}
	for sY := srcR.Min.Y; sY < srcR.Max.Y; sY++ {
		dY := sY - srcR.Min.Y + r.Min.Y
		for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
			r16, g16, b16, _ := src.At(sX, sY).RGBA()
			p := 3 * ((sX - srcR.Min.X + r.Min.X) + dY*d.size.X)
			d.pixels[p] = byte(r16 >> 8)
			d.pixels[p+1] = byte(g16 >> 8)
			d.pixels[p+2] = byte(b16 >> 8)
		}
	}
	return d.refresh()
}

func (d *Dev) refresh() error {
	// One character covers a scale wide, 2*scale tall block of pixels,
	// averaged.
	cellW := d.scale
	cellH := 2 * d.scale
	cols := (d.size.X + cellW - 1) / cellW
	rows := (d.size.Y + cellH - 1) / cellH
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[0m")
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := d.cell(x*cellW, y*cellH, cellW, cellH)
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// cell averages the pixel block starting at (x0, y0).
func (d *Dev) cell(x0, y0, w, h int) color.NRGBA {
	var r, g, b, n uint32
	for y := y0; y < y0+h && y < d.size.Y; y++ {
		for x := x0; x < x0+w && x < d.size.X; x++ {
			p := 3 * (x + y*d.size.X)
			r += uint32(d.pixels[p])
			g += uint32(d.pixels[p+1])
			b += uint32(d.pixels[p+2])
			n++
		}
	}
	if n == 0 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: byte(r / n), G: byte(g / n), B: byte(b / n), A: 255}
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
