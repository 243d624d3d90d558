// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package content

import (
	"image"
	"image/draw"
	"math/rand"

	"github.com/fogleman/gg"

	"github.com/photopainter/firmware/epd7in3f"
)

const (
	walkSteps    = 2000
	walkStepSize = 5
	walkStroke   = 3
)

// One walk per drawable color. White is the background.
var walkColors = []epd7in3f.Color{
	epd7in3f.Black,
	epd7in3f.Green,
	epd7in3f.Blue,
	epd7in3f.Red,
	epd7in3f.Yellow,
	epd7in3f.Orange,
}

// RandomWalk renders generative line art into dst: one random walk per
// panel color on a white background. The same seed always produces the
// same image.
func RandomWalk(dst draw.Image, seed int64) error {
	b := dst.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(epd7in3f.White)
	dc.Clear()
	dc.SetLineWidth(walkStroke)

	rng := rand.New(rand.NewSource(seed))
	for _, c := range walkColors {
		dc.SetColor(c)
		x := float64(100 + rng.Intn(600))
		y := float64(100 + rng.Intn(280))
		for i := 0; i < walkSteps; i++ {
			px, py := x, y
			switch rng.Intn(4) {
			case 0:
				x += walkStepSize
			case 1:
				x -= walkStepSize
			case 2:
				y += walkStepSize
			case 3:
				y -= walkStepSize
			}
			dc.DrawLine(px, py, x, y)
			dc.Stroke()
		}
	}

	draw.Draw(dst, b, dc.Image(), image.Point{}, draw.Src)
	return nil
}
