// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package content

import (
	"image/color"
	"math"
	"testing"

	"github.com/fogleman/gg"
)

func countSegments(p pattern) int {
	n := 0
	turtle := newTurtle(0, 0, p, func(x0, y0, x1, y1 float64) { n++ })
	turtle.run(p.axiom, p.rules, p.iterations)
	return n
}

func TestSegmentCounts(t *testing.T) {
	// Expansion sizes follow from the rewrite rules, so a wrong count
	// means the interpreter expanded or skipped the wrong symbols.
	tests := []struct {
		name string
		p    pattern
		want int
	}{
		{"peony", peony, 2058},
		{"tree", tree, 1488},
		{"snowflake", snowflake, 384},
	}
	for _, tt := range tests {
		if got := countSegments(tt.p); got != tt.want {
			t.Errorf("%s: %d segments, want %d", tt.name, got, tt.want)
		}
	}
}

func TestBracketRestoresPose(t *testing.T) {
	p := pattern{axiom: "F[+F]F", angle: 90, step: 10}
	var lastX, lastY float64
	turtle := newTurtle(0, 0, p, func(x0, y0, x1, y1 float64) {
		lastX, lastY = x1, y1
	})
	turtle.run(p.axiom, p.rules, p.iterations)

	// The bracketed branch must not displace the main stem: two F
	// steps straight up from the origin.
	if math.Abs(lastX) > 1e-9 || math.Abs(lastY+20) > 1e-9 {
		t.Errorf("final position (%g, %g), want (0, -20)", lastX, lastY)
	}
	if len(turtle.stack) != 0 {
		t.Errorf("stack not drained: %d entries", len(turtle.stack))
	}
}

func TestUnmatchedPopIsIgnored(t *testing.T) {
	p := pattern{axiom: "]F", angle: 90, step: 10}
	var lastY float64
	turtle := newTurtle(0, 0, p, func(x0, y0, x1, y1 float64) { lastY = y1 })
	turtle.run(p.axiom, p.rules, p.iterations)
	if math.Abs(lastY+10) > 1e-9 {
		t.Errorf("final y = %g, want -10", lastY)
	}
}

func TestDrawPatternStaysCentered(t *testing.T) {
	const cx, cy = 400, 240

	dc := gg.NewContext(800, 480)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	drawPattern(dc, snowflake, color.RGBA{R: 0xFF, A: 0xFF}, cx, cy)

	// All ink must land near the requested center; the level 3
	// snowflake spans roughly 210px.
	img := dc.Image()
	painted := 0
	for y := 0; y < 480; y++ {
		for x := 0; x < 800; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r == 0xFFFF && g == 0xFFFF && b == 0xFFFF {
				continue
			}
			painted++
			if math.Abs(float64(x-cx)) > 130 || math.Abs(float64(y-cy)) > 130 {
				t.Fatalf("ink at (%d, %d), outside the centered pattern box", x, y)
			}
		}
	}
	if painted == 0 {
		t.Fatal("pattern drew nothing")
	}
}
