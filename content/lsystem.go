// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package content

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// pattern is an L-system: an axiom, rewrite rules, and turtle
// parameters. The interpreter streams the expansion recursively instead
// of materializing the rewritten string, so deep iterations stay cheap.
type pattern struct {
	axiom      string
	rules      map[byte]string
	angle      float64 // turn per + or -, in degrees
	iterations int
	step       float64
}

// peony is a Gosper curve arranged as a 6-fold flower.
var peony = pattern{
	axiom: "XF-XF-XF-XF-XF-XF",
	rules: map[byte]string{
		'X': "X+YF++YF-FX--FXFX-YF+",
		'Y': "-FX+YFYF++YF+FX--FX+Y",
	},
	angle:      60.0,
	iterations: 3,
	step:       2.0,
}

// tree is the classic bracketed L-system tree.
var tree = pattern{
	axiom: "X",
	rules: map[byte]string{
		'X': "F-[[X]+X]+F[+FX]-X",
		'F': "FF",
	},
	angle:      22.5,
	iterations: 5,
	step:       2.0,
}

// snowflake is a Koch snowflake variant.
var snowflake = pattern{
	axiom: "F++F++F++F++F++F",
	rules: map[byte]string{
		'F': "F-F++F-F",
	},
	angle:      60.0,
	iterations: 3,
	step:       3.0,
}

type turtlePose struct {
	x, y    float64
	heading float64
}

// turtle walks an L-system expansion. Segments are reported through
// trace, which either collects a bounding box or draws, depending on
// the pass.
type turtle struct {
	pose  turtlePose
	step  float64
	turn  float64
	stack []turtlePose
	trace func(x0, y0, x1, y1 float64)
}

func newTurtle(x, y float64, p pattern, trace func(x0, y0, x1, y1 float64)) *turtle {
	return &turtle{
		// Start pointing up.
		pose:  turtlePose{x: x, y: y, heading: -math.Pi / 2},
		step:  p.step,
		turn:  p.angle * math.Pi / 180,
		trace: trace,
	}
}

func (t *turtle) exec(c byte) {
	switch c {
	case 'F':
		sin, cos := math.Sincos(t.pose.heading)
		x := t.pose.x + cos*t.step
		y := t.pose.y + sin*t.step
		t.trace(t.pose.x, t.pose.y, x, y)
		t.pose.x = x
		t.pose.y = y
	case '+':
		t.pose.heading += t.turn
	case '-':
		t.pose.heading -= t.turn
	case '|':
		t.pose.heading += math.Pi
	case '[':
		t.stack = append(t.stack, t.pose)
	case ']':
		if n := len(t.stack); n > 0 {
			t.pose = t.stack[n-1]
			t.stack = t.stack[:n-1]
		}
	}
}

// run expands seq through the rules depth times, executing terminal
// symbols as it goes.
func (t *turtle) run(seq string, rules map[byte]string, depth int) {
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if depth > 0 {
			if replacement, ok := rules[c]; ok {
				t.run(replacement, rules, depth-1)
				continue
			}
		}
		t.exec(c)
	}
}

// drawPattern renders p centered on (cx, cy). A first pass measures the
// bounding box from the origin, a second pass draws with the start
// shifted so the box lands centered on the target.
func drawPattern(dc *gg.Context, p pattern, c color.Color, cx, cy float64) {
	var minX, maxX, minY, maxY float64
	measure := newTurtle(0, 0, p, func(x0, y0, x1, y1 float64) {
		minX = math.Min(minX, x1)
		maxX = math.Max(maxX, x1)
		minY = math.Min(minY, y1)
		maxY = math.Max(maxY, y1)
	})
	measure.run(p.axiom, p.rules, p.iterations)

	x := cx - (minX+maxX)/2
	y := cy - (minY+maxY)/2

	dc.SetColor(c)
	dc.SetLineWidth(1)
	draw := newTurtle(x, y, p, func(x0, y0, x1, y1 float64) {
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()
	})
	draw.run(p.axiom, p.rules, p.iterations)
}
