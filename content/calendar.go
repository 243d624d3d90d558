// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package content

import (
	"fmt"
	"image"
	"image/draw"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/photopainter/firmware/epd7in3f"
)

// Calendar page layout. Tuned for the 800x480 panel.
const (
	borderMargin    = 100
	weekdayY        = 50
	dayNumberY      = 150
	monthY          = 200
	yearY           = 240
	decorativeLineY = 270
	quoteStartY     = 300
	quoteLineHeight = 30
	maxLineChars    = 40
	patternY        = 150
)

// Accent rotates through the three strong panel colors with the day of
// year, so consecutive days look different but a given day always
// renders the same.
var accents = []epd7in3f.Color{epd7in3f.Red, epd7in3f.Green, epd7in3f.Blue}

// One fractal per accent color.
var accentPatterns = []pattern{peony, tree, snowflake}

// Calendar renders a calendar page for the given date into dst: weekday,
// a large day number in the day's accent color, month and year, a pair
// of L-system fractals, and the quote of the day.
func Calendar(dst draw.Image, date time.Time) error {
	b := dst.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(epd7in3f.White)
	dc.Clear()

	centerX := float64(b.Dx()) / 2

	doy := dayOfYear(date.Year(), int(date.Month()), date.Day())
	dow := dayOfWeek(date.Year(), int(date.Month()), date.Day())
	accent := accents[doy%len(accents)]
	q := quoteForDay(doy)

	drawPattern(dc, accentPatterns[doy%len(accents)], accent, borderMargin, patternY)
	drawPattern(dc, accentPatterns[doy%len(accents)], accent, float64(b.Dx()-borderMargin), patternY)

	heading, err := newFace(gobold.TTF, 28)
	if err != nil {
		return err
	}
	big, err := newFace(gobold.TTF, 80)
	if err != nil {
		return err
	}
	body, err := newFace(goregular.TTF, 20)
	if err != nil {
		return err
	}

	dc.SetFontFace(heading)
	dc.SetColor(epd7in3f.Black)
	dc.DrawStringAnchored(weekdayName(dow), centerX, weekdayY, 0.5, 0)

	dc.SetFontFace(big)
	dc.SetColor(accent)
	dc.DrawStringAnchored(fmt.Sprintf("%d", date.Day()), centerX, dayNumberY, 0.5, 0)

	dc.SetFontFace(heading)
	dc.SetColor(epd7in3f.Black)
	dc.DrawStringAnchored(monthName(int(date.Month())), centerX, monthY, 0.5, 0)
	dc.DrawStringAnchored(fmt.Sprintf("%d", date.Year()), centerX, yearY, 0.5, 0)

	dc.SetColor(accent)
	dc.SetLineWidth(2)
	dc.DrawLine(borderMargin, decorativeLineY, float64(b.Dx()-borderMargin), decorativeLineY)
	dc.Stroke()

	dc.SetFontFace(body)
	dc.SetColor(epd7in3f.Black)
	y := float64(quoteStartY)
	for _, line := range wrapWords(q.text, maxLineChars) {
		dc.DrawStringAnchored(line, centerX, y, 0.5, 0)
		y += quoteLineHeight
	}
	dc.DrawStringAnchored("- "+q.author, centerX, y+4, 0.5, 0)

	draw.Draw(dst, b, dc.Image(), image.Point{}, draw.Src)
	return nil
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("content: parsing font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}

// wrapWords greedily wraps s into lines of at most max characters. A
// single word longer than max gets a line of its own.
func wrapWords(s string, max int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if len(candidate) > max && line != "" {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// dayOfWeek computes the weekday of a date with Zeller's congruence,
// mapped so 0 is Sunday.
func dayOfWeek(year, month, day int) int {
	y, m := year, month
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	h := (day + 13*(m+1)/5 + k + k/4 + j/4 + 5*j) % 7
	// Zeller counts from Saturday.
	return (h + 6) % 7
}

// dayOfYear returns the 1-based ordinal of the date within its year.
func dayOfYear(year, month, day int) int {
	daysInMonth := [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	leap := (year%4 == 0 && year%100 != 0) || year%400 == 0

	days := day
	for m := 1; m < month; m++ {
		days += daysInMonth[m-1]
		if m == 2 && leap {
			days++
		}
	}
	return days
}

func weekdayName(dow int) string {
	names := [...]string{"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"}
	if dow < 0 || dow >= len(names) {
		return "UNKNOWN"
	}
	return names[dow]
}

func monthName(month int) string {
	names := [...]string{
		"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
		"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
	}
	if month < 1 || month > len(names) {
		return "UNKNOWN"
	}
	return names[month-1]
}
