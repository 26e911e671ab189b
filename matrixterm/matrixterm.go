// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package matrixterm implements a display.Drawer that renders a small
// LED matrix to a terminal (stdout) using ANSI color codes.
//
// Useful to develop matrix animations while the HT16K33 board is still
// in the mail.
package matrixterm

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Opts represents the options available for this display.
type Opts struct {
	// W and H are the matrix dimensions in LEDs. Zero means 16x8.
	W, H int
	// Palette used to quantize colors. Nil means ansi256.Default.
	Palette *ansi256.Palette
	// On is the color of a lit LED. Zero value means red.
	On color.NRGBA
	// Writer receives the ANSI output. Nil means a colorable stdout.
	Writer io.Writer

	_ struct{}
}

// Dev is a LED matrix emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	rect    image.Rectangle
	palette ansi256.Palette
	on      color.NRGBA
	off     color.NRGBA

	pixels []bool
	drawn  bool
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	w, h := opts.W, opts.H
	if w == 0 && h == 0 {
		w, h = 16, 8
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	on := opts.On
	if on == (color.NRGBA{}) {
		on = color.NRGBA{R: 255, A: 255}
	}
	out := opts.Writer
	if out == nil {
		out = colorable.NewColorableStdout()
	}
	return &Dev{
		w:       out,
		rect:    image.Rect(0, 0, w, h),
		palette: *p,
		on:      on,
		off:     color.NRGBA{R: 24, G: 24, B: 24, A: 255},
		pixels:  make([]bool, w*h),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("MatrixTerm{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
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
	w := d.rect.Dx()
	for sY := srcR.Min.Y; sY < srcR.Max.Y; sY++ {
		dY := r.Min.Y + sY - srcR.Min.Y
		for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
			dX := r.Min.X + sX - srcR.Min.X
			bit := image1bit.BitModel.Convert(src.At(sX, sY)).(image1bit.Bit)
			d.pixels[dY*w+dX] = bool(bit)
		}
	}
	return d.refresh()
}

// refresh redraws the whole grid in place, one colored block per LED.
func (d *Dev) refresh() error {
	d.buf.Reset()
	if d.drawn {
		// Move back to the first row of the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dA", d.rect.Dy())
	}
	d.drawn = true
	w := d.rect.Dx()
	for y := 0; y < d.rect.Dy(); y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := 0; x < w; x++ {
			c := d.off
			if d.pixels[y*w+x] {
				c = d.on
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
