// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht16k33

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Matrix dimensions on the 16x8 backpack wiring: each of the 8 column
// registers holds one row of 16 LEDs.
const (
	MatrixWidth  = 16
	MatrixHeight = 8
)

// Matrix exposes a 16x8 LED matrix backpack as a display.Drawer.
//
// Rows whose content did not change since the previous frame are not
// rewritten, so animations only pay for the registers they touch.
type Matrix struct {
	dev  *Dev
	rect image.Rectangle

	// Last row words sent to the chip, valid once primed.
	rows   [MatrixHeight]uint16
	primed bool
	// next is lazy initialized on the first generic Draw().
	next *image1bit.VerticalLSB
}

// NewMatrix returns a Matrix layered over an open Dev.
func NewMatrix(d *Dev) *Matrix {
	return &Matrix{dev: d, rect: image.Rect(0, 0, MatrixWidth, MatrixHeight)}
}

func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix{%s}", m.dev)
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (m *Matrix) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (m *Matrix) Bounds() image.Rectangle {
	return m.rect
}

// Draw implements display.Drawer.
//
// It draws synchronously; once this function returns the matrix is
// updated.
func (m *Matrix) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == m.rect && img.Rect == m.rect && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, image1bit encoding: fast path!
		return m.drawBits(img)
	}
	// Double buffering.
	if m.next == nil {
		m.next = image1bit.NewVerticalLSB(m.rect)
	}
	draw.Src.Draw(m.next, r, src, sp)
	return m.drawBits(m.next)
}

// Write writes a full frame of row words, rows[0] being the top row and
// bit 0 the leftmost LED. It accepts exactly MatrixHeight words.
func (m *Matrix) Write(rows []uint16) (int, error) {
	if len(rows) != MatrixHeight {
		return 0, fmt.Errorf("ht16k33: invalid frame length; expected %d row words, got %d", MatrixHeight, len(rows))
	}
	var frame [MatrixHeight]uint16
	copy(frame[:], rows)
	if err := m.flush(&frame); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Clear turns all LEDs off.
func (m *Matrix) Clear() error {
	var frame [MatrixHeight]uint16
	return m.flush(&frame)
}

// Halt implements conn.Resource. It clears the matrix.
func (m *Matrix) Halt() error {
	return m.Clear()
}

// drawBits transposes the vertically packed pixels into row words. The
// image is 8 pixels high, so Pix holds a single band and Pix[x] is
// column x top to bottom, LSB first.
func (m *Matrix) drawBits(img *image1bit.VerticalLSB) error {
	var frame [MatrixHeight]uint16
	for x := 0; x < MatrixWidth; x++ {
		b := img.Pix[x]
		for y := 0; y < MatrixHeight; y++ {
			if b&(1<<y) != 0 {
				frame[y] |= 1 << x
			}
		}
	}
	return m.flush(&frame)
}

func (m *Matrix) flush(frame *[MatrixHeight]uint16) error {
	for y, data := range frame {
		if m.primed && m.rows[y] == data {
			continue
		}
		if err := m.dev.WriteColumn(y, data); err != nil {
			return err
		}
		m.rows[y] = data
	}
	m.primed = true
	return nil
}

var _ display.Drawer = &Matrix{}
