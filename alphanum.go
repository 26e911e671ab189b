// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht16k33

import "fmt"

// Digits is the number of characters on an alphanumeric backpack.
const Digits = 4

// Display drives a 4 digit 14 segment alphanumeric backpack. It maps
// ASCII to segment glyphs; everything else, including enabling the
// display and setting brightness, comes from the embedded Dev.
type Display struct {
	*Dev
}

// NewDisplay returns a Display layered over an open Dev.
func NewDisplay(d *Dev) *Display {
	return &Display{Dev: d}
}

// OpenDisplay opens the named I²C bus and returns a Display owning it.
func OpenDisplay(busName string, opts *Opts) (*Display, error) {
	d, err := Open(busName, opts)
	if err != nil {
		return nil, err
	}
	return NewDisplay(d), nil
}

// Clear blanks all digits.
func (d *Display) Clear() error {
	for pos := 0; pos < Digits; pos++ {
		if err := d.WriteColumn(pos, 0); err != nil {
			return err
		}
	}
	return nil
}

// WriteChar displays a single character at the given digit position,
// lighting the decimal point after it when dot is set.
func (d *Display) WriteChar(pos int, r rune, dot bool) error {
	if pos < 0 || pos >= Digits {
		return fmt.Errorf("ht16k33: invalid digit position %d", pos)
	}
	g, ok := Glyph(r)
	if !ok {
		return fmt.Errorf("ht16k33: no glyph for %q", r)
	}
	if dot {
		g |= Dot
	}
	return d.WriteColumn(pos, uint16(g))
}

// WriteString displays s left aligned, blanking unused digits. A '.'
// following another character is merged into that digit's decimal
// point, so "12.4" occupies three digits.
func (d *Display) WriteString(s string) error {
	var cols [Digits]uint16
	pos := 0
	for _, r := range s {
		if r == '.' && pos > 0 && cols[pos-1]&uint16(Dot) == 0 {
			cols[pos-1] |= uint16(Dot)
			continue
		}
		if pos >= Digits {
			return fmt.Errorf("ht16k33: %q does not fit in %d digits", s, Digits)
		}
		g, ok := Glyph(r)
		if !ok {
			return fmt.Errorf("ht16k33: no glyph for %q", r)
		}
		cols[pos] = uint16(g)
		pos++
	}
	for p, data := range cols {
		if err := d.WriteColumn(p, data); err != nil {
			return err
		}
	}
	return nil
}

// WriteInt displays v right aligned. Values that do not fit in Digits
// characters are rejected.
func (d *Display) WriteInt(v int) error {
	return d.WriteString(fmt.Sprintf("%*d", Digits, v))
}
