// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package matrixterm

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 4, H: 8, Writer: &buf})
	if d.Bounds() != image.Rect(0, 0, 4, 8) {
		t.Fatalf("unexpected bounds %v", d.Bounds())
	}

	img := image1bit.NewVerticalLSB(d.Bounds())
	img.SetBit(1, 0, image1bit.On)
	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[0m") {
		t.Error("missing ANSI reset sequence")
	}
	if got := strings.Count(out, "\n"); got != 8 {
		t.Errorf("got %d rows, want 8", got)
	}

	// The second frame redraws in place.
	buf.Reset()
	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[8A") {
		t.Error("second frame does not move the cursor up")
	}
}

func TestDefaults(t *testing.T) {
	d := New(&Opts{})
	if d.Bounds() != image.Rect(0, 0, 16, 8) {
		t.Errorf("unexpected default bounds %v", d.Bounds())
	}
	if d.ColorModel() != image1bit.BitModel {
		t.Error("unexpected color model")
	}
}

func TestHalt(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 2, H: 2, Writer: &buf})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\033[0m") {
		t.Error("Halt did not reset terminal attributes")
	}
}

func TestString(t *testing.T) {
	d := New(&Opts{W: 16, H: 8})
	if s := d.String(); s != "MatrixTerm{16x8}" {
		t.Errorf("unexpected String() %q", s)
	}
}
