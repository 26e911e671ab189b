// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht16k33

import (
	"errors"
	"fmt"
	"math"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// DefaultAddr is the I²C address of the HT16K33 with all address pins
// left floating. The A0-A2 pins select addresses 0x70 to 0x77.
const DefaultAddr uint16 = 0x70

// MaxBrightness is the highest level accepted by SetBrightness. The chip
// dims the display with a 1/16 to 16/16 PWM duty cycle.
const MaxBrightness = 15

const (
	// Command opcodes from the datasheet. The low nibble carries the
	// argument.
	_CMD_SYSTEM_SETUP  byte = 0x20
	_CMD_DISPLAY_SETUP byte = 0x80
	_CMD_BRIGHTNESS    byte = 0xE0

	_OSCILLATOR_ON byte = 0x01
	_DISPLAY_ON    byte = 0x01
)

// Segment is a single illuminable stroke of a 14 segment alphanumeric
// digit. OR segments together to build a custom glyph for WriteColumn.
type Segment uint16

// The 15 segment bits of an alphanumeric digit, ROW0 through ROW14.
const (
	Top Segment = 1 << iota
	RightTop
	RightBottom
	Bottom
	LeftBottom
	LeftTop
	CenterLeft
	CenterRight
	DiagonalLeftTop
	CenterTop
	DiagonalRightTop
	DiagonalLeftBottom
	CenterBottom
	DiagonalRightBottom
	Dot
)

// BlinkRate is the hardware blink frequency applied to the whole display.
type BlinkRate byte

// Valid blink rates for SetBlink.
const (
	BlinkOff    BlinkRate = 0x00
	Blink2Hz    BlinkRate = 0x02
	Blink1Hz    BlinkRate = 0x04
	BlinkHalfHz BlinkRate = 0x06
)

// ErrClosed is returned when an operation is attempted on a closed
// device. It signals a programming error; the call is never retried
// internally.
var ErrClosed = errors.New("device is closed")

// ErrInvalidLevel is returned by SetBrightness for levels outside
// [0, MaxBrightness]. Nothing is written to the bus.
var ErrInvalidLevel = errors.New("brightness level out of range")

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{Addr: DefaultAddr}

// Opts defines the options for the device.
type Opts struct {
	// Addr is the I²C address. Zero means DefaultAddr.
	Addr uint16
}

// Dev is an open handle to a HT16K33.
//
// A Dev performs a blocking bus write per call and keeps no copy of the
// chip's state. It is not safe for concurrent use; callers must
// serialize access themselves.
type Dev struct {
	c      *i2c.Dev
	bus    i2c.BusCloser
	closed bool
}

// Open opens the named I²C bus from the host registry and returns a Dev
// owning it; Close releases the bus. Use an empty name for the first
// available bus.
func Open(busName string, opts *Opts) (*Dev, error) {
	b, err := i2creg.Open(busName)
	if err != nil {
		return nil, wrap(err)
	}
	return New(b, opts)
}

// New returns a Dev communicating on the provided bus.
//
// If bus implements i2c.BusCloser, Close releases it; this is the path
// used to substitute a test double such as i2ctest.Playback. A plain
// i2c.Bus stays owned by the caller.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultAddr
	}
	d := &Dev{c: &i2c.Dev{Bus: bus, Addr: addr}}
	if bc, ok := bus.(i2c.BusCloser); ok {
		d.bus = bc
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("HT16K33{%s}", d.c)
}

// Close releases the device. It is idempotent: the second and later
// calls are no-ops. The handle is cleared even when the underlying bus
// close fails; the failure is still returned.
func (d *Dev) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	bus := d.bus
	d.bus = nil
	if bus == nil {
		return nil
	}
	return wrap(bus.Close())
}

// SetEnabled turns the internal oscillator and the LED display on or
// off. The display must be enabled before written data is visible.
func (d *Dev) SetEnabled(enabled bool) error {
	if d.closed {
		return wrap(ErrClosed)
	}
	var osc, disp byte
	if enabled {
		osc = _OSCILLATOR_ON
		disp = _DISPLAY_ON
	}
	if err := d.c.Tx([]byte{_CMD_SYSTEM_SETUP | osc}, nil); err != nil {
		return wrap(err)
	}
	return wrap(d.c.Tx([]byte{_CMD_DISPLAY_SETUP | disp}, nil))
}

// SetBrightness sets the display dimming level, 0 (dimmest) to
// MaxBrightness. Level 0 does not turn the display off.
func (d *Dev) SetBrightness(level int) error {
	if d.closed {
		return wrap(ErrClosed)
	}
	if level < 0 || level > MaxBrightness {
		return fmt.Errorf("ht16k33: %w: %d not in [0, %d]", ErrInvalidLevel, level, MaxBrightness)
	}
	return wrap(d.c.Tx([]byte{_CMD_BRIGHTNESS | byte(level)}, nil))
}

// SetBrightnessFraction sets the dimming level as a fraction of
// MaxBrightness in [0.0, 1.0]. The fraction is rounded half away from
// zero to the nearest level, so 0.5 maps to level 8. Out of range
// fractions fail the level validation in SetBrightness.
func (d *Dev) SetBrightnessFraction(f float64) error {
	return d.SetBrightness(int(math.Round(f * MaxBrightness)))
}

// SetBlink makes the whole display blink at the given rate. The display
// is turned on as a side effect; the oscillator state is untouched.
func (d *Dev) SetBlink(rate BlinkRate) error {
	if d.closed {
		return wrap(ErrClosed)
	}
	return wrap(d.c.Tx([]byte{_CMD_DISPLAY_SETUP | _DISPLAY_ON | byte(rate)}, nil))
}

// WriteColumn writes 16 bits of LED row data to the given column
// register. The data is stored little endian at register column*2.
//
// The chip has 8 column registers (0-7); out of range columns are
// passed through unchecked and their effect is chip dependent.
func (d *Dev) WriteColumn(column int, data uint16) error {
	if d.closed {
		return wrap(ErrClosed)
	}
	return wrap(d.c.Tx([]byte{byte(column * 2), byte(data), byte(data >> 8)}, nil))
}

// Halt turns the display and oscillator off, putting the chip in
// standby. Implements conn.Resource.
func (d *Dev) Halt() error {
	return d.SetEnabled(false)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("ht16k33: %w", err)
}

var _ conn.Resource = &Dev{}
