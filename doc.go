// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ht16k33 controls a Holtek HT16K33 LED matrix driver over I²C.
//
// The HT16K33 multiplexes up to 128 LEDs organized as 16 rows by 8
// commons, and is the controller found on most alphanumeric and 8x8/16x8
// LED "backpack" boards. Display data is written one 16 bit column
// register at a time with WriteColumn, with the value constructed by
// ORing Segment constants together:
//
//	sigma := ht16k33.Top | ht16k33.Bottom |
//		ht16k33.DiagonalLeftTop | ht16k33.DiagonalLeftBottom
//	_ = dev.WriteColumn(0, uint16(sigma))
//
// For standard alphanumeric characters use Display, which maps ASCII to
// 14 segment glyphs. For 16x8 matrix boards use Matrix, which implements
// display.Drawer.
//
// The keyscan and interrupt features of the chip are not supported.
//
// # Datasheet
//
// https://www.holtek.com/webapi/116711/HT16K33Av102.pdf
package ht16k33
