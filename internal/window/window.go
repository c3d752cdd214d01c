// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package window implements DEFLATE's 32 KiB sliding window: a ring
// buffer over the most recently produced uncompressed bytes, indexable
// by backward distance for both the LZSS match finder and the
// back-reference expander.
package window

import "errors"

// Size is the fixed DEFLATE window size, 32 KiB.
const Size = 32768

// ErrInvalidDistance is returned by ByteAt and CopyBack when the
// requested distance is outside [1, Size] or exceeds the number of
// bytes pushed so far.
var ErrInvalidDistance = errors.New("window: distance exceeds occupancy")

// Window is a fixed-capacity ring over the last Size bytes written to
// a DEFLATE stream (compressed or decompressed, both sides use one).
type Window struct {
	buf  [Size]byte
	pos  uint32 // next write position, modulo Size
	full bool
	n    uint64 // total bytes ever pushed
}

// New returns an empty Window.
func New() *Window {
	return &Window{}
}

// Push appends a single byte, overwriting the oldest byte once the
// window has filled.
func (w *Window) Push(b byte) {
	w.buf[w.pos] = b
	w.pos++
	if w.pos == Size {
		w.pos = 0
		w.full = true
	}
	w.n++
}

// Len returns the number of bytes currently held (capped at Size).
func (w *Window) Len() int {
	if w.full {
		return Size
	}
	return int(w.pos)
}

// Total returns the number of bytes ever pushed, uncapped.
func (w *Window) Total() uint64 {
	return w.n
}

// ByteAt returns the byte at backward distance d in [1, Size] from the
// current write position, i.e. the byte written d pushes ago.
func (w *Window) ByteAt(d int) (byte, error) {
	if d < 1 || uint64(d) > w.n || d > Size {
		return 0, ErrInvalidDistance
	}
	idx := int(w.pos) - d
	if idx < 0 {
		idx += Size
	}
	return w.buf[idx], nil
}

// CopyBack expands a back-reference of the given length and distance,
// writing each produced byte both to dst and into the window, in
// order, one byte at a time, so that self-overlapping matches
// (distance < length) reproduce the RLE-style repetition correctly.
func (w *Window) CopyBack(dst []byte, length, distance int) error {
	for i := 0; i < length; i++ {
		b, err := w.ByteAt(distance)
		if err != nil {
			return err
		}
		dst[i] = b
		w.Push(b)
	}
	return nil
}
