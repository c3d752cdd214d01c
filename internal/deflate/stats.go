// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

import "io"

// Stats records block-level bookkeeping gathered while decoding a
// stream, for debugging and introspection purposes. Recording is
// opt-in: a Decoder gathers no Stats unless EnableStats is called
// before Decode, mirroring the teacher's recordStats/Stats pairing.
type Stats struct {
	Blocks     int
	BlockTypes []BlockType
	BytesOut   int64
}

// EnableStats turns on bookkeeping for the blocks this Decoder
// processes. Must be called before Decode.
func (d *Decoder) EnableStats() {
	d.stats = &Stats{}
	d.dst = &countingWriter{w: d.dst, n: &d.stats.BytesOut}
}

// Stats returns the bookkeeping gathered so far, or a zero Stats if
// EnableStats was never called.
func (d *Decoder) Stats() Stats {
	if d.stats == nil {
		return Stats{}
	}
	return *d.stats
}

type countingWriter struct {
	w io.Writer
	n *int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	*c.n += int64(n)
	return n, err
}
