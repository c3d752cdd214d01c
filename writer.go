// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gflate

import (
	"bytes"
	"io"

	"github.com/Kafva/gflate/internal/deflate"
	"github.com/Kafva/gflate/internal/gzipcrc"
)

// Writer compresses bytes written to it into a single gzip member on
// Close. Per RFC 1952, a member is emitted as one complete unit, so
// Writer buffers the uncompressed bytes given to Write and performs
// the actual DEFLATE encoding pass when Close is called; there is no
// mid-stream flush.
type Writer struct {
	w        io.Writer
	opts     writerOpts
	crc      *gzipcrc.CRC
	buf      bytes.Buffer
	size     uint32
	closed   bool
}

// NewWriter returns a Writer using Default compression and no header
// metadata beyond the fixed fields.
func NewWriter(w io.Writer) *Writer {
	return NewWriterLevel(w, Default)
}

// NewWriterLevel returns a Writer using the given Level and options.
func NewWriterLevel(w io.Writer, level Level, opts ...Option) *Writer {
	o := writerOpts{level: level}
	for _, fn := range opts {
		fn(&o)
	}
	return &Writer{w: w, opts: o, crc: gzipcrc.New()}
}

// Write buffers p for compression on Close and extends the running
// CRC-32 and byte count over it. It always returns len(p), nil.
func (gw *Writer) Write(p []byte) (int, error) {
	gw.crc.Write(p)
	gw.size += uint32(len(p))
	return gw.buf.Write(p)
}

// Close writes the gzip header, the compressed payload, and the
// trailer. It does not close the underlying io.Writer.
func (gw *Writer) Close() error {
	if gw.closed {
		return nil
	}
	gw.closed = true

	xfl := xflForLevel(gw.opts.level)
	if err := writeHeader(gw.w, gw.opts, xfl); err != nil {
		return err
	}

	enc := deflate.NewEncoder(gw.w, gw.opts.level.policy())
	if err := enc.Encode(bytes.NewReader(gw.buf.Bytes())); err != nil {
		return err
	}

	return writeTrailer(gw.w, gw.crc.Sum32(), gw.size)
}
