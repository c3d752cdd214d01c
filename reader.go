// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gflate

import (
	"bufio"
	"bytes"
	"io"

	"github.com/Kafva/gflate/internal/deflate"
	"github.com/Kafva/gflate/internal/gzipcrc"
)

// Reader decompresses a single gzip member. The entire member is
// decoded eagerly by NewReader (this codec does not support
// concatenated/multistream members or incremental flush, see
// Non-goals), and Read then serves the result from an in-memory
// buffer.
type Reader struct {
	Header
	buf bytes.Buffer
}

// NewReader parses r's gzip header, decompresses its single member
// to completion, and verifies the trailer's CRC-32 and ISIZE against
// the decompressed bytes.
func NewReader(r io.Reader) (*Reader, error) {
	// Header, payload and trailer are all read through one
	// io.ByteReader, so the bit reader never buffers past the payload.
	if _, ok := r.(io.ByteReader); !ok {
		r = bufio.NewReader(r)
	}
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	gr := &Reader{Header: h}
	dec := deflate.NewDecoder(r, &gr.buf)
	if err := dec.Decode(); err != nil {
		return nil, err
	}

	wantCRC, wantISize, err := readTrailer(r)
	if err != nil {
		return nil, err
	}

	crc := gzipcrc.New()
	crc.Write(gr.buf.Bytes())
	if crc.Sum32() != wantCRC {
		return nil, ErrCrcMismatch
	}
	if uint32(gr.buf.Len()) != wantISize {
		return nil, ErrSizeMismatch
	}

	return gr, nil
}

// Read implements io.Reader over the decompressed bytes.
func (gr *Reader) Read(p []byte) (int, error) {
	return gr.buf.Read(p)
}
