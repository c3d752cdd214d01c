// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gflate

import (
	"bufio"
	"io"

	"github.com/Kafva/gflate/internal/deflate"
	"github.com/Kafva/gflate/internal/gzipcrc"
)

// Stats reports block-level bookkeeping gathered while scanning a
// gzip member, alongside the header fields parsed along the way. It
// plays the role the teacher's bzip2.Stats/StreamStats pairing plays
// for bzip2: a read-only view for a debugging/scan command, not
// something the normal compress/decompress path needs.
type Stats struct {
	deflate.Stats
	Header
}

// Inspect scans r as a single gzip member, verifying its trailer
// against a running CRC-32 of the decompressed bytes without
// retaining those bytes, and returns the block-level bookkeeping
// gathered along the way. Use this instead of NewReader when only the
// shape of the stream is of interest.
func Inspect(r io.Reader) (Stats, error) {
	if _, ok := r.(io.ByteReader); !ok {
		r = bufio.NewReader(r)
	}
	h, err := readHeader(r)
	if err != nil {
		return Stats{}, err
	}

	crc := gzipcrc.New()
	dec := deflate.NewDecoder(r, crc)
	dec.EnableStats()
	if err := dec.Decode(); err != nil {
		return Stats{}, err
	}

	wantCRC, wantISize, err := readTrailer(r)
	if err != nil {
		return Stats{}, err
	}

	stats := dec.Stats()
	if crc.Sum32() != wantCRC {
		return Stats{}, ErrCrcMismatch
	}
	if uint32(stats.BytesOut) != wantISize {
		return Stats{}, ErrSizeMismatch
	}

	return Stats{Stats: stats, Header: h}, nil
}
