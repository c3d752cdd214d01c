// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import (
	"errors"

	"github.com/Kafva/gflate/internal/bitio"
)

// ErrBadEncoding is returned when 15 bits have accumulated while
// decoding a symbol without matching any canonical code in the table.
var ErrBadEncoding = errors.New("huffman: no matching code after 15 bits")

// Decoder reconstructs symbols from a canonical code built from a
// vector of code lengths (symbol 0 length means unused), per RFC 1951
// §3.2.2 — the same canonicalization Build uses on the encode side.
type Decoder struct {
	table map[uint32]int
	max   uint8
}

// NewDecoder builds a decode table from lengths, indexed by symbol
// (0 meaning the symbol is unused).
func NewDecoder(lengths []uint8) *Decoder {
	t := canonicalize(lengths)
	d := &Decoder{table: make(map[uint32]int, len(t.Codes))}
	for sym, c := range t.Codes {
		if c.BitLength == 0 {
			continue
		}
		d.table[key(c.BitLength, c.Bits)] = sym
		if c.BitLength > d.max {
			d.max = c.BitLength
		}
	}
	return d
}

func key(length uint8, bits uint16) uint32 {
	return uint32(length)<<16 | uint32(bits)
}

// Decode reads bits one at a time, most-significant-bit first, from
// br, accumulating a candidate code and probing the table after each
// bit, until a symbol is found or 15 bits have accumulated with no
// match.
func (d *Decoder) Decode(br *bitio.Reader) (int, error) {
	var code uint16
	var length uint8
	for length < MaxBits {
		code = code<<1 | uint16(br.ReadBit())
		if err := br.Err(); err != nil {
			return 0, err
		}
		length++
		if sym, ok := d.table[key(length, code)]; ok {
			return sym, nil
		}
	}
	return 0, ErrBadEncoding
}
