// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

import (
	"encoding/binary"
	"io"

	"github.com/Kafva/gflate/internal/bitio"
	"github.com/Kafva/gflate/internal/huffman"
	"github.com/Kafva/gflate/internal/lz"
)

// Policy selects how an Encoder chooses a block's encoding.
type Policy int

const (
	// AutoPolicy estimates the bit cost of all three encodings per
	// block and picks the smallest.
	AutoPolicy Policy = iota
	// StoredOnly emits every block uncompressed.
	StoredOnly
	// PreferFixed always uses the RFC-fixed Huffman code.
	PreferFixed
	// PreferDynamic always builds a per-block Huffman code.
	PreferDynamic
)

// Encoder writes a sequence of DEFLATE blocks to an underlying byte
// sink, compressing the bytes given to Encode.
type Encoder struct {
	bw     *bitio.Writer
	lz     *lz.Encoder
	policy Policy
}

// NewEncoder returns an Encoder that writes compressed blocks to w,
// choosing block encodings per policy.
func NewEncoder(w io.Writer, policy Policy) *Encoder {
	return &Encoder{bw: bitio.NewWriter(w), lz: lz.NewEncoder(), policy: policy}
}

// Encode reads r to completion, emitting one or more DEFLATE blocks
// ending in a final block, and flushes the underlying bit writer. It
// does not close w.
func (e *Encoder) Encode(r io.Reader) error {
	buf := make([]byte, blockLengthMax)
	for {
		n, err := io.ReadFull(r, buf)
		switch err {
		case nil:
			if werr := e.writeBlock(buf[:n], false); werr != nil {
				return werr
			}
		case io.ErrUnexpectedEOF, io.EOF:
			if werr := e.writeBlock(buf[:n], true); werr != nil {
				return werr
			}
			return e.bw.Flush()
		default:
			return err
		}
	}
}

func (e *Encoder) writeBlock(raw []byte, final bool) error {
	symbols := e.lz.Encode(raw)

	litFreq := make([]int, huffman.NumLiterals)
	distFreq := make([]int, huffman.NumDistances)
	litFreq[huffman.EndOfBlock] = 1
	for _, s := range symbols {
		switch s.Kind {
		case lz.Literal:
			litFreq[s.Literal]++
		case lz.Length:
			code, _, _ := huffman.EncodeLength(s.Value)
			litFreq[code]++
		case lz.Distance:
			code, _, _ := huffman.EncodeDistance(s.Value)
			distFreq[code]++
		}
	}
	if total := sumInts(distFreq); total == 0 {
		distFreq[0] = 1
	}

	llTable := huffman.Build(litFreq)
	distTable := huffman.Build(distFreq)

	numLit, numDist := trimmedCounts(llTable.Lengths, distTable.Lengths)
	combined := make([]uint8, numLit+numDist)
	copy(combined, llTable.Lengths[:numLit])
	copy(combined[numLit:], distTable.Lengths[:numDist])

	clFreq := make([]int, huffman.NumCodeLengths)
	for _, v := range combined {
		clFreq[v]++
	}
	clTable := huffman.Build(clFreq)

	hclen := huffman.NumCodeLengths
	for hclen > 4 && clTable.Lengths[huffman.CodeLengthOrder[hclen-1]] == 0 {
		hclen--
	}

	dynamicHeaderBits := 5 + 5 + 4 + 3*hclen
	for _, v := range combined {
		dynamicHeaderBits += int(clTable.Lengths[v])
	}

	fixedLL := huffman.CodesFromLengths(huffman.FixedLiteralLengths[:])
	fixedDist := huffman.CodesFromLengths(huffman.FixedDistanceLengths[:])

	fixedCost := bitCost(symbols, fixedLL.Lengths, fixedDist.Lengths) + int(fixedLL.Lengths[huffman.EndOfBlock])
	dynamicCost := bitCost(symbols, llTable.Lengths, distTable.Lengths) + int(llTable.Lengths[huffman.EndOfBlock]) + dynamicHeaderBits
	storedCost := 8*len(raw) + 32

	blockType := e.chooseType(fixedCost, dynamicCost, storedCost)

	e.bw.WriteBits(boolBit(final), 1)
	e.bw.WriteBits(uint32(blockType), 2)

	switch blockType {
	case Stored:
		return e.writeStored(raw)
	case Fixed:
		return e.writeSymbols(symbols, fixedLL, fixedDist)
	default:
		e.writeDynamicHeader(numLit, numDist, hclen, combined, clTable)
		return e.writeSymbols(symbols, llTable, distTable)
	}
}

func (e *Encoder) chooseType(fixedCost, dynamicCost, storedCost int) BlockType {
	switch e.policy {
	case StoredOnly:
		return Stored
	case PreferFixed:
		return Fixed
	case PreferDynamic:
		return Dynamic
	default:
		best, bestCost := Fixed, fixedCost
		if dynamicCost < bestCost {
			best, bestCost = Dynamic, dynamicCost
		}
		if storedCost < bestCost {
			best = Stored
		}
		return best
	}
}

func (e *Encoder) writeStored(raw []byte) error {
	if len(raw) > 1<<16-1 {
		return ErrInvalidBlockLength
	}
	e.bw.AlignByte()
	var lenBuf [4]byte
	binary.LittleEndian.PutUint16(lenBuf[0:2], uint16(len(raw)))
	binary.LittleEndian.PutUint16(lenBuf[2:4], ^uint16(len(raw)))
	e.bw.WriteBytes(lenBuf[:])
	e.bw.WriteBytes(raw)
	return e.bw.Err()
}

func (e *Encoder) writeDynamicHeader(numLit, numDist, hclen int, combined []uint8, clTable huffman.Table) {
	e.bw.WriteBits(uint32(numLit-257), 5)
	e.bw.WriteBits(uint32(numDist-1), 5)
	e.bw.WriteBits(uint32(hclen-4), 4)
	for i := 0; i < hclen; i++ {
		e.bw.WriteBits(uint32(clTable.Lengths[huffman.CodeLengthOrder[i]]), 3)
	}
	for _, v := range combined {
		c := clTable.Codes[v]
		e.bw.WriteCode(uint32(c.Bits), uint(c.BitLength))
	}
}

func (e *Encoder) writeSymbols(symbols []lz.Symbol, llTable, distTable huffman.Table) error {
	for _, s := range symbols {
		switch s.Kind {
		case lz.Literal:
			c := llTable.Codes[s.Literal]
			e.bw.WriteCode(uint32(c.Bits), uint(c.BitLength))
		case lz.Length:
			code, extra, extraBits := huffman.EncodeLength(s.Value)
			c := llTable.Codes[code]
			e.bw.WriteCode(uint32(c.Bits), uint(c.BitLength))
			if extraBits > 0 {
				e.bw.WriteBits(extra, extraBits)
			}
		case lz.Distance:
			code, extra, extraBits := huffman.EncodeDistance(s.Value)
			c := distTable.Codes[code]
			e.bw.WriteCode(uint32(c.Bits), uint(c.BitLength))
			if extraBits > 0 {
				e.bw.WriteBits(extra, extraBits)
			}
		}
	}
	eob := llTable.Codes[huffman.EndOfBlock]
	e.bw.WriteCode(uint32(eob.Bits), uint(eob.BitLength))
	return e.bw.Err()
}

func bitCost(symbols []lz.Symbol, llLengths, distLengths []uint8) int {
	cost := 0
	for _, s := range symbols {
		switch s.Kind {
		case lz.Literal:
			cost += int(llLengths[s.Literal])
		case lz.Length:
			code, _, extraBits := huffman.EncodeLength(s.Value)
			cost += int(llLengths[code]) + int(extraBits)
		case lz.Distance:
			code, _, extraBits := huffman.EncodeDistance(s.Value)
			cost += int(distLengths[code]) + int(extraBits)
		}
	}
	return cost
}

// trimmedCounts finds the number of LL and D symbols that need to be
// transmitted: trailing runs of unused (zero-length) symbols are
// dropped, down to the RFC-mandated minimums of 257 LL symbols
// (through the always-present end-of-block marker) and 1 D symbol.
func trimmedCounts(llLengths, distLengths []uint8) (numLit, numDist int) {
	numLit = huffman.EndOfBlock + 1
	for i := len(llLengths) - 1; i > huffman.EndOfBlock; i-- {
		if llLengths[i] != 0 {
			numLit = i + 1
			break
		}
	}
	numDist = 1
	for i := len(distLengths) - 1; i >= 1; i-- {
		if distLengths[i] != 0 {
			numDist = i + 1
			break
		}
	}
	return numLit, numDist
}

func sumInts(v []int) int {
	total := 0
	for _, x := range v {
		total += x
	}
	return total
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
