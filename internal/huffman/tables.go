// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package huffman builds and reconstructs DEFLATE's canonical,
// length-limited (<=15 bit) Huffman codes (RFC 1951 §3.2), and holds
// the format's fixed tables: the length/distance range-symbol tables,
// the code-length alphabet permutation, and the fixed Huffman code.
package huffman

// NumLiterals is the size of the literal/length alphabet: 256 literal
// byte values, the end-of-block marker (256), and 29 length codes
// (257..285). This is the alphabet size used to transmit a dynamic
// block's HLIT count; symbols 286 and 287 never occur in a dynamic
// block's tree.
const NumLiterals = 286

// numFixedLiterals is the size of the literal/length vector the fixed
// Huffman code is built over: RFC 1951 §3.2.6 assigns symbols 286 and
// 287 an 8-bit code length too, purely to make the fixed tree's
// canonical numbering come out right (neither symbol is ever emitted
// or decoded). Dropping them from the length vector undercounts
// count[8] and shifts every 9-bit code (symbols 144..255) down by 4.
const numFixedLiterals = 288

// NumDistances is the size of the distance alphabet.
const NumDistances = 30

// NumCodeLengths is the size of the alphabet used to transmit the
// code-length sequences of a dynamic block's LL and D codes.
const NumCodeLengths = 19

// EndOfBlock is the literal/length symbol marking the end of a block.
const EndOfBlock = 256

// MaxBits is the maximum canonical code length DEFLATE allows.
const MaxBits = 15

// RangeEntry describes one entry of the length or distance code
// tables: a base value and a number of extra bits that, added to the
// base, span the entry's full range.
type RangeEntry struct {
	Base     int
	ExtraBits uint
}

// LengthTable maps a length code (index 0 == code 257) to its base
// value and extra-bit count. RFC 1951 §3.2.5.
var LengthTable = [29]RangeEntry{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// DistanceTable maps a distance code (index 0 == code 0) to its base
// value and extra-bit count. RFC 1951 §3.2.5.
var DistanceTable = [30]RangeEntry{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// EncodeLength maps a match length in [3,258] to its literal/length
// code (257..285) and the extra-bits value to emit after it.
func EncodeLength(length int) (code int, extra uint32, extraBits uint) {
	for i := len(LengthTable) - 1; i >= 0; i-- {
		if length >= LengthTable[i].Base {
			return 257 + i, uint32(length - LengthTable[i].Base), LengthTable[i].ExtraBits
		}
	}
	panic("huffman: length out of range")
}

// EncodeDistance maps a distance in [1,32768] to its distance code
// (0..29) and the extra-bits value to emit after it.
func EncodeDistance(distance int) (code int, extra uint32, extraBits uint) {
	for i := len(DistanceTable) - 1; i >= 0; i-- {
		if distance >= DistanceTable[i].Base {
			return i, uint32(distance - DistanceTable[i].Base), DistanceTable[i].ExtraBits
		}
	}
	panic("huffman: distance out of range")
}

// CodeLengthOrder is the order in which the 19 code-length alphabet's
// bit lengths are transmitted in a dynamic block header. RFC 1951
// §3.2.7.
var CodeLengthOrder = [NumCodeLengths]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// Code-length alphabet meta symbols.
const (
	CLRepeatPrev    = 16 // repeat previous length 3-6 times, 2 extra bits
	CLRepeatZero3   = 17 // repeat a zero length 3-10 times, 3 extra bits
	CLRepeatZero11  = 18 // repeat a zero length 11-138 times, 7 extra bits
)

// FixedLiteralLengths are the literal/length code lengths of the
// fixed Huffman code, RFC 1951 §3.2.6, over the full 288-entry vector
// (including the unused 286/287 slots the canonical numbering needs).
var FixedLiteralLengths = func() [numFixedLiterals]uint8 {
	var l [numFixedLiterals]uint8
	for i := 0; i < 144; i++ {
		l[i] = 8
	}
	for i := 144; i < 256; i++ {
		l[i] = 9
	}
	for i := 256; i < 280; i++ {
		l[i] = 7
	}
	for i := 280; i < numFixedLiterals; i++ {
		l[i] = 8
	}
	return l
}()

// FixedDistanceLengths are the distance code lengths of the fixed
// Huffman code: all 5 bits, RFC 1951 §3.2.6.
var FixedDistanceLengths = func() [NumDistances]uint8 {
	var l [NumDistances]uint8
	for i := range l {
		l[i] = 5
	}
	return l
}()
