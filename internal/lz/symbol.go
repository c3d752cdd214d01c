// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package lz implements DEFLATE's LZSS match finder: a 4-byte hash
// index over recent input positions, and the literal/back-reference
// symbol stream it drives.
package lz

// Kind discriminates the three cases of a Symbol.
type Kind uint8

const (
	// Literal carries a single uncompressed byte.
	Literal Kind = iota
	// Length carries the length half of a back-reference, always
	// immediately followed by a Distance symbol.
	Length
	// Distance carries the distance half of a back-reference.
	Distance
)

// Symbol is a closed sum over DEFLATE's LZSS alphabet: a literal byte,
// or one half of a (length, distance) back-reference. Length and
// Distance symbols always appear as adjacent pairs in that order.
type Symbol struct {
	Kind    Kind
	Literal byte
	Value   int // length in [3,258] or distance in [1,32768]
}
