// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import "sort"

// Code is a symbol's canonical Huffman code: BitLength bits long,
// numbered per RFC 1951 §3.2.2.
type Code struct {
	BitLength uint8
	Bits      uint16
}

// Table is a symbol -> Code mapping produced by Build, used by the
// encoder to emit symbols, alongside the bit-length vector the decoder
// needs to reconstruct the same canonical code independently.
type Table struct {
	Codes   []Code  // indexed by symbol; BitLength == 0 means unused
	Lengths []uint8 // indexed by symbol, same data as Codes[i].BitLength
}

// Build constructs a length-limited (<=15 bit) canonical Huffman code
// from a vector of symbol frequencies. Symbols with zero frequency are
// left unused (BitLength 0) in the returned Table.
//
// The distilled spec for this format describes an iterative
// depth-search tree construction; this instead uses the package-merge
// algorithm, which the spec's own design notes permit as a superior
// alternative; it produces an optimal length-limited code directly
// for any max length without needing to search over candidate depths.
func Build(freq []int) Table {
	n := len(freq)
	lengths := make([]uint8, n)

	used := make([]int, 0, n)
	for sym, f := range freq {
		if f > 0 {
			used = append(used, sym)
		}
	}

	switch len(used) {
	case 0:
		return Table{Codes: make([]Code, n), Lengths: lengths}
	case 1:
		lengths[used[0]] = 1
		return canonicalize(lengths)
	}

	packageMergeLengths(freq, used, lengths, MaxBits)
	return canonicalize(lengths)
}

// pmNode is a node in the package-merge forest: either a leaf wrapping
// one original symbol, or an internal package combining two nodes from
// the previous layer.
type pmNode struct {
	weight      int64
	sym         int // valid iff left == nil
	left, right *pmNode
}

// packageMergeLengths fills lengths[sym] with the optimal
// length-limited (<=maxBits) canonical code length for every symbol
// in used, by the classical package-merge (coin-collector) algorithm:
// build maxBits layers, each the pairwise merge of the previous layer
// interleaved with the original singleton leaves, then take the
// lightest 2*(len(used)-1) packages from the final layer and count how
// many times each symbol appears among them.
func packageMergeLengths(freq []int, used []int, lengths []uint8, maxBits int) {
	leaves := make([]*pmNode, len(used))
	for i, sym := range used {
		leaves[i] = &pmNode{weight: int64(freq[sym]), sym: sym}
	}
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].weight != leaves[j].weight {
			return leaves[i].weight < leaves[j].weight
		}
		return leaves[i].sym < leaves[j].sym
	})

	layer := leaves
	for depth := 1; depth < maxBits; depth++ {
		merged := make([]*pmNode, 0, len(layer)/2+len(leaves))
		for i := 0; i+1 < len(layer); i += 2 {
			merged = append(merged, &pmNode{
				weight: layer[i].weight + layer[i+1].weight,
				sym:    -1,
				left:   layer[i],
				right:  layer[i+1],
			})
		}
		merged = append(merged, leaves...)
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].weight < merged[j].weight
		})
		layer = merged
	}

	take := 2*len(used) - 2
	if take > len(layer) {
		take = len(layer)
	}
	for i := 0; i < take; i++ {
		addOccurrences(layer[i], lengths)
	}
}

// addOccurrences increments lengths[sym] by one for every leaf reached
// by walking down from node; the total work across the handful of
// selected top-layer packages is bounded by the sum of final code
// lengths, which is always small for DEFLATE's alphabets.
func addOccurrences(node *pmNode, lengths []uint8) {
	if node.left == nil {
		lengths[node.sym]++
		return
	}
	addOccurrences(node.left, lengths)
	addOccurrences(node.right, lengths)
}

// CodesFromLengths assigns canonical codes to a fixed vector of code
// lengths, without needing frequencies. Used for the RFC 1951 §3.2.6
// fixed Huffman code and to rebuild a dynamic block's LL/D codes from
// the length vectors a decoder reconstructs off the wire.
func CodesFromLengths(lengths []uint8) Table {
	return canonicalize(lengths)
}

// canonicalize assigns canonical numeric codes to a bit-length vector
// per RFC 1951 §3.2.2: sort symbols by (length, symbol value), then
// number consecutively within each length, left-padding so that
// shorter codes numerically precede longer ones.
func canonicalize(lengths []uint8) Table {
	n := len(lengths)
	type pair struct {
		sym int
		len uint8
	}
	var pairs []pair
	var maxLen uint8
	for sym, l := range lengths {
		if l > 0 {
			pairs = append(pairs, pair{sym, l})
			if l > maxLen {
				maxLen = l
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].len != pairs[j].len {
			return pairs[i].len < pairs[j].len
		}
		return pairs[i].sym < pairs[j].sym
	})

	var blCount [MaxBits + 1]int
	for _, p := range pairs {
		blCount[p.len]++
	}
	var nextCode [MaxBits + 1]uint16
	code := uint16(0)
	for bits := 1; bits <= int(maxLen); bits++ {
		code = (code + uint16(blCount[bits-1])) << 1
		nextCode[bits] = code
	}

	codes := make([]Code, n)
	for _, p := range pairs {
		codes[p.sym] = Code{BitLength: p.len, Bits: nextCode[p.len]}
		nextCode[p.len]++
	}
	return Table{Codes: codes, Lengths: lengths}
}
