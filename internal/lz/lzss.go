// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lz

import "github.com/Kafva/gflate/internal/window"

const (
	minMatch = 3
	maxMatch = 258
	// hashLen is the length of the key probed into the hash index. It
	// is longer than minMatch so that the index itself stays small and
	// collision-free in practice; matches of exactly minMatch..hashLen-1
	// bytes simply aren't found via the hash and fall back to literals,
	// which is within the policy latitude the distilled spec allows.
	hashLen = 4
)

// Encoder is the LZSS match finder. It is stateful across calls to
// Encode so that back-references can point into bytes produced by an
// earlier call (the sliding window spans block boundaries even though,
// for simplicity, an individual match is not allowed to straddle two
// calls to Encode).
type Encoder struct {
	win   *window.Window
	idx   *hashIndex
	total int // global count of bytes processed across all calls
}

// NewEncoder returns a fresh LZSS match finder.
func NewEncoder() *Encoder {
	return &Encoder{win: window.New(), idx: newHashIndex()}
}

// Encode runs LZSS over chunk, consuming it completely and returning
// the literal/back-reference symbol stream. Matches may reference
// bytes pushed by previous calls to Encode (cross-chunk), but may not
// extend past the end of the current chunk.
func (e *Encoder) Encode(chunk []byte) []Symbol {
	var out []Symbol
	n := len(chunk)
	blockStart := e.total

	byteAt := func(globalPos int) (byte, bool) {
		if globalPos < blockStart {
			b, err := e.win.ByteAt(blockStart - globalPos)
			return b, err == nil
		}
		return chunk[globalPos-blockStart], true
	}

	windowStart := func(globalPos int) int {
		ws := globalPos - window.Size
		if ws < 0 {
			ws = 0
		}
		return ws
	}

	local := 0
	for local < n {
		globalPos := blockStart + local
		bestLen, bestDist := 0, 0

		if local+hashLen <= n {
			key := hashKey(chunk[local : local+hashLen])
			if cand, ok := e.idx.oldest(key, windowStart(globalPos)); ok {
				dist := globalPos - cand
				if dist >= 1 && dist <= window.Size {
					limit := n - local
					if limit > maxMatch {
						limit = maxMatch
					}
					length := 0
					for length < limit {
						b, ok := byteAt(cand + length)
						if !ok || b != chunk[local+length] {
							break
						}
						length++
					}
					if length >= minMatch {
						bestLen, bestDist = length, dist
					}
				}
			}
		}

		if bestLen >= minMatch {
			out = append(out,
				Symbol{Kind: Length, Value: bestLen},
				Symbol{Kind: Distance, Value: bestDist},
			)
			end := local + bestLen
			for ; local < end; local++ {
				if local+hashLen <= n {
					e.idx.insert(hashKey(chunk[local:local+hashLen]), blockStart+local, windowStart(blockStart+local))
				}
			}
			continue
		}

		out = append(out, Symbol{Kind: Literal, Literal: chunk[local]})
		if local+hashLen <= n {
			e.idx.insert(hashKey(chunk[local:local+hashLen]), globalPos, windowStart(globalPos))
		}
		local++
	}

	for _, b := range chunk {
		e.win.Push(b)
	}
	e.total += n
	return out
}
