// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lz

import "encoding/binary"

// maxPositionsPerKey bounds the number of global positions retained
// per 4-byte key. The distilled spec asks for "a small fixed capacity
// ... choose >= floor(lookahead/4)"; lookahead is 258 bytes here.
const maxPositionsPerKey = 64

// hashIndex is a multimap from a 4-byte key of recent input bytes to
// the global positions it was last seen at, pruned to the active
// 32 KiB window. Positions for a given key are kept in ascending
// order, so the oldest in-window position is always the first entry.
type hashIndex struct {
	table map[uint32][]int
}

func newHashIndex() *hashIndex {
	return &hashIndex{table: make(map[uint32][]int)}
}

func hashKey(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// insert records pos under key, pruning any positions that have
// fallen out of the active window and capping the retained count at
// maxPositionsPerKey (dropping the oldest first, which only affects
// which candidate is tried — any policy here preserves correctness of
// the emitted symbol stream).
func (h *hashIndex) insert(key uint32, pos, windowStart int) {
	lst := h.table[key]
	i := 0
	for i < len(lst) && lst[i] < windowStart {
		i++
	}
	lst = lst[i:]
	lst = append(lst, pos)
	if len(lst) > maxPositionsPerKey {
		lst = lst[len(lst)-maxPositionsPerKey:]
	}
	if len(lst) == 0 {
		delete(h.table, key)
		return
	}
	h.table[key] = lst
}

// oldest returns the oldest in-window position recorded for key, if
// any still remain after pruning.
func (h *hashIndex) oldest(key uint32, windowStart int) (int, bool) {
	lst := h.table[key]
	for i := 0; i < len(lst); i++ {
		if lst[i] >= windowStart {
			return lst[i], true
		}
	}
	return 0, false
}
