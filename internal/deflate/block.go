// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

// BlockType identifies one of the three DEFLATE block encodings.
type BlockType uint8

const (
	Stored BlockType = iota
	Fixed
	Dynamic
)

// blockLengthMax bounds the number of raw input bytes buffered per
// block; it also doubles as the 16-bit LEN field's ceiling for a
// Stored block.
const blockLengthMax = 1 << 16 / 2 // 32768, well under the 65535 stored-block limit
