// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package gflate implements reading and writing of gzip format
// compressed files, as specified in RFC 1952, over a DEFLATE (RFC
// 1951) codec built from scratch in the internal packages: bit-level
// I/O, LZSS back-reference matching, and canonical length-limited
// Huffman coding.
package gflate
