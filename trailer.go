// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gflate

import (
	"encoding/binary"
	"io"
)

// writeTrailer appends the gzip trailer: CRC-32 of the uncompressed
// data, then ISIZE (uncompressed byte count mod 2^32), both
// little-endian.
func writeTrailer(w io.Writer, crc32, isize uint32) error {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], crc32)
	binary.LittleEndian.PutUint32(buf[4:8], isize)
	_, err := w.Write(buf[:])
	return err
}

// readTrailer reads the 8-byte gzip trailer.
func readTrailer(r io.Reader) (crc32, isize uint32, err error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, 0, ErrInvalidHeader
	}
	return binary.LittleEndian.Uint32(buf[0:4]), binary.LittleEndian.Uint32(buf[4:8]), nil
}
