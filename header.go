// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gflate

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/Kafva/gflate/internal/gzipcrc"
)

const (
	gzipID1 = 0x1f
	gzipID2 = 0x8b
	gzipCM  = 8 // DEFLATE

	flagText    = 1 << 0
	flagHCRC    = 1 << 1
	flagExtra   = 1 << 2
	flagName    = 1 << 3
	flagComment = 1 << 4

	xflBest = 2
	xflFast = 4

	// OSUnknown is the conventional "not specified" OS byte.
	OSUnknown = 255
)

// Header holds the fields of a gzip member's header that callers may
// want to inspect after reading, or set before writing.
type Header struct {
	Name    string
	Comment string
	Extra   []byte
	ModTime time.Time
	OS      byte
}

// writeHeader emits a gzip header for opts to w, optionally appending
// the FHCRC field over everything written so far.
func writeHeader(w io.Writer, opts writerOpts, xfl byte) error {
	var buf bytes.Buffer

	var flg byte
	if opts.name != "" {
		flg |= flagName
	}
	if opts.comment != "" {
		flg |= flagComment
	}
	if opts.headerCRC {
		flg |= flagHCRC
	}

	buf.WriteByte(gzipID1)
	buf.WriteByte(gzipID2)
	buf.WriteByte(gzipCM)
	buf.WriteByte(flg)

	var mtime uint32
	if !opts.modTime.IsZero() {
		mtime = uint32(opts.modTime.Unix())
	}
	var mtimeBuf [4]byte
	binary.LittleEndian.PutUint32(mtimeBuf[:], mtime)
	buf.Write(mtimeBuf[:])

	buf.WriteByte(xfl)

	os := opts.os
	if os == 0 {
		os = OSUnknown
	}
	buf.WriteByte(os)

	if opts.name != "" {
		buf.Write(encodeLatin1(opts.name))
		buf.WriteByte(0)
	}
	if opts.comment != "" {
		buf.Write(encodeLatin1(opts.comment))
		buf.WriteByte(0)
	}

	if opts.headerCRC {
		crc16 := gzipcrc.HeaderCRC16(buf.Bytes())
		var crcBuf [2]byte
		binary.LittleEndian.PutUint16(crcBuf[:], crc16)
		buf.Write(crcBuf[:])
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// readHeader parses a gzip header from r, returning the header fields
// it carried. If FHCRC is set, every header byte read (the fixed
// fields, and any FEXTRA/FNAME/FCOMMENT) is accumulated and checked
// against the transmitted CRC-16.
func readHeader(r io.Reader) (Header, error) {
	var h Header
	var seen bytes.Buffer
	tr := io.TeeReader(r, &seen)

	var fixed [10]byte
	if _, err := io.ReadFull(tr, fixed[:]); err != nil {
		return h, ErrInvalidHeader
	}
	if fixed[0] != gzipID1 || fixed[1] != gzipID2 || fixed[2] != gzipCM {
		return h, ErrInvalidHeader
	}
	flg := fixed[3]
	mtime := binary.LittleEndian.Uint32(fixed[4:8])
	if mtime != 0 {
		h.ModTime = time.Unix(int64(mtime), 0)
	}
	h.OS = fixed[9]

	if flg&flagExtra != 0 {
		var xlenBuf [2]byte
		if _, err := io.ReadFull(tr, xlenBuf[:]); err != nil {
			return h, ErrInvalidExtraField
		}
		xlen := binary.LittleEndian.Uint16(xlenBuf[:])
		extra := make([]byte, xlen)
		if _, err := io.ReadFull(tr, extra); err != nil {
			return h, ErrInvalidExtraField
		}
		h.Extra = extra
	}

	if flg&flagName != 0 {
		name, err := readCString(tr)
		if err != nil {
			return h, ErrTruncatedHeaderFname
		}
		h.Name = decodeLatin1(name)
	}

	if flg&flagComment != 0 {
		comment, err := readCString(tr)
		if err != nil {
			return h, ErrTruncatedHeaderComment
		}
		h.Comment = decodeLatin1(comment)
	}

	if flg&flagHCRC != 0 {
		var crcBuf [2]byte
		if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
			return h, ErrInvalidHeader
		}
		want := binary.LittleEndian.Uint16(crcBuf[:])
		if gzipcrc.HeaderCRC16(seen.Bytes()) != want {
			return h, ErrCrcMismatch
		}
	}

	return h, nil
}

func readCString(r io.Reader) ([]byte, error) {
	var out []byte
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, err
		}
		if b[0] == 0 {
			return out, nil
		}
		out = append(out, b[0])
	}
}

// encodeLatin1 maps a Go string to the bytes written to FNAME and
// FCOMMENT: bytes below 0x80 pass through unchanged; a 0xC3 lead byte
// followed by a continuation byte in [0x80,0xBF] is replaced by that
// continuation byte minus 0x40; any other byte is copied as is. The
// result is not the ISO-8859-1 encoding of non-ASCII characters, and
// decodeLatin1 does not map such bytes back to the original string.
func encodeLatin1(s string) []byte {
	b := []byte(s)
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		switch {
		case b[i] < 0x80:
			out = append(out, b[i])
			i++
		case b[i] == 0xc3 && i+1 < len(b) && b[i+1] >= 0x80 && b[i+1] <= 0xbf:
			out = append(out, b[i+1]-0x40)
			i += 2
		default:
			out = append(out, b[i])
			i++
		}
	}
	return out
}

// decodeLatin1 converts ISO-8859-1 bytes read from FNAME/FCOMMENT
// back to a UTF-8 Go string.
func decodeLatin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

func xflForLevel(l Level) byte {
	switch l {
	case Best:
		return xflBest
	case Fastest, NoCompression:
		return xflFast
	default:
		return 0
	}
}
