// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bitio

import (
	"errors"
	"io"
)

// ErrUnexpectedEOF is returned by Reader when the underlying byte
// source is exhausted mid-read.
var ErrUnexpectedEOF = errors.New("bitio: unexpected end of stream")

// Reader reads bits out of a byte stream LSB-first, mirroring Writer.
// Like the teacher's bitReader, errors are sticky: once set they are
// returned by every subsequent call until the Reader is discarded.
type Reader struct {
	src  io.ByteReader
	cur  uint64
	n    uint // number of valid bits held in cur
	err  error
	nbit uint64
}

// NewReader returns a Reader over r. If r does not already implement
// io.ByteReader it is wrapped in a bufio.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: newBufferedReader(r)}
}

func (r *Reader) fill(need uint) {
	for r.n < need {
		b, err := r.src.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = ErrUnexpectedEOF
			}
			r.err = err
			return
		}
		r.cur |= uint64(b) << r.n
		r.n += 8
	}
}

// ReadBits reads n bits (n <= 32) and returns them as an integer with
// bit 0 equal to the first bit read, i.e. the reverse of WriteCode's
// ordering and the same ordering as WriteBits.
func (r *Reader) ReadBits(n uint) uint32 {
	if r.err != nil || n == 0 {
		return 0
	}
	r.fill(n)
	if r.err != nil {
		return 0
	}
	v := uint32(r.cur & ((1 << n) - 1))
	r.cur >>= n
	r.n -= n
	r.nbit += uint64(n)
	return v
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() uint32 {
	return r.ReadBits(1)
}

// AlignByte discards any remaining bits in the current partial byte,
// returning them (used by the stored-block decoder, which requires
// the discarded bits to be zero).
func (r *Reader) AlignByte() uint32 {
	if r.n == 0 {
		return 0
	}
	return r.ReadBits(r.n)
}

// ReadBytes reads raw bytes directly; the reader must be byte aligned.
func (r *Reader) ReadBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.n != 0 {
		r.err = errUnaligned
		return nil
	}
	buf := make([]byte, n)
	for i := range buf {
		b, err := r.src.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = ErrUnexpectedEOF
			}
			r.err = err
			return nil
		}
		buf[i] = b
	}
	r.nbit += uint64(n) * 8
	return buf
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// BitsRead returns the total number of bits consumed so far.
func (r *Reader) BitsRead() uint64 {
	return r.nbit
}
