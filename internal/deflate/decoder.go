// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

import (
	"io"

	"github.com/Kafva/gflate/internal/bitio"
	"github.com/Kafva/gflate/internal/huffman"
	"github.com/Kafva/gflate/internal/window"
)

// Decoder reverses a stream of DEFLATE blocks written by Encoder,
// writing the expanded bytes to an underlying sink as they are
// produced.
type Decoder struct {
	br    *bitio.Reader
	win   *window.Window
	dst   io.Writer
	stats *Stats
}

// NewDecoder returns a Decoder that reads compressed blocks from r
// and writes the decompressed bytes to w.
func NewDecoder(r io.Reader, w io.Writer) *Decoder {
	return &Decoder{br: bitio.NewReader(r), win: window.New(), dst: w}
}

// Decode reads and expands blocks until a final block has been
// processed, or an error occurs.
func (d *Decoder) Decode() error {
	for {
		final := d.br.ReadBit()
		btype := d.br.ReadBits(2)
		if err := d.br.Err(); err != nil {
			return err
		}
		if d.stats != nil {
			d.stats.Blocks++
			d.stats.BlockTypes = append(d.stats.BlockTypes, BlockType(btype))
		}

		var err error
		switch btype {
		case uint32(Stored):
			err = d.decodeStored()
		case uint32(Fixed):
			err = d.decodeHuffman(
				huffman.NewDecoder(huffman.FixedLiteralLengths[:]),
				huffman.NewDecoder(huffman.FixedDistanceLengths[:]),
			)
		case uint32(Dynamic):
			err = d.decodeDynamic()
		default:
			return ErrUnexpectedBlockType
		}
		if err != nil {
			return err
		}
		if final != 0 {
			return nil
		}
	}
}

func (d *Decoder) decodeStored() error {
	discarded := d.br.AlignByte()
	if discarded != 0 {
		return ErrUndecodableBitStream
	}
	header := d.br.ReadBytes(4)
	if err := d.br.Err(); err != nil {
		return err
	}
	length := int(header[0]) | int(header[1])<<8
	nlen := int(header[2]) | int(header[3])<<8
	if nlen != (^length & 0xffff) {
		return ErrUnexpectedNLenBytes
	}
	raw := d.br.ReadBytes(length)
	if err := d.br.Err(); err != nil {
		return err
	}
	for _, b := range raw {
		d.win.Push(b)
	}
	_, err := d.dst.Write(raw)
	return err
}

func (d *Decoder) decodeDynamic() error {
	hlit := int(d.br.ReadBits(5)) + 257
	hdist := int(d.br.ReadBits(5)) + 1
	hclen := int(d.br.ReadBits(4)) + 4
	if err := d.br.Err(); err != nil {
		return err
	}

	var clLengths [huffman.NumCodeLengths]uint8
	for i := 0; i < hclen; i++ {
		clLengths[huffman.CodeLengthOrder[i]] = uint8(d.br.ReadBits(3))
	}
	if err := d.br.Err(); err != nil {
		return err
	}
	clDecoder := huffman.NewDecoder(clLengths[:])

	total := hlit + hdist
	lengths := make([]uint8, total)
	for i := 0; i < total; {
		sym, err := clDecoder.Decode(d.br)
		if err != nil {
			return err
		}
		switch {
		case sym <= 15:
			lengths[i] = uint8(sym)
			i++
		case sym == huffman.CLRepeatPrev:
			if i == 0 {
				return ErrInvalidCLSymbol
			}
			count := int(d.br.ReadBits(2)) + 3
			if i+count > total {
				return ErrInvalidCLSymbol
			}
			prev := lengths[i-1]
			for k := 0; k < count; k++ {
				lengths[i] = prev
				i++
			}
		case sym == huffman.CLRepeatZero3:
			count := int(d.br.ReadBits(3)) + 3
			if i+count > total {
				return ErrInvalidCLSymbol
			}
			i += count
		case sym == huffman.CLRepeatZero11:
			count := int(d.br.ReadBits(7)) + 11
			if i+count > total {
				return ErrInvalidCLSymbol
			}
			i += count
		default:
			return ErrInvalidCLSymbol
		}
		if err := d.br.Err(); err != nil {
			return err
		}
	}

	llLengths := lengths[:hlit]
	distLengths := lengths[hlit:]
	return d.decodeHuffman(huffman.NewDecoder(llLengths), huffman.NewDecoder(distLengths))
}

func (d *Decoder) decodeHuffman(llDecoder, distDecoder *huffman.Decoder) error {
	for {
		sym, err := llDecoder.Decode(d.br)
		if err != nil {
			return err
		}
		switch {
		case sym < huffman.EndOfBlock:
			b := byte(sym)
			d.win.Push(b)
			if _, err := d.dst.Write([]byte{b}); err != nil {
				return err
			}
		case sym == huffman.EndOfBlock:
			return nil
		case sym <= 285:
			length, err := d.readLengthExtra(sym)
			if err != nil {
				return err
			}
			distSym, err := distDecoder.Decode(d.br)
			if err != nil {
				return err
			}
			distance, err := d.readDistanceExtra(distSym)
			if err != nil {
				return err
			}
			if err := d.expandMatch(length, distance); err != nil {
				return err
			}
		default:
			return ErrInvalidLiteralLength
		}
	}
}

func (d *Decoder) readLengthExtra(sym int) (int, error) {
	idx := sym - 257
	if idx < 0 || idx >= len(huffman.LengthTable) {
		return 0, ErrInvalidLiteralLength
	}
	entry := huffman.LengthTable[idx]
	extra := d.br.ReadBits(entry.ExtraBits)
	if err := d.br.Err(); err != nil {
		return 0, err
	}
	return entry.Base + int(extra), nil
}

func (d *Decoder) readDistanceExtra(sym int) (int, error) {
	if sym < 0 || sym >= len(huffman.DistanceTable) {
		return 0, ErrInvalidDistance
	}
	entry := huffman.DistanceTable[sym]
	extra := d.br.ReadBits(entry.ExtraBits)
	if err := d.br.Err(); err != nil {
		return 0, err
	}
	return entry.Base + int(extra), nil
}

func (d *Decoder) expandMatch(length, distance int) error {
	out := make([]byte, length)
	if err := d.win.CopyBack(out, length, distance); err != nil {
		return ErrInvalidDistance
	}
	_, err := d.dst.Write(out)
	return err
}
