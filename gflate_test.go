// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gflate

import (
	"bytes"
	"compress/gzip"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/Kafva/gflate/internal/deflate"
	"github.com/Kafva/gflate/internal/lz"
)

func compressAt(t *testing.T, level Level, in []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriterLevel(&buf, level)
	if _, err := w.Write(in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func decompress(t *testing.T, compressed []byte) []byte {
	t.Helper()
	r, err := NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return out
}

func TestEmptyInput(t *testing.T) {
	compressed := compressAt(t, Default, nil)
	out := decompress(t, compressed)
	if len(out) != 0 {
		t.Errorf("got %q want empty", out)
	}
	if got := compressed[len(compressed)-8 : len(compressed)-4]; !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Errorf("expected zero CRC-32 trailer for empty input, got %v", got)
	}
	if got := compressed[len(compressed)-4:]; !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Errorf("expected zero ISIZE trailer for empty input, got %v", got)
	}
}

func TestHelloWorldMatchesStdlibGzip(t *testing.T) {
	in := []byte("Hello, World!\n")
	compressed := compressAt(t, Default, in)

	gzr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("stdlib gzip.NewReader: %v", err)
	}
	out, err := io.ReadAll(gzr)
	if err != nil {
		t.Fatalf("stdlib gzip Read: %v", err)
	}
	if string(out) != string(in) {
		t.Errorf("stdlib decoded %q want %q", out, in)
	}

	if got := decompress(t, compressed); string(got) != string(in) {
		t.Errorf("own decoder got %q want %q", got, in)
	}
}

func TestRepeatedRunIsSmallAndUsesLongMatch(t *testing.T) {
	in := bytes.Repeat([]byte{'a'}, 9001)
	compressed := compressAt(t, Default, in)
	if len(compressed) >= 100 {
		t.Errorf("expected compressed size < 100 bytes, got %v", len(compressed))
	}
	if got := decompress(t, compressed); !bytes.Equal(got, in) {
		t.Errorf("round trip mismatch, len got=%v want=%v", len(got), len(in))
	}
	// The input fits one block, so the Writer's LZSS pass sees exactly
	// this symbol stream.
	found258 := false
	for _, s := range lz.NewEncoder().Encode(in) {
		if s.Kind == lz.Length && s.Value == 258 {
			found258 = true
		}
	}
	if !found258 {
		t.Errorf("expected at least one length-258 back-reference in the symbol stream")
	}
}

func TestLargeTextRoundTripsUnderAllBlockModes(t *testing.T) {
	var sb strings.Builder
	for sb.Len() < 40*1024 {
		sb.WriteString("the quick brown fox jumps over the lazy dog. ")
	}
	in := []byte(sb.String())

	sizes := map[Level]int{}
	for _, level := range []Level{NoCompression, Fastest, Best} {
		compressed := compressAt(t, level, in)
		sizes[level] = len(compressed)
		if got := decompress(t, compressed); !bytes.Equal(got, in) {
			t.Fatalf("level %v: round trip mismatch", level)
		}
		gzr, err := gzip.NewReader(bytes.NewReader(compressed))
		if err != nil {
			t.Fatalf("level %v: stdlib gzip.NewReader: %v", level, err)
		}
		out, err := io.ReadAll(gzr)
		if err != nil {
			t.Fatalf("level %v: stdlib gzip Read: %v", level, err)
		}
		if !bytes.Equal(out, in) {
			t.Errorf("level %v: stdlib decoded mismatch", level)
		}
	}
	if sizes[Best] >= sizes[Fastest] {
		t.Errorf("expected Dynamic (%v bytes) smaller than Fixed (%v bytes)", sizes[Best], sizes[Fastest])
	}
	if sizes[Fastest] >= sizes[NoCompression] {
		t.Errorf("expected Fixed (%v bytes) smaller than Stored (%v bytes)", sizes[Fastest], sizes[NoCompression])
	}
}

func TestRandomDataRoundTripsWithoutCrash(t *testing.T) {
	in := make([]byte, 128)
	rand.New(rand.NewSource(42)).Read(in)
	compressed := compressAt(t, Default, in)
	if got := decompress(t, compressed); !bytes.Equal(got, in) {
		t.Errorf("round trip mismatch on random data")
	}
}

func TestHeaderNameAndCRCRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterLevel(&buf, Default, WithName("hello.txt"), WithHeaderCRC(true))
	if _, err := w.Write([]byte("content")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.Name != "hello.txt" {
		t.Errorf("got Name %q want %q", r.Name, "hello.txt")
	}
	out, err := io.ReadAll(r)
	if err != nil || string(out) != "content" {
		t.Errorf("got %q, %v want %q, nil", out, err, "content")
	}
}

func TestTruncatedFnameIsReported(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterLevel(&buf, Default, WithName("hello.txt"))
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	full := buf.Bytes()
	// Truncate inside the NUL-terminated FNAME field (right after the
	// 10-byte fixed header, before any NUL byte appears).
	truncated := full[:10+3]
	if _, err := NewReader(bytes.NewReader(truncated)); err != ErrTruncatedHeaderFname {
		t.Errorf("got %v want ErrTruncatedHeaderFname", err)
	}
}

func TestCrcMismatchIsReported(t *testing.T) {
	compressed := compressAt(t, Default, []byte("some data"))
	corrupted := append([]byte(nil), compressed...)
	// Invert the first byte of the CRC-32 trailer (last 8 bytes are
	// the trailer; the first 4 are CRC-32).
	corrupted[len(corrupted)-8] ^= 0xff

	if _, err := NewReader(bytes.NewReader(corrupted)); err != ErrCrcMismatch {
		t.Errorf("got %v want ErrCrcMismatch", err)
	}
}

func TestHeaderCRCMismatchIsReported(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterLevel(&buf, Default, WithName("hello.txt"), WithHeaderCRC(true))
	if _, err := w.Write([]byte("content")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	raw := buf.Bytes()
	// FHCRC is the 2 bytes right before the deflate payload: 10-byte
	// fixed header + "hello.txt\x00" (10 bytes) + 2-byte FHCRC.
	fhcrcOffset := 10 + len("hello.txt\x00")
	raw[fhcrcOffset] ^= 0xff

	if _, err := NewReader(bytes.NewReader(raw)); err != ErrCrcMismatch {
		t.Errorf("got %v want ErrCrcMismatch", err)
	}
}

// Every byte >= 0x90 exercises a 9-bit fixed-Huffman literal code
// (symbols 144-255); these are the codes a dropped 286/287 slot in
// the fixed length vector would have mis-numbered.
func TestFastestRoundTripsAllByteValuesAgainstStdlibGzip(t *testing.T) {
	in := make([]byte, 256)
	for i := range in {
		in[i] = byte(i)
	}
	compressed := compressAt(t, Fastest, in)

	gzr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("stdlib gzip.NewReader: %v", err)
	}
	out, err := io.ReadAll(gzr)
	if err != nil {
		t.Fatalf("stdlib gzip Read: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Errorf("stdlib decoded mismatch for high bytes under Fastest")
	}

	if got := decompress(t, compressed); !bytes.Equal(got, in) {
		t.Errorf("own decoder round trip mismatch for high bytes under Fastest")
	}
}

func TestStoredBlockBadNLenIsReported(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterLevel(&buf, NoCompression)
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	raw := buf.Bytes()
	// The stored block's LEN/NLEN pair begins right after the fixed
	// 10-byte header and the 1-byte block header (BFINAL+BTYPE is 3
	// bits, padded to the next byte boundary). Corrupt the NLEN low
	// byte.
	nlenOffset := 10 + 1 + 2
	raw[nlenOffset] ^= 0xff

	if _, err := NewReader(bytes.NewReader(raw)); err != deflate.ErrUnexpectedNLenBytes {
		t.Errorf("got %v want ErrUnexpectedNLenBytes", err)
	}
}
