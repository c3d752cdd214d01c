package gzipcrc

import (
	"hash/crc32"
	"testing"
)

func TestZeroBytes(t *testing.T) {
	c := New()
	if c.Sum32() != 0 {
		t.Errorf("got %v want 0", c.Sum32())
	}
}

func TestMatchesStdlib(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	c := New()
	c.Write(data[:10])
	c.Write(data[10:])
	want := crc32.ChecksumIEEE(data)
	if c.Sum32() != want {
		t.Errorf("got %#x want %#x", c.Sum32(), want)
	}
}

func TestHeaderCRC16(t *testing.T) {
	data := []byte("file.txt\x00")
	want := uint16(crc32.ChecksumIEEE(data))
	if got := HeaderCRC16(data); got != want {
		t.Errorf("got %#x want %#x", got, want)
	}
}
