// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func roundTrip(t *testing.T, policy Policy, in []byte) []byte {
	t.Helper()
	var compressed bytes.Buffer
	enc := NewEncoder(&compressed, policy)
	if err := enc.Encode(bytes.NewReader(in)); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out bytes.Buffer
	dec := NewDecoder(&compressed, &out)
	if err := dec.Decode(); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return out.Bytes()
}

func TestRoundTripEmpty(t *testing.T) {
	for _, policy := range []Policy{AutoPolicy, StoredOnly, PreferFixed, PreferDynamic} {
		got := roundTrip(t, policy, nil)
		if len(got) != 0 {
			t.Errorf("policy %v: got %q want empty", policy, got)
		}
	}
}

func TestRoundTripShortText(t *testing.T) {
	in := []byte("Hello, World!\n")
	for _, policy := range []Policy{AutoPolicy, StoredOnly, PreferFixed, PreferDynamic} {
		got := roundTrip(t, policy, in)
		if string(got) != string(in) {
			t.Errorf("policy %v: got %q want %q", policy, got, in)
		}
	}
}

func TestRoundTripRepeatedRun(t *testing.T) {
	in := bytes.Repeat([]byte{'a'}, 9001)
	for _, policy := range []Policy{AutoPolicy, StoredOnly, PreferFixed, PreferDynamic} {
		got := roundTrip(t, policy, in)
		if !bytes.Equal(got, in) {
			t.Errorf("policy %v: round trip mismatch, len got=%v want=%v", policy, len(got), len(in))
		}
	}
}

func TestRoundTripLargeText(t *testing.T) {
	var sb strings.Builder
	for sb.Len() < 40*1024 {
		sb.WriteString("the quick brown fox jumps over the lazy dog. ")
	}
	in := []byte(sb.String())
	for _, policy := range []Policy{AutoPolicy, PreferFixed, PreferDynamic} {
		got := roundTrip(t, policy, in)
		if !bytes.Equal(got, in) {
			t.Errorf("policy %v: round trip mismatch, len got=%v want=%v", policy, len(got), len(in))
		}
	}
}

func TestRoundTripMultiBlock(t *testing.T) {
	in := make([]byte, blockLengthMax*3+17)
	rng := rand.New(rand.NewSource(2))
	rng.Read(in)
	got := roundTrip(t, AutoPolicy, in)
	if !bytes.Equal(got, in) {
		t.Fatalf("round trip mismatch across block boundaries, len got=%v want=%v", len(got), len(in))
	}
}

func TestRoundTripRandomData(t *testing.T) {
	in := make([]byte, 128)
	rng := rand.New(rand.NewSource(7))
	rng.Read(in)
	for _, policy := range []Policy{AutoPolicy, StoredOnly, PreferFixed, PreferDynamic} {
		got := roundTrip(t, policy, in)
		if !bytes.Equal(got, in) {
			t.Errorf("policy %v: round trip mismatch on random data", policy)
		}
	}
}

func TestAutoPolicyNeverPicksInvalidBlockType(t *testing.T) {
	in := make([]byte, 64)
	rng := rand.New(rand.NewSource(3))
	rng.Read(in)

	var compressed bytes.Buffer
	enc := NewEncoder(&compressed, AutoPolicy)
	if err := enc.Encode(bytes.NewReader(in)); err != nil {
		t.Fatal(err)
	}
	first := compressed.Bytes()[0]
	btype := (first >> 1) & 0x3
	if btype > uint8(Dynamic) {
		t.Errorf("got BTYPE=%v, want one of Stored/Fixed/Dynamic", btype)
	}
}

func TestDecodeRejectsBadBlockType(t *testing.T) {
	// BFINAL=1, BTYPE=3 (invalid), rest zero.
	var buf bytes.Buffer
	buf.WriteByte(0x07)
	var out bytes.Buffer
	dec := NewDecoder(&buf, &out)
	if err := dec.Decode(); err != ErrUnexpectedBlockType {
		t.Errorf("got %v want ErrUnexpectedBlockType", err)
	}
}
