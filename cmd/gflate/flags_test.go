// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/Kafva/gflate"
)

func TestParseFlagsBasic(t *testing.T) {
	f, err := parseFlags([]string{"-d", "-c", "-9", "input.gz"})
	if err != nil {
		t.Fatal(err)
	}
	if !f.Decompress || !f.Stdout || f.Level != gflate.Best {
		t.Errorf("got %+v", f)
	}
	if len(f.Args) != 1 || f.Args[0] != "input.gz" {
		t.Errorf("got args %v", f.Args)
	}
}

func TestParseFlagsLongForm(t *testing.T) {
	f, err := parseFlags([]string{"--decompress", "--stdout", "--zero"})
	if err != nil {
		t.Fatal(err)
	}
	if !f.Decompress || !f.Stdout || f.Level != gflate.NoCompression {
		t.Errorf("got %+v", f)
	}
}

func TestParseFlagsTerminator(t *testing.T) {
	f, err := parseFlags([]string{"-v", "--", "-not-a-flag"})
	if err != nil {
		t.Fatal(err)
	}
	if !f.Verbose {
		t.Errorf("expected verbose set")
	}
	if len(f.Args) != 1 || f.Args[0] != "-not-a-flag" {
		t.Errorf("got args %v, want the literal token after --", f.Args)
	}
}

func TestParseFlagsUnexpectedFlag(t *testing.T) {
	_, err := parseFlags([]string{"--bogus"})
	if _, ok := err.(FlagError); !ok {
		t.Errorf("got %v (%T), want a FlagError", err, err)
	}
}

func TestParseFlagsStdinDash(t *testing.T) {
	f, err := parseFlags([]string{"-"})
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Args) != 1 || f.Args[0] != "-" {
		t.Errorf("got args %v", f.Args)
	}
}
