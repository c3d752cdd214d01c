// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gflate

import (
	"time"

	"github.com/Kafva/gflate/internal/deflate"
)

// Level selects a compression policy, mirroring the CLI's -0/-1/-9
// flags.
type Level int

const (
	// Default lets the Writer estimate the cheapest block encoding
	// per block.
	Default Level = -1
	// NoCompression emits Stored blocks only.
	NoCompression Level = 0
	// Fastest always uses the fixed Huffman code.
	Fastest Level = 1
	// Best always builds a per-block dynamic Huffman code.
	Best Level = 9
)

func (l Level) policy() deflate.Policy {
	switch l {
	case NoCompression:
		return deflate.StoredOnly
	case Fastest:
		return deflate.PreferFixed
	case Best:
		return deflate.PreferDynamic
	default:
		return deflate.AutoPolicy
	}
}

type writerOpts struct {
	level     Level
	name      string
	comment   string
	modTime   time.Time
	os        byte
	headerCRC bool
}

// Option configures a Writer created by NewWriterLevel.
type Option func(*writerOpts)

// WithName sets the gzip header's FNAME field.
func WithName(name string) Option {
	return func(o *writerOpts) { o.name = name }
}

// WithComment sets the gzip header's FCOMMENT field.
func WithComment(comment string) Option {
	return func(o *writerOpts) { o.comment = comment }
}

// WithModTime sets the gzip header's MTIME field. The zero Time
// writes MTIME 0, the conventional "not set" value.
func WithModTime(t time.Time) Option {
	return func(o *writerOpts) { o.modTime = t }
}

// WithOS sets the gzip header's OS field; the default is 255
// (unknown).
func WithOS(os byte) Option {
	return func(o *writerOpts) { o.os = os }
}

// WithHeaderCRC enables the optional FHCRC header field.
func WithHeaderCRC(enabled bool) Option {
	return func(o *writerOpts) { o.headerCRC = enabled }
}
