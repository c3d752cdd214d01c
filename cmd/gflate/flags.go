// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/Kafva/gflate"
)

// FlagError is returned for an unrecognized flag token.
type FlagError string

func (e FlagError) Error() string {
	return fmt.Sprintf("gflate: unexpected flag %q", string(e))
}

// Flags holds the parsed command line, per the tool's gzip(1)-style
// flag set: short flags are -x, long flags are --name, flags never
// take a separate value (all of this tool's flags are boolean), and
// -- ends flag parsing.
type Flags struct {
	Stdout     bool
	Decompress bool
	Progress   bool
	Help       bool
	Verbose    bool
	Version    bool
	Keep       bool
	Level      gflate.Level
	Args       []string
}

func parseFlags(args []string) (*Flags, error) {
	f := &Flags{Level: gflate.Default}
	endOfFlags := false

	for _, arg := range args {
		if endOfFlags {
			f.Args = append(f.Args, arg)
			continue
		}
		switch arg {
		case "--":
			endOfFlags = true
		case "-c", "--stdout":
			f.Stdout = true
		case "-d", "--decompress":
			f.Decompress = true
		case "-p", "--progress":
			f.Progress = true
		case "-h", "--help":
			f.Help = true
		case "-v", "--verbose":
			f.Verbose = true
		case "-V", "--version":
			f.Version = true
		case "-k", "--keep":
			f.Keep = true
		case "-0", "--zero":
			f.Level = gflate.NoCompression
		case "-1", "--fast":
			f.Level = gflate.Fastest
		case "-9", "--best":
			f.Level = gflate.Best
		default:
			if len(arg) > 0 && arg[0] == '-' && arg != "-" {
				return nil, FlagError(arg)
			}
			f.Args = append(f.Args, arg)
		}
	}
	return f, nil
}

const usage = `usage: gflate [-cdpvVk] [-0|-1|-9] [--] [file]

  -c, --stdout       write to stdout, do not replace input
  -d, --decompress   decompress instead of compress
  -p, --progress     render a progress indicator on stderr
  -v, --verbose      enable debug logging
  -V, --version      print version and exit
  -k, --keep         do not delete the input file on success
  -0, --zero         emit Stored blocks only
  -1, --fast         prefer the Fixed-Huffman policy
  -9, --best         prefer the Dynamic-Huffman (best size) policy
  -h, --help         print this message and exit
`

const version = "gflate 0.1.0"
