// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command gflate compresses and decompresses files in the gzip
// format, as a small command-line front end over the gflate package.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cloudeng.io/cmdutil"
	"cloudeng.io/errors"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/Kafva/gflate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if flags.Help {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if flags.Version {
		fmt.Fprintln(stdout, version)
		return 0
	}
	if !flags.Verbose {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	interrupted := false
	cmdutil.HandleSignals(func() {
		interrupted = true
		cancel()
	}, os.Interrupt)

	if err := dispatch(ctx, flags, stdin, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, err)
		if interrupted {
			return 4
		}
		return 1
	}
	return 0
}

func dispatch(ctx context.Context, flags *Flags, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(flags.Args) > 1 {
		return fmt.Errorf("gflate: at most one input file is supported")
	}

	var inputPath string
	if len(flags.Args) == 1 && flags.Args[0] != "-" {
		inputPath = flags.Args[0]
	}

	src, size, closeSrc, err := openInput(inputPath, stdin)
	if err != nil {
		return err
	}
	defer closeSrc() //nolint:errcheck

	// Decompression needs the gzip header (and in particular FNAME)
	// before the output path can be decided, so the reader is opened
	// here rather than inside decompress.
	var gr *gflate.Reader
	var embeddedName string
	if flags.Decompress {
		gr, err = gflate.NewReader(src)
		if err != nil {
			return err
		}
		embeddedName = gr.Name
	}

	outputPath := outputPathFor(inputPath, flags, embeddedName)
	log.Printf("gflate: input %q, output %q, decompress %v, level %v", inputPath, outputPath, flags.Decompress, flags.Level)
	dst, closeDst, err := openOutput(outputPath, stdout)
	if err != nil {
		return err
	}

	var w io.Writer = dst
	isTTY := terminal.IsTerminal(int(os.Stdout.Fd()))
	if flags.Progress && (outputPath != "" || !isTTY) {
		pw := newProgressWriter(dst, stderr, size)
		defer pw.finish(stderr)
		w = pw
	}

	errs := &errors.M{}
	if flags.Decompress {
		errs.Append(decompress(gr, w))
	} else {
		var opts []gflate.Option
		if inputPath != "" {
			opts = append(opts, gflate.WithName(filepath.Base(inputPath)))
		}
		errs.Append(compress(src, w, flags.Level, opts...))
	}
	errs.Append(closeDst())

	if errs.Err() == nil && inputPath != "" && outputPath != "" && !flags.Keep {
		errs.Append(os.Remove(inputPath))
	}

	select {
	case <-ctx.Done():
		errs.Append(ctx.Err())
	default:
	}

	return errs.Err()
}

func compress(src io.Reader, dst io.Writer, level gflate.Level, opts ...gflate.Option) error {
	w := gflate.NewWriterLevel(dst, level, opts...)
	if _, err := io.Copy(w, src); err != nil {
		w.Close() //nolint:errcheck
		return err
	}
	return w.Close()
}

func decompress(r *gflate.Reader, dst io.Writer) error {
	_, err := io.Copy(dst, r)
	return err
}

func openInput(path string, stdin io.Reader) (io.Reader, int64, func() error, error) {
	if path == "" {
		return stdin, 0, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close() //nolint:errcheck
		return nil, 0, nil, err
	}
	return f, info.Size(), f.Close, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// outputPathFor derives the output file path per the CLI contract:
// -c writes to stdout; compressing a named file writes <input>.gz;
// decompressing a named file strips a trailing .gz suffix. When the
// input lacks that suffix, the member's embedded FNAME is honored if
// present (written alongside the input file), falling back to a
// .out suffix otherwise.
func outputPathFor(inputPath string, flags *Flags, embeddedName string) string {
	if flags.Stdout || inputPath == "" {
		return ""
	}
	if flags.Decompress {
		if strings.HasSuffix(inputPath, ".gz") {
			return strings.TrimSuffix(inputPath, ".gz")
		}
		if embeddedName != "" {
			return filepath.Join(filepath.Dir(inputPath), filepath.Base(embeddedName))
		}
		return inputPath + ".out"
	}
	return inputPath + ".gz"
}
