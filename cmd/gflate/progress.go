// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/schollz/progressbar/v2"
)

// progressWriter wraps an io.Writer, forwarding every Write to it
// while advancing a progress bar by the number of bytes passed
// through.
type progressWriter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// newProgressWriter renders a progress bar of size total bytes to
// out, mirroring the teacher's own progressBar helper.
func newProgressWriter(w, out io.Writer, total int64) *progressWriter {
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetBytes64(total),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetPredictTime(true),
	)
	bar.RenderBlank()
	return &progressWriter{w: w, bar: bar}
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.bar.Add(n) //nolint:errcheck
	}
	return n, err
}

func (p *progressWriter) finish(out io.Writer) {
	io.WriteString(out, "\n") //nolint:errcheck
}
