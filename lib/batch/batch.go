//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"git.sr.ht/~vejnar/Smitten/lib/feature"
	"git.sr.ht/~vejnar/Smitten/lib/seqio"
	"git.sr.ht/~vejnar/Smitten/lib/smitten"
)

const defaultChunkSize = 1000

type Options struct {
	Workers           int
	ChunkSize         int
	ZeroBasedHalfOpen bool
	Normalize         bool
	// Strict stops the run at the first invalid identifier.
	Strict  bool
	Mapping map[string]string
	Logger  *log.Logger
}

// Result is the conversion of one input identifier.
type Result struct {
	Line   int
	Input  string
	ID     smitten.Identifier
	Format smitten.Format
	Err    error
}

type chunk struct {
	index   int
	results []Result
}

// Convert converts a single identifier of unknown format.
func Convert(line int, raw string, opts Options) Result {
	res := Result{Line: line, Input: raw}
	res.ID, res.Format, res.Err = smitten.FromUnknown(raw, opts.ZeroBasedHalfOpen)
	if res.Err != nil {
		return res
	}
	res.ID = feature.MapIdentifier(res.ID, opts.Mapping)
	if opts.Normalize {
		res.ID, res.Err = smitten.Normalize(res.ID)
	}
	return res
}

func writeResult(w io.Writer, res Result) (err error) {
	if res.Err != nil {
		_, err = fmt.Fprintf(w, "%s\t!\t%v\n", res.Input, res.Err)
	} else {
		_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", res.Input, res.ID, res.Format)
	}
	return
}

// Run converts every identifier read by sc on opts.Workers goroutines and
// writes "input<TAB>identifier<TAB>format" lines to w, in input order.
func Run(ctx context.Context, sc *seqio.Scanner, w io.Writer, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	nWorker := max(1, opts.Workers)
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	report := NewReport()

	g, gctx := errgroup.WithContext(ctx)
	chIn := make(chan chunk, nWorker*10)
	chOut := make(chan chunk, nWorker*10)

	// Reading
	g.Go(func() error {
		defer close(chIn)
		var index int
		c := chunk{index: index}
		for sc.Scan() {
			c.results = append(c.results, Result{Line: sc.Line(), Input: sc.Text()})
			if len(c.results) == chunkSize {
				select {
				case chIn <- c:
				case <-gctx.Done():
					return gctx.Err()
				}
				index++
				c = chunk{index: index}
			}
		}
		if err := sc.Err(); err != nil {
			return err
		}
		if len(c.results) > 0 {
			select {
			case chIn <- c:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		logger.Debug("input read", "chunks", index+1)
		return nil
	})

	// Converting
	g.Go(func() error {
		defer close(chOut)
		wg, wgctx := errgroup.WithContext(gctx)
		for i := 0; i < nWorker; i++ {
			wg.Go(func() error {
				for c := range chIn {
					for ir, res := range c.results {
						res = Convert(res.Line, res.Input, opts)
						if res.Err != nil && opts.Strict {
							return fmt.Errorf("line %d: %w", res.Line, res.Err)
						} else if res.Err == nil {
							report.AddSequence(res.ID.Prefix())
						}
						c.results[ir] = res
					}
					select {
					case chOut <- c:
					case <-wgctx.Done():
						return wgctx.Err()
					}
				}
				return nil
			})
		}
		return wg.Wait()
	})

	// Writing in input order
	g.Go(func() error {
		bw := bufio.NewWriter(w)
		pending := make(map[int]chunk)
		next := 0
		for c := range chOut {
			pending[c.index] = c
			for {
				pc, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				for _, res := range pc.results {
					if res.Err != nil {
						logger.Warn("invalid identifier", "line", res.Line, "id", res.Input, "err", res.Err)
					}
					report.Add(res)
					if err := writeResult(bw, res); err != nil {
						return err
					}
				}
				next++
			}
		}
		return bw.Flush()
	})

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}
