//
// Copyright © 2015 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"git.sr.ht/~vejnar/Smitten/lib/batch"
	"git.sr.ht/~vejnar/Smitten/lib/esam"
	"git.sr.ht/~vejnar/Smitten/lib/feature"
	"git.sr.ht/~vejnar/Smitten/lib/seqio"
	"git.sr.ht/~vejnar/Smitten/lib/smitten"
)

func invalid(n int) error {
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%d invalid identifier(s)", n)
}

type ConvertCmd struct {
	Input     string `arg:"" optional:"" default:"-" help:"Identifiers, one per line (- for stdin, may be .gz, .zst or .lz4)."`
	Zbho      bool   `help:"Input coordinates are zero-based half-open."`
	Normalize bool   `help:"Normalize converted identifiers to a single range."`
	Strict    bool   `help:"Stop at the first invalid identifier."`
	Fasta     bool   `help:"Input is FASTA: convert header identifiers."`
	Workers   int    `short:"w" default:"1" help:"Number of worker(s)."`
	Mapping   string `help:"Path to sequence name mapping (tabulated file)."`
	Report    string `help:"Write report to path (stdout with -)."`
	Out       string `short:"o" default:"-" help:"Output path (- for stdout)."`
	Zip       string `help:"Output compression: lz4 or lz4hc."`
}

func (c *ConvertCmd) Run(e *env) error {
	in, err := seqio.Open(c.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	var mapping map[string]string
	if c.Mapping != "" {
		if mapping, err = feature.OpenMapping(c.Mapping); err != nil {
			return err
		}
		e.logger.Debug("mapping loaded", "path", c.Mapping, "names", len(mapping))
	}

	var out seqio.GenericWriter
	if c.Out == "-" && c.Zip == "" {
		out = nopCloser{e.stdout}
	} else if out, err = seqio.Create(c.Out, c.Zip, false); err != nil {
		return err
	}

	timeStart := time.Now()
	report, err := batch.Run(e.ctx, seqio.NewScanner(in, c.Fasta), out, batch.Options{
		Workers:           c.Workers,
		ZeroBasedHalfOpen: c.Zbho,
		Normalize:         c.Normalize,
		Strict:            c.Strict,
		Mapping:           mapping,
		Logger:            e.logger,
	})
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	e.logger.Info("converted", "total", report.Total, "failed", report.Failed, "sequences", report.Sequences(), "elapsed", time.Since(timeStart).Round(time.Millisecond))

	if c.Report != "" {
		return batch.WriteReport(c.Report, report)
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

type ParseCmd struct {
	IDs []string `arg:"" name:"id" help:"Canonical identifier(s)."`
}

func (c *ParseCmd) Run(e *env) error {
	var nErr int
	for _, raw := range c.IDs {
		id, err := smitten.Parse(raw)
		if err != nil {
			e.logger.Warn("invalid identifier", "id", raw, "err", err)
			nErr++
			continue
		}
		ranges := make([]string, len(id.Ranges))
		for i, r := range id.Ranges {
			ranges[i] = r.String()
		}
		fmt.Fprintf(e.stdout, "%s\t%s\t%s\t%s\t%s\n", raw, orDot(id.Assembly), id.Sequence, orDot(strings.Join(ranges, ",")), id.Format)
	}
	return invalid(nErr)
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}

type NormalizeCmd struct {
	IDs  []string `arg:"" name:"id" help:"Identifier(s) of any format."`
	Zbho bool     `help:"Input coordinates are zero-based half-open."`
}

func (c *NormalizeCmd) Run(e *env) error {
	var nErr int
	for _, raw := range c.IDs {
		id, _, err := smitten.FromUnknown(raw, c.Zbho)
		if err != nil {
			e.logger.Warn("invalid identifier", "id", raw, "err", err)
			nErr++
			continue
		}
		n, err := smitten.Normalize(id)
		if err != nil {
			e.logger.Warn("invalid identifier", "id", raw, "err", err)
			nErr++
			continue
		}
		if n.Equal(id) {
			e.logger.Debug("already normalized", "id", raw)
		}
		fmt.Fprintf(e.stdout, "%s\t%s\n", raw, n)
	}
	return invalid(nErr)
}

type OverlapCmd struct {
	Features string `arg:"" help:"Feature identifiers, one per line (optionally name<TAB>identifier)."`
	Query    string `arg:"" help:"Query identifiers, same format as features."`
	Zbho     bool   `help:"Input coordinates are zero-based half-open."`
	Strand   string `default:"both" enum:"both,same,opposite" help:"Strand of features to report relative to the query (both, same or opposite)."`
}

func (c *OverlapCmd) Run(e *env) error {
	features, err := feature.OpenIDs(c.Features, c.Zbho)
	if err != nil {
		return err
	}
	trees, err := feature.BuildFeatTrees(features)
	if err != nil {
		return err
	}
	e.logger.Debug("features indexed", "path", c.Features, "features", len(features))

	queries, err := feature.OpenIDs(c.Query, c.Zbho)
	if err != nil {
		return err
	}
	for _, q := range queries {
		var strands []int8
		switch c.Strand {
		case "same":
			strands = []int8{q.Strand}
		case "opposite":
			strands = []int8{-q.Strand}
		}
		for _, ov := range trees.Overlaps(q, strands) {
			fmt.Fprintf(e.stdout, "%s\t%s\t%s\t%d\n", q.Name, ov.Feature.Name, ov.Feature.Identifier(), ov.Length)
		}
	}
	return nil
}

type RefsCmd struct {
	Path    string `arg:"" name:"sambam" help:"SAM (may be compressed) or BAM file."`
	Zbho    bool   `help:"Reference coordinates are zero-based half-open."`
	Workers int    `short:"w" default:"1" help:"Number of BAM decompression worker(s)."`
}

func (c *RefsCmd) Run(e *env) error {
	r, cl, err := esam.OpenSAM(esam.NewPathSAM(c.Path), c.Workers)
	if err != nil {
		return err
	}
	defer cl.Close()

	var nErr int
	for _, ref := range esam.ReferenceIdentifiers(r.Header(), c.Zbho) {
		if ref.Err != nil {
			fmt.Fprintf(e.stdout, "%s\t!\t%v\n", ref.Name, ref.Err)
			nErr++
			continue
		}
		fmt.Fprintf(e.stdout, "%s\t%s\t%s\t%d\n", ref.Name, ref.ID, ref.Format, ref.Len)
	}
	return invalid(nErr)
}

type LiftCmd struct {
	Path    string `arg:"" name:"sambam" help:"SAM (may be compressed) or BAM file."`
	Zbho    bool   `help:"Reference coordinates are zero-based half-open."`
	Workers int    `short:"w" default:"1" help:"Number of BAM decompression worker(s)."`
}

func (c *LiftCmd) Run(e *env) error {
	r, cl, err := esam.OpenSAM(esam.NewPathSAM(c.Path), c.Workers)
	if err != nil {
		return err
	}
	defer cl.Close()

	refs := make(map[string]esam.Reference)
	for _, ref := range esam.ReferenceIdentifiers(r.Header(), c.Zbho) {
		if ref.Err != nil {
			e.logger.Warn("invalid reference", "name", ref.Name, "err", ref.Err)
		}
		refs[ref.Name] = ref
	}

	var nRecord, nUnmapped, nErr int
	for {
		if err := e.ctx.Err(); err != nil {
			return err
		}
		rec, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		nRecord++
		if rec.Ref == nil {
			nUnmapped++
			continue
		}
		ref := refs[rec.Ref.Name()]
		if ref.Err != nil {
			nErr++
			continue
		}
		lifted, err := esam.Lift(rec, ref.ID)
		if errors.Is(err, esam.ErrUnmapped) {
			nUnmapped++
			continue
		} else if err != nil {
			e.logger.Warn("lift failed", "read", rec.Name, "ref", ref.Name, "err", err)
			nErr++
			continue
		}
		fmt.Fprintf(e.stdout, "%s\t%s\n", rec.Name, lifted)
	}
	e.logger.Info("lifted", "records", nRecord, "unmapped", nUnmapped, "failed", nErr)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	fmt.Fprintln(e.stdout, version)
	return nil
}
