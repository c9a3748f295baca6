//
// Copyright © 2015 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package seqio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

const maxLineLength = 1024 * 1024

type GenericWriter interface {
	Write(buf []byte) (n int, err error)
	Close() error
}

type multiCloser struct {
	io.Reader
	closers []func() error
}

func (m *multiCloser) Close() (err error) {
	for _, c := range m.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return
}

// Open opens path for reading ("-" for stdin). Files ending with .gz, .zst
// or .lz4 are decompressed.
func Open(path string) (io.ReadCloser, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		if f, err = os.Open(path); err != nil {
			return nil, err
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		return &multiCloser{Reader: zr, closers: []func() error{zr.Close, f.Close}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		return &multiCloser{Reader: zr, closers: []func() error{func() error { zr.Close(); return nil }, f.Close}}, nil
	case ".lz4":
		return &multiCloser{Reader: lz4.NewReader(f), closers: []func() error{f.Close}}, nil
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// zipWriter closes the compressor then f. f is nil for stdout, which is
// left open.
type zipWriter struct {
	GenericWriter
	f *os.File
}

func (z zipWriter) Close() error {
	err := z.GenericWriter.Close()
	if z.f == nil {
		return err
	}
	if err != nil {
		z.f.Close()
		return err
	}
	return z.f.Close()
}

// Create creates path for writing ("-" for stdout). zip is "", "lz4" or
// "lz4hc". Output is appended to with appendOutput.
func Create(path string, zip string, appendOutput bool) (GenericWriter, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdout
	} else {
		// Append or Create flag
		var fg int
		if appendOutput {
			fg = os.O_APPEND | os.O_CREATE | os.O_WRONLY
		} else {
			fg = os.O_RDWR | os.O_CREATE | os.O_TRUNC
		}
		var err error
		if f, err = os.OpenFile(path, fg, 0666); err != nil {
			return nil, err
		}
	}
	closeFile := f
	if path == "-" {
		closeFile = nil
	}
	var writer GenericWriter
	switch zip {
	case "lz4":
		writer = zipWriter{GenericWriter: lz4.NewWriter(f), f: closeFile}
	case "lz4hc":
		lzWriter := lz4.NewWriter(f)
		lzWriter.Header = lz4.Header{CompressionLevel: 9}
		writer = zipWriter{GenericWriter: lzWriter, f: closeFile}
	case "":
		if path == "-" {
			writer = nopWriteCloser{f}
		} else {
			writer = f
		}
	default:
		if path != "-" {
			f.Close()
		}
		return nil, fmt.Errorf("Unknown compression %s", zip)
	}
	return writer, nil
}

// Scanner reads identifiers, one per line, skipping blank lines and lines
// starting with '#'. In FASTA mode only header lines are read and the
// identifier is the first word after '>'.
type Scanner struct {
	s     *bufio.Scanner
	fasta bool
	text  string
	line  int
}

func NewScanner(r io.Reader, fasta bool) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineLength)
	return &Scanner{s: s, fasta: fasta}
}

func (sc *Scanner) Scan() bool {
	for sc.s.Scan() {
		sc.line++
		line := strings.TrimRight(sc.s.Text(), "\r")
		if sc.fasta {
			if !strings.HasPrefix(line, ">") {
				continue
			}
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				continue
			}
			sc.text = fields[0]
			return true
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sc.text = line
		return true
	}
	return false
}

// Text returns the last identifier read.
func (sc *Scanner) Text() string { return sc.text }

// Line returns the line number of the last identifier read.
func (sc *Scanner) Line() int { return sc.line }

func (sc *Scanner) Err() error { return sc.s.Err() }
