//
// Copyright © 2015 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package esam

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"git.sr.ht/~vejnar/Smitten/lib/seqio"
	"git.sr.ht/~vejnar/Smitten/lib/smitten"
)

var ErrUnmapped = errors.New("unmapped record")

// PathSAM stores Path to SAM (Binary=false) or BAM (Binary=true) file.
type PathSAM struct {
	Path   string
	Binary bool
}

// NewPathSAM guesses the file type from its extension.
func NewPathSAM(path string) PathSAM {
	return PathSAM{Path: path, Binary: strings.ToLower(filepath.Ext(path)) == ".bam"}
}

type Reader interface {
	Read() (*sam.Record, error)
	Header() *sam.Header
}

type closers []io.Closer

func (cs closers) Close() (err error) {
	for _, c := range cs {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return
}

// OpenSAM opens a SAM or BAM file. nWorker is the number of BAM decompression workers.
// Plain SAM files may be compressed (see seqio.Open).
func OpenSAM(pathSAM PathSAM, nWorker int) (Reader, io.Closer, error) {
	if pathSAM.Binary {
		f, err := os.Open(pathSAM.Path)
		if err != nil {
			return nil, nil, err
		}
		br, err := bam.NewReader(f, nWorker)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("opening %s: %w", pathSAM.Path, err)
		}
		return br, closers{br, f}, nil
	}
	f, err := seqio.Open(pathSAM.Path)
	if err != nil {
		return nil, nil, err
	}
	sr, err := sam.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("opening %s: %w", pathSAM.Path, err)
	}
	return sr, f, nil
}

// Reference is a SAM reference whose name was read as an identifier.
type Reference struct {
	Name   string
	Len    int
	ID     smitten.Identifier
	Format smitten.Format
	Err    error
}

// ReferenceIdentifiers reads the name of every reference of h as an identifier.
func ReferenceIdentifiers(h *sam.Header, zeroBasedHalfOpen bool) []Reference {
	refs := make([]Reference, len(h.Refs()))
	for i, ref := range h.Refs() {
		refs[i] = Reference{Name: ref.Name(), Len: ref.Len()}
		refs[i].ID, refs[i].Format, refs[i].Err = smitten.FromUnknown(ref.Name(), zeroBasedHalfOpen)
	}
	return refs
}

// Lift returns the position of the alignment of r on the sequence of ref,
// ref being the identifier of the reference r is aligned to. The alignment
// must lie within the last range of ref.
func Lift(r *sam.Record, ref smitten.Identifier) (smitten.Identifier, error) {
	if r.Ref == nil || r.Pos < 0 || r.Flags&sam.Unmapped != 0 {
		return smitten.Identifier{}, fmt.Errorf("%s: %w", r.Name, ErrUnmapped)
	}
	chain := make([]smitten.Range, len(ref.Ranges), len(ref.Ranges)+1)
	copy(chain, ref.Ranges)
	chain = append(chain, smitten.Range{
		Start:       r.Start() + 1,
		End:         r.End(),
		Orientation: smitten.OrientationFromStrand(r.Strand()),
	})
	lifted := smitten.Identifier{
		Assembly: ref.Assembly,
		Sequence: ref.Sequence,
		Ranges:   chain,
		Format:   smitten.FormatV2,
	}
	if err := lifted.Validate(); err != nil {
		return smitten.Identifier{}, fmt.Errorf("%s: %w", r.Name, err)
	}
	return smitten.Normalize(lifted)
}
