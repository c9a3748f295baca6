//
// Copyright (C) 2015-2021 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gopkg.in/fatih/set.v0"
)

// Report counts the identifiers converted by Run.
type Report struct {
	Total           int            `json:"total"`
	Failed          int            `json:"failed"`
	Formats         map[string]int `json:"formats"`
	UniqueSequences int            `json:"unique_sequences"`

	mu        sync.Mutex
	sequences set.Interface
}

func NewReport() *Report {
	return &Report{Formats: make(map[string]int), sequences: set.New(set.ThreadSafe)}
}

// AddSequence records the assembly:sequence prefix of a converted identifier.
func (r *Report) AddSequence(prefix string) {
	r.sequences.Add(prefix)
}

func (r *Report) Add(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Total++
	if res.Err != nil {
		r.Failed++
		return
	}
	r.Formats[res.Format.String()]++
}

// Sequences returns the number of distinct sequences seen so far.
func (r *Report) Sequences() int {
	return r.sequences.Size()
}

func WriteReport(pathReport string, r *Report) error {
	r.mu.Lock()
	r.UniqueSequences = r.sequences.Size()
	report, err := json.MarshalIndent(r, "", "  ")
	r.mu.Unlock()
	if err != nil {
		return err
	}
	if pathReport != "-" {
		f, err := os.Create(pathReport)
		if err != nil {
			return err
		}
		if _, err = f.Write(append(report, '\n')); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	fmt.Println(string(report))
	return nil
}
