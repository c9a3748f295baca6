//
// Copyright © 2015 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"fmt"
	"strings"

	"git.sr.ht/~vejnar/Smitten/lib/seqio"
	"git.sr.ht/~vejnar/Smitten/lib/smitten"
)

// OpenMapping reads a two column tabulated file mapping old to new sequence names.
func OpenMapping(mpath string) (map[string]string, error) {
	m := make(map[string]string)

	r, err := seqio.Open(mpath)
	if err != nil {
		return m, err
	}
	defer r.Close()

	sc := seqio.NewScanner(r, false)
	for sc.Scan() {
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			return m, fmt.Errorf("%s:%d: expected 2 tab-separated columns", mpath, sc.Line())
		}
		m[fields[0]] = fields[1]
	}
	if err := sc.Err(); err != nil {
		return m, err
	}
	return m, nil
}

func MapName(name string, m map[string]string) string {
	if nn, ok := m[name]; ok {
		return nn
	}
	return name
}

// MapIdentifier renames the sequence of id. The assembly:sequence prefix is
// looked up first, then the sequence alone.
func MapIdentifier(id smitten.Identifier, m map[string]string) smitten.Identifier {
	if len(m) == 0 {
		return id
	}
	if nn, ok := m[id.Prefix()]; ok && id.Assembly != "" {
		if i := strings.IndexByte(nn, ':'); i >= 0 {
			id.Assembly, id.Sequence = nn[:i], nn[i+1:]
		} else {
			id.Assembly, id.Sequence = "", nn
		}
		return id
	}
	id.Sequence = MapName(id.Sequence, m)
	return id
}
