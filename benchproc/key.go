// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"fmt"
	"strings"

	"github.com/dice-group/triplebench/benchfmt"
)

// A Key identifies the runs of one client of one triplestore on one
// query. Runs that differ only in their benchmark mix share a Key.
type Key struct {
	Dataset     string
	QueryID     int
	Triplestore string
	ClientID    string
}

// KeyOf returns the Key of r.
func KeyOf(r *benchfmt.Run) Key {
	return Key{r.Dataset, r.QueryID, r.Triplestore, r.ClientID}
}

func (k Key) String() string {
	return fmt.Sprintf("dataset:%s queryID:%d triplestore:%s clientID:%s", k.Dataset, k.QueryID, k.Triplestore, k.ClientID)
}

// Compare returns -1, 0, or 1 depending on whether k sorts before,
// equal to, or after o. Keys are ordered by dataset, query ID,
// triplestore, and then client. Client IDs that are both numbers are
// compared numerically.
func (k Key) Compare(o Key) int {
	if k.Dataset != o.Dataset {
		return strings.Compare(k.Dataset, o.Dataset)
	}
	if k.QueryID != o.QueryID {
		if k.QueryID < o.QueryID {
			return -1
		}
		return 1
	}
	if k.Triplestore != o.Triplestore {
		return strings.Compare(k.Triplestore, o.Triplestore)
	}
	return compareIDs(k.ClientID, o.ClientID)
}

// Less reports whether k sorts before o.
func (k Key) Less(o Key) bool {
	return k.Compare(o) < 0
}
