// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"image/color"
	"sort"
	"strings"
)

// A Mapping renames raw names to display names and orders the display
// names.
type Mapping struct {
	// Names maps raw names to display names. Names without an
	// entry display as themselves.
	Names map[string]string

	// Order lists display names in presentation order. Names not
	// in Order sort after all listed names, alphabetically.
	Order []string
}

// Label returns the display name of raw.
func (m Mapping) Label(raw string) string {
	if l, ok := m.Names[raw]; ok {
		return l
	}
	return raw
}

// Compare orders two display names.
func (m Mapping) Compare(a, b string) int {
	ia, ib := m.rank(a), m.rank(b)
	switch {
	case ia < ib:
		return -1
	case ia > ib:
		return 1
	}
	return strings.Compare(a, b)
}

func (m Mapping) rank(label string) int {
	for i, l := range m.Order {
		if l == label {
			return i
		}
	}
	return len(m.Order)
}

// Sort sorts display names in presentation order.
func (m Mapping) Sort(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return m.Compare(labels[i], labels[j]) < 0
	})
}

// Labels holds the mappings for every kind of name that appears in
// charts and tables.
type Labels struct {
	Triplestores   Mapping
	Datasets       Mapping
	HypertrieTypes Mapping

	// Highlight gives the colors of highlighted triplestores, by
	// display name.
	Highlight map[string]color.Color

	// TypeColors gives the colors of hypertrie types, by display
	// name.
	TypeColors map[string]color.Color
}

func rgb(r, g, b uint8) color.Color {
	return color.NRGBA{r, g, b, 0xff}
}

// Grey and LightGrey are the colors of triplestores that are not
// highlighted.
var (
	Grey      color.Color = rgb(0xbe, 0xbe, 0xbe)
	LightGrey color.Color = rgb(0xd3, 0xd3, 0xd3)
)

// DefaultLabels returns the labels of the Tentris evaluation.
func DefaultLabels() *Labels {
	return &Labels{
		Triplestores: Mapping{
			Names: map[string]string{
				"blazegraph":                 "B",
				"fuseki":                     "F",
				"fuseki-ltj":                 "Fl",
				"graphdb":                    "G",
				"gstore":                     "S",
				"virtuoso":                   "V",
				"tentris-1.0.7":              "Tb",
				"tentris-1.0.7_lsb_unused_0": "Tb",
				"tentris-1.1.0_lsb_unused_0": "Th",
				"tentris-1.1.0-lsb_unused_0": "Th",
				"tentris-1.1.0_lsb_unused_1": "Ti",
				"tentris-1.1.0-lsb_unused_1": "Ti",
			},
			Order: []string{"Tb", "Th", "Ti", "B", "F", "Fl", "G", "S", "V"},
		},
		Datasets: Mapping{
			Names: map[string]string{
				"swdf":                "SWDF",
				"dbpedia2015":         "DBpedia",
				"watdiv10000":         "WatDiv",
				"wikidata-2020-11-11": "Wikidata",
				"wikidata":            "Wikidata",
			},
			Order: []string{"SWDF", "DBpedia", "WatDiv", "Wikidata"},
		},
		HypertrieTypes: Mapping{
			Names: map[string]string{
				"baseline":                "b",
				"compression":             "s",
				"hash":                    "h",
				"hash+compression":        "hs",
				"hash+compression+inline": "hsi",
			},
			Order: []string{"b", "s", "h", "hs", "hsi"},
		},
		Highlight: map[string]color.Color{
			"Tb": rgb(0x8d, 0xa0, 0xcb),
			"Th": rgb(0x66, 0xc2, 0xa5),
			"Ti": rgb(0xfc, 0x8d, 0x62),
		},
		TypeColors: map[string]color.Color{
			"b":   rgb(0x8d, 0xa0, 0xcb),
			"s":   rgb(0xef, 0xaa, 0xc4),
			"h":   rgb(0x66, 0xc2, 0xa5),
			"hs":  rgb(0xed, 0xc7, 0x07),
			"hsi": rgb(0xfc, 0x8d, 0x62),
		},
	}
}

// Color returns the fill color of the triplestore with display name
// label. Triplestores that are not highlighted get def.
func (l *Labels) Color(label string, def color.Color) color.Color {
	if c, ok := l.Highlight[label]; ok {
		return c
	}
	return def
}

// TypeColor returns the fill color of the hypertrie type with display
// name label, or def.
func (l *Labels) TypeColor(label string, def color.Color) color.Color {
	if c, ok := l.TypeColors[label]; ok {
		return c
	}
	return def
}
