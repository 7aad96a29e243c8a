// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"math"
	"testing"
)

func TestHuman(t *testing.T) {
	for _, test := range []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{0.5, "0.5"},
		{1000, "1K"},
		{1234, "1.23K"},
		{999999, "1M"},
		{20000000, "20M"},
		{-1500, "-1.5K"},
		{5e15, "5000T"},
		{math.NaN(), "NaN"},
	} {
		if got := Human(test.v); got != test.want {
			t.Errorf("Human(%v) = %s, want %s", test.v, got, test.want)
		}
	}
}

func TestPowerOfTen(t *testing.T) {
	check := func(exp int, one bool, want string) {
		t.Helper()
		if got := PowerOfTen(exp, one); got != want {
			t.Errorf("PowerOfTen(%d, %v) = %s, want %s", exp, one, got, want)
		}
	}
	check(0, true, "1")
	check(0, false, "10⁰")
	check(-4, false, "10⁻⁴")
	check(12, true, "10¹²")
}

func TestIndexFormats(t *testing.T) {
	if got := BytesPerStatement(36.6); got != "37" {
		t.Errorf("got %s", got)
	}
	if got := BytesPerStatement(0.5); got != "0.500" {
		t.Errorf("got %s", got)
	}
	if got := ThousandsPerSecond(12.4); got != "12" {
		t.Errorf("got %s", got)
	}
	if got := ThousandsPerSecond(1.234); got != "1.23" {
		t.Errorf("got %s", got)
	}
}
