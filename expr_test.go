/*
Copyright © 2026 the mom6-bathy authors.
This file is part of mom6-bathy.

mom6-bathy is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

mom6-bathy is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with mom6-bathy.  If not, see <http://www.gnu.org/licenses/>.
*/

package mom6bathy

import (
	"errors"
	"math"
	"testing"
)

func TestSetDepthExpr(t *testing.T) {
	b := testBathy(t)
	if err := b.SetDepthExpr("min_depth + 100"); err != nil {
		t.Fatal(err)
	}
	for _, v := range b.Depth().Elements {
		if v != 110 {
			t.Fatalf("depth %g != 110", v)
		}
	}

	if err := b.SetDepthExpr("1000 + lon + lat"); err != nil {
		t.Fatal(err)
	}
	g := b.Grid()
	for j := 0; j < g.NY(); j++ {
		for i := 0; i < g.NX(); i++ {
			want := 1000 + g.TLon().Get(j, i) + g.TLat().Get(j, i)
			if got := b.Depth().Get(j, i); got != want {
				t.Fatalf("depth (%d,%d): %g != %g", j, i, got, want)
			}
		}
	}

	if err := b.SetDepthExpr("100 * (i + 1) * (j + 1)"); err != nil {
		t.Fatal(err)
	}
	if got := b.Depth().Get(2, 3); got != 1200 {
		t.Errorf("index expression at (2,3): %g != 1200", got)
	}

	if err := b.SetDepthExpr("nx * 1000 + ny * 100"); err != nil {
		t.Fatal(err)
	}
	if got := b.Depth().Get(0, 0); got != 4300 {
		t.Errorf("dimension expression: %g != 4300", got)
	}

	if err := b.SetDepthExpr("max(min_depth, 500 * sin(deg2rad(90)))"); err != nil {
		t.Fatal(err)
	}
	if got := b.Depth().Get(0, 0); different(got, 500, testTolerance) {
		t.Errorf("function expression: %g != 500", got)
	}

	if err := b.SetDepthExpr("500 + 3000 * (1 - exp(0 - abs(lat) / 15))"); err != nil {
		t.Fatal(err)
	}
	want := 500 + 3000*(1-math.Exp(-25.0/15))
	if got := b.Depth().Get(0, 0); different(got, want, testTolerance) {
		t.Errorf("basin expression at (0,0): %g != %g", got, want)
	}
}

func TestSetDepthExprErrors(t *testing.T) {
	cases := []struct {
		name, expr string
		want       error
	}{
		{"unknown variable", "depth * 2", ErrInvalidParameter},
		{"not a number", "lat > 0", ErrInvalidParameter},
		{"division by zero", "1 / 0", ErrInvalidParameter},
		{"not a real number", "sqrt(0 - 1)", ErrInvalidParameter},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := testBathy(t)
			if err := b.SetDepthExpr(c.expr); !errors.Is(err, c.want) {
				t.Errorf("got %v, want %v", err, c.want)
			}
			// A failed evaluation must not leave a partial field.
			if b.Depth() != nil {
				t.Error("depth should stay unset after a failed expression")
			}
		})
	}

	b := testBathy(t)
	if err := b.SetDepthExpr("500 +"); err == nil {
		t.Error("malformed expression should not parse")
	}
}
