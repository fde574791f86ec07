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
	"os"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// radiansGrid pretends its coordinates are not in degrees.
type radiansGrid struct{ *UniformGrid }

func (radiansGrid) AxisUnits() string { return "radians" }

// rotatedGrid overrides the rotation angle of an underlying grid.
type rotatedGrid struct {
	*UniformGrid
	angle *sparse.DenseArray
}

func (g rotatedGrid) Angle() *sparse.DenseArray { return g.angle }

func TestWriteCICEGrid(t *testing.T) {
	const path = "testCICEGrid.nc"
	g := testGrid(t)
	angle := sparse.ZerosDense(3, 4)
	for i := range angle.Elements {
		angle.Elements[i] = float64(i)
	}
	b, err := NewBathymetry(rotatedGrid{g, angle}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetFlat(100); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteCICEGrid(path); err != nil {
		t.Fatal(err)
	}
	defer os.Remove(path)

	err = openNCF(path, func(f *cdf.File) error {
		if got := f.Header.GetAttribute("", "title").(string); got != "CICE grid file" {
			t.Errorf("title: %q", got)
		}
		if got := f.Header.GetAttribute("ulat", "units").(string); got != "radians" {
			t.Errorf("ulat units: %q", got)
		}
		if got := f.Header.GetAttribute("htn", "units").(string); got != "cm" {
			t.Errorf("htn units: %q", got)
		}

		// The U grid is the corner array without its first row and
		// column, so that U(j,i) is the corner northeast of T(j,i).
		ulat, err := readNCF(f, "ulat")
		if err != nil {
			return err
		}
		ulon, err := readNCF(f, "ulon")
		if err != nil {
			return err
		}
		for j := 0; j < 3; j++ {
			for i := 0; i < 4; i++ {
				if want := deg2rad(g.QLat().Get(j+1, i+1)); different(ulat.Get(j, i), want, testTolerance) {
					t.Fatalf("ulat (%d,%d): %g != %g", j, i, ulat.Get(j, i), want)
				}
				if want := deg2rad(g.QLon().Get(j+1, i+1)); different(ulon.Get(j, i), want, testTolerance) {
					t.Fatalf("ulon (%d,%d): %g != %g", j, i, ulon.Get(j, i), want)
				}
			}
		}

		tlat, err := readNCF(f, "tlat")
		if err != nil {
			return err
		}
		for i, v := range tlat.Elements {
			if want := deg2rad(g.TLat().Elements[i]); different(v, want, testTolerance) {
				t.Fatalf("tlat element %d: %g != %g", i, v, want)
			}
		}

		// Edge widths come out in centimeters.
		htn, err := readNCF(f, "htn")
		if err != nil {
			return err
		}
		hte, err := readNCF(f, "hte")
		if err != nil {
			return err
		}
		for i := range htn.Elements {
			if want := g.DxCv().Elements[i] * 100; different(htn.Elements[i], want, testTolerance) {
				t.Fatalf("htn element %d: %g != %g", i, htn.Elements[i], want)
			}
			if want := g.DyCu().Elements[i] * 100; different(hte.Elements[i], want, testTolerance) {
				t.Fatalf("hte element %d: %g != %g", i, hte.Elements[i], want)
			}
		}

		// Both angle variables carry the same cell-center rotation
		// field in radians.
		av, err := readNCF(f, "angle")
		if err != nil {
			return err
		}
		at, err := readNCF(f, "anglet")
		if err != nil {
			return err
		}
		for i := range av.Elements {
			if av.Elements[i] != at.Elements[i] {
				t.Fatalf("angle element %d: %g != anglet %g", i, av.Elements[i], at.Elements[i])
			}
			if want := deg2rad(angle.Elements[i]); different(av.Elements[i], want, testTolerance) {
				t.Fatalf("angle element %d: %g != %g", i, av.Elements[i], want)
			}
		}

		kmt, err := readNCF(f, "kmt")
		if err != nil {
			return err
		}
		for i, v := range kmt.Elements {
			if v != 1 {
				t.Fatalf("kmt element %d: %g != 1", i, v)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestWriteCICEGridRequiresDegrees(t *testing.T) {
	g := testGrid(t)
	b, err := NewBathymetry(radiansGrid{g}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetFlat(100); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteCICEGrid("shouldnotexist.nc"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("non-degree units: %v", err)
	}

	empty := testBathy(t)
	if err := empty.WriteCICEGrid("shouldnotexist.nc"); !errors.Is(err, ErrMissingField) {
		t.Errorf("missing depth: %v", err)
	}
}
