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

	"github.com/Fox-Kemper-Group/mom6-bathy/regrid"
)

// writeLandFracFile writes a land cover file whose cell centers coincide
// with those of testGrid, with 1-D coordinate vectors. The western half
// of the domain is all land.
func writeLandFracFile(t *testing.T, path string) {
	h := cdf.NewHeader([]string{"y", "x"}, []int{3, 4})
	h.AddVariable("x", []string{"x"}, []float64{0})
	h.AddVariable("y", []string{"y"}, []float64{0})
	h.AddVariable("landfrac", []string{"y", "x"}, []float64{0})
	err := createNCF(path, h, func(f *cdf.File) error {
		if err := writeNCF(f, "x", []float64{45, 135, 225, 315}); err != nil {
			return err
		}
		if err := writeNCF(f, "y", []float64{-25, -15, -5}); err != nil {
			return err
		}
		frac := make([]float64, 12)
		for j := 0; j < 3; j++ {
			frac[j*4] = 1
			frac[j*4+1] = 1
		}
		return writeNCF(f, "landfrac", frac)
	})
	if err != nil {
		t.Fatal(err)
	}
}

// captureRegridder returns a canned mapped field and records the
// arguments it was called with.
type captureRegridder struct {
	mapped   *sparse.DenseArray
	src      *regrid.Field
	method   regrid.Method
	periodic bool
}

func (c *captureRegridder) Regrid(src *regrid.Field, dstLon, dstLat *sparse.DenseArray,
	method regrid.Method, periodic bool) (*sparse.DenseArray, error) {
	c.src = src
	c.method = method
	c.periodic = periodic
	return c.mapped, nil
}

func TestApplyLandFracCutoffIsStrict(t *testing.T) {
	const path = "testLandFracStrict.nc"
	writeLandFracFile(t, path)
	defer os.Remove(path)

	b := testBathy(t)
	if err := b.SetFlat(2000); err != nil {
		t.Fatal(err)
	}
	mapped := sparse.ZerosDense(3, 4)
	mapped.Set(0.5, 0, 0)  // exactly the cutoff: stays ocean
	mapped.Set(0.51, 0, 1) // just over: filled
	rg := &captureRegridder{mapped: mapped}
	if err := b.ApplyLandFrac(path, "landfrac", "x", "y", 0, 0.5, regrid.NearestS2D, rg); err != nil {
		t.Fatal(err)
	}
	for j := 0; j < 3; j++ {
		for i := 0; i < 4; i++ {
			want := 2000.0
			if j == 0 && i == 1 {
				want = 0
			}
			if got := b.Depth().Get(j, i); got != want {
				t.Errorf("depth (%d,%d): %g != %g", j, i, got, want)
			}
		}
	}

	if rg.method != regrid.NearestS2D {
		t.Errorf("method: %v", rg.method)
	}
	if rg.periodic {
		t.Error("bounded target grid should not be treated as periodic")
	}
	// The 1-D coordinate vectors arrive at the regridder broadcast to
	// the land fraction field's shape.
	if len(rg.src.Lon.Shape) != 2 || rg.src.Lon.Shape[0] != 3 || rg.src.Lon.Shape[1] != 4 {
		t.Fatalf("source longitude shape: %v", rg.src.Lon.Shape)
	}
	if rg.src.Lon.Get(1, 2) != 225 || rg.src.Lat.Get(1, 2) != -15 {
		t.Errorf("source coordinates at (1,2): (%g, %g)", rg.src.Lon.Get(1, 2), rg.src.Lat.Get(1, 2))
	}
	if rg.src.Data.Get(0, 0) != 1 || rg.src.Data.Get(0, 3) != 0 {
		t.Errorf("source fractions: west %g, east %g", rg.src.Data.Get(0, 0), rg.src.Data.Get(0, 3))
	}
}

func TestApplyLandFracNearest(t *testing.T) {
	const path = "testLandFracNearest.nc"
	writeLandFracFile(t, path)
	defer os.Remove(path)

	b := testBathy(t)
	if err := b.SetFlat(2000); err != nil {
		t.Fatal(err)
	}
	// Source centers coincide with the target centers, so the nearest
	// source mapping reproduces the fractions exactly.
	if err := b.ApplyLandFrac(path, "landfrac", "x", "y", 0, 0.5, regrid.NearestS2D, nil); err != nil {
		t.Fatal(err)
	}
	mask, err := b.Tmask()
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < 3; j++ {
		for i := 0; i < 4; i++ {
			wantDepth, wantMask := 2000.0, 1.0
			if i < 2 {
				wantDepth, wantMask = 0, 0
			}
			if got := b.Depth().Get(j, i); got != wantDepth {
				t.Errorf("depth (%d,%d): %g != %g", j, i, got, wantDepth)
			}
			if got := mask.Get(j, i); got != wantMask {
				t.Errorf("mask (%d,%d): %g != %g", j, i, got, wantMask)
			}
		}
	}
}

func TestApplyLandFracParameters(t *testing.T) {
	const path = "testLandFracParams.nc"
	writeLandFracFile(t, path)
	defer os.Remove(path)

	newBathy := func() *Bathymetry {
		b := testBathy(t)
		if err := b.SetFlat(2000); err != nil {
			t.Fatal(err)
		}
		return b
	}
	rg := &captureRegridder{mapped: sparse.ZerosDense(3, 4)}

	cases := []struct {
		name string
		run  func() error
		want error
	}{
		{"not a netcdf file", func() error {
			return newBathy().ApplyLandFrac("landfrac.txt", "landfrac", "x", "y", 0, 0.5, regrid.NearestS2D, rg)
		}, ErrInvalidParameter},
		{"missing variable", func() error {
			return newBathy().ApplyLandFrac(path, "cover", "x", "y", 0, 0.5, regrid.NearestS2D, rg)
		}, ErrMissingField},
		{"fill value not below minimum depth", func() error {
			return newBathy().ApplyLandFrac(path, "landfrac", "x", "y", 10, 0.5, regrid.NearestS2D, rg)
		}, ErrInvalidParameter},
		{"cutoff below range", func() error {
			return newBathy().ApplyLandFrac(path, "landfrac", "x", "y", 0, -0.1, regrid.NearestS2D, rg)
		}, ErrInvalidParameter},
		{"cutoff above range", func() error {
			return newBathy().ApplyLandFrac(path, "landfrac", "x", "y", 0, 1.1, regrid.NearestS2D, rg)
		}, ErrInvalidParameter},
		{"unknown method", func() error {
			return newBathy().ApplyLandFrac(path, "landfrac", "x", "y", 0, 0.5, regrid.Method("quadratic"), rg)
		}, ErrInvalidParameter},
		{"depth unset", func() error {
			return testBathy(t).ApplyLandFrac(path, "landfrac", "x", "y", 0, 0.5, regrid.NearestS2D, rg)
		}, ErrMissingField},
		{"coordinate length mismatch", func() error {
			return newBathy().ApplyLandFrac(path, "landfrac", "y", "y", 0, 0.5, regrid.NearestS2D, rg)
		}, ErrShapeMismatch},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.run(); !errors.Is(err, c.want) {
				t.Errorf("got %v, want %v", err, c.want)
			}
		})
	}
}
