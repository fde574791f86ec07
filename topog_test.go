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

func TestWriteTopog(t *testing.T) {
	const path = "testTopog.nc"
	b := testBathy(t)
	depth := sparse.ZerosDense(3, 4)
	for i := range depth.Elements {
		depth.Elements[i] = 1000 + 10*float64(i)
	}
	depth.Elements[depth.Index1d(0, 0)] = 0 // land; DenseArray.Set silently drops zeros
	if err := b.SetDepth(depth); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteTopog(path, "test topography"); err != nil {
		t.Fatal(err)
	}
	defer os.Remove(path)

	err := openNCF(path, func(f *cdf.File) error {
		if got := f.Header.GetAttribute("", "title").(string); got != "test topography" {
			t.Errorf("title: %q", got)
		}
		if f.Header.GetAttribute("", "date_created") == nil {
			t.Error("missing date_created attribute")
		}
		if dims := f.Header.Lengths("depth"); len(dims) != 2 || dims[0] != 3 || dims[1] != 4 {
			t.Errorf("depth dimensions: %v", dims)
		}
		if got := f.Header.GetAttribute("depth", "units").(string); got != "m" {
			t.Errorf("depth units: %q", got)
		}
		if got := f.Header.GetAttribute("y", "units").(string); got != "degrees" {
			t.Errorf("y units: %q", got)
		}
		for _, v := range []struct {
			name string
			want *sparse.DenseArray
		}{
			{"y", b.Grid().TLat()},
			{"x", b.Grid().TLon()},
			{"depth", depth},
		} {
			got, err := readNCF(f, v.name)
			if err != nil {
				return err
			}
			for i := range got.Elements {
				if got.Elements[i] != v.want.Elements[i] {
					t.Fatalf("%s element %d: %g != %g", v.name, i, got.Elements[i], v.want.Elements[i])
				}
			}
		}
		mask, err := readNCF(f, "mask")
		if err != nil {
			return err
		}
		if mask.Get(0, 0) != 0 {
			t.Error("land cell should have mask 0")
		}
		if mask.Get(2, 3) != 1 {
			t.Error("ocean cell should have mask 1")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestTopogRoundTrip(t *testing.T) {
	const path = "testTopogRoundTrip.nc"
	b := testBathy(t)
	if err := b.SetFlat(2000); err != nil {
		t.Fatal(err)
	}
	b.Depth().Set(5, 1, 1)
	if err := b.WriteTopog(path, ""); err != nil {
		t.Fatal(err)
	}
	defer os.Remove(path)

	err := openNCF(path, func(f *cdf.File) error {
		if got := f.Header.GetAttribute("", "title").(string); got != "MOM6 topography file" {
			t.Errorf("default title: %q", got)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	depth, err := ReadTopogDepth(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := range depth.Elements {
		if depth.Elements[i] != b.Depth().Elements[i] {
			t.Fatalf("element %d: %g != %g", i, depth.Elements[i], b.Depth().Elements[i])
		}
	}

	b2 := testBathy(t)
	if err := b2.SetDepthFromTopog(path); err != nil {
		t.Fatal(err)
	}
	if got := b2.Depth().Get(1, 1); got != 5 {
		t.Errorf("ingested depth (1,1): %g != 5", got)
	}

	// A reader on a different grid shape must refuse the file.
	g, err := NewUniformGrid(5, 3, 0, 360, -30, 30, false)
	if err != nil {
		t.Fatal(err)
	}
	b3, err := NewBathymetry(g, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := b3.SetDepthFromTopog(path); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("mismatched grid: %v", err)
	}
}

func TestReadTopogDepthMissing(t *testing.T) {
	const path = "testNoDepth.nc"
	h := cdf.NewHeader([]string{"n"}, []int{2})
	h.AddVariable("elevation", []string{"n"}, []float64{0})
	err := createNCF(path, h, func(f *cdf.File) error {
		return writeNCF(f, "elevation", []float64{1, 2})
	})
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(path)

	if _, err := ReadTopogDepth(path); !errors.Is(err, ErrMissingField) {
		t.Errorf("file without a depth variable: %v", err)
	}
	if _, err := ReadTopogDepth("testDoesNotExist.nc"); err == nil {
		t.Error("missing file should be an error")
	}
}
