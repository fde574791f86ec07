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
	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// WriteCICEGrid writes a CICE sea-ice model grid file at path. The U
// (velocity) grid coordinates are the cell corners shifted by one so that
// they align with cell-center indexing, all angles are converted to
// radians, and the cell edge widths are converted to centimeters. Grid
// coordinates must be in degrees. The Recorder, if set, is notified of
// the written path.
//
// Both angle and anglet are filled from the same cell-center rotation
// field. On tripolar or dipole grids the two differ, so those grids need
// a separate corner-point angle before this file is usable.
func (b *Bathymetry) WriteCICEGrid(path string) error {
	if err := b.requireDepth(); err != nil {
		return err
	}
	if err := checkDegrees(b.grid); err != nil {
		return err
	}
	mask, err := b.Tmask()
	if err != nil {
		return err
	}
	g := b.grid
	ny, nx := g.NY(), g.NX()

	h := cdf.NewHeader([]string{"nj", "ni"}, []int{ny, nx})
	h.AddAttribute("", "title", "CICE grid file")

	h.AddVariable("ulat", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("ulat", "long_name", "U grid center latitude")
	h.AddAttribute("ulat", "units", "radians")
	h.AddAttribute("ulat", "bounds", "latu_bounds")

	h.AddVariable("ulon", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("ulon", "long_name", "U grid center longitude")
	h.AddAttribute("ulon", "units", "radians")
	h.AddAttribute("ulon", "bounds", "lonu_bounds")

	h.AddVariable("tlat", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("tlat", "long_name", "T grid center latitude")
	h.AddAttribute("tlat", "units", "degrees_north")
	h.AddAttribute("tlat", "bounds", "latt_bounds")

	h.AddVariable("tlon", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("tlon", "long_name", "T grid center longitude")
	h.AddAttribute("tlon", "units", "degrees_east")
	h.AddAttribute("tlon", "bounds", "lont_bounds")

	h.AddVariable("htn", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("htn", "long_name", "T cell width on North side")
	h.AddAttribute("htn", "units", "cm")
	h.AddAttribute("htn", "coordinates", "TLON TLAT")

	h.AddVariable("hte", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("hte", "long_name", "T cell width on East side")
	h.AddAttribute("hte", "units", "cm")
	h.AddAttribute("hte", "coordinates", "TLON TLAT")

	h.AddVariable("angle", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("angle", "long_name", "angle grid makes with latitude line on U grid")
	h.AddAttribute("angle", "units", "radians")
	h.AddAttribute("angle", "coordinates", "ULON ULAT")

	h.AddVariable("anglet", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("anglet", "long_name", "angle grid makes with latitude line on T grid")
	h.AddAttribute("anglet", "units", "radians")
	h.AddAttribute("anglet", "coordinates", "TLON TLAT")

	h.AddVariable("kmt", []string{"nj", "ni"}, []float32{0})
	h.AddAttribute("kmt", "long_name", "mask of T grid cells")
	h.AddAttribute("kmt", "units", "unitless")
	h.AddAttribute("kmt", "coordinates", "TLON TLAT")

	angle := radians(g.Angle()).Elements
	err = createNCF(path, h, func(f *cdf.File) error {
		if err := writeNCF(f, "ulat", cornerRadians(g.QLat(), ny, nx)); err != nil {
			return err
		}
		if err := writeNCF(f, "ulon", cornerRadians(g.QLon(), ny, nx)); err != nil {
			return err
		}
		if err := writeNCF(f, "tlat", radians(g.TLat()).Elements); err != nil {
			return err
		}
		if err := writeNCF(f, "tlon", radians(g.TLon()).Elements); err != nil {
			return err
		}
		if err := writeNCF(f, "htn", scaled(g.DxCv(), 100)); err != nil {
			return err
		}
		if err := writeNCF(f, "hte", scaled(g.DyCu(), 100)); err != nil {
			return err
		}
		if err := writeNCF(f, "angle", angle); err != nil {
			return err
		}
		if err := writeNCF(f, "anglet", angle); err != nil {
			return err
		}
		return writeNCF(f, "kmt", toFloat32(mask))
	})
	if err != nil {
		return err
	}
	b.Log.WithFields(logrus.Fields{
		"file": path,
	}).Info("mom6bathy: wrote CICE grid file")
	if b.Recorder != nil {
		b.Recorder.RecordCICEGrid(absPath(path))
	}
	return nil
}

// cornerRadians extracts the (ny, nx) corner subarray that skips the
// first row and column of the (ny+1, nx+1) corner array q, converted to
// radians. Entry (j, i) is the corner northeast of cell (j, i).
func cornerRadians(q *sparse.DenseArray, ny, nx int) []float64 {
	out := make([]float64, 0, ny*nx)
	for j := 1; j <= ny; j++ {
		for i := 1; i <= nx; i++ {
			out = append(out, deg2rad(q.Get(j, i)))
		}
	}
	return out
}

// scaled returns the elements of a multiplied by factor.
func scaled(a *sparse.DenseArray, factor float64) []float64 {
	out := a.Copy()
	out.Scale(factor)
	return out.Elements
}
