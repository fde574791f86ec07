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

// WriteSCRIP writes the grid and mask in SCRIP format at path, for use
// by regridding tools. Cells are enumerated row-major; each cell's four
// corners are listed counterclockwise starting from the southwest. If
// title is empty no title attribute is written.
func (b *Bathymetry) WriteSCRIP(path, title string) error {
	if err := b.requireDepth(); err != nil {
		return err
	}
	mask, err := b.Tmask()
	if err != nil {
		return err
	}
	g := b.grid
	ny, nx := g.NY(), g.NX()

	h := cdf.NewHeader(
		[]string{"grid_size", "grid_corners", "grid_rank"},
		[]int{ny * nx, 4, 2},
	)
	h.AddAttribute("", "Conventions", "SCRIP")
	h.AddAttribute("", "date_created", dateCreated())
	if title != "" {
		h.AddAttribute("", "title", title)
	}

	h.AddVariable("grid_dims", []string{"grid_rank"}, []int32{0})

	h.AddVariable("grid_center_lat", []string{"grid_size"}, []float64{0})
	h.AddAttribute("grid_center_lat", "units", g.AxisUnits())

	h.AddVariable("grid_center_lon", []string{"grid_size"}, []float64{0})
	h.AddAttribute("grid_center_lon", "units", g.AxisUnits())

	h.AddVariable("grid_imask", []string{"grid_size"}, []int32{0})
	h.AddAttribute("grid_imask", "units", "unitless")

	h.AddVariable("grid_corner_lat", []string{"grid_size", "grid_corners"}, []float64{0})
	h.AddAttribute("grid_corner_lat", "units", g.AxisUnits())

	h.AddVariable("grid_corner_lon", []string{"grid_size", "grid_corners"}, []float64{0})
	h.AddAttribute("grid_corner_lon", "units", g.AxisUnits())

	h.AddVariable("grid_area", []string{"grid_size"}, []float64{0})

	err = createNCF(path, h, func(f *cdf.File) error {
		if err := writeNCF(f, "grid_dims", []int32{int32(ny), int32(nx)}); err != nil {
			return err
		}
		if err := writeNCF(f, "grid_center_lat", g.TLat().Elements); err != nil {
			return err
		}
		if err := writeNCF(f, "grid_center_lon", g.TLon().Elements); err != nil {
			return err
		}
		if err := writeNCF(f, "grid_imask", toInt32(mask)); err != nil {
			return err
		}
		if err := writeNCF(f, "grid_corner_lat", cornerArray(g.QLat(), ny, nx)); err != nil {
			return err
		}
		if err := writeNCF(f, "grid_corner_lon", cornerArray(g.QLon(), ny, nx)); err != nil {
			return err
		}
		return writeNCF(f, "grid_area", g.TArea().Elements)
	})
	if err != nil {
		return err
	}
	b.Log.WithFields(logrus.Fields{
		"file": path,
	}).Info("mom6bathy: wrote SCRIP grid file")
	return nil
}

// cornerArray flattens the (ny+1, nx+1) corner array q to per-cell
// corner lists shaped (ny*nx, 4), enumerating cells row-major with the
// four corners counterclockwise from the southwest: (j,i), (j,i+1),
// (j+1,i+1), (j+1,i).
func cornerArray(q *sparse.DenseArray, ny, nx int) []float64 {
	out := make([]float64, 0, ny*nx*4)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			out = append(out,
				q.Get(j, i),
				q.Get(j, i+1),
				q.Get(j+1, i+1),
				q.Get(j+1, i))
		}
	}
	return out
}
