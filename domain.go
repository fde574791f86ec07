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
	"github.com/sirupsen/logrus"
)

// WriteDomain writes a CESM domain file at path, describing cell
// centers, the four vertices of every cell, the active-cell mask, cell
// areas, and the active fraction of each cell. The vertex ordering per
// cell matches the SCRIP corner ordering. Grid coordinates must be in
// degrees.
func (b *Bathymetry) WriteDomain(path string) error {
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

	h := cdf.NewHeader([]string{"nj", "ni", "nv"}, []int{ny, nx, 4})
	h.AddAttribute("", "title", "CESM domain data")
	h.AddAttribute("", "Conventions", "CF-1.0")

	h.AddVariable("yc", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("yc", "long_name", "latitude of grid cell center")
	h.AddAttribute("yc", "units", "degrees_north")
	h.AddAttribute("yc", "bounds", "yv")

	h.AddVariable("xc", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("xc", "long_name", "longitude of grid cell center")
	h.AddAttribute("xc", "units", "degrees_east")
	h.AddAttribute("xc", "bounds", "xv")

	h.AddVariable("yv", []string{"nj", "ni", "nv"}, []float64{0})
	h.AddAttribute("yv", "long_name", "latitude of grid cell vertices")
	h.AddAttribute("yv", "units", "degrees_north")

	h.AddVariable("xv", []string{"nj", "ni", "nv"}, []float64{0})
	h.AddAttribute("xv", "long_name", "longitude of grid cell vertices")
	h.AddAttribute("xv", "units", "degrees_east")

	h.AddVariable("mask", []string{"nj", "ni"}, []int32{0})
	h.AddAttribute("mask", "long_name", "domain mask")
	h.AddAttribute("mask", "units", "unitless")
	h.AddAttribute("mask", "coordinates", "xc yc")
	h.AddAttribute("mask", "comment", "0 value indicates cell is not active")

	h.AddVariable("area", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("area", "long_name", "area of grid cell in radians squared")
	h.AddAttribute("area", "units", "radian2")
	h.AddAttribute("area", "coordinates", "xc yc")

	h.AddVariable("frac", []string{"nj", "ni"}, []float64{0})
	h.AddAttribute("frac", "long_name", "fraction of grid cell that is active")
	h.AddAttribute("frac", "units", "unitless")
	h.AddAttribute("frac", "coordinates", "xc yc")
	h.AddAttribute("frac", "filter1", "error if frac> 1.0+eps or frac < 0.0-eps; eps = 0.1000000E-11")
	h.AddAttribute("frac", "filter2", "limit frac to [fminval,fmaxval]; fminval= 0.1000000E-02 fmaxval=  1.000000")

	err = createNCF(path, h, func(f *cdf.File) error {
		if err := writeNCF(f, "yc", g.TLat().Elements); err != nil {
			return err
		}
		if err := writeNCF(f, "xc", g.TLon().Elements); err != nil {
			return err
		}
		if err := writeNCF(f, "yv", cornerArray(g.QLat(), ny, nx)); err != nil {
			return err
		}
		if err := writeNCF(f, "xv", cornerArray(g.QLon(), ny, nx)); err != nil {
			return err
		}
		if err := writeNCF(f, "mask", toInt32(mask)); err != nil {
			return err
		}
		if err := writeNCF(f, "area", g.TArea().Elements); err != nil {
			return err
		}
		return writeNCF(f, "frac", mask.Elements)
	})
	if err != nil {
		return err
	}
	b.Log.WithFields(logrus.Fields{
		"file": path,
	}).Info("mom6bathy: wrote domain file")
	return nil
}
