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

// WriteTopog writes the bathymetry to a MOM6 topography file at path.
// The written file is read by MOM6 at startup as its TOPO_FILE, and can
// be read back with SetDepthFromTopog. If title is empty a generic one
// is used. The Recorder, if set, is notified of the written path.
func (b *Bathymetry) WriteTopog(path, title string) error {
	if err := b.requireDepth(); err != nil {
		return err
	}
	mask, err := b.Tmask()
	if err != nil {
		return err
	}
	if title == "" {
		title = "MOM6 topography file"
	}
	g := b.grid

	h := cdf.NewHeader([]string{"ny", "nx"}, []int{g.NY(), g.NX()})
	h.AddAttribute("", "date_created", dateCreated())
	h.AddAttribute("", "title", title)

	h.AddVariable("y", []string{"ny", "nx"}, []float64{0})
	h.AddAttribute("y", "long_name", "array of t-grid latitudes")
	h.AddAttribute("y", "units", g.AxisUnits())

	h.AddVariable("x", []string{"ny", "nx"}, []float64{0})
	h.AddAttribute("x", "long_name", "array of t-grid longitutes")
	h.AddAttribute("x", "units", g.AxisUnits())

	h.AddVariable("mask", []string{"ny", "nx"}, []int32{0})
	h.AddAttribute("mask", "long_name", "landsea mask at t points: 1 ocean, 0 land")
	h.AddAttribute("mask", "units", "nondim")

	h.AddVariable("depth", []string{"ny", "nx"}, []float64{0})
	h.AddAttribute("depth", "long_name", "t-grid cell depth")
	h.AddAttribute("depth", "units", "m")

	err = createNCF(path, h, func(f *cdf.File) error {
		if err := writeNCF(f, "y", g.TLat().Elements); err != nil {
			return err
		}
		if err := writeNCF(f, "x", g.TLon().Elements); err != nil {
			return err
		}
		if err := writeNCF(f, "mask", toInt32(mask)); err != nil {
			return err
		}
		return writeNCF(f, "depth", b.depth.Elements)
	})
	if err != nil {
		return err
	}
	b.Log.WithFields(logrus.Fields{
		"file": path,
	}).Info("mom6bathy: wrote topography file")
	if b.Recorder != nil {
		b.Recorder.RecordTopog(absPath(path))
	}
	return nil
}

// ReadTopogDepth reads the depth variable from a MOM6 topography file.
func ReadTopogDepth(path string) (*sparse.DenseArray, error) {
	var depth *sparse.DenseArray
	err := openNCF(path, func(f *cdf.File) error {
		var err error
		depth, err = readNCF(f, "depth")
		return err
	})
	if err != nil {
		return nil, err
	}
	return depth, nil
}
