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
	"fmt"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"

	"github.com/Fox-Kemper-Group/mom6-bathy/regrid"
)

// ApplyLandFrac reads a fractional land cover field from the NetCDF file
// at path and uses it to mask out land cells: the field is regridded
// onto the cell centers with the given method, and every cell whose
// mapped land fraction is strictly greater than cutoffFrac has its depth
// set to depthFillVal. depthFillVal must be smaller than the
// minimum-depth threshold so that filled cells become land.
//
// The named coordinate variables may be 1-D vectors or 2-D arrays; 1-D
// vectors are broadcast to the land fraction field's shape. The source
// field is treated as zonally periodic when the target grid is. If rg is
// nil a CellRegridder is used; regridder failures are returned to the
// caller unchanged.
func (b *Bathymetry) ApplyLandFrac(path, landfracName, xcoordName, ycoordName string,
	depthFillVal, cutoffFrac float64, method regrid.Method, rg regrid.Regridder) error {
	if err := b.requireDepth(); err != nil {
		return err
	}
	if !strings.HasSuffix(path, ".nc") {
		return fmt.Errorf("mom6bathy: land fraction file %s must be a netcdf file: %w",
			path, ErrInvalidParameter)
	}
	var frac, lon, lat *sparse.DenseArray
	err := openNCF(path, func(f *cdf.File) error {
		var err error
		if frac, err = readNCF(f, landfracName); err != nil {
			return err
		}
		if lon, err = readNCF(f, xcoordName); err != nil {
			return err
		}
		lat, err = readNCF(f, ycoordName)
		return err
	})
	if err != nil {
		return err
	}
	if depthFillVal >= b.minDepth {
		return fmt.Errorf("mom6bathy: dry cell depth %g must be smaller than the minimum depth %g: %w",
			depthFillVal, b.minDepth, ErrInvalidParameter)
	}
	if cutoffFrac < 0 || cutoffFrac > 1 {
		return fmt.Errorf("mom6bathy: cutoff fraction %g outside [0, 1]: %w",
			cutoffFrac, ErrInvalidParameter)
	}
	if !method.Valid() {
		return fmt.Errorf("mom6bathy: %q is not a valid mapping method, choose from %v: %w",
			method, regrid.Methods(), ErrInvalidParameter)
	}

	lon2, lat2, err := broadcastCoords(lon, lat, frac)
	if err != nil {
		return err
	}
	src, err := regrid.NewField(lon2, lat2, frac)
	if err != nil {
		return fmt.Errorf("mom6bathy: land fraction source from %s: %w", path, err)
	}
	if rg == nil {
		rg = new(regrid.CellRegridder)
	}
	mapped, err := rg.Regrid(src, b.grid.TLon(), b.grid.TLat(), method, b.grid.CyclicX())
	if err != nil {
		return err
	}
	filled := 0
	for i, v := range mapped.Elements {
		if v > cutoffFrac {
			b.depth.Elements[i] = depthFillVal
			filled++
		}
	}
	b.Log.WithFields(logrus.Fields{
		"file":   path,
		"method": method,
		"filled": filled,
	}).Info("mom6bathy: applied land fraction mask")
	return nil
}

// broadcastCoords returns 2-D coordinate arrays matching the shape of
// data, expanding 1-D longitude and latitude vectors when necessary.
func broadcastCoords(lon, lat, data *sparse.DenseArray) (*sparse.DenseArray, *sparse.DenseArray, error) {
	if len(data.Shape) != 2 {
		return nil, nil, fmt.Errorf("mom6bathy: land fraction field has shape %v, want 2 dimensions: %w",
			data.Shape, ErrShapeMismatch)
	}
	ny, nx := data.Shape[0], data.Shape[1]
	switch {
	case len(lon.Shape) == 2 && len(lat.Shape) == 2:
		return lon, lat, nil
	case len(lon.Shape) == 1 && len(lat.Shape) == 1:
		if lon.Shape[0] != nx || lat.Shape[0] != ny {
			return nil, nil, fmt.Errorf("mom6bathy: coordinate lengths (%d, %d) don't match land fraction shape [%d %d]: %w",
				lat.Shape[0], lon.Shape[0], ny, nx, ErrShapeMismatch)
		}
		lon2 := sparse.ZerosDense(ny, nx)
		lat2 := sparse.ZerosDense(ny, nx)
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				lon2.Set(lon.Get(i), j, i)
				lat2.Set(lat.Get(j), j, i)
			}
		}
		return lon2, lat2, nil
	}
	return nil, nil, fmt.Errorf("mom6bathy: coordinates must both be 1-D or both 2-D, got shapes %v and %v: %w",
		lon.Shape, lat.Shape, ErrShapeMismatch)
}
