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
	"math"
	"strings"

	"github.com/ctessum/sparse"
)

// Grid is an interface for read-only providers of structured horizontal
// ocean grid geometry. Scalar (tracer) quantities live at cell centers on
// the (ny, nx) T grid; cell corners form the (ny+1, nx+1) Q grid.
type Grid interface {
	// NX and NY return the number of cells in the zonal and
	// meridional directions.
	NX() int
	NY() int

	// TLon and TLat return the cell-center longitudes and latitudes,
	// shaped (ny, nx), in the units reported by AxisUnits.
	TLon() *sparse.DenseArray
	TLat() *sparse.DenseArray

	// QLon and QLat return the cell-corner longitudes and latitudes,
	// shaped (ny+1, nx+1).
	QLon() *sparse.DenseArray
	QLat() *sparse.DenseArray

	// TArea returns the cell areas, shaped (ny, nx), in square meters.
	TArea() *sparse.DenseArray

	// DxCv returns the widths of the northern cell edges and DyCu the
	// heights of the eastern cell edges, both shaped (ny, nx), in
	// meters.
	DxCv() *sparse.DenseArray
	DyCu() *sparse.DenseArray

	// Angle returns the rotation of the grid's x axis relative to true
	// east, shaped (ny, nx), in the units reported by AxisUnits.
	Angle() *sparse.DenseArray

	// CyclicX reports whether the domain is reentrant in the zonal
	// direction, CyclicY in the meridional direction, and TripolarN
	// whether the northern boundary is a tripolar fold.
	CyclicX() bool
	CyclicY() bool
	TripolarN() bool

	// AxisUnits returns the units of the coordinate arrays, normally
	// "degrees".
	AxisUnits() string

	// LenLon and LenLat return the angular extents of the domain in
	// the zonal and meridional directions.
	LenLon() float64
	LenLat() float64
}

// ValidateGrid checks that the coordinate arrays of g satisfy the
// structured-grid shape relationships: center arrays are (ny, nx) and
// corner arrays are exactly one larger in each dimension.
func ValidateGrid(g Grid) error {
	nx, ny := g.NX(), g.NY()
	if nx < 1 || ny < 1 {
		return fmt.Errorf("mom6bathy: grid size %d x %d: %w", ny, nx, ErrInvalidParameter)
	}
	for _, check := range []struct {
		name   string
		data   *sparse.DenseArray
		ny, nx int
	}{
		{"tlon", g.TLon(), ny, nx},
		{"tlat", g.TLat(), ny, nx},
		{"tarea", g.TArea(), ny, nx},
		{"dxCv", g.DxCv(), ny, nx},
		{"dyCu", g.DyCu(), ny, nx},
		{"angle", g.Angle(), ny, nx},
		{"qlon", g.QLon(), ny + 1, nx + 1},
		{"qlat", g.QLat(), ny + 1, nx + 1},
	} {
		if check.data == nil {
			return fmt.Errorf("mom6bathy: grid variable %s is nil: %w", check.name, ErrMissingField)
		}
		s := check.data.Shape
		if len(s) != 2 || s[0] != check.ny || s[1] != check.nx {
			return fmt.Errorf("mom6bathy: grid variable %s has shape %v, want [%d %d]: %w",
				check.name, s, check.ny, check.nx, ErrShapeMismatch)
		}
	}
	return nil
}

// checkDegrees returns an error unless g's coordinates are angular, which
// the CICE grid and domain exporters require.
func checkDegrees(g Grid) error {
	if u := g.AxisUnits(); !strings.Contains(u, "degrees") {
		return fmt.Errorf("mom6bathy: coordinate units %q where degrees are required: %w",
			u, ErrInvalidParameter)
	}
	return nil
}

// deg2rad converts an angle from degrees to radians.
func deg2rad(d float64) float64 { return d * math.Pi / 180 }

// radians returns a copy of a with every element converted from degrees
// to radians.
func radians(a *sparse.DenseArray) *sparse.DenseArray {
	out := a.Copy()
	for i, v := range out.Elements {
		out.Elements[i] = deg2rad(v)
	}
	return out
}
