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

	"github.com/ctessum/sparse"
)

// EarthRadius is the nominal radius of the Earth [m] used for spherical
// cell geometry and for the default decay scaling of the idealized depth
// generators.
const EarthRadius = 6378.0e3

// UniformGrid is a Grid with uniform spacing in longitude and latitude on
// a sphere of radius EarthRadius. Cell corners are laid out on a regular
// (ny+1, nx+1) graticule starting at (lon0, lat0); centers, areas and
// edge lengths follow from spherical geometry. The grid rotation angle is
// zero everywhere.
type UniformGrid struct {
	nx, ny     int
	lenLon     float64
	lenLat     float64
	cyclicX    bool
	tlon, tlat *sparse.DenseArray
	qlon, qlat *sparse.DenseArray
	tarea      *sparse.DenseArray
	dxCv, dyCu *sparse.DenseArray
	angle      *sparse.DenseArray
}

// NewUniformGrid creates a uniformly spaced spherical grid with nx by ny
// cells covering lenLon degrees of longitude east from lon0 and lenLat
// degrees of latitude north from lat0. If cyclicX is true the domain is
// zonally reentrant, which changes the mesh connectivity produced by
// WriteESMFMesh but not the coordinate arrays themselves.
func NewUniformGrid(nx, ny int, lon0, lenLon, lat0, lenLat float64, cyclicX bool) (*UniformGrid, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("mom6bathy: uniform grid size %d x %d: %w", ny, nx, ErrInvalidParameter)
	}
	if lenLon <= 0 || lenLon > 360 || lenLat <= 0 {
		return nil, fmt.Errorf("mom6bathy: uniform grid extent %g x %g degrees: %w",
			lenLon, lenLat, ErrInvalidParameter)
	}
	if lat0 < -90 || lat0+lenLat > 90 {
		return nil, fmt.Errorf("mom6bathy: uniform grid latitude range [%g, %g]: %w",
			lat0, lat0+lenLat, ErrInvalidParameter)
	}
	if cyclicX && lenLon != 360 {
		return nil, fmt.Errorf("mom6bathy: zonally reentrant grid must span 360 degrees, not %g: %w",
			lenLon, ErrInvalidParameter)
	}
	g := &UniformGrid{
		nx:      nx,
		ny:      ny,
		lenLon:  lenLon,
		lenLat:  lenLat,
		cyclicX: cyclicX,
		tlon:    sparse.ZerosDense(ny, nx),
		tlat:    sparse.ZerosDense(ny, nx),
		qlon:    sparse.ZerosDense(ny+1, nx+1),
		qlat:    sparse.ZerosDense(ny+1, nx+1),
		tarea:   sparse.ZerosDense(ny, nx),
		dxCv:    sparse.ZerosDense(ny, nx),
		dyCu:    sparse.ZerosDense(ny, nx),
		angle:   sparse.ZerosDense(ny, nx),
	}
	dLon := lenLon / float64(nx)
	dLat := lenLat / float64(ny)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			g.qlon.Set(lon0+float64(i)*dLon, j, i)
			g.qlat.Set(lat0+float64(j)*dLat, j, i)
		}
	}
	dyMeters := EarthRadius * deg2rad(dLat)
	for j := 0; j < ny; j++ {
		latS := lat0 + float64(j)*dLat
		latN := latS + dLat
		// Exact spherical area of a lon-lat rectangle:
		// R² Δλ (sin φN − sin φS).
		rowArea := EarthRadius * EarthRadius * deg2rad(dLon) *
			(math.Sin(deg2rad(latN)) - math.Sin(deg2rad(latS)))
		for i := 0; i < nx; i++ {
			g.tlon.Set(lon0+(float64(i)+0.5)*dLon, j, i)
			g.tlat.Set(latS+0.5*dLat, j, i)
			g.tarea.Set(rowArea, j, i)
			g.dxCv.Set(EarthRadius*math.Cos(deg2rad(latN))*deg2rad(dLon), j, i)
			g.dyCu.Set(dyMeters, j, i)
		}
	}
	return g, nil
}

func (g *UniformGrid) NX() int { return g.nx }
func (g *UniformGrid) NY() int { return g.ny }

func (g *UniformGrid) TLon() *sparse.DenseArray { return g.tlon }
func (g *UniformGrid) TLat() *sparse.DenseArray { return g.tlat }
func (g *UniformGrid) QLon() *sparse.DenseArray { return g.qlon }
func (g *UniformGrid) QLat() *sparse.DenseArray { return g.qlat }

func (g *UniformGrid) TArea() *sparse.DenseArray { return g.tarea }
func (g *UniformGrid) DxCv() *sparse.DenseArray  { return g.dxCv }
func (g *UniformGrid) DyCu() *sparse.DenseArray  { return g.dyCu }
func (g *UniformGrid) Angle() *sparse.DenseArray { return g.angle }

func (g *UniformGrid) CyclicX() bool   { return g.cyclicX }
func (g *UniformGrid) CyclicY() bool   { return false }
func (g *UniformGrid) TripolarN() bool { return false }

func (g *UniformGrid) AxisUnits() string { return "degrees" }

func (g *UniformGrid) LenLon() float64 { return g.lenLon }
func (g *UniformGrid) LenLat() float64 { return g.lenLat }
