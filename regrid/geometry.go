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

package regrid

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/sparse"
)

// gridCell is a source or destination cell polygon tagged with the flat
// index of the cell it belongs to.
type gridCell struct {
	geom.Polygonal
	idx int
}

// gridPoint is a cell-center point tagged with the flat index of its
// cell.
type gridPoint struct {
	geom.Point
	idx int
}

// quadCell is a polygon spanning four neighboring cell centers, tagged
// with their flat indices in counter-clockwise corner order.
type quadCell struct {
	geom.Polygonal
	idx [4]int
}

// shifts returns the longitude offsets at which source geometry is
// indexed. Periodic grids are replicated one period east and west so that
// destination geometry near the seam finds its source neighbors
// regardless of the longitude conventions of the two grids.
func shifts(periodic bool) []float64 {
	if periodic {
		return []float64{0, 360, -360}
	}
	return []float64{0}
}

// inferCorners estimates the (ny+1, nx+1) cell-corner array for a
// (ny, nx) cell-center array by averaging neighboring centers, with
// half-cell extrapolation at the domain edges. The centers must form at
// least a 2 x 2 grid.
func inferCorners(c *sparse.DenseArray) (*sparse.DenseArray, error) {
	ny, nx := c.Shape[0], c.Shape[1]
	if ny < 2 || nx < 2 {
		return nil, fmt.Errorf("regrid: cannot infer cell corners for a %d x %d grid", ny, nx)
	}
	// Midpoints along the x axis, then along the y axis.
	m := sparse.ZerosDense(ny, nx+1)
	for j := 0; j < ny; j++ {
		m.Set(1.5*c.Get(j, 0)-0.5*c.Get(j, 1), j, 0)
		for i := 1; i < nx; i++ {
			m.Set(0.5*(c.Get(j, i-1)+c.Get(j, i)), j, i)
		}
		m.Set(1.5*c.Get(j, nx-1)-0.5*c.Get(j, nx-2), j, nx)
	}
	q := sparse.ZerosDense(ny+1, nx+1)
	for i := 0; i <= nx; i++ {
		q.Set(1.5*m.Get(0, i)-0.5*m.Get(1, i), 0, i)
		for j := 1; j < ny; j++ {
			q.Set(0.5*(m.Get(j-1, i)+m.Get(j, i)), j, i)
		}
		q.Set(1.5*m.Get(ny-1, i)-0.5*m.Get(ny-2, i), ny, i)
	}
	return q, nil
}

// quadPolygon builds a closed quadrilateral through four corner points.
func quadPolygon(p0, p1, p2, p3 geom.Point) geom.Polygon {
	return geom.Polygon{{p0, p1, p2, p3, p0}}
}

// shiftPolygon returns p offset by dx degrees of longitude.
func shiftPolygon(p geom.Polygon, dx float64) geom.Polygon {
	if dx == 0 {
		return p
	}
	out := make(geom.Polygon, len(p))
	for i, ring := range p {
		r := make([]geom.Point, len(ring))
		for k, pt := range ring {
			r[k] = geom.Point{X: pt.X + dx, Y: pt.Y}
		}
		out[i] = r
	}
	return out
}

// cellPolygons returns the cell polygons of the grid with the given
// center coordinates, one per cell in flat row-major order.
func cellPolygons(lon, lat *sparse.DenseArray) ([]geom.Polygon, error) {
	qlon, err := inferCorners(lon)
	if err != nil {
		return nil, err
	}
	qlat, err := inferCorners(lat)
	if err != nil {
		return nil, err
	}
	ny, nx := lon.Shape[0], lon.Shape[1]
	polys := make([]geom.Polygon, ny*nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			polys[j*nx+i] = quadPolygon(
				geom.Point{X: qlon.Get(j, i), Y: qlat.Get(j, i)},
				geom.Point{X: qlon.Get(j, i+1), Y: qlat.Get(j, i+1)},
				geom.Point{X: qlon.Get(j+1, i+1), Y: qlat.Get(j+1, i+1)},
				geom.Point{X: qlon.Get(j+1, i), Y: qlat.Get(j+1, i)},
			)
		}
	}
	return polys, nil
}

// cellTree indexes the source cell polygons, replicated across the
// periodic shifts.
func cellTree(lon, lat *sparse.DenseArray, periodic bool) (*rtree.Rtree, []geom.Polygon, error) {
	polys, err := cellPolygons(lon, lat)
	if err != nil {
		return nil, nil, err
	}
	tree := rtree.NewTree(25, 50)
	for idx, p := range polys {
		for _, dx := range shifts(periodic) {
			tree.Insert(gridCell{Polygonal: shiftPolygon(p, dx), idx: idx})
		}
	}
	return tree, polys, nil
}

// pointTree indexes the source cell centers, replicated across the
// periodic shifts.
func pointTree(lon, lat *sparse.DenseArray, periodic bool) *rtree.Rtree {
	tree := rtree.NewTree(25, 50)
	for idx, x := range lon.Elements {
		y := lat.Elements[idx]
		for _, dx := range shifts(periodic) {
			tree.Insert(gridPoint{Point: geom.Point{X: x + dx, Y: y}, idx: idx})
		}
	}
	return tree
}

// quadTree indexes the quadrilaterals spanning neighboring source cell
// centers, the supports of bilinear interpolation. For periodic grids it
// includes the seam quads joining the last cell column back to the
// first.
func quadTree(lon, lat *sparse.DenseArray, periodic bool) *rtree.Rtree {
	ny, nx := lon.Shape[0], lon.Shape[1]
	tree := rtree.NewTree(25, 50)
	center := func(j, i int, dx float64) geom.Point {
		return geom.Point{X: lon.Get(j, i) + dx, Y: lat.Get(j, i)}
	}
	add := func(p geom.Polygon, idx [4]int) {
		for _, dx := range shifts(periodic) {
			tree.Insert(quadCell{Polygonal: shiftPolygon(p, dx), idx: idx})
		}
	}
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			add(quadPolygon(center(j, i, 0), center(j, i+1, 0),
				center(j+1, i+1, 0), center(j+1, i, 0)),
				[4]int{j*nx + i, j*nx + i + 1, (j+1)*nx + i + 1, (j+1)*nx + i})
		}
		if periodic {
			// Seam quad: last column to first column, one period east.
			add(quadPolygon(center(j, nx-1, 0), center(j, 0, 360),
				center(j+1, 0, 360), center(j+1, nx-1, 0)),
				[4]int{j*nx + nx - 1, j * nx, (j + 1) * nx, (j+1)*nx + nx - 1})
		}
	}
	return tree
}
