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

// WriteESMFMesh writes the grid as an ESMF unstructured mesh file at
// path, describing cells as quadrilateral elements over a shared set of
// corner nodes. On a zonally cyclic grid the duplicated seam corners are
// dropped and the easternmost elements connect back to the first node
// column of their row. Node indices are 1-based. If title is empty no
// title attribute is written. The Recorder, if set, is notified of the
// written path and the grid sizing parameters after a successful write.
func (b *Bathymetry) WriteESMFMesh(path, title string) error {
	if err := b.requireDepth(); err != nil {
		return err
	}
	mask, err := b.Tmask()
	if err != nil {
		return err
	}
	g := b.grid
	ny, nx := g.NY(), g.NX()
	ncells := nx * ny
	nnodes := meshNodeCount(nx, ny, g.CyclicX())

	h := cdf.NewHeader(
		[]string{"elementCount", "nodeCount", "coordDim", "maxNodePElement"},
		[]int{ncells, nnodes, 2, 4},
	)
	h.AddAttribute("", "gridType", "unstructured mesh")
	h.AddAttribute("", "date_created", dateCreated())
	if title != "" {
		h.AddAttribute("", "title", title)
	}

	h.AddVariable("centerCoords", []string{"elementCount", "coordDim"}, []float64{0})
	h.AddAttribute("centerCoords", "units", g.AxisUnits())

	h.AddVariable("numElementConn", []string{"elementCount"}, []uint8{0})
	h.AddAttribute("numElementConn", "long_name", "Node indices that define the element connectivity")

	h.AddVariable("elementArea", []string{"elementCount"}, []float64{0})
	h.AddAttribute("elementArea", "units", "m2")

	h.AddVariable("elementMask", []string{"elementCount"}, []int32{0})

	h.AddVariable("nodeCoords", []string{"nodeCount", "coordDim"}, []float64{0})
	h.AddAttribute("nodeCoords", "units", g.AxisUnits())

	h.AddVariable("elementConn", []string{"elementCount", "maxNodePElement"}, []int32{0})
	h.AddAttribute("elementConn", "long_name", "Node indices that define the element connectivity")
	h.AddAttribute("elementConn", "start_index", []int32{1})

	nodeConn := make([]uint8, ncells)
	for i := range nodeConn {
		nodeConn[i] = 4
	}
	err = createNCF(path, h, func(f *cdf.File) error {
		if err := writeNCF(f, "centerCoords", interleave(g.TLon(), g.TLat())); err != nil {
			return err
		}
		if err := writeNCF(f, "numElementConn", nodeConn); err != nil {
			return err
		}
		if err := writeNCF(f, "elementArea", g.TArea().Elements); err != nil {
			return err
		}
		if err := writeNCF(f, "elementMask", toInt32(mask)); err != nil {
			return err
		}
		if err := writeNCF(f, "nodeCoords", meshNodeCoords(g)); err != nil {
			return err
		}
		return writeNCF(f, "elementConn", meshConnectivity(nx, ny, g.CyclicX()))
	})
	if err != nil {
		return err
	}
	b.Log.WithFields(logrus.Fields{
		"file":     path,
		"elements": ncells,
		"nodes":    nnodes,
	}).Info("mom6bathy: wrote ESMF mesh file")
	if b.Recorder != nil {
		maxDepth, err := b.MaxDepth()
		if err != nil {
			return err
		}
		b.Recorder.RecordMesh(MeshParams{
			Path:      absPath(path),
			NX:        nx,
			NY:        ny,
			TripolarN: g.TripolarN(),
			CyclicX:   g.CyclicX(),
			CyclicY:   g.CyclicY(),
			MaxDepth:  maxDepth,
			MinDepth:  b.minDepth,
		})
	}
	return nil
}

// meshNodeCount returns the number of distinct corner nodes: every
// corner on a bounded grid, or with the easternmost corner column
// dropped on a zonally cyclic grid where it duplicates the western one.
func meshNodeCount(nx, ny int, cyclicX bool) int {
	if cyclicX {
		return nx * (ny + 1)
	}
	return (nx + 1) * (ny + 1)
}

// meshNodeCoords returns the interleaved lon-lat node coordinate pairs
// in row-major node order.
func meshNodeCoords(g Grid) []float64 {
	qlon, qlat := g.QLon(), g.QLat()
	if !g.CyclicX() {
		return interleave(qlon, qlat)
	}
	ny, nx := g.NY(), g.NX()
	out := make([]float64, 0, 2*nx*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i < nx; i++ {
			out = append(out, qlon.Get(j, i), qlat.Get(j, i))
		}
	}
	return out
}

// meshConnectivity returns the flattened (nx*ny, 4) element connectivity
// with 1-based node indices. Elements are enumerated row-major; each
// element lists its corner nodes counterclockwise from the southwest,
// matching the SCRIP corner ordering. On a cyclic grid the node rows
// have stride nx instead of nx+1 and the east-side indices of the last
// column wrap around to the start of the row.
func meshConnectivity(nx, ny int, cyclicX bool) []int32 {
	conn := make([]int32, 0, nx*ny*4)
	stride := nx + 1
	if cyclicX {
		stride = nx
	}
	for i := 0; i < nx*ny; i++ {
		col, row := i%nx, i/nx
		sw := 1 + col + row*stride
		nw := 1 + col + (row+1)*stride
		se, ne := sw+1, nw+1
		if cyclicX && (i+1)%nx == 0 {
			se -= nx
			ne -= nx
		}
		conn = append(conn, int32(sw), int32(se), int32(ne), int32(nw))
	}
	return conn
}

// interleave flattens two same-shaped arrays to alternating pairs
// (x0, y0, x1, y1, ...) in row-major order.
func interleave(x, y *sparse.DenseArray) []float64 {
	out := make([]float64, 0, 2*len(x.Elements))
	for i := range x.Elements {
		out = append(out, x.Elements[i], y.Elements[i])
	}
	return out
}
