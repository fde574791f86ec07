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
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"gonum.org/v1/gonum/mat"
)

// weight is one source cell's contribution to a destination cell.
type weight struct {
	idx int
	w   float64
}

// mapping holds, for every destination cell in flat row-major order, the
// weighted source cells contributing to it. An empty weight list leaves
// the destination cell at zero.
type mapping [][]weight

func checkNonEmpty(req *weightRequest) error {
	if len(req.srcLon.Elements) == 0 || len(req.dstLon.Elements) == 0 {
		return fmt.Errorf("regrid: empty grid")
	}
	return nil
}

// conservativeWeights computes first-order conservative weights: each
// destination cell receives the area-weighted average of the source cells
// it overlaps. The plain conservative method divides by the full
// destination cell area, so partially covered destination cells are
// biased toward zero; the normalized variant divides by the covered area
// only.
func conservativeWeights(req *weightRequest) (mapping, error) {
	if err := checkNonEmpty(req); err != nil {
		return nil, err
	}
	srcTree, _, err := cellTree(req.srcLon, req.srcLat, req.periodic)
	if err != nil {
		return nil, err
	}
	dstPolys, err := cellPolygons(req.dstLon, req.dstLat)
	if err != nil {
		return nil, err
	}
	m := make(mapping, len(dstPolys))
	for di, dp := range dstPolys {
		areas := make(map[int]float64)
		for _, hit := range srcTree.SearchIntersect(dp.Bounds()) {
			sc := hit.(gridCell)
			isect := dp.Intersection(sc.Polygonal)
			if isect == nil {
				continue
			}
			if a := math.Abs(isect.Area()); a > 0 {
				areas[sc.idx] += a
			}
		}
		if len(areas) == 0 {
			continue
		}
		denom := math.Abs(dp.Area())
		if req.method == ConservativeNormed {
			denom = 0
			for _, a := range areas {
				denom += a
			}
		}
		if denom == 0 {
			continue
		}
		idxs := make([]int, 0, len(areas))
		for idx := range areas {
			idxs = append(idxs, idx)
		}
		sort.Ints(idxs)
		ws := make([]weight, len(idxs))
		for k, idx := range idxs {
			ws[k] = weight{idx: idx, w: areas[idx] / denom}
		}
		m[di] = ws
	}
	return m, nil
}

// bilinearWeights interpolates within the quadrilateral of the four
// source cell centers enclosing each destination center. Destination
// centers outside the source center hull fall back to the nearest source
// center.
func bilinearWeights(req *weightRequest) (mapping, error) {
	if err := checkNonEmpty(req); err != nil {
		return nil, err
	}
	quads := quadTree(req.srcLon, req.srcLat, req.periodic)
	points := pointTree(req.srcLon, req.srcLat, req.periodic)
	m := make(mapping, len(req.dstLon.Elements))
	for di := range req.dstLon.Elements {
		p := geom.Point{X: req.dstLon.Elements[di], Y: req.dstLat.Elements[di]}
		var ws []weight
		for _, hit := range quads.SearchIntersect(p.Bounds()) {
			qc := hit.(quadCell)
			if p.Within(qc.Polygonal) == geom.Outside {
				continue
			}
			u, v, ok := invBilinear(p, qc.Polygonal.(geom.Polygon))
			if !ok {
				continue
			}
			ws = []weight{
				{idx: qc.idx[0], w: (1 - u) * (1 - v)},
				{idx: qc.idx[1], w: u * (1 - v)},
				{idx: qc.idx[2], w: u * v},
				{idx: qc.idx[3], w: (1 - u) * v},
			}
			break
		}
		if ws == nil {
			np := points.NearestNeighbor(p).(gridPoint)
			ws = []weight{{idx: np.idx, w: 1}}
		}
		m[di] = ws
	}
	return m, nil
}

// invBilinear inverts the bilinear map of the quadrilateral quad at point
// p by Newton iteration, returning local coordinates in [0, 1]² with the
// quad's corners at (0,0), (1,0), (1,1) and (0,1).
func invBilinear(p geom.Point, quad geom.Polygon) (u, v float64, ok bool) {
	ring := quad[0]
	p00, p10, p11, p01 := ring[0], ring[1], ring[2], ring[3]
	ax, ay := p10.X-p00.X, p10.Y-p00.Y
	bx, by := p01.X-p00.X, p01.Y-p00.Y
	cx, cy := p11.X-p10.X-p01.X+p00.X, p11.Y-p10.Y-p01.Y+p00.Y
	scale := math.Abs(ax) + math.Abs(ay) + math.Abs(bx) + math.Abs(by)
	if scale == 0 {
		return 0, 0, false
	}
	u, v = 0.5, 0.5
	for iter := 0; iter < 20; iter++ {
		rx := p00.X + u*ax + v*bx + u*v*cx - p.X
		ry := p00.Y + u*ay + v*by + u*v*cy - p.Y
		if math.Abs(rx)+math.Abs(ry) < 1e-12*scale {
			break
		}
		j00 := ax + v*cx
		j01 := bx + u*cx
		j10 := ay + v*cy
		j11 := by + u*cy
		det := j00*j11 - j01*j10
		if det == 0 {
			return 0, 0, false
		}
		u += (-rx*j11 + ry*j01) / det
		v += (rx*j10 - ry*j00) / det
	}
	const tol = 1e-6
	if u < -tol || u > 1+tol || v < -tol || v > 1+tol {
		return 0, 0, false
	}
	return math.Min(math.Max(u, 0), 1), math.Min(math.Max(v, 0), 1), true
}

// patchWeights fits a least-squares plane through the numNearest source
// centers around each destination center and evaluates it there. The
// plane coefficients are linear in the source values, so the fit reduces
// to a weight per neighbor. Degenerate neighborhoods fall back to the
// nearest source center.
func patchWeights(req *weightRequest) (mapping, error) {
	if err := checkNonEmpty(req); err != nil {
		return nil, err
	}
	points := pointTree(req.srcLon, req.srcLat, req.periodic)
	nSrc := len(req.srcLon.Elements)
	k := req.numNearest
	if k > nSrc {
		k = nSrc
	}
	m := make(mapping, len(req.dstLon.Elements))
	for di := range req.dstLon.Elements {
		p := geom.Point{X: req.dstLon.Elements[di], Y: req.dstLat.Elements[di]}
		neighbors := nearestUnique(points, p, k)
		m[di] = fitPlane(p, neighbors)
	}
	return m, nil
}

// nearestUnique returns the k source centers nearest to p, keeping only
// the nearest periodic replica of each center.
func nearestUnique(points *rtree.Rtree, p geom.Point, k int) []gridPoint {
	// Periodic trees hold up to three replicas per center.
	hits := points.NearestNeighbors(3*k, p)
	seen := make(map[int]bool)
	out := make([]gridPoint, 0, k)
	for _, hit := range hits {
		if hit == nil {
			break
		}
		gp := hit.(gridPoint)
		if seen[gp.idx] {
			continue
		}
		seen[gp.idx] = true
		out = append(out, gp)
		if len(out) == k {
			break
		}
	}
	return out
}

// fitPlane returns the weights that evaluate, at p, the least-squares
// plane through the neighbor centers.
func fitPlane(p geom.Point, neighbors []gridPoint) []weight {
	k := len(neighbors)
	if k == 0 {
		return nil
	}
	if k < 3 {
		return []weight{{idx: neighbors[0].idx, w: 1}}
	}
	x := mat.NewDense(k, 3, nil)
	for r, gp := range neighbors {
		x.SetRow(r, []float64{1, gp.X, gp.Y})
	}
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		// Collinear neighborhood; revert to nearest neighbor.
		return []weight{{idx: neighbors[0].idx, w: 1}}
	}
	var pinv mat.Dense
	pinv.Mul(&inv, x.T())
	ws := make([]weight, k)
	for c := 0; c < k; c++ {
		ws[c] = weight{
			idx: neighbors[c].idx,
			w:   pinv.At(0, c) + p.X*pinv.At(1, c) + p.Y*pinv.At(2, c),
		}
	}
	return ws
}

// nearestS2DWeights maps each destination center to its nearest source
// center.
func nearestS2DWeights(req *weightRequest) (mapping, error) {
	if err := checkNonEmpty(req); err != nil {
		return nil, err
	}
	points := pointTree(req.srcLon, req.srcLat, req.periodic)
	m := make(mapping, len(req.dstLon.Elements))
	for di := range req.dstLon.Elements {
		p := geom.Point{X: req.dstLon.Elements[di], Y: req.dstLat.Elements[di]}
		np := points.NearestNeighbor(p).(gridPoint)
		m[di] = []weight{{idx: np.idx, w: 1}}
	}
	return m, nil
}

// nearestD2SWeights maps each source center to its nearest destination
// center; a destination cell receives the sum of the source cells mapped
// to it, and zero if none map to it.
func nearestD2SWeights(req *weightRequest) (mapping, error) {
	if err := checkNonEmpty(req); err != nil {
		return nil, err
	}
	dstPoints := pointTree(req.dstLon, req.dstLat, req.periodic)
	m := make(mapping, len(req.dstLon.Elements))
	for si := range req.srcLon.Elements {
		p := geom.Point{X: req.srcLon.Elements[si], Y: req.srcLat.Elements[si]}
		np := dstPoints.NearestNeighbor(p).(gridPoint)
		m[np.idx] = append(m[np.idx], weight{idx: si, w: 1})
	}
	return m, nil
}
