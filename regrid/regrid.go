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

// Package regrid maps gridded scalar fields between structured horizontal
// grids. Grids are described by their 2-D cell-center coordinate arrays;
// cell corners are inferred from the centers. The supported methods match
// the standard remapping algorithms used by ocean/atmosphere coupling
// toolchains: pointwise interpolation (bilinear, patch), area-weighted
// conservation (conservative, conservative_normed), and nearest-neighbor
// mapping in both directions.
package regrid

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ctessum/requestcache"
	"github.com/ctessum/sparse"

	"github.com/Fox-Kemper-Group/mom6-bathy/internal/hash"
)

// Method identifies a regridding algorithm.
type Method string

// The supported regridding methods.
const (
	Bilinear           Method = "bilinear"
	Conservative       Method = "conservative"
	ConservativeNormed Method = "conservative_normed"
	Patch              Method = "patch"
	NearestS2D         Method = "nearest_s2d"
	NearestD2S         Method = "nearest_d2s"
)

// Methods returns all supported regridding methods.
func Methods() []Method {
	return []Method{Bilinear, Conservative, ConservativeNormed, Patch, NearestS2D, NearestD2S}
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	for _, mm := range Methods() {
		if m == mm {
			return true
		}
	}
	return false
}

func (m Method) String() string { return string(m) }

// Field is a scalar field on a structured horizontal grid: 2-D cell-center
// coordinate arrays and a data array, all with the same shape.
type Field struct {
	Lon, Lat *sparse.DenseArray
	Data     *sparse.DenseArray
}

// NewField creates a Field after checking that the three arrays are 2-D
// and share one shape.
func NewField(lon, lat, data *sparse.DenseArray) (*Field, error) {
	for _, a := range []*sparse.DenseArray{lon, lat, data} {
		if a == nil {
			return nil, fmt.Errorf("regrid: nil field array")
		}
		if len(a.Shape) != 2 {
			return nil, fmt.Errorf("regrid: field array is %d-dimensional, want 2", len(a.Shape))
		}
		if a.Shape[0] != lon.Shape[0] || a.Shape[1] != lon.Shape[1] {
			return nil, fmt.Errorf("regrid: field array shapes %v and %v differ", lon.Shape, a.Shape)
		}
	}
	return &Field{Lon: lon, Lat: lat, Data: data}, nil
}

// Regridder maps a source field onto the grid described by the
// destination cell-center coordinates. When periodic is true the source
// and destination grids are treated as zonally reentrant with a period of
// 360 degrees of longitude.
type Regridder interface {
	Regrid(src *Field, dstLon, dstLat *sparse.DenseArray, method Method, periodic bool) (*sparse.DenseArray, error)
}

// CellRegridder implements Regridder by constructing source cell and
// center-quad polygons in longitude-latitude space, indexing them in an
// R-tree, and deriving per-destination-cell weights from point location,
// polygon intersection areas, or neighbor searches, depending on the
// method. Weight sets are cached between calls, keyed by the grid
// coordinates, the method, and the periodicity flag, so repeated
// regridding between the same pair of grids only pays the geometric
// construction cost once. The zero value is ready to use.
type CellRegridder struct {
	// NumNearest is the number of neighboring source centers the patch
	// method fits its least-squares surface over. Zero means 8.
	NumNearest int

	cacheOnce sync.Once
	cache     *requestcache.Cache
}

type weightRequest struct {
	srcLon, srcLat *sparse.DenseArray
	dstLon, dstLat *sparse.DenseArray
	method         Method
	periodic       bool
	numNearest     int
}

// weightKey mirrors weightRequest with exported fields so that it can be
// gob-encoded into a cache key.
type weightKey struct {
	SrcLon, SrcLat []float64
	DstLon, DstLat []float64
	SrcShape       []int
	DstShape       []int
	Method         string
	Periodic       bool
	NumNearest     int
}

// Regrid maps src onto the destination cell centers. Destination cells
// that no part of the source grid maps onto are set to zero.
func (r *CellRegridder) Regrid(src *Field, dstLon, dstLat *sparse.DenseArray, method Method, periodic bool) (*sparse.DenseArray, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("regrid: invalid method %q", method)
	}
	if _, err := NewField(src.Lon, src.Lat, src.Data); err != nil {
		return nil, err
	}
	if dstLon == nil || dstLat == nil || len(dstLon.Shape) != 2 ||
		len(dstLat.Shape) != 2 || dstLon.Shape[0] != dstLat.Shape[0] ||
		dstLon.Shape[1] != dstLat.Shape[1] {
		return nil, fmt.Errorf("regrid: invalid destination coordinate arrays")
	}
	w, err := r.weights(&weightRequest{
		srcLon:     src.Lon,
		srcLat:     src.Lat,
		dstLon:     dstLon,
		dstLat:     dstLat,
		method:     method,
		periodic:   periodic,
		numNearest: r.numNearest(),
	})
	if err != nil {
		return nil, err
	}
	out := sparse.ZerosDense(dstLon.Shape[0], dstLon.Shape[1])
	for di, ws := range w {
		var v float64
		for _, ww := range ws {
			v += ww.w * src.Data.Get1d(ww.idx)
		}
		out.Elements[di] = v
	}
	return out, nil
}

func (r *CellRegridder) numNearest() int {
	if r.NumNearest > 0 {
		return r.NumNearest
	}
	return 8
}

func (r *CellRegridder) weights(req *weightRequest) (mapping, error) {
	r.cacheOnce.Do(func() {
		r.cache = requestcache.NewCache(calcWeights, runtime.GOMAXPROCS(-1),
			requestcache.Deduplicate(), requestcache.Memory(4))
	})
	key := hash.Hash(weightKey{
		SrcLon:     req.srcLon.Elements,
		SrcLat:     req.srcLat.Elements,
		DstLon:     req.dstLon.Elements,
		DstLat:     req.dstLat.Elements,
		SrcShape:   req.srcLon.Shape,
		DstShape:   req.dstLon.Shape,
		Method:     string(req.method),
		Periodic:   req.periodic,
		NumNearest: req.numNearest,
	})
	result, err := r.cache.NewRequest(context.TODO(), req, key).Result()
	if err != nil {
		return nil, err
	}
	return result.(mapping), nil
}

func calcWeights(ctx context.Context, request interface{}) (interface{}, error) {
	req := request.(*weightRequest)
	switch req.method {
	case Bilinear:
		return bilinearWeights(req)
	case Conservative, ConservativeNormed:
		return conservativeWeights(req)
	case Patch:
		return patchWeights(req)
	case NearestS2D:
		return nearestS2DWeights(req)
	case NearestD2S:
		return nearestD2SWeights(req)
	}
	return nil, fmt.Errorf("regrid: invalid method %q", req.method)
}
