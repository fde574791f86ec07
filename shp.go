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
	"os"
	"path/filepath"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
)

// WriteShapefile writes the grid cells with their depth and mask values
// to a polygon shapefile named name in directory outdir, for inspection
// in GIS tools. Any previous shapefile of the same name is removed
// first.
func (b *Bathymetry) WriteShapefile(outdir, name string) error {
	if err := b.requireDepth(); err != nil {
		return err
	}
	mask, err := b.Tmask()
	if err != nil {
		return err
	}
	for _, ext := range []string{".shp", ".prj", ".dbf", ".shx"} {
		os.Remove(filepath.Join(outdir, name+ext))
	}
	fields := []goshp.Field{
		goshp.NumberField("row", 10),
		goshp.NumberField("col", 10),
		goshp.FloatField("depth", 16, 6),
		goshp.NumberField("mask", 10),
	}
	shpf, err := shp.NewEncoderFromFields(filepath.Join(outdir, name+".shp"),
		goshp.POLYGON, fields...)
	if err != nil {
		return err
	}
	g := b.grid
	for j := 0; j < g.NY(); j++ {
		for i := 0; i < g.NX(); i++ {
			data := []interface{}{j, i, b.depth.Get(j, i), int(mask.Get(j, i))}
			if err := shpf.EncodeFields(cellPolygon(g, j, i), data...); err != nil {
				return err
			}
		}
	}
	shpf.Close()
	return nil
}

// cellPolygon returns the quadrilateral of cell (j, i) traced
// counterclockwise through its four corners.
func cellPolygon(g Grid, j, i int) geom.Polygon {
	qlon, qlat := g.QLon(), g.QLat()
	return geom.Polygon{{
		{X: qlon.Get(j, i), Y: qlat.Get(j, i)},
		{X: qlon.Get(j, i+1), Y: qlat.Get(j, i+1)},
		{X: qlon.Get(j+1, i+1), Y: qlat.Get(j+1, i+1)},
		{X: qlon.Get(j+1, i), Y: qlat.Get(j+1, i)},
	}}
}
