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
	"os"

	"github.com/ctessum/geom/carto"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// WriteDepthPlot renders the depth field as a PNG map at path, with one
// colored polygon per grid cell and a depth legend underneath.
func (b *Bathymetry) WriteDepthPlot(path string) error {
	if err := b.requireDepth(); err != nil {
		return err
	}
	g := b.grid

	const (
		figWidth  = 5.75 * vg.Inch
		figHeight = figWidth * 3 / 5
		legendH   = 0.4 * vg.Inch
	)
	c := vgimg.New(figWidth, figHeight)
	dc := draw.New(c)
	legendc := draw.Crop(dc, 0, 0, 0, -figHeight+legendH)
	mainc := draw.Crop(dc, 0, 0, legendH, 0)

	cmap := carto.NewColorMap(carto.Linear)
	cmap.AddArray(b.depth.Elements)
	cmap.NumDivisions = 8
	cmap.Set()
	if err := cmap.Legend(&legendc, "Depth (m)"); err != nil {
		return fmt.Errorf("mom6bathy: drawing depth legend: %v", err)
	}

	qlon, qlat := g.QLon(), g.QLat()
	canvas := carto.NewCanvas(
		floats.Max(qlat.Elements), floats.Min(qlat.Elements),
		floats.Max(qlon.Elements), floats.Min(qlon.Elements),
		mainc,
	)
	for j := 0; j < g.NY(); j++ {
		for i := 0; i < g.NX(); i++ {
			bc := cmap.GetColor(b.depth.Get(j, i))
			ls := draw.LineStyle{Color: bc, Width: 0.1}
			if err := canvas.DrawVector(cellPolygon(g, j, i), bc, ls, draw.GlyphStyle{}); err != nil {
				return fmt.Errorf("mom6bathy: drawing depth map: %v", err)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mom6bathy: creating %s: %v", path, err)
	}
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("mom6bathy: writing %s: %v", path, err)
	}
	return f.Close()
}
