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

package bathyutil

import (
	"fmt"
	"io"
	"os"

	mom6bathy "github.com/Fox-Kemper-Group/mom6-bathy"
)

// Generate builds a bathymetry for grid, shapes it as specified by shape,
// optionally masks out land cells as specified by landFrac, and writes
// the output files selected by output.
func Generate(grid *mom6bathy.UniformGrid, minDepth float64, shape *ShapeConfig,
	landFrac *LandFracConfig, output *OutputConfig) error {
	b, err := mom6bathy.NewBathymetry(grid, minDepth)
	if err != nil {
		return err
	}
	params := new(mom6bathy.ParamFile)
	b.Recorder = params

	switch shape.Shape {
	case "flat":
		err = b.SetFlat(shape.FlatDepth)
	case "spoon":
		err = b.SetSpoon(shape.MaxDepth, shape.EdgeDepth, shape.RadEarth, shape.ExpDecay)
	case "bowl":
		err = b.SetBowl(shape.MaxDepth, shape.EdgeDepth, shape.RadEarth, shape.ExpDecay)
	case "expr":
		err = b.SetDepthExpr(shape.Expr)
	case "topog":
		err = b.SetDepthFromTopog(shape.TopogFile)
	default:
		err = fmt.Errorf("mom6bathy: invalid bathymetry shape `%s`", shape.Shape)
	}
	if err != nil {
		return err
	}

	for _, r := range shape.Ridges {
		if err := b.ApplyRidge(r.Height, r.Width, r.Lon, [2]int{r.JStart, r.JEnd}); err != nil {
			return err
		}
	}

	if landFrac.File != "" {
		err := b.ApplyLandFrac(landFrac.File, landFrac.Var, landFrac.XCoord, landFrac.YCoord,
			landFrac.DepthFill, landFrac.CutoffFrac, landFrac.Method, nil)
		if err != nil {
			return err
		}
	}

	if output.Topog != "" {
		if err := b.WriteTopog(output.Topog, output.Title); err != nil {
			return err
		}
	}
	if output.CICEGrid != "" {
		if err := b.WriteCICEGrid(output.CICEGrid); err != nil {
			return err
		}
	}
	if output.SCRIP != "" {
		if err := b.WriteSCRIP(output.SCRIP, output.Title); err != nil {
			return err
		}
	}
	if output.Domain != "" {
		if err := b.WriteDomain(output.Domain); err != nil {
			return err
		}
	}
	if output.Mesh != "" {
		if err := b.WriteESMFMesh(output.Mesh, output.Title); err != nil {
			return err
		}
	}
	if output.Shapefile != "" {
		if err := b.WriteShapefile(output.Dir, output.Shapefile); err != nil {
			return err
		}
	}
	if output.Plot != "" {
		if err := b.WriteDepthPlot(output.Plot); err != nil {
			return err
		}
	}
	if output.MOMInput != "" {
		if err := writeMOMInput(b, output.MOMInput); err != nil {
			return err
		}
	}
	// The parameter file is written last so that it records every
	// exported path.
	if output.Params != "" {
		if err := params.WriteFile(output.Params); err != nil {
			return err
		}
	}
	return nil
}

// writeMOMInput writes the MOM_input runtime parameter block to path.
func writeMOMInput(b *mom6bathy.Bathymetry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mom6bathy: creating MOM_input file: %v", err)
	}
	if err := b.WriteRuntimeParams(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("mom6bathy: writing MOM_input file: %v", err)
	}
	return nil
}

// Inspect reads the depth field of the topog file at topogFile on grid
// and writes its depth statistics along with the implied MOM_input
// runtime parameters to w.
func Inspect(grid *mom6bathy.UniformGrid, minDepth float64, topogFile string, w io.Writer) error {
	if topogFile == "" {
		return fmt.Errorf("mom6bathy: you need to specify a topog file to inspect, " +
			"either as an argument or with the Bathy.TopogFile configuration variable")
	}
	b, err := mom6bathy.NewBathymetry(grid, minDepth)
	if err != nil {
		return err
	}
	if err := b.SetDepthFromTopog(topogFile); err != nil {
		return err
	}
	stats, err := b.DepthStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d x %d cells, %d ocean, %d land\n",
		topogFile, grid.NX(), grid.NY(), stats.Count, stats.LandCount)
	if stats.Count > 0 {
		fmt.Fprintf(w, "depth [m]: min %g, max %g, mean %g, std %g\n",
			stats.Min, stats.Max, stats.Mean, stats.Std)
	}
	fmt.Fprintln(w)
	return b.WriteRuntimeParams(w)
}
