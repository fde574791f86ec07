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
	"os"
	"path/filepath"
	"strings"

	mom6bathy "github.com/Fox-Kemper-Group/mom6-bathy"
	"github.com/Fox-Kemper-Group/mom6-bathy/regrid"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// GridFromConfig builds the horizontal grid specified by the Grid
// configuration variables.
func GridFromConfig(cfg *viper.Viper) (*mom6bathy.UniformGrid, error) {
	g, err := mom6bathy.NewUniformGrid(
		cfg.GetInt("Grid.NX"), cfg.GetInt("Grid.NY"),
		cfg.GetFloat64("Grid.Lon0"), cfg.GetFloat64("Grid.LenLon"),
		cfg.GetFloat64("Grid.Lat0"), cfg.GetFloat64("Grid.LenLat"),
		cfg.GetBool("Grid.CyclicX"))
	if err != nil {
		return nil, fmt.Errorf("mom6bathy: parsing grid configuration: %v", err)
	}
	return g, nil
}

// ShapeConfig holds the depth generator selection and its parameters.
type ShapeConfig struct {
	// Shape selects the generator; one of flat, spoon, bowl, expr, or
	// topog.
	Shape string

	// FlatDepth is the uniform depth [m] of a flat bathymetry.
	FlatDepth float64

	// MaxDepth, EdgeDepth, RadEarth, and ExpDecay parameterize the
	// spoon and bowl basins.
	MaxDepth, EdgeDepth, RadEarth, ExpDecay float64

	// Expr is the depth expression evaluated at each cell center when
	// Shape is expr.
	Expr string

	// TopogFile is the existing topog file read when Shape is topog.
	TopogFile string

	// Ridges are added to the generated depth field in order.
	Ridges []Ridge
}

// Ridge describes a meridional ridge to be added to the bathymetry.
type Ridge struct {
	// Height is how far the ridge rises above the surrounding sea
	// floor [m], and Width is its zonal extent [degrees].
	Height, Width float64

	// Lon is the longitude the ridge crest is centered on [degrees].
	Lon float64

	// JStart (inclusive) and JEnd (exclusive) bound the latitude rows
	// the ridge spans.
	JStart, JEnd int
}

// shapeConfig unmarshals a viper configuration for a depth generator.
func shapeConfig(cfg *viper.Viper) (*ShapeConfig, error) {
	ridges, err := parseRidges(cfg.GetStringSlice("Bathy.Ridges"))
	if err != nil {
		return nil, err
	}
	c := &ShapeConfig{
		Shape:     cfg.GetString("Bathy.Shape"),
		FlatDepth: cfg.GetFloat64("Bathy.FlatDepth"),
		MaxDepth:  cfg.GetFloat64("Bathy.MaxDepth"),
		EdgeDepth: cfg.GetFloat64("Bathy.EdgeDepth"),
		RadEarth:  cfg.GetFloat64("Bathy.RadEarth"),
		ExpDecay:  cfg.GetFloat64("Bathy.ExpDecay"),
		Expr:      cfg.GetString("Bathy.Expr"),
		TopogFile: os.ExpandEnv(cfg.GetString("Bathy.TopogFile")),
		Ridges:    ridges,
	}
	switch c.Shape {
	case "flat", "spoon", "bowl":
	case "expr":
		if c.Expr == "" {
			return nil, fmt.Errorf("mom6bathy: Bathy.Shape is 'expr' but the Bathy.Expr expression is empty")
		}
	case "topog":
		if c.TopogFile == "" {
			return nil, fmt.Errorf("mom6bathy: Bathy.Shape is 'topog' but no Bathy.TopogFile is specified")
		}
	default:
		return nil, fmt.Errorf("mom6bathy: the Bathy.Shape variable needs to be set to "+
			"either flat, spoon, bowl, expr, or topog, but is currently set to `%s`", c.Shape)
	}
	return c, nil
}

// parseRidges parses ridge specifications of the form
// 'height,width,lon,jstart,jend'.
func parseRidges(specs []string) ([]Ridge, error) {
	ridges := make([]Ridge, len(specs))
	for i, s := range specs {
		r, err := parseRidge(s)
		if err != nil {
			return nil, err
		}
		ridges[i] = r
	}
	return ridges, nil
}

func parseRidge(s string) (Ridge, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 5 {
		return Ridge{}, fmt.Errorf("mom6bathy: ridge `%s` must have the form 'height,width,lon,jstart,jend'", s)
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	var r Ridge
	var err error
	if r.Height, err = cast.ToFloat64E(fields[0]); err != nil {
		return r, fmt.Errorf("mom6bathy: ridge `%s` height: %v", s, err)
	}
	if r.Width, err = cast.ToFloat64E(fields[1]); err != nil {
		return r, fmt.Errorf("mom6bathy: ridge `%s` width: %v", s, err)
	}
	if r.Lon, err = cast.ToFloat64E(fields[2]); err != nil {
		return r, fmt.Errorf("mom6bathy: ridge `%s` longitude: %v", s, err)
	}
	if r.JStart, err = cast.ToIntE(fields[3]); err != nil {
		return r, fmt.Errorf("mom6bathy: ridge `%s` jstart: %v", s, err)
	}
	if r.JEnd, err = cast.ToIntE(fields[4]); err != nil {
		return r, fmt.Errorf("mom6bathy: ridge `%s` jend: %v", s, err)
	}
	return r, nil
}

// LandFracConfig holds the land fraction masking options. An empty File
// disables the mask.
type LandFracConfig struct {
	File, Var, XCoord, YCoord string
	DepthFill, CutoffFrac     float64
	Method                    regrid.Method
}

// landFracConfig unmarshals a viper configuration for the land fraction
// mask.
func landFracConfig(cfg *viper.Viper) (*LandFracConfig, error) {
	c := &LandFracConfig{
		File:       os.ExpandEnv(cfg.GetString("LandFrac.File")),
		Var:        cfg.GetString("LandFrac.Var"),
		XCoord:     cfg.GetString("LandFrac.XCoord"),
		YCoord:     cfg.GetString("LandFrac.YCoord"),
		DepthFill:  cfg.GetFloat64("LandFrac.DepthFill"),
		CutoffFrac: cfg.GetFloat64("LandFrac.CutoffFrac"),
		Method:     regrid.Method(cfg.GetString("LandFrac.Method")),
	}
	if c.File != "" && !c.Method.Valid() {
		return nil, fmt.Errorf("mom6bathy: the LandFrac.Method variable needs to be set to "+
			"one of %v, but is currently set to `%s`", regrid.Methods(), c.Method)
	}
	return c, nil
}

// OutputConfig holds the resolved paths of the files to be written. Empty
// fields disable the corresponding output.
type OutputConfig struct {
	// Dir is the directory the outputs are written to.
	Dir string

	// Title is the title global attribute for the files that carry one.
	Title string

	Topog    string
	CICEGrid string
	SCRIP    string
	Domain   string
	Mesh     string

	// Shapefile is the base name, without extension, of the grid cell
	// shapefile; it is written into Dir.
	Shapefile string

	Plot     string
	Params   string
	MOMInput string
}

// outputConfig reads the Output configuration variables and resolves the
// output file names against OutputDir, which must exist.
func outputConfig(cfg *viper.Viper) (*OutputConfig, error) {
	dir := os.ExpandEnv(cfg.GetString("OutputDir"))
	if dir == "" {
		dir = "."
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("mom6bathy: the OutputDir directory doesn't exist: %v", err)
	}
	return &OutputConfig{
		Dir:       dir,
		Title:     os.ExpandEnv(cfg.GetString("Title")),
		Topog:     outputPath(dir, cfg.GetString("Output.Topog")),
		CICEGrid:  outputPath(dir, cfg.GetString("Output.CICEGrid")),
		SCRIP:     outputPath(dir, cfg.GetString("Output.SCRIP")),
		Domain:    outputPath(dir, cfg.GetString("Output.Domain")),
		Mesh:      outputPath(dir, cfg.GetString("Output.Mesh")),
		Shapefile: os.ExpandEnv(cfg.GetString("Output.Shapefile")),
		Plot:      outputPath(dir, cfg.GetString("Output.Plot")),
		Params:    outputPath(dir, cfg.GetString("Output.Params")),
		MOMInput:  outputPath(dir, cfg.GetString("Output.MOMInput")),
	}, nil
}

// outputPath expands environment variables in name and resolves it
// against dir. An empty name stays empty.
func outputPath(dir, name string) string {
	if name == "" {
		return ""
	}
	name = os.ExpandEnv(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
