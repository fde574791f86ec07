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
	"path/filepath"
	"testing"

	"github.com/Fox-Kemper-Group/mom6-bathy/regrid"
	"github.com/lnashier/viper"
)

func TestParseRidges(t *testing.T) {
	ridges, err := parseRidges([]string{"2500, 10, 185, 0, 20", "1000,5,90,3,7"})
	if err != nil {
		t.Fatal(err)
	}
	want := []Ridge{
		{Height: 2500, Width: 10, Lon: 185, JStart: 0, JEnd: 20},
		{Height: 1000, Width: 5, Lon: 90, JStart: 3, JEnd: 7},
	}
	if len(ridges) != len(want) {
		t.Fatalf("parsed %d ridges, want %d", len(ridges), len(want))
	}
	for i := range want {
		if ridges[i] != want[i] {
			t.Errorf("ridge %d: %+v != %+v", i, ridges[i], want[i])
		}
	}

	bad := []string{
		"2500,10,185,0",      // too few fields
		"2500,10,185,0,20,5", // too many fields
		"tall,10,185,0,20",   // non-numeric height
		"2500,10,185,0.5,20", // fractional row index
	}
	for _, s := range bad {
		if _, err := parseRidges([]string{s}); err == nil {
			t.Errorf("ridge %q should not parse", s)
		}
	}
}

func TestShapeConfig(t *testing.T) {
	cfg := viper.New()
	cfg.Set("Bathy.Shape", "spoon")
	cfg.Set("Bathy.MaxDepth", 6000.0)
	cfg.Set("Bathy.EdgeDepth", 100.0)
	cfg.Set("Bathy.RadEarth", 6.378e6)
	cfg.Set("Bathy.ExpDecay", 400000.0)
	cfg.Set("Bathy.Ridges", []string{"2500,10,185,0,20"})
	c, err := shapeConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if c.Shape != "spoon" || c.MaxDepth != 6000 || c.EdgeDepth != 100 ||
		c.RadEarth != 6.378e6 || c.ExpDecay != 400000 {
		t.Errorf("basin parameters: %+v", c)
	}
	if len(c.Ridges) != 1 || c.Ridges[0].Height != 2500 {
		t.Errorf("ridges: %+v", c.Ridges)
	}

	cfg = viper.New()
	cfg.Set("Bathy.Shape", "expr")
	if _, err := shapeConfig(cfg); err == nil {
		t.Error("expr shape without an expression should not validate")
	}
	cfg.Set("Bathy.Expr", "min_depth + 100")
	c, err = shapeConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if c.Expr != "min_depth + 100" {
		t.Errorf("expression: %q", c.Expr)
	}

	cfg = viper.New()
	cfg.Set("Bathy.Shape", "topog")
	if _, err := shapeConfig(cfg); err == nil {
		t.Error("topog shape without a file should not validate")
	}
	t.Setenv("TOPOG_DIR", "/data")
	cfg.Set("Bathy.TopogFile", "$TOPOG_DIR/in.nc")
	c, err = shapeConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if c.TopogFile != "/data/in.nc" {
		t.Errorf("expanded topog file: %q", c.TopogFile)
	}

	cfg = viper.New()
	cfg.Set("Bathy.Shape", "pringle")
	if _, err := shapeConfig(cfg); err == nil {
		t.Error("unknown shape should not validate")
	}
}

func TestLandFracConfig(t *testing.T) {
	// An empty file disables the mask; the method is not checked then.
	c, err := landFracConfig(viper.New())
	if err != nil {
		t.Fatal(err)
	}
	if c.File != "" {
		t.Errorf("file: %q", c.File)
	}

	cfg := viper.New()
	cfg.Set("LandFrac.File", "land.nc")
	cfg.Set("LandFrac.Var", "frac")
	cfg.Set("LandFrac.XCoord", "x")
	cfg.Set("LandFrac.YCoord", "y")
	cfg.Set("LandFrac.DepthFill", 0.0)
	cfg.Set("LandFrac.CutoffFrac", 0.5)
	cfg.Set("LandFrac.Method", "conservative")
	c, err = landFracConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if c.File != "land.nc" || c.Var != "frac" || c.XCoord != "x" || c.YCoord != "y" {
		t.Errorf("names: %+v", c)
	}
	if c.CutoffFrac != 0.5 || c.Method != regrid.Conservative {
		t.Errorf("mask parameters: %+v", c)
	}

	cfg.Set("LandFrac.Method", "quadratic")
	if _, err := landFracConfig(cfg); err == nil {
		t.Error("unknown method should not validate")
	}
}

func TestOutputConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := viper.New()
	cfg.Set("OutputDir", dir)
	cfg.Set("Title", "test case")
	cfg.Set("Output.Topog", "t.nc")
	cfg.Set("Output.Mesh", "/elsewhere/mesh.nc")
	t.Setenv("PLOTNAME", "depth")
	cfg.Set("Output.Plot", "$PLOTNAME.png")
	c, err := outputConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if c.Dir != dir || c.Title != "test case" {
		t.Errorf("directory and title: %q, %q", c.Dir, c.Title)
	}
	if c.Topog != filepath.Join(dir, "t.nc") {
		t.Errorf("relative name resolution: %q", c.Topog)
	}
	if c.Mesh != "/elsewhere/mesh.nc" {
		t.Errorf("absolute name resolution: %q", c.Mesh)
	}
	if c.Plot != filepath.Join(dir, "depth.png") {
		t.Errorf("environment expansion: %q", c.Plot)
	}
	if c.CICEGrid != "" || c.SCRIP != "" {
		t.Errorf("unset outputs should stay empty: %+v", c)
	}

	cfg.Set("OutputDir", filepath.Join(dir, "missing"))
	if _, err := outputConfig(cfg); err == nil {
		t.Error("nonexistent output directory should not validate")
	}
}

func TestGridFromConfig(t *testing.T) {
	cfg := viper.New()
	cfg.Set("Grid.NX", 4)
	cfg.Set("Grid.NY", 3)
	cfg.Set("Grid.Lon0", 0.0)
	cfg.Set("Grid.LenLon", 360.0)
	cfg.Set("Grid.Lat0", -30.0)
	cfg.Set("Grid.LenLat", 30.0)
	cfg.Set("Grid.CyclicX", true)
	g, err := GridFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if g.NX() != 4 || g.NY() != 3 || !g.CyclicX() {
		t.Errorf("grid: %d x %d, cyclic %v", g.NX(), g.NY(), g.CyclicX())
	}

	cfg.Set("Grid.NX", 0)
	if _, err := GridFromConfig(cfg); err == nil {
		t.Error("empty grid should not validate")
	}
}
