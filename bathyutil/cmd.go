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

// Package bathyutil provides the command-line interface for generating
// MOM6 bathymetry and the grid description files that go with it.
package bathyutil

import (
	"fmt"
	"os"

	mom6bathy "github.com/Fox-Kemper-Group/mom6-bathy"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to mom6bathy.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.NX",
			usage: `
              Grid.NX specifies the number of cells in the zonal (x)
              direction.`,
			defaultVal: 180,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), inspectCmd.Flags()},
		},
		{
			name: "Grid.NY",
			usage: `
              Grid.NY specifies the number of cells in the meridional (y)
              direction.`,
			defaultVal: 80,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), inspectCmd.Flags()},
		},
		{
			name: "Grid.Lon0",
			usage: `
              Grid.Lon0 specifies the longitude of the western edge of the
              grid, in degrees.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), inspectCmd.Flags()},
		},
		{
			name: "Grid.LenLon",
			usage: `
              Grid.LenLon specifies the zonal extent of the grid, in
              degrees.`,
			defaultVal: 360.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), inspectCmd.Flags()},
		},
		{
			name: "Grid.Lat0",
			usage: `
              Grid.Lat0 specifies the latitude of the southern edge of the
              grid, in degrees.`,
			defaultVal: -70.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), inspectCmd.Flags()},
		},
		{
			name: "Grid.LenLat",
			usage: `
              Grid.LenLat specifies the meridional extent of the grid, in
              degrees.`,
			defaultVal: 140.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), inspectCmd.Flags()},
		},
		{
			name: "Grid.CyclicX",
			usage: `
              Grid.CyclicX specifies whether the grid is reentrant in the
              zonal direction.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), inspectCmd.Flags()},
		},
		{
			name: "Bathy.MinDepth",
			usage: `
              Bathy.MinDepth specifies the minimum water column depth [m].
              Cells at or below this depth are masked out as land.`,
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), inspectCmd.Flags()},
		},
		{
			name: "Bathy.Shape",
			usage: `
              Bathy.Shape specifies the bathymetry to be generated; one of
              'flat', 'spoon', 'bowl', 'expr', or 'topog'.`,
			shorthand:  "s",
			defaultVal: "flat",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Bathy.FlatDepth",
			usage: `
              Bathy.FlatDepth specifies the uniform depth [m] of a 'flat'
              bathymetry.`,
			defaultVal: 2000.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Bathy.MaxDepth",
			usage: `
              Bathy.MaxDepth specifies the maximum basin depth [m] of a
              'spoon' or 'bowl' bathymetry.`,
			defaultVal: 6000.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Bathy.EdgeDepth",
			usage: `
              Bathy.EdgeDepth specifies the depth [m] at the basin edge of
              a 'spoon' or 'bowl' bathymetry.`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Bathy.RadEarth",
			usage: `
              Bathy.RadEarth specifies the radius of the earth [m] used
              when scaling the basin boundary slopes.`,
			defaultVal: 6.378e6,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Bathy.ExpDecay",
			usage: `
              Bathy.ExpDecay specifies the decay scale [m] of the sloping
              boundaries of a 'spoon' or 'bowl' bathymetry.`,
			defaultVal: 400000.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Bathy.Expr",
			usage: `
              Bathy.Expr specifies the depth expression evaluated at each
              cell center for an 'expr' bathymetry. The variables lon, lat,
              i, j, nx, ny, and min_depth are in scope, along with basic
              math functions.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Bathy.TopogFile",
			usage: `
              Bathy.TopogFile specifies the path to an existing MOM6 topog
              file. The generate command reads its depth field when
              Bathy.Shape is 'topog'; the inspect command reads it when no
              topog file is given as a command-line argument.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), inspectCmd.Flags()},
		},
		{
			name: "Bathy.Ridges",
			usage: `
              Bathy.Ridges specifies meridional ridges to be added to the
              bathymetry, each as 'height,width,lon,jstart,jend' with
              height and width in the units of depth and degrees, lon the
              center longitude in degrees, and jstart (inclusive) and jend
              (exclusive) the latitude index range.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "LandFrac.File",
			usage: `
              LandFrac.File specifies the path to a NetCDF file containing
              a land fraction field used to mask out land cells. If empty,
              no land fraction mask is applied.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "LandFrac.Var",
			usage: `
              LandFrac.Var specifies the name of the land fraction variable
              in LandFrac.File.`,
			defaultVal: "landfrac",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "LandFrac.XCoord",
			usage: `
              LandFrac.XCoord specifies the name of the x coordinate
              variable in LandFrac.File.`,
			defaultVal: "lon",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "LandFrac.YCoord",
			usage: `
              LandFrac.YCoord specifies the name of the y coordinate
              variable in LandFrac.File.`,
			defaultVal: "lat",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "LandFrac.DepthFill",
			usage: `
              LandFrac.DepthFill specifies the depth value [m] assigned to
              dry cells. It must be smaller than Bathy.MinDepth.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "LandFrac.CutoffFrac",
			usage: `
              LandFrac.CutoffFrac specifies the land fraction above which a
              cell is deemed a land cell. Must be within [0, 1].`,
			defaultVal: 0.5,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "LandFrac.Method",
			usage: `
              LandFrac.Method specifies the regridding method used to map
              the land fraction field onto the model grid; one of
              'bilinear', 'conservative', 'conservative_normed', 'patch',
              'nearest_s2d', or 'nearest_d2s'.`,
			defaultVal: "bilinear",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Title",
			usage: `
              Title specifies the title global attribute written to the
              generated files.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir specifies the directory that the output files are
              written to. Relative output file names are interpreted with
              respect to this directory.`,
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Output.Topog",
			usage: `
              Output.Topog specifies the name of the topog (bathymetry)
              file to be written. If empty, no topog file is written.`,
			defaultVal: "ocean_topog.nc",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Output.CICEGrid",
			usage: `
              Output.CICEGrid specifies the name of the CICE grid file to
              be written. If empty, no CICE grid file is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Output.SCRIP",
			usage: `
              Output.SCRIP specifies the name of the SCRIP grid file to be
              written. If empty, no SCRIP file is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Output.Domain",
			usage: `
              Output.Domain specifies the name of the CESM domain file to
              be written. If empty, no domain file is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Output.Mesh",
			usage: `
              Output.Mesh specifies the name of the ESMF mesh file to be
              written. If empty, no mesh file is written.`,
			defaultVal: "ocean_mesh.nc",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Output.Shapefile",
			usage: `
              Output.Shapefile specifies the base name (without extension)
              of a shapefile of grid cells to be written for inspection in
              GIS programs. If empty, no shapefile is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Output.Plot",
			usage: `
              Output.Plot specifies the name of a PNG depth map to be
              written. If empty, no plot is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Output.Params",
			usage: `
              Output.Params specifies the name of a TOML file recording the
              output paths and the derived runtime parameters for
              case-setup tooling. If empty, no parameter file is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "Output.MOMInput",
			usage: `
              Output.MOMInput specifies the name of a file that the
              MOM_input runtime parameter block is written to. If empty,
              no MOM_input block is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("MOM6BATHY")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(generateCmd)
	Root.AddCommand(inspectCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("mom6bathy: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "mom6bathy",
	Short: "A bathymetry generator for MOM6 grids.",
	Long: `mom6bathy generates idealized bathymetry for MOM6 simple-model grids
and writes the grid description files the CESM coupled-model components
read: the MOM6 topog file, the CICE grid file, the SCRIP grid file, the
CESM domain file, and the ESMF unstructured mesh file.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'MOM6BATHY_var' where 'var' is the name of the variable to be set. Many
configuration variables are additionally allowed to contain environment
variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of mom6bathy.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("mom6bathy v%s\n", mom6bathy.Version)
	},
	DisableAutoGenTag: true,
}

// generateCmd is a command that generates a bathymetry and writes the
// selected output files.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a bathymetry and its grid files",
	Long: `generate builds a bathymetry for the grid specified by the Grid
configuration variables, shapes it as specified by the Bathy variables,
optionally masks out land cells using a land fraction dataset, and writes
the output files selected by the Output variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, err := GridFromConfig(Cfg)
		if err != nil {
			return err
		}
		shape, err := shapeConfig(Cfg)
		if err != nil {
			return err
		}
		landFrac, err := landFracConfig(Cfg)
		if err != nil {
			return err
		}
		output, err := outputConfig(Cfg)
		if err != nil {
			return err
		}
		return Generate(grid, Cfg.GetFloat64("Bathy.MinDepth"), shape, landFrac, output)
	},
	DisableAutoGenTag: true,
}

// inspectCmd is a command that summarizes an existing topog file.
var inspectCmd = &cobra.Command{
	Use:   "inspect [topog file]",
	Short: "Summarize an existing topog file",
	Long: `inspect reads the depth field of an existing MOM6 topog file on the
grid specified by the Grid configuration variables and prints its depth
statistics along with the MOM_input runtime parameters implied by it. The
topog file may be given as an argument or as the Bathy.TopogFile
configuration variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := Cfg.GetString("Bathy.TopogFile")
		if len(args) > 0 {
			path = args[0]
		}
		grid, err := GridFromConfig(Cfg)
		if err != nil {
			return err
		}
		return Inspect(grid, Cfg.GetFloat64("Bathy.MinDepth"), os.ExpandEnv(path), cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}
