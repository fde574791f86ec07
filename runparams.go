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
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Recorder receives the paths of exported files together with derived
// model configuration parameters, for use in setting up a coupled model
// case around the generated grid. The exporters call it after each
// successful write.
type Recorder interface {
	// RecordTopog receives the absolute path of a written topography
	// file.
	RecordTopog(path string)

	// RecordCICEGrid receives the absolute path of a written CICE grid
	// file.
	RecordCICEGrid(path string)

	// RecordMesh receives the mesh path and grid sizing parameters
	// after an ESMF mesh export.
	RecordMesh(p MeshParams)
}

// MeshParams carries the output path and the grid sizing parameters that
// downstream case-setup tooling derives runtime configuration from.
type MeshParams struct {
	Path             string
	NX, NY           int
	TripolarN        bool
	CyclicX, CyclicY bool
	// MaxDepth and MinDepth are the depth extrema [m] of the
	// bathymetry the mesh was exported with.
	MaxDepth, MinDepth float64
}

// XMLChanges are the case XML variable overrides implied by a generated
// mesh. The ocean and sea-ice components are assumed to run on the same
// grid.
type XMLChanges struct {
	OCNDomainMesh string `toml:"OCN_DOMAIN_MESH"`
	ICEDomainMesh string `toml:"ICE_DOMAIN_MESH"`
	MaskMesh      string `toml:"MASK_MESH"`
	OCNNX         int    `toml:"OCN_NX"`
	OCNNY         int    `toml:"OCN_NY"`
	ICENX         int    `toml:"ICE_NX"`
	ICENY         int    `toml:"ICE_NY"`
}

// MOM6Params are the grid-specific MOM_input parameter overrides for
// running MOM6 on a generated grid. Values of string kind that MOM_input
// expects quoted carry their quotes.
type MOM6Params struct {
	InputDir                 string  `toml:"INPUTDIR"`
	TripolarN                bool    `toml:"TRIPOLAR_N"`
	NIGlobal                 int     `toml:"NIGLOBAL"`
	NJGlobal                 int     `toml:"NJGLOBAL"`
	GridConfig               string  `toml:"GRID_CONFIG"`
	TopoConfig               string  `toml:"TOPO_CONFIG"`
	MaximumDepth             string  `toml:"MAXIMUM_DEPTH"`
	MinimumDepth             string  `toml:"MINIMUM_DEPTH"`
	ReentrantX               bool    `toml:"REENTRANT_X"`
	ReentrantY               bool    `toml:"REENTRANT_Y"`
	DT                       float64 `toml:"DT"`
	NK                       int     `toml:"NK"`
	CoordConfig              string  `toml:"COORD_CONFIG"`
	RegriddingCoordinateMode string  `toml:"REGRIDDING_COORDINATE_MODE"`
	ALECoordinateConfig      string  `toml:"ALE_COORDINATE_CONFIG"`
	TSConfig                 string  `toml:"TS_CONFIG"`
	TRef                     float64 `toml:"T_REF"`
	FitSalinity              bool    `toml:"FIT_SALINITY"`
}

// CICEParams are the grid-specific CICE namelist parameter overrides.
type CICEParams struct {
	GridFormat string `toml:"grid_format"`
	GridFile   string `toml:"grid_file"`
	KmtFile    string `toml:"kmt_file"`
}

// ParamFile is a Recorder that accumulates the recorded paths and
// parameters and serializes them as a TOML document for case-setup
// tooling to consume. The zero value is ready to use.
type ParamFile struct {
	TopogPath  string
	MeshPath   string
	XMLChanges XMLChanges
	MOM6       MOM6Params
	CICE       CICEParams
}

// RecordTopog implements Recorder.
func (p *ParamFile) RecordTopog(path string) {
	p.TopogPath = path
}

// RecordCICEGrid implements Recorder. The kmt mask is stored in the grid
// file itself, so both entries point at the same file.
func (p *ParamFile) RecordCICEGrid(path string) {
	p.CICE = CICEParams{
		GridFormat: "nc",
		GridFile:   path,
		KmtFile:    path,
	}
}

// RecordMesh implements Recorder.
func (p *ParamFile) RecordMesh(m MeshParams) {
	p.MeshPath = m.Path
	p.XMLChanges = XMLChanges{
		OCNDomainMesh: m.Path,
		ICEDomainMesh: m.Path,
		MaskMesh:      m.Path,
		OCNNX:         m.NX,
		OCNNY:         m.NY,
		ICENX:         m.NX,
		ICENY:         m.NY,
	}
	p.MOM6 = MOM6Params{
		InputDir:                 "./INPUT",
		TripolarN:                m.TripolarN,
		NIGlobal:                 m.NX,
		NJGlobal:                 m.NY,
		GridConfig:               "mosaic",
		TopoConfig:               `"file"`,
		MaximumDepth:             formatDepth(m.MaxDepth),
		MinimumDepth:             formatDepth(m.MinDepth),
		ReentrantX:               m.CyclicX,
		ReentrantY:               m.CyclicY,
		DT:                       1800,
		NK:                       20,
		CoordConfig:              `"none"`,
		RegriddingCoordinateMode: `"Z*"`,
		ALECoordinateConfig:      `"UNIFORM"`,
		TSConfig:                 `"fit"`,
		TRef:                     5,
		FitSalinity:              true,
	}
}

// Write serializes the recorded sections as TOML. Sections that were
// never recorded are omitted.
func (p *ParamFile) Write(w io.Writer) error {
	doc := make(map[string]interface{})
	if p.TopogPath != "" {
		doc["topog_path"] = p.TopogPath
	}
	if p.MeshPath != "" {
		doc["mesh_path"] = p.MeshPath
		doc["ocnice_xmlchanges"] = p.XMLChanges
		doc["mom6_params"] = p.MOM6
	}
	if p.CICE.GridFile != "" {
		doc["cice_params"] = p.CICE
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("mom6bathy: encoding parameter file: %v", err)
	}
	return nil
}

// WriteFile writes the recorded sections as a TOML file at path.
func (p *ParamFile) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mom6bathy: creating parameter file %s: %v", path, err)
	}
	if err := p.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteRuntimeParams writes the MOM_input runtime parameter block
// implied by the grid and bathymetry to w, with placeholders for the
// file paths that are only known at case-setup time.
func (b *Bathymetry) WriteRuntimeParams(w io.Writer) error {
	maxDepth, err := b.MaxDepth()
	if err != nil {
		return err
	}
	g := b.grid
	for _, kv := range [][2]string{
		{"INPUTDIR", `"./INPUT/"`},
		{"TRIPOLAR_N", mom6Bool(g.TripolarN())},
		{"NIGLOBAL", strconv.Itoa(g.NX())},
		{"NJGLOBAL", strconv.Itoa(g.NY())},
		{"GRID_CONFIG", `"mosaic"`},
		{"TOPO_CONFIG", `"file"`},
		{"MAXIMUM_DEPTH", formatDepth(maxDepth)},
		{"MINIMUM_DEPTH", formatDepth(b.minDepth)},
		{"REENTRANT_X", mom6Bool(g.CyclicX())},
		{"GRID_FILE", "???"},
		{"TOPO_FILE", "???"},
	} {
		if _, err := fmt.Fprintf(w, "%s = %s\n", kv[0], kv[1]); err != nil {
			return fmt.Errorf("mom6bathy: writing runtime parameters: %v", err)
		}
	}
	return nil
}

// mom6Bool renders a boolean the way MOM_input spells it.
func mom6Bool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func formatDepth(d float64) string {
	return strconv.FormatFloat(d, 'g', -1, 64)
}

// absPath resolves path against the working directory, falling back to
// the path as given if resolution fails.
func absPath(path string) string {
	if a, err := filepath.Abs(path); err == nil {
		return a
	}
	return path
}
