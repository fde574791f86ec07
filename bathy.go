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
	"math"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Bathymetry holds the ocean-floor depth field for a Grid together with
// the minimum-depth threshold that separates ocean from land cells. The
// depth buffer is owned exclusively by the Bathymetry; the exporters read
// it, and only the depth generators and ApplyLandFrac write to it.
type Bathymetry struct {
	grid     Grid
	depth    *sparse.DenseArray
	minDepth float64

	// Recorder, if non-nil, is notified of the output path and the
	// derived grid sizing parameters after each successful ESMF mesh
	// export.
	Recorder Recorder

	Log logrus.FieldLogger
}

// NewBathymetry creates an empty Bathymetry for grid g. The depth field
// must be populated by one of the Set methods before the mask, the
// statistics, or any exporter can be used. Cells with depth at or below
// minDepth are land.
func NewBathymetry(g Grid, minDepth float64) (*Bathymetry, error) {
	if err := ValidateGrid(g); err != nil {
		return nil, err
	}
	if !isFinite(minDepth) {
		return nil, fmt.Errorf("mom6bathy: minimum depth %g: %w", minDepth, ErrInvalidParameter)
	}
	return &Bathymetry{
		grid:     g,
		minDepth: minDepth,
		Log:      logrus.StandardLogger(),
	}, nil
}

// Grid returns the grid this bathymetry is defined on.
func (b *Bathymetry) Grid() Grid { return b.grid }

// Depth returns the depth field [m, positive down], shaped (ny, nx), or
// nil if it has not been populated yet. The returned array is the live
// buffer, not a copy; callers must treat it as read-only.
func (b *Bathymetry) Depth() *sparse.DenseArray { return b.depth }

// MinDepth returns the minimum-depth threshold [m].
func (b *Bathymetry) MinDepth() float64 { return b.minDepth }

// SetMinDepth changes the minimum-depth threshold. The depth field is
// left untouched; the change takes effect the next time the mask is
// derived.
func (b *Bathymetry) SetMinDepth(d float64) error {
	if !isFinite(d) {
		return fmt.Errorf("mom6bathy: minimum depth %g: %w", d, ErrInvalidParameter)
	}
	b.minDepth = d
	return nil
}

// MaxDepth returns the maximum depth [m] of the current depth field.
func (b *Bathymetry) MaxDepth() (float64, error) {
	if err := b.requireDepth(); err != nil {
		return 0, err
	}
	return floats.Max(b.depth.Elements), nil
}

// Tmask derives the ocean/land mask at cell centers: 1 where
// depth > minDepth, 0 elsewhere. The mask is recomputed from the current
// depth field and threshold on every call and is never stored.
func (b *Bathymetry) Tmask() (*sparse.DenseArray, error) {
	if err := b.requireDepth(); err != nil {
		return nil, err
	}
	mask := sparse.ZerosDense(b.grid.NY(), b.grid.NX())
	for i, d := range b.depth.Elements {
		if d > b.minDepth {
			mask.Elements[i] = 1
		}
	}
	return mask, nil
}

// SetFlat sets the depth to the constant d everywhere.
func (b *Bathymetry) SetFlat(d float64) error {
	if !isFinite(d) {
		return fmt.Errorf("mom6bathy: flat depth %g: %w", d, ErrInvalidParameter)
	}
	depth := sparse.ZerosDense(b.grid.NY(), b.grid.NX())
	for i := range depth.Elements {
		depth.Elements[i] = d
	}
	b.depth = depth
	b.Log.WithFields(logrus.Fields{
		"depth": d,
	}).Info("mom6bathy: set flat bathymetry")
	return nil
}

// SetDepth sets the depth field to a copy of the given array, which must
// be shaped (ny, nx).
func (b *Bathymetry) SetDepth(depth *sparse.DenseArray) error {
	if depth == nil {
		return fmt.Errorf("mom6bathy: nil depth array: %w", ErrInvalidParameter)
	}
	s := depth.Shape
	if len(s) != 2 || s[0] != b.grid.NY() || s[1] != b.grid.NX() {
		return fmt.Errorf("mom6bathy: depth array shape %v, want [%d %d]: %w",
			s, b.grid.NY(), b.grid.NX(), ErrShapeMismatch)
	}
	b.depth = depth.Copy()
	return nil
}

// SetDepthFromTopog reads the depth variable from an existing topography
// file, such as one written by WriteTopog, and uses it as the depth
// field. The file's depth array must match the grid shape.
func (b *Bathymetry) SetDepthFromTopog(path string) error {
	depth, err := ReadTopogDepth(path)
	if err != nil {
		return err
	}
	if err := b.SetDepth(depth); err != nil {
		return fmt.Errorf("mom6bathy: depth from topography file %s: %w", path, err)
	}
	b.Log.WithFields(logrus.Fields{
		"file": path,
	}).Info("mom6bathy: set bathymetry from topography file")
	return nil
}

// DepthStats summarizes the depth distribution over ocean cells.
type DepthStats struct {
	Count                int // number of ocean cells
	Min, Max, Mean, Std  float64
	LandCount, CellCount int
}

// DepthStats computes summary statistics of the depth field over the
// cells that are currently ocean (depth > minDepth).
func (b *Bathymetry) DepthStats() (*DepthStats, error) {
	if err := b.requireDepth(); err != nil {
		return nil, err
	}
	var d stats.Stats
	for _, v := range b.depth.Elements {
		if v > b.minDepth {
			d.Update(v)
		}
	}
	out := &DepthStats{
		Count:     d.Count(),
		CellCount: len(b.depth.Elements),
	}
	out.LandCount = out.CellCount - out.Count
	if out.Count == 0 {
		return out, nil
	}
	out.Min = d.Min()
	out.Max = d.Max()
	out.Mean = d.Mean()
	if out.Count > 1 {
		out.Std = d.SampleStandardDeviation()
	}
	return out, nil
}

func (b *Bathymetry) requireDepth() error {
	if b.depth == nil {
		return fmt.Errorf("mom6bathy: depth field has not been set: %w", ErrMissingField)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
