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

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// SetSpoon sets an idealized spoon-shaped basin: a constant-depth
// interior at maxDepth that shallows to dedge along the northern boundary
// with an exponential decay of length scale expdecay [m], and to zero
// perturbation at the eastern and western boundaries through a half-sine
// in longitude. radEarth is the Earth radius [m] used to convert angular
// distances to the decay length scale.
func (b *Bathymetry) SetSpoon(maxDepth, dedge, radEarth, expdecay float64) error {
	if err := b.setBasin(maxDepth, dedge, radEarth, expdecay, false); err != nil {
		return err
	}
	b.Log.WithFields(logrus.Fields{
		"max_depth": maxDepth,
		"dedge":     dedge,
	}).Info("mom6bathy: set spoon bathymetry")
	return nil
}

// SetBowl sets an idealized bowl-shaped basin. It is the same profile as
// SetSpoon except that the exponential decay toward dedge is applied from
// both the northern and the southern boundaries, so the basin is pinched
// on both meridional edges instead of one.
func (b *Bathymetry) SetBowl(maxDepth, dedge, radEarth, expdecay float64) error {
	if err := b.setBasin(maxDepth, dedge, radEarth, expdecay, true); err != nil {
		return err
	}
	b.Log.WithFields(logrus.Fields{
		"max_depth": maxDepth,
		"dedge":     dedge,
	}).Info("mom6bathy: set bowl bathymetry")
	return nil
}

func (b *Bathymetry) setBasin(maxDepth, dedge, radEarth, expdecay float64, southDecay bool) error {
	if !isFinite(maxDepth) || !isFinite(dedge) || dedge > maxDepth {
		return fmt.Errorf("mom6bathy: basin depths max %g, edge %g: %w",
			maxDepth, dedge, ErrInvalidParameter)
	}
	if radEarth <= 0 || !isFinite(radEarth) {
		return fmt.Errorf("mom6bathy: earth radius %g: %w", radEarth, ErrInvalidParameter)
	}
	if expdecay <= 0 || !isFinite(expdecay) {
		return fmt.Errorf("mom6bathy: decay length scale %g: %w", expdecay, ErrInvalidParameter)
	}
	var (
		nx, ny   = b.grid.NX(), b.grid.NY()
		tlon     = b.grid.TLon()
		tlat     = b.grid.TLat()
		westLon  = tlon.Get(0, 0)
		southLat = tlat.Get(0, 0)
		lenLon   = b.grid.LenLon()
		lenLat   = b.grid.LenLat()
	)
	// Degrees of latitude to multiples of the decay length scale.
	toDecay := radEarth * math.Pi / (180 * expdecay)
	e := 1 - math.Exp(-0.5*lenLat*toDecay)
	d0 := (maxDepth - dedge) / (e * e)
	depth := sparse.ZerosDense(ny, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			lon, lat := tlon.Get(j, i), tlat.Get(j, i)
			decay := 1 - math.Exp((lat-(southLat+lenLat))*toDecay)
			if southDecay {
				decay *= 1 - math.Exp(-(lat-southLat)*toDecay)
			}
			depth.Set(dedge+d0*math.Sin(math.Pi*(lon-westLon)/lenLon)*decay, j, i)
		}
	}
	b.depth = depth
	return nil
}

// ApplyRidge adds a meridional ridge to an already populated depth field.
// The ridge raises the sea floor by up to height [m] at longitude lon,
// falling off to zero over width/2 degrees on each side, and is applied
// to every row in the half-open latitude index range [ilat[0], ilat[1]).
// The longitude profile interpolates quadratically through the five
// control points (west edge, lon-width/2, lon, lon+width/2, east edge)
// mapped to (0, 0, -height, 0, 0) and is clamped to be non-positive, so
// a ridge can only raise the sea floor, never deepen it.
func (b *Bathymetry) ApplyRidge(height, width, lon float64, ilat [2]int) error {
	if err := b.requireDepth(); err != nil {
		return err
	}
	if height < 0 || !isFinite(height) {
		return fmt.Errorf("mom6bathy: ridge height %g: %w", height, ErrInvalidParameter)
	}
	if width <= 0 || !isFinite(width) {
		return fmt.Errorf("mom6bathy: ridge width %g: %w", width, ErrInvalidParameter)
	}
	ny := b.grid.NY()
	if ilat[0] < 0 || ilat[1] > ny || ilat[0] > ilat[1] {
		return fmt.Errorf("mom6bathy: ridge latitude index range %v on %d rows: %w",
			ilat, ny, ErrInvalidParameter)
	}
	// The profile is built from the first row of cell-center longitudes.
	tlon := b.grid.TLon()
	westEdge := tlon.Get(0, 0)
	eastEdge := tlon.Get(0, b.grid.NX()-1)
	if lon-width/2 <= westEdge || lon+width/2 >= eastEdge {
		return fmt.Errorf("mom6bathy: ridge at %g±%g outside longitude range [%g, %g]: %w",
			lon, width/2, westEdge, eastEdge, ErrInvalidParameter)
	}
	ridgeLon := []float64{westEdge, lon - width/2, lon, lon + width/2, eastEdge}
	ridgeHeight := []float64{0, 0, -height, 0, 0}

	nx := b.grid.NX()
	profile := make([]float64, nx)
	for i := 0; i < nx; i++ {
		h := quadInterp(ridgeLon, ridgeHeight, tlon.Get(0, i))
		if h < 0 {
			profile[i] = h
		}
	}
	for j := ilat[0]; j < ilat[1]; j++ {
		for i := 0; i < nx; i++ {
			b.depth.AddVal(profile[i], j, i)
		}
	}
	b.Log.WithFields(logrus.Fields{
		"height": height,
		"width":  width,
		"lon":    lon,
	}).Info("mom6bathy: applied ridge")
	return nil
}

// quadInterp evaluates a piecewise-quadratic interpolant through the
// points (xs, ys) at x. Within each interval the parabolas through the
// two point triples that overlap the interval are averaged; the first and
// last intervals have only one such triple. xs must be strictly
// increasing; x is clamped to the interpolation range.
func quadInterp(xs, ys []float64, x float64) float64 {
	n := len(xs)
	switch {
	case x <= xs[0]:
		return ys[0]
	case x >= xs[n-1]:
		return ys[n-1]
	}
	k := 0
	for x > xs[k+1] {
		k++
	}
	var sum float64
	var cnt int
	if k >= 1 {
		sum += lagrange3(xs[k-1:k+2], ys[k-1:k+2], x)
		cnt++
	}
	if k+2 < n {
		sum += lagrange3(xs[k:k+3], ys[k:k+3], x)
		cnt++
	}
	return sum / float64(cnt)
}

// lagrange3 evaluates the parabola through three points given as
// length-3 slices.
func lagrange3(xs, ys []float64, x float64) float64 {
	return ys[0]*(x-xs[1])*(x-xs[2])/((xs[0]-xs[1])*(xs[0]-xs[2])) +
		ys[1]*(x-xs[0])*(x-xs[2])/((xs[1]-xs[0])*(xs[1]-xs[2])) +
		ys[2]*(x-xs[0])*(x-xs[1])/((xs[2]-xs[0])*(xs[2]-xs[1]))
}
