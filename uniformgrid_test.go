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
	"errors"
	"math"
	"testing"
)

func TestUniformGridCoordinates(t *testing.T) {
	g := testGrid(t) // 4 x 3 cells over [0, 360] x [-30, 0]
	if g.NX() != 4 || g.NY() != 3 {
		t.Fatalf("size: %d x %d", g.NY(), g.NX())
	}
	if g.AxisUnits() != "degrees" {
		t.Errorf("axis units: %s", g.AxisUnits())
	}
	if g.LenLon() != 360 || g.LenLat() != 30 {
		t.Errorf("extent: %g x %g", g.LenLon(), g.LenLat())
	}
	if g.CyclicX() || g.CyclicY() || g.TripolarN() {
		t.Error("bounded grid should not be cyclic or tripolar")
	}

	// Corners span the domain exactly.
	if v := g.QLon().Get(0, 0); v != 0 {
		t.Errorf("west corner longitude: %g", v)
	}
	if v := g.QLon().Get(0, 4); v != 360 {
		t.Errorf("east corner longitude: %g", v)
	}
	if v := g.QLat().Get(0, 0); v != -30 {
		t.Errorf("south corner latitude: %g", v)
	}
	if v := g.QLat().Get(3, 0); v != 0 {
		t.Errorf("north corner latitude: %g", v)
	}

	// Centers are midway between corners.
	if v := g.TLon().Get(0, 0); v != 45 {
		t.Errorf("first center longitude: %g", v)
	}
	if v := g.TLon().Get(2, 3); v != 315 {
		t.Errorf("last center longitude: %g", v)
	}
	if v := g.TLat().Get(0, 0); v != -25 {
		t.Errorf("first center latitude: %g", v)
	}
	if v := g.TLat().Get(2, 0); v != -5 {
		t.Errorf("last center latitude: %g", v)
	}

	for _, v := range g.Angle().Elements {
		if v != 0 {
			t.Fatalf("angle %g != 0", v)
		}
	}
	if err := ValidateGrid(g); err != nil {
		t.Error(err)
	}
}

func TestUniformGridGeometry(t *testing.T) {
	g := testGrid(t)

	// Cell areas sum to the area of the spherical band.
	want := EarthRadius * EarthRadius * 2 * math.Pi *
		(math.Sin(0) - math.Sin(deg2rad(-30)))
	if got := g.TArea().Sum(); different(got, want, testTolerance) {
		t.Errorf("total area: %g != %g", got, want)
	}

	// Within a row all areas are equal; rows nearer the equator are
	// larger.
	for j := 0; j < 3; j++ {
		for i := 1; i < 4; i++ {
			if g.TArea().Get(j, i) != g.TArea().Get(j, 0) {
				t.Errorf("row %d areas differ: %g != %g",
					j, g.TArea().Get(j, i), g.TArea().Get(j, 0))
			}
		}
	}
	if g.TArea().Get(2, 0) <= g.TArea().Get(0, 0) {
		t.Error("areas should grow toward the equator")
	}

	// Northern edge width shrinks with the cosine of the edge
	// latitude; eastern edge height is constant.
	wantDx := EarthRadius * math.Cos(deg2rad(-20)) * deg2rad(90)
	if got := g.DxCv().Get(0, 0); different(got, wantDx, testTolerance) {
		t.Errorf("northern edge width: %g != %g", got, wantDx)
	}
	wantDy := EarthRadius * deg2rad(10)
	for _, v := range g.DyCu().Elements {
		if different(v, wantDy, testTolerance) {
			t.Fatalf("eastern edge height: %g != %g", v, wantDy)
		}
	}
}

func TestUniformGridValidation(t *testing.T) {
	cases := []struct {
		name                       string
		nx, ny                     int
		lon0, lenLon, lat0, lenLat float64
		cyclicX                    bool
	}{
		{"zero cells", 0, 3, 0, 360, -30, 30, false},
		{"negative rows", 4, -1, 0, 360, -30, 30, false},
		{"zero zonal extent", 4, 3, 0, 0, -30, 30, false},
		{"over-wide zonal extent", 4, 3, 0, 400, -30, 30, false},
		{"zero meridional extent", 4, 3, 0, 360, -30, 0, false},
		{"south of the pole", 4, 3, 0, 360, -100, 30, false},
		{"north of the pole", 4, 3, 0, 360, 70, 30, false},
		{"cyclic but not global", 4, 3, 0, 180, -30, 30, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewUniformGrid(c.nx, c.ny, c.lon0, c.lenLon, c.lat0, c.lenLat, c.cyclicX)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("%v", err)
			}
		})
	}

	g, err := NewUniformGrid(4, 3, 0, 360, -30, 30, true)
	if err != nil {
		t.Fatal(err)
	}
	if !g.CyclicX() {
		t.Error("grid should be zonally reentrant")
	}
}
