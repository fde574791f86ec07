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

import "errors"

// The errors below classify all precondition failures raised by this
// package. They are always returned wrapped with additional context;
// match them with errors.Is.
var (
	// ErrShapeMismatch is returned when a supplied or ingested depth
	// array does not match the grid's (ny, nx) cell-center shape, or
	// when a grid's corner arrays are not one larger than its center
	// arrays in each dimension.
	ErrShapeMismatch = errors.New("mom6bathy: array shape mismatch")

	// ErrMissingField is returned when an expected variable or
	// coordinate is absent from an ingested file.
	ErrMissingField = errors.New("mom6bathy: missing field")

	// ErrInvalidParameter is returned when a parameter is outside its
	// allowed range or set: an unknown regridding method, a fraction
	// outside [0, 1], a fill depth not strictly less than the minimum
	// depth, or a non-angular coordinate unit where degrees are
	// required.
	ErrInvalidParameter = errors.New("mom6bathy: invalid parameter")
)
