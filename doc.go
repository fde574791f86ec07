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

// Package mom6bathy synthesizes ocean-floor depth fields for structured
// horizontal ocean model grids and exports the grid, the derived land/ocean
// masks, and the mesh connectivity in the interchange formats consumed by
// the MOM6 ocean model and its coupled companions: the model topography
// file, the CICE sea-ice grid file, the SCRIP regridding description, the
// CESM-style domain file, and the ESMF unstructured mesh file.
//
// A Bathymetry is created on top of a Grid, populated by one of the
// idealized depth generators (flat, spoon, bowl, optionally modified by
// meridional ridges), by a caller-supplied array, by an analytic
// expression, or by reading an existing topography file, and then
// optionally masked against an observed land-fraction dataset. The
// resulting depth field, together with the grid geometry, feeds the
// exporters.
//
// Depths are in meters, positive downward from mean sea level. Cells with
// depth at or below the configured minimum depth are land.
package mom6bathy

// Version gives the version number of this library.
const Version = "1.0.0"
