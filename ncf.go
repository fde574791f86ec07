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
	"os"
	"time"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// readNCF reads variable Var from a NetCDF file into a dense array,
// converting from whatever numeric type the file stores. It returns
// ErrMissingField if the variable is not in the file.
func readNCF(f *cdf.File, Var string) (*sparse.DenseArray, error) {
	dims := f.Header.Lengths(Var)
	if len(dims) == 0 {
		return nil, fmt.Errorf("mom6bathy: variable %s: %w", Var, ErrMissingField)
	}
	r := f.Reader(Var, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("mom6bathy: reading variable %s: %v", Var, err)
	}
	out := sparse.ZerosDense(dims...)
	switch dat := buf.(type) {
	case []float64:
		copy(out.Elements, dat)
	case []float32:
		for i, v := range dat {
			out.Elements[i] = float64(v)
		}
	case []int32:
		for i, v := range dat {
			out.Elements[i] = float64(v)
		}
	case []int16:
		for i, v := range dat {
			out.Elements[i] = float64(v)
		}
	case []uint8:
		for i, v := range dat {
			out.Elements[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("mom6bathy: variable %s: unsupported type %T", Var, buf)
	}
	return out, nil
}

// writeNCF writes data to variable Var, which must already be defined in
// the file header with dimension lengths matching the data length.
func writeNCF(f *cdf.File, Var string, data interface{}) error {
	var n int
	switch d := data.(type) {
	case []float64:
		n = len(d)
	case []float32:
		n = len(d)
	case []int32:
		n = len(d)
	case []int16:
		n = len(d)
	case []uint8:
		n = len(d)
	default:
		return fmt.Errorf("mom6bathy: variable %s: unsupported type %T", Var, data)
	}
	dims := f.Header.Lengths(Var)
	dimTotal := 1
	for _, d := range dims {
		dimTotal *= d
	}
	if dimTotal != n {
		return fmt.Errorf("mom6bathy: variable %s: data length (%d) doesn't match dimensions (%d)",
			Var, n, dimTotal)
	}
	w := f.Writer(Var, make([]int, len(dims)), dims)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("mom6bathy: writing variable %s: %v", Var, err)
	}
	return nil
}

// createNCF checks the assembled header, creates the file at path, writes
// every variable through write, and syncs the record count. write is
// called with the open file and should call writeNCF once per variable.
func createNCF(path string, h *cdf.Header, write func(f *cdf.File) error) error {
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("mom6bathy: creating %s: %v", path, err)
	}
	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mom6bathy: creating %s: %v", path, err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("mom6bathy: creating %s: %v", path, err)
	}
	if err := write(f); err != nil {
		return err
	}
	if err := cdf.UpdateNumRecs(ff); err != nil {
		return fmt.Errorf("mom6bathy: finalizing %s: %v", path, err)
	}
	return nil
}

// openNCF opens a NetCDF file for reading and hands it to read. The file
// is closed when read returns.
func openNCF(path string, read func(f *cdf.File) error) error {
	ff, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("mom6bathy: opening %s: %v", path, err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		return fmt.Errorf("mom6bathy: opening %s: %v", path, err)
	}
	return read(f)
}

// toFloat32 converts a dense array to a flat float32 slice in row-major
// order for single-precision NetCDF variables.
func toFloat32(a *sparse.DenseArray) []float32 {
	out := make([]float32, len(a.Elements))
	for i, v := range a.Elements {
		out[i] = float32(v)
	}
	return out
}

// toInt32 converts a dense array to a flat int32 slice in row-major order
// for integer NetCDF variables such as masks.
func toInt32(a *sparse.DenseArray) []int32 {
	out := make([]int32, len(a.Elements))
	for i, v := range a.Elements {
		out[i] = int32(v)
	}
	return out
}

// dateCreated is the timestamp format used in exported file metadata.
func dateCreated() string {
	return time.Now().Format(time.RFC3339)
}
