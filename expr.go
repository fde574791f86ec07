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

	"github.com/Knetic/govaluate"
	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// SetDepthExpr sets the depth field by evaluating an analytic expression
// once per cell. The expression may use the variables
//
//	lon, lat: the cell-center coordinates,
//	i, j: the zonal and meridional cell indices,
//	nx, ny: the grid dimensions, and
//	min_depth: the minimum-depth threshold,
//
// and the functions sin, cos, tanh, exp, sqrt, abs, min, max, and
// deg2rad. For example,
//
//	"500 + 3000 * (1 - exp(-abs(lat) / 15))"
//
// gives a basin deepening away from the equator.
func (b *Bathymetry) SetDepthExpr(expr string) error {
	expression, err := govaluate.NewEvaluableExpressionWithFunctions(expr, depthExprFunctions())
	if err != nil {
		return fmt.Errorf("mom6bathy: parsing depth expression: %v", err)
	}
	for _, v := range expression.Vars() {
		switch v {
		case "lon", "lat", "i", "j", "nx", "ny", "min_depth":
		default:
			return fmt.Errorf("mom6bathy: unknown variable %q in depth expression: %w",
				v, ErrInvalidParameter)
		}
	}
	var (
		nx, ny = b.grid.NX(), b.grid.NY()
		tlon   = b.grid.TLon()
		tlat   = b.grid.TLat()
	)
	params := map[string]interface{}{
		"nx":        float64(nx),
		"ny":        float64(ny),
		"min_depth": b.minDepth,
	}
	depth := sparse.ZerosDense(ny, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			params["lon"] = tlon.Get(j, i)
			params["lat"] = tlat.Get(j, i)
			params["i"] = float64(i)
			params["j"] = float64(j)
			result, err := expression.Evaluate(params)
			if err != nil {
				return fmt.Errorf("mom6bathy: evaluating depth expression at cell (%d, %d): %v", j, i, err)
			}
			d, ok := result.(float64)
			if !ok {
				return fmt.Errorf("mom6bathy: depth expression returned %T, not a number: %w",
					result, ErrInvalidParameter)
			}
			if !isFinite(d) {
				return fmt.Errorf("mom6bathy: depth expression returned %g at cell (%d, %d): %w",
					d, j, i, ErrInvalidParameter)
			}
			depth.Set(d, j, i)
		}
	}
	b.depth = depth
	b.Log.WithFields(logrus.Fields{
		"expr": expr,
	}).Info("mom6bathy: set bathymetry from expression")
	return nil
}

func depthExprFunctions() map[string]govaluate.ExpressionFunction {
	oneArg := func(name string, f func(float64) float64) govaluate.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("mom6bathy: got %d arguments for function %q, but needs 1", len(args), name)
			}
			return f(args[0].(float64)), nil
		}
	}
	twoArg := func(name string, f func(float64, float64) float64) govaluate.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("mom6bathy: got %d arguments for function %q, but needs 2", len(args), name)
			}
			return f(args[0].(float64), args[1].(float64)), nil
		}
	}
	return map[string]govaluate.ExpressionFunction{
		"sin":     oneArg("sin", math.Sin),
		"cos":     oneArg("cos", math.Cos),
		"tanh":    oneArg("tanh", math.Tanh),
		"exp":     oneArg("exp", math.Exp),
		"sqrt":    oneArg("sqrt", math.Sqrt),
		"abs":     oneArg("abs", math.Abs),
		"deg2rad": oneArg("deg2rad", deg2rad),
		"min":     twoArg("min", math.Min),
		"max":     twoArg("max", math.Max),
	}
}
