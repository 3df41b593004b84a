// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// MaxCond is the largest condition number accepted by direct solvers
var MaxCond = 1e15

// LinSol solves linear systems K x = r. Calls must not overlap
type LinSol interface {
	Solve(x *mat.VecDense, K *mat.Dense, r *mat.VecDense) (err error) // factorises K and solves for x
}

// GetSolver returns a new linear solver by name; e.g. "lu"
func GetSolver(name string) (LinSol, error) {
	alloc, ok := lsAllocators[name]
	if !ok {
		return nil, chk.Err("cannot find linear solver named %q", name)
	}
	return alloc(), nil
}

// LinSolLU implements a dense direct solver based on the LU factorisation with partial pivoting
type LinSolLU struct {
	lu mat.LU
}

// Solve factorises K and solves for x
func (o *LinSolLU) Solve(x *mat.VecDense, K *mat.Dense, r *mat.VecDense) (err error) {
	o.lu.Factorize(K)
	cond := o.lu.Cond()
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond > MaxCond {
		return fmt.Errorf("LU factorisation failed: condition number = %g: %w", cond, ErrSingular)
	}
	if err = o.lu.SolveVecTo(x, false, r); err != nil {
		return fmt.Errorf("LU solve failed: %v: %w", err, ErrSingular)
	}
	return
}

// lsAllocators holds all available linear solvers
var lsAllocators = map[string]func() LinSol{
	"lu": func() LinSol { return new(LinSolLU) },
}
