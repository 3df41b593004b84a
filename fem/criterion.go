// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// Criterion decides when the Newton-Raphson iterations have converged
type Criterion interface {
	Initialize(r0 []float64, fext float64)                       // sets reference values at the beginning of a step
	Converged(r, Δ, y []float64) (converged bool, ratio float64) // checks convergence after an iteration
}

// NewCriterion returns a criterion by name: "residual" or "displacement"
func NewCriterion(name string, rtol, atol float64) (Criterion, error) {
	switch name {
	case "residual":
		return &ResidualCriterion{RelTol: rtol, AbsTol: atol}, nil
	case "displacement":
		return &DisplacementCriterion{RelTol: rtol, AbsTol: atol}, nil
	}
	return nil, chk.Err("convergence criterion %q is not available", name)
}

// ResidualCriterion checks the norm of the residual of free equations
//
//   converged if |r| / |r_ref| ≤ RelTol  or  |r| / n ≤ AbsTol
//
//   where r_ref is the residual at the beginning of the step, but not smaller than
//   the norm of the external forces
//
type ResidualCriterion struct {
	RelTol float64 // relative tolerance
	AbsTol float64 // absolute tolerance
	ref    float64 // reference norm
}

// Initialize sets the reference norm
func (o *ResidualCriterion) Initialize(r0 []float64, fext float64) {
	o.ref = math.Max(floats.Norm(r0, 2), fext)
}

// Converged checks convergence
func (o *ResidualCriterion) Converged(r, Δ, y []float64) (converged bool, ratio float64) {
	if len(r) == 0 {
		return true, 0
	}
	nrm := floats.Norm(r, 2)
	ratio = 1.0
	if o.ref > 0 {
		ratio = nrm / o.ref
	}
	converged = ratio <= o.RelTol || nrm/float64(len(r)) <= o.AbsTol
	return
}

// DisplacementCriterion checks the norm of the increment relative to the norm of the solution
//
//   converged if |Δ| / |y| ≤ RelTol  or  |Δ| / n ≤ AbsTol
//
type DisplacementCriterion struct {
	RelTol float64 // relative tolerance
	AbsTol float64 // absolute tolerance
}

// Initialize does nothing
func (o *DisplacementCriterion) Initialize(r0 []float64, fext float64) {}

// Converged checks convergence
func (o *DisplacementCriterion) Converged(r, Δ, y []float64) (converged bool, ratio float64) {
	if len(Δ) == 0 {
		return true, 0
	}
	nΔ := floats.Norm(Δ, 2)
	ny := floats.Norm(y, 2)
	ratio = 1.0
	if ny > 0 {
		ratio = nΔ / ny
	}
	converged = ratio <= o.RelTol || nΔ/float64(len(Δ)) <= o.AbsTol
	return
}
