// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the solution data @ nodes.
//
//  y = { ux uy uz rx ry rz | ux uy uz rx ry rz | ... } (ny x 1)
//
//  rotations are total rotation vectors obtained by adding up increments
//
type Solution struct {
	Y  []float64 // DOFs (solution variables); e.g. y = {u, r}
	ΔY []float64 // total increment within step (for nonlinear solver)
}

// NewSolution allocates a new solution structure
func NewSolution(ny int) *Solution {
	return &Solution{Y: make([]float64, ny), ΔY: make([]float64, ny)}
}

// ResetIncrements clears ΔY; e.g. at the beginning of a new step
func (o *Solution) ResetIncrements() {
	for i := 0; i < len(o.ΔY); i++ {
		o.ΔY[i] = 0
	}
}

// GetCopy returns a deep copy of this structure
func (o *Solution) GetCopy() *Solution {
	c := NewSolution(len(o.Y))
	copy(c.Y, o.Y)
	copy(c.ΔY, o.ΔY)
	return c
}
