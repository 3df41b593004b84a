// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions and reference values
package ana

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ShellSection computes the rigidities of a homogeneous linear elastic shell section
//
//   membrane:  N = A ε     A = E t / (1 - ν²) [1 ν 0; ν 1 0; 0 0 (1-ν)/2]
//   bending:   M = B κ     B = t² / 12 A
//   shear:     Q = S γ     S = κs G t
//   drilling:  m = Cd ω    Cd = G t
//
type ShellSection struct {

	// input
	E     float64 // Young's modulus
	Nu    float64 // Poisson's coefficient
	Thick float64 // thickness
	Kappa float64 // shear correction factor

	// derived
	G  float64     // shear modulus
	A  [][]float64 // [3][3] membrane rigidity
	B  [][]float64 // [3][3] bending rigidity
	S  float64     // transverse shear rigidity
	Cd float64     // drilling rigidity
}

// Init initialises structure and computes rigidities
func (o *ShellSection) Init(E, nu, thick, kappa float64) {
	if thick <= 0 || E <= 0 || nu <= -1 || nu >= 0.5 {
		chk.Panic("invalid shell section: E=%g, ν=%g, t=%g", E, nu, thick)
	}
	o.E, o.Nu, o.Thick, o.Kappa = E, nu, thick, kappa
	o.G = E / (2.0 * (1.0 + nu))
	c := E * thick / (1.0 - nu*nu)
	o.A = [][]float64{
		{c, c * nu, 0},
		{c * nu, c, 0},
		{0, 0, c * (1.0 - nu) / 2.0},
	}
	t2 := thick * thick / 12.0
	o.B = make([][]float64, 3)
	for i := 0; i < 3; i++ {
		o.B[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			o.B[i][j] = t2 * o.A[i][j]
		}
	}
	o.S = kappa * o.G * thick
	o.Cd = o.G * thick
}

// String returns a summary of rigidities
func (o *ShellSection) String() string {
	l := io.Sf("E = %g, ν = %g, t = %g, κs = %g\n", o.E, o.Nu, o.Thick, o.Kappa)
	l += io.Sf("membrane A11 = %g, A12 = %g, A33 = %g\n", o.A[0][0], o.A[0][1], o.A[2][2])
	l += io.Sf("bending  B11 = %g, B12 = %g, B33 = %g\n", o.B[0][0], o.B[0][1], o.B[2][2])
	l += io.Sf("shear    S = %g, drilling Cd = %g", o.S, o.Cd)
	return l
}
