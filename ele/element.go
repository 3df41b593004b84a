// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements finite elements and conditions
package ele

import "gonum.org/v1/gonum/mat"

// Vertex gives elements read access to nodal data owned by the mesh model
type Vertex interface {
	Id() int                              // returns the node Id
	X0() []float64                        // reference coordinates
	Value(key string, step int) []float64 // buffered nodal values; e.g. "POINT_LOAD" @ step 0
}

// Condition defines what all conditions (entities without stiffness) must implement
type Condition interface {

	// information and initialisation
	Id() int                        // returns the cell Id
	SetEqs(eqs [][]int) (err error) // set equations
	Check() (err error)             // checks definition data; e.g. properties and geometry

	// called for each iteration
	AddToRhs(fb []float64, sol *Solution) (err error) // adds -R to global residual vector fb
}

// Element defines what all elements must implement
type Element interface {
	Condition
	AddToKb(Kb *mat.Dense, sol *Solution, firstIt bool) (err error) // adds element K to global Jacobian matrix Kb
}

// WithIntVars defines elements with internal variables; e.g. corotational frames
type WithIntVars interface {
	InitIvs(sol *Solution) (err error) // sets initial internal variables for given values in sol
	Update(sol *Solution) (err error)  // updates internal variables for the new solution
	BackupIvs() (err error)            // create copy of internal variables
	RestoreIvs() (err error)           // restore internal variables from copies
}

// CanRecoverStress defines elements that can compute stresses at integration points
type CanRecoverStress interface {
	Nip() int                                                // number of integration points
	Stress(surf Surface, idx int) (σ [][]float64, err error) // symmetric 3x3 stress tensor @ surface and ip
	VonMises(idx int) (svm float64, err error)               // equivalent stress @ ip
}

// CanOutputIps defines elements that can output integration points' values
type CanOutputIps interface {
	Id() int                                        // returns the cell Id
	OutIpCoords() [][]float64                       // coordinates of integration points
	OutIpKeys() []string                            // integration points' keys; e.g. "sxx_top", "svm"
	OutIpVals(M *IpsMap, sol *Solution) (err error) // integration points' values corresponding to keys
}

// Surface selects a through-thickness surface of shells
type Surface int

// surfaces
const (
	Top Surface = iota
	Middle
	Bottom
)

// String returns the name of surface
func (o Surface) String() string {
	switch o {
	case Top:
		return "top"
	case Middle:
		return "mid"
	case Bottom:
		return "bot"
	}
	return "unknown"
}

// Surfaces holds all surfaces in output order
var Surfaces = []Surface{Top, Middle, Bottom}
