// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements constitutive models for shell sections
/*
 *   strains and stresses use Voigt vectors with engineering shear:
 *
 *     ε = [εxx, εyy, γxy]    σ = [σxx, σyy, σxy]
 *
 *   D = dσ/dε is stored as a 3x3 matrix
 */
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/yuanzhongqiao/Kratos/inp"
)

// Model defines the interface for (plane-stress) solid models
type Model interface {
	Init(prms inp.Prms) error               // initialises model
	GetPrms() inp.Prms                      // gets (an example) of parameters
	CalcStress(σ, ε []float64) error        // computes stress for given strains
	CalcD(D [][]float64, ε []float64) error // computes tangent modulus D = dσ/dε
	Name() string                           // returns the model name
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// Names returns the names of all available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	return
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}
