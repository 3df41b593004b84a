// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/yuanzhongqiao/Kratos/inp"
)

// LinElastPstress implements isotropic linear elasticity under plane-stress conditions
type LinElastPstress struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson's coefficient
	G  float64 // shear modulus (derived)
}

// add model to factory
func init() {
	allocators["lin-elast-pstress"] = func() Model { return new(LinElastPstress) }
}

// Name returns the model name
func (o LinElastPstress) Name() string { return "lin-elast-pstress" }

// Init initialises model
func (o *LinElastPstress) Init(prms inp.Prms) (err error) {
	o.E, o.Nu = 0, 0
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		}
	}
	if o.E <= 0 {
		return chk.Err("Young's modulus must be positive. E=%g is invalid", o.E)
	}
	if o.Nu <= -1 || o.Nu >= 0.5 {
		return chk.Err("Poisson's coefficient must be in (-1, 0.5). nu=%g is invalid", o.Nu)
	}
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	return
}

// GetPrms gets (an example) of parameters
func (o LinElastPstress) GetPrms() inp.Prms {
	return []*inp.Prm{
		&inp.Prm{N: "E", V: 100e3},
		&inp.Prm{N: "nu", V: 0.3},
	}
}

// CalcStress computes σ = D ε
func (o LinElastPstress) CalcStress(σ, ε []float64) (err error) {
	c := o.E / (1.0 - o.Nu*o.Nu)
	σ[0] = c * (ε[0] + o.Nu*ε[1])
	σ[1] = c * (o.Nu*ε[0] + ε[1])
	σ[2] = o.G * ε[2]
	return
}

// CalcD computes D = dσ/dε. It does not depend on ε
func (o LinElastPstress) CalcD(D [][]float64, ε []float64) (err error) {
	c := o.E / (1.0 - o.Nu*o.Nu)
	D[0][0], D[0][1], D[0][2] = c, c*o.Nu, 0
	D[1][0], D[1][1], D[1][2] = c*o.Nu, c, 0
	D[2][0], D[2][1], D[2][2] = 0, 0, o.G
	return
}
