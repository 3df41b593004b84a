// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"github.com/cpmech/gosl/utl"
	"github.com/yuanzhongqiao/Kratos/shp"
)

// sample holds the strain rows of a sampling point of the local formulation. Absent rows are nil
type sample struct {
	Bm [][]float64 // [3][nu] membrane strains [εxx, εyy, γxy]
	Bb [][]float64 // [3][nu] curvatures [κxx, κyy, κxy]
	Bs [][]float64 // [2][nu] transverse shear strains [γxz, γyz]
	Bd []float64   // [nu] drilling constraint θz - ω
	W  float64     // area associated with sample
}

// area coordinates of mid-edge points of triangles; k is on edge k→k+1
var midEdges = [][3]float64{{0.5, 0.5, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}}

// sub-triangles of quadrilaterals; each diagonal splits the quadrilateral twice
var subTris = [][3]int{{0, 1, 2}, {1, 2, 3}, {2, 3, 0}, {3, 0, 1}}

// thinTri sets the samples of thin triangles: ANDES membrane and DKT plate, both sampled at
// mid-edges. Outputs at integration points are extrapolated linearly from mid-edges
func (o *Shell) thinTri() (err error) {
	if err = o.Basic.CalcAtIp(o.Xl, []float64{1.0 / 3.0, 1.0 / 3.0}, true); err != nil {
		return
	}
	A := o.Basic.J / 2.0
	for _, L := range midEdges {
		r := []float64{L[1], L[2]}
		s := &sample{Bm: utl.Alloc(3, o.Nu), Bb: utl.Alloc(3, o.Nu), W: A / 3.0}
		andes(s.Bm, o.Xl[0], o.Xl[1], L, [3]int{0, 6, 12}, 1)
		o.Hi.Func(o.Hi.S, o.Hi.DSdR, r, true)
		o.Hi.CalcDerivs(o.Basic.DRdx)
		dkBending(s.Bb, o.Xl, o.Hi.G)
		o.Ks = append(o.Ks, s)
	}
	o.Os = o.Ks
	for idx, ip := range o.Ips {
		L := [3]float64{1.0 - ip.R - ip.S, ip.R, ip.S}
		for k := 0; k < 3; k++ {
			o.Oc[idx] = append(o.Oc[idx], L[k]+L[(k+1)%3]-L[(k+2)%3])
		}
	}
	return
}

// thickTri sets the sample of thick triangles: constant strain membrane, Mindlin plate with DSG
// shear and a small drilling stiffness
func (o *Shell) thickTri() (err error) {
	if err = o.Basic.CalcAtIp(o.Xl, []float64{1.0 / 3.0, 1.0 / 3.0}, true); err != nil {
		return
	}
	A := o.Basic.J / 2.0
	s := &sample{Bm: utl.Alloc(3, o.Nu), Bb: utl.Alloc(3, o.Nu), Bs: utl.Alloc(2, o.Nu), W: A}
	cst(s.Bm, o.Basic.G)
	mindlinBending(s.Bb, o.Basic.G)
	dsgShear(s.Bs, o.Xl, o.Basic.G)
	o.Fs = dsgStabilisation(o.Thick, o.Xl)
	o.drill = DrillPenalty * o.Gs * o.Thick * A
	o.Ks = []*sample{s}
	o.Os = o.Ks
	for idx := range o.Ips {
		o.Oc[idx] = []float64{1}
	}
	return
}

// thinQuad sets the samples of thin quadrilaterals: DKQ plate at Gauss points and membrane given
// by the average of the ANDES triangles of both diagonals
func (o *Shell) thinQuad() (err error) {
	ips, err := shp.GetIps("qua4", 4)
	if err != nil {
		return
	}
	for idx, ip := range ips {
		r := []float64{ip.R, ip.S}
		if err = o.Basic.CalcAtIp(o.Xl, r, true); err != nil {
			return
		}
		s := &sample{Bb: utl.Alloc(3, o.Nu), W: ip.W * o.Basic.J}
		o.Hi.Func(o.Hi.S, o.Hi.DSdR, r, true)
		o.Hi.CalcDerivs(o.Basic.DRdx)
		dkBending(s.Bb, o.Xl, o.Hi.G)
		o.Ks = append(o.Ks, s)

		// output
		px, py := 0.0, 0.0
		for m := 0; m < 4; m++ {
			px += o.Basic.S[m] * o.Xl[0][m]
			py += o.Basic.S[m] * o.Xl[1][m]
		}
		so := &sample{Bm: utl.Alloc(3, o.Nu), Bb: s.Bb, W: s.W}
		for _, t := range subTris {
			xt, yt, cols := o.subTri(t)
			andes(so.Bm, xt, yt, areaCoords(xt, yt, px, py), cols, 0.25)
		}
		o.Os = append(o.Os, so)
		o.Oc[idx] = make([]float64, 4)
		o.Oc[idx][idx] = 1
	}

	// membrane
	for _, t := range subTris {
		xt, yt, cols := o.subTri(t)
		A := 0.5 * ((xt[1]-xt[0])*(yt[2]-yt[0]) - (xt[2]-xt[0])*(yt[1]-yt[0]))
		for _, L := range midEdges {
			s := &sample{Bm: utl.Alloc(3, o.Nu), W: 0.5 * A / 3.0}
			andes(s.Bm, xt, yt, L, cols, 1)
			o.Ks = append(o.Ks, s)
		}
	}
	return
}

// thickQuad sets the samples of thick quadrilaterals: Allman membrane, Mindlin plate with MITC4
// shear and the drilling constraint at the centre
func (o *Shell) thickQuad() (err error) {
	ips, err := shp.GetIps("qua4", 4)
	if err != nil {
		return
	}
	for idx, ip := range ips {
		r := []float64{ip.R, ip.S}
		if err = o.Basic.CalcAtIp(o.Xl, r, true); err != nil {
			return
		}
		s := &sample{Bm: utl.Alloc(3, o.Nu), Bb: utl.Alloc(3, o.Nu), Bs: utl.Alloc(2, o.Nu), W: ip.W * o.Basic.J}
		o.Hi.Func(o.Hi.S, o.Hi.DSdR, r, true)
		o.Hi.CalcDerivs(o.Basic.DRdx)
		allman(s.Bm, make([]float64, o.Nu), o.Xl, o.Basic.S, o.Basic.G, o.Hi.G)
		mindlinBending(s.Bb, o.Basic.G)
		quaShear(s.Bs, o.Xl, r, o.Basic.DRdx)
		o.Ks = append(o.Ks, s)
		o.Os = append(o.Os, s)
		o.Oc[idx] = make([]float64, 4)
		o.Oc[idx][idx] = 1
	}

	// drilling
	r := []float64{0, 0}
	if err = o.Basic.CalcAtIp(o.Xl, r, true); err != nil {
		return
	}
	o.Hi.Func(o.Hi.S, o.Hi.DSdR, r, true)
	o.Hi.CalcDerivs(o.Basic.DRdx)
	d := &sample{Bd: make([]float64, o.Nu), W: 4.0 * o.Basic.J}
	allman(utl.Alloc(3, o.Nu), d.Bd, o.Xl, o.Basic.S, o.Basic.G, o.Hi.G)
	o.Ks = append(o.Ks, d)
	return
}

// subTri returns the local coordinates of sub-triangle t and the columns of its {u, v, θz} dofs
func (o *Shell) subTri(t [3]int) (xt, yt []float64, cols [3]int) {
	xt, yt = make([]float64, 3), make([]float64, 3)
	for a, m := range t {
		xt[a], yt[a] = o.Xl[0][m], o.Xl[1][m]
		cols[a] = 6 * m
	}
	return
}
