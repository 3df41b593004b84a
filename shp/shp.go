// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines for flat (2D) shell elements
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// constants
const (
	MINDET = 1.0e-14 // minimum determinant allowed for dxdR
)

// ShpFunc is a shape function which computes:
//  S[i] and dSdR[i][j] @ natural coordinate r=(ξ,η)
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string      // name; e.g. "tri3", "qua8"
	BasicType string      // geometry of basic element; e.g. "tri3" => "tri3", "qua8" => "qua4"
	Nverts    int         // number of vertices in cell; e.g. 6
	NatCoords [][]float64 // natural coordinates [2][Nverts]
	EdgeVerts [][]int     // local vertices on edges [nedges][2]. the first vertex gives the edge direction
	Func      ShpFunc     // shape/derivs function callback function

	// geometry: for seamless integration
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][2] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][2] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [2][2] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [2][2] derivatives of natural coordinates w.r.t real coordinates
}

// Get returns a new copy of a shape structure
func Get(geoType string) (o *Shape, err error) {
	fcn, ok := factory[geoType]
	if !ok {
		return nil, chk.Err("cannot find shape type == %q", geoType)
	}
	return fcn(), nil
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[2][nverts] -- coordinates matrix of solid element
//   r[2]         -- natural coordinates
//   derivs       -- also compute derivatives
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, r []float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, r, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	o.J = o.DxdR[0][0]*o.DxdR[1][1] - o.DxdR[0][1]*o.DxdR[1][0]
	if o.J < MINDET {
		return chk.Err("inverse of dxdR failed: det(dxdR) = %g is invalid (%s)", o.J, o.Type)
	}
	o.DRdx[0][0] = o.DxdR[1][1] / o.J
	o.DRdx[0][1] = -o.DxdR[0][1] / o.J
	o.DRdx[1][0] = -o.DxdR[1][0] / o.J
	o.DRdx[1][1] = o.DxdR[0][0] / o.J

	// G == dSdx := dSdR * dRdx  =>  dS^m/dR_i := sum_i dS^m/dR_i * dR_i/dx_j
	o.CalcDerivs(o.DRdx)
	return
}

// CalcDerivs computes G == dSdx from DSdR and a given dRdx; e.g. taken from the basic shape
func (o *Shape) CalcDerivs(dRdx [][]float64) {
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < 2; j++ {
			o.G[m][j] = o.DSdR[m][0]*dRdx[0][j] + o.DSdR[m][1]*dRdx[1][j]
		}
	}
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// factory holds all shape allocators
var factory = map[string]func() *Shape{
	"tri3": func() *Shape { return newShape("tri3", "tri3", tri3NatCoords, triEdges, Tri3) },
	"tri6": func() *Shape { return newShape("tri6", "tri3", tri6NatCoords, triEdges, Tri6) },
	"qua4": func() *Shape { return newShape("qua4", "qua4", qua4NatCoords, quaEdges, Qua4) },
	"qua8": func() *Shape { return newShape("qua8", "qua4", qua8NatCoords, quaEdges, Qua8) },
}

// newShape allocates a shape structure
func newShape(name, basic string, natcoords [][]float64, edges [][]int, fcn ShpFunc) (o *Shape) {
	o = new(Shape)
	o.Type = name
	o.BasicType = basic
	o.Nverts = len(natcoords[0])
	o.NatCoords = natcoords
	o.EdgeVerts = edges
	o.Func = fcn
	o.S = make([]float64, o.Nverts)
	o.G = utl.Alloc(o.Nverts, 2)
	o.DSdR = utl.Alloc(o.Nverts, 2)
	o.DxdR = utl.Alloc(2, 2)
	o.DRdx = utl.Alloc(2, 2)
	return
}

var (
	triEdges = [][]int{{0, 1}, {1, 2}, {2, 0}}
	quaEdges = [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}

	tri3NatCoords = [][]float64{
		{0, 1, 0},
		{0, 0, 1},
	}
	tri6NatCoords = [][]float64{
		{0, 1, 0, 0.5, 0.5, 0},
		{0, 0, 1, 0, 0.5, 0.5},
	}
	qua4NatCoords = [][]float64{
		{-1, 1, 1, -1},
		{-1, -1, 1, 1},
	}
	qua8NatCoords = [][]float64{
		{-1, 1, 1, -1, 0, 1, 0, -1},
		{-1, -1, 1, 1, -1, 0, 1, 0},
	}
)
