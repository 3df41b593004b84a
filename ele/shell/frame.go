// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/spatial/r3"
)

// frame holds the corotational coordinate system of an element
//
//   e[0] and e[1] span the (mean) plane of the element and e[2] is the normal. c is the
//   centroid of the nodes
//
type frame struct {
	e [3]r3.Vec // base vectors (global components)
	c r3.Vec    // origin
}

// T returns the global-to-local transformation matrix (rows are the base vectors)
func (o frame) T() mat3 {
	return rows(o.e[0], o.e[1], o.e[2])
}

// local returns the local coordinates of points x
func (o frame) local(x []r3.Vec) (l []r3.Vec) {
	l = make([]r3.Vec, len(x))
	T := o.T()
	for m, p := range x {
		l[m] = T.vec(r3.Sub(p, o.c))
	}
	return
}

// calcFrame computes the frame of an element with nodal coordinates x
//
//   triangles:      e[0] is along edge 0→1 and e[2] is normal to the plane of the nodes
//   quadrilaterals: e[2] is normal to both diagonals and e[0] is the projection of the line
//                   connecting the midpoints of edges 3-0 and 1-2
//
func calcFrame(x []r3.Vec) (o frame, err error) {
	n := len(x)
	for _, p := range x {
		o.c = r3.Add(o.c, r3.Scale(1.0/float64(n), p))
	}
	var a r3.Vec
	switch n {
	case 3:
		a = r3.Sub(x[1], x[0])
		o.e[2] = r3.Cross(a, r3.Sub(x[2], x[0]))
	case 4:
		o.e[2] = r3.Cross(r3.Sub(x[2], x[0]), r3.Sub(x[3], x[1]))
		a = r3.Scale(0.5, r3.Sub(r3.Add(x[1], x[2]), r3.Add(x[0], x[3])))
	default:
		return o, chk.Err("cannot compute frame of element with %d nodes", n)
	}
	if o.e[2], err = unit(o.e[2]); err != nil {
		return
	}
	a = r3.Sub(a, r3.Scale(r3.Dot(a, o.e[2]), o.e[2]))
	if o.e[0], err = unit(a); err != nil {
		return
	}
	o.e[1] = r3.Cross(o.e[2], o.e[0])
	return
}

// fitFrame computes the frame of the element in its current configuration x. The in-plane
// axes of calcFrame are rotated by the angle that best fits (least squares) the local
// coordinates to the reference ones l0
func fitFrame(x, l0 []r3.Vec) (o frame, err error) {
	if o, err = calcFrame(x); err != nil {
		return
	}
	var num, den float64
	for m, l := range o.local(x) {
		num += l0[m].X*l.Y - l0[m].Y*l.X
		den += l0[m].X*l.X + l0[m].Y*l.Y
	}
	φ := math.Atan2(num, den)
	c, s := math.Cos(φ), math.Sin(φ)
	o.e[0] = r3.Add(r3.Scale(c, o.e[0]), r3.Scale(s, o.e[1]))
	o.e[1] = r3.Cross(o.e[2], o.e[0])
	return
}

// materialAngle returns the angle between e[0] and the material direction: the projection of the
// global X axis onto the plane, taken as Z × e[2]. Stresses are reported in the material axes
func (o frame) materialAngle() float64 {
	d := r3.Cross(r3.Vec{Z: 1}, o.e[2])
	if r3.Norm2(d) < 1e-12 {
		d = r3.Vec{X: 1}
	} else {
		d = r3.Unit(d)
	}
	α := math.Acos(math.Max(-1, math.Min(1, r3.Dot(o.e[0], d))))
	if α != 0 && r3.Dot(d, o.e[1]) < 0 {
		α = -α
	}
	return α
}

// unit returns a/|a|
func unit(a r3.Vec) (r3.Vec, error) {
	n := r3.Norm(a)
	if n < 1e-14 {
		return a, chk.Err("cannot normalise vector with length %g", n)
	}
	return r3.Scale(1.0/n, a), nil
}
