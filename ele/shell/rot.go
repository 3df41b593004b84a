// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// mat3 is a 3x3 matrix stored by rows
type mat3 [3][3]float64

// ident3 is the identity matrix
var ident3 = mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// rows returns the matrix with rows given by a, b and c
func rows(a, b, c r3.Vec) mat3 {
	return mat3{{a.X, a.Y, a.Z}, {b.X, b.Y, b.Z}, {c.X, c.Y, c.Z}}
}

// skew returns the skew-symmetric matrix such that skew(v) w = v × w
func skew(v r3.Vec) mat3 {
	return mat3{
		{0, -v.Z, v.Y},
		{v.Z, 0, -v.X},
		{-v.Y, v.X, 0},
	}
}

func (a mat3) mul(b mat3) (c mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return
}

func (a mat3) add(b mat3) (c mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[i][j] + b[i][j]
		}
	}
	return
}

func (a mat3) scale(s float64) (c mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = s * a[i][j]
		}
	}
	return
}

func (a mat3) tr() (c mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[j][i]
		}
	}
	return
}

func (a mat3) trace() float64 {
	return a[0][0] + a[1][1] + a[2][2]
}

// vec returns a v
func (a mat3) vec(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z,
		Y: a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z,
		Z: a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z,
	}
}

// expm returns the rotation matrix exp(skew(θ)) using Rodrigues' formula
func expm(θ r3.Vec) mat3 {
	t := r3.Norm(θ)
	var c1, c2 float64 // sin(t)/t and (1-cos(t))/t²
	if t < 1e-4 {
		t2 := t * t
		c1 = 1.0 - t2/6.0 + t2*t2/120.0
		c2 = 0.5 - t2/24.0 + t2*t2/720.0
	} else {
		s := math.Sin(t / 2.0)
		c1 = math.Sin(t) / t
		c2 = 2.0 * s * s / (t * t)
	}
	K := skew(θ)
	return ident3.add(K.scale(c1)).add(K.mul(K).scale(c2))
}

// quaternion returns the unit quaternion {w, x, y, z} of the rotation matrix R, with w ≥ 0.
// The largest diagonal term selects the formula
func quaternion(R mat3) (w float64, v r3.Vec) {
	t := R.trace()
	switch {
	case t > 0:
		s := 2.0 * math.Sqrt(t+1.0)
		w = s / 4.0
		v = r3.Vec{X: (R[2][1] - R[1][2]) / s, Y: (R[0][2] - R[2][0]) / s, Z: (R[1][0] - R[0][1]) / s}
	case R[0][0] > R[1][1] && R[0][0] > R[2][2]:
		s := 2.0 * math.Sqrt(1.0+R[0][0]-R[1][1]-R[2][2])
		w = (R[2][1] - R[1][2]) / s
		v = r3.Vec{X: s / 4.0, Y: (R[0][1] + R[1][0]) / s, Z: (R[0][2] + R[2][0]) / s}
	case R[1][1] > R[2][2]:
		s := 2.0 * math.Sqrt(1.0+R[1][1]-R[0][0]-R[2][2])
		w = (R[0][2] - R[2][0]) / s
		v = r3.Vec{X: (R[0][1] + R[1][0]) / s, Y: s / 4.0, Z: (R[1][2] + R[2][1]) / s}
	default:
		s := 2.0 * math.Sqrt(1.0+R[2][2]-R[0][0]-R[1][1])
		w = (R[1][0] - R[0][1]) / s
		v = r3.Vec{X: (R[0][2] + R[2][0]) / s, Y: (R[1][2] + R[2][1]) / s, Z: s / 4.0}
	}
	if w < 0 {
		w, v = -w, r3.Scale(-1, v)
	}
	return
}

// logm returns the rotation vector θ such that R = exp(skew(θ)); the angle is in [0, π].
//
//   with q = {cos(t/2), sin(t/2) n}, t/2 is computed with asin(|v|) below π/2 and with
//   acos(w) above it; each branch is used where it is well conditioned
//
func logm(R mat3) r3.Vec {
	w, v := quaternion(R)
	s := r3.Norm(v) // sin(t/2)
	if s == 0 {
		return r3.Vec{}
	}
	if s < w {
		return r3.Scale(2.0*math.Asin(s)/s, v)
	}
	return r3.Scale(2.0*math.Acos(w)/s, v)
}

// hmat returns the Jacobian H = ∂θ/∂ω of the rotation vector θ w.r.t. spins ω (spatial)
//
//   H = I - ½ Θ + η Θ²   with  Θ = skew(θ)  and  η = (1 - ½ t cot(t/2)) / t²
//
func hmat(θ r3.Vec) mat3 {
	t := r3.Norm(θ)
	var η float64
	if t < 0.05 {
		t2 := t * t
		η = 1.0/12.0 + t2/720.0 + t2*t2/30240.0 + t2*t2*t2/1209600.0
	} else {
		η = (1.0 - 0.5*t/math.Tan(0.5*t)) / (t * t)
	}
	K := skew(θ)
	return ident3.add(K.scale(-0.5)).add(K.mul(K).scale(η))
}
