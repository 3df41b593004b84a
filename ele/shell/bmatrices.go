// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import "math"

// local dofs per node: {u, v, w, θx, θy, θz}. plate rotations follow the right-hand rule,
// hence the slopes of the normal are βx = θy and βy = -θx
const (
	iu = iota
	iv
	iw
	irx
	iry
	irz
)

// ANDES membrane parameters
const (
	AndesAlpha = 1.5       // drilling coefficient of the basic stiffness
	AndesBeta0 = 4.0 / 3.0 // scale of the higher order stiffness; the energy is multiplied by 3β0/4
)

// membraneDofs are the local dofs of ANDES triangles at each node
var membraneDofs = [3]int{iu, iv, irz}

// andesBetas are the free parameters of the higher order stiffness of the optimal triangle
var andesBetas = [9]float64{1, 2, 1, 0, 1, -1, -1, -1, -2}

// andes adds c times the membrane strain rows [εxx, εyy, γxy] of the ANDES triangle with drilling
// rotations to Bm. The strains are the ones of the basic (constant) part plus the higher order
// (linear, zero mean) part
//  x, y -- local coordinates of the 3 nodes
//  L    -- area coordinates of the point
//  cols -- first column of each node in Bm; {u, v, θz} are @ cols + {iu, iv, irz}
func andes(Bm [][]float64, x, y []float64, L [3]float64, cols [3]int, c float64) {

	// geometry
	x12, x13, x23 := x[0]-x[1], x[0]-x[2], x[1]-x[2]
	y12, y13, y23 := y[0]-y[1], y[0]-y[2], y[1]-y[2]
	x21, x31, x32 := -x12, -x13, -x23
	y21, y31, y32 := -y12, -y13, -y23
	A := 0.5 * (x21*y31 - x31*y21)
	l21 := x21*x21 + y21*y21
	l32 := x32*x32 + y32*y32
	l13 := x13*x13 + y13*y13

	// basic part: Bb = Lᵀ / 2A
	a := AndesAlpha
	Lt := [3][9]float64{
		{y23, 0, a / 6 * y23 * (y13 - y21), y31, 0, a / 6 * y31 * (y21 - y32), y12, 0, a / 6 * y12 * (y32 - y13)},
		{0, x32, a / 6 * x32 * (x31 - x12), 0, x13, a / 6 * x13 * (x12 - x23), 0, x21, a / 6 * x21 * (x23 - x31)},
		{x32, y23, a / 3 * (x31*y13 - x12*y21), x13, y31, a / 3 * (x12*y21 - x23*y32), x21, y12, a / 3 * (x23*y32 - x31*y13)},
	}

	// higher order part: Bh = Te Q Ttu
	b := andesBetas
	f := 2.0 * A / 3.0
	q1 := [3][3]float64{{b[0] / l21, b[1] / l21, b[2] / l21}, {b[3] / l32, b[4] / l32, b[5] / l32}, {b[6] / l13, b[7] / l13, b[8] / l13}}
	q2 := [3][3]float64{{b[8] / l21, b[6] / l21, b[7] / l21}, {b[2] / l32, b[0] / l32, b[1] / l32}, {b[5] / l13, b[3] / l13, b[4] / l13}}
	q3 := [3][3]float64{{b[4] / l21, b[5] / l21, b[3] / l21}, {b[7] / l32, b[8] / l32, b[6] / l32}, {b[1] / l13, b[2] / l13, b[0] / l13}}
	var Q [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Q[i][j] = f * (L[0]*q1[i][j] + L[1]*q2[i][j] + L[2]*q3[i][j])
		}
	}
	ca := 1.0 / (4.0 * A * A)
	Te := [3][3]float64{
		{ca * y23 * y13 * l21, ca * y31 * y21 * l32, ca * y12 * y32 * l13},
		{ca * x23 * x13 * l21, ca * x31 * x21 * l32, ca * x12 * x32 * l13},
		{ca * (y23*x31 + x32*y13) * l21, ca * (y31*x12 + x13*y21) * l32, ca * (y12*x23 + x21*y32) * l13},
	}
	cb := 1.0 / (4.0 * A)
	Ttu := [3][9]float64{
		{cb * x32, cb * y32, 1, cb * x13, cb * y13, 0, cb * x21, cb * y21, 0},
		{cb * x32, cb * y32, 0, cb * x13, cb * y13, 1, cb * x21, cb * y21, 0},
		{cb * x32, cb * y32, 0, cb * x13, cb * y13, 0, cb * x21, cb * y21, 1},
	}
	var TeQ [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				TeQ[i][j] += Te[i][k] * Q[k][j]
			}
		}
	}

	// add
	sb := math.Sqrt(0.75 * AndesBeta0)
	for i := 0; i < 3; i++ {
		for j := 0; j < 9; j++ {
			bh := TeQ[i][0]*Ttu[0][j] + TeQ[i][1]*Ttu[1][j] + TeQ[i][2]*Ttu[2][j]
			col := cols[j/3] + membraneDofs[j%3]
			Bm[i][col] += c * (Lt[i][j]/(2.0*A) + sb*bh)
		}
	}
}

// cst computes the membrane strain rows of linear (constant strain) triangles
//  G -- [nverts][2] derivatives of shape functions w.r.t local x and y
func cst(Bm [][]float64, G [][]float64) {
	for m := range G {
		Bm[0][6*m+iu] = G[m][0]
		Bm[1][6*m+iv] = G[m][1]
		Bm[2][6*m+iu] = G[m][1]
		Bm[2][6*m+iv] = G[m][0]
	}
}

// allman computes the membrane strain rows of quadrilaterals with Allman-type drilling rotations
// and the row of the drilling constraint θz - ω, where ω = ½ (v,x - u,y) is the in-plane rotation
//
//   u = Σ N_m u_m + Σ_k M_k (y_j - y_i) (θz_j - θz_i) / 8
//   v = Σ N_m v_m - Σ_k M_k (x_j - x_i) (θz_j - θz_i) / 8
//
//   where M_k is the quadratic (serendipity) function of mid-side k lying on edge i→j
//
//  S, G -- bilinear functions and derivatives w.r.t local x and y
//  Gh   -- [8][2] derivatives of serendipity functions w.r.t local x and y
func allman(Bm [][]float64, Bd []float64, x [][]float64, S []float64, G, Gh [][]float64) {
	n := len(S)
	ux, uy := make([]float64, 6*n), make([]float64, 6*n)
	vx, vy := make([]float64, 6*n), make([]float64, 6*n)
	for m := 0; m < n; m++ {
		ux[6*m+iu], uy[6*m+iu] = G[m][0], G[m][1]
		vx[6*m+iv], vy[6*m+iv] = G[m][0], G[m][1]
		Bd[6*m+irz] = S[m]
	}
	for k := 0; k < n; k++ {
		i, j := k, (k+1)%n
		cu := (x[1][j] - x[1][i]) / 8.0
		cv := -(x[0][j] - x[0][i]) / 8.0
		gx, gy := Gh[n+k][0], Gh[n+k][1]
		for _, p := range []struct {
			m int
			s float64
		}{{j, 1}, {i, -1}} {
			ux[6*p.m+irz] += p.s * cu * gx
			uy[6*p.m+irz] += p.s * cu * gy
			vx[6*p.m+irz] += p.s * cv * gx
			vy[6*p.m+irz] += p.s * cv * gy
		}
	}
	for c := 0; c < 6*n; c++ {
		Bm[0][c] = ux[c]
		Bm[1][c] = vy[c]
		Bm[2][c] = uy[c] + vx[c]
		Bd[c] -= 0.5 * (vx[c] - uy[c])
	}
}

// mindlinBending computes the curvature rows [κxx, κyy, κxy] with independently interpolated
// rotations (thick kinds)
func mindlinBending(Bb [][]float64, G [][]float64) {
	for m := range G {
		Bb[0][6*m+iry] = G[m][0]
		Bb[1][6*m+irx] = -G[m][1]
		Bb[2][6*m+iry] = G[m][1]
		Bb[2][6*m+irx] = -G[m][0]
	}
}

// dkBending computes the curvature rows of discrete-Kirchhoff plates (DKT or DKQ)
//
//   βx and βy are interpolated with quadratic functions. At mid-side k of edge i→j (length L,
//   direction {C, S}), the tangential slope follows from a cubic w and the normal one is linear:
//
//     βs_k = -3/(2L) (w_j - w_i) - (βs_i + βs_j)/4     βn_k = (βn_i + βn_j)/2
//
//  x  -- [2][nverts] local coordinates
//  Gh -- [2*nverts][2] derivatives of quadratic (tri6/qua8) functions w.r.t local x and y;
//        mid-node k lies on edge k→k+1
func dkBending(Bb [][]float64, x [][]float64, Gh [][]float64) {
	n := len(x[0])
	nu := 6 * n
	bx, by := make([][]float64, 2*n), make([][]float64, 2*n)
	for q := 0; q < 2*n; q++ {
		bx[q], by[q] = make([]float64, nu), make([]float64, nu)
	}
	for m := 0; m < n; m++ {
		bx[m][6*m+iry] = 1
		by[m][6*m+irx] = -1
	}
	for k := 0; k < n; k++ {
		i, j := k, (k+1)%n
		dx, dy := x[0][j]-x[0][i], x[1][j]-x[1][i]
		L := math.Hypot(dx, dy)
		C, S := dx/L, dy/L
		bs, bn := make([]float64, nu), make([]float64, nu)
		bs[6*j+iw] -= 1.5 / L
		bs[6*i+iw] += 1.5 / L
		for _, m := range []int{i, j} {
			for c := 0; c < nu; c++ {
				bs[c] -= 0.25 * (C*bx[m][c] + S*by[m][c])
				bn[c] += 0.5 * (-S*bx[m][c] + C*by[m][c])
			}
		}
		for c := 0; c < nu; c++ {
			bx[n+k][c] = C*bs[c] - S*bn[c]
			by[n+k][c] = S*bs[c] + C*bn[c]
		}
	}
	for c := 0; c < nu; c++ {
		Bb[0][c], Bb[1][c], Bb[2][c] = 0, 0, 0
		for q := 0; q < 2*n; q++ {
			Bb[0][c] += Gh[q][0] * bx[q][c]
			Bb[1][c] += Gh[q][1] * by[q][c]
			Bb[2][c] += Gh[q][1]*bx[q][c] + Gh[q][0]*by[q][c]
		}
	}
}

// addEdgeShear adds c times the shear gap of edge a→b; i.e. the transverse shear strain
// integrated along the edge:
//
//   Γ_ab = w_b - w_a + ½ (β_a + β_b)·(x_b - x_a)
//
func addEdgeShear(row []float64, x [][]float64, a, b int, c float64) {
	sx := x[0][b] - x[0][a]
	sy := x[1][b] - x[1][a]
	row[6*b+iw] += c
	row[6*a+iw] -= c
	for _, m := range []int{a, b} {
		row[6*m+iry] += c * 0.5 * sx
		row[6*m+irx] -= c * 0.5 * sy
	}
}

// dsgShear computes the transverse shear rows [γxz, γyz] of triangles with the discrete shear
// gap method: the gaps of nodes 1 and 2 w.r.t node 0 are interpolated linearly
//  G -- [3][2] derivatives of linear shape functions w.r.t local x and y
func dsgShear(Bs [][]float64, x [][]float64, G [][]float64) {
	for _, m := range []int{1, 2} {
		for α := 0; α < 2; α++ {
			addEdgeShear(Bs[α], x, 0, m, G[m][α])
		}
	}
}

// quaShear computes the transverse shear rows [γxz, γyz] of quadrilaterals using covariant
// shear strains tied at edge midpoints (MITC4)
//  r    -- natural coordinates of integration point
//  dRdx -- [2][2] derivatives of natural coordinates w.r.t local coordinates
func quaShear(Bs [][]float64, x [][]float64, r []float64, dRdx [][]float64) {
	nu := len(Bs[0])
	γξ := make([]float64, nu)
	γη := make([]float64, nu)
	addEdgeShear(γξ, x, 0, 1, (1.0-r[1])/4.0)
	addEdgeShear(γξ, x, 3, 2, (1.0+r[1])/4.0)
	addEdgeShear(γη, x, 0, 3, (1.0-r[0])/4.0)
	addEdgeShear(γη, x, 1, 2, (1.0+r[0])/4.0)
	for α := 0; α < 2; α++ {
		for col := 0; col < nu; col++ {
			Bs[α][col] = dRdx[0][α]*γξ[col] + dRdx[1][α]*γη[col]
		}
	}
}

// dsgStabilisation returns the factor t² / (t² + 0.1 h²) applied to the shear stiffness of DSG
// triangles; h is the longest edge
func dsgStabilisation(t float64, x [][]float64) float64 {
	h := 0.0
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		h = math.Max(h, math.Hypot(x[0][j]-x[0][i], x[1][j]-x[1][i]))
	}
	return t * t / (t*t + 0.1*h*h)
}

// areaCoords returns the area coordinates of point {px, py} w.r.t the triangle {x, y}
func areaCoords(x, y []float64, px, py float64) (L [3]float64) {
	A2 := (x[1]-x[0])*(y[2]-y[0]) - (x[2]-x[0])*(y[1]-y[0])
	L[1] = ((px-x[0])*(y[2]-y[0]) - (x[2]-x[0])*(py-y[0])) / A2
	L[2] = ((x[1]-x[0])*(py-y[0]) - (px-x[0])*(y[1]-y[0])) / A2
	L[0] = 1.0 - L[1] - L[2]
	return
}
