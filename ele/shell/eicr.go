// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// spinLever computes G[3][6*nverts] relating increments of local nodal displacements to the
// spin of the frame. The spin is the least-squares fit of the nodal translations
//
//   G_m = M⁻¹ S_mᵀ   with   S_m = -skew(x_m)   and   M = Σ S_mᵀ S_m
//
//  x -- current local coordinates
func spinLever(x []r3.Vec) (G [][]float64, err error) {
	n := len(x)
	M := mat.NewDense(3, 3, nil)
	for _, p := range x {
		S := skew(p)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				M.Set(i, j, M.At(i, j)+S[0][i]*S[0][j]+S[1][i]*S[1][j]+S[2][i]*S[2][j])
			}
		}
	}
	var Mi mat.Dense
	if err = Mi.Inverse(M); err != nil {
		return nil, chk.Err("cannot compute spin lever: nodes are collinear")
	}
	G = utl.Alloc(3, 6*n)
	for m, p := range x {
		St := skew(p) // S_mᵀ = skew(x_m)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				for k := 0; k < 3; k++ {
					G[i][6*m+j] += Mi.At(i, k) * St[k][j]
				}
			}
		}
	}
	return
}

// projector computes P = Pt - S G, which removes rigid body motions from local increments
//
//   Pt averages out the translations and S[6*nverts][3] maps a spin of the frame to nodal
//   increments: translations -skew(x_m) ω and rotations ω
//
func projector(x []r3.Vec, G [][]float64) (P [][]float64) {
	n := len(x)
	nu := 6 * n
	P = utl.Alloc(nu, nu)
	a, b := float64(n-1)/float64(n), -1.0/float64(n)
	for m := 0; m < n; m++ {
		for k := 0; k < n; k++ {
			c := b
			if m == k {
				c = a
			}
			for i := 0; i < 3; i++ {
				P[6*m+i][6*k+i] = c
			}
		}
		for i := 3; i < 6; i++ {
			P[6*m+i][6*m+i] = 1
		}
	}
	for m, p := range x {
		S := skew(p).scale(-1)
		for i := 0; i < 3; i++ {
			for j := 0; j < nu; j++ {
				for k := 0; k < 3; k++ {
					P[6*m+i][j] -= S[i][k] * G[k][j]
				}
				P[6*m+3+i][j] -= G[i][j]
			}
		}
	}
	return
}

// matTvec returns Aᵀ v
func matTvec(A [][]float64, v []float64) (w []float64) {
	w = make([]float64, len(A[0]))
	for i, row := range A {
		if v[i] == 0 {
			continue
		}
		for j, a := range row {
			w[j] += a * v[i]
		}
	}
	return
}

// rotateBlocks computes w = Tᵀ v for each 3-block of v (local to global) or w = T v if fwd
func rotateBlocks(w, v []float64, T mat3, fwd bool) {
	for b := 0; b < len(v)/3; b++ {
		for i := 0; i < 3; i++ {
			w[3*b+i] = 0
			for k := 0; k < 3; k++ {
				if fwd {
					w[3*b+i] += T[i][k] * v[3*b+k]
				} else {
					w[3*b+i] += T[k][i] * v[3*b+k]
				}
			}
		}
	}
}
