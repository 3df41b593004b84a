// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// Tri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    |     ',
//    |       ',
//    |         ',
//    0-----------1 ---- r
//  (0,0)       (1,0)
//
func Tri3(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = 1.0 - r - s
	S[1] = r
	S[2] = s
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1.0, -1.0
	dSdR[1][0], dSdR[1][1] = 1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 1.0
}

// Tri6 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri6
// elements at {r,s} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    5     4,
//    |       ',
//    |         ',
//    0-----3-----1 ---- r
//  (0,0)       (1,0)
//
func Tri6(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	l := 1.0 - r - s
	S[0] = l * (2.0*l - 1.0)
	S[1] = r * (2.0*r - 1.0)
	S[2] = s * (2.0*s - 1.0)
	S[3] = 4.0 * r * l
	S[4] = 4.0 * r * s
	S[5] = 4.0 * s * l
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = 1.0-4.0*l, 1.0-4.0*l
	dSdR[1][0], dSdR[1][1] = 4.0*r-1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 4.0*s-1.0
	dSdR[3][0], dSdR[3][1] = 4.0*(l-r), -4.0*r
	dSdR[4][0], dSdR[4][1] = 4.0*s, 4.0*r
	dSdR[5][0], dSdR[5][1] = -4.0*s, 4.0*(l-s)
}

// Qua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s} natural coordinates. The derivatives are calculated only if derivs==true.
//
//   3-----------2
//   |     s     |
//   |     |     |
//   |     +--r  |
//   |           |
//   |           |
//   0-----------1
//
func Qua4(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	for m := 0; m < 4; m++ {
		rm, sm := qua4NatCoords[0][m], qua4NatCoords[1][m]
		S[m] = (1.0 + r*rm) * (1.0 + s*sm) / 4.0
		if derivs {
			dSdR[m][0] = rm * (1.0 + s*sm) / 4.0
			dSdR[m][1] = sm * (1.0 + r*rm) / 4.0
		}
	}
}

// Qua8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua8
// (serendipity) elements at {r,s} natural coordinates. The derivatives are calculated only if
// derivs==true.
//
//   3-----6-----2
//   |     s     |
//   |     |     |
//   7     +--r  5
//   |           |
//   |           |
//   0-----4-----1
//
func Qua8(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	for m := 0; m < 8; m++ {
		rm, sm := qua8NatCoords[0][m], qua8NatCoords[1][m]
		switch {
		case m < 4:
			S[m] = (1.0 + r*rm) * (1.0 + s*sm) * (r*rm + s*sm - 1.0) / 4.0
			if derivs {
				dSdR[m][0] = rm * (1.0 + s*sm) * (2.0*r*rm + s*sm) / 4.0
				dSdR[m][1] = sm * (1.0 + r*rm) * (r*rm + 2.0*s*sm) / 4.0
			}
		case rm == 0:
			S[m] = (1.0 - r*r) * (1.0 + s*sm) / 2.0
			if derivs {
				dSdR[m][0] = -r * (1.0 + s*sm)
				dSdR[m][1] = sm * (1.0 - r*r) / 2.0
			}
		default:
			S[m] = (1.0 + r*rm) * (1.0 - s*s) / 2.0
			if derivs {
				dSdR[m][0] = rm * (1.0 - s*s) / 2.0
				dSdR[m][1] = -s * (1.0 + r*rm)
			}
		}
	}
}
