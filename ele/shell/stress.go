// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/yuanzhongqiao/Kratos/ele"
)

// Nip returns the number of integration points
func (o *Shell) Nip() int {
	switch {
	case o.Nverts == 4:
		return 4
	case o.Kind.Thick():
		return 1
	}
	return 3
}

// Strains returns the generalised strains @ integration point idx (local frame)
//  εm -- membrane strains [εxx, εyy, γxy]
//  κ  -- curvatures [κxx, κyy, κxy]
//  γ  -- transverse shear strains [γxz, γyz]; zero for thin kinds
func (o *Shell) Strains(idx int) (εm, κ, γ []float64, err error) {
	if !o.ok {
		if err = o.init(); err != nil {
			return
		}
	}
	if idx < 0 || idx >= len(o.Ips) {
		err = chk.Err("shell %d: integration point index %d is out of range [0,%d)", o.Cid, idx, len(o.Ips))
		return
	}
	εm, κ, γ = make([]float64, 3), make([]float64, 3), make([]float64, 2)
	for k, s := range o.Os {
		c := o.Oc[idx][k]
		if c == 0 {
			continue
		}
		sm, sb, ss := o.sampleStrains(s)
		for i := 0; i < 3; i++ {
			εm[i] += c * sm[i]
			κ[i] += c * sb[i]
		}
		γ[0] += c * ss[0]
		γ[1] += c * ss[1]
	}
	return
}

// SurfaceStrains returns [εxx, εyy, γxy] @ surface in material axes; i.e. εm + z κ with
// z = t/2, 0 or -t/2
func (o *Shell) SurfaceStrains(surf ele.Surface, idx int) (ε []float64, err error) {
	εm, κ, _, err := o.Strains(idx)
	if err != nil {
		return
	}
	return o.toMaterial(o.surface(surf, εm, κ), 0.5), nil
}

// Stress returns the symmetric 3x3 Cauchy stress tensor @ surface and integration point in
// material axes. The material x axis is the projection of the global X axis onto the element
//
//   in-plane components vary linearly through the thickness. transverse shear of thick kinds
//   follows a parabolic profile: zero at top and bottom and 1.5 times the mean value at middle
//
func (o *Shell) Stress(surf ele.Surface, idx int) (σ [][]float64, err error) {
	εm, κ, γ, err := o.Strains(idx)
	if err != nil {
		return
	}
	return o.stress(surf, εm, κ, γ)
}

// VonMises returns the von Mises equivalent stress @ integration point idx. The value is the
// largest one among the top, middle and bottom surfaces at each output sample, interpolated
// like the stresses
func (o *Shell) VonMises(idx int) (svm float64, err error) {
	if _, _, _, err = o.Strains(idx); err != nil {
		return
	}
	for k, s := range o.Os {
		c := o.Oc[idx][k]
		if c == 0 {
			continue
		}
		εm, κ, γ := o.sampleStrains(s)
		smax := 0.0
		for _, surf := range ele.Surfaces {
			σ, e := o.stress(surf, εm, κ, γ)
			if e != nil {
				return 0, e
			}
			smax = math.Max(smax, CalcVonMises(σ))
		}
		svm += c * smax
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// sampleStrains computes the generalised strains @ output sample s (local frame)
func (o *Shell) sampleStrains(s *sample) (εm, κ, γ []float64) {
	εm, κ, γ = make([]float64, 3), make([]float64, 3), make([]float64, 2)
	for j := 0; j < o.Nu; j++ {
		d := o.Dl[j]
		if d == 0 {
			continue
		}
		for i := 0; i < 3; i++ {
			if s.Bm != nil {
				εm[i] += s.Bm[i][j] * d
			}
			if s.Bb != nil {
				κ[i] += s.Bb[i][j] * d
			}
		}
		if s.Bs != nil {
			γ[0] += s.Bs[0][j] * d
			γ[1] += s.Bs[1][j] * d
		}
	}
	return
}

// surface returns εm + z κ @ surface
func (o *Shell) surface(surf ele.Surface, εm, κ []float64) (ε []float64) {
	z := 0.0
	switch surf {
	case ele.Top:
		z = o.Thick / 2.0
	case ele.Bottom:
		z = -o.Thick / 2.0
	}
	ε = make([]float64, 3)
	for i := 0; i < 3; i++ {
		ε[i] = εm[i] + z*κ[i]
	}
	return
}

// stress computes the stress tensor in material axes from generalised strains (local frame)
func (o *Shell) stress(surf ele.Surface, εm, κ, γ []float64) (σ [][]float64, err error) {
	s := make([]float64, 3)
	if err = o.Law.CalcStress(s, o.surface(surf, εm, κ)); err != nil {
		return
	}
	s = o.toMaterial(s, 1)
	σ = utl.Alloc(3, 3)
	σ[0][0], σ[1][1] = s[0], s[1]
	σ[0][1], σ[1][0] = s[2], s[2]
	if surf == ele.Middle && o.Kind.Thick() {
		// peak parabolic shear; rotated by -α as in the Kratos shell output
		c := 1.5 * ShearFactor * o.Gs * o.Fs
		cα, sα := math.Cos(o.α), math.Sin(o.α)
		τx := c * (cα*γ[0] - sα*γ[1])
		τy := c * (sα*γ[0] + cα*γ[1])
		σ[0][2], σ[2][0] = τx, τx
		σ[1][2], σ[2][1] = τy, τy
	}
	return
}

// toMaterial rotates the in-plane components v = [xx, yy, xy] to material axes. h is 1 for
// stresses and 0.5 for strains with engineering shear
func (o *Shell) toMaterial(v []float64, h float64) []float64 {
	c, s := math.Cos(o.α), math.Sin(o.α)
	xy := h * v[2]
	return []float64{
		v[0]*c*c + v[1]*s*s + 2*xy*c*s,
		v[0]*s*s + v[1]*c*c - 2*xy*c*s,
		((v[1]-v[0])*c*s + xy*(c*c-s*s)) / h,
	}
}

// CalcVonMises computes the von Mises equivalent of a symmetric 3x3 stress tensor
func CalcVonMises(σ [][]float64) float64 {
	sx, sy, sz := σ[0][0], σ[1][1], σ[2][2]
	txy, txz, tyz := σ[0][1], σ[0][2], σ[1][2]
	v := sx*sx + sy*sy + sz*sz - sx*sy - sy*sz - sz*sx + 3.0*(txy*txy+txz*txz+tyz*tyz)
	return math.Sqrt(math.Max(v, 0))
}

// output ///////////////////////////////////////////////////////////////////////////////////////

// OutIpCoords returns the reference coordinates of integration points
func (o *Shell) OutIpCoords() (C [][]float64) {
	if !o.ok {
		if err := o.init(); err != nil {
			return
		}
	}
	C = utl.Alloc(len(o.Ips), 3)
	for idx := range o.Ips {
		for m := 0; m < o.Nverts; m++ {
			C[idx][0] += o.Sh[idx][m] * o.X[m].X
			C[idx][1] += o.Sh[idx][m] * o.X[m].Y
			C[idx][2] += o.Sh[idx][m] * o.X[m].Z
		}
	}
	return
}

// OutIpKeys returns the integration points' keys
func (o *Shell) OutIpKeys() (keys []string) {
	for _, surf := range ele.Surfaces {
		for _, key := range []string{"exx", "eyy", "exy", "sxx", "syy", "sxy"} {
			keys = append(keys, io.Sf("%s_%v", key, surf))
		}
	}
	if o.Kind.Thick() {
		keys = append(keys, "sxz_mid", "syz_mid")
	}
	return append(keys, "svm")
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *Shell) OutIpVals(M *ele.IpsMap, sol *ele.Solution) (err error) {
	nip := o.Nip()
	for idx := 0; idx < nip; idx++ {
		for _, surf := range ele.Surfaces {
			ε, e := o.SurfaceStrains(surf, idx)
			if e != nil {
				return e
			}
			σ, e := o.Stress(surf, idx)
			if e != nil {
				return e
			}
			M.Set(io.Sf("exx_%v", surf), idx, nip, ε[0])
			M.Set(io.Sf("eyy_%v", surf), idx, nip, ε[1])
			M.Set(io.Sf("exy_%v", surf), idx, nip, ε[2])
			M.Set(io.Sf("sxx_%v", surf), idx, nip, σ[0][0])
			M.Set(io.Sf("syy_%v", surf), idx, nip, σ[1][1])
			M.Set(io.Sf("sxy_%v", surf), idx, nip, σ[0][1])
			if surf == ele.Middle && o.Kind.Thick() {
				M.Set("sxz_mid", idx, nip, σ[0][2])
				M.Set("syz_mid", idx, nip, σ[1][2])
			}
		}
		svm, e := o.VonMises(idx)
		if e != nil {
			return e
		}
		M.Set("svm", idx, nip, svm)
	}
	return
}
