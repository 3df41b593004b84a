// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shell implements corotational flat shell elements
package shell

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/yuanzhongqiao/Kratos/ele"
	"github.com/yuanzhongqiao/Kratos/mdl/solid"
	"github.com/yuanzhongqiao/Kratos/shp"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// constants
const (
	ShearFactor  = 5.0 / 6.0 // shear correction factor of thick kinds
	DrillFactor  = 1.0       // drilling stiffness of quadrilaterals; multiplies the shear modulus
	DrillPenalty = 1.0e-6    // drilling stiffness of thick triangles; multiplies G t A
)

// Shell implements a corotational flat shell element with 3 or 4 nodes
//
//   The element is linear in its own (corotational) frame, which follows the nodes. Nodal
//   rotations are accumulated multiplicatively and the deformational values are measured
//   w.r.t the reference frame. Rigid motions are filtered out by the projector P.
//
//   local dofs per node: {u, v, w, θx, θy, θz}
//
type Shell struct {

	// basic data
	Cid    int             // cell/element id
	Kind   ele.Kind        // formulation
	Verts  []ele.Vertex    // vertices
	Prop   *ele.Properties // properties
	Nverts int             // number of vertices
	Nu     int             // total number of unknowns == 6 * Nverts

	// parameters
	Thick float64     // thickness
	Rho   float64     // density
	Grav  r3.Vec      // volume acceleration
	Law   solid.Model // constitutive law
	D     [][]float64 // [3][3] plane-stress modulus
	Gs    float64     // transverse shear modulus
	Fs    float64     // shear stabilisation factor; 1 except for thick triangles

	// geometry
	Basic *shp.Shape   // linear/bilinear shape functions
	Hi    *shp.Shape   // quadratic shape functions (discrete-Kirchhoff plates and Allman membranes)
	Ips   []shp.Ipoint // integration points (output and body forces)
	X     []r3.Vec     // reference coordinates
	Fr0   frame        // reference frame
	L0    []r3.Vec     // reference local coordinates
	Xl    [][]float64  // [2][nverts] in-plane reference local coordinates
	Sh    [][]float64  // [nip][nverts] shape functions @ ips
	Wt    []float64    // [nip] integration weights times Jacobian
	α     float64      // angle between e[0] and the material axis

	// local formulation
	Ks    []*sample   // stiffness samples
	Os    []*sample   // output samples
	Oc    [][]float64 // [nip][len(Os)] coefficients of output samples @ ips
	Kl    [][]float64 // [nu][nu] local stiffness matrix
	drill float64     // diagonal drilling stiffness
	ok    bool        // geometry and Kl are ready

	// corotational state
	θold []r3.Vec  // total nodal rotations at last update
	Rn   []mat3    // nodal rotation matrices
	Fr   frame     // current frame
	Xc   []r3.Vec  // current local coordinates
	Dl   []float64 // [nu] local deformational displacements and rotations

	// backup of corotational state
	bθold []r3.Vec
	bRn   []mat3
	bFr   frame
	bXc   []r3.Vec
	bDl   []float64

	// vectors and matrices
	Umap []int       // assembly map (location array/element equations)
	fl   []float64   // [nu] local forces: Kl Dl
	fh   []float64   // [nu] local forces w.r.t spins: Hᵀ fl
	fp   []float64   // [nu] projected local forces: Pᵀ fh
	fg   []float64   // [nu] global internal forces
	Hn   []mat3      // Jacobians of deformational rotations
	G    [][]float64 // [3][nu] spin lever
	P    [][]float64 // [nu][nu] projector
	K    [][]float64 // [nu][nu] global tangent
}

// register element
func init() {
	for _, kind := range []ele.Kind{ele.ThinTri, ele.ThickTri, ele.ThinQuad, ele.ThickQuad} {
		k := kind
		ele.SetAllocator(k, func(id int, verts []ele.Vertex, prop *ele.Properties) ele.Element {
			return New(k, id, verts, prop)
		})
	}
}

// New returns a new shell element. Geometry and properties are validated by Check
func New(kind ele.Kind, id int, verts []ele.Vertex, prop *ele.Properties) (o *Shell) {
	o = new(Shell)
	o.Cid = id
	o.Kind = kind
	o.Verts = verts
	o.Prop = prop
	o.Nverts = len(verts)
	o.Nu = 6 * o.Nverts
	o.θold = make([]r3.Vec, o.Nverts)
	o.Rn = make([]mat3, o.Nverts)
	o.Hn = make([]mat3, o.Nverts)
	for m := 0; m < o.Nverts; m++ {
		o.Rn[m] = ident3
	}
	o.Dl = make([]float64, o.Nu)
	o.fl = make([]float64, o.Nu)
	o.fh = make([]float64, o.Nu)
	o.fp = make([]float64, o.Nu)
	o.fg = make([]float64, o.Nu)
	o.K = utl.Alloc(o.Nu, o.Nu)
	return
}

// Id returns the cell Id
func (o *Shell) Id() int { return o.Cid }

// SetEqs sets equations
func (o *Shell) SetEqs(eqs [][]int) (err error) {
	if len(eqs) != o.Nverts {
		return chk.Err("shell %d: number of equations' groups must be %d. %d is invalid", o.Cid, o.Nverts, len(eqs))
	}
	for m, veqs := range eqs {
		if len(veqs) != 6 {
			return chk.Err("shell %d: vertex %d must have 6 equations. %d is invalid", o.Cid, m, len(veqs))
		}
	}
	o.Umap = ele.BuildUmap(eqs)
	return
}

// Check checks properties and geometry, computing the local stiffness matrix
func (o *Shell) Check() (err error) {
	if o.Prop == nil {
		return fmt.Errorf("shell %d: properties are not set: %w", o.Cid, ele.ErrMissingProperty)
	}
	if o.Prop.Law == nil {
		return fmt.Errorf("shell %d: properties %d: %w", o.Cid, o.Prop.Id, ele.ErrMissingLaw)
	}
	t, found := o.Prop.GetValue(ele.THICKNESS)
	if !found || t <= 0 {
		return fmt.Errorf("shell %d: THICKNESS must be given and positive: %w", o.Cid, ele.ErrMissingProperty)
	}
	o.ok = false
	return o.init()
}

// InitIvs sets the initial corotational state for the nodal rotations in sol
func (o *Shell) InitIvs(sol *ele.Solution) (err error) {
	for m := 0; m < o.Nverts; m++ {
		o.θold[m] = o.vec(sol.Y, m, irx)
		o.Rn[m] = expm(o.θold[m])
	}
	return o.UpdateFrame(sol)
}

// Update updates the corotational state for the new solution
func (o *Shell) Update(sol *ele.Solution) (err error) {
	return o.UpdateFrame(sol)
}

// BackupIvs creates copy of internal variables
func (o *Shell) BackupIvs() (err error) {
	o.bθold = append(o.bθold[:0], o.θold...)
	o.bRn = append(o.bRn[:0], o.Rn...)
	o.bXc = append(o.bXc[:0], o.Xc...)
	o.bDl = append(o.bDl[:0], o.Dl...)
	o.bFr = o.Fr
	return
}

// RestoreIvs restores internal variables from copies
func (o *Shell) RestoreIvs() (err error) {
	if len(o.bθold) != o.Nverts {
		return chk.Err("shell %d: internal variables have not been backed up", o.Cid)
	}
	copy(o.θold, o.bθold)
	copy(o.Rn, o.bRn)
	o.Xc = append(o.Xc[:0], o.bXc...)
	copy(o.Dl, o.bDl)
	o.Fr = o.bFr
	return
}

// UpdateFrame updates nodal rotations, the corotational frame and the local deformational
// values for the current solution. Rotations in sol are the sums of spin increments; thus
// calling it again with the same solution has no effect
//
//   u_d = x_l - X_l        θ_d = log(T Rn T0ᵀ)
//
func (o *Shell) UpdateFrame(sol *ele.Solution) (err error) {

	// geometry
	if !o.ok {
		if err = o.init(); err != nil {
			return
		}
	}

	// current coordinates and nodal rotations: Rn_new = exp(Δθ) Rn_old
	x := make([]r3.Vec, o.Nverts)
	for m := 0; m < o.Nverts; m++ {
		x[m] = r3.Add(o.X[m], o.vec(sol.Y, m, iu))
		θ := o.vec(sol.Y, m, irx)
		if Δθ := r3.Sub(θ, o.θold[m]); Δθ != (r3.Vec{}) {
			o.Rn[m] = expm(Δθ).mul(o.Rn[m])
			o.θold[m] = θ
		}
	}

	// frame
	o.Fr, err = fitFrame(x, o.L0)
	if err != nil {
		return fmt.Errorf("shell %d: %v: %w", o.Cid, err, ele.ErrDegenerate)
	}
	o.Xc = o.Fr.local(x)

	// deformational values
	T, T0t := o.Fr.T(), o.Fr0.T().tr()
	for m := 0; m < o.Nverts; m++ {
		d := r3.Sub(o.Xc[m], o.L0[m])
		θ := logm(T.mul(o.Rn[m]).mul(T0t))
		o.Dl[6*m+iu], o.Dl[6*m+iv], o.Dl[6*m+iw] = d.X, d.Y, d.Z
		o.Dl[6*m+irx], o.Dl[6*m+iry], o.Dl[6*m+irz] = θ.X, θ.Y, θ.Z
	}
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *Shell) AddToRhs(fb []float64, sol *ele.Solution) (err error) {

	// internal forces
	if err = o.calcForces(); err != nil {
		return
	}
	for i, I := range o.Umap {
		fb[I] -= o.fg[i]
	}

	// body forces
	if o.Rho == 0 || o.Grav == (r3.Vec{}) {
		return
	}
	g := []float64{o.Grav.X, o.Grav.Y, o.Grav.Z}
	for idx := range o.Ips {
		for m := 0; m < o.Nverts; m++ {
			c := o.Wt[idx] * o.Rho * o.Thick * o.Sh[idx][m]
			for k := 0; k < 3; k++ {
				fb[o.Umap[6*m+k]] += c * g[k]
			}
		}
	}
	return
}

// AddToKb adds element K to global Jacobian matrix Kb
//
//   K = Tᵀ (Bᵀ Kl B - F G + Gᵀ N P) T     with   B = H P
//
//   F stacks the spin matrices of the projected forces Pᵀ Hᵀ Kl u_d and N the ones of the
//   translational forces. The variation of G is neglected
//
func (o *Shell) AddToKb(Kb *mat.Dense, sol *ele.Solution, firstIt bool) (err error) {

	// internal forces
	if err = o.calcForces(); err != nil {
		return
	}

	// B = H P
	nu := o.Nu
	B := utl.Alloc(nu, nu)
	for m := 0; m < o.Nverts; m++ {
		for i := 0; i < 3; i++ {
			copy(B[6*m+i], o.P[6*m+i])
			for k := 0; k < 3; k++ {
				if o.Hn[m][i][k] == 0 {
					continue
				}
				for j := 0; j < nu; j++ {
					B[6*m+3+i][j] += o.Hn[m][i][k] * o.P[6*m+3+k][j]
				}
			}
		}
	}

	// material part: Bᵀ Kl B
	KB := utl.Alloc(nu, nu)
	for i := 0; i < nu; i++ {
		for k := 0; k < nu; k++ {
			if o.Kl[i][k] == 0 {
				continue
			}
			for j := 0; j < nu; j++ {
				KB[i][j] += o.Kl[i][k] * B[k][j]
			}
		}
	}
	Kt := utl.Alloc(nu, nu)
	for k := 0; k < nu; k++ {
		for i := 0; i < nu; i++ {
			if B[k][i] == 0 {
				continue
			}
			for j := 0; j < nu; j++ {
				Kt[i][j] += B[k][i] * KB[k][j]
			}
		}
	}

	// geometric part: rotation of the frame
	for b := 0; b < 2*o.Nverts; b++ {
		S := skew(r3.Vec{X: o.fp[3*b], Y: o.fp[3*b+1], Z: o.fp[3*b+2]})
		for i := 0; i < 3; i++ {
			for j := 0; j < nu; j++ {
				Kt[3*b+i][j] -= S[i][0]*o.G[0][j] + S[i][1]*o.G[1][j] + S[i][2]*o.G[2][j]
			}
		}
	}

	// geometric part: lever arms of translational forces
	for m := 0; m < o.Nverts; m++ {
		S := skew(r3.Vec{X: o.fh[6*m], Y: o.fh[6*m+1], Z: o.fh[6*m+2]})
		SP := utl.Alloc(3, nu)
		for i := 0; i < 3; i++ {
			for j := 0; j < nu; j++ {
				SP[i][j] = S[i][0]*o.P[6*m][j] + S[i][1]*o.P[6*m+1][j] + S[i][2]*o.P[6*m+2][j]
			}
		}
		for i := 0; i < nu; i++ {
			for j := 0; j < nu; j++ {
				Kt[i][j] += o.G[0][i]*SP[0][j] + o.G[1][i]*SP[1][j] + o.G[2][i]*SP[2][j]
			}
		}
	}

	// global tangent
	T := o.Fr.T()
	nb := 2 * o.Nverts
	for bi := 0; bi < nb; bi++ {
		for bj := 0; bj < nb; bj++ {
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					v := 0.0
					for k := 0; k < 3; k++ {
						for l := 0; l < 3; l++ {
							v += T[k][i] * Kt[3*bi+k][3*bj+l] * T[l][j]
						}
					}
					o.K[3*bi+i][3*bj+j] = v
				}
			}
		}
	}

	// add K to global matrix Kb
	ele.AddToMat(Kb, o.Umap, o.K)
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// vec returns the 3-vector starting at local dof idx of vertex m
func (o *Shell) vec(Y []float64, m, idx int) r3.Vec {
	return r3.Vec{X: Y[o.Umap[6*m+idx]], Y: Y[o.Umap[6*m+idx+1]], Z: Y[o.Umap[6*m+idx+2]]}
}

// calcForces computes the internal forces from the current deformational values
//
//   fg = Tᵀ Pᵀ Hᵀ Kl u_d
//
func (o *Shell) calcForces() (err error) {
	if !o.ok {
		if err = o.init(); err != nil {
			return
		}
	}
	for i := 0; i < o.Nu; i++ {
		o.fl[i] = 0
		for j := 0; j < o.Nu; j++ {
			o.fl[i] += o.Kl[i][j] * o.Dl[j]
		}
	}
	copy(o.fh, o.fl)
	for m := 0; m < o.Nverts; m++ {
		o.Hn[m] = hmat(r3.Vec{X: o.Dl[6*m+irx], Y: o.Dl[6*m+iry], Z: o.Dl[6*m+irz]})
		f := o.Hn[m].tr().vec(r3.Vec{X: o.fl[6*m+irx], Y: o.fl[6*m+iry], Z: o.fl[6*m+irz]})
		o.fh[6*m+irx], o.fh[6*m+iry], o.fh[6*m+irz] = f.X, f.Y, f.Z
	}
	if o.G, err = spinLever(o.Xc); err != nil {
		return fmt.Errorf("shell %d: %v: %w", o.Cid, err, ele.ErrDegenerate)
	}
	o.P = projector(o.Xc, o.G)
	copy(o.fp, matTvec(o.P, o.fh))
	rotateBlocks(o.fg, o.fp, o.Fr.T(), false)
	return
}

// init computes geometry, sampling points data and the local stiffness matrix
func (o *Shell) init() (err error) {

	// parameters
	if o.Prop == nil || o.Prop.Law == nil {
		return fmt.Errorf("shell %d: %w", o.Cid, ele.ErrMissingLaw)
	}
	o.Law = o.Prop.Law
	o.Thick, _ = o.Prop.GetValue(ele.THICKNESS)
	o.Rho, _ = o.Prop.GetValue(ele.DENSITY)
	o.Grav = r3.Vec{}
	if g, found := o.Prop.GetVector(ele.VOLUME_ACCELERATION); found && len(g) == 3 {
		o.Grav = r3.Vec{X: g[0], Y: g[1], Z: g[2]}
	}
	o.D = utl.Alloc(3, 3)
	if err = o.Law.CalcD(o.D, make([]float64, 3)); err != nil {
		return
	}
	o.Gs = o.D[2][2]
	o.Fs = 1

	// reference geometry
	xm := ele.BuildCoordsMatrix(o.Verts)
	o.X = make([]r3.Vec, o.Nverts)
	for m := 0; m < o.Nverts; m++ {
		o.X[m] = r3.Vec{X: xm[0][m], Y: xm[1][m], Z: xm[2][m]}
	}
	if o.Fr0, err = calcFrame(o.X); err != nil {
		return fmt.Errorf("shell %d: %v: %w", o.Cid, err, ele.ErrDegenerate)
	}
	o.Fr = o.Fr0
	o.L0 = o.Fr0.local(o.X)
	o.Xc = append([]r3.Vec{}, o.L0...)
	o.Xl = utl.Alloc(2, o.Nverts)
	for m, l := range o.L0 {
		o.Xl[0][m], o.Xl[1][m] = l.X, l.Y
	}
	o.α = o.Fr0.materialAngle()

	// shapes and integration points
	basic, hi := "tri3", "tri6"
	if o.Nverts == 4 {
		basic, hi = "qua4", "qua8"
	}
	if o.Basic, err = shp.Get(basic); err != nil {
		return
	}
	if o.Hi, err = shp.Get(hi); err != nil {
		return
	}
	if o.Ips, err = shp.GetIps(basic, o.Nip()); err != nil {
		return
	}
	nip := len(o.Ips)
	o.Sh = make([][]float64, nip)
	o.Wt = make([]float64, nip)
	for idx, ip := range o.Ips {
		if err = o.Basic.CalcAtIp(o.Xl, []float64{ip.R, ip.S}, true); err != nil {
			return fmt.Errorf("shell %d: %v: %w", o.Cid, err, ele.ErrDegenerate)
		}
		o.Wt[idx] = ip.W * o.Basic.J
		o.Sh[idx] = append([]float64{}, o.Basic.S...)
	}

	// local formulation
	o.Ks, o.Os, o.drill = nil, nil, 0
	o.Oc = utl.Alloc(nip, 0)
	switch o.Kind {
	case ele.ThinTri:
		err = o.thinTri()
	case ele.ThickTri:
		err = o.thickTri()
	case ele.ThinQuad:
		err = o.thinQuad()
	case ele.ThickQuad:
		err = o.thickQuad()
	default:
		err = chk.Err("kind %v is not a shell", o.Kind)
	}
	if err != nil {
		return fmt.Errorf("shell %d: %v: %w", o.Cid, err, ele.ErrDegenerate)
	}
	o.calcKl()
	o.ok = true
	return
}

// calcKl computes the local stiffness matrix
//
//   Kl = Σ W (t Bmᵀ D Bm + t³/12 Bbᵀ D Bb + Bsᵀ Ds Bs + γ t Bd Bdᵀ)
//
func (o *Shell) calcKl() {
	t := o.Thick
	ds := ShearFactor * o.Gs * t * o.Fs
	Ds := [][]float64{{ds, 0}, {0, ds}}
	o.Kl = utl.Alloc(o.Nu, o.Nu)
	for _, s := range o.Ks {
		if s.Bm != nil {
			addBtDB(o.Kl, s.Bm, o.D, s.W*t)
		}
		if s.Bb != nil {
			addBtDB(o.Kl, s.Bb, o.D, s.W*t*t*t/12.0)
		}
		if s.Bs != nil {
			addBtDB(o.Kl, s.Bs, Ds, s.W)
		}
		if s.Bd != nil {
			dd := s.W * DrillFactor * o.Gs * t
			for i := 0; i < o.Nu; i++ {
				for j := 0; j < o.Nu; j++ {
					o.Kl[i][j] += s.Bd[i] * dd * s.Bd[j]
				}
			}
		}
	}
	for m := 0; m < o.Nverts; m++ {
		o.Kl[6*m+irz][6*m+irz] += o.drill
	}
}

// addBtDB adds c * Bᵀ D B to K
func addBtDB(K, B, D [][]float64, c float64) {
	nr, nu := len(B), len(B[0])
	DB := utl.Alloc(nr, nu)
	for i := 0; i < nr; i++ {
		for k := 0; k < nr; k++ {
			if D[i][k] == 0 {
				continue
			}
			for j := 0; j < nu; j++ {
				DB[i][j] += D[i][k] * B[k][j]
			}
		}
	}
	for i := 0; i < nu; i++ {
		for k := 0; k < nr; k++ {
			if B[k][i] == 0 {
				continue
			}
			for j := 0; j < nu; j++ {
				K[i][j] += c * B[k][i] * DB[k][j]
			}
		}
	}
}
