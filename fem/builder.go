// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"github.com/yuanzhongqiao/Kratos/ele"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BuilderAndSolver assembles the global system and solves it for the free equations
//
//   The full system has one equation per degree of freedom. The reduced system is the free part:
//
//     K_ff Δ_f = r_f - K_fc Δ_c
//
//   where Δ_c are the prescribed increments of fixed equations (direct substitution)
//
type BuilderAndSolver struct {

	// input
	Model   *Model       // mesh model
	Dofs    *DofRegistry // degrees of freedom
	LinSol  LinSol       // linear solver
	Workers int          // max number of goroutines evaluating elements

	// full system
	Kb *mat.Dense // [ny][ny] Jacobian == dR/dy
	Fb []float64  // [ny] residual == f_ext - f_int == -R
	Fe []float64  // [ny] external forces from conditions

	// reduced system
	K *mat.Dense    // [nf][nf] free part of Kb
	R *mat.VecDense // [nf] free part of Fb, including substitution of prescribed increments
	X *mat.VecDense // [nf] solution of reduced system

	// auxiliary
	cells  []*Cell    // elements followed by conditions
	parts  []*partial // partial assemblies; one per chunk
	chunks [][2]int   // ranges of cells: [start, end)
}

// partial holds the contributions of a chunk of cells
type partial struct {
	fb []float64  // elements
	fe []float64  // conditions
	kb *mat.Dense // elements
}

// NewBuilderAndSolver returns a new builder
func NewBuilderAndSolver(model *Model, dofs *DofRegistry, linsol LinSol, workers int) *BuilderAndSolver {
	if workers < 1 {
		workers = 1
	}
	return &BuilderAndSolver{Model: model, Dofs: dofs, LinSol: linsol, Workers: workers}
}

// SetUp sets the equations of elements and conditions and allocates the system.
//  Note: it must be called after the degrees of freedom have been numbered
func (o *BuilderAndSolver) SetUp() (err error) {

	// equations
	o.cells = append(o.Model.ElementCells(), o.Model.ConditionCells()...)
	for _, c := range o.cells {
		var keys [][]string
		if c.Elem != nil {
			info, e := ele.GetInfo(c.Kind)
			if e != nil {
				return e
			}
			keys = info.Dofs
		} else {
			keys = ele.NewShellInfo(len(c.Nodes)).Dofs
		}
		eqs, e := o.Dofs.Eqs(c.Nodes, keys)
		if e != nil {
			return fmt.Errorf("cell %d: %w", c.Id, e)
		}
		if err = c.Cond.SetEqs(eqs); err != nil {
			return
		}
	}

	// system
	ny, nf := o.Dofs.Ny(), o.Dofs.Nfree()
	o.Kb = mat.NewDense(ny, ny, nil)
	o.Fb = make([]float64, ny)
	o.Fe = make([]float64, ny)
	if nf > 0 {
		o.K = mat.NewDense(nf, nf, nil)
		o.R = mat.NewVecDense(nf, nil)
		o.X = mat.NewVecDense(nf, nil)
	}

	// chunks
	nc := len(o.cells)
	nw := o.Workers
	if nw > nc {
		nw = nc
	}
	o.chunks, o.parts = nil, nil
	for i := 0; i < nw; i++ {
		o.chunks = append(o.chunks, [2]int{i * nc / nw, (i + 1) * nc / nw})
		o.parts = append(o.parts, &partial{fb: make([]float64, ny), fe: make([]float64, ny), kb: mat.NewDense(ny, ny, nil)})
	}
	log.WithFields(log.Fields{"ny": ny, "nfree": nf, "cells": nc, "chunks": nw}).Debug("system allocated")
	return
}

// Assemble computes Fb (and Kb if withK) for the current solution. Elements with internal
// variables are updated first; i.e. corotational frames are updated once per assembly
func (o *BuilderAndSolver) Assemble(sol *ele.Solution, withK bool) (err error) {

	// evaluate chunks concurrently
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(o.Workers)
	for i, chunk := range o.chunks {
		p, cells := o.parts[i], o.cells[chunk[0]:chunk[1]]
		g.Go(func() error {
			return p.assemble(ctx, cells, sol, withK)
		})
	}
	if err = g.Wait(); err != nil {
		return
	}

	// merge in chunk order
	zero(o.Fb)
	zero(o.Fe)
	if withK {
		o.Kb.Zero()
	}
	for _, p := range o.parts {
		floats.Add(o.Fb, p.fb)
		floats.Add(o.Fe, p.fe)
		if withK {
			o.Kb.Add(o.Kb, p.kb)
		}
	}
	floats.Add(o.Fb, o.Fe)
	return
}

// Reduce extracts the free part of the system
//  Δc -- [ny] prescribed increments; only fixed entries are used. may be nil
func (o *BuilderAndSolver) Reduce(Δc []float64, withK bool) {
	for _, d := range o.Dofs.Free {
		v := o.Fb[d.Eq]
		for _, c := range o.Dofs.Fixed {
			if Δc != nil && Δc[c.Eq] != 0 {
				v -= o.Kb.At(d.Eq, c.Eq) * Δc[c.Eq]
			}
		}
		o.R.SetVec(d.Idx, v)
		if withK {
			for _, e := range o.Dofs.Free {
				o.K.Set(d.Idx, e.Idx, o.Kb.At(d.Eq, e.Eq))
			}
		}
	}
}

// Solve solves K Δ = r using the linear solver
func (o *BuilderAndSolver) Solve(K *mat.Dense, r *mat.VecDense) (Δ []float64, err error) {
	if err = o.LinSol.Solve(o.X, K, r); err != nil {
		return
	}
	return o.X.RawVector().Data, nil
}

// Update adds the increments of free equations and the prescribed increments of fixed equations
// to the solution
func (o *BuilderAndSolver) Update(sol *ele.Solution, Δ, Δc []float64) {
	for _, d := range o.Dofs.Free {
		sol.Y[d.Eq] += Δ[d.Idx]
		sol.ΔY[d.Eq] += Δ[d.Idx]
	}
	if Δc == nil {
		return
	}
	for _, d := range o.Dofs.Fixed {
		sol.Y[d.Eq] += Δc[d.Eq]
		sol.ΔY[d.Eq] += Δc[d.Eq]
	}
}

// CalcReactions sets the reactions of fixed equations from the last assembled residual
func (o *BuilderAndSolver) CalcReactions() {
	for _, d := range o.Dofs.Fixed {
		d.SetReaction(-o.Fb[d.Eq])
	}
}

// FreeResidual returns the reduced residual
func (o *BuilderAndSolver) FreeResidual() []float64 {
	if o.R == nil {
		return nil
	}
	return o.R.RawVector().Data
}

// FextNorm returns the norm of external forces on free equations
func (o *BuilderAndSolver) FextNorm() float64 {
	sum := 0.0
	for _, d := range o.Dofs.Free {
		sum += o.Fe[d.Eq] * o.Fe[d.Eq]
	}
	return math.Sqrt(sum)
}

// assemble computes the contributions of a chunk of cells
func (o *partial) assemble(ctx context.Context, cells []*Cell, sol *ele.Solution, withK bool) (err error) {
	zero(o.fb)
	zero(o.fe)
	if withK {
		o.kb.Zero()
	}
	for _, c := range cells {
		if err = ctx.Err(); err != nil {
			return
		}
		if c.Elem == nil {
			if err = c.Cond.AddToRhs(o.fe, sol); err != nil {
				return
			}
			continue
		}
		if e, ok := c.Elem.(ele.WithIntVars); ok {
			if err = e.Update(sol); err != nil {
				return
			}
		}
		if err = c.Elem.AddToRhs(o.fb, sol); err != nil {
			return
		}
		if withK {
			if err = c.Elem.AddToKb(o.kb, sol, false); err != nil {
				return
			}
		}
	}
	return
}

func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}
