// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	log "github.com/sirupsen/logrus"
	"github.com/yuanzhongqiao/Kratos/ele"
	"github.com/yuanzhongqiao/Kratos/inp"
	"gonum.org/v1/gonum/floats"
)

// State is the state of the Newton-Raphson strategy
type State int

// states
const (
	Uninitialized State = iota
	Initialized
	Iterating
	Converged
	MaxIterationsExceeded
)

// String returns the name of state
func (o State) String() string {
	switch o {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterationsExceeded:
		return "max-iterations-exceeded"
	}
	return "unknown"
}

// NewtonRaphson implements the static nonlinear strategy: one load step solved with full
// Newton-Raphson iterations
type NewtonRaphson struct {

	// input
	Model *Model            // mesh model
	Dofs  *DofRegistry      // degrees of freedom
	Bas   *BuilderAndSolver // builder and solver
	Crit  Criterion         // convergence criterion
	Data  *inp.SolverData   // solver settings
	Sol   *ele.Solution     // current solution

	// results
	State State   // current state
	Step  int     // number of steps solved so far
	It    int     // number of iterations of last step
	Ratio float64 // last convergence ratio
	Resid float64 // last residual norm

	// auxiliary
	sol0 *ele.Solution // solution at the beginning of step
	Δc   []float64     // prescribed increments of fixed equations
}

// NewNewtonRaphson returns a new strategy
func NewNewtonRaphson(model *Model, dofs *DofRegistry, linsol LinSol, crit Criterion, data *inp.SolverData) (o *NewtonRaphson) {
	o = new(NewtonRaphson)
	o.Model = model
	o.Dofs = dofs
	o.Bas = NewBuilderAndSolver(model, dofs, linsol, data.Workers)
	o.Crit = crit
	o.Data = data
	return
}

// Check checks the definition of elements, conditions and degrees of freedom
func (o *NewtonRaphson) Check() (err error) {
	for _, c := range o.Model.ElementCells() {
		info, e := ele.GetInfo(c.Kind)
		if e != nil {
			return e
		}
		for m, nod := range c.Nodes {
			for _, key := range info.Dofs[m] {
				if nod.GetDof(key) == nil {
					return fmt.Errorf("element %d: node %d does not have unknown %q: %w", c.Id, nod.Id(), key, ErrDofScope)
				}
			}
		}
		if err = c.Elem.Check(); err != nil {
			return fmt.Errorf("element %d: %w", c.Id, err)
		}
	}
	for _, c := range o.Model.ConditionCells() {
		if err = c.Cond.Check(); err != nil {
			return fmt.Errorf("condition %d: %w", c.Id, err)
		}
	}
	return
}

// Initialize checks the model, numbers the degrees of freedom and sets the corotational frames
func (o *NewtonRaphson) Initialize() (err error) {
	if err = o.Check(); err != nil {
		return
	}
	if err = o.number(); err != nil {
		return
	}
	for _, c := range o.Model.ElementCells() {
		if e, ok := c.Elem.(ele.WithIntVars); ok {
			if err = e.InitIvs(o.Sol); err != nil {
				return fmt.Errorf("element %d: %w", c.Id, err)
			}
		}
	}
	o.State = Initialized
	log.WithFields(log.Fields{"ny": o.Dofs.Ny(), "nfree": o.Dofs.Nfree()}).Info("strategy initialised")
	return
}

// Solve solves one step. It returns ErrMaxIterations if the criterion is not satisfied after
// NmaxIt iterations; in this case the last state is kept. Other errors are fatal and the
// state at the beginning of the step is restored
func (o *NewtonRaphson) Solve() (err error) {

	// check
	if o.State == Uninitialized {
		return chk.Err("strategy must be initialised before solving")
	}

	// new step
	o.Model.CloneStep()
	o.Step++
	o.It, o.Ratio, o.Resid = 0, 0, 0
	if o.Data.ReformDofs {
		if err = o.number(); err != nil {
			return
		}
	}
	o.load()
	log.WithFields(log.Fields{"step": o.Step, "ny": o.Dofs.Ny()}).Info("step started")

	// backup
	o.backup()
	defer func() {
		if err != nil && !errors.Is(err, ErrMaxIterations) {
			o.restore()
			log.WithFields(log.Fields{"step": o.Step, "it": o.It}).WithError(err).Error("step failed")
		}
	}()

	// reference residual
	if err = o.Bas.Assemble(o.Sol, true); err != nil {
		return
	}
	nf := o.Dofs.Nfree()
	if nf > 0 {
		o.Bas.Reduce(o.Δc, true)
	}
	o.Crit.Initialize(o.Bas.FreeResidual(), o.Bas.FextNorm())
	if o.Data.ShowR {
		io.Pf("%8s%23s%23s\n", "it", "|r|", "ratio")
	}

	// iterations
	o.State = Iterating
	converged := false
	yf := make([]float64, nf)
	for o.It = 1; o.It <= o.Data.NmaxIt; o.It++ {

		// solve and update
		var Δ []float64
		if nf > 0 {
			Δ, err = o.Bas.Solve(o.Bas.K, o.Bas.R)
			if err != nil {
				return
			}
		}
		o.Bas.Update(o.Sol, Δ, o.Δc)
		o.Δc = nil
		o.store()

		// new residual; frames are updated during assembly
		if err = o.Bas.Assemble(o.Sol, true); err != nil {
			return
		}
		if nf > 0 {
			o.Bas.Reduce(nil, true)
		}

		// criterion
		for _, d := range o.Dofs.Free {
			yf[d.Idx] = o.Sol.Y[d.Eq]
		}
		r := o.Bas.FreeResidual()
		converged, o.Ratio = o.Crit.Converged(r, Δ, yf)
		o.Resid = floats.Norm(r, 2)
		log.WithFields(log.Fields{"it": o.It, "res": o.Resid, "ratio": o.Ratio}).Debug("iteration")
		if o.Data.ShowR {
			io.Pf("%8d%23.15e%23.15e\n", o.It, o.Resid, o.Ratio)
		}
		if converged {
			break
		}
	}

	// max iterations
	if !converged {
		o.It = o.Data.NmaxIt
		o.State = MaxIterationsExceeded
		log.WithFields(log.Fields{"step": o.Step, "res": o.Resid, "ratio": o.Ratio}).Warn("max number of iterations reached")
		return fmt.Errorf("step %d: ratio = %g after %d iterations: %w", o.Step, o.Ratio, o.It, ErrMaxIterations)
	}

	// reactions
	o.State = Converged
	if o.Data.Reactions {
		o.Bas.CalcReactions()
	}
	log.WithFields(log.Fields{"step": o.Step, "it": o.It, "ratio": o.Ratio}).Info("step converged")
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// number numbers the degrees of freedom and allocates the system and solution
func (o *NewtonRaphson) number() (err error) {
	if err = o.Dofs.Number(); err != nil {
		return
	}
	if err = o.Bas.SetUp(); err != nil {
		return
	}
	if o.Sol == nil || len(o.Sol.Y) != o.Dofs.Ny() {
		o.Sol = ele.NewSolution(o.Dofs.Ny())
	}
	o.load()
	return
}

// load copies nodal values into the solution and computes the prescribed increments
func (o *NewtonRaphson) load() {
	o.Sol.ResetIncrements()
	o.Δc = make([]float64, o.Dofs.Ny())
	for _, d := range o.Dofs.Dofs {
		o.Sol.Y[d.Eq] = d.GetValue()
		if d.Fixed {
			o.Δc[d.Eq] = d.Value - o.Sol.Y[d.Eq]
		}
	}
}

// store copies the solution into nodal values and moves the mesh
func (o *NewtonRaphson) store() {
	for _, d := range o.Dofs.Dofs {
		d.SetValue(o.Sol.Y[d.Eq])
	}
	if o.Data.MoveMesh {
		for _, nod := range o.Model.NodesSorted() {
			nod.move()
		}
	}
}

// backup saves the solution and internal variables
func (o *NewtonRaphson) backup() {
	o.sol0 = o.Sol.GetCopy()
	for _, c := range o.Model.ElementCells() {
		if e, ok := c.Elem.(ele.WithIntVars); ok {
			e.BackupIvs()
		}
	}
}

// restore restores the solution, nodal values and internal variables
func (o *NewtonRaphson) restore() {
	o.Sol = o.sol0
	o.Sol.ResetIncrements()
	o.store()
	for _, c := range o.Model.ElementCells() {
		if e, ok := c.Elem.(ele.WithIntVars); ok {
			e.RestoreIvs()
		}
	}
	o.State = Initialized
}
