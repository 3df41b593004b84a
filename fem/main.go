// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the FEM solver
package fem

import (
	"errors"
	"time"

	"github.com/cpmech/gosl/io"
	log "github.com/sirupsen/logrus"
	"github.com/yuanzhongqiao/Kratos/inp"

	// elements and conditions
	_ "github.com/yuanzhongqiao/Kratos/ele/load"
	_ "github.com/yuanzhongqiao/Kratos/ele/shell"
)

// Main holds all data for a patch simulation
type Main struct {
	Sim      *inp.Simulation // simulation data
	Model    *Model          // mesh model
	Dofs     *DofRegistry    // degrees of freedom
	Strategy *NewtonRaphson  // nonlinear strategy
	ShowMsg  bool            // show messages
}

// NewMain returns a new Main structure
//  Input:
//   sim     -- simulation data; e.g. from inp.ReadSim or inp.NewSimulation
//   verbose -- show messages
func NewMain(sim *inp.Simulation, verbose bool) (o *Main, err error) {

	// new Main object
	o = new(Main)
	o.Sim = sim
	o.ShowMsg = verbose
	if err = o.Sim.PostProcess(); err != nil {
		return nil, err
	}

	// model
	o.Model, err = NewPatchModel(sim)
	if err != nil {
		return nil, err
	}
	if o.ShowMsg {
		io.Pf("> Patch model with %q elements allocated\n", sim.Patch.Element)
	}

	// degrees of freedom
	o.Dofs = NewDofRegistry(o.Model)
	if err = AddShellDofs(o.Dofs); err != nil {
		return nil, err
	}
	if err = FixPatchSupports(o.Model, o.Dofs); err != nil {
		return nil, err
	}

	// strategy
	linsol, err := GetSolver(sim.LinSol.Name)
	if err != nil {
		return nil, err
	}
	crit, err := NewCriterion(sim.Solver.Criterion, sim.Solver.Rtol, sim.Solver.Atol)
	if err != nil {
		return nil, err
	}
	o.Strategy = NewNewtonRaphson(o.Model, o.Dofs, linsol, crit, &sim.Solver)
	return
}

// Run initialises, checks and solves one step
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// initialise
	if err = o.Strategy.Initialize(); err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf("> Strategy initialised with %d equations (%d free)\n", o.Dofs.Ny(), o.Dofs.Nfree())
	}

	// check
	if err = o.Strategy.Check(); err != nil {
		return
	}

	// solve
	if o.ShowMsg {
		io.Pf("> Running nonlinear solver\n")
	}
	return o.Strategy.Solve()
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit prints final message with cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {
	err = prevErr
	if !o.ShowMsg {
		return
	}
	switch {
	case err == nil:
		io.PfGreen("> Success\n")
		io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
	case errors.Is(err, ErrMaxIterations):
		io.Pforan("> Not converged: ratio = %g\n", o.Strategy.Ratio)
	default:
		io.PfRed("> Failed\n")
	}
	log.WithField("state", o.Strategy.State).Debug("run finished")
	return
}
