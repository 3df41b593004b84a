// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.ini) configuration file
package inp

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/ini.v1"
)

// SolverData holds FEM solver data
type SolverData struct {

	// nonlinear solver
	NmaxIt    int     // number of max iterations
	Rtol      float64 // relative tolerance: ratio between current and reference residual norms
	Atol      float64 // absolute tolerance: residual norm divided by number of equations
	Criterion string  // convergence criterion: "residual" or "displacement"
	ShowR     bool    // show residual

	// strategy flags
	Reactions  bool // compute reactions after convergence
	ReformDofs bool // renumber dofs at the beginning of each step
	MoveMesh   bool // update nodal coordinates with displacements

	// assembly and storage
	Workers int // number of goroutines evaluating elements
	Nbuffer int // number of steps kept by nodal history buffers
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name    string // name of linear solver; e.g. "lu"
	Verbose bool   // verbose?
}

// PatchData holds data for the patch test driver
type PatchData struct {
	Element string    // element kind; e.g. "thin-tri", "thick-quad"
	Load    []float64 // point load applied to each loaded node
	Loaded  []int     // ids of loaded nodes
}

// LogData holds logging options
type LogData struct {
	Level string // logrus level; e.g. "info", "debug"
}

// Simulation holds all simulation data
type Simulation struct {
	Desc   string     // description of simulation
	Solver SolverData // solver data
	LinSol LinSolData // linear solver data
	Mat    MatData    // material and section data
	Patch  PatchData  // patch test data
	Log    LogData    // logging data
}

// NewSimulation returns a simulation with default values
func NewSimulation() (o *Simulation) {
	o = new(Simulation)
	o.Desc = "shell patch test"
	o.Solver.SetDefault()
	o.LinSol.Name = "lu"
	o.Mat.SetDefault()
	o.Patch.Element = "thin-tri"
	o.Patch.Load = []float64{6.1, -5.5, 8.9}
	o.Patch.Loaded = []int{3}
	o.Log.Level = "warning"
	return
}

// ReadSim reads a configuration file and returns a new simulation structure
//  Note: missing sections and keys keep their default values
func ReadSim(filepath string) (o *Simulation, err error) {

	// load file
	f, err := ini.Load(filepath)
	if err != nil {
		return nil, chk.Err("cannot read configuration file %q:\n%v", filepath, err)
	}

	// defaults
	o = NewSimulation()
	o.Desc = f.Section("").Key("desc").MustString(o.Desc)

	// solver
	s := f.Section("solver")
	o.Solver.NmaxIt = s.Key("nmaxit").MustInt(o.Solver.NmaxIt)
	o.Solver.Rtol = s.Key("rtol").MustFloat64(o.Solver.Rtol)
	o.Solver.Atol = s.Key("atol").MustFloat64(o.Solver.Atol)
	o.Solver.Criterion = s.Key("criterion").MustString(o.Solver.Criterion)
	o.Solver.ShowR = s.Key("showr").MustBool(o.Solver.ShowR)
	o.Solver.Reactions = s.Key("reactions").MustBool(o.Solver.Reactions)
	o.Solver.ReformDofs = s.Key("reformdofs").MustBool(o.Solver.ReformDofs)
	o.Solver.MoveMesh = s.Key("movemesh").MustBool(o.Solver.MoveMesh)
	o.Solver.Workers = s.Key("workers").MustInt(o.Solver.Workers)
	o.Solver.Nbuffer = s.Key("nbuffer").MustInt(o.Solver.Nbuffer)

	// linear solver
	l := f.Section("linsol")
	o.LinSol.Name = l.Key("name").MustString(o.LinSol.Name)
	o.LinSol.Verbose = l.Key("verbose").MustBool(o.LinSol.Verbose)

	// material
	err = o.Mat.read(f.Section("material"))
	if err != nil {
		return nil, err
	}

	// patch
	p := f.Section("patch")
	o.Patch.Element = p.Key("element").MustString(o.Patch.Element)
	if p.HasKey("load") {
		o.Patch.Load = p.Key("load").Float64s(",")
	}
	if p.HasKey("loaded") {
		o.Patch.Loaded = p.Key("loaded").Ints(",")
	}

	// logging
	o.Log.Level = f.Section("log").Key("level").MustString(o.Log.Level)

	// check
	err = o.PostProcess()
	if err != nil {
		return nil, chk.Err("invalid configuration in %q:\n%v", filepath, err)
	}
	return
}

// PostProcess checks and fixes data after reading
func (o *Simulation) PostProcess() (err error) {
	o.Patch.Element = strings.ToLower(strings.TrimSpace(o.Patch.Element))
	if len(o.Patch.Load) != 3 {
		return chk.Err("point load must have 3 components. %d is invalid", len(o.Patch.Load))
	}
	if len(o.Patch.Loaded) == 0 {
		return chk.Err("at least one loaded node must be given")
	}
	return o.Solver.PostProcess()
}

// SetDefault sets defaults values
func (o *SolverData) SetDefault() {

	// nonlinear solver
	o.NmaxIt = 20
	o.Rtol = 1e-14
	o.Atol = 1e-20
	o.Criterion = "residual"

	// strategy flags
	o.Reactions = true
	o.ReformDofs = true
	o.MoveMesh = true

	// assembly and storage
	o.Workers = 1
	o.Nbuffer = 2
}

// PostProcess validates solver data
func (o *SolverData) PostProcess() (err error) {
	if o.NmaxIt < 1 {
		return chk.Err("max number of iterations must be at least 1. %d is invalid", o.NmaxIt)
	}
	if o.Rtol < 0 || o.Atol < 0 {
		return chk.Err("tolerances must be non-negative. rtol=%g atol=%g are invalid", o.Rtol, o.Atol)
	}
	switch o.Criterion {
	case "residual", "displacement":
	default:
		return chk.Err("convergence criterion %q is not available", o.Criterion)
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Nbuffer < 2 {
		o.Nbuffer = 2
	}
	return
}
