// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	sim := NewSimulation()
	chk.IntAssert(sim.Solver.NmaxIt, 20)
	chk.Float64(tst, "rtol", 1e-30, sim.Solver.Rtol, 1e-14)
	chk.Float64(tst, "atol", 1e-40, sim.Solver.Atol, 1e-20)
	if !sim.Solver.Reactions || !sim.Solver.ReformDofs || !sim.Solver.MoveMesh {
		tst.Errorf("strategy flags must be on by default")
		return
	}
	chk.IntAssert(sim.Solver.Nbuffer, 2)
	chk.Array(tst, "load", 1e-17, sim.Patch.Load, []float64{6.1, -5.5, 8.9})
	chk.Ints(tst, "loaded", sim.Patch.Loaded, []int{3})

	var E, nu float64
	err := sim.Mat.Prms.Connect(&E, "E", "sim01")
	if err != nil {
		tst.Errorf("connect failed:\n%v", err)
		return
	}
	err = sim.Mat.Prms.Connect(&nu, "nu", "sim01")
	if err != nil {
		tst.Errorf("connect failed:\n%v", err)
		return
	}
	chk.Float64(tst, "E", 1e-17, E, 100e3)
	chk.Float64(tst, "nu", 1e-17, nu, 0.3)
	if err = sim.Mat.Prms.Connect(&E, "K", "sim01"); err == nil {
		tst.Errorf("connect should have failed for missing parameter")
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02")

	sim, err := ReadSim("data/patch.ini")
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	io.Pforan("sim = %+v\n", sim)

	chk.String(tst, sim.Desc, "thick quadrilateral patch test")
	chk.IntAssert(sim.Solver.NmaxIt, 30)
	chk.Float64(tst, "rtol", 1e-30, sim.Solver.Rtol, 1e-12)
	chk.IntAssert(sim.Solver.Workers, 4)
	chk.IntAssert(sim.Solver.Nbuffer, 2)
	if sim.Solver.MoveMesh {
		tst.Errorf("movemesh should be false")
		return
	}
	chk.String(tst, sim.LinSol.Name, "lu")
	chk.String(tst, sim.Mat.Model, "lin-elast-pstress")
	chk.Float64(tst, "thick", 1e-17, sim.Mat.Thick, 0.5)
	chk.Float64(tst, "rho", 1e-17, sim.Mat.Rho, 2.0)
	chk.Array(tst, "grav", 1e-17, sim.Mat.Grav, []float64{0, 0, -9.81})
	chk.Float64(tst, "E", 1e-17, sim.Mat.Prms.Find("E").V, 200e3)
	chk.Float64(tst, "nu", 1e-17, sim.Mat.Prms.Find("nu").V, 0.25)
	chk.String(tst, sim.Patch.Element, "thick-quad")
	chk.Array(tst, "load", 1e-17, sim.Patch.Load, []float64{1, 2, 3})
	chk.Ints(tst, "loaded", sim.Patch.Loaded, []int{3, 5})
	chk.String(tst, sim.Log.Level, "debug")
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03")

	_, err := ReadSim("data/bad.ini")
	if err == nil {
		tst.Errorf("ReadSim should have failed on unknown criterion")
		return
	}
	io.Pforan("err = %v\n", err)

	_, err = ReadSim("data/missing.ini")
	if err == nil {
		tst.Errorf("ReadSim should have failed on missing file")
	}
}
