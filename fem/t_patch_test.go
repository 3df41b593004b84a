// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/yuanzhongqiao/Kratos/ana"
	"github.com/yuanzhongqiao/Kratos/ele"
	"github.com/yuanzhongqiao/Kratos/ele/shell"
	"github.com/yuanzhongqiao/Kratos/inp"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

/* patch meshes (projection onto x-y)
 *
 *     triangles                     quadrilaterals
 *
 *   4 o-------------o 3          4 o------o------o 3
 *     | \         / |              |      8      |
 *     |   \ [3] /   |              | [4]  |  [3] |
 *     | [4] \ /     |            9 o------o------o 7
 *     |      o 5 [2]|              | [1]  5  [2] |
 *     |   /  [1] \  |              |      |      |
 *   1 o-------------o 2          1 o------o------o 2
 *                                         6
 *
 *   nodes 1, 2 and 4 are clamped; node 3 carries the point load
 */

// newPatch allocates the patch simulation
func newPatch(tst *testing.T, kind string, workers int, rtol float64) *Main {
	sim := inp.NewSimulation()
	sim.Patch.Element = kind
	sim.Solver.Workers = workers
	sim.Solver.Rtol = rtol
	sim.Solver.ShowR = chk.Verbose
	m, err := NewMain(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return nil
	}
	return m
}

// solved checks the outcome of a step: converged or stopped at the round-off level
func solved(tst *testing.T, m *Main, err error) bool {
	if err == nil {
		if m.Strategy.State != Converged {
			tst.Errorf("state should be %v. %v is incorrect\n", Converged, m.Strategy.State)
			return false
		}
		return true
	}
	if errors.Is(err, ErrMaxIterations) && m.Strategy.Ratio < 1e-12 {
		io.Pforan("stopped at the round-off level: ratio = %g\n", m.Strategy.Ratio)
		return true
	}
	tst.Errorf("solution failed:\n%v", err)
	return false
}

// patchTol holds the tolerances of the comparison against reference results
type patchTol struct {
	disp, rot float64 // nodal values
	stress    float64 // stress components
	vm        float64 // von Mises stress
}

// patchTols holds the tolerances per element kind. Triangles are compared with the reference
// results. Quadrilaterals use different bending and drilling formulations from the reference and
// are compared with their own results (see patchQuadsRef)
var patchTols = map[string]patchTol{
	"thin-tri":   {1e-8, 1e-8, 1e-3, 1e-3},
	"thick-tri":  {2e-6, 5e-5, 0.3, 0.6},
	"thin-quad":  {1e-9, 1e-9, 1e-6, 1e-6},
	"thick-quad": {1e-9, 1e-9, 1e-6, 1e-6},
}

// patchQuadsRef holds the results of the quadrilaterals
var patchQuadsRef = map[string]*ana.PatchRef{
	"thin-quad": {
		Disp: []float64{8.265037184371771e-04, -8.523078287420160e-04, 5.089996145690445e-04},
		Rot:  []float64{1.492451005292399e-03, 6.539382830760106e-05, -2.952857674084407e-03},
		Mid:  []float64{3.692552910334953, -2.463103410575492, 0, 4.883589332591932, 0, 0},
		Top:  []float64{18.45647230777098, -0.3393409929835300, 0, -3.000702462706419, 0, 0},
		Bot:  []float64{-11.07136648710107, -4.586865828167454, 0, 12.76788112789028, 0, 0},
		Vm:   22.13752131551966,
	},
	"thick-quad": {
		Disp: []float64{7.638768829745235e-04, -1.025796089640596e-03, 1.341291367756459e-03},
		Rot:  []float64{2.121166656765279e-03, 1.044617604850905e-04, -3.865502331927854e-03},
		Mid:  []float64{5.911710632590191, -0.5096333490525762, 0.5888337677700073, -1.974889223056449, -6.256384257032353, 0},
		Top:  []float64{13.47301115842412, 0.9106410526318043, 0, -57.45606994634281, 0, 0},
		Bot:  []float64{-1.649589893243737, -1.929907750736957, 0, 53.50629150022991, 0, 0},
		Vm:   65.26343598248982,
	},
}

// patchExpected returns the expected results for element kind
func patchExpected(tst *testing.T, kind string) (exp *ana.PatchRef, tol patchTol) {
	ref, err := ana.GetPatchRef(kind)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	exp, tol = ref, patchTols[kind]
	if res, ok := patchQuadsRef[kind]; ok {
		io.Pf("reference results:\n%v\n", ref)
		exp = res
	}
	return
}

func Test_patch01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("patch01. shell patch test: all element kinds")

	for _, kind := range ele.Kinds() {
		io.Pfyel("\n%v\n", kind)

		// solve
		m := newPatch(tst, kind.String(), 2, 1e-14)
		if m == nil {
			return
		}
		if !solved(tst, m, m.Run()) {
			return
		}
		exp, tol := patchExpected(tst, kind.String())
		if exp == nil {
			return
		}

		// loaded node
		nod := m.Model.Node(3)
		u, θ := nod.Value(DISPLACEMENT, 0), nod.Value(ROTATION, 0)
		chk.Array(tst, "disp", tol.disp, u, exp.Disp)
		chk.Array(tst, "rot", tol.rot, θ, exp.Rot)
		for i := 0; i < 3; i++ {
			chk.Float64(tst, "x = X + u", 1e-15, nod.X[i], nod.X0()[i]+u[i])
		}

		// supports
		load := m.Sim.Patch.Load
		sum := []float64{0, 0, 0}
		for _, id := range PatchSupports {
			s := m.Model.Node(id)
			chk.Array(tst, io.Sf("u(%d)", id), 1e-17, s.Value(DISPLACEMENT, 0), []float64{0, 0, 0})
			chk.Array(tst, io.Sf("θ(%d)", id), 1e-17, s.Value(ROTATION, 0), []float64{0, 0, 0})
			floats.Add(sum, s.Value(REACTION, 0))
		}
		floats.Add(sum, load)
		chk.Array(tst, "Σ reactions + load", 1e-8, sum, []float64{0, 0, 0})

		// stresses @ first integration point of element 1
		e := m.Model.Element(1).(ele.CanRecoverStress)
		var σ [3][][]float64
		var err error
		for _, surf := range ele.Surfaces {
			σ[surf], err = e.Stress(surf, 0)
			if err != nil {
				tst.Errorf("Stress failed:\n%v", err)
				return
			}
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					if σ[surf][i][j] != σ[surf][j][i] {
						tst.Errorf("%v stress is not symmetric\n", surf)
						return
					}
				}
			}
		}
		for i := 0; i < 3; i++ {
			chk.Float64(tst, io.Sf("mid[%d][%d]", i, i), 1e-10, σ[ele.Middle][i][i], (σ[ele.Top][i][i]+σ[ele.Bottom][i][i])/2.0)
		}
		chk.Array(tst, "mid", tol.stress, ana.Components(σ[ele.Middle]), exp.Mid)
		chk.Array(tst, "top", tol.stress, ana.Components(σ[ele.Top]), exp.Top)
		chk.Array(tst, "bot", tol.stress, ana.Components(σ[ele.Bottom]), exp.Bot)

		// von Mises: largest of the three surfaces. Thin triangles extrapolate it from mid-edges
		svm, err := e.VonMises(0)
		if err != nil {
			tst.Errorf("VonMises failed:\n%v", err)
			return
		}
		if kind != ele.ThinTri {
			vmax := 0.0
			for _, surf := range ele.Surfaces {
				vmax = math.Max(vmax, shell.CalcVonMises(σ[surf]))
			}
			chk.Float64(tst, "svm", 1e-12, svm, vmax)
		}
		chk.Float64(tst, "vm", tol.vm, svm, exp.Vm)
	}
}

func Test_patch02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("patch02. thick and thin kinds give different results")

	var disp [][]float64
	for _, kind := range []string{"thin-tri", "thick-tri", "thin-quad", "thick-quad"} {
		m := newPatch(tst, kind, 1, 1e-14)
		if m == nil {
			return
		}
		if !solved(tst, m, m.Run()) {
			return
		}
		disp = append(disp, append([]float64{}, m.Model.Node(3).Value(DISPLACEMENT, 0)...))
	}
	for i := 0; i < 4; i += 2 {
		diff := floats.Distance(disp[i], disp[i+1], 2)
		io.Pforan("|u_thin - u_thick| = %g\n", diff)
		if diff < 1e-3*floats.Norm(disp[i], 2) {
			tst.Errorf("thin and thick results should differ\n")
			return
		}
	}

	// each component of the displacement of the loaded corner follows the load
	for i, u := range disp {
		if u[0] <= 0 || u[1] >= 0 || u[2] <= 0 {
			tst.Errorf("case %d: u = %v has wrong signs\n", i, u)
			return
		}
	}
}

func Test_patch03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("patch03. number of workers")

	var res [][]float64
	for _, workers := range []int{1, 4, 4} {
		m := newPatch(tst, "thick-quad", workers, 1e-10)
		if m == nil {
			return
		}
		if !solved(tst, m, m.Run()) {
			return
		}
		var y []float64
		for _, nod := range m.Model.NodesSorted() {
			y = append(y, nod.Value(DISPLACEMENT, 0)...)
			y = append(y, nod.Value(ROTATION, 0)...)
		}
		res = append(res, y)
	}
	chk.Array(tst, "1 worker vs 4 workers", 1e-12, res[0], res[1])
	for i := range res[1] {
		if res[1][i] != res[2][i] {
			tst.Errorf("results with the same number of workers should be identical\n")
			return
		}
	}
}

func Test_patch04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("patch04. re-solving a converged state")

	m := newPatch(tst, "thin-tri", 1, 1e-10)
	if m == nil {
		return
	}
	if err := m.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	u := append([]float64{}, m.Model.Node(3).Value(DISPLACEMENT, 0)...)
	if err := m.Strategy.Solve(); err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Int(tst, "iterations", m.Strategy.It, 1)
	chk.Int(tst, "step", m.Strategy.Step, 2)
	chk.Array(tst, "u", 1e-12, m.Model.Node(3).Value(DISPLACEMENT, 0), u)
	chk.Array(tst, "u @ previous step", 1e-17, m.Model.Node(3).Value(DISPLACEMENT, 1), u)
}

func Test_patch05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("patch05. definition errors")

	// missing law
	m := newPatch(tst, "thick-tri", 1, 1e-14)
	if m == nil {
		return
	}
	m.Model.Properties(0).Law = nil
	err := m.Run()
	if !errors.Is(err, ele.ErrMissingLaw) {
		tst.Errorf("Run should have failed with ErrMissingLaw. err = %v\n", err)
		return
	}
	if m.Strategy.State != Uninitialized {
		tst.Errorf("state should be %v\n", Uninitialized)
		return
	}
	if err = m.Strategy.Solve(); err == nil {
		tst.Errorf("Solve should have failed before initialisation\n")
		return
	}

	// missing thickness
	m = newPatch(tst, "thin-quad", 1, 1e-14)
	if m == nil {
		return
	}
	m.Model.Properties(0).SetValue(ele.THICKNESS, 0)
	if err = m.Strategy.Initialize(); !errors.Is(err, ele.ErrMissingProperty) {
		tst.Errorf("Initialize should have failed with ErrMissingProperty. err = %v\n", err)
		return
	}

	// unknown element kind
	sim := inp.NewSimulation()
	sim.Patch.Element = "membrane"
	if _, err = NewMain(sim, false); !errors.Is(err, ErrInput) {
		tst.Errorf("NewMain should have failed with ErrInput. err = %v\n", err)
		return
	}

	// unknown loaded node
	sim = inp.NewSimulation()
	sim.Patch.Loaded = []int{7}
	if _, err = NewMain(sim, false); !errors.Is(err, ErrInput) {
		tst.Errorf("NewMain should have failed with ErrInput. err = %v\n", err)
		return
	}
}

// failingSolver fails to solve any system
type failingSolver struct{}

func (o failingSolver) Solve(x *mat.VecDense, K *mat.Dense, r *mat.VecDense) error {
	return fmt.Errorf("cannot factorise: %w", ErrSingular)
}

func Test_patch06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("patch06. restore state after fatal error")

	m := newPatch(tst, "thick-quad", 2, 1e-10)
	if m == nil {
		return
	}
	if err := m.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	nod := m.Model.Node(3)
	u := append([]float64{}, nod.Value(DISPLACEMENT, 0)...)
	θ := append([]float64{}, nod.Value(ROTATION, 0)...)
	y := append([]float64{}, m.Strategy.Sol.Y...)

	// failure with larger load
	load := m.Sim.Patch.Load
	nod.SetValue(POINT_LOAD, 2*load[0], 2*load[1], 2*load[2])
	lu := m.Strategy.Bas.LinSol
	m.Strategy.Bas.LinSol = failingSolver{}
	err := m.Strategy.Solve()
	if !errors.Is(err, ErrSingular) {
		tst.Errorf("Solve should have failed with ErrSingular. err = %v\n", err)
		return
	}
	if m.Strategy.State != Initialized {
		tst.Errorf("state should be %v. %v is incorrect\n", Initialized, m.Strategy.State)
		return
	}
	chk.Array(tst, "u", 1e-17, nod.Value(DISPLACEMENT, 0), u)
	chk.Array(tst, "θ", 1e-17, nod.Value(ROTATION, 0), θ)
	chk.Array(tst, "Y", 1e-17, m.Strategy.Sol.Y, y)
	chk.Array(tst, "ΔY", 1e-17, m.Strategy.Sol.ΔY, make([]float64, len(y)))

	// frames were restored: the converged state is recovered at once
	nod.SetValue(POINT_LOAD, load...)
	m.Strategy.Bas.LinSol = lu
	if err = m.Strategy.Solve(); err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Int(tst, "iterations", m.Strategy.It, 1)
	chk.Array(tst, "u", 1e-12, nod.Value(DISPLACEMENT, 0), u)
}

func Test_patch07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("patch07. prescribed translation")

	sim := inp.NewSimulation()
	sim.Patch.Load = []float64{0, 0, 0}
	sim.Solver.Rtol = 1e-10
	m, err := NewMain(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	if err = m.Dofs.FixValue("ux", 0.01, m.Model.SubModelPart(DIRICHLET)); err != nil {
		tst.Errorf("FixValue failed:\n%v", err)
		return
	}
	if !solved(tst, m, m.Run()) {
		return
	}
	chk.Int(tst, "iterations", m.Strategy.It, 1)
	for _, nod := range m.Model.NodesSorted() {
		chk.Array(tst, io.Sf("u(%d)", nod.Id()), 1e-12, nod.Value(DISPLACEMENT, 0), []float64{0.01, 0, 0})
		chk.Array(tst, io.Sf("θ(%d)", nod.Id()), 1e-12, nod.Value(ROTATION, 0), []float64{0, 0, 0})
	}
	for _, id := range PatchSupports {
		chk.Array(tst, io.Sf("reaction(%d)", id), 1e-7, m.Model.Node(id).Value(REACTION, 0), []float64{0, 0, 0})
	}
}

func Test_patch08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("patch08. self-weight")

	sim := inp.NewSimulation()
	sim.Patch.Load = []float64{0, 0, 0}
	sim.Mat.Rho = 2.0
	sim.Mat.Thick = 0.5
	sim.Mat.Grav = []float64{0, 0, -10}
	sim.Solver.Rtol = 1e-10
	m, err := NewMain(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	if !solved(tst, m, m.Run()) {
		return
	}

	// area of patch
	area := 0.0
	for _, c := range m.Model.ElementCells() {
		x := make([]r3.Vec, 3)
		for i, nod := range c.Nodes {
			X := nod.X0()
			x[i] = r3.Vec{X: X[0], Y: X[1], Z: X[2]}
		}
		area += r3.Norm(r3.Cross(r3.Sub(x[1], x[0]), r3.Sub(x[2], x[0]))) / 2.0
	}
	io.Pforan("area = %v\n", area)

	// supports carry the weight
	sum := []float64{0, 0, 0}
	for _, id := range PatchSupports {
		floats.Add(sum, m.Model.Node(id).Value(REACTION, 0))
	}
	chk.Array(tst, "Σ reactions", 1e-8, sum, []float64{0, 0, 2.0 * 0.5 * 10 * area})
	if m.Model.Node(3).Value(DISPLACEMENT, 0)[2] >= 0 {
		tst.Errorf("free corner should move downwards\n")
		return
	}
}
