// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/yuanzhongqiao/Kratos/ele"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// newLine returns a model with 3 nodes; ids are given in reverse order
func newLine(tst *testing.T) *Model {
	model := NewModel("line", 2)
	for _, id := range []int{30, 20, 10} {
		if _, err := model.AddNode(id, float64(id), 0, 0); err != nil {
			tst.Errorf("AddNode failed:\n%v", err)
			return nil
		}
	}
	return model
}

func Test_history01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("history01. ring buffer of nodal values")

	h := NewHistory(1)
	chk.Int(tst, "nbuffer", h.Nbuffer(), 2)

	err := h.Set(DISPLACEMENT, 0, []float64{1, 2, 3})
	if err != nil {
		tst.Errorf("Set failed:\n%v", err)
		return
	}
	h.CloneStep()
	chk.Array(tst, "u @ 0", 1e-17, h.Get(DISPLACEMENT, 0), []float64{1, 2, 3})
	chk.Array(tst, "u @ 1", 1e-17, h.Get(DISPLACEMENT, 1), []float64{1, 2, 3})

	h.Get(DISPLACEMENT, 0)[1] = -2
	chk.Array(tst, "u @ 0", 1e-17, h.Get(DISPLACEMENT, 0), []float64{1, -2, 3})
	chk.Array(tst, "u @ 1", 1e-17, h.Get(DISPLACEMENT, 1), []float64{1, 2, 3})

	h.CloneStep()
	chk.Array(tst, "u @ 1 (after clone)", 1e-17, h.Get(DISPLACEMENT, 1), []float64{1, -2, 3})

	if h.Get(DISPLACEMENT, 2) != nil {
		tst.Errorf("step 2 is not buffered\n")
		return
	}
	if h.Get("TEMPERATURE", 0) != nil {
		tst.Errorf("TEMPERATURE is not a nodal variable\n")
		return
	}
	if h.Set(ROTATION, 0, []float64{1, 2}) == nil {
		tst.Errorf("Set should have failed with 2 components\n")
		return
	}
}

func Test_dofs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dofs01. registration and numbering")

	model := newLine(tst)
	if model == nil {
		return
	}
	part, err := model.AddSubModelPart("end")
	if err != nil {
		tst.Errorf("AddSubModelPart failed:\n%v", err)
		return
	}
	part.AddNodes(30)

	// register: ux and uy everywhere; rz at node 30 only
	dofs := NewDofRegistry(model)
	for _, key := range []string{"ux", "uy"} {
		if err = dofs.RegisterUnknown(key, ele.ShellY2F[key], nil); err != nil {
			tst.Errorf("RegisterUnknown failed:\n%v", err)
			return
		}
	}
	if err = dofs.RegisterUnknown("rz", "mz", part); err != nil {
		tst.Errorf("RegisterUnknown failed:\n%v", err)
		return
	}
	if err = dofs.RegisterUnknown("ux", "fx", nil); err != nil {
		tst.Errorf("repeated registration should be ignored:\n%v", err)
		return
	}
	chk.Strings(tst, "keys", dofs.Keys, []string{"ux", "uy", "rz"})

	// inconsistent reaction
	err = dofs.RegisterUnknown("uy", "fz", nil)
	if !errors.Is(err, ErrDofScope) {
		tst.Errorf("RegisterUnknown should have failed with ErrDofScope. err = %v\n", err)
		return
	}

	// fix
	model.Node(10).SetValue(DISPLACEMENT, 0.5, 0, 0)
	if err = dofs.Fix("ux", nil); err != nil {
		tst.Errorf("Fix failed:\n%v", err)
		return
	}
	if err = dofs.Release("ux", part); err != nil {
		tst.Errorf("Release failed:\n%v", err)
		return
	}
	if err = dofs.FixValue("rz", 0.1, part); err != nil {
		tst.Errorf("FixValue failed:\n%v", err)
		return
	}
	if err = dofs.Fix("uz", nil); !errors.Is(err, ErrDofScope) {
		tst.Errorf("Fix should have failed with ErrDofScope. err = %v\n", err)
		return
	}

	// numbering: node ids ascending, then registration order
	if err = dofs.Number(); err != nil {
		tst.Errorf("Number failed:\n%v", err)
		return
	}
	io.Pf("%v", dofs)
	chk.Int(tst, "ny", dofs.Ny(), 7)
	chk.Int(tst, "nfree", dofs.Nfree(), 4)
	chk.Ints(tst, "eqs(10)", []int{model.Node(10).GetEq("ux"), model.Node(10).GetEq("uy")}, []int{0, 1})
	chk.Ints(tst, "eqs(20)", []int{model.Node(20).GetEq("ux"), model.Node(20).GetEq("uy")}, []int{2, 3})
	chk.Ints(tst, "eqs(30)", []int{model.Node(30).GetEq("ux"), model.Node(30).GetEq("uy"), model.Node(30).GetEq("rz")}, []int{4, 5, 6})
	chk.Int(tst, "rz(10)", model.Node(10).GetEq("rz"), -1)

	var free, fixed []int
	for _, d := range dofs.Free {
		free = append(free, d.Eq)
	}
	for _, d := range dofs.Fixed {
		fixed = append(fixed, d.Eq)
	}
	chk.Ints(tst, "free", free, []int{1, 3, 4, 5})
	chk.Ints(tst, "fixed", fixed, []int{0, 2, 6})
	for idx, d := range dofs.Free {
		chk.Int(tst, "idx", d.Idx, idx)
	}

	// held and prescribed values
	chk.Float64(tst, "ux(10)", 1e-17, model.Node(10).GetDof("ux").Value, 0.5)
	chk.Float64(tst, "rz(30)", 1e-17, model.Node(30).GetDof("rz").Value, 0.1)

	// equations of cells
	eqs, err := dofs.Eqs([]*Node{model.Node(30), model.Node(10)}, [][]string{{"uy", "rz"}, {"ux"}})
	if err != nil {
		tst.Errorf("Eqs failed:\n%v", err)
		return
	}
	chk.Ints(tst, "eqs[0]", eqs[0], []int{5, 6})
	chk.Ints(tst, "eqs[1]", eqs[1], []int{0})
	_, err = dofs.Eqs([]*Node{model.Node(20)}, [][]string{{"rz"}})
	if !errors.Is(err, ErrDofScope) {
		tst.Errorf("Eqs should have failed with ErrDofScope. err = %v\n", err)
		return
	}

	// reactions
	model.Node(10).GetDof("ux").SetReaction(-3)
	chk.Array(tst, "reaction(10)", 1e-17, model.Node(10).Value(REACTION, 0), []float64{-3, 0, 0})

	// nothing to number
	empty := NewDofRegistry(NewModel("empty", 2))
	if err = empty.Number(); !errors.Is(err, ErrDofScope) {
		tst.Errorf("Number should have failed with ErrDofScope. err = %v\n", err)
		return
	}
}

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01. input errors")

	model := newLine(tst)
	if model == nil {
		return
	}
	model.AddNode(40, 0, 1, 0)
	chk.Ints(tst, "sorted ids", []int{
		model.NodesSorted()[0].Id(),
		model.NodesSorted()[1].Id(),
		model.NodesSorted()[2].Id(),
		model.NodesSorted()[3].Id(),
	}, []int{10, 20, 30, 40})

	// properties
	if err := model.AddProperties(ele.NewProperties(1)); err != nil {
		tst.Errorf("AddProperties failed:\n%v", err)
		return
	}

	check := func(msg string, err error) {
		if !errors.Is(err, ErrInput) {
			tst.Errorf("%s should have failed with ErrInput. err = %v\n", msg, err)
		}
	}

	_, err := model.AddNode(10, 0, 0, 0)
	check("duplicate node", err)

	_, err = model.AddElement(ele.ThinTri, 1, []int{10, 20, 99}, 1)
	check("unknown node", err)

	_, err = model.AddElement(ele.ThinTri, 1, []int{10, 20, 30, 40}, 1)
	check("wrong number of nodes", err)

	_, err = model.AddElement(ele.ThinTri, 1, []int{10, 20, 10}, 1)
	check("repeated node", err)

	_, err = model.AddElement(ele.ThinTri, 1, []int{10, 20, 40}, 7)
	check("unknown properties", err)

	_, err = model.AddElement(ele.ThinTri, 1, []int{10, 20, 40}, 1)
	if err != nil {
		tst.Errorf("AddElement failed:\n%v", err)
		return
	}
	_, err = model.AddElement(ele.ThinTri, 1, []int{10, 30, 40}, 1)
	check("duplicate element", err)

	_, err = model.AddCondition("point-load", 1, []int{99}, 1)
	check("condition with unknown node", err)

	_, err = model.AddCondition("point-load", 1, []int{30}, 1)
	if err != nil {
		tst.Errorf("AddCondition failed:\n%v", err)
		return
	}
	_, err = model.AddCondition("point-load", 1, []int{20}, 1)
	check("duplicate condition", err)

	part, err := model.AddSubModelPart("p")
	if err != nil {
		tst.Errorf("AddSubModelPart failed:\n%v", err)
		return
	}
	_, err = model.AddSubModelPart("p")
	check("duplicate part", err)
	check("part with unknown node", part.AddNodes(99))
	check("part with unknown element", part.AddElements(2))
	check("part with unknown condition", part.AddConditions(2))

	part.AddElements(1)
	part.AddConditions(1)
	chk.Ints(tst, "part elements", part.ElementIds(), []int{1})
	chk.Ints(tst, "part conditions", part.ConditionIds(), []int{1})
	chk.Int(tst, "nelems", len(model.ElementsSorted()), 1)
	chk.Int(tst, "nconds", len(model.ConditionsSorted()), 1)
}
