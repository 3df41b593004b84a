// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"

	"github.com/yuanzhongqiao/Kratos/ele"
	"github.com/yuanzhongqiao/Kratos/inp"
	"github.com/yuanzhongqiao/Kratos/mdl/solid"
)

// names of submodel parts of patch models
const (
	DIRICHLET = "dirichlet"
	NEUMANN   = "neumann"
)

// patchNodes holds the coordinates of the patch nodes; ids start at 1.
// the triangle mesh uses the first 5 nodes
var patchNodes = [][]float64{
	{-0.5, -0.45, 0.1},
	{0.7, -0.5, 0.2},
	{0.55, 0.6, 0.15},
	{-0.48, 0.65, 0.0},
	{0.02, -0.01, -0.15},
	{-0.03, -0.5, 0.0},
	{0.51, 0.02, 0.03},
	{-0.01, 0.52, -0.05},
	{-0.49, 0.0, 0.0},
}

// connectivity of patch meshes
var (
	patchTris  = [][]int{{1, 2, 5}, {2, 3, 5}, {3, 4, 5}, {4, 1, 5}}
	patchQuads = [][]int{{1, 6, 5, 9}, {6, 2, 7, 5}, {5, 7, 3, 8}, {9, 5, 8, 4}}
)

// PatchSupports holds the ids of nodes with all unknowns fixed
var PatchSupports = []int{1, 2, 4}

// NewPatchModel builds the patch model of a simulation: nodes, properties, elements, point loads
// and the "dirichlet" and "neumann" submodel parts
func NewPatchModel(sim *inp.Simulation) (model *Model, err error) {

	// element kind
	kind, err := ele.ParseKind(sim.Patch.Element)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInput)
	}
	cells := patchTris
	if kind.Nverts() == 4 {
		cells = patchQuads
	}
	nnod := 0
	for _, verts := range cells {
		for _, id := range verts {
			if id > nnod {
				nnod = id
			}
		}
	}

	// nodes
	model = NewModel("patch", sim.Solver.Nbuffer)
	for i := 0; i < nnod; i++ {
		x := patchNodes[i]
		if _, err = model.AddNode(i+1, x[0], x[1], x[2]); err != nil {
			return nil, err
		}
	}

	// properties
	prop, err := NewShellProperties(0, &sim.Mat)
	if err != nil {
		return nil, err
	}
	if err = model.AddProperties(prop); err != nil {
		return nil, err
	}

	// elements
	for i, verts := range cells {
		if _, err = model.AddElement(kind, i+1, verts, prop.Id); err != nil {
			return nil, err
		}
	}

	// supports
	dirichlet, err := model.AddSubModelPart(DIRICHLET)
	if err != nil {
		return nil, err
	}
	if err = dirichlet.AddNodes(PatchSupports...); err != nil {
		return nil, err
	}

	// point loads
	neumann, err := model.AddSubModelPart(NEUMANN)
	if err != nil {
		return nil, err
	}
	if err = neumann.AddNodes(sim.Patch.Loaded...); err != nil {
		return nil, err
	}
	for i, id := range sim.Patch.Loaded {
		if err = model.Node(id).SetValue(POINT_LOAD, sim.Patch.Load...); err != nil {
			return nil, fmt.Errorf("node %d: %v: %w", id, err, ErrInput)
		}
		if _, err = model.AddCondition("point-load", i+1, []int{id}, prop.Id); err != nil {
			return nil, err
		}
		if err = neumann.AddConditions(i + 1); err != nil {
			return nil, err
		}
	}
	return
}

// NewShellProperties returns properties with the constitutive law and section data of mat
func NewShellProperties(id int, mat *inp.MatData) (prop *ele.Properties, err error) {
	law, err := solid.New(mat.Model)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInput)
	}
	if err = law.Init(mat.Prms); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInput)
	}
	prop = ele.NewProperties(id)
	prop.Law = law
	if p := mat.Prms.Find("E"); p != nil {
		prop.SetValue(ele.YOUNG_MODULUS, p.V)
	}
	if p := mat.Prms.Find("nu"); p != nil {
		prop.SetValue(ele.POISSON_RATIO, p.V)
	}
	prop.SetValue(ele.THICKNESS, mat.Thick)
	prop.SetValue(ele.DENSITY, mat.Rho)
	g := []float64{0, 0, 0}
	if len(mat.Grav) == 3 {
		g = mat.Grav
	}
	prop.SetVector(ele.VOLUME_ACCELERATION, g)
	return
}

// AddShellDofs registers the unknowns of shells (and their reactions) at all nodes
func AddShellDofs(dofs *DofRegistry) (err error) {
	for _, key := range ele.ShellDofs {
		if err = dofs.RegisterUnknown(key, ele.ShellY2F[key], nil); err != nil {
			return
		}
	}
	return
}

// FixPatchSupports fixes all unknowns of nodes in the "dirichlet" part
func FixPatchSupports(model *Model, dofs *DofRegistry) (err error) {
	part := model.SubModelPart(DIRICHLET)
	if part == nil {
		return fmt.Errorf("cannot find part %q: %w", DIRICHLET, ErrInput)
	}
	for _, key := range ele.ShellDofs {
		if err = dofs.Fix(key, part); err != nil {
			return
		}
	}
	return
}
