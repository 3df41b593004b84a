// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// vertex implements Vertex
type vertex struct {
	id int
	x  []float64
}

func (o vertex) Id() int                              { return o.id }
func (o vertex) X0() []float64                        { return o.x }
func (o vertex) Value(key string, step int) []float64 { return nil }

func Test_aux01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("aux01. coordinates matrix and assembly")

	verts := []Vertex{
		vertex{1, []float64{-0.5, -0.45, 0.1}},
		vertex{2, []float64{0.7, -0.5, 0.2}},
		vertex{5, []float64{0.02, -0.01, -0.15}},
	}
	x := BuildCoordsMatrix(verts)
	chk.Array(tst, "x", 1e-17, x[0], []float64{-0.5, 0.7, 0.02})
	chk.Array(tst, "y", 1e-17, x[1], []float64{-0.45, -0.5, -0.01})
	chk.Array(tst, "z", 1e-17, x[2], []float64{0.1, 0.2, -0.15})

	umap := BuildUmap([][]int{{4, 5}, {0, 1}})
	chk.Ints(tst, "umap", umap, []int{4, 5, 0, 1})
	Kb := mat.NewDense(6, 6, nil)
	AddToMat(Kb, umap, [][]float64{{1, 2, 0, 0}, {2, 3, 0, 0}, {0, 0, 4, 0}, {0, 0, 0, 5}})
	AddToMat(Kb, umap, [][]float64{{1, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	chk.Float64(tst, "K44", 1e-17, Kb.At(4, 4), 2)
	chk.Float64(tst, "K45", 1e-17, Kb.At(4, 5), 2)
	chk.Float64(tst, "K00", 1e-17, Kb.At(0, 0), 4)
	chk.Float64(tst, "K11", 1e-17, Kb.At(1, 1), 5)
}

func Test_solution01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solution01. copy and increments")

	sol := NewSolution(3)
	copy(sol.Y, []float64{1, 2, 3})
	copy(sol.ΔY, []float64{0.1, 0.2, 0.3})
	c := sol.GetCopy()
	sol.Y[0], sol.ΔY[0] = -1, -1
	chk.Array(tst, "Y copy", 1e-17, c.Y, []float64{1, 2, 3})
	chk.Array(tst, "ΔY copy", 1e-17, c.ΔY, []float64{0.1, 0.2, 0.3})

	c.ResetIncrements()
	chk.Array(tst, "ΔY reset", 1e-17, c.ΔY, []float64{0, 0, 0})
	chk.Array(tst, "Y kept", 1e-17, c.Y, []float64{1, 2, 3})
}
