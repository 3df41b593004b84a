// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "gonum.org/v1/gonum/mat"

// BuildCoordsMatrix returns the reference coordinate matrix [3][nverts] of vertices
func BuildCoordsMatrix(verts []Vertex) (x [][]float64) {
	x = make([][]float64, 3)
	for i := 0; i < 3; i++ {
		x[i] = make([]float64, len(verts))
		for j, v := range verts {
			x[i][j] = v.X0()[i]
		}
	}
	return
}

// BuildUmap returns the assembly map from equations per vertex
func BuildUmap(eqs [][]int) (umap []int) {
	for _, veqs := range eqs {
		umap = append(umap, veqs...)
	}
	return
}

// AddToMat scatter-adds local matrix K into global matrix Kb according to umap
func AddToMat(Kb *mat.Dense, umap []int, K [][]float64) {
	for i, I := range umap {
		for j, J := range umap {
			Kb.Set(I, J, Kb.At(I, J)+K[i][j])
		}
	}
}
