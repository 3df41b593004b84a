// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package load implements conditions contributing external forces
package load

import (
	"github.com/cpmech/gosl/chk"
	"github.com/yuanzhongqiao/Kratos/ele"
)

// POINT_LOAD is the nodal key holding the force applied at a node
const POINT_LOAD = "POINT_LOAD"

// PointLoad applies the force stored at its node to the translational unknowns.
// It has no stiffness
type PointLoad struct {
	Cid  int             // condition id
	Vert ele.Vertex      // loaded vertex
	Prop *ele.Properties // properties (not used)
	Umap []int           // assembly map: {ux, uy, uz}
}

// register condition
func init() {
	ele.SetCondAllocator("point-load", func(id int, verts []ele.Vertex, prop *ele.Properties) ele.Condition {
		o := &PointLoad{Cid: id, Prop: prop}
		if len(verts) == 1 {
			o.Vert = verts[0]
		}
		return o
	})
}

// Id returns the cell Id
func (o *PointLoad) Id() int { return o.Cid }

// SetEqs sets equations
func (o *PointLoad) SetEqs(eqs [][]int) (err error) {
	if len(eqs) != 1 || len(eqs[0]) < 3 {
		return chk.Err("point load %d: equations must be given for 1 node with at least 3 unknowns", o.Cid)
	}
	o.Umap = eqs[0][:3]
	return
}

// Check checks that the condition is attached to exactly one node
func (o *PointLoad) Check() (err error) {
	if o.Vert == nil {
		return chk.Err("point load %d: condition requires exactly one node", o.Cid)
	}
	return
}

// AddToRhs adds the current point load to the global residual vector fb
func (o *PointLoad) AddToRhs(fb []float64, sol *ele.Solution) (err error) {
	f := o.Vert.Value(POINT_LOAD, 0)
	if len(f) == 0 {
		return
	}
	if len(f) != 3 {
		return chk.Err("point load %d: POINT_LOAD of node %d must have 3 components. %d is invalid", o.Cid, o.Vert.Id(), len(f))
	}
	for i, I := range o.Umap {
		fb[I] += f[i]
	}
	return
}
