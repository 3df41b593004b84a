// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
)

// nodal variables
const (
	DISPLACEMENT        = "DISPLACEMENT"
	ROTATION            = "ROTATION"
	REACTION            = "REACTION"
	REACTION_MOMENT     = "REACTION_MOMENT"
	VOLUME_ACCELERATION = "VOLUME_ACCELERATION"
	POINT_LOAD          = "POINT_LOAD"
)

// NodalVars holds the variables stored by all nodes (3 components each)
var NodalVars = []string{DISPLACEMENT, ROTATION, REACTION, REACTION_MOMENT, VOLUME_ACCELERATION, POINT_LOAD}

// History holds a fixed number of buffered steps of nodal variables.
//  step 0 is the current step; step 1 is the previous one and so on
type History struct {
	vals [][][]float64 // [nbuffer][nvars][3]
	cur  int           // index of current step in vals
}

// NewHistory returns a new history with nbuffer steps (at least 2)
func NewHistory(nbuffer int) (o *History) {
	if nbuffer < 2 {
		nbuffer = 2
	}
	o = new(History)
	o.vals = make([][][]float64, nbuffer)
	for i := range o.vals {
		o.vals[i] = make([][]float64, len(NodalVars))
		for j := range o.vals[i] {
			o.vals[i][j] = make([]float64, 3)
		}
	}
	return
}

// Nbuffer returns the number of buffered steps
func (o *History) Nbuffer() int { return len(o.vals) }

// Get returns the values of variable @ step. It returns nil if key or step are invalid.
//  Note: the returned slice is owned by the history
func (o *History) Get(key string, step int) []float64 {
	j := varIndex(key)
	if j < 0 || step < 0 || step >= len(o.vals) {
		return nil
	}
	n := len(o.vals)
	return o.vals[(o.cur-step+n)%n][j]
}

// Set sets the values of variable @ step
func (o *History) Set(key string, step int, v []float64) (err error) {
	dst := o.Get(key, step)
	if dst == nil {
		return chk.Err("cannot set %q @ step %d", key, step)
	}
	if len(v) != 3 {
		return chk.Err("%q requires 3 components. %d is invalid", key, len(v))
	}
	copy(dst, v)
	return
}

// CloneStep advances the buffer. The new current step starts with a copy of the previous one
func (o *History) CloneStep() {
	prev := o.vals[o.cur]
	o.cur = (o.cur + 1) % len(o.vals)
	for j := range prev {
		copy(o.vals[o.cur][j], prev[j])
	}
}

// Node holds node data: id, coordinates, buffered values and degrees of freedom
type Node struct {
	id   int            // identifier
	x0   []float64      // reference coordinates
	X    []float64      // current coordinates (updated when the mesh moves)
	Hist *History       // buffered values
	Dofs []*Dof         // degrees of freedom in registration order
	dofs map[string]int // key => index in Dofs
}

// NewNode allocates a new node
func NewNode(id int, x, y, z float64, nbuffer int) (o *Node) {
	o = new(Node)
	o.id = id
	o.x0 = []float64{x, y, z}
	o.X = []float64{x, y, z}
	o.Hist = NewHistory(nbuffer)
	o.dofs = make(map[string]int)
	return
}

// Id returns the node identifier
func (o *Node) Id() int { return o.id }

// X0 returns the reference coordinates
func (o *Node) X0() []float64 { return o.x0 }

// Value returns buffered values; e.g. "POINT_LOAD" @ step 0
func (o *Node) Value(key string, step int) []float64 { return o.Hist.Get(key, step) }

// SetValue sets current (step 0) values
func (o *Node) SetValue(key string, v ...float64) error { return o.Hist.Set(key, 0, v) }

// GetDof returns the degree of freedom corresponding to key; e.g. "ux". Returns nil if not found
func (o *Node) GetDof(key string) *Dof {
	if idx, ok := o.dofs[key]; ok {
		return o.Dofs[idx]
	}
	return nil
}

// GetEq returns the (full) equation number corresponding to key. Returns -1 if not found
func (o *Node) GetEq(key string) int {
	if d := o.GetDof(key); d != nil {
		return d.Eq
	}
	return -1
}

// addDof adds a new degree of freedom if it does not exist yet
func (o *Node) addDof(key, reaction string) (d *Dof, isnew bool) {
	if d = o.GetDof(key); d != nil {
		return d, false
	}
	d = &Dof{Node: o, Key: key, Reaction: reaction, Eq: -1, Idx: -1}
	o.dofs[key] = len(o.Dofs)
	o.Dofs = append(o.Dofs, d)
	return d, true
}

// move sets current coordinates to reference coordinates plus current displacements
func (o *Node) move() {
	u := o.Value(DISPLACEMENT, 0)
	for i := 0; i < 3; i++ {
		o.X[i] = o.x0[i] + u[i]
	}
}

// varIndex returns the index of variable in NodalVars
func varIndex(key string) int {
	for i, k := range NodalVars {
		if k == key {
			return i
		}
	}
	return -1
}
