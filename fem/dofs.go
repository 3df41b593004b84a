// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"

	"github.com/cpmech/gosl/io"
)

// Dof holds a (node, component) pair
type Dof struct {
	Node     *Node   // owner
	Key      string  // unknown key; e.g. "ux", "rz"
	Reaction string  // paired reaction key; e.g. "fx", "mz"
	Fixed    bool    // constrained
	Value    float64 // prescribed value (fixed only)
	Eq       int     // full equation number; -1 if not numbered
	Idx      int     // reduced equation number; -1 if fixed or not numbered
}

// variable and component corresponding to unknown and reaction keys
var dofVars = map[string]struct {
	Var  string
	Comp int
}{
	"ux": {DISPLACEMENT, 0}, "uy": {DISPLACEMENT, 1}, "uz": {DISPLACEMENT, 2},
	"rx": {ROTATION, 0}, "ry": {ROTATION, 1}, "rz": {ROTATION, 2},
	"fx": {REACTION, 0}, "fy": {REACTION, 1}, "fz": {REACTION, 2},
	"mx": {REACTION_MOMENT, 0}, "my": {REACTION_MOMENT, 1}, "mz": {REACTION_MOMENT, 2},
}

// GetValue returns the current nodal value of the unknown
func (o *Dof) GetValue() float64 {
	v := dofVars[o.Key]
	return o.Node.Value(v.Var, 0)[v.Comp]
}

// SetValue sets the current nodal value of the unknown
func (o *Dof) SetValue(value float64) {
	v := dofVars[o.Key]
	o.Node.Value(v.Var, 0)[v.Comp] = value
}

// SetReaction sets the current nodal value of the paired reaction
func (o *Dof) SetReaction(value float64) {
	v := dofVars[o.Reaction]
	o.Node.Value(v.Var, 0)[v.Comp] = value
}

// DofRegistry maps the unknowns of nodes to equation numbers
//
//   Full equation numbers are given to all degrees of freedom in the order of node ids (ascending)
//   and then registration order of keys. Free degrees of freedom also receive contiguous reduced
//   numbers, in the same order
//
type DofRegistry struct {
	Model *Model   // mesh model
	Keys  []string // registered keys in registration order
	Dofs  []*Dof   // all numbered dofs; Dofs[eq].Eq == eq
	Free  []*Dof   // free dofs; Free[idx].Idx == idx
	Fixed []*Dof   // fixed dofs
}

// NewDofRegistry returns a new registry for model
func NewDofRegistry(model *Model) *DofRegistry {
	return &DofRegistry{Model: model}
}

// RegisterUnknown adds the unknown key and its reaction to all nodes in scope. A nil scope means
// all nodes of model. Repeated registrations are ignored
func (o *DofRegistry) RegisterUnknown(key, reaction string, scope *SubModelPart) (err error) {
	if _, ok := dofVars[key]; !ok {
		return fmt.Errorf("unknown %q is not available: %w", key, ErrDofScope)
	}
	if _, ok := dofVars[reaction]; !ok {
		return fmt.Errorf("reaction %q is not available: %w", reaction, ErrDofScope)
	}
	found := false
	for _, k := range o.Keys {
		found = found || k == key
	}
	if !found {
		o.Keys = append(o.Keys, key)
	}
	for _, nod := range o.scope(scope) {
		d, isnew := nod.addDof(key, reaction)
		if !isnew && d.Reaction != reaction {
			return fmt.Errorf("unknown %q of node %d is already paired with reaction %q: %w", key, nod.Id(), d.Reaction, ErrDofScope)
		}
	}
	return
}

// Fix constrains the unknown key of all nodes in scope. The current nodal value is held
func (o *DofRegistry) Fix(key string, scope *SubModelPart) (err error) {
	return o.fix(key, scope, false, 0)
}

// FixValue constrains the unknown key of all nodes in scope with the prescribed value
func (o *DofRegistry) FixValue(key string, value float64, scope *SubModelPart) (err error) {
	return o.fix(key, scope, true, value)
}

// Release frees the unknown key of all nodes in scope
func (o *DofRegistry) Release(key string, scope *SubModelPart) (err error) {
	for _, nod := range o.scope(scope) {
		d := nod.GetDof(key)
		if d == nil {
			return fmt.Errorf("node %d does not have unknown %q: %w", nod.Id(), key, ErrDofScope)
		}
		d.Fixed = false
	}
	return
}

// Number sets full and reduced equation numbers
func (o *DofRegistry) Number() (err error) {
	o.Dofs, o.Free, o.Fixed = nil, nil, nil
	for _, nod := range o.Model.NodesSorted() {
		for _, key := range o.Keys {
			d := nod.GetDof(key)
			if d == nil {
				continue
			}
			d.Eq, d.Idx = len(o.Dofs), -1
			o.Dofs = append(o.Dofs, d)
			if d.Fixed {
				o.Fixed = append(o.Fixed, d)
				continue
			}
			d.Idx = len(o.Free)
			o.Free = append(o.Free, d)
		}
	}
	if len(o.Dofs) == 0 {
		return fmt.Errorf("there are no degrees of freedom to be numbered: %w", ErrDofScope)
	}
	return
}

// Ny returns the total number of equations
func (o *DofRegistry) Ny() int { return len(o.Dofs) }

// Nfree returns the number of free equations
func (o *DofRegistry) Nfree() int { return len(o.Free) }

// Eqs returns the full equation numbers of nodes; one row per node with the given keys
func (o *DofRegistry) Eqs(nodes []*Node, keys [][]string) (eqs [][]int, err error) {
	eqs = make([][]int, len(nodes))
	for m, nod := range nodes {
		for _, key := range keys[m] {
			eq := nod.GetEq(key)
			if eq < 0 {
				return nil, fmt.Errorf("node %d does not have numbered unknown %q: %w", nod.Id(), key, ErrDofScope)
			}
			eqs[m] = append(eqs[m], eq)
		}
	}
	return
}

// String returns a table with all dofs
func (o *DofRegistry) String() (l string) {
	l = io.Sf("%5s%5s%5s%8s%8s%15s\n", "node", "key", "fix", "eq", "idx", "value")
	for _, d := range o.Dofs {
		l += io.Sf("%5d%5s%5v%8d%8d%15g\n", d.Node.Id(), d.Key, d.Fixed, d.Eq, d.Idx, d.Value)
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

func (o *DofRegistry) fix(key string, scope *SubModelPart, prescribed bool, value float64) (err error) {
	for _, nod := range o.scope(scope) {
		d := nod.GetDof(key)
		if d == nil {
			return fmt.Errorf("cannot fix %q of node %d because it was not registered: %w", key, nod.Id(), ErrDofScope)
		}
		d.Fixed = true
		d.Value = value
		if !prescribed {
			d.Value = d.GetValue()
		}
	}
	return
}

func (o *DofRegistry) scope(part *SubModelPart) []*Node {
	if part == nil {
		return o.Model.NodesSorted()
	}
	return part.Nodes()
}
