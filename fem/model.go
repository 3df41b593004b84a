// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"
	"sort"

	"github.com/yuanzhongqiao/Kratos/ele"
)

// Cell holds an element or condition together with its nodes
type Cell struct {
	Id    int             // element or condition id
	Nodes []*Node         // nodes in local order
	Prop  *ele.Properties // properties
	Kind  ele.Kind        // element kind (elements only)
	Elem  ele.Element     // element; nil for conditions
	Cond  ele.Condition   // condition (elements are conditions as well)
}

// SubModelPart holds a named subset of nodes, elements and conditions of a model
type SubModelPart struct {
	Name  string       // name; e.g. "dirichlet"
	model *Model       // owner
	nodes map[int]bool // node ids
	elems map[int]bool // element ids
	conds map[int]bool // condition ids
}

// AddNodes adds existent nodes to part
func (o *SubModelPart) AddNodes(ids ...int) (err error) {
	for _, id := range ids {
		if _, ok := o.model.nodes[id]; !ok {
			return fmt.Errorf("part %q: cannot find node %d: %w", o.Name, id, ErrInput)
		}
		o.nodes[id] = true
	}
	return
}

// AddElements adds existent elements to part
func (o *SubModelPart) AddElements(ids ...int) (err error) {
	for _, id := range ids {
		if _, ok := o.model.elems[id]; !ok {
			return fmt.Errorf("part %q: cannot find element %d: %w", o.Name, id, ErrInput)
		}
		o.elems[id] = true
	}
	return
}

// AddConditions adds existent conditions to part
func (o *SubModelPart) AddConditions(ids ...int) (err error) {
	for _, id := range ids {
		if _, ok := o.model.conds[id]; !ok {
			return fmt.Errorf("part %q: cannot find condition %d: %w", o.Name, id, ErrInput)
		}
		o.conds[id] = true
	}
	return
}

// Nodes returns the nodes of part sorted by id
func (o *SubModelPart) Nodes() (nodes []*Node) {
	for _, id := range sortedKeys(o.nodes) {
		nodes = append(nodes, o.model.nodes[id])
	}
	return
}

// ElementIds returns the ids of elements in part (sorted)
func (o *SubModelPart) ElementIds() []int { return sortedKeys(o.elems) }

// ConditionIds returns the ids of conditions in part (sorted)
func (o *SubModelPart) ConditionIds() []int { return sortedKeys(o.conds) }

// Model holds nodes, elements, conditions, properties and submodel parts
//  Note: the model must not be modified during a solve
type Model struct {
	Name    string                   // name of model
	Nbuffer int                      // number of buffered steps in nodes
	nodes   map[int]*Node            // all nodes
	elems   map[int]*Cell            // all elements
	conds   map[int]*Cell            // all conditions
	props   map[int]*ele.Properties  // all properties
	parts   map[string]*SubModelPart // all parts
}

// NewModel returns a new empty model
func NewModel(name string, nbuffer int) (o *Model) {
	if nbuffer < 2 {
		nbuffer = 2
	}
	return &Model{
		Name:    name,
		Nbuffer: nbuffer,
		nodes:   make(map[int]*Node),
		elems:   make(map[int]*Cell),
		conds:   make(map[int]*Cell),
		props:   make(map[int]*ele.Properties),
		parts:   make(map[string]*SubModelPart),
	}
}

// AddNode adds a new node
func (o *Model) AddNode(id int, x, y, z float64) (nod *Node, err error) {
	if _, ok := o.nodes[id]; ok {
		return nil, fmt.Errorf("node %d exists already: %w", id, ErrInput)
	}
	nod = NewNode(id, x, y, z, o.Nbuffer)
	o.nodes[id] = nod
	return
}

// AddProperties adds a new set of properties
func (o *Model) AddProperties(prop *ele.Properties) (err error) {
	if prop == nil {
		return fmt.Errorf("properties must not be nil: %w", ErrInput)
	}
	if _, ok := o.props[prop.Id]; ok {
		return fmt.Errorf("properties %d exist already: %w", prop.Id, ErrInput)
	}
	o.props[prop.Id] = prop
	return
}

// AddElement allocates and adds a new element
func (o *Model) AddElement(kind ele.Kind, id int, nodeIds []int, propId int) (e ele.Element, err error) {
	if _, ok := o.elems[id]; ok {
		return nil, fmt.Errorf("element %d exists already: %w", id, ErrInput)
	}
	nodes, prop, err := o.collect(label("element", id), nodeIds, propId)
	if err != nil {
		return
	}
	if len(nodes) != kind.Nverts() {
		return nil, fmt.Errorf("element %d: kind %v requires %d nodes. %d is invalid: %w", id, kind, kind.Nverts(), len(nodes), ErrInput)
	}
	e, err = ele.New(kind, id, vertices(nodes), prop)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInput)
	}
	o.elems[id] = &Cell{Id: id, Nodes: nodes, Prop: prop, Kind: kind, Elem: e, Cond: e}
	return
}

// AddCondition allocates and adds a new condition; e.g. "point-load"
func (o *Model) AddCondition(name string, id int, nodeIds []int, propId int) (c ele.Condition, err error) {
	if _, ok := o.conds[id]; ok {
		return nil, fmt.Errorf("condition %d exists already: %w", id, ErrInput)
	}
	nodes, prop, err := o.collect(label("condition", id), nodeIds, propId)
	if err != nil {
		return
	}
	c, err = ele.NewCond(name, id, vertices(nodes), prop)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInput)
	}
	o.conds[id] = &Cell{Id: id, Nodes: nodes, Prop: prop, Cond: c}
	return
}

// AddSubModelPart adds a new empty part
func (o *Model) AddSubModelPart(name string) (part *SubModelPart, err error) {
	if _, ok := o.parts[name]; ok {
		return nil, fmt.Errorf("part %q exists already: %w", name, ErrInput)
	}
	part = &SubModelPart{Name: name, model: o, nodes: make(map[int]bool), elems: make(map[int]bool), conds: make(map[int]bool)}
	o.parts[name] = part
	return
}

// Node returns node by id or nil
func (o *Model) Node(id int) *Node { return o.nodes[id] }

// Element returns element by id or nil
func (o *Model) Element(id int) ele.Element {
	if c, ok := o.elems[id]; ok {
		return c.Elem
	}
	return nil
}

// Condition returns condition by id or nil
func (o *Model) Condition(id int) ele.Condition {
	if c, ok := o.conds[id]; ok {
		return c.Cond
	}
	return nil
}

// Properties returns properties by id or nil
func (o *Model) Properties(id int) *ele.Properties { return o.props[id] }

// SubModelPart returns part by name or nil
func (o *Model) SubModelPart(name string) *SubModelPart { return o.parts[name] }

// NodesSorted returns all nodes sorted by id
func (o *Model) NodesSorted() (nodes []*Node) {
	ids := make([]int, 0, len(o.nodes))
	for id := range o.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		nodes = append(nodes, o.nodes[id])
	}
	return
}

// ElementsSorted returns all elements sorted by id
func (o *Model) ElementsSorted() (elems []ele.Element) {
	for _, c := range sortedCells(o.elems) {
		elems = append(elems, c.Elem)
	}
	return
}

// ConditionsSorted returns all conditions sorted by id
func (o *Model) ConditionsSorted() (conds []ele.Condition) {
	for _, c := range sortedCells(o.conds) {
		conds = append(conds, c.Cond)
	}
	return
}

// ElementCells returns element cells sorted by id
func (o *Model) ElementCells() []*Cell { return sortedCells(o.elems) }

// ConditionCells returns condition cells sorted by id
func (o *Model) ConditionCells() []*Cell { return sortedCells(o.conds) }

// CloneStep advances the history buffers of all nodes
func (o *Model) CloneStep() {
	for _, nod := range o.nodes {
		nod.Hist.CloneStep()
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// collect finds nodes and properties
func (o *Model) collect(what string, nodeIds []int, propId int) (nodes []*Node, prop *ele.Properties, err error) {
	prop, ok := o.props[propId]
	if !ok {
		return nil, nil, fmt.Errorf("%s: cannot find properties %d: %w", what, propId, ErrInput)
	}
	seen := make(map[int]bool)
	for _, id := range nodeIds {
		nod, ok := o.nodes[id]
		if !ok {
			return nil, nil, fmt.Errorf("%s: cannot find node %d: %w", what, id, ErrInput)
		}
		if seen[id] {
			return nil, nil, fmt.Errorf("%s: node %d is repeated: %w", what, id, ErrInput)
		}
		seen[id] = true
		nodes = append(nodes, nod)
	}
	return
}

// label returns a label for messages
func label(what string, id int) string { return fmt.Sprintf("%s %d", what, id) }

func vertices(nodes []*Node) (verts []ele.Vertex) {
	verts = make([]ele.Vertex, len(nodes))
	for i, nod := range nodes {
		verts[i] = nod
	}
	return
}

func sortedKeys(m map[int]bool) (ids []int) {
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return
}

func sortedCells(m map[int]*Cell) (cells []*Cell) {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		cells = append(cells, m[id])
	}
	return
}
