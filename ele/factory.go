// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Kind is the tag selecting an element formulation
type Kind int

// element kinds
const (
	ThinTri   Kind = iota // thin (Kirchhoff) corotational triangle
	ThickTri              // thick (Reissner-Mindlin) corotational triangle
	ThinQuad              // thin (Kirchhoff) corotational quadrilateral
	ThickQuad             // thick (Reissner-Mindlin) corotational quadrilateral
	nkinds
)

var kindNames = []string{"thin-tri", "thick-tri", "thin-quad", "thick-quad"}

// String returns the name of kind
func (o Kind) String() string {
	if o < 0 || o >= nkinds {
		return "unknown"
	}
	return kindNames[o]
}

// Nverts returns the number of vertices of elements of this kind
func (o Kind) Nverts() int {
	if o == ThinQuad || o == ThickQuad {
		return 4
	}
	return 3
}

// Thick tells whether the formulation includes transverse shear deformation
func (o Kind) Thick() bool {
	return o == ThickTri || o == ThickQuad
}

// ParseKind returns the kind corresponding to name; e.g. "thin-tri"
func ParseKind(name string) (kind Kind, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return -1, chk.Err("element kind %q is not available. options are %v", name, kindNames)
}

// Kinds returns all kinds with allocators
func Kinds() (kinds []Kind) {
	for k := ThinTri; k < nkinds; k++ {
		if _, ok := allocators[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return
}

// AllocatorType defines a function that allocates an element
type AllocatorType func(id int, verts []Vertex, prop *Properties) Element

// CondAllocatorType defines a function that allocates a condition
type CondAllocatorType func(id int, verts []Vertex, prop *Properties) Condition

// GetInfo returns information about elements from factory
func GetInfo(kind Kind) (info *Info, err error) {
	if _, ok := allocators[kind]; !ok {
		return nil, chk.Err("cannot get info for element kind %v", kind)
	}
	return NewShellInfo(kind.Nverts()), nil
}

// New returns a new element from factory
func New(kind Kind, id int, verts []Vertex, prop *Properties) (ele Element, err error) {
	fcn, ok := allocators[kind]
	if !ok {
		return nil, chk.Err("cannot get allocator for element {kind=%v, id=%d}", kind, id)
	}
	if len(verts) != kind.Nverts() {
		return nil, chk.Err("element {kind=%v, id=%d} requires %d nodes. %d is invalid", kind, id, kind.Nverts(), len(verts))
	}
	ele = fcn(id, verts, prop)
	if ele == nil {
		return nil, chk.Err("element {kind=%v, id=%d} is not available", kind, id)
	}
	return
}

// NewCond returns a new condition from factory
func NewCond(name string, id int, verts []Vertex, prop *Properties) (cond Condition, err error) {
	fcn, ok := condAllocators[name]
	if !ok {
		return nil, chk.Err("cannot get allocator for condition {name=%q, id=%d}", name, id)
	}
	cond = fcn(id, verts, prop)
	if cond == nil {
		return nil, chk.Err("condition {name=%q, id=%d} is not available", name, id)
	}
	return
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(kind Kind, fcn AllocatorType) {
	if _, ok := allocators[kind]; ok {
		chk.Panic("cannot set allocator function for %v because element kind exists already", kind)
	}
	allocators[kind] = fcn
}

// SetCondAllocator sets a new callback function to allocate a condition
func SetCondAllocator(name string, fcn CondAllocatorType) {
	if _, ok := condAllocators[name]; ok {
		chk.Panic("cannot set allocator function for %q because condition name exists already", name)
	}
	condAllocators[name] = fcn
}

// allocators holds all element allocators
var allocators = make(map[Kind]AllocatorType)

// condAllocators holds all condition allocators
var condAllocators = make(map[string]CondAllocatorType)
