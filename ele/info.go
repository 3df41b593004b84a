// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Info holds all information required to register unknowns
type Info struct {
	Dofs [][]string        // solution variables PER NODE. ex for 2 nodes: [["ux", "uy", "rz"], ["ux", "uy", "rz"]]
	Y2F  map[string]string // maps "y" keys to "f" keys. ex: "ux" => "fx", "rx" => "mx"
}

// shell dofs and reaction keys
var (
	ShellDofs = []string{"ux", "uy", "uz", "rx", "ry", "rz"}
	ShellY2F  = map[string]string{"ux": "fx", "uy": "fy", "uz": "fz", "rx": "mx", "ry": "my", "rz": "mz"}
)

// NewShellInfo returns information for elements with 3 translations and 3 rotations per node
func NewShellInfo(nverts int) *Info {
	o := &Info{Dofs: make([][]string, nverts), Y2F: ShellY2F}
	for m := 0; m < nverts; m++ {
		o.Dofs[m] = ShellDofs
	}
	return o
}
