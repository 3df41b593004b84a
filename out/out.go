// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements FE simulation output handling: ordered tables of nodal and
// integration point results
package out

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/yuanzhongqiao/Kratos/ana"
	"github.com/yuanzhongqiao/Kratos/ele"
	"github.com/yuanzhongqiao/Kratos/fem"
)

// IpData holds element id, coordinates and values of an integration point
type IpData struct {
	Cid  int                // id of cell/element holding this integration point
	Idx  int                // index of integration point in cell
	X    []float64          // coordinates of integration point
	Vals map[string]float64 // current values
}

// Results holds the results of a solved model
type Results struct {
	Model   *fem.Model    // the model
	Nodes   []*fem.Node   // nodes sorted by id
	Ipoints []*IpData     // all integration points. ipid == index in Ipoints
	Cid2ips map[int][]int // maps cell id to indices in Ipoints
	Ipkeys  []string      // all ip keys (sorted)
}

// Collect collects the current results of model
func Collect(model *fem.Model, sol *ele.Solution) (o *Results, err error) {
	o = new(Results)
	o.Model = model
	o.Nodes = model.NodesSorted()
	o.Cid2ips = make(map[int][]int)
	keys := make(map[string]bool)
	for _, e := range model.ElementsSorted() {
		eo, ok := e.(ele.CanOutputIps)
		if !ok {
			continue
		}
		M := ele.NewIpsMap()
		if err = eo.OutIpVals(M, sol); err != nil {
			return nil, chk.Err("cannot get values @ ips of element %d:\n%v", eo.Id(), err)
		}
		for idx, x := range eo.OutIpCoords() {
			p := &IpData{Cid: eo.Id(), Idx: idx, X: x, Vals: make(map[string]float64)}
			for _, key := range eo.OutIpKeys() {
				p.Vals[key] = M.Get(key, idx)
				keys[key] = true
			}
			o.Cid2ips[p.Cid] = append(o.Cid2ips[p.Cid], len(o.Ipoints))
			o.Ipoints = append(o.Ipoints, p)
		}
	}
	for key := range keys {
		o.Ipkeys = append(o.Ipkeys, key)
	}
	sort.Strings(o.Ipkeys)
	return
}

// NodalTable returns a table with nodal values; e.g. keys = "DISPLACEMENT", "ROTATION"
func (o *Results) NodalTable(keys ...string) (l string) {
	l = io.Sf("%6s", "node")
	for _, key := range keys {
		for _, c := range []string{"x", "y", "z"} {
			l += io.Sf("%16s", io.Sf("%s_%s", abbrev(key), c))
		}
	}
	l += "\n"
	for _, nod := range o.Nodes {
		l += io.Sf("%6d", nod.Id())
		for _, key := range keys {
			v := nod.Value(key, 0)
			if v == nil {
				v = []float64{0, 0, 0}
			}
			l += io.Sf("%16.8e%16.8e%16.8e", v[0], v[1], v[2])
		}
		l += "\n"
	}
	return
}

// IpTable returns a table with values at integration points. All keys are printed if none is given
func (o *Results) IpTable(keys ...string) (l string) {
	if len(keys) == 0 {
		keys = o.Ipkeys
	}
	l = io.Sf("%6s%4s", "cell", "ip")
	for _, key := range keys {
		l += io.Sf("%16s", key)
	}
	l += "\n"
	for _, p := range o.Ipoints {
		l += io.Sf("%6d%4d", p.Cid, p.Idx)
		for _, key := range keys {
			l += io.Sf("%16.8e", p.Vals[key])
		}
		l += "\n"
	}
	return
}

// Compare returns a table comparing results with reference values @ node and first integration
// point of element
func (o *Results) Compare(ref *ana.PatchRef, nodeId, cid int) (l string, err error) {
	nod := o.Model.Node(nodeId)
	if nod == nil {
		return "", chk.Err("cannot find node %d", nodeId)
	}
	e, ok := o.Model.Element(cid).(ele.CanRecoverStress)
	if !ok {
		return "", chk.Err("element %d cannot recover stresses", cid)
	}
	row := func(name string, res, ref []float64) {
		for i := range ref {
			l += io.Sf("%-6s%3d%23.13e%23.13e\n", name, i, res[i], ref[i])
		}
	}
	l = io.Sf("%-6s%3s%23s%23s\n", "item", "i", "result", "reference")
	row("disp", nod.Value(fem.DISPLACEMENT, 0), ref.Disp)
	row("rot", nod.Value(fem.ROTATION, 0), ref.Rot)
	for _, surf := range []ele.Surface{ele.Middle, ele.Top, ele.Bottom} {
		σ, err := e.Stress(surf, 0)
		if err != nil {
			return "", err
		}
		r := map[ele.Surface][]float64{ele.Middle: ref.Mid, ele.Top: ref.Top, ele.Bottom: ref.Bot}[surf]
		row(surf.String(), ana.Components(σ), r)
	}
	svm, err := e.VonMises(0)
	if err != nil {
		return "", err
	}
	row("vm", []float64{svm}, []float64{ref.Vm})
	return
}

// abbrev returns short names of nodal variables
func abbrev(key string) string {
	switch key {
	case fem.DISPLACEMENT:
		return "u"
	case fem.ROTATION:
		return "r"
	case fem.REACTION:
		return "f"
	case fem.REACTION_MOMENT:
		return "m"
	}
	return key
}
