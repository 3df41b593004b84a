// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/yuanzhongqiao/Kratos/ana"
	"github.com/yuanzhongqiao/Kratos/fem"
	"github.com/yuanzhongqiao/Kratos/inp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_out01(tst *testing.T) {

	// test title
	//verbose()
	chk.PrintTitle("out01. result tables of patch test")

	// start simulation
	sim := inp.NewSimulation()
	sim.Patch.Element = "thick-tri"
	sim.Solver.Rtol = 1e-10
	main, err := fem.NewMain(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}

	// run simulation
	err = main.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// collect
	res, err := Collect(main.Model, main.Strategy.Sol)
	if err != nil {
		tst.Errorf("Collect failed:\n%v", err)
		return
	}
	chk.Int(tst, "number of nodes", len(res.Nodes), 5)
	chk.Int(tst, "number of ips", len(res.Ipoints), 4) // thick triangles output @ centroid
	for cid := 1; cid <= 4; cid++ {
		chk.Ints(tst, io.Sf("ips of cell %d", cid), res.Cid2ips[cid], []int{cid - 1})
	}
	for _, key := range []string{"sxx_top", "syz_mid", "svm"} {
		found := false
		for _, k := range res.Ipkeys {
			found = found || k == key
		}
		if !found {
			tst.Errorf("key %q is missing\n", key)
			return
		}
	}

	// von Mises @ ips
	for _, p := range res.Ipoints {
		if p.Vals["svm"] < 0 {
			tst.Errorf("von Mises stress must not be negative\n")
			return
		}
	}

	// tables
	l := res.NodalTable(fem.DISPLACEMENT, fem.ROTATION, fem.REACTION)
	io.Pf("%v\n", l)
	lines := strings.Split(strings.TrimSpace(l), "\n")
	chk.Int(tst, "lines of nodal table", len(lines), 6)
	if !strings.Contains(lines[0], "u_x") || !strings.Contains(lines[0], "f_z") {
		tst.Errorf("header of nodal table is incorrect:\n%v\n", lines[0])
		return
	}
	l = res.IpTable("sxx_top", "svm")
	io.Pf("%v\n", l)
	chk.Int(tst, "lines of ip table", len(strings.Split(strings.TrimSpace(l), "\n")), 5)

	// comparison
	ref, err := ana.GetPatchRef("thick-tri")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	l, err = res.Compare(ref, 3, 1)
	if err != nil {
		tst.Errorf("Compare failed:\n%v", err)
		return
	}
	io.Pf("%v\n", l)
	chk.Int(tst, "lines of comparison", len(strings.Split(strings.TrimSpace(l), "\n")), 1+3+3+3*6+1)
	if _, err = res.Compare(ref, 99, 1); err == nil {
		tst.Errorf("Compare should have failed with unknown node\n")
		return
	}
}
