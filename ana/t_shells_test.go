// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/yuanzhongqiao/Kratos/inp"
	"github.com/yuanzhongqiao/Kratos/mdl/solid"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_shells01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shells01. rigidities of shell sections")

	var sec ShellSection
	sec.Init(100e3, 0.3, 1.0, 5.0/6.0)
	io.Pforan("%v\n", sec.String())

	c := 100e3 / 0.91
	chk.Float64(tst, "G  ", 1e-11, sec.G, 100e3/2.6)
	chk.Float64(tst, "A11", 1e-10, sec.A[0][0], c)
	chk.Float64(tst, "A12", 1e-10, sec.A[0][1], 0.3*c)
	chk.Float64(tst, "A33", 1e-10, sec.A[2][2], sec.G)
	chk.Float64(tst, "B11", 1e-10, sec.B[0][0], c/12.0)
	chk.Float64(tst, "S  ", 1e-10, sec.S, 5.0*sec.G/6.0)
	chk.Float64(tst, "Cd ", 1e-10, sec.Cd, sec.G)

	// membrane rigidity equals D t
	law, err := solid.New("lin-elast-pstress")
	if err != nil {
		tst.Errorf("cannot allocate model:\n%v", err)
		return
	}
	err = law.Init(inp.Prms{&inp.Prm{N: "E", V: 100e3}, &inp.Prm{N: "nu", V: 0.3}})
	if err != nil {
		tst.Errorf("cannot initialise model:\n%v", err)
		return
	}
	t := 0.25
	sec.Init(100e3, 0.3, t, 5.0/6.0)
	D := utl.Alloc(3, 3)
	law.CalcD(D, []float64{0, 0, 0})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			chk.Float64(tst, io.Sf("A%d%d", i, j), 1e-10, sec.A[i][j], D[i][j]*t)
			chk.Float64(tst, io.Sf("B%d%d", i, j), 1e-12, sec.B[i][j], D[i][j]*t*t*t/12.0)
		}
	}
}

func Test_patchref01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("patchref01. reference results of patch test")

	kinds := PatchRefKinds()
	chk.Strings(tst, "kinds", kinds, []string{"thick-quad", "thick-tri", "thin-quad", "thin-tri"})

	for _, kind := range kinds {
		ref, err := GetPatchRef(kind)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		io.Pfyel("%s\n%v\n", kind, ref)
		chk.Int(tst, "len(disp)", len(ref.Disp), 3)
		chk.Int(tst, "len(rot)", len(ref.Rot), 3)

		// plane stress state @ top and bottom
		for _, σ := range [][]float64{ref.Top, ref.Bot} {
			chk.Float64(tst, "σ02", 1e-17, σ[2], 0)
			chk.Float64(tst, "σ12", 1e-17, σ[4], 0)
			chk.Float64(tst, "σ22", 1e-17, σ[5], 0)
		}

		// tensor and components are consistent
		T := Tensor(ref.Mid)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				chk.Float64(tst, "T symmetric", 1e-17, T[i][j], T[j][i])
			}
		}
		chk.Array(tst, "components", 1e-17, Components(T), ref.Mid)
	}

	// unknown kind
	_, err := GetPatchRef("membrane")
	if err == nil {
		tst.Errorf("GetPatchRef should have failed with unknown kind\n")
		return
	}
}
