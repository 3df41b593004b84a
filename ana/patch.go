// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// PatchRef holds reference results of the shell patch test: values @ the loaded node (3) and
// stresses @ first integration point of element 1. Stress components are ordered as
//  [σ00, σ01, σ02, σ11, σ12, σ22]
type PatchRef struct {
	Disp []float64 // displacement of node 3
	Rot  []float64 // rotation of node 3
	Mid  []float64 // stress @ middle surface
	Top  []float64 // stress @ top surface
	Bot  []float64 // stress @ bottom surface
	Vm   float64   // von Mises stress
}

// patchRefs holds reference results; element kind => results
var patchRefs = map[string]*PatchRef{
	"thin-tri": {
		Disp: []float64{0.000232466935, -0.00022337867, 0.000256728258},
		Rot:  []float64{0.000362805651, -0.000192603777, -0.000468264833},
		Mid:  []float64{1.330532185831, 0.264532374393, 0, 5.017119730101, 0, 0},
		Top:  []float64{-1.227921495072, 0.431252225426, 0, -1.60308025618, 0, 0},
		Bot:  []float64{3.888985866804, 0.097812523361, 0, 11.637319716442, 0, 0},
		Vm:   6.84404599900034,
	},
	"thick-tri": {
		Disp: []float64{7.18429456e-05, -0.0001573361523, 0.0005263535842},
		Rot:  []float64{0.0003316611414, -0.0002797797097, 4.922597e-07},
		Mid:  []float64{0.32465769837, 2.916044245593, 0.281946444464, -3.126126456163, -1.805596378534, 0},
		Top:  []float64{-4.155385244644, -3.434557725121, 0, -9.907162942127, 0, 0},
		Bot:  []float64{4.804700641385, 9.266646216307, 0, 3.6549100298, 0, 0},
		Vm:   16.628137698179042,
	},
	"thin-quad": {
		Disp: []float64{0.0021867287711, -0.002169253367, 0.0007176841015},
		Rot:  []float64{0.002816872164, 0.0008161241026, -0.0069076664086},
		Mid:  []float64{3.272955597478, -11.215566923738, 0, 3.360152391538, 0, 0},
		Top:  []float64{20.197335966016, 4.515326224888, 0, -8.626180886984, 0, 0},
		Bot:  []float64{-13.651424771092, -26.94646007236, 0, 15.346485670044, 0, 0},
		Vm:   53.00672171174518,
	},
	"thick-quad": {
		Disp: []float64{0.000356813514, -0.00063451962, 0.001277536105},
		Rot:  []float64{0.001208329991, -0.000409163542, -0.001166832572},
		Mid:  []float64{2.673886114206, -3.482959961533, 0.751398508523, 2.763048319957, 6.546366049819, 0},
		Top:  []float64{9.0127433219, 0.557224675217, 0, -50.720551115113, 0, 0},
		Bot:  []float64{-3.664971093553, -7.523144598382, 0, 56.246647754966, 0, 0},
		Vm:   59.607489872219794,
	},
}

// GetPatchRef returns the reference results for element kind; e.g. "thin-tri"
func GetPatchRef(kind string) (ref *PatchRef, err error) {
	ref, ok := patchRefs[kind]
	if !ok {
		return nil, chk.Err("there are no reference results for element kind %q", kind)
	}
	return
}

// PatchRefKinds returns the element kinds with reference results (sorted)
func PatchRefKinds() (kinds []string) {
	for k := range patchRefs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return
}

// Tensor returns the 3x3 symmetric tensor corresponding to the [00,01,02,11,12,22] components
func Tensor(v []float64) [][]float64 {
	return [][]float64{
		{v[0], v[1], v[2]},
		{v[1], v[3], v[4]},
		{v[2], v[4], v[5]},
	}
}

// Components returns the [00,01,02,11,12,22] components of a symmetric 3x3 tensor
func Components(σ [][]float64) []float64 {
	return []float64{σ[0][0], σ[0][1], σ[0][2], σ[1][1], σ[1][2], σ[2][2]}
}

// String returns a table with reference results
func (o *PatchRef) String() string {
	l := io.Sf("%-6s%v\n", "disp", o.Disp)
	l += io.Sf("%-6s%v\n", "rot", o.Rot)
	l += io.Sf("%-6s%v\n", "mid", o.Mid)
	l += io.Sf("%-6s%v\n", "top", o.Top)
	l += io.Sf("%-6s%v\n", "bot", o.Bot)
	l += io.Sf("%-6s%v", "vm", o.Vm)
	return l
}
