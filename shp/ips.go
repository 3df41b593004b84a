// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Ipoint holds integration point data
type Ipoint struct {
	R, S float64 // natural coordinates
	W    float64 // weight
}

// GetIps returns a set of integration points for given basic geometry and number of points
//  nip == 0 selects the default set: 3 points for triangles and 2x2 for quadrilaterals
func GetIps(basicType string, nip int) (ips []Ipoint, err error) {
	sets, ok := ipsfactory[basicType]
	if !ok {
		return nil, chk.Err("cannot find integration points for geometry %q", basicType)
	}
	if nip == 0 {
		nip = defaultNip[basicType]
	}
	ips, ok = sets[nip]
	if !ok {
		return nil, chk.Err("cannot find set of integration points with nip=%d for geometry %q", nip, basicType)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

var defaultNip = map[string]int{"tri3": 3, "qua4": 4}

var isq3 = 1.0 / math.Sqrt(3.0)

// ipsfactory holds integration points sets; geometry => nip => points
var ipsfactory = map[string]map[int][]Ipoint{
	"tri3": {
		1: {
			{1.0 / 3.0, 1.0 / 3.0, 1.0 / 2.0},
		},
		3: {
			{1.0 / 6.0, 1.0 / 6.0, 1.0 / 6.0},
			{2.0 / 3.0, 1.0 / 6.0, 1.0 / 6.0},
			{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0},
		},
	},
	"qua4": {
		1: {
			{0, 0, 4},
		},
		4: {
			{-isq3, -isq3, 1},
			{+isq3, -isq3, 1},
			{+isq3, +isq3, 1},
			{-isq3, +isq3, 1},
		},
	},
}
