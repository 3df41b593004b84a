// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"sort"

	"github.com/yuanzhongqiao/Kratos/mdl/solid"
)

// keys of material and section parameters
const (
	YOUNG_MODULUS       = "YOUNG_MODULUS"
	POISSON_RATIO       = "POISSON_RATIO"
	THICKNESS           = "THICKNESS"
	DENSITY             = "DENSITY"
	VOLUME_ACCELERATION = "VOLUME_ACCELERATION"
)

// Properties holds material/section data shared by elements and conditions.
// It must not be modified during a solve
type Properties struct {
	Id   int                  // identifier
	Law  solid.Model          // constitutive law
	prms map[string]float64   // scalar parameters
	vecs map[string][]float64 // vector parameters
}

// NewProperties returns a new (empty) set of properties
func NewProperties(id int) *Properties {
	return &Properties{Id: id, prms: make(map[string]float64), vecs: make(map[string][]float64)}
}

// SetValue sets scalar parameter
func (o *Properties) SetValue(key string, value float64) {
	o.prms[key] = value
}

// GetValue returns scalar parameter
func (o *Properties) GetValue(key string) (value float64, found bool) {
	value, found = o.prms[key]
	return
}

// SetVector sets vector parameter
func (o *Properties) SetVector(key string, value []float64) {
	o.vecs[key] = append([]float64{}, value...)
}

// GetVector returns vector parameter
func (o *Properties) GetVector(key string) (value []float64, found bool) {
	value, found = o.vecs[key]
	return
}

// Has tells whether scalar or vector parameter exists
func (o *Properties) Has(key string) bool {
	if _, ok := o.prms[key]; ok {
		return true
	}
	_, ok := o.vecs[key]
	return ok
}

// Keys returns all parameters' keys (sorted)
func (o *Properties) Keys() (keys []string) {
	for k := range o.prms {
		keys = append(keys, k)
	}
	for k := range o.vecs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}
