// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/ini.v1"
)

// Prm holds a material parameter
type Prm struct {
	N string  // name of parameter
	V float64 // value of parameter
}

// Prms holds many parameters
type Prms []*Prm

// Find finds a parameter by name. Returns nil if not found
func (o Prms) Find(name string) *Prm {
	for _, p := range o {
		if p.N == name {
			return p
		}
	}
	return nil
}

// Connect connects parameter value to variable v
func (o Prms) Connect(v *float64, name, caller string) (err error) {
	p := o.Find(name)
	if p == nil {
		return chk.Err("cannot find parameter named %q as requested by %q", name, caller)
	}
	*v = p.V
	return
}

// Set sets or appends a parameter
func (o *Prms) Set(name string, value float64) {
	if p := o.Find(name); p != nil {
		p.V = value
		return
	}
	*o = append(*o, &Prm{N: name, V: value})
}

// String returns a representation of all parameters
func (o Prms) String() string {
	l := make([]string, len(o))
	for i, p := range o {
		l[i] = io.Sf("%s=%g", p.N, p.V)
	}
	return "{" + strings.Join(l, ", ") + "}"
}

// MatData holds material and shell-section data
type MatData struct {
	Name  string    // name of material
	Model string    // name of constitutive model; e.g. "lin-elast-pstress"
	Prms  Prms      // model parameters; e.g. E and nu
	Thick float64   // shell thickness
	Rho   float64   // density
	Grav  []float64 // volume acceleration
}

// SetDefault sets defaults values (patch test material)
func (o *MatData) SetDefault() {
	o.Name = "shell"
	o.Model = "lin-elast-pstress"
	o.Prms = Prms{
		&Prm{N: "E", V: 100e3},
		&Prm{N: "nu", V: 0.3},
	}
	o.Thick = 1.0
	o.Rho = 1.0
	o.Grav = []float64{0, 0, 0}
}

// read reads material section
func (o *MatData) read(s *ini.Section) (err error) {
	keys := s.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name() < keys[j].Name() })
	for _, k := range keys {
		switch k.Name() {
		case "name":
			o.Name = k.String()
		case "model":
			o.Model = k.String()
		case "thick":
			o.Thick, err = k.Float64()
		case "rho":
			o.Rho, err = k.Float64()
		case "grav":
			o.Grav = k.Float64s(",")
			if len(o.Grav) != 3 {
				return chk.Err("volume acceleration must have 3 components")
			}
		default:
			var v float64
			v, err = k.Float64()
			if err == nil {
				o.Prms.Set(k.Name(), v)
			}
		}
		if err != nil {
			return chk.Err("cannot parse material key %q:\n%v", k.Name(), err)
		}
	}
	if o.Thick <= 0 {
		return chk.Err("thickness must be positive. thick=%g is invalid", o.Thick)
	}
	return
}
