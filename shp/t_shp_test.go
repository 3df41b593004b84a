// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_shp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp01")

	for _, name := range []string{"tri3", "tri6", "qua4", "qua8"} {
		io.Pfyel("--------------------------------- %-6s---------------------------------\n", name)
		shape, err := Get(name)
		if err != nil {
			tst.Errorf("Get failed:\n%v", err)
			return
		}
		CheckShape(tst, shape, 1e-15, chk.Verbose)
		for _, r := range [][]float64{{0.2, 0.3}, {0.1, 0.05}, {0.3, 0.6}} {
			CheckDSdR(tst, shape, r, 1e-8, chk.Verbose)
			CheckSum(tst, shape, r, 1e-14)
		}
	}

	_, err := Get("hex8")
	if err == nil {
		tst.Errorf("Get should have failed for hex8")
	}
}

func Test_shp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp02")

	// parallelogram
	x := [][]float64{
		{0, 2, 3, 1},
		{0, 0, 1, 1},
	}
	shape, _ := Get("qua4")
	ips, err := GetIps(shape.BasicType, 0)
	if err != nil {
		tst.Errorf("GetIps failed:\n%v", err)
		return
	}
	chk.IntAssert(len(ips), 4)

	// area and centroid
	area, xc, yc := 0.0, 0.0, 0.0
	for _, ip := range ips {
		err = shape.CalcAtIp(x, []float64{ip.R, ip.S}, true)
		if err != nil {
			tst.Errorf("CalcAtIp failed:\n%v", err)
			return
		}
		for m := 0; m < shape.Nverts; m++ {
			xc += shape.S[m] * x[0][m] * shape.J * ip.W
			yc += shape.S[m] * x[1][m] * shape.J * ip.W
		}
		area += shape.J * ip.W
	}
	chk.Float64(tst, "area", 1e-14, area, 2.0)
	chk.Float64(tst, "xc", 1e-14, xc/area, 1.5)
	chk.Float64(tst, "yc", 1e-14, yc/area, 0.5)

	// G reproduces gradient of linear field u = 2x - 3y
	u := []float64{0, 4, 3, -1}
	err = shape.CalcAtIp(x, []float64{0.3, -0.2}, true)
	if err != nil {
		tst.Errorf("CalcAtIp failed:\n%v", err)
		return
	}
	dudx, dudy := 0.0, 0.0
	for m := 0; m < 4; m++ {
		dudx += shape.G[m][0] * u[m]
		dudy += shape.G[m][1] * u[m]
	}
	chk.Float64(tst, "du/dx", 1e-14, dudx, 2)
	chk.Float64(tst, "du/dy", 1e-14, dudy, -3)

	// clockwise ordering gives negative Jacobian
	xcw := [][]float64{
		{0, 1, 3, 2},
		{0, 1, 1, 0},
	}
	err = shape.CalcAtIp(xcw, []float64{0, 0}, true)
	if err == nil {
		tst.Errorf("CalcAtIp should have failed with negative determinant")
	}
}

func Test_shp03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp03")

	// integrate r*s over the reference triangle: 1/24
	shape, _ := Get("tri3")
	x := [][]float64{
		{0, 1, 0},
		{0, 0, 1},
	}
	for _, nip := range []int{1, 3} {
		ips, err := GetIps("tri3", nip)
		if err != nil {
			tst.Errorf("GetIps failed:\n%v", err)
			return
		}
		area := 0.0
		for _, ip := range ips {
			shape.CalcAtIp(x, []float64{ip.R, ip.S}, true)
			area += shape.J * ip.W
		}
		chk.Float64(tst, io.Sf("area (nip=%d)", nip), 1e-15, area, 0.5)
	}
	ips, _ := GetIps("tri3", 3)
	res := 0.0
	for _, ip := range ips {
		res += ip.R * ip.S * ip.W
	}
	chk.Float64(tst, "∫rs", 1e-15, res, 1.0/24.0)

	_, err := GetIps("tri3", 7)
	if err == nil {
		tst.Errorf("GetIps should have failed for nip=7")
	}
}
