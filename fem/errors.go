// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "errors"

// outcomes of the solution pipeline
var (
	ErrInput         = errors.New("invalid model input")
	ErrDofScope      = errors.New("inconsistent degrees of freedom")
	ErrSingular      = errors.New("system matrix is singular")
	ErrMaxIterations = errors.New("max number of iterations reached")
)
