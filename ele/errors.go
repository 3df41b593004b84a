// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "errors"

// definition errors raised by elements and conditions
var (
	ErrMissingLaw      = errors.New("constitutive law is not set")
	ErrMissingProperty = errors.New("required property is missing")
	ErrDegenerate      = errors.New("degenerate element geometry")
)
