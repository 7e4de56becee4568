// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package zerohttp

import (
	"errors"
)

var (
	// ErrInvalidEncoding .
	ErrInvalidEncoding = errors.New("invalid utf-8 encoding")

	// ErrMalformedInteger .
	ErrMalformedInteger = errors.New("malformed integer")

	// ErrUnsupportedMethod .
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")

	// ErrInvalidTarget .
	ErrInvalidTarget = errors.New("invalid request target")
)
