// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nbhttp

import (
	"errors"
)

var (
	// ErrTooLong .
	ErrTooLong = errors.New("invalid http message: too long")

	// ErrInvalidSession .
	ErrInvalidSession = errors.New("invalid conn session")
)
