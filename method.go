// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package zerohttp

// Method is the request method recognized by the scanner.
type Method int8

const (
	// MethodUnrecognized is any method token other than GET and POST.
	MethodUnrecognized Method = iota
	// MethodGet .
	MethodGet
	// MethodPost .
	MethodPost
)

// String .
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	default:
		return "UNRECOGNIZED"
	}
}

func methodOf(b []byte) Method {
	switch string(b) {
	case "GET":
		return MethodGet
	case "POST":
		return MethodPost
	default:
		return MethodUnrecognized
	}
}
