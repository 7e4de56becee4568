// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package zerohttp

// Range is a half-open interval [Start, End) of offsets into a Request's buffer.
//
// The zero value means the field was not observed by the scanner. Observed
// is set for every range the scanner records, so a header that is present
// with an empty value is not confused with a missing one.
type Range struct {
	Start    int
	End      int
	Observed bool
}

func span(start, end int) Range {
	return Range{Start: start, End: end, Observed: true}
}

// Len .
func (r Range) Len() int {
	return r.End - r.Start
}

// Absent reports whether the field has not been observed.
func (r Range) Absent() bool {
	return !r.Observed
}

// ContentType holds the ranges of the content-type header's parts.
type ContentType struct {
	// Value is the whole header value.
	Value Range

	MediaType Range
	Charset   Range
	Boundary  Range
}
