// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package zerohttp

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/valyala/fasthttp"
)

// The string accessors below return strings that share memory with the
// Request's buffer. They fail with ErrInvalidEncoding when the bytes are
// not valid UTF-8. A field that was not observed yields "".

func (r *Request) slice(rng Range) []byte {
	return r.buf[rng.Start:rng.End]
}

func (r *Request) text(rng Range, field string) (string, error) {
	b := r.slice(rng)
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s: %w", field, ErrInvalidEncoding)
	}
	return b2s(b), nil
}

// Method .
func (r *Request) Method() Method {
	return r.method
}

// TargetRange .
func (r *Request) TargetRange() Range {
	return r.target
}

// CookieRange .
func (r *Request) CookieRange() Range {
	return r.cookie
}

// ContentLengthRange .
func (r *Request) ContentLengthRange() Range {
	return r.contentLength
}

// ContentTypeRanges .
func (r *Request) ContentTypeRanges() ContentType {
	return r.contentType
}

// BodyRange .
func (r *Request) BodyRange() Range {
	return r.body
}

// TargetBytes .
func (r *Request) TargetBytes() []byte {
	return r.slice(r.target)
}

// CookieBytes .
func (r *Request) CookieBytes() []byte {
	return r.slice(r.cookie)
}

// BodyBytes .
func (r *Request) BodyBytes() []byte {
	return r.slice(r.body)
}

// Target returns the request target, e.g. "/get?type=dbs".
func (r *Request) Target() (string, error) {
	return r.text(r.target, "target")
}

// Path returns the target up to the first '?'.
func (r *Request) Path() (string, error) {
	rng := r.target
	if i := bytes.IndexByte(r.slice(rng), '?'); i >= 0 {
		rng = span(rng.Start, rng.Start+i)
	}
	return r.text(rng, "path")
}

// queryRange returns the part of the target after the last '?'.
//
// Path cuts at the first '?' while the query starts after the last one,
// so for a target with several '?' the bytes in between belong to neither.
func (r *Request) queryRange() Range {
	i := bytes.LastIndexByte(r.slice(r.target), '?')
	if i < 0 {
		return Range{}
	}
	return span(r.target.Start+i+1, r.target.End)
}

// Query returns the target after the last '?', or "" if it has none.
func (r *Request) Query() (string, error) {
	return r.text(r.queryRange(), "query")
}

// Cookie returns the raw cookie header value.
func (r *Request) Cookie() (string, error) {
	return r.text(r.cookie, "cookie")
}

// ContentLength returns the declared content length, 0 if the header is
// missing or its value is not a non-negative integer.
func (r *Request) ContentLength() int {
	n, _ := r.ParseContentLength()
	return n
}

// ParseContentLength is like ContentLength but reports a malformed value.
func (r *Request) ParseContentLength() (int, error) {
	if r.contentLength.Absent() {
		return 0, nil
	}
	return parseContentLength(r.slice(r.contentLength))
}

func parseContentLength(b []byte) (int, error) {
	n, err := fasthttp.ParseUint(b)
	if err != nil {
		return 0, fmt.Errorf("content-length %q: %w", b, ErrMalformedInteger)
	}
	return n, nil
}

// MediaType returns the content-type value before the first ';', untrimmed.
func (r *Request) MediaType() (string, error) {
	return r.text(r.contentType.MediaType, "media type")
}

// Charset returns the raw charset parameter of the content-type header.
// Surrounding spaces are kept: "charset= utf-8" yields " utf-8".
func (r *Request) Charset() (string, error) {
	return r.text(r.contentType.Charset, "charset")
}

// Boundary returns the raw multipart boundary parameter of the content-type header.
func (r *Request) Boundary() (string, error) {
	return r.text(r.contentType.Boundary, "boundary")
}

// Body returns the body bytes observed so far.
func (r *Request) Body() (string, error) {
	return r.text(r.body, "body")
}

// IsBodyRead reports whether the observed body covers the declared content length.
func (r *Request) IsBodyRead() bool {
	return r.body.Len() >= r.ContentLength()
}

// Remaining returns how many body bytes are still missing, 0 once the body
// is complete or over-read.
func (r *Request) Remaining() int {
	return remaining(r.ContentLength(), r.body.Len())
}

func remaining(contentLength, bodyLen int) int {
	if n := contentLength - bodyLen; n > 0 {
		return n
	}
	return 0
}
