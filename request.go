// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package zerohttp extracts the method, target, selected headers and body
// of a raw HTTP/1.1 request buffer as offsets into that buffer, without
// copying it.
package zerohttp

import (
	"bytes"
)

// Request is the result of scanning a raw HTTP/1.1 request buffer.
//
// It borrows the buffer and records the position of every field it finds
// as a Range into it: nothing is copied, and the buffer must not be
// modified while the Request or any string returned by it is in use.
type Request struct {
	buf []byte

	method        Method
	target        Range
	cookie        Range
	contentLength Range
	contentType   ContentType
	body          Range

	headerDone bool
}

// NewRequest creates an empty Request bound to buf.
func NewRequest(buf []byte) *Request {
	return &Request{buf: buf}
}

// Parse creates a Request bound to buf and scans it.
func Parse(buf []byte) *Request {
	r := NewRequest(buf)
	r.Scan()
	return r
}

// Reset clears all fields and binds r to buf, so that a Request can be
// reused for a new buffer snapshot.
func (r *Request) Reset(buf []byte) {
	*r = Request{buf: buf}
}

// Buffer returns the buffer r is bound to.
func (r *Request) Buffer() []byte {
	return r.buf
}

// HeaderDone reports whether the scanner has seen the blank line that
// terminates the header block.
func (r *Request) HeaderDone() bool {
	return r.headerDone
}

// Scan populates r from its buffer in one left-to-right pass.
//
// A buffer holding only a prefix of a request is not an error: fields that
// lie beyond the end of the buffer are left unobserved. Scan is not
// resumable; after more bytes are appended, Reset and Scan again.
func (r *Request) Scan() {
	var (
		buf = r.buf

		line      = 0
		lineStart = 0
		lineBegun = false
		lastWasCR = false

		spaceSet    = false
		spacePos    = 0
		secondSpace = false

		keyStart = 0
		keyEnd   = 0
	)

	for i := 0; i < len(buf); i++ {
		c := buf[i]

		if lineBegun && c == '\r' {
			// empty line: end of headers
			if i+1 < len(buf) {
				r.body = span(i+2, len(buf))
				r.headerDone = true
			}
			return
		}

		if lastWasCR {
			// the byte after CR is the LF
			lastWasCR = false
			lineBegun = true
			line++
			lineStart = i + 1
			spaceSet = false
			spacePos = i
			secondSpace = false
			keyStart, keyEnd = 0, 0
			continue
		}
		lineBegun = false

		if line == 0 {
			switch c {
			case ' ':
				if !spaceSet {
					r.method = methodOf(buf[:i])
					spaceSet = true
					spacePos = i
				} else if !secondSpace {
					r.target = span(spacePos+1, i)
					secondSpace = true
				}
			case '\r':
				lastWasCR = true
			}
			continue
		}

		if c == ' ' && !spaceSet {
			spaceSet = true
			spacePos = i
			if i > lineStart && buf[i-1] == ':' {
				keyStart, keyEnd = lineStart, i-1
			}
			continue
		}
		if c == '\r' {
			r.onHeader(buf[keyStart:keyEnd], span(spacePos+1, i))
			lastWasCR = true
		}
	}
}

func (r *Request) onHeader(key []byte, value Range) {
	switch {
	case matchKey(key, headerCookie):
		r.cookie = value
	case matchKey(key, headerContentLength):
		r.contentLength = value
	case matchKey(key, headerContentType):
		r.parseContentType(value)
	default:
	}
}

// parseContentType splits the content-type value on ';'. The first segment
// is the media type, later segments are name=value parameters of which
// only charset and boundary are kept. Values are not trimmed.
func (r *Request) parseContentType(value Range) {
	r.contentType = ContentType{Value: value}

	buf := r.buf
	segStart := value.Start
	for i := value.Start; i <= value.End; i++ {
		if i < value.End && buf[i] != ';' {
			continue
		}
		if segStart == value.Start {
			r.contentType.MediaType = span(segStart, i)
		} else {
			r.parseContentTypeParam(segStart, i)
		}
		segStart = i + 1
	}
}

func (r *Request) parseContentTypeParam(start, end int) {
	eq := bytes.IndexByte(r.buf[start:end], '=')
	if eq < 0 {
		return
	}
	key := trimSpace(r.buf[start : start+eq])
	switch {
	case matchKey(key, paramCharset):
		r.contentType.Charset = span(start+eq+1, end)
	case matchKey(key, paramBoundary):
		r.contentType.Boundary = span(start+eq+1, end)
	default:
	}
}
