// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package zerohttp

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/valyala/fasthttp"
)

// Values maps keys to values decoded from a query string, a body or a cookie header.
type Values map[string]string

// BodyMode selects how a body is turned into Values.
type BodyMode int8

const (
	// BodyModePlain splits pairs on '&' and '=' without decoding.
	BodyModePlain BodyMode = iota
	// BodyModeForm applies form-urlencoded decoding.
	BodyModeForm
)

// String .
func (m BodyMode) String() string {
	if m == BodyModeForm {
		return "form"
	}
	return "plain"
}

// BodyModeOf returns BodyModeForm for "application/x-www-form-urlencoded"
// compared case-insensitively after trimming spaces, BodyModePlain otherwise.
func BodyModeOf(mediaType []byte) BodyMode {
	if matchKey(trimSpace(mediaType), mediaTypeForm) {
		return BodyModeForm
	}
	return BodyModePlain
}

// BodyMode returns the body mode chosen by the content-type media type.
func (r *Request) BodyMode() BodyMode {
	return BodyModeOf(r.slice(r.contentType.MediaType))
}

// Split splits the bytes of rng into pairs separated by sep, and each pair
// into a key and a value at '='. A pair without '=' has an empty value,
// only the token between the first and second '=' is kept as the value,
// and a later duplicate key overwrites an earlier one. Empty pairs are
// skipped, so an empty range or a separator-only input gives an empty map
// and never a "" key. Keys and values share memory with the buffer.
func (r *Request) Split(rng Range, sep string) (Values, error) {
	b := r.slice(rng)
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("split: %w", ErrInvalidEncoding)
	}
	return SplitValues(b2s(b), sep), nil
}

// SplitValues is the string form of Request.Split.
func SplitValues(s, sep string) Values {
	values := Values{}
	for len(s) > 0 {
		pair := s
		if i := strings.Index(s, sep); sep != "" && i >= 0 {
			pair, s = s[:i], s[i+len(sep):]
		} else {
			s = ""
		}
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if i := strings.IndexByte(value, '='); i >= 0 {
			value = value[:i]
		}
		values[key] = value
	}
	return values
}

// Decode applies form-urlencoded decoding to the bytes of rng: pairs are
// separated by '&', "%XX" escapes are decoded and '+' becomes a space.
// Keys and values are copied; invalid UTF-8 produced by an escape is
// replaced with U+FFFD.
func (r *Request) Decode(rng Range) (Values, error) {
	b := r.slice(rng)
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("decode: %w", ErrInvalidEncoding)
	}
	return DecodeValues(b), nil
}

// DecodeValues is the byte form of Request.Decode.
func DecodeValues(b []byte) Values {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	args.ParseBytes(b)
	values := make(Values, args.Len())
	args.VisitAll(func(key, value []byte) {
		values[strings.ToValidUTF8(string(key), "\uFFFD")] = strings.ToValidUTF8(string(value), "\uFFFD")
	})
	return values
}

// ParamsMap splits the query string on '&'.
func (r *Request) ParamsMap() (Values, error) {
	return r.Split(r.queryRange(), "&")
}

// ParamsMapDecoded decodes the query string as form-urlencoded.
func (r *Request) ParamsMapDecoded() (Values, error) {
	return r.Decode(r.queryRange())
}

// BodyMap splits the body on '&'.
func (r *Request) BodyMap() (Values, error) {
	return r.Split(r.body, "&")
}

// BodyMapDecoded decodes the body as form-urlencoded.
func (r *Request) BodyMapDecoded() (Values, error) {
	return r.Decode(r.body)
}

// CookieMap splits the cookie header on "; ".
func (r *Request) CookieMap() (Values, error) {
	return r.Split(r.cookie, "; ")
}

// PostParams decodes the body according to BodyMode.
func (r *Request) PostParams() (Values, error) {
	switch r.BodyMode() {
	case BodyModeForm:
		return r.BodyMapDecoded()
	default:
		return r.BodyMap()
	}
}
