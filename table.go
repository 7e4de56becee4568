// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package zerohttp

import (
	"unicode/utf8"
	"unsafe"
)

var (
	headerCookie        = []byte("cookie")
	headerContentLength = []byte("content-length")
	headerContentType   = []byte("content-type")

	paramCharset  = []byte("charset")
	paramBoundary = []byte("boundary")

	mediaTypeForm = []byte("application/x-www-form-urlencoded")

	lowerTable = [256]byte{}
	spaceTable = [256]bool{}
)

func init() {
	for i := range lowerTable {
		lowerTable[i] = byte(i)
	}
	var dis byte = 'a' - 'A'
	for i := byte(0); i < 26; i++ {
		lowerTable['A'+i] = 'A' + i + dis
	}

	for _, c := range []byte{' ', '\t', '\r', '\n', '\v', '\f'} {
		spaceTable[c] = true
	}
}

// matchKey reports whether b is valid UTF-8 and equals the lowercase key
// ignoring ASCII case. Invalid UTF-8 matches nothing.
func matchKey(b, lowerKey []byte) bool {
	if len(b) != len(lowerKey) || !utf8.Valid(b) {
		return false
	}
	for i, c := range b {
		if lowerTable[c] != lowerKey[i] {
			return false
		}
	}
	return true
}

func trimSpace(b []byte) []byte {
	for len(b) > 0 && spaceTable[b[0]] {
		b = b[1:]
	}
	for len(b) > 0 && spaceTable[b[len(b)-1]] {
		b = b[:len(b)-1]
	}
	return b
}

// b2s converts b to a string sharing the same memory.
// The string must not outlive the buffer and the buffer must not be modified.
func b2s(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
