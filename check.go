// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package zerohttp

// Progress describes how much of a request a buffer holds.
type Progress struct {
	// HeaderDone is set once the blank line ending the header block,
	// including its LF, is in the buffer.
	HeaderDone bool

	// HeaderLen is the offset of the first body byte, valid when HeaderDone.
	HeaderLen int

	// ContentLength is the declared content length, 0 if absent or malformed.
	ContentLength int

	// BodyLen is the number of body bytes in the buffer, 0 until HeaderDone.
	BodyLen int
}

// Need returns the number of body bytes still to be read, 0 once the
// declared content length is covered. Bytes beyond the content length do
// not make it negative.
func (p Progress) Need() int {
	return remaining(p.ContentLength, p.BodyLen)
}

// Total returns the length of the whole request: header block plus declared body.
func (p Progress) Total() int {
	return p.HeaderLen + p.ContentLength
}

// CheckData returns how many more bytes buf needs before the body declared by
// its content-length header is complete. A result of 0 means complete.
//
// If the header block is not terminated yet the body is counted as empty,
// so a buffer that has not reached the content-length header yields 0:
// use Inspect to tell the two apart.
func CheckData(buf []byte) int {
	return Inspect(buf).Need()
}

// Inspect scans the header block of buf for the content-length header and
// the start of the body. It does not need a parsed Request.
func Inspect(buf []byte) Progress {
	var (
		p Progress

		line      = 0
		lineStart = 0
		lineBegun = false
		lastWasCR = false

		spaceSet = false
		spacePos = 0
		keyStart = 0
		keyEnd   = 0
	)

	for i := 0; i < len(buf); i++ {
		c := buf[i]

		if lineBegun && c == '\r' {
			if i+1 < len(buf) {
				p.HeaderDone = true
				p.HeaderLen = i + 2
				p.BodyLen = len(buf) - p.HeaderLen
			}
			return p
		}

		if lastWasCR {
			lastWasCR = false
			lineBegun = true
			line++
			lineStart = i + 1
			spaceSet = false
			spacePos = i
			keyStart, keyEnd = 0, 0
			continue
		}
		lineBegun = false

		if line == 0 {
			if c == '\r' {
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
			if matchKey(buf[keyStart:keyEnd], headerContentLength) {
				p.ContentLength, _ = parseContentLength(buf[spacePos+1 : i])
			}
			lastWasCR = true
		}
	}

	return p
}
