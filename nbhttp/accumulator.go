// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nbhttp

import (
	"github.com/lesismal/zerohttp"
	"github.com/lesismal/zerohttp/mempool"
)

// Accumulator collects the bytes a connection receives and hands every
// complete request to a callback.
//
// A request is complete when its header block has ended and the body
// declared by content-length has arrived. The *zerohttp.Request passed to
// the callback points into the Accumulator's cache and is only valid
// until the callback returns.
//
// An Accumulator belongs to one connection and is not safe for concurrent use.
type Accumulator struct {
	readLimit int
	cached    []byte
	request   zerohttp.Request
	onRequest func(r *zerohttp.Request) error
}

// NewAccumulator creates an Accumulator. A readLimit <= 0 disables the limit.
func NewAccumulator(readLimit int, onRequest func(r *zerohttp.Request) error) *Accumulator {
	return &Accumulator{
		readLimit: readLimit,
		onRequest: onRequest,
	}
}

// Buffered returns the number of bytes cached for an incomplete request.
func (a *Accumulator) Buffered() int {
	return len(a.cached)
}

// Feed appends data and calls the callback for every request that is now
// complete, in order. Bytes of an incomplete request are kept for the next
// call. Feed stops at the first error returned by the callback.
//
// The read limit applies to each request and to the bytes left over after
// framing, not to the size of one read.
func (a *Accumulator) Feed(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	buf := data
	if len(a.cached) > 0 {
		a.cached = mempool.Append(a.cached, data...)
		buf = a.cached
	}

	start := 0
	for start < len(buf) {
		p := zerohttp.Inspect(buf[start:])
		if !p.HeaderDone {
			break
		}
		total := p.Total()
		if a.readLimit > 0 && total > a.readLimit {
			return ErrTooLong
		}
		if total > len(buf)-start {
			break
		}

		a.request.Reset(buf[start : start+total])
		a.request.Scan()
		start += total
		if err := a.onRequest(&a.request); err != nil {
			a.request.Reset(nil)
			return err
		}
	}
	a.request.Reset(nil)

	if a.readLimit > 0 && len(buf)-start > a.readLimit {
		return ErrTooLong
	}
	a.keep(buf, start)
	return nil
}

func (a *Accumulator) keep(buf []byte, start int) {
	left := len(buf) - start
	switch {
	case left == 0:
		a.Release()
	case len(a.cached) == 0:
		a.cached = mempool.Malloc(left)
		copy(a.cached, buf[start:])
	case start > 0:
		n := copy(a.cached, a.cached[start:])
		a.cached = a.cached[:n]
	default:
	}
}

// Release frees the cache.
func (a *Accumulator) Release() {
	if a.cached != nil {
		mempool.Free(a.cached)
		a.cached = nil
	}
}
