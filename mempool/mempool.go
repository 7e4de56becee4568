// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package mempool provides pooled byte buffers for accumulating partial reads.
package mempool

import (
	"sync"
)

// Allocator .
type Allocator interface {
	Malloc(size int) []byte
	Realloc(buf []byte, size int) []byte
	Append(buf []byte, more ...byte) []byte
	Free(buf []byte)
}

// DefaultMemPool .
var DefaultMemPool = New(1024*4, 1024*1024*4)

// MemPool reuses buffers whose capacity does not exceed freeSize.
type MemPool struct {
	bufSize  int
	freeSize int
	pool     sync.Pool
}

// New creates a MemPool. Buffers start with bufSize capacity; buffers that
// grew beyond freeSize are left to the GC on Free.
func New(bufSize, freeSize int) *MemPool {
	if bufSize <= 0 {
		bufSize = 64
	}
	if freeSize <= 0 {
		freeSize = 64 * 1024
	}
	if freeSize < bufSize {
		freeSize = bufSize
	}

	mp := &MemPool{
		bufSize:  bufSize,
		freeSize: freeSize,
	}
	mp.pool.New = func() interface{} {
		buf := make([]byte, bufSize)
		return &buf
	}
	return mp
}

// Malloc returns a buffer of length size.
func (mp *MemPool) Malloc(size int) []byte {
	if size > mp.freeSize {
		return make([]byte, size)
	}
	pbuf := mp.pool.Get().(*[]byte)
	if cap(*pbuf) < size {
		*pbuf = append((*pbuf)[:cap(*pbuf)], make([]byte, size-cap(*pbuf))...)
	}
	return (*pbuf)[:size]
}

// Realloc returns a buffer of length size holding the content of buf.
// buf must not be used after Realloc.
func (mp *MemPool) Realloc(buf []byte, size int) []byte {
	if size <= cap(buf) {
		return buf[:size]
	}
	newBuf := mp.Malloc(size)
	copy(newBuf, buf)
	mp.Free(buf)
	return newBuf
}

// Append appends more to buf, moving to a pooled buffer when buf is full.
func (mp *MemPool) Append(buf []byte, more ...byte) []byte {
	n := len(buf)
	if n+len(more) > cap(buf) {
		buf = mp.Realloc(buf, n+len(more))
	} else {
		buf = buf[:n+len(more)]
	}
	copy(buf[n:], more)
	return buf
}

// Free puts buf back to the pool.
func (mp *MemPool) Free(buf []byte) {
	if buf == nil || cap(buf) > mp.freeSize {
		return
	}
	buf = buf[:0]
	mp.pool.Put(&buf)
}

// Malloc .
func Malloc(size int) []byte {
	return DefaultMemPool.Malloc(size)
}

// Realloc .
func Realloc(buf []byte, size int) []byte {
	return DefaultMemPool.Realloc(buf, size)
}

// Append .
func Append(buf []byte, more ...byte) []byte {
	return DefaultMemPool.Append(buf, more...)
}

// Free .
func Free(buf []byte) {
	DefaultMemPool.Free(buf)
}
