// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nbhttp

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/lesismal/zerohttp/logging"
	"github.com/lesismal/zerohttp/mempool"
)

const contentLengthHeader = "Content-Length"

// Response is a buffered http.ResponseWriter. The status line, headers and
// body are written to the connection in one call when the handler returns.
type Response struct {
	conn io.Writer

	header     http.Header
	statusCode int
	body       []byte

	closeConn bool
}

func newResponse(conn io.Writer) *Response {
	return &Response{
		conn:   conn,
		header: http.Header{},
	}
}

// Header .
func (res *Response) Header() http.Header {
	return res.header
}

// WriteHeader records the status code; only the first call has effect.
func (res *Response) WriteHeader(statusCode int) {
	if res.statusCode != 0 {
		return
	}
	if http.StatusText(statusCode) == "" {
		logging.Error("http: invalid status code %v", statusCode)
		statusCode = http.StatusInternalServerError
	}
	res.statusCode = statusCode
}

// Write appends data to the body.
func (res *Response) Write(data []byte) (int, error) {
	res.WriteHeader(http.StatusOK)
	if len(data) == 0 {
		return 0, nil
	}
	if res.body == nil {
		res.body = mempool.Malloc(len(data))[:0]
	}
	res.body = mempool.Append(res.body, data...)
	return len(data), nil
}

// WriteString .
func (res *Response) WriteString(s string) (int, error) {
	return res.Write([]byte(s))
}

func (res *Response) encodeHead() []byte {
	res.WriteHeader(http.StatusOK)

	if cl := res.header.Get(contentLengthHeader); cl != "" {
		if v, err := strconv.Atoi(cl); err != nil || v != len(res.body) {
			logging.Error("http: invalid Content-Length of %q for %v body bytes", cl, len(res.body))
		}
	}
	res.header.Set(contentLengthHeader, strconv.Itoa(len(res.body)))
	if len(res.body) > 0 && res.header.Get("Content-Type") == "" {
		res.header.Set("Content-Type", http.DetectContentType(res.body))
	}
	if res.closeConn {
		res.header.Set("Connection", "close")
	}

	head := &bytes.Buffer{}
	head.WriteString("HTTP/1.1 ")
	head.WriteString(strconv.Itoa(res.statusCode))
	head.WriteString(" ")
	head.WriteString(http.StatusText(res.statusCode))
	head.WriteString("\r\n")
	res.header.Write(head)
	head.WriteString("\r\n")
	return head.Bytes()
}

// flush writes the response to the connection and releases the body.
func (res *Response) flush() error {
	head := res.encodeHead()
	buf := mempool.Malloc(len(head) + len(res.body))
	copy(buf, head)
	copy(buf[len(head):], res.body)

	_, err := res.conn.Write(buf)
	mempool.Free(buf)
	if res.body != nil {
		mempool.Free(res.body)
		res.body = nil
	}
	return err
}
