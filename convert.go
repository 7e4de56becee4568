// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package zerohttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// HTTPRequest converts r to a *http.Request for use with net/http handlers.
//
// Header values are copied, but the body reader reads straight from the
// Request's buffer and is only valid as long as the buffer is.
func (r *Request) HTTPRequest() (*http.Request, error) {
	if r.method == MethodUnrecognized {
		return nil, ErrUnsupportedMethod
	}

	target := r.TargetBytes()
	if len(target) == 0 {
		return nil, ErrInvalidTarget
	}
	requestURI := string(target)
	u, err := url.ParseRequestURI(requestURI)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidTarget)
	}

	header := http.Header{}
	if r.cookie.Observed {
		header.Set("Cookie", string(r.slice(r.cookie)))
	}
	if r.contentType.Value.Observed {
		header.Set("Content-Type", string(r.slice(r.contentType.Value)))
	}

	body := r.BodyBytes()
	if len(body) > 0 || r.contentLength.Observed {
		header.Set("Content-Length", strconv.Itoa(len(body)))
	}

	req := &http.Request{
		Method:        r.method.String(),
		URL:           u,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          http.NoBody,
		ContentLength: int64(len(body)),
		Host:          u.Host,
		RequestURI:    requestURI,
	}
	if len(body) > 0 {
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	return req, nil
}
