// Copyright 2020 lesismal. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nbhttp

import (
	"errors"
	"io"
	"net/http"
	"runtime"

	"github.com/lesismal/nbio"
	"github.com/lesismal/zerohttp"
	"github.com/lesismal/zerohttp/logging"
)

const (
	// DefaultReadLimit .
	DefaultReadLimit = 1024 * 1024 * 64

	// DefaultReadBufferSize .
	DefaultReadBufferSize = 1024 * 32
)

// Config Of Server.
type Config struct {
	// Name describes your server name for logging, it's set to "NB" by default.
	Name string

	// Network is the listening protocol, used with Addrs together, it's set to "tcp" by default.
	Network string

	// Addrs is the listening addr list.
	Addrs []string

	// NPoller represents poller goroutine num, it's set to runtime.NumCPU() by default.
	NPoller int

	// ReadBufferSize represents buffer size for reading, it's set to 32k by default.
	ReadBufferSize int

	// ReadLimit represents the max size of one request, header block and body
	// together, it's set to 64M by default.
	ReadLimit int

	// Handler serves the requests, http.DefaultServeMux is used if it is nil.
	// The *http.Request body reads from the connection's cache and must not be
	// used after ServeHTTP returns.
	Handler http.Handler
}

// Server is an HTTP/1.1 server running on an nbio.Engine. Requests are
// framed with zerohttp.Inspect and scanned with zerohttp.Request, then
// served in place on the poller goroutine.
type Server struct {
	*nbio.Engine

	readLimit int
	handler   http.Handler
}

type session struct {
	conn io.WriteCloser
	acc  *Accumulator
}

// NewServer creates a Server, call Start to listen.
func NewServer(conf Config) *Server {
	if conf.Name == "" {
		conf.Name = "NB"
	}
	if conf.Network == "" {
		conf.Network = "tcp"
	}
	if conf.NPoller <= 0 {
		conf.NPoller = runtime.NumCPU()
	}
	if conf.ReadBufferSize <= 0 {
		conf.ReadBufferSize = DefaultReadBufferSize
	}
	if conf.ReadLimit <= 0 {
		conf.ReadLimit = DefaultReadLimit
	}
	if conf.Handler == nil {
		conf.Handler = http.DefaultServeMux
	}

	engine := nbio.NewEngine(nbio.Config{
		Name:           conf.Name,
		Network:        conf.Network,
		Addrs:          conf.Addrs,
		NPoller:        conf.NPoller,
		ReadBufferSize: conf.ReadBufferSize,
	})

	s := &Server{
		Engine:    engine,
		readLimit: conf.ReadLimit,
		handler:   conf.Handler,
	}

	engine.OnOpen(func(c *nbio.Conn) {
		c.SetSession(s.newSession(c))
	})
	engine.OnData(func(c *nbio.Conn, data []byte) {
		sess, ok := c.Session().(*session)
		if !ok {
			logging.Error("%v: %v", c.RemoteAddr(), ErrInvalidSession)
			c.Close()
			return
		}
		sess.onData(data)
	})
	engine.OnClose(func(c *nbio.Conn, err error) {
		if sess, ok := c.Session().(*session); ok {
			sess.acc.Release()
		}
	})

	return s
}

// Start starts the engine and listens on the configured addrs.
func (s *Server) Start() error {
	if err := s.Engine.Start(); err != nil {
		return err
	}
	logging.Info("http server started")
	return nil
}

func (s *Server) newSession(conn io.WriteCloser) *session {
	sess := &session{conn: conn}
	sess.acc = NewAccumulator(s.readLimit, func(r *zerohttp.Request) error {
		return s.serve(conn, r)
	})
	return sess
}

func (sess *session) onData(data []byte) {
	if err := sess.acc.Feed(data); err != nil {
		logging.Debug("closing conn: %v", err)
		sess.conn.Close()
	}
}

// serve converts r and runs the handler. A request that can not be
// converted gets an error response and the returned error closes the conn.
func (s *Server) serve(w io.Writer, r *zerohttp.Request) error {
	res := newResponse(w)

	req, err := r.HTTPRequest()
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, zerohttp.ErrUnsupportedMethod) {
			code = http.StatusMethodNotAllowed
		}
		res.closeConn = true
		http.Error(res, http.StatusText(code), code)
		if ferr := res.flush(); ferr != nil {
			logging.Error("write error response failed: %v", ferr)
		}
		return err
	}

	s.handler.ServeHTTP(res, req)
	if err = res.flush(); err != nil {
		logging.Error("write response failed: %v", err)
	}
	return err
}
