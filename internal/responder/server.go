// Package responder serves one pre-rendered document to every TCP connection.
//
// The server does not parse requests. Each accepted connection gets the same
// HTTP/1.1 200 response and is closed, whatever the client sent.
package responder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"golang.org/x/net/netutil"

	"github.com/bft-labs/dirfeed/pkg/log"
)

// ContentType is the media type announced for the document.
const ContentType = "application/rss+xml"

const (
	defaultLinger = 2 * time.Second
	maxDrainBytes = 64 << 10
)

// Server writes a fixed response to every accepted connection.
// It holds no mutable state once constructed and is safe for concurrent use.
type Server struct {
	response     []byte
	logger       log.Logger
	maxConns     int
	writeTimeout time.Duration
	linger       time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for connection errors.
func WithLogger(l log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxConns caps the number of connections handled at once. Zero or less
// means unlimited.
func WithMaxConns(n int) Option {
	return func(s *Server) { s.maxConns = n }
}

// WithWriteTimeout bounds the time spent writing one response. Zero or less
// means no deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) { s.writeTimeout = d }
}

// WithLinger sets how long a handler keeps discarding client bytes after the
// response has been written.
func WithLinger(d time.Duration) Option {
	return func(s *Server) { s.linger = d }
}

// New builds the response for body once. body must not be modified afterwards.
func New(body []byte, opts ...Option) *Server {
	s := &Server{
		response: BuildResponse(body),
		logger:   log.NewNoopLogger(),
		linger:   defaultLinger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildResponse frames body as a complete HTTP/1.1 200 response.
func BuildResponse(body []byte) []byte {
	header := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: " + ContentType + "\r\n" +
		"Content-Length: " + strconv.Itoa(len(body)) + "\r\n" +
		"\r\n"
	out := make([]byte, 0, len(header)+len(body))
	out = append(out, header...)
	return append(out, body...)
}

// Listen binds a TCP listener on addr.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is cancelled or ln fails, handing
// each one to its own goroutine. It closes ln before returning. In-flight
// connections are not waited for.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.maxConns > 0 {
		ln = netutil.LimitListener(ln, s.maxConns)
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
		case <-stop:
		}
	}()
	defer ln.Close()

	bo := newBackoff(5*time.Millisecond, time.Second)
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.logger.Error("accept failed", log.Err(err), log.Duration("retry_in", bo.current))
			bo.wait(ctx)
			continue
		}
		bo.reset()
		go s.handle(conn)
	}
}

type closeWriter interface {
	CloseWrite() error
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	if s.writeTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if _, err := conn.Write(s.response); err != nil {
		s.logger.Error("failed to write to socket",
			log.String("remote", remoteAddr(conn)),
			log.Err(err),
		)
		return
	}

	// Closing with unread request bytes makes the kernel send a reset, which
	// can discard the response on the client side. Send FIN first and drain.
	cw, ok := conn.(closeWriter)
	if !ok || s.linger <= 0 {
		return
	}
	if err := cw.CloseWrite(); err != nil {
		return
	}
	_ = conn.SetReadDeadline(time.Now().Add(s.linger))
	_, _ = io.Copy(io.Discard, io.LimitReader(conn, maxDrainBytes))
}

func remoteAddr(conn net.Conn) string {
	if a := conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return "unknown"
}
