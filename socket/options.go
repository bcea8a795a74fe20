package socket

import (
	"fmt"
	"log/slog"
	"time"
)

type listenOptions struct {
	backlog       int
	acceptTimeout time.Duration
}

func defaultListenOptions() listenOptions {
	return listenOptions{
		backlog:       128,
		acceptTimeout: NoTimeout,
	}
}

func (o *listenOptions) check() error {
	if o.backlog <= 0 {
		return &Error{
			Op:   "bind",
			Kind: KindInvalidAddress,
			Err:  fmt.Errorf("backlog [%d] <= 0", o.backlog),
		}
	}
	return nil
}

type ListenOption func(o *listenOptions)

// WithBacklog sets the pending-connection queue depth.
func WithBacklog(backlog int) ListenOption {
	return func(o *listenOptions) {
		o.backlog = backlog
	}
}

// WithAcceptTimeout bounds each Accept call; semantics follow
// NoTimeout.
func WithAcceptTimeout(acceptTimeout time.Duration) ListenOption {
	return func(o *listenOptions) {
		o.acceptTimeout = acceptTimeout
	}
}

type dialOptions struct {
	connectTimeout  time.Duration
	keepAlivePeriod time.Duration
}

func defaultDialOptions() dialOptions {
	return dialOptions{
		keepAlivePeriod: 3 * time.Minute,
	}
}

type DialOption func(o *dialOptions)

// WithConnectTimeout bounds each connect attempt. The bound is
// per-endpoint, not cumulative; an overall deadline belongs on the
// caller's context.
func WithConnectTimeout(connectTimeout time.Duration) DialOption {
	return func(o *dialOptions) {
		o.connectTimeout = connectTimeout
	}
}

// WithDialKeepAlivePeriod sets the keep-alive probe period on dialed
// connections. Zero or negative disables probing.
func WithDialKeepAlivePeriod(keepAlivePeriod time.Duration) DialOption {
	return func(o *dialOptions) {
		o.keepAlivePeriod = keepAlivePeriod
	}
}

type serverOptions struct {
	backlog         int
	drainTimeout    time.Duration
	maxConnNum      int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	keepAlivePeriod time.Duration
	logger          *slog.Logger
}

func defaultServerOptions() serverOptions {
	return serverOptions{
		backlog:         128,
		drainTimeout:    5 * time.Second,
		readTimeout:     NoTimeout,
		writeTimeout:    NoTimeout,
		keepAlivePeriod: 3 * time.Minute,
	}
}

func (o *serverOptions) ensure() {
	if o.logger == nil {
		o.logger = slog.Default()
	}
}

type ServerOption func(o *serverOptions)

// WithServerBacklog sets the listener backlog.
func WithServerBacklog(backlog int) ServerOption {
	return func(o *serverOptions) {
		o.backlog = backlog
	}
}

// WithDrainTimeout sets the grace period Shutdown gives in-flight
// handlers before their connections are force-closed. Zero or
// negative waits without bound.
func WithDrainTimeout(drainTimeout time.Duration) ServerOption {
	return func(o *serverOptions) {
		o.drainTimeout = drainTimeout
	}
}

// WithMaxConnNum caps concurrently served connections; accepted
// overflow is closed immediately. Zero means no cap.
func WithMaxConnNum(maxConnNum int) ServerOption {
	return func(o *serverOptions) {
		o.maxConnNum = maxConnNum
	}
}

// WithConnReadTimeout sets the initial read timeout on accepted
// connections.
func WithConnReadTimeout(readTimeout time.Duration) ServerOption {
	return func(o *serverOptions) {
		o.readTimeout = readTimeout
	}
}

// WithConnWriteTimeout sets the initial write timeout on accepted
// connections.
func WithConnWriteTimeout(writeTimeout time.Duration) ServerOption {
	return func(o *serverOptions) {
		o.writeTimeout = writeTimeout
	}
}

// WithKeepAlivePeriod sets the keep-alive probe period on accepted
// connections. Zero or negative disables probing.
func WithKeepAlivePeriod(keepAlivePeriod time.Duration) ServerOption {
	return func(o *serverOptions) {
		o.keepAlivePeriod = keepAlivePeriod
	}
}

// WithLogger routes server diagnostics; defaults to slog.Default().
func WithLogger(logger *slog.Logger) ServerOption {
	return func(o *serverOptions) {
		o.logger = logger
	}
}
