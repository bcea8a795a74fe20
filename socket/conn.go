package socket

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Conn owns exactly one connected socket descriptor. The descriptor
// is released by Close, which is safe to call any number of times.
//
// A Conn is not safe for concurrent use of the same direction from
// two goroutines: callers must sequence reads against reads and
// writes against writes themselves. Close may be called from another
// goroutine and fails any blocked operation with KindClosed.
type Conn struct {
	conn         net.Conn
	readTimeout  atomic.Int64
	writeTimeout atomic.Int64
	closed       atomic.Bool
	closeOnce    sync.Once
}

func newConn(nc net.Conn) *Conn {
	c := &Conn{conn: nc}
	c.readTimeout.Store(int64(NoTimeout))
	c.writeTimeout.Store(int64(NoTimeout))
	return c
}

func (c *Conn) String() string {
	return fmt.Sprintf("[local_addr:%s][remote_addr:%s]",
		c.conn.LocalAddr(), c.conn.RemoteAddr())
}

func (c *Conn) LocalEndpoint() Endpoint {
	return endpointOf(c.conn.LocalAddr())
}

func (c *Conn) RemoteEndpoint() Endpoint {
	return endpointOf(c.conn.RemoteAddr())
}

// SetReadTimeout bounds subsequent Read calls; in-flight reads keep
// the deadline they started with. See NoTimeout for the zero and
// negative cases.
func (c *Conn) SetReadTimeout(d time.Duration) {
	c.readTimeout.Store(int64(d))
}

// SetWriteTimeout bounds subsequent Write calls.
func (c *Conn) SetWriteTimeout(d time.Duration) {
	c.writeTimeout.Store(int64(d))
}

// Read fills p with at least one byte, blocking up to the configured
// read timeout. Peer-initiated orderly shutdown surfaces as
// KindConnClosed wrapping io.EOF; an aborted peer as KindConnReset;
// an elapsed timeout as KindTimeout. After Close every call fails
// with KindClosed.
func (c *Conn) Read(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, &Error{Op: "read", Kind: KindClosed}
	}
	if err := c.conn.SetReadDeadline(deadlineFor(c.readTimeout.Load())); err != nil {
		return 0, normalize("read", err)
	}
	n, err := c.conn.Read(p)
	if err != nil {
		if c.closed.Load() {
			return n, &Error{Op: "read", Kind: KindClosed, Err: err}
		}
		return n, normalize("read", err)
	}
	return n, nil
}

// Write sends all of p, blocking up to the configured write timeout.
// Short writes are retried within the call; a timeout mid-transfer is
// reported with the bytes already written, and the caller decides
// whether to resume with the remainder.
func (c *Conn) Write(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, &Error{Op: "write", Kind: KindClosed}
	}
	if err := c.conn.SetWriteDeadline(deadlineFor(c.writeTimeout.Load())); err != nil {
		return 0, normalize("write", err)
	}
	n, err := c.conn.Write(p)
	if err != nil {
		if c.closed.Load() {
			return n, &Error{Op: "write", Kind: KindClosed, Err: err}
		}
		err = normalize("write", err)
		// A peer gone mid-write surfaces as EOF on some paths;
		// on the write side that is a reset, not orderly shutdown.
		var se *Error
		if errors.As(err, &se) && se.Kind == KindConnClosed {
			se.Kind = KindConnReset
		}
		return n, err
	}
	return n, nil
}

// Close releases the descriptor. Idempotent: the second and later
// calls return nil without touching the descriptor again.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		err = c.conn.Close()
	})
	return normalize("close", err)
}

func deadlineFor(timeout int64) time.Time {
	d := time.Duration(timeout)
	switch {
	case d < 0:
		return time.Time{}
	case d == 0:
		return time.Now().Add(pollWindow)
	default:
		return time.Now().Add(d)
	}
}
