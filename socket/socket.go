// Package socket provides connection-oriented client and server
// primitives over TCP with deterministic timeouts and a stable error
// taxonomy.
//
// Outbound traffic goes Resolve -> Dialer -> Conn; inbound goes
// Listen -> Accept -> Conn, or through Server, which drives a
// Listener and dispatches each accepted Conn to a Handler on its own
// goroutine. Every OS-level failure is normalized into an *Error with
// one Kind before it reaches a caller.
package socket

import (
	"fmt"
	"net"
	"time"
)

// NoTimeout disables the deadline on an operation, blocking it
// indefinitely. A zero timeout is a bounded poll instead: the
// operation completes only with data already available, failing with
// KindTimeout within about a millisecond otherwise.
const NoTimeout time.Duration = -1

// pollWindow bounds zero-timeout operations. The runtime fails
// already-expired deadlines before attempting the transfer, so a
// strict now-deadline would never deliver buffered data.
const pollWindow = time.Millisecond

// Handler serves one accepted connection. The connection is closed by
// the server when Handle returns.
type Handler interface {
	Handle(c *Conn)
}

// HandlerFunc adapts an ordinary function to a Handler.
type HandlerFunc func(c *Conn)

func (f HandlerFunc) Handle(c *Conn) { f(c) }

func setConnOptions(conn net.Conn, keepAlivePeriod time.Duration) error {
	if keepAlivePeriod <= 0 {
		return nil
	}
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}
	if err := tc.SetKeepAlive(true); err != nil {
		return fmt.Errorf("socket: set keep alive err [%w]", err)
	}
	if err := tc.SetKeepAlivePeriod(keepAlivePeriod); err != nil {
		return fmt.Errorf("socket: set keep alive period err [%w]", err)
	}
	return nil
}
