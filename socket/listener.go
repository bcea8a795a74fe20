package socket

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Listener owns one bound, listening descriptor and produces a new
// Conn per accepted peer. Shutdown wakes any blocked Accept; the
// wake-up rides the runtime poller, well inside 50ms.
type Listener struct {
	lis           net.Listener
	ep            Endpoint
	acceptTimeout atomic.Int64
	down          atomic.Bool
	downOnce      sync.Once
}

// Listen binds and listens on ep. Failure kinds are distinguishable:
// KindAddressInUse, KindPermissionDenied, KindInvalidAddress.
func Listen(ep Endpoint, opt ...ListenOption) (*Listener, error) {
	opts := defaultListenOptions()
	for _, o := range opt {
		o(&opts)
	}
	if err := opts.check(); err != nil {
		return nil, err
	}

	lis, err := listenTCP(ep, opts.backlog)
	if err != nil {
		return nil, normalize("bind", err)
	}

	l := &Listener{lis: lis, ep: endpointOf(lis.Addr())}
	l.acceptTimeout.Store(int64(opts.acceptTimeout))
	return l, nil
}

func (l *Listener) String() string {
	return fmt.Sprintf("[listen_addr:%s]", l.ep)
}

// Endpoint reports the bound address, with the ephemeral port filled
// in when ep.Port was 0.
func (l *Listener) Endpoint() Endpoint { return l.ep }

// SetAcceptTimeout bounds subsequent Accept calls; semantics follow
// NoTimeout.
func (l *Listener) SetAcceptTimeout(d time.Duration) {
	l.acceptTimeout.Store(int64(d))
}

// Accept blocks for the next inbound connection. An elapsed timeout
// reports KindTimeout; Shutdown during a blocked call reports
// KindCancelled; calls entered after Shutdown fail immediately with
// KindClosed.
func (l *Listener) Accept() (*Conn, error) {
	if l.down.Load() {
		return nil, &Error{Op: "accept", Kind: KindClosed}
	}
	if d, ok := l.lis.(interface{ SetDeadline(time.Time) error }); ok {
		if err := d.SetDeadline(deadlineFor(l.acceptTimeout.Load())); err != nil {
			return nil, normalize("accept", err)
		}
	}
	nc, err := l.lis.Accept()
	if err != nil {
		if l.down.Load() {
			return nil, &Error{Op: "accept", Kind: KindCancelled, Err: err}
		}
		return nil, normalize("accept", err)
	}
	return newConn(nc), nil
}

// Shutdown closes the listening descriptor. Idempotent; releasing an
// already-shut listener is a no-op.
func (l *Listener) Shutdown() {
	l.downOnce.Do(func() {
		l.down.Store(true)
		l.lis.Close()
	})
}
