package socket_test

import (
	"context"
	"testing"
	"time"

	"github.com/okanya/commonlib/socket"
)

func loopback(t *testing.T, port int) socket.Endpoint {
	t.Helper()
	eps, err := socket.Resolve(context.Background(), "127.0.0.1", port)
	if err != nil {
		t.Fatalf("resolve loopback: %v", err)
	}
	return eps[0]
}

func newTestListener(t *testing.T) *socket.Listener {
	t.Helper()
	l, err := socket.Listen(loopback(t, 0), socket.WithBacklog(5))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(l.Shutdown)
	return l
}

// newTestPair returns the two ends of one established loopback
// connection.
func newTestPair(t *testing.T) (client, server *socket.Conn) {
	t.Helper()
	l := newTestListener(t)

	type result struct {
		c   *socket.Conn
		err error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := l.Accept()
		ch <- result{c, err}
	}()

	d := socket.NewDialer(socket.WithConnectTimeout(3 * time.Second))
	client, err := d.DialEndpoint(context.Background(), l.Endpoint())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	r := <-ch
	if r.err != nil {
		t.Fatalf("accept: %v", r.err)
	}
	t.Cleanup(func() { r.c.Close() })

	return client, r.c
}

// closedPort binds an ephemeral port, releases it, and returns it.
// Nothing listens there afterwards, so connects are refused.
func closedPort(t *testing.T) int {
	t.Helper()
	l, err := socket.Listen(loopback(t, 0))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Endpoint().Port
	l.Shutdown()
	return port
}
