//go:build !unix

package socket

import (
	"context"
	"net"
)

// listenTCP on non-unix platforms goes through net.ListenConfig; the
// backlog falls back to the kernel default there.
func listenTCP(ep Endpoint, backlog int) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(context.Background(), ep.Network(), ep.Addr())
}
