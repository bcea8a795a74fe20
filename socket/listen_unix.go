//go:build unix

package socket

import (
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// listenTCP builds the listening descriptor by hand so the configured
// backlog reaches listen(2); net.Listen pins the backlog to the
// kernel default. The raw descriptor is adopted into the runtime
// poller via net.FileListener.
func listenTCP(ep Endpoint, backlog int) (net.Listener, error) {
	ip := ep.IP
	if ip == nil {
		ip = net.IPv4zero
	}

	family := unix.AF_INET
	if ip.To4() == nil {
		family = unix.AF_INET6
	}

	fd, err := unix.Socket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, err
	}
	unix.CloseOnExec(fd)

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, err
	}

	sa, err := sockaddrOf(family, ip, ep.Port, ep.Zone)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, err
	}

	// FileListener dups the descriptor; the original is released here.
	f := os.NewFile(uintptr(fd), "listener")
	lis, err := net.FileListener(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return lis, nil
}

func sockaddrOf(family int, ip net.IP, port int, zone string) (unix.Sockaddr, error) {
	if family == unix.AF_INET {
		sa := &unix.SockaddrInet4{Port: port}
		copy(sa.Addr[:], ip.To4())
		return sa, nil
	}
	sa := &unix.SockaddrInet6{Port: port}
	copy(sa.Addr[:], ip.To16())
	if zone != "" {
		ifi, err := net.InterfaceByName(zone)
		if err != nil {
			return nil, err
		}
		sa.ZoneId = uint32(ifi.Index)
	}
	return sa, nil
}
