package socket

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Endpoint is a resolved, connectable address and port. It is a plain
// value; construct one per bind or connect call and discard it after.
// A nil IP means the unspecified address (bind to all interfaces).
type Endpoint struct {
	IP   net.IP
	Port int
	Zone string
}

func (ep Endpoint) Network() string { return "tcp" }

// Addr formats the endpoint the way net.Dial and net.Listen expect.
func (ep Endpoint) Addr() string {
	host := ""
	if ep.IP != nil {
		host = ep.IP.String()
		if ep.Zone != "" {
			host += "%" + ep.Zone
		}
	}
	return net.JoinHostPort(host, strconv.Itoa(ep.Port))
}

func (ep Endpoint) String() string { return ep.Addr() }

// Resolve maps host and port to connectable endpoints. Literal IPs
// short-circuit without touching the resolver; hostnames go through
// the system resolver and come back in resolver order, undeduplicated.
// An empty host yields the unspecified endpoint, for binding.
// Resolution failures are reported distinctly from connect failures,
// as KindHostNotFound or KindResolveTimeout.
func Resolve(ctx context.Context, host string, port int) ([]Endpoint, error) {
	if port < 0 || port > 65535 {
		return nil, &Error{
			Op:   "resolve",
			Kind: KindInvalidAddress,
			Err:  fmt.Errorf("port [%d] out of range", port),
		}
	}

	if host == "" {
		return []Endpoint{{Port: port}}, nil
	}

	lit, zone, _ := strings.Cut(host, "%")
	if ip := net.ParseIP(lit); ip != nil {
		return []Endpoint{{IP: ip, Port: port, Zone: zone}}, nil
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, normalize("resolve", err)
	}

	eps := make([]Endpoint, 0, len(addrs))
	for _, a := range addrs {
		eps = append(eps, Endpoint{IP: a.IP, Port: port, Zone: a.Zone})
	}

	return eps, nil
}

func endpointOf(addr net.Addr) Endpoint {
	if ta, ok := addr.(*net.TCPAddr); ok {
		return Endpoint{IP: ta.IP, Port: ta.Port, Zone: ta.Zone}
	}
	return Endpoint{}
}
