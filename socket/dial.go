package socket

import (
	"context"
	"errors"
	"net"
)

// Dialer establishes outbound connections. The zero-configured value
// from NewDialer blocks connect attempts indefinitely and enables
// keep-alive probing.
type Dialer struct {
	opts   dialOptions
	dialer *net.Dialer
}

func NewDialer(opt ...DialOption) *Dialer {
	opts := defaultDialOptions()
	for _, o := range opt {
		o(&opts)
	}
	return &Dialer{
		opts: opts,
		dialer: &net.Dialer{
			Timeout: opts.connectTimeout,
			// Probing is applied per-conn in setConnOptions.
			KeepAlive: -1,
		},
	}
}

// Dial resolves host and attempts each endpoint in resolver order
// until one connects. The connect timeout bounds each attempt
// separately; ctx bounds the whole call. On exhaustion the last
// concrete failure is returned, not an aggregate.
func (d *Dialer) Dial(ctx context.Context, host string, port int) (*Conn, error) {
	eps, err := Resolve(ctx, host, port)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, ep := range eps {
		c, err := d.DialEndpoint(ctx, ep)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return c, nil
	}

	return nil, lastErr
}

// DialEndpoint makes a single connect attempt to ep. Refusal at a
// live host reports KindRefused as soon as the OS does, without
// waiting out the connect timeout.
func (d *Dialer) DialEndpoint(ctx context.Context, ep Endpoint) (*Conn, error) {
	nc, err := d.dialer.DialContext(ctx, ep.Network(), ep.Addr())
	if err != nil {
		return nil, normalize("connect", err)
	}

	if err := setConnOptions(nc, d.opts.keepAlivePeriod); err != nil {
		if e := nc.Close(); e != nil {
			err = errors.Join(err, e)
		}
		return nil, normalize("connect", err)
	}

	return newConn(nc), nil
}
