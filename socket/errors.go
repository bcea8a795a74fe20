package socket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
)

// Kind classifies a socket failure. Every operation in this package
// terminates with either a success value or an *Error carrying exactly
// one Kind; platform error codes never reach callers directly.
type Kind int

const (
	// KindOther is the escape hatch for platform errors with no
	// dedicated kind. The original code stays on the error chain.
	KindOther Kind = iota
	KindHostNotFound
	KindResolveTimeout
	KindAddressInUse
	KindPermissionDenied
	KindInvalidAddress
	KindRefused
	KindTimeout
	KindUnreachable
	KindConnReset
	KindConnClosed
	KindClosed
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindHostNotFound:
		return "host not found"
	case KindResolveTimeout:
		return "resolve timed out"
	case KindAddressInUse:
		return "address in use"
	case KindPermissionDenied:
		return "permission denied"
	case KindInvalidAddress:
		return "invalid address"
	case KindRefused:
		return "connection refused"
	case KindTimeout:
		return "timed out"
	case KindUnreachable:
		return "unreachable"
	case KindConnReset:
		return "connection reset by peer"
	case KindConnClosed:
		return "connection closed by peer"
	case KindClosed:
		return "use of closed handle"
	case KindCancelled:
		return "cancelled"
	}
	return "other"
}

// Sentinels for errors.Is matching. An *Error with the corresponding
// Kind reports Is == true for its sentinel.
var (
	ErrHostNotFound     = errors.New("socket: host not found")
	ErrResolveTimeout   = errors.New("socket: resolve timed out")
	ErrAddressInUse     = errors.New("socket: address in use")
	ErrPermissionDenied = errors.New("socket: permission denied")
	ErrInvalidAddress   = errors.New("socket: invalid address")
	ErrRefused          = errors.New("socket: connection refused")
	ErrTimeout          = errors.New("socket: timed out")
	ErrUnreachable      = errors.New("socket: unreachable")
	ErrConnReset        = errors.New("socket: connection reset by peer")
	ErrConnClosed       = errors.New("socket: connection closed by peer")
	ErrClosed           = errors.New("socket: use of closed handle")
	ErrCancelled        = errors.New("socket: cancelled")
)

func (k Kind) sentinel() error {
	switch k {
	case KindHostNotFound:
		return ErrHostNotFound
	case KindResolveTimeout:
		return ErrResolveTimeout
	case KindAddressInUse:
		return ErrAddressInUse
	case KindPermissionDenied:
		return ErrPermissionDenied
	case KindInvalidAddress:
		return ErrInvalidAddress
	case KindRefused:
		return ErrRefused
	case KindTimeout:
		return ErrTimeout
	case KindUnreachable:
		return ErrUnreachable
	case KindConnReset:
		return ErrConnReset
	case KindConnClosed:
		return ErrConnClosed
	case KindClosed:
		return ErrClosed
	case KindCancelled:
		return ErrCancelled
	}
	return nil
}

// Error is the uniform failure type surfaced by every operation in
// this package. Op names the failed operation ("resolve", "bind",
// "connect", "accept", "read", "write", "close").
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("socket: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("socket: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Timeout makes *Error satisfy net.Error.
func (e *Error) Timeout() bool {
	return e.Kind == KindTimeout || e.Kind == KindResolveTimeout
}

func (e *Error) Temporary() bool { return e.Timeout() }

// KindOf extracts the Kind from an error returned by this package.
// Errors from elsewhere report KindOther.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// normalize maps err into the stable taxonomy. Errors already
// normalized pass through unchanged so kinds assigned close to the
// failure site survive rewrapping.
func normalize(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Op: op, Kind: classify(err), Err: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, net.ErrClosed):
		return KindClosed
	case errors.Is(err, os.ErrDeadlineExceeded):
		return KindTimeout
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return KindConnClosed
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return KindResolveTimeout
		}
		return KindHostNotFound
	}

	var addrErr *net.AddrError
	if errors.As(err, &addrErr) {
		return KindInvalidAddress
	}

	if k, ok := errnoKind(err); ok {
		return k
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}

	return KindOther
}
