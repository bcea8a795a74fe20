//go:build unix

package socket

import (
	"errors"

	"golang.org/x/sys/unix"
)

// errnoKind maps raw platform codes into the taxonomy. The table is
// total over the codes the kernel surfaces on socket paths; anything
// else stays KindOther with the errno preserved on the chain.
func errnoKind(err error) (Kind, bool) {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return KindOther, false
	}
	switch errno {
	case unix.EADDRINUSE:
		return KindAddressInUse, true
	case unix.EACCES, unix.EPERM:
		return KindPermissionDenied, true
	case unix.EADDRNOTAVAIL, unix.EINVAL, unix.EAFNOSUPPORT, unix.EPROTONOSUPPORT:
		return KindInvalidAddress, true
	case unix.ECONNREFUSED:
		return KindRefused, true
	case unix.ETIMEDOUT, unix.EAGAIN:
		return KindTimeout, true
	case unix.ENETUNREACH, unix.EHOSTUNREACH, unix.ENETDOWN, unix.EHOSTDOWN:
		return KindUnreachable, true
	case unix.ECONNRESET, unix.EPIPE, unix.ECONNABORTED:
		return KindConnReset, true
	case unix.EBADF, unix.ENOTCONN:
		return KindClosed, true
	case unix.ECANCELED, unix.EINTR:
		return KindCancelled, true
	}
	return KindOther, true
}
