//go:build unix

package socket

import (
	"net"
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func TestErrnoTable(t *testing.T) {
	cases := []struct {
		errno unix.Errno
		want  Kind
	}{
		{unix.EADDRINUSE, KindAddressInUse},
		{unix.EACCES, KindPermissionDenied},
		{unix.EPERM, KindPermissionDenied},
		{unix.EADDRNOTAVAIL, KindInvalidAddress},
		{unix.ECONNREFUSED, KindRefused},
		{unix.ETIMEDOUT, KindTimeout},
		{unix.ENETUNREACH, KindUnreachable},
		{unix.EHOSTUNREACH, KindUnreachable},
		{unix.ECONNRESET, KindConnReset},
		{unix.EPIPE, KindConnReset},
		{unix.EBADF, KindClosed},
		{unix.ECANCELED, KindCancelled},
		{unix.ENOSPC, KindOther}, // unmapped code stays Other
	}
	for _, c := range cases {
		if got := classify(c.errno); got != c.want {
			t.Errorf("classify(%v) = %v, want %v", c.errno, got, c.want)
		}
	}
}

func TestErrnoThroughOSLayers(t *testing.T) {
	// The shape net returns: OpError around SyscallError around errno.
	err := &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: os.NewSyscallError("connect", unix.ECONNREFUSED),
	}
	if got := classify(err); got != KindRefused {
		t.Fatalf("classify(layered refused) = %v, want refused", got)
	}
}
