// Package safe keeps goroutine panics from tearing the process down.
package safe

import (
	"fmt"
	"log/slog"
	"runtime"
)

const stackSize = 64 << 10

func Stack() string {
	buf := make([]byte, stackSize)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

func Recover() {
	if r := recover(); r != nil {
		slog.Error("panic recover",
			slog.Any("value", r), slog.String("stack", Stack()))
	}
}

// Go runs f on its own goroutine, logging instead of crashing if f
// panics.
func Go(f func()) {
	go func() {
		defer Recover()
		f()
	}()
}

// Do calls f and converts a panic into an error.
func Do(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("safe: panic [%v]\n%s", r, Stack())
		}
	}()
	return f()
}
