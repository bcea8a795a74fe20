package socket_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/okanya/commonlib/socket"
)

func TestFrameRoundTrip(t *testing.T) {
	client, server := newTestPair(t)
	server.SetReadTimeout(3 * time.Second)

	payloads := [][]byte{
		[]byte("a"),
		[]byte("hello frame"),
		bytes.Repeat([]byte{0xab}, 1500),
		bytes.Repeat([]byte{0x01}, socket.MaxFrameSize),
	}

	go func() {
		for _, p := range payloads {
			if _, err := socket.WriteFrame(client, p); err != nil {
				return
			}
		}
	}()

	for i, want := range payloads {
		got, err := socket.ReadFrame(server)
		if err != nil {
			t.Fatalf("read frame %d: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("frame %d: got %d bytes, want %d matching bytes", i, len(got), len(want))
		}
	}
}

func TestFrameWriteBounds(t *testing.T) {
	client, _ := newTestPair(t)

	if _, err := socket.WriteFrame(client, nil); err == nil {
		t.Fatal("empty frame write succeeded")
	}
	if _, err := socket.WriteFrame(client, make([]byte, socket.MaxFrameSize+1)); err == nil {
		t.Fatal("oversize frame write succeeded")
	}
}

func TestFramePeerClose(t *testing.T) {
	client, server := newTestPair(t)
	server.SetReadTimeout(3 * time.Second)

	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := socket.ReadFrame(server); socket.KindOf(err) != socket.KindConnClosed {
		t.Fatalf("read frame after peer close kind = %v, want conn closed", socket.KindOf(err))
	}
}
