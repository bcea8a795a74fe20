package socket

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/okanya/commonlib/pool/bytespool"
)

// Length-prefixed framing over a Conn: a 2-byte big-endian payload
// length followed by the payload. The configured read and write
// timeouts apply per underlying transfer.

const frameHeaderSize = 2

// MaxFrameSize is the largest payload a single frame carries.
const MaxFrameSize = math.MaxUint16

// WriteFrame sends data as one frame. Header and payload are staged
// in a pooled buffer so the transfer is a single write.
func WriteFrame(c *Conn, data []byte) (int, error) {
	size := len(data)
	if size == 0 {
		return 0, fmt.Errorf("socket: frame write size [%d] == 0", size)
	}
	if size > MaxFrameSize {
		return 0, fmt.Errorf("socket: frame write size [%d] > [%d]", size, MaxFrameSize)
	}

	buf := bytespool.Get(frameHeaderSize + size)
	defer bytespool.Put(buf)

	binary.BigEndian.PutUint16(buf, uint16(size))
	copy(buf[frameHeaderSize:], data)

	return c.Write(buf)
}

// ReadFrame reads the next frame payload.
func ReadFrame(c *Conn) ([]byte, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(c, header[:]); err != nil {
		return nil, err
	}

	size := int(binary.BigEndian.Uint16(header[:]))
	if size == 0 {
		return nil, fmt.Errorf("socket: frame read size [%d] == 0", size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(c, data); err != nil {
		return nil, err
	}

	return data, nil
}
