// Package file holds small whole-file helpers: read, write, copy,
// remove. It is a standalone collaborator; nothing in the socket
// layer depends on it.
package file

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/okanya/commonlib/pool/bytespool"
)

const copyBufSize = 32 * 1024

// ReadAll returns the whole content of the named file.
func ReadAll(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "file: read %s", name)
	}
	return data, nil
}

// WriteAll writes data to the named file, creating or truncating it.
func WriteAll(name string, data []byte) error {
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return errors.Wrapf(err, "file: write %s", name)
	}
	return nil
}

// Copy duplicates src into dst, creating or truncating dst.
func Copy(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "file: copy open %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "file: copy create %s", dst)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = errors.Wrapf(cerr, "file: copy close %s", dst)
		}
	}()

	buf := bytespool.Get(copyBufSize)
	defer bytespool.Put(buf)

	if _, err = io.CopyBuffer(out, in, buf); err != nil {
		return errors.Wrapf(err, "file: copy %s to %s", src, dst)
	}
	return nil
}

// Remove deletes the named file.
func Remove(name string) error {
	if err := os.Remove(name); err != nil {
		return errors.Wrapf(err, "file: remove %s", name)
	}
	return nil
}
