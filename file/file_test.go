package file_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/okanya/commonlib/file"
)

func TestWriteReadRoundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "data.txt")
	want := []byte("test data")

	if err := file.WriteAll(name, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := file.ReadAll(name)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("read %q, want %q", got, want)
	}
}

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	want := bytes.Repeat([]byte("abc123"), 40000) // spans several copy chunks
	if err := file.WriteAll(src, want); err != nil {
		t.Fatalf("write src: %v", err)
	}
	if err := file.Copy(src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}
	got, err := file.ReadAll(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("copied content differs from source")
	}
}

func TestCopyMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := file.Copy(filepath.Join(dir, "missing"), filepath.Join(dir, "out"))
	if err == nil {
		t.Fatal("copy of missing source succeeded")
	}
}

func TestRemove(t *testing.T) {
	name := filepath.Join(t.TempDir(), "gone.txt")
	if err := file.WriteAll(name, []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := file.Remove(name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Fatalf("file still present after remove: %v", err)
	}
	if err := file.Remove(name); err == nil {
		t.Fatal("second remove succeeded")
	}
}

func TestReadMissing(t *testing.T) {
	_, err := file.ReadAll(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("read of missing file succeeded")
	}
}
