package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHashFile(t *testing.T) {
	a := writeTemp(t, "a.txt", []byte("hello world"))
	b := writeTemp(t, "b.txt", []byte("hello world"))
	c := writeTemp(t, "c.txt", []byte("hello worlD"))

	hashA, err := HashFile(a)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	hashB, _ := HashFile(b)
	hashC, _ := HashFile(c)

	if hashA != hashB {
		t.Error("identical content produced different hashes")
	}
	if hashA == hashC {
		t.Error("different content produced the same hash")
	}
	if len(hashA) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(hashA))
	}
}

func TestHashFileMissing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("HashFile() should fail for a missing file")
	}
}

func TestHashFileQuick(t *testing.T) {
	const chunk = 16

	big := bytes.Repeat([]byte("0123456789abcdef"), 8) // 128 bytes, > 2 chunks
	a := writeTemp(t, "a.bin", big)
	b := writeTemp(t, "b.bin", big)

	hashA, err := HashFileQuick(a, chunk)
	if err != nil {
		t.Fatalf("HashFileQuick() error = %v", err)
	}
	hashB, _ := HashFileQuick(b, chunk)
	if hashA != hashB {
		t.Error("identical content produced different quick hashes")
	}

	// Differ in first chunk
	head := append([]byte{}, big...)
	head[0] ^= 0xff
	if h, _ := HashFileQuick(writeTemp(t, "head.bin", head), chunk); h == hashA {
		t.Error("first-chunk difference not detected")
	}

	// Differ in last chunk
	tail := append([]byte{}, big...)
	tail[len(tail)-1] ^= 0xff
	if h, _ := HashFileQuick(writeTemp(t, "tail.bin", tail), chunk); h == hashA {
		t.Error("last-chunk difference not detected")
	}

	// Same prefix and suffix but different length
	longer := append(append([]byte{}, big...), big...)
	if h, _ := HashFileQuick(writeTemp(t, "long.bin", longer), chunk); h == hashA {
		t.Error("length difference not detected")
	}
}

func TestHashFileQuickSmallFile(t *testing.T) {
	content := []byte("tiny")
	a := writeTemp(t, "a.txt", content)
	b := writeTemp(t, "b.txt", content)

	hashA, err := HashFileQuick(a, 1024)
	if err != nil {
		t.Fatalf("HashFileQuick() error = %v", err)
	}
	hashB, _ := HashFileQuick(b, 1024)
	if hashA != hashB {
		t.Error("identical small files produced different quick hashes")
	}
}
