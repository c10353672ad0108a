// Package testutil provides test helpers and fixtures for relink tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// TestFixture holds paths to the master and duplicate test trees
type TestFixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)

	MasterDir string
	DupDir    string
}

// NewFixture creates a new test fixture with a master and a duplicate tree
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	root := t.TempDir()

	f := &TestFixture{
		T:         t,
		RootDir:   root,
		MasterDir: filepath.Join(root, "master"),
		DupDir:    filepath.Join(root, "dup"),
	}

	for _, dir := range []string{f.MasterDir, f.DupDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	return f
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file with specified content and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateMasterFile creates a file in the master tree
func (f *TestFixture) CreateMasterFile(name string, content []byte) string {
	f.T.Helper()
	return f.CreateFile(filepath.Join("master", name), content)
}

// CreateDupFile creates a file in the duplicate tree
func (f *TestFixture) CreateDupFile(name string, content []byte) string {
	f.T.Helper()
	return f.CreateFile(filepath.Join("dup", name), content)
}

// CreatePair creates identical content in both trees and returns
// (masterPath, dupPath)
func (f *TestFixture) CreatePair(name string, content []byte) (string, string) {
	f.T.Helper()
	return f.CreateMasterFile(name, content), f.CreateDupFile(name, content)
}

// =============================================================================
// Link Helpers
// =============================================================================

// CreateSymlink creates a symbolic link at linkPath pointing to target
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := filepath.Join(f.RootDir, linkPath)
	if err := os.MkdirAll(filepath.Dir(fullLinkPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullLinkPath, err)
	}

	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLinkPath, target, err)
	}

	return fullLinkPath
}

// CreateHardlink creates a hard link at linkPath sharing target's inode
func (f *TestFixture) CreateHardlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := filepath.Join(f.RootDir, linkPath)
	if err := os.MkdirAll(filepath.Dir(fullLinkPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullLinkPath, err)
	}

	if err := os.Link(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create hardlink %s -> %s: %v", fullLinkPath, target, err)
	}

	return fullLinkPath
}

// =============================================================================
// Permission Helpers
// =============================================================================

// MakeDirReadOnly strips write permission from a directory so entries inside
// it cannot be renamed or removed. Permissions are restored on cleanup.
func (f *TestFixture) MakeDirReadOnly(dirPath string) {
	f.T.Helper()

	if err := os.Chmod(dirPath, 0555); err != nil {
		f.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}

	f.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})
}

// =============================================================================
// Path Helpers
// =============================================================================

// Path returns the full path for a relative path within the fixture
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// FileExists checks if a file exists
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// ContentHash returns the SHA256 hex digest of a file's content
func (f *TestFixture) ContentHash(path string) string {
	f.T.Helper()

	file, err := os.Open(path)
	if err != nil {
		f.T.Fatalf("failed to open %s: %v", path, err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		f.T.Fatalf("failed to hash %s: %v", path, err)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// AssertFileExists fails the test if the file doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// AssertHardlinked fails unless a and b share the same inode
func (f *TestFixture) AssertHardlinked(a, b string) {
	f.T.Helper()

	infoA, err := os.Lstat(a)
	if err != nil {
		f.T.Errorf("failed to stat %s: %v", a, err)
		return
	}
	infoB, err := os.Lstat(b)
	if err != nil {
		f.T.Errorf("failed to stat %s: %v", b, err)
		return
	}
	if !os.SameFile(infoA, infoB) {
		f.T.Errorf("expected %s and %s to be hard links of each other", a, b)
	}
}

// AssertSymlinkTo fails unless path is a symlink resolving to target
func (f *TestFixture) AssertSymlinkTo(path, target string) {
	f.T.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		f.T.Errorf("failed to stat %s: %v", path, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		f.T.Errorf("expected %s to be a symlink", path)
		return
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		f.T.Errorf("failed to resolve %s: %v", path, err)
		return
	}
	wantResolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		f.T.Errorf("failed to resolve %s: %v", target, err)
		return
	}
	if resolved != wantResolved {
		f.T.Errorf("symlink %s resolves to %s, want %s", path, resolved, wantResolved)
	}
}

// DirEntryCount returns the number of entries directly inside dir
func (f *TestFixture) DirEntryCount(dir string) int {
	f.T.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		f.T.Fatalf("failed to read dir %s: %v", dir, err)
	}
	return len(entries)
}

// IsRoot returns true if running as root
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips the test if running as root
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}
