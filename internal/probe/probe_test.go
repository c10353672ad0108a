package probe

import (
	"testing"

	"github.com/fenilsonani/relink/internal/testutil"
)

func TestIsHardlinkOf(t *testing.T) {
	fx := testutil.NewFixture(t)

	master := fx.CreateMasterFile("a.txt", []byte("content"))
	linked := fx.CreateHardlink(master, "dup/a.txt")
	copied := fx.CreateDupFile("b.txt", []byte("content"))

	tests := []struct {
		name     string
		pathA    string
		pathB    string
		expected bool
	}{
		{"same inode", linked, master, true},
		{"identical content, different inode", copied, master, false},
		{"same path twice", master, master, true},
		{"missing first path", fx.Path("dup/gone.txt"), master, false},
		{"missing second path", master, fx.Path("master/gone.txt"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHardlinkOf(tt.pathA, tt.pathB); got != tt.expected {
				t.Errorf("IsHardlinkOf() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsHardlinkOfIgnoresSymlinks(t *testing.T) {
	fx := testutil.NewFixture(t)

	master := fx.CreateMasterFile("a.txt", []byte("content"))
	link := fx.CreateSymlink(master, "dup/a.txt")

	if IsHardlinkOf(link, master) {
		t.Error("a symlink should not count as a hard link")
	}
}

func TestIsSymlinkTo(t *testing.T) {
	fx := testutil.NewFixture(t)

	master := fx.CreateMasterFile("a.txt", []byte("content"))
	other := fx.CreateMasterFile("b.txt", []byte("other"))
	direct := fx.CreateSymlink(master, "dup/direct.txt")
	chained := fx.CreateSymlink(direct, "dup/chained.txt")
	dangling := fx.CreateSymlink(fx.Path("master/gone.txt"), "dup/dangling.txt")
	regular := fx.CreateDupFile("plain.txt", []byte("content"))

	tests := []struct {
		name     string
		path     string
		target   string
		expected bool
	}{
		{"direct link", direct, master, true},
		{"chain of links", chained, master, true},
		{"wrong target", direct, other, false},
		{"dangling link", dangling, master, false},
		{"regular file", regular, master, false},
		{"missing path", fx.Path("dup/gone.txt"), master, false},
		{"missing target", direct, fx.Path("master/gone.txt"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSymlinkTo(tt.path, tt.target); got != tt.expected {
				t.Errorf("IsSymlinkTo() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsCrossDevice(t *testing.T) {
	fx := testutil.NewFixture(t)

	a := fx.CreateMasterFile("a.txt", []byte("x"))
	b := fx.CreateDupFile("b.txt", []byte("y"))

	// Siblings in one temp dir are always on the same device
	if IsCrossDevice(a, b) {
		t.Error("files in the same directory tree reported as cross-device")
	}

	// An unstattable path errs toward cross-device
	if !IsCrossDevice(a, fx.Path("dup/gone.txt")) {
		t.Error("missing path should report cross-device")
	}
}
