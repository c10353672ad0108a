// Package probe answers stateless questions about the relationship between
// two filesystem entries. Every query degrades to a safe default when a path
// cannot be stat'd: "not linked" for the link checks and "cross-device" for
// the device check, so callers are never blocked by a probe failure.
package probe

import (
	"os"
	"syscall"
)

// IsHardlinkOf reports whether pathA and pathB are names for the same
// underlying inode. Symbolic links are not followed; a symlink pointing at
// pathB is not a hard link to it.
func IsHardlinkOf(pathA, pathB string) bool {
	infoA, err := os.Lstat(pathA)
	if err != nil {
		return false
	}
	infoB, err := os.Lstat(pathB)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// IsSymlinkTo reports whether path is a symbolic link that resolves to
// target, directly or through a chain of links.
func IsSymlinkTo(path, target string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false
	}

	// Stat follows the link chain; equal identity means it lands on target.
	resolved, err := os.Stat(path)
	if err != nil {
		return false // dangling link
	}
	targetInfo, err := os.Stat(target)
	if err != nil {
		return false
	}
	return os.SameFile(resolved, targetInfo)
}

// IsCrossDevice reports whether pathA and pathB live on different storage
// devices, which makes hard linking between them impossible.
func IsCrossDevice(pathA, pathB string) bool {
	devA, ok := deviceOf(pathA)
	if !ok {
		return true
	}
	devB, ok := deviceOf(pathB)
	if !ok {
		return true
	}
	return devA != devB
}

func deviceOf(path string) (uint64, bool) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, false
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return uint64(stat.Dev), true
}
