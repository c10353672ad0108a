package linker

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorReason
	}{
		{
			name:     "permission denied errno",
			err:      syscall.EACCES,
			expected: ErrorPermissionDenied,
		},
		{
			name:     "operation not permitted",
			err:      syscall.EPERM,
			expected: ErrorPermissionDenied,
		},
		{
			name:     "cross device link",
			err:      syscall.EXDEV,
			expected: ErrorCrossDevice,
		},
		{
			name:     "file not found",
			err:      syscall.ENOENT,
			expected: ErrorFileNotFound,
		},
		{
			name:     "device busy",
			err:      syscall.EBUSY,
			expected: ErrorFileInUse,
		},
		{
			name:     "text file busy",
			err:      syscall.ETXTBSY,
			expected: ErrorFileInUse,
		},
		{
			name:     "wrapped in link error",
			err:      &os.LinkError{Op: "link", Old: "a", New: "b", Err: syscall.EXDEV},
			expected: ErrorCrossDevice,
		},
		{
			name:     "wrapped in path error",
			err:      &os.PathError{Op: "rename", Path: "/tmp/x", Err: syscall.EACCES},
			expected: ErrorPermissionDenied,
		},
		{
			name:     "fmt wrapped errno",
			err:      fmt.Errorf("replace failed: %w", syscall.EXDEV),
			expected: ErrorCrossDevice,
		},
		{
			name:     "unrecognized error",
			err:      errors.New("something odd"),
			expected: ErrorUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opErr := Categorize("/some/path", tt.err)
			if opErr == nil {
				t.Fatal("Categorize() returned nil for non-nil error")
			}
			if opErr.Reason != tt.expected {
				t.Errorf("Categorize() reason = %v, want %v", opErr.Reason, tt.expected)
			}
			if opErr.Path != "/some/path" {
				t.Errorf("Categorize() path = %q, want %q", opErr.Path, "/some/path")
			}
		})
	}
}

func TestCategorizeNilError(t *testing.T) {
	if opErr := Categorize("/some/path", nil); opErr != nil {
		t.Errorf("Categorize(nil) = %v, want nil", opErr)
	}
}

func TestIsCrossDeviceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"bare EXDEV", syscall.EXDEV, true},
		{"link error EXDEV", &os.LinkError{Op: "link", Old: "a", New: "b", Err: syscall.EXDEV}, true},
		{"other errno", syscall.EACCES, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCrossDeviceError(tt.err); got != tt.expected {
				t.Errorf("IsCrossDeviceError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorReasonString(t *testing.T) {
	reasons := []ErrorReason{
		ErrorPermissionDenied,
		ErrorCrossDevice,
		ErrorFileNotFound,
		ErrorFileInUse,
		ErrorUnknown,
	}
	for _, r := range reasons {
		if r.String() == "" || r.String() == "Unspecified error" {
			t.Errorf("ErrorReason(%d).String() = %q", r, r.String())
		}
	}
	if ErrorReason(99).String() != "Unspecified error" {
		t.Errorf("out-of-range reason string = %q", ErrorReason(99).String())
	}
}

func TestFormatFailureSummary(t *testing.T) {
	failures := []Failure{
		{Path: "/a", Reason: ErrorPermissionDenied},
		{Path: "/b", Reason: ErrorPermissionDenied},
		{Path: "/c", Reason: ErrorCrossDevice},
		{Path: "/d", Reason: ErrorUnknown},
	}

	summary := FormatFailureSummary(failures)
	if !strings.Contains(summary, "Permission denied: 2 files") {
		t.Errorf("summary missing permission line:\n%s", summary)
	}
	if !strings.Contains(summary, "Cross-device: 1 files") {
		t.Errorf("summary missing cross-device line:\n%s", summary)
	}
	if !strings.Contains(summary, "--fallback") {
		t.Errorf("summary missing fallback tip:\n%s", summary)
	}
	if FormatFailureSummary(nil) != "" {
		t.Error("empty failure list should produce empty summary")
	}
}
