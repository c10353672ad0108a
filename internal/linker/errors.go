package linker

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrorReason categorizes why an operation failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorCrossDevice
	ErrorFileNotFound
	ErrorFileInUse
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorCrossDevice:
		return "Cross-device link"
	case ErrorFileNotFound:
		return "File not found"
	case ErrorFileInUse:
		return "File is in use"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// OpError is a categorized operation failure
type OpError struct {
	Path     string
	Reason   ErrorReason
	Original error
}

// Error implements the error interface
func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Path, e.Reason, e.Original)
}

// UserMessage returns a user-friendly error message
func (e *OpError) UserMessage() string {
	switch e.Reason {
	case ErrorPermissionDenied:
		return fmt.Sprintf("⚠️  Permission denied: %s", e.Path)
	case ErrorCrossDevice:
		return fmt.Sprintf("⚠️  On a different device than its master: %s", e.Path)
	case ErrorFileNotFound:
		return fmt.Sprintf("ℹ️  File no longer exists: %s", e.Path)
	case ErrorFileInUse:
		return fmt.Sprintf("⚠️  File is being used: %s", e.Path)
	default:
		return fmt.Sprintf("❌ Error replacing %s: %v", e.Path, e.Original)
	}
}

// Categorize analyzes an error and returns a categorized OpError
func Categorize(path string, err error) *OpError {
	if err == nil {
		return nil
	}

	opErr := &OpError{
		Path:     path,
		Original: err,
		Reason:   ErrorUnknown,
	}

	if os.IsNotExist(err) {
		opErr.Reason = ErrorFileNotFound
		return opErr
	}
	if os.IsPermission(err) {
		opErr.Reason = ErrorPermissionDenied
		return opErr
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			opErr.Reason = ErrorPermissionDenied
		case syscall.EXDEV:
			opErr.Reason = ErrorCrossDevice
		case syscall.ENOENT:
			opErr.Reason = ErrorFileNotFound
		case syscall.EBUSY, syscall.ETXTBSY:
			opErr.Reason = ErrorFileInUse
		}
		return opErr
	}

	return opErr
}

// IsCrossDeviceError reports whether err is the kernel refusing a hard link
// across filesystems
func IsCrossDeviceError(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

// GroupFailures groups run failures by reason
func GroupFailures(failures []Failure) map[ErrorReason][]Failure {
	grouped := make(map[ErrorReason][]Failure)
	for _, f := range failures {
		grouped[f.Reason] = append(grouped[f.Reason], f)
	}
	return grouped
}

// FormatFailureSummary creates a user-friendly summary of failures
func FormatFailureSummary(failures []Failure) string {
	if len(failures) == 0 {
		return ""
	}

	grouped := GroupFailures(failures)
	summary := "\n⚠️  Issues encountered:\n"

	if perms, ok := grouped[ErrorPermissionDenied]; ok {
		summary += fmt.Sprintf("   ├─ Permission denied: %d files\n", len(perms))
		summary += "   │  └─ Tip: check ownership of the duplicate directories\n"
	}
	if xdev, ok := grouped[ErrorCrossDevice]; ok {
		summary += fmt.Sprintf("   ├─ Cross-device: %d files\n", len(xdev))
		summary += "   │  └─ Tip: re-run with --fallback to symlink across devices\n"
	}
	if busy, ok := grouped[ErrorFileInUse]; ok {
		summary += fmt.Sprintf("   ├─ File in use: %d files\n", len(busy))
	}
	if notFound, ok := grouped[ErrorFileNotFound]; ok {
		summary += fmt.Sprintf("   ├─ Vanished before replacement: %d files\n", len(notFound))
	}
	if unknown, ok := grouped[ErrorUnknown]; ok {
		summary += fmt.Sprintf("   └─ Other errors: %d files\n", len(unknown))
	}

	return summary
}
