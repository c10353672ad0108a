package linker

import (
	"os"

	"github.com/fenilsonani/relink/internal/probe"
)

// FallbackActionName is reported as the action taken when a hard link was
// retried as a symbolic link across devices
const FallbackActionName = "symlink (fallback)"

// Dispatch applies the configured action to one duplicate and returns the
// outcome plus the action actually taken. Order of checks: skip detection
// first (an already-linked duplicate is left untouched), then the atomic
// replacement, then the optional cross-device fallback to symlink.
func (e *Executor) Dispatch(duplicatePath, masterPath string) (Outcome, string) {
	action := e.opts.Action
	taken := action.String()

	switch action {
	case ActionHardlink:
		if probe.IsHardlinkOf(duplicatePath, masterPath) {
			return Skipped("already linked"), taken
		}
	case ActionSymlink:
		if probe.IsSymlinkTo(duplicatePath, masterPath) {
			return Skipped("already linked"), taken
		}
	case ActionDelete:
		// Deletion has no prior state to detect
	}

	info, err := os.Lstat(duplicatePath)
	if err != nil {
		return failedFrom(duplicatePath, err), taken
	}
	size := info.Size()

	if e.opts.DryRun {
		return Succeeded(size), taken
	}

	err = e.replaceFn(duplicatePath, masterPath, action)
	if err == nil {
		return Succeeded(size), taken
	}

	if action == ActionHardlink && e.opts.Fallback && IsCrossDeviceError(err) {
		e.opts.Log.Debug().Str("path", duplicatePath).Msg("hard link crossed devices, retrying as symlink")
		if fbErr := e.replaceFn(duplicatePath, masterPath, ActionSymlink); fbErr != nil {
			return failedFrom(duplicatePath, fbErr), FallbackActionName
		}
		return Succeeded(size), FallbackActionName
	}

	return failedFrom(duplicatePath, err), taken
}

func masterPresent(masterPath string) bool {
	_, err := os.Stat(masterPath)
	return err == nil
}
