package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Replace swaps the duplicate for the requested action's result using the
// temp-rename pattern: the duplicate is first renamed to a sibling temporary
// name (same directory, so the rename never leaves the filesystem), then the
// link is materialized at the original path. If materialization fails the
// temporary file is renamed back, so the duplicate is never lost. For
// ActionDelete no link is created and removing the temporary file is the
// deletion itself.
//
// Replace knows nothing about skip detection; that lives in the dispatcher.
func Replace(duplicatePath, masterPath string, action Action) error {
	tmpPath := tempName(duplicatePath)

	if err := os.Rename(duplicatePath, tmpPath); err != nil {
		// Nothing has been mutated yet
		return err
	}

	var linkErr error
	switch action {
	case ActionHardlink:
		linkErr = os.Link(masterPath, duplicatePath)
	case ActionSymlink:
		target, err := filepath.Abs(masterPath)
		if err != nil {
			linkErr = err
		} else {
			linkErr = os.Symlink(target, duplicatePath)
		}
	case ActionDelete:
		// No new entry; removing the temp below is the delete
	default:
		linkErr = fmt.Errorf("unhandled action %v", action)
	}

	if linkErr != nil {
		if rbErr := os.Rename(tmpPath, duplicatePath); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed, original preserved at %s: %v)",
				linkErr, tmpPath, rbErr)
		}
		return linkErr
	}

	if err := os.Remove(tmpPath); err != nil {
		// Undo the link so the rollback law holds even here
		if action != ActionDelete {
			os.Remove(duplicatePath)
		}
		if rbErr := os.Rename(tmpPath, duplicatePath); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed, original preserved at %s: %v)",
				err, tmpPath, rbErr)
		}
		return err
	}

	return nil
}

// tempName returns a sibling name unlikely to collide with real files
func tempName(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.relink-%d-%d", base, os.Getpid(), time.Now().UnixNano()))
}
