package linker

import "fmt"

// Action is the replacement applied to every confirmed duplicate in a run
type Action int

const (
	ActionHardlink Action = iota
	ActionSymlink
	ActionDelete
)

// String returns the action name as it appears in flags and the audit log
func (a Action) String() string {
	switch a {
	case ActionHardlink:
		return "hardlink"
	case ActionSymlink:
		return "symlink"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ParseAction converts a flag or config value into an Action
func ParseAction(s string) (Action, error) {
	switch s {
	case "hardlink":
		return ActionHardlink, nil
	case "symlink":
		return ActionSymlink, nil
	case "delete":
		return ActionDelete, nil
	default:
		return 0, fmt.Errorf("unknown action %q (expected hardlink, symlink or delete)", s)
	}
}
