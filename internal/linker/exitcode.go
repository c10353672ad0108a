package linker

// Process exit codes. Three distinct values so calling scripts can tell
// "nothing went wrong", "something failed" and "the user chose to stop"
// apart.
const (
	ExitOK             = 0
	ExitPartialFailure = 1
	ExitUserQuit       = 2
)

// ResolveExitCode translates an aggregate result into a process exit
// status. A user quit wins regardless of counts; otherwise any failure
// means partial failure; otherwise success. A run where the user declined
// every group is a success, not an error.
func ResolveExitCode(res *ExecutionResult) int {
	switch {
	case res.Quit:
		return ExitUserQuit
	case res.Failed > 0:
		return ExitPartialFailure
	default:
		return ExitOK
	}
}
