package linker

import "github.com/fenilsonani/relink/internal/scanner"

// Run executes every duplicate in every group without prompting, in stable
// group-then-duplicate order. Individual failures are recorded and iteration
// continues; there are no retries and no aborts. This is the code path used
// when the caller has pre-authorized the entire run.
func (e *Executor) Run(groups []scanner.DuplicateGroup) *ExecutionResult {
	res := &ExecutionResult{}

	e.opts.Log.Info().
		Int("groups", len(groups)).
		Str("action", e.opts.Action.String()).
		Bool("dry_run", e.opts.DryRun).
		Msg("starting batch run")

	for i := range groups {
		e.runGroup(groups[i], res)
	}

	return res
}
