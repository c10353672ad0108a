// Package linker executes the chosen action against every confirmed
// duplicate: the rollback-safe replacement primitive, the per-file
// dispatcher with skip detection and cross-device fallback, and the batch
// and interactive execution loops. Execution is strictly sequential in
// group-then-duplicate order; the audit log reflects exactly that order.
package linker

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/fenilsonani/relink/internal/audit"
	"github.com/fenilsonani/relink/internal/scanner"
)

// Recorder receives one audit entry per attempted operation. *audit.Log
// satisfies it; tests substitute an in-memory recorder.
type Recorder interface {
	Record(e audit.Entry) error
}

// OutcomeEvent is invoked after every attempted operation so a presentation
// layer can render inline markers as they occur
type OutcomeEvent func(duplicatePath, actionTaken string, out Outcome)

// Options configures an Executor for one run
type Options struct {
	Action    Action
	Fallback  bool // retry as symlink when a hard link crosses devices
	DryRun    bool // report what would happen without mutating anything
	Recorder  Recorder
	OnOutcome OutcomeEvent
	Log       zerolog.Logger
}

// Executor runs the chosen action over duplicate groups
type Executor struct {
	opts Options

	// replaceFn is swapped out in tests to force specific failures
	replaceFn func(duplicatePath, masterPath string, action Action) error
}

// New creates an Executor
func New(opts Options) *Executor {
	return &Executor{
		opts:      opts,
		replaceFn: Replace,
	}
}

// runGroup executes one group. A failure on one duplicate never aborts the
// group: remaining duplicates are still attempted.
func (e *Executor) runGroup(g scanner.DuplicateGroup, res *ExecutionResult) {
	if !masterPresent(g.Master) {
		for _, dup := range g.Duplicates {
			out := Failed("master file missing: " + g.Master)
			out.ErrReason = ErrorFileNotFound
			e.finish(g, dup, e.opts.Action.String(), out, res)
		}
		return
	}

	for _, dup := range g.Duplicates {
		out, taken := e.Dispatch(dup, g.Master)
		e.finish(g, dup, taken, out, res)
	}
}

// finish folds one outcome into the result, audit log and event stream
func (e *Executor) finish(g scanner.DuplicateGroup, dup, taken string, out Outcome, res *ExecutionResult) {
	res.add(dup, out)

	if e.opts.Recorder != nil {
		err := e.opts.Recorder.Record(audit.Entry{
			Time:          time.Now(),
			Action:        taken,
			DuplicatePath: dup,
			MasterPath:    g.Master,
			Size:          g.Size,
			Hash:          g.Hash,
			Outcome:       out.Status.String(),
			Detail:        out.Detail(),
		})
		if err != nil {
			e.opts.Log.Warn().Err(err).Str("path", dup).Msg("audit entry not written")
		}
	}

	switch out.Status {
	case StatusFailed:
		e.opts.Log.Error().Str("path", dup).Str("action", taken).Msg(out.Message)
	default:
		e.opts.Log.Debug().Str("path", dup).Str("action", taken).Str("outcome", out.Status.String()).Send()
	}

	if e.opts.OnOutcome != nil {
		e.opts.OnOutcome(dup, taken, out)
	}
}
