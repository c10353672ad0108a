package linker

// OutcomeStatus classifies the result of one attempted operation
type OutcomeStatus int

const (
	StatusSucceeded OutcomeStatus = iota
	StatusSkipped
	StatusFailed
)

// String returns the status as it appears in the audit log
func (s OutcomeStatus) String() string {
	switch s {
	case StatusSucceeded:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the per-duplicate result of a dispatch
type Outcome struct {
	Status     OutcomeStatus
	BytesFreed int64       // set only when Status is StatusSucceeded
	Reason     string      // set only when Status is StatusSkipped
	Message    string      // set only when Status is StatusFailed
	ErrReason  ErrorReason // categorized failure reason, StatusFailed only
}

// Detail returns the skip reason or failure message, whichever applies
func (o Outcome) Detail() string {
	switch o.Status {
	case StatusSkipped:
		return o.Reason
	case StatusFailed:
		return o.Message
	default:
		return ""
	}
}

// Succeeded builds a success outcome freeing the given bytes
func Succeeded(bytesFreed int64) Outcome {
	return Outcome{Status: StatusSucceeded, BytesFreed: bytesFreed}
}

// Skipped builds a skip outcome; skips are never counted as failures
func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

// Failed builds a failure outcome
func Failed(message string) Outcome {
	return Outcome{Status: StatusFailed, Message: message, ErrReason: ErrorUnknown}
}

// failedFrom builds a failure outcome carrying the error's category
func failedFrom(path string, err error) Outcome {
	return Outcome{
		Status:    StatusFailed,
		Message:   err.Error(),
		ErrReason: Categorize(path, err).Reason,
	}
}

// Failure pairs a duplicate path with the message of its failed operation
type Failure struct {
	Path    string
	Message string
	Reason  ErrorReason
}

// ExecutionResult aggregates one run. It is built incrementally by the
// executors and must not be modified once returned.
type ExecutionResult struct {
	Succeeded  int
	Failed     int
	Skipped    int
	BytesFreed int64
	Failures   []Failure

	// Interactive mode only
	Confirmed       int  // groups the user executed (y or a)
	UserSkipped     int  // groups the user declined (n)
	Quit            bool // run was ended early by the user
	RemainingGroups int  // groups not yet attempted when the user quit
}

func (r *ExecutionResult) add(path string, out Outcome) {
	switch out.Status {
	case StatusSucceeded:
		r.Succeeded++
		r.BytesFreed += out.BytesFreed
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
		r.Failures = append(r.Failures, Failure{Path: path, Message: out.Message, Reason: out.ErrReason})
	}
}
