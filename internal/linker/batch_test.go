package linker

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/relink/internal/audit"
	"github.com/fenilsonani/relink/internal/scanner"
	"github.com/fenilsonani/relink/internal/testutil"
)

// memRecorder captures audit entries in memory
type memRecorder struct {
	entries []audit.Entry
}

func (m *memRecorder) Record(e audit.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func group(master string, size int64, dups ...string) scanner.DuplicateGroup {
	return scanner.DuplicateGroup{
		Hash:       "fingerprint",
		Size:       size,
		Master:     master,
		Duplicates: dups,
	}
}

// =============================================================================
// Batch Execution
// =============================================================================

// Three groups, hard link action, the duplicate in group 2 unwritable:
// both other duplicates succeed, the run continues past the failure, and
// exactly one audit entry is written per attempted operation.
func TestBatchContinuesPastFailures(t *testing.T) {
	testutil.SkipIfRoot(t)

	fx := testutil.NewFixture(t)
	content := []byte("identical file content")
	size := int64(len(content))

	m1, d1 := fx.CreatePair("g1.txt", content)
	m2 := fx.CreateMasterFile("g2.txt", content)
	d2 := fx.CreateFile("dup/locked/g2.txt", content)
	m3, d3 := fx.CreatePair("g3.txt", content)
	fx.MakeDirReadOnly(fx.Path("dup/locked"))

	rec := &memRecorder{}
	exec := New(Options{Action: ActionHardlink, Recorder: rec, Log: zerolog.Nop()})

	res := exec.Run([]scanner.DuplicateGroup{
		group(m1, size, d1),
		group(m2, size, d2),
		group(m3, size, d3),
	})

	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 0, res.Skipped)
	assert.Len(t, rec.entries, 3)
	assert.Equal(t, ExitPartialFailure, ResolveExitCode(res))

	require.Len(t, res.Failures, 1)
	assert.Equal(t, d2, res.Failures[0].Path)

	fx.AssertHardlinked(d1, m1)
	fx.AssertHardlinked(d3, m3)
	fx.AssertFileExists(d2)
}

// A missing master fails every duplicate in its group; the requested
// outcome cannot be achieved, so this is not a skip.
func TestBatchMasterMissingFailsGroup(t *testing.T) {
	fx := testutil.NewFixture(t)
	content := []byte("identical file content")
	size := int64(len(content))

	d1 := fx.CreateDupFile("a.txt", content)
	d2 := fx.CreateDupFile("b.txt", content)
	m3, d3 := fx.CreatePair("c.txt", content)

	rec := &memRecorder{}
	exec := New(Options{Action: ActionHardlink, Recorder: rec, Log: zerolog.Nop()})

	res := exec.Run([]scanner.DuplicateGroup{
		group(fx.Path("master/gone.txt"), size, d1, d2),
		group(m3, size, d3),
	})

	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	assert.Len(t, rec.entries, 3)

	// The orphaned duplicates are untouched
	fx.AssertFileExists(d1)
	fx.AssertFileExists(d2)
	fx.AssertHardlinked(d3, m3)
}

// Bytes freed equals the sum of duplicate sizes whose outcome succeeded;
// failed and skipped operations contribute zero.
func TestBatchBytesConservation(t *testing.T) {
	fx := testutil.NewFixture(t)

	small := []byte("abcd")
	large := []byte("a much longer file body for the second group")

	m1, d1 := fx.CreatePair("small.txt", small)
	m2, d2 := fx.CreatePair("large.txt", large)
	m3 := fx.CreateMasterFile("linked.txt", small)
	d3 := fx.CreateHardlink(m3, "dup/linked.txt")

	exec := New(Options{Action: ActionHardlink, Log: zerolog.Nop()})

	res := exec.Run([]scanner.DuplicateGroup{
		group(m1, int64(len(small)), d1),
		group(m2, int64(len(large)), d2),
		group(m3, int64(len(small)), d3),
	})

	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, int64(len(small)+len(large)), res.BytesFreed)
}

// Outcome events arrive in strict group-then-duplicate order.
func TestBatchEventOrder(t *testing.T) {
	fx := testutil.NewFixture(t)
	content := []byte("identical file content")
	size := int64(len(content))

	m1 := fx.CreateMasterFile("g1.txt", content)
	d1a := fx.CreateFile("dup/g1-a.txt", content)
	d1b := fx.CreateFile("dup/g1-b.txt", content)
	m2, d2 := fx.CreatePair("g2.txt", content)

	var order []string
	exec := New(Options{
		Action: ActionHardlink,
		Log:    zerolog.Nop(),
		OnOutcome: func(dup, taken string, out Outcome) {
			order = append(order, dup)
		},
	})

	exec.Run([]scanner.DuplicateGroup{
		group(m1, size, d1a, d1b),
		group(m2, size, d2),
	})

	assert.Equal(t, []string{d1a, d1b, d2}, order)
}
