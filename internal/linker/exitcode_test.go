package linker

import "testing"

func TestResolveExitCode(t *testing.T) {
	tests := []struct {
		name     string
		result   ExecutionResult
		expected int
	}{
		{
			name:     "all succeeded",
			result:   ExecutionResult{Succeeded: 3},
			expected: ExitOK,
		},
		{
			name:     "nothing to do",
			result:   ExecutionResult{},
			expected: ExitOK,
		},
		{
			name:     "skips alone are success",
			result:   ExecutionResult{Succeeded: 2, Skipped: 4},
			expected: ExitOK,
		},
		{
			name:     "any failure",
			result:   ExecutionResult{Succeeded: 2, Failed: 1},
			expected: ExitPartialFailure,
		},
		{
			name:     "quit takes precedence over failures",
			result:   ExecutionResult{Succeeded: 1, Failed: 1, Quit: true},
			expected: ExitUserQuit,
		},
		{
			name:     "quit with clean run so far",
			result:   ExecutionResult{Succeeded: 2, Quit: true, RemainingGroups: 3},
			expected: ExitUserQuit,
		},
		{
			name:     "user skips alone are success",
			result:   ExecutionResult{UserSkipped: 5},
			expected: ExitOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveExitCode(&tt.result); got != tt.expected {
				t.Errorf("ResolveExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
