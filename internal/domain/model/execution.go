package model

import "time"

// ExecOutcome classifies how a renderer subprocess finished.
type ExecOutcome string

const (
	// ExecOutcomeSuccess indicates the renderer exited zero.
	ExecOutcomeSuccess ExecOutcome = "success"
	// ExecOutcomeProcessError indicates the renderer exited non-zero.
	ExecOutcomeProcessError ExecOutcome = "process_error"
	// ExecOutcomeTimeout indicates the renderer was killed at the wall-clock bound.
	ExecOutcomeTimeout ExecOutcome = "timeout"
)

// ExecutionResult captures one renderer subprocess run. Exactly one is
// produced per job; stdout/stderr are carried for diagnostics only and are
// never interpreted.
type ExecutionResult struct {
	JobID    string
	Outcome  ExecOutcome
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Succeeded reports whether output discovery may run for this result.
func (r ExecutionResult) Succeeded() bool {
	return r.Outcome == ExecOutcomeSuccess
}
