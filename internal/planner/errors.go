package planner

import "fmt"

// ErrorKind discriminates planner failures so API layers can map them to
// transport-level responses without string matching.
type ErrorKind string

const (
	KindUnknownKey           ErrorKind = "unknown_key"
	KindUnknownTemplate      ErrorKind = "unknown_template"
	KindInvalidStyleProfile  ErrorKind = "invalid_style_profile"
	KindInsufficientDepth    ErrorKind = "insufficient_depth"
	KindNoViableContinuation ErrorKind = "no_viable_continuation"
	KindCancelled            ErrorKind = "cancelled"
	KindInternal             ErrorKind = "internal"
)

// PlanError is the structured failure value returned by the planner.
// Bar is meaningful only for KindNoViableContinuation (0-indexed bar at
// which every live beam node ran out of candidates).
type PlanError struct {
	Kind ErrorKind
	Bar  int
	Err  error
}

func (e *PlanError) Error() string {
	switch e.Kind {
	case KindNoViableContinuation:
		return fmt.Sprintf("no viable continuation at bar %d", e.Bar+1)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return string(e.Kind)
	}
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

func planErr(kind ErrorKind, err error) *PlanError {
	return &PlanError{Kind: kind, Err: err}
}

func planErrf(kind ErrorKind, format string, args ...any) *PlanError {
	return &PlanError{Kind: kind, Err: fmt.Errorf(format, args...)}
}
