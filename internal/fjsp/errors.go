package fjsp

import "fmt"

// DecodeError reports a chromosome entry that does not address a valid
// operation or alternative of the instance.
type DecodeError struct {
	Job          int
	Operation    int
	Index        int // offending MS value, or OS position when Alternatives is 0
	Alternatives int
	Reason       string
}

func (e *DecodeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("decode: %s", e.Reason)
	}
	return fmt.Sprintf("decode: job %d operation %d: machine index %d out of range [0,%d)",
		e.Job, e.Operation, e.Index, e.Alternatives)
}
