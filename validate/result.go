package validate

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

const (
	failedHeader = "Validation FAILED:"
	successLine  = "Validation succeeded — required variables and inventory look good."
)

// Result is the outcome of one validation run.
type Result struct {
	// Errors holds every violation in check order. Empty means success.
	Errors []string
	// Hosts are the host lines found in the target inventory section.
	Hosts []string
}

// OK reports whether no violation was found.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// ExitCode maps the result to the process exit status.
func (r Result) ExitCode() int {
	if r.OK() {
		return ExitOK
	}
	return ExitInvalid
}

// Err folds all violations into a single error, or nil on success.
func (r Result) Err() error {
	var err error
	for _, msg := range r.Errors {
		err = multierr.Append(err, ErrInvalid(msg))
	}
	return err
}

// Print writes the console report.
func (r Result) Print(w io.Writer) error {
	if r.OK() {
		_, err := fmt.Fprintln(w, successLine)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", failedHeader); err != nil {
		return err
	}
	for _, msg := range r.Errors {
		if _, err := fmt.Fprintf(w, " - %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}
