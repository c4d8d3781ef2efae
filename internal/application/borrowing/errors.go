package borrowing

import (
	"errors"
	"fmt"
)

// ErrEnrichmentDegraded marks a transaction whose customer or item could not
// be loaded and was replaced with a placeholder. It is logged, never returned.
var ErrEnrichmentDegraded = errors.New("enrichment degraded")

// Step identifies a stage of CreateBorrowing
type Step string

const (
	StepCustomer    Step = "customer"
	StepItem        Step = "item"
	StepTransaction Step = "transaction"
)

// ValidationError reports a missing or malformed input field. It is raised
// before any call to the Directory.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ResolutionError reports that a customer could not be found or created
type ResolutionError struct {
	Email string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve customer %s: %v", e.Email, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// CreationError reports a failed step of CreateBorrowing. Records created
// by earlier steps are left in place.
type CreationError struct {
	Step Step
	Err  error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("create borrowing (%s step): %v", e.Step, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// FetchError reports that the transaction list could not be loaded
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("list borrowings: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
