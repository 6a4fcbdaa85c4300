// Package forms owns the server-side form sessions of the dashboard: each
// open dialog/tab corresponds to one session holding a transient draft, its
// validation state and a submission state machine
// (Idle | Pending | Succeeded | Failed). Drafts exist only while the session
// is open and are discarded on close; a failed submission preserves the
// draft so the user can retry, a successful one resets it to defaults.
package forms

import (
	"errors"
	"fmt"

	"github.com/pharmaudit/dashboard/internal/domain"
)

// StateKind is the submission phase of a form session.
type StateKind string

const (
	StateIdle      StateKind = "idle"
	StatePending   StateKind = "pending"
	StateSucceeded StateKind = "succeeded"
	StateFailed    StateKind = "failed"
)

// State is the observable machine state; Reason is set only when failed.
type State struct {
	Kind   StateKind `json:"kind"`
	Reason string    `json:"reason,omitempty"`
}

// ErrSubmissionInFlight rejects a second submit while one is pending.
// At most one submission is in flight per form session.
var ErrSubmissionInFlight = errors.New("a submission is already in flight for this form")

// Validation is the result of the client-side rules, checked before any
// network call. Errors maps field name to a user-facing message.
type Validation struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (v *Validation) fail(field, message string) {
	if v.Errors == nil {
		v.Errors = make(map[string]string)
	}
	v.Errors[field] = message
	v.Valid = false
}

// ValidationError carries the field errors of a rejected submit.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "form validation failed"
}

// ConfirmationRequiredError signals that a physical count disagrees with
// system stock and the two-step confirmation has not been given yet.
type ConfirmationRequiredError struct {
	Variance domain.Variance
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("stock mismatch requires confirmation: %s", e.Variance.Label())
}
