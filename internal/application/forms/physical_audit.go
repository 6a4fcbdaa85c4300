package forms

import (
	"context"
	"strconv"
	"sync"

	"github.com/pharmaudit/dashboard/internal/domain"
)

// defaultAuditRemarks is recorded when the user leaves remarks empty.
const defaultAuditRemarks = "Physical stock count"

// PhysicalAuditDraft is the transient state of an open physical count form.
type PhysicalAuditDraft struct {
	CountedQty string `json:"counted_qty"`
	Remarks    string `json:"remarks"`
}

// PhysicalAuditForm records a physical stock count against system stock.
// Any count that disagrees with system stock is a stock-correcting write and
// must pass a two-step confirmation before it dispatches.
type PhysicalAuditForm struct {
	mu      sync.Mutex
	product domain.Product
	draft   PhysicalAuditDraft
	state   State
	submit  func(ctx context.Context, req domain.PhysicalAuditRequest) error
}

// NewPhysicalAuditForm opens a count form for the selected product.
func NewPhysicalAuditForm(product domain.Product, submit func(ctx context.Context, req domain.PhysicalAuditRequest) error) *PhysicalAuditForm {
	return &PhysicalAuditForm{
		product: product,
		state:   State{Kind: StateIdle},
		submit:  submit,
	}
}

// Draft returns a copy of the current draft.
func (f *PhysicalAuditForm) Draft() PhysicalAuditDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// State returns the submission state.
func (f *PhysicalAuditForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SystemStock is the recorded quantity the count is compared against.
func (f *PhysicalAuditForm) SystemStock() int {
	return f.product.QtyInStock
}

// Update replaces the draft and re-validates.
func (f *PhysicalAuditForm) Update(d PhysicalAuditDraft) Validation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Kind != StatePending {
		f.draft = d
		f.state = State{Kind: StateIdle}
	}
	return validatePhysicalAudit(f.draft)
}

// Validate checks the client-side rules.
func (f *PhysicalAuditForm) Validate() Validation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return validatePhysicalAudit(f.draft)
}

// Variance compares the entered count against system stock; nil until a
// count has been entered.
func (f *PhysicalAuditForm) Variance() *domain.Variance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.variance()
}

func (f *PhysicalAuditForm) variance() *domain.Variance {
	counted, err := strconv.Atoi(f.draft.CountedQty)
	if f.draft.CountedQty == "" || err != nil {
		return nil
	}
	return &domain.Variance{Counted: counted, System: f.product.QtyInStock}
}

// Submit validates and dispatches the count. When the count mismatches
// system stock and confirmed is false, it returns ConfirmationRequiredError
// without touching the network; a matching count never asks for
// confirmation. Success resets the draft.
func (f *PhysicalAuditForm) Submit(ctx context.Context, confirmed bool) error {
	f.mu.Lock()
	if f.state.Kind == StatePending {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	v := validatePhysicalAudit(f.draft)
	if !v.Valid {
		f.mu.Unlock()
		return &ValidationError{Fields: v.Errors}
	}
	variance := f.variance()
	if variance.IsMismatch() && !confirmed {
		f.mu.Unlock()
		return &ConfirmationRequiredError{Variance: *variance}
	}
	remarks := f.draft.Remarks
	if remarks == "" {
		remarks = defaultAuditRemarks
	}
	req := domain.PhysicalAuditRequest{
		ProductID:       f.product.ProductID,
		LocationID:      f.product.LocationID,
		Batch:           f.product.Batch,
		Exp:             domain.ExpiryDateOnly(f.product.Exp),
		CountedQuantity: variance.Counted,
		Remarks:         remarks,
	}
	f.state = State{Kind: StatePending}
	f.mu.Unlock()

	err := f.submit(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = State{Kind: StateFailed, Reason: err.Error()}
		return err
	}
	f.state = State{Kind: StateSucceeded}
	f.draft = PhysicalAuditDraft{}
	return nil
}

func validatePhysicalAudit(d PhysicalAuditDraft) Validation {
	v := Validation{Valid: true}
	counted, err := strconv.Atoi(d.CountedQty)
	switch {
	case d.CountedQty == "":
		v.fail("counted_qty", "Counted quantity is required")
	case err != nil || counted < 0:
		v.fail("counted_qty", "Counted quantity must be zero or more")
	}
	return v
}
