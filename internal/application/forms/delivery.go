package forms

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pharmaudit/dashboard/internal/domain"
)

// DeliveryDraft is the transient state of an open delivery form. Quantity
// stays a string until submission, mirroring the input field: an empty box
// is "no value yet", not zero.
type DeliveryDraft struct {
	Quantity     string `json:"quantity"`
	Batch        string `json:"batch"`
	Expiry       string `json:"expiry"`
	SupplierID   int64  `json:"supplier_id,omitempty"`
	InvoiceNo    string `json:"invoice_no"`
	ReceivedDate string `json:"received_date"`
}

// DeliverySummary is the derived display block shown once a valid quantity
// is entered.
type DeliverySummary struct {
	Quantity       int `json:"quantity"`
	CurrentStock   int `json:"current_stock"`
	ProjectedTotal int `json:"projected_total"`
}

// DeliveryForm records a stock delivery for one product/batch/location.
type DeliveryForm struct {
	mu      sync.Mutex
	product domain.Product
	draft   DeliveryDraft
	state   State
	submit  func(ctx context.Context, req domain.DeliveryRequest) error
}

// NewDeliveryForm opens a delivery form pre-filled from the selected
// product: batch and expiry default to the selected unit, received date to
// today.
func NewDeliveryForm(product domain.Product, submit func(ctx context.Context, req domain.DeliveryRequest) error) *DeliveryForm {
	f := &DeliveryForm{
		product: product,
		state:   State{Kind: StateIdle},
		submit:  submit,
	}
	f.draft = f.defaultDraft()
	return f
}

func (f *DeliveryForm) defaultDraft() DeliveryDraft {
	return DeliveryDraft{
		Batch:        f.product.Batch,
		Expiry:       domain.ExpiryDateOnly(f.product.Exp),
		ReceivedDate: time.Now().Format("2006-01-02"),
	}
}

// Draft returns a copy of the current draft.
func (f *DeliveryForm) Draft() DeliveryDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// State returns the submission state.
func (f *DeliveryForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Update replaces the draft and re-validates. Editing a settled form brings
// it back to idle.
func (f *DeliveryForm) Update(d DeliveryDraft) Validation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Kind != StatePending {
		f.draft = d
		f.state = State{Kind: StateIdle}
	}
	return validateDelivery(f.draft)
}

// Validate checks the client-side rules without touching the draft.
func (f *DeliveryForm) Validate() Validation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return validateDelivery(f.draft)
}

// Summary computes the projected stock total; nil until the quantity is a
// positive number.
func (f *DeliveryForm) Summary() *DeliverySummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	qty, err := strconv.Atoi(f.draft.Quantity)
	if err != nil || qty <= 0 {
		return nil
	}
	return &DeliverySummary{
		Quantity:       qty,
		CurrentStock:   f.product.QtyInStock,
		ProjectedTotal: f.product.QtyInStock + qty,
	}
}

// Submit validates and dispatches the delivery. Only one submission may be
// in flight; failure preserves the draft, success resets quantity, supplier
// and invoice (batch, expiry and date are kept for the next entry).
func (f *DeliveryForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Kind == StatePending {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	v := validateDelivery(f.draft)
	if !v.Valid {
		f.mu.Unlock()
		return &ValidationError{Fields: v.Errors}
	}
	qty, _ := strconv.Atoi(f.draft.Quantity)
	req := domain.DeliveryRequest{
		ProductID:        f.product.ProductID,
		LocationID:       f.product.LocationID,
		Batch:            f.draft.Batch,
		Exp:              f.draft.Expiry,
		QuantityReceived: qty,
		InvoiceNo:        f.draft.InvoiceNo,
		SupplierID:       f.draft.SupplierID,
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
	f.draft.Quantity = ""
	f.draft.SupplierID = 0
	f.draft.InvoiceNo = ""
	return nil
}

func validateDelivery(d DeliveryDraft) Validation {
	v := Validation{Valid: true}
	qty, err := strconv.Atoi(d.Quantity)
	switch {
	case d.Quantity == "":
		v.fail("quantity", "Quantity is required")
	case err != nil || qty <= 0:
		v.fail("quantity", "Quantity must be greater than 0")
	}
	if d.InvoiceNo == "" {
		v.fail("invoice_no", "Invoice number is required")
	}
	if d.Batch == "" {
		v.fail("batch", "Batch number is required")
	}
	if d.Expiry == "" {
		v.fail("expiry", "Expiry date is required")
	}
	return v
}
