package forms

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pharmaudit/dashboard/internal/domain"
)

// NewProductDraft is the transient state of the add-product dialog. Only
// ProductName and MRP are mandatory.
type NewProductDraft struct {
	HSNCode      string `json:"hsn_code"`
	Manufacturer string `json:"manufacturer"`
	ProductName  string `json:"product_name"`
	PackOf       string `json:"pack_of"`
	MRP          string `json:"mrp"`
	UnitPrice    string `json:"unit_price"`
	Size         string `json:"size"`
	Drug         string `json:"drug"`
}

// NewProductForm registers a product in the catalogue. On success the
// session stays in Succeeded for a short display window (the dialog shows
// "Product Created!") before the registry closes it.
type NewProductForm struct {
	mu      sync.Mutex
	draft   NewProductDraft
	state   State
	created *domain.Product
	submit  func(ctx context.Context, req domain.NewProductRequest) (*domain.Product, error)
}

// NewNewProductForm opens an empty add-product dialog.
func NewNewProductForm(submit func(ctx context.Context, req domain.NewProductRequest) (*domain.Product, error)) *NewProductForm {
	return &NewProductForm{
		state:  State{Kind: StateIdle},
		submit: submit,
	}
}

// Draft returns a copy of the current draft.
func (f *NewProductForm) Draft() NewProductDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// State returns the submission state.
func (f *NewProductForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Created returns the product reported back by the inventory service, once
// the submission has succeeded.
func (f *NewProductForm) Created() *domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

// Update replaces the draft and re-validates. Editing clears a previous
// failure.
func (f *NewProductForm) Update(d NewProductDraft) Validation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Kind != StatePending {
		f.draft = d
		f.state = State{Kind: StateIdle}
	}
	return validateNewProduct(f.draft)
}

// Validate checks the client-side rules.
func (f *NewProductForm) Validate() Validation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return validateNewProduct(f.draft)
}

// Submit validates and dispatches the creation. The draft is preserved on
// failure and also through Succeeded, so the success view can name the
// product just created.
func (f *NewProductForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Kind == StatePending {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	v := validateNewProduct(f.draft)
	if !v.Valid {
		f.mu.Unlock()
		return &ValidationError{Fields: v.Errors}
	}
	req := domain.NewProductRequest{
		HSNCode:      f.draft.HSNCode,
		Manufacturer: f.draft.Manufacturer,
		ProductName:  strings.TrimSpace(f.draft.ProductName),
		PackOf:       f.draft.PackOf,
		MRP:          strings.TrimSpace(f.draft.MRP),
		UnitPrice:    f.draft.UnitPrice,
		Size:         f.draft.Size,
		Drug:         f.draft.Drug,
	}
	f.state = State{Kind: StatePending}
	f.mu.Unlock()

	created, err := f.submit(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = State{Kind: StateFailed, Reason: err.Error()}
		return err
	}
	f.state = State{Kind: StateSucceeded}
	f.created = created
	return nil
}

func validateNewProduct(d NewProductDraft) Validation {
	v := Validation{Valid: true}
	if strings.TrimSpace(d.ProductName) == "" {
		v.fail("product_name", "Product name is required")
	}
	mrp := strings.TrimSpace(d.MRP)
	if mrp == "" {
		v.fail("mrp", "Valid MRP is required")
	} else if parsed, err := decimal.NewFromString(mrp); err != nil || parsed.IsNegative() {
		v.fail("mrp", "Valid MRP is required")
	}
	return v
}
