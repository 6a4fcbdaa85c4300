package forms

import (
	"context"
	"strconv"
	"sync"

	"github.com/pharmaudit/dashboard/internal/domain"
)

// StockMovementDraft is the transient state of an open transfer form. An
// unselected location is zero.
type StockMovementDraft struct {
	FromLocationID int64  `json:"from_location_id"`
	ToLocationID   int64  `json:"to_location_id"`
	Batch          string `json:"batch"`
	Expiry         string `json:"expiry"`
	Quantity       string `json:"quantity"`
	Remarks        string `json:"remarks"`
}

// MovementSummary is the confirmation block shown once the draft is valid.
type MovementSummary struct {
	Quantity     int    `json:"quantity"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
}

// StockMovementForm transfers stock of one product between two locations.
type StockMovementForm struct {
	mu        sync.Mutex
	product   domain.Product
	locations []domain.Location
	draft     StockMovementDraft
	state     State
	submit    func(ctx context.Context, req domain.StockMovementRequest) error
}

// NewStockMovementForm opens a transfer form. locations is the reference
// list used for summary display and selection checks; batch and expiry
// default to the selected unit.
func NewStockMovementForm(product domain.Product, locations []domain.Location, submit func(ctx context.Context, req domain.StockMovementRequest) error) *StockMovementForm {
	f := &StockMovementForm{
		product:   product,
		locations: locations,
		state:     State{Kind: StateIdle},
		submit:    submit,
	}
	f.draft = f.defaultDraft()
	return f
}

func (f *StockMovementForm) defaultDraft() StockMovementDraft {
	return StockMovementDraft{
		Batch:  f.product.Batch,
		Expiry: domain.ExpiryDateOnly(f.product.Exp),
	}
}

// Draft returns a copy of the current draft.
func (f *StockMovementForm) Draft() StockMovementDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// State returns the submission state.
func (f *StockMovementForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Locations returns the reference list the form was opened with.
func (f *StockMovementForm) Locations() []domain.Location {
	return f.locations
}

// Update replaces the draft and re-validates.
func (f *StockMovementForm) Update(d StockMovementDraft) Validation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Kind != StatePending {
		f.draft = d
		f.state = State{Kind: StateIdle}
	}
	return f.validate()
}

// Validate checks the client-side rules: both locations selected and
// distinct, batch and expiry present, quantity positive.
func (f *StockMovementForm) Validate() Validation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validate()
}

// Summary describes the transfer once the draft is valid; nil otherwise.
func (f *StockMovementForm) Summary() *MovementSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v := f.validate(); !v.Valid {
		return nil
	}
	qty, _ := strconv.Atoi(f.draft.Quantity)
	return &MovementSummary{
		Quantity:     qty,
		FromLocation: f.locationName(f.draft.FromLocationID),
		ToLocation:   f.locationName(f.draft.ToLocationID),
	}
}

func (f *StockMovementForm) locationName(id int64) string {
	for _, l := range f.locations {
		if l.LocationID == id {
			return l.LocationName
		}
	}
	return ""
}

// Submit validates and dispatches the transfer. Success clears locations,
// quantity and remarks; batch and expiry stay for the next entry.
func (f *StockMovementForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Kind == StatePending {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if v := f.validate(); !v.Valid {
		f.mu.Unlock()
		return &ValidationError{Fields: v.Errors}
	}
	qty, _ := strconv.Atoi(f.draft.Quantity)
	req := domain.StockMovementRequest{
		ProductID:      f.product.ProductID,
		FromLocationID: f.draft.FromLocationID,
		ToLocationID:   f.draft.ToLocationID,
		Batch:          f.draft.Batch,
		Exp:            f.draft.Expiry,
		Quantity:       qty,
		Remarks:        f.draft.Remarks,
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
	f.draft.FromLocationID = 0
	f.draft.ToLocationID = 0
	f.draft.Quantity = ""
	f.draft.Remarks = ""
	return nil
}

func (f *StockMovementForm) validate() Validation {
	v := Validation{Valid: true}
	d := f.draft
	if d.FromLocationID <= 0 {
		v.fail("from_location_id", "Source location is required")
	}
	if d.ToLocationID <= 0 {
		v.fail("to_location_id", "Destination location is required")
	}
	if d.FromLocationID > 0 && d.FromLocationID == d.ToLocationID {
		v.fail("to_location_id", "Source and destination locations must be different")
	}
	qty, err := strconv.Atoi(d.Quantity)
	switch {
	case d.Quantity == "":
		v.fail("quantity", "Quantity is required")
	case err != nil || qty <= 0:
		v.fail("quantity", "Quantity must be greater than 0")
	}
	if d.Batch == "" {
		v.fail("batch", "Batch number is required")
	}
	if d.Expiry == "" {
		v.fail("expiry", "Expiry date is required")
	}
	return v
}
