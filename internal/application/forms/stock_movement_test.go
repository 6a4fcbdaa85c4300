package forms_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaudit/dashboard/internal/application/forms"
	"github.com/pharmaudit/dashboard/internal/domain"
)

var testLocations = []domain.Location{
	{LocationID: 1, LocationName: "Main Store"},
	{LocationID: 2, LocationName: "Cold Room"},
}

func validMovementDraft() forms.StockMovementDraft {
	return forms.StockMovementDraft{
		FromLocationID: 1,
		ToLocationID:   2,
		Batch:          "B42",
		Expiry:         "2026-05-01",
		Quantity:       "10",
	}
}

func TestStockMovementForm_SameLocationBlocksSubmission(t *testing.T) {
	f := forms.NewStockMovementForm(testProduct, testLocations, nil)

	d := validMovementDraft()
	d.ToLocationID = d.FromLocationID
	v := f.Update(d)

	assert.False(t, v.Valid)
	assert.Equal(t, "Source and destination locations must be different", v.Errors["to_location_id"])
}

func TestStockMovementForm_QuantityAndRequiredFields(t *testing.T) {
	f := forms.NewStockMovementForm(testProduct, testLocations, nil)

	d := validMovementDraft()
	d.Quantity = "0"
	v := f.Update(d)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Errors, "quantity")

	d = validMovementDraft()
	d.Batch = ""
	v = f.Update(d)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Errors, "batch")

	d = validMovementDraft()
	d.FromLocationID = 0
	v = f.Update(d)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Errors, "from_location_id")

	v = f.Update(validMovementDraft())
	assert.True(t, v.Valid)
}

func TestStockMovementForm_SummaryNamesLocations(t *testing.T) {
	f := forms.NewStockMovementForm(testProduct, testLocations, nil)
	assert.Nil(t, f.Summary(), "no summary while the draft is invalid")

	f.Update(validMovementDraft())
	s := f.Summary()
	require.NotNil(t, s)
	assert.Equal(t, 10, s.Quantity)
	assert.Equal(t, "Main Store", s.FromLocation)
	assert.Equal(t, "Cold Room", s.ToLocation)
}

func TestStockMovementForm_SubmitBuildsRequestAndResets(t *testing.T) {
	var got domain.StockMovementRequest
	f := forms.NewStockMovementForm(testProduct, testLocations, func(ctx context.Context, req domain.StockMovementRequest) error {
		got = req
		return nil
	})
	d := validMovementDraft()
	d.Remarks = "rebalancing cold chain"
	f.Update(d)

	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, int64(7), got.ProductID)
	assert.Equal(t, int64(1), got.FromLocationID)
	assert.Equal(t, int64(2), got.ToLocationID)
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, "rebalancing cold chain", got.Remarks)

	after := f.Draft()
	assert.Zero(t, after.FromLocationID)
	assert.Zero(t, after.ToLocationID)
	assert.Empty(t, after.Quantity)
	assert.Equal(t, "B42", after.Batch, "batch stays for the next transfer")
}

func TestStockMovementForm_InvalidSubmitIsLocal(t *testing.T) {
	calls := 0
	f := forms.NewStockMovementForm(testProduct, testLocations, func(ctx context.Context, req domain.StockMovementRequest) error {
		calls++
		return nil
	})

	err := f.Submit(context.Background())
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, calls)
}
