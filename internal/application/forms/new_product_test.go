package forms_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaudit/dashboard/internal/application/forms"
	"github.com/pharmaudit/dashboard/internal/domain"
)

func TestNewProductForm_NameAndMRPRequired(t *testing.T) {
	calls := 0
	f := forms.NewNewProductForm(func(ctx context.Context, req domain.NewProductRequest) (*domain.Product, error) {
		calls++
		return nil, nil
	})

	err := f.Submit(context.Background())
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Product name is required", verr.Fields["product_name"])
	assert.Equal(t, "Valid MRP is required", verr.Fields["mrp"])
	assert.Zero(t, calls, "empty name must block submission before any network call")
}

func TestNewProductForm_MRPMustParseNonNegative(t *testing.T) {
	f := forms.NewNewProductForm(nil)

	v := f.Update(forms.NewProductDraft{ProductName: "Ibuprofen 200mg", MRP: "abc"})
	assert.Equal(t, "Valid MRP is required", v.Errors["mrp"])

	v = f.Update(forms.NewProductDraft{ProductName: "Ibuprofen 200mg", MRP: "-3"})
	assert.Equal(t, "Valid MRP is required", v.Errors["mrp"])

	v = f.Update(forms.NewProductDraft{ProductName: "Ibuprofen 200mg", MRP: "30.50"})
	assert.True(t, v.Valid)

	v = f.Update(forms.NewProductDraft{ProductName: "Ibuprofen 200mg", MRP: "0"})
	assert.True(t, v.Valid, "a zero MRP is unusual but not invalid")
}

func TestNewProductForm_SuccessHoldsStateAndCreatedProduct(t *testing.T) {
	f := forms.NewNewProductForm(func(ctx context.Context, req domain.NewProductRequest) (*domain.Product, error) {
		return &domain.Product{ProductID: 99, ProductName: req.ProductName}, nil
	})
	f.Update(forms.NewProductDraft{ProductName: "  Ibuprofen 200mg ", MRP: "30.50"})

	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, forms.StateSucceeded, f.State().Kind)
	require.NotNil(t, f.Created())
	assert.Equal(t, int64(99), f.Created().ProductID)
	assert.Equal(t, "Ibuprofen 200mg", f.Created().ProductName, "name is trimmed before submission")
	assert.Equal(t, "  Ibuprofen 200mg ", f.Draft().ProductName,
		"the draft survives success so the dialog can show what was created")
}

func TestNewProductForm_FailureKeepsDraftForRetry(t *testing.T) {
	f := forms.NewNewProductForm(func(ctx context.Context, req domain.NewProductRequest) (*domain.Product, error) {
		return nil, errors.New("A product with this name already exists")
	})
	f.Update(forms.NewProductDraft{ProductName: "Paracetamol 500mg", MRP: "32.10"})

	err := f.Submit(context.Background())
	require.Error(t, err)

	st := f.State()
	assert.Equal(t, forms.StateFailed, st.Kind)
	assert.Equal(t, "A product with this name already exists", st.Reason)
	assert.Equal(t, "Paracetamol 500mg", f.Draft().ProductName)
}
