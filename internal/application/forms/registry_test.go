package forms_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaudit/dashboard/internal/application/forms"
)

func TestRegistry_PutGetClose(t *testing.T) {
	r := forms.NewRegistry(time.Minute)
	defer r.Stop()

	f := forms.NewDeliveryForm(testProduct, nil)
	id := r.Put("delivery", f)

	got, ok := r.Get("delivery", id)
	require.True(t, ok)
	assert.Same(t, forms.Form(f), got)

	r.Close(id)
	_, ok = r.Get("delivery", id)
	assert.False(t, ok)
	assert.Zero(t, r.Len())
}

func TestRegistry_KindMismatchIsNotFound(t *testing.T) {
	r := forms.NewRegistry(time.Minute)
	defer r.Stop()

	id := r.Put("delivery", forms.NewDeliveryForm(testProduct, nil))

	_, ok := r.Get("physical-audit", id)
	assert.False(t, ok, "a session id only resolves under the kind it was opened as")

	_, ok = r.Get("delivery", uuid.New())
	assert.False(t, ok)
}

func TestRegistry_CloseAfterDiscardsSession(t *testing.T) {
	r := forms.NewRegistry(time.Minute)
	defer r.Stop()

	id := r.Put("new-product", forms.NewNewProductForm(nil))
	r.CloseAfter(id, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := r.Get("new-product", id)
		return !ok
	}, time.Second, 5*time.Millisecond)
}

// Closing without submitting discards the draft: a reopened form starts from
// product defaults, not from whatever was typed previously.
func TestRegistry_ReopenStartsFromDefaults(t *testing.T) {
	r := forms.NewRegistry(time.Minute)
	defer r.Stop()

	first := forms.NewDeliveryForm(testProduct, nil)
	first.Update(forms.DeliveryDraft{
		Quantity:  "50",
		Batch:     "OVERRIDDEN",
		Expiry:    "2030-01-01",
		InvoiceNo: "INV-123",
	})
	id := r.Put("delivery", first)
	r.Close(id)

	reopened := forms.NewDeliveryForm(testProduct, nil)
	r.Put("delivery", reopened)

	d := reopened.Draft()
	assert.Empty(t, d.Quantity)
	assert.Empty(t, d.InvoiceNo)
	assert.Equal(t, testProduct.Batch, d.Batch)
}
