package dto

import (
	"github.com/pharmaudit/dashboard/internal/domain"
)

// Form session kinds accepted by the forms endpoints.
const (
	FormKindDelivery      = "delivery"
	FormKindPhysicalAudit = "physical-audit"
	FormKindStockMovement = "stock-movement"
	FormKindNewProduct    = "new-product"
)

// OpenFormRequest opens a form session. Product-scoped forms (delivery,
// physical audit, stock movement) carry the product the dialog was opened
// against; new-product opens without one.
type OpenFormRequest struct {
	Product domain.Product `json:"product"`
}

// SubmitFormRequest is the optional submit body. Confirmed acknowledges the
// variance warning on physical audits.
type SubmitFormRequest struct {
	Confirmed bool `json:"confirmed"`
}

// ValidationView reports the client-side validation outcome for a draft.
type ValidationView struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// VarianceView is the counted-vs-system summary shown by the physical audit
// confirmation dialog.
type VarianceView struct {
	Counted int    `json:"counted"`
	System  int    `json:"system"`
	Delta   int    `json:"delta"`
	Label   string `json:"label"`
}

// FormResponse is the state of a form session as returned by every forms
// endpoint. Draft and Summary are per-kind shapes.
type FormResponse struct {
	FormID     string            `json:"form_id"`
	Kind       string            `json:"kind"`
	State      string            `json:"state"`
	Reason     string            `json:"reason,omitempty"`
	Draft      any               `json:"draft"`
	Validation ValidationView    `json:"validation"`
	Summary    any               `json:"summary,omitempty"`
	Variance   *VarianceView     `json:"variance,omitempty"`
	Locations  []domain.Location `json:"locations,omitempty"`
	Created    *domain.Product   `json:"created,omitempty"`
}
