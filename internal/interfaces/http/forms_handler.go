package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pharmaudit/dashboard/internal/application/dto"
	"github.com/pharmaudit/dashboard/internal/application/forms"
	"github.com/pharmaudit/dashboard/internal/application/usecase"
)

// FormsHandler owns the form session endpoints. A session is opened against
// a product (except new-product), updated as the user types, submitted, and
// closed; closing discards the draft.
type FormsHandler struct {
	registry     *forms.Registry
	product      *usecase.ProductDataUseCase
	create       *usecase.CreateProductUseCase
	reference    *usecase.ReferenceDataUseCase
	successDelay time.Duration
}

// NewFormsHandler builds the handler. successDelay is how long a completed
// new-product session stays readable before the registry discards it.
func NewFormsHandler(registry *forms.Registry, product *usecase.ProductDataUseCase, create *usecase.CreateProductUseCase, reference *usecase.ReferenceDataUseCase, successDelay time.Duration) *FormsHandler {
	return &FormsHandler{
		registry:     registry,
		product:      product,
		create:       create,
		reference:    reference,
		successDelay: successDelay,
	}
}

// Open godoc
// @Summary      Open a form session
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        kind  path  string               true  "delivery | physical-audit | stock-movement | new-product"
// @Param        body  body  dto.OpenFormRequest  false "Product the dialog was opened against"
// @Success      201  {object}  dto.FormResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/forms/{kind} [post]
func (h *FormsHandler) Open(c *fiber.Ctx) error {
	kind := c.Params("kind")

	var form forms.Form
	switch kind {
	case dto.FormKindNewProduct:
		form = forms.NewNewProductForm(h.create.Create)
	case dto.FormKindDelivery, dto.FormKindPhysicalAudit, dto.FormKindStockMovement:
		var in dto.OpenFormRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "request body must be valid JSON"})
		}
		if in.Product.ProductID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product is required to open this form"})
		}
		switch kind {
		case dto.FormKindDelivery:
			form = forms.NewDeliveryForm(in.Product, h.product.RecordDelivery)
		case dto.FormKindPhysicalAudit:
			form = forms.NewPhysicalAuditForm(in.Product, h.product.RecordPhysicalAudit)
		case dto.FormKindStockMovement:
			locations, err := h.reference.Locations(c.UserContext())
			if err != nil {
				return upstreamError(c, err)
			}
			form = forms.NewStockMovementForm(in.Product, locations, h.product.MoveStock)
		}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_KIND", Message: "unknown form kind"})
	}

	id := h.registry.Put(kind, form)
	return c.Status(fiber.StatusCreated).JSON(formResponse(id, kind, form))
}

// Get godoc
// @Summary      Read a form session
// @Tags         forms
// @Produce      json
// @Param        kind  path  string  true  "Form kind"
// @Param        id    path  string  true  "Session id"
// @Success      200  {object}  dto.FormResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/forms/{kind}/{id} [get]
func (h *FormsHandler) Get(c *fiber.Ctx) error {
	kind, id, form, errResp := h.session(c)
	if errResp != nil {
		return errResp
	}
	return c.JSON(formResponse(id, kind, form))
}

// Update godoc
// @Summary      Replace a form draft
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "Form kind"
// @Param        id    path  string  true  "Session id"
// @Success      200  {object}  dto.FormResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/forms/{kind}/{id} [put]
func (h *FormsHandler) Update(c *fiber.Ctx) error {
	kind, id, form, errResp := h.session(c)
	if errResp != nil {
		return errResp
	}

	switch f := form.(type) {
	case *forms.DeliveryForm:
		var d forms.DeliveryDraft
		if err := c.BodyParser(&d); err != nil {
			return invalidBody(c)
		}
		f.Update(d)
	case *forms.PhysicalAuditForm:
		var d forms.PhysicalAuditDraft
		if err := c.BodyParser(&d); err != nil {
			return invalidBody(c)
		}
		f.Update(d)
	case *forms.StockMovementForm:
		var d forms.StockMovementDraft
		if err := c.BodyParser(&d); err != nil {
			return invalidBody(c)
		}
		f.Update(d)
	case *forms.NewProductForm:
		var d forms.NewProductDraft
		if err := c.BodyParser(&d); err != nil {
			return invalidBody(c)
		}
		f.Update(d)
	}
	return c.JSON(formResponse(id, kind, form))
}

// Submit godoc
// @Summary      Submit a form
// @Description  Dispatches the mutation. 409 with the variance payload when a
// @Description  physical count needs explicit confirmation, 422 when the
// @Description  draft fails validation, 502 when the inventory service
// @Description  rejects it (draft preserved for retry).
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        kind  path  string                 true   "Form kind"
// @Param        id    path  string                 true   "Session id"
// @Param        body  body  dto.SubmitFormRequest  false  "confirmed acknowledges the variance warning"
// @Success      200  {object}  dto.FormResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.FormResponse
// @Failure      422  {object}  dto.FormResponse
// @Failure      502  {object}  dto.FormResponse
// @Router       /api/dashboard/forms/{kind}/{id}/submit [post]
func (h *FormsHandler) Submit(c *fiber.Ctx) error {
	kind, id, form, errResp := h.session(c)
	if errResp != nil {
		return errResp
	}

	var in dto.SubmitFormRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}

	var err error
	switch f := form.(type) {
	case *forms.DeliveryForm:
		err = f.Submit(c.UserContext())
	case *forms.PhysicalAuditForm:
		err = f.Submit(c.UserContext(), in.Confirmed)
	case *forms.StockMovementForm:
		err = f.Submit(c.UserContext())
	case *forms.NewProductForm:
		err = f.Submit(c.UserContext())
		if err == nil {
			h.registry.CloseAfter(id, h.successDelay)
		}
	}

	switch {
	case err == nil:
		return c.JSON(formResponse(id, kind, form))
	case errors.Is(err, forms.ErrSubmissionInFlight):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_FLIGHT", Message: err.Error()})
	default:
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(formResponse(id, kind, form))
		}
		var cerr *forms.ConfirmationRequiredError
		if errors.As(err, &cerr) {
			return c.Status(fiber.StatusConflict).JSON(formResponse(id, kind, form))
		}
		return c.Status(fiber.StatusBadGateway).JSON(formResponse(id, kind, form))
	}
}

// Close godoc
// @Summary      Close a form session and discard its draft
// @Tags         forms
// @Param        kind  path  string  true  "Form kind"
// @Param        id    path  string  true  "Session id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/forms/{kind}/{id} [delete]
func (h *FormsHandler) Close(c *fiber.Ctx) error {
	_, id, _, errResp := h.session(c)
	if errResp != nil {
		return errResp
	}
	h.registry.Close(id)
	return c.SendStatus(fiber.StatusNoContent)
}

// session resolves :kind/:id to a live form.
func (h *FormsHandler) session(c *fiber.Ctx) (string, uuid.UUID, forms.Form, error) {
	kind := c.Params("kind")
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", uuid.Nil, nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "form id must be a UUID"})
	}
	form, ok := h.registry.Get(kind, id)
	if !ok {
		return "", uuid.Nil, nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no open form with this id"})
	}
	return kind, id, form, nil
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "request body must be valid JSON"})
}

// formResponse projects a form session into the wire shape, per kind.
func formResponse(id uuid.UUID, kind string, f forms.Form) dto.FormResponse {
	state := f.State()
	resp := dto.FormResponse{
		FormID: id.String(),
		Kind:   kind,
		State:  string(state.Kind),
		Reason: state.Reason,
	}

	switch form := f.(type) {
	case *forms.DeliveryForm:
		resp.Draft = form.Draft()
		resp.Validation = validationView(form.Validate())
		if s := form.Summary(); s != nil {
			resp.Summary = s
		}
	case *forms.PhysicalAuditForm:
		resp.Draft = form.Draft()
		resp.Validation = validationView(form.Validate())
		if v := form.Variance(); v != nil {
			resp.Variance = &dto.VarianceView{
				Counted: v.Counted,
				System:  v.System,
				Delta:   v.Delta(),
				Label:   v.Label(),
			}
		}
	case *forms.StockMovementForm:
		resp.Draft = form.Draft()
		resp.Validation = validationView(form.Validate())
		resp.Locations = form.Locations()
		if s := form.Summary(); s != nil {
			resp.Summary = s
		}
	case *forms.NewProductForm:
		resp.Draft = form.Draft()
		resp.Validation = validationView(form.Validate())
		resp.Created = form.Created()
	}
	return resp
}

func validationView(v forms.Validation) dto.ValidationView {
	return dto.ValidationView{Valid: v.Valid, Errors: v.Errors}
}
