package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pharmaudit/dashboard/internal/application/dto"
	"github.com/pharmaudit/dashboard/internal/application/usecase"
	"github.com/pharmaudit/dashboard/internal/application/view"
	"github.com/pharmaudit/dashboard/internal/domain"
)

// DashboardHandler serves the read side of the dashboard: search, the
// per-product tabs and the reference lookups.
type DashboardHandler struct {
	search    *usecase.SearchUseCase
	product   *usecase.ProductDataUseCase
	reference *usecase.ReferenceDataUseCase
	now       func() time.Time
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(search *usecase.SearchUseCase, product *usecase.ProductDataUseCase, reference *usecase.ReferenceDataUseCase) *DashboardHandler {
	return &DashboardHandler{search: search, product: product, reference: reference, now: time.Now}
}

// Search godoc
// @Summary      Search products by name or drug
// @Tags         dashboard
// @Produce      json
// @Param        q               query  string  true   "Search text (minimum 2 characters)"
// @Param        selected_id     query  int     false  "Currently selected product id"
// @Param        selected_batch  query  string  false  "Currently selected batch"
// @Success      200  {object}  view.SearchView
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/search [get]
func (h *DashboardHandler) Search(c *fiber.Ctx) error {
	q, ok := c.Queries()["q"]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_QUERY", Message: "query parameter q is required"})
	}
	products, err := h.search.Search(c.UserContext(), q)
	if err != nil {
		return upstreamError(c, err)
	}
	var selected *domain.Product
	if id := int64(c.QueryInt("selected_id", 0)); id > 0 {
		selected = &domain.Product{ProductID: id, Batch: c.Query("selected_batch")}
	}
	return c.JSON(view.SearchResults(q, products, selected))
}

// Overview godoc
// @Summary      Product overview tab
// @Tags         dashboard
// @Produce      json
// @Param        id     path   int     true  "Product id"
// @Param        batch  query  string  true  "Selected batch"
// @Success      200  {object}  view.OverviewView
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/product/{id}/overview [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	product, errResp := h.selectedProduct(c)
	if errResp != nil {
		return errResp
	}
	stock, err := h.product.Stock(c.UserContext(), product.ProductID)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(view.Overview(*product, stock, h.now()))
}

// Timeline godoc
// @Summary      Product audit timeline tab
// @Tags         dashboard
// @Produce      json
// @Param        id  path  int  true  "Product id"
// @Success      200  {object}  view.TimelineView
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/product/{id}/timeline [get]
func (h *DashboardHandler) Timeline(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "product id must be a positive integer"})
	}
	audits, err := h.product.Audits(c.UserContext(), int64(id))
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(view.Timeline(audits))
}

// Sales godoc
// @Summary      Product monthly sales summary tab
// @Tags         dashboard
// @Produce      json
// @Param        id  path  int  true  "Product id"
// @Success      200  {object}  view.SalesView
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/product/{id}/sales [get]
func (h *DashboardHandler) Sales(c *fiber.Ctx) error {
	product, errResp := h.selectedProduct(c)
	if errResp != nil {
		return errResp
	}
	sales, err := h.product.Sales(c.UserContext(), product.ProductID)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(view.SalesSummary(sales, product.ProductName))
}

// Suppliers godoc
// @Summary      Supplier reference list
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   domain.Supplier
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/reference/suppliers [get]
func (h *DashboardHandler) Suppliers(c *fiber.Ctx) error {
	suppliers, err := h.reference.Suppliers(c.UserContext())
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(suppliers)
}

// Locations godoc
// @Summary      Location reference list
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   domain.Location
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/reference/locations [get]
func (h *DashboardHandler) Locations(c *fiber.Ctx) error {
	locations, err := h.reference.Locations(c.UserContext())
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(locations)
}

// selectedProduct resolves the product a tab was opened against from the
// current search results, matching on (id, batch) since a product id appears
// once per batch.
func (h *DashboardHandler) selectedProduct(c *fiber.Ctx) (*domain.Product, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "product id must be a positive integer"})
	}
	batch := c.Query("batch")
	_, current := h.search.Current()
	for i := range current {
		if current[i].ProductID == int64(id) && (batch == "" || current[i].Batch == batch) {
			return &current[i], nil
		}
	}
	return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product is not in the current search results"})
}

// upstreamError maps inventory service failures onto the error body. The
// remote service failing is never fatal here; every failure stays local to
// its request.
func upstreamError(c *fiber.Ctx, err error) error {
	code := "UPSTREAM"
	if !errors.Is(err, domain.ErrUpstream) {
		code = "INTERNAL"
	}
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
