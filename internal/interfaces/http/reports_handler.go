package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/reports"
)

// ReportsHandler reportes de pérdidas y ganancias y conciliación (protegido,
// solo admin).
type ReportsHandler struct {
	uc *reports.UseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.UseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// ProfitLoss godoc
// @Summary      Estado de pérdidas y ganancias del período
// @Tags         reports
// @Produce      json
// @Param        from  query  string  true  "RFC 3339 o YYYY-MM-DD"
// @Param        to    query  string  true  "RFC 3339 o YYYY-MM-DD"
// @Success      200  {object}  dto.ProfitLossResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/profit-loss [get]
func (h *ReportsHandler) ProfitLoss(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	from, ok := queryTime(c, "from")
	if !ok || from == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from requerido"})
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	end := time.Now()
	if to != nil {
		end = *to
	}
	out, err := h.uc.Summary(c.Context(), companyID, *from, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReconcileSupplier godoc
// @Summary      Conciliación de deuda de un proveedor
// @Tags         reports
// @Produce      json
// @Param        id  path  string  true  "id del proveedor"
// @Success      200  {object}  dto.SupplierReconciliationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/suppliers/{id}/reconciliation [get]
func (h *ReportsHandler) ReconcileSupplier(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ReconcileSupplier(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
