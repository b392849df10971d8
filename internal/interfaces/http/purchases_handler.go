package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/purchases"
)

// PurchasesHandler maneja las peticiones de compras a proveedor (protegido).
type PurchasesHandler struct {
	uc *purchases.UseCase
}

// NewPurchasesHandler construye el handler.
func NewPurchasesHandler(uc *purchases.UseCase) *PurchasesHandler {
	return &PurchasesHandler{uc: uc}
}

// Intake godoc
// @Summary      Registrar compra (entrada de stock y deuda a proveedor)
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IntakeRequest  true  "proveedor, items, anticipo"
// @Success      201   {object}  dto.PurchaseInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "anticipo excede el total"
// @Security     BearerAuth
// @Router       /api/purchases [post]
func (h *PurchasesHandler) Intake(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.IntakeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.Intake(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// Settle godoc
// @Summary      Abonar a una factura de compra
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "id de la factura"
// @Param        body  body  dto.SettleRequest  true  "monto del abono"
// @Success      200   {object}  dto.PurchaseInvoiceResponse
// @Failure      422   {object}  dto.ErrorResponse  "abono excede el saldo"
// @Security     BearerAuth
// @Router       /api/purchases/{id}/payments [post]
func (h *PurchasesHandler) Settle(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.SettleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.Settle(c.Context(), companyID, c.Params("id"), in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// GetByID godoc
// @Summary      Detalle de factura de compra
// @Tags         purchases
// @Produce      json
// @Param        id  path  string  true  "id de la factura"
// @Success      200  {object}  dto.PurchaseInvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/purchases/{id} [get]
func (h *PurchasesHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	inv, err := h.uc.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// ListBySupplier godoc
// @Summary      Facturas de compra de un proveedor
// @Tags         purchases
// @Produce      json
// @Param        id      path   string  true   "id del proveedor"
// @Param        limit   query  int     false  "máximo de filas (default 50)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.PurchaseInvoiceResponse
// @Security     BearerAuth
// @Router       /api/suppliers/{id}/purchases [get]
func (h *PurchasesHandler) ListBySupplier(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ListBySupplier(c.Context(), companyID, c.Params("id"),
		queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
