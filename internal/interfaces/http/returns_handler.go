package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/returns"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// ReturnsHandler maneja las peticiones de devoluciones (protegido).
type ReturnsHandler struct {
	uc *returns.UseCase
}

// NewReturnsHandler construye el handler.
func NewReturnsHandler(uc *returns.UseCase) *ReturnsHandler {
	return &ReturnsHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar solicitud de devolución
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "tipo, producto, cantidad"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      422   {object}  dto.ErrorResponse  "cantidad excede lo vendido"
// @Security     BearerAuth
// @Router       /api/returns [post]
func (h *ReturnsHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ret, err := h.uc.CreateReturn(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ret)
}

// Approve godoc
// @Summary      Aprobar devolución (reintegra stock; reintento inocuo)
// @Tags         returns
// @Produce      json
// @Param        id  path  string  true  "id de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      409  {object}  dto.ErrorResponse  "ya rechazada"
// @Security     BearerAuth
// @Router       /api/returns/{id}/approve [post]
func (h *ReturnsHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, entity.ReturnApproved)
}

// Reject godoc
// @Summary      Rechazar devolución (terminal, sin efecto en stock)
// @Tags         returns
// @Produce      json
// @Param        id  path  string  true  "id de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      409  {object}  dto.ErrorResponse  "ya decidida"
// @Security     BearerAuth
// @Router       /api/returns/{id}/reject [post]
func (h *ReturnsHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, entity.ReturnRejected)
}

func (h *ReturnsHandler) transition(c *fiber.Ctx, status entity.ReturnStatus) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	ret, err := h.uc.Transition(c.Context(), companyID, userID, c.Params("id"), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ret)
}

// GetByID godoc
// @Summary      Detalle de devolución
// @Tags         returns
// @Produce      json
// @Param        id  path  string  true  "id de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/returns/{id} [get]
func (h *ReturnsHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	ret, err := h.uc.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ret)
}

// List godoc
// @Summary      Listar devoluciones
// @Tags         returns
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected"
// @Param        limit   query  int     false  "máximo de filas (default 50)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.ReturnResponse
// @Security     BearerAuth
// @Router       /api/returns [get]
func (h *ReturnsHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.Context(), companyID, entity.ReturnStatus(c.Query("status")),
		queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
