package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/application/usecase"
)

// PromotionHandler maneja el CRUD de promociones (protegido, admin/manager).
type PromotionHandler struct {
	uc *usecase.PromotionUseCase
}

// NewPromotionHandler construye el handler.
func NewPromotionHandler(uc *usecase.PromotionUseCase) *PromotionHandler {
	return &PromotionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear promoción
// @Tags         promotions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PromotionRequest  true  "name, discount_type (percent|amount), value, starts_at, ends_at"
// @Success      201   {object}  dto.PromotionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/promotions [post]
func (h *PromotionHandler) Create(c *fiber.Ctx) error {
	var in dto.PromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	promotion, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(promotion)
}

// GetByID obtiene una promoción.
func (h *PromotionHandler) GetByID(c *fiber.Ctx) error {
	promotion, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(promotion)
}

// Update actualiza una promoción.
func (h *PromotionHandler) Update(c *fiber.Ctx) error {
	var in dto.PromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	promotion, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(promotion)
}

// List lista promociones.
func (h *PromotionHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(list)
}

// Delete elimina una promoción.
func (h *PromotionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
