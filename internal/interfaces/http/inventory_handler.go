package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/application/ledger"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// InventoryHandler maneja movimientos de stock y consultas de saldo (protegido).
type InventoryHandler struct {
	register *ledger.RegisterMovementUseCase
	query    *ledger.StockQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *ledger.RegisterMovementUseCase, query *ledger.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  in y out llevan cantidad positiva; adjustment lleva cantidad con signo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (in|out|adjustment), quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.register.RegisterMovement(c.Context(), ledger.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:            movement.ID,
		ProductID:     movement.ProductID,
		Type:          movement.Type,
		Quantity:      movement.Quantity,
		PreviousStock: movement.PreviousStock,
		NewStock:      movement.NewStock,
		Reference:     movement.Reference,
		Notes:         movement.Notes,
		CreatedBy:     movement.CreatedBy,
		CreatedAt:     movement.CreatedAt,
	})
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        type    query  string  false  "in | out | adjustment"
// @Param        from    query  string  false  "RFC3339"
// @Param        to      query  string  false  "RFC3339"
// @Param        limit   query  int     false  "default 50"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {object}  dto.MovementHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	filter := repository.MovementFilter{Type: c.Query("type")}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}
	history, err := h.query.History(c.Context(), c.Params("id"), filter, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(history)
}

// Stock godoc
// @Summary      Saldo actual de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	productID := c.Params("id")
	balance, err := h.query.CurrentBalance(c.Context(), productID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, StockQuantity: balance})
}
