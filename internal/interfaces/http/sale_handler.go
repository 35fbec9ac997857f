package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/application/sales"
)

// SaleHandler maneja ventas y reportes de ventas (protegido).
type SaleHandler struct {
	post  *sales.PostSaleUseCase
	query *sales.SaleQueryUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(post *sales.PostSaleUseCase, query *sales.SaleQueryUseCase) *SaleHandler {
	return &SaleHandler{post: post, query: query}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Atómica: venta, movimientos de stock y delta de caja en una transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostSaleRequest  true  "items, payment_method, caisse_session_id para efectivo"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.PostSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.post.PostSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.query.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(sale)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "RFC3339"
// @Param        to      query  string  false  "RFC3339"
// @Param        limit   query  int     false  "default 50"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		to = &t
	}
	list, err := h.query.List(c.Context(), from, to, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(list)
}

// ListBySession godoc
// @Summary      Ventas de una sesión de caja
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la sesión"
// @Param        limit   query  int     false  "default 50"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/caisse/sessions/{id}/sales [get]
func (h *SaleHandler) ListBySession(c *fiber.Ctx) error {
	list, err := h.query.ListBySession(c.Context(), c.Params("id"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(list)
}

// DailySummary godoc
// @Summary      Resumen de ventas del día por método de pago
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD, default hoy"
// @Success      200  {object}  dto.DailySummaryResponse
// @Router       /api/sales/daily-summary [get]
func (h *SaleHandler) DailySummary(c *fiber.Ctx) error {
	day := time.Now()
	if v := c.Query("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
		}
		day = t
	}
	summary, err := h.query.DailySummary(c.Context(), day)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(summary)
}
