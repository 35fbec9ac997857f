package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caisse-api/internal/application/caisse"
	"github.com/jhoicas/Caisse-api/internal/application/dto"
)

// CaisseHandler maneja el ciclo de vida de sesiones de caja (protegido).
type CaisseHandler struct {
	sessions *caisse.SessionUseCase
	reports  *caisse.ReportUseCase
}

// NewCaisseHandler construye el handler.
func NewCaisseHandler(sessions *caisse.SessionUseCase, reports *caisse.ReportUseCase) *CaisseHandler {
	return &CaisseHandler{sessions: sessions, reports: reports}
}

// Open godoc
// @Summary      Abrir sesión de caja
// @Description  Un usuario solo puede tener una sesión activa a la vez.
// @Tags         caisse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "opening_amount"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caisse/sessions [post]
func (h *CaisseHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.sessions.Open(c.Context(), GetUserID(c), in.OpeningAmount)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Close godoc
// @Summary      Cerrar sesión de caja
// @Description  Congela la sesión: expected = current, difference = counted - expected. Cierre terminal.
// @Tags         caisse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la sesión"
// @Param        body  body  dto.CloseSessionRequest  true  "counted_amount del arqueo"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caisse/sessions/{id}/close [post]
func (h *CaisseHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.sessions.Close(c.Context(), c.Params("id"), in.CountedAmount, in.Notes)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(session)
}

// CashMovement godoc
// @Summary      Registrar ingreso o egreso manual de efectivo
// @Tags         caisse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la sesión"
// @Param        body  body  dto.CashMovementRequest true  "type (deposit|withdrawal), amount"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caisse/sessions/{id}/movements [post]
func (h *CaisseHandler) CashMovement(c *fiber.Ctx) error {
	var in dto.CashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.sessions.ApplyCashDelta(c.Context(), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(session)
}

// Current godoc
// @Summary      Sesión activa del usuario autenticado
// @Tags         caisse
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caisse/sessions/current [get]
func (h *CaisseHandler) Current(c *fiber.Ctx) error {
	session, err := h.sessions.Current(c.Context(), GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(session)
}

// GetByID godoc
// @Summary      Obtener sesión por ID
// @Tags         caisse
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caisse/sessions/{id} [get]
func (h *CaisseHandler) GetByID(c *fiber.Ctx) error {
	session, err := h.sessions.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(session)
}

// Movements godoc
// @Summary      Asientos de caja de una sesión
// @Tags         caisse
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la sesión"
// @Param        limit   query  int     false  "default 50"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {array}  dto.CaisseMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caisse/sessions/{id}/movements [get]
func (h *CaisseHandler) Movements(c *fiber.Ctx) error {
	movements, err := h.sessions.Movements(c.Context(), c.Params("id"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(movements)
}

// Report godoc
// @Summary      Reporte de sesión en PDF (reporte Z si está cerrada)
// @Tags         caisse
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caisse/sessions/{id}/report [get]
func (h *CaisseHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.reports.SessionReport(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-caja.pdf"`)
	return c.Send(pdfBytes)
}
