package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type InventoryHandler struct {
	service *inventory.StockMovementService
	kardex  *inventory.KardexUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(service *inventory.StockMovementService, kardex *inventory.KardexUseCase) *InventoryHandler {
	return &InventoryHandler{service: service, kardex: kardex}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "item_id, location_id, quantity; safety_stock y remarks opcionales"
// @Success      201   {object}  dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.service.StockIn(c.Context(), inventory.StockInInput{
		ItemID:      in.ItemID,
		LocationID:  in.LocationID,
		Quantity:    in.Quantity,
		SafetyStock: in.SafetyStock,
		Remarks:     in.Remarks,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementDTO(mov))
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Description  Con location_id deduce todo de esa ubicación; sin location_id
//
//	reparte entre ubicaciones (ascendente por location_id) de forma atómica.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "item_id, quantity; location_id y remarks opcionales"
// @Success      201   {array}   dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movements, err := h.service.StockOut(c.Context(), inventory.StockOutInput{
		ItemID:       in.ItemID,
		Quantity:     in.Quantity,
		LocationHint: in.LocationID,
		Remarks:      in.Remarks,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementDTOs(movements))
}

// GetQuantity godoc
// @Summary      Cantidad actual de un ítem en una ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      path  string  true  "ID del ítem"
// @Param        location_id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.QuantityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{item_id}/locations/{location_id}/quantity [get]
func (h *InventoryHandler) GetQuantity(c *fiber.Ctx) error {
	itemID := c.Params("item_id")
	locationID := c.Params("location_id")
	quantity, err := h.service.GetQuantity(c.Context(), itemID, locationID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.QuantityResponse{ItemID: itemID, LocationID: locationID, Quantity: quantity})
}

// ReplayMovements godoc
// @Summary      Historial de movimientos de una clave en orden de secuencia
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      path  string  true  "ID del ítem"
// @Param        location_id  path  string  true  "ID de la ubicación"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{item_id}/locations/{location_id}/movements [get]
func (h *InventoryHandler) ReplayMovements(c *fiber.Ctx) error {
	movements, err := h.service.ReplayMovements(c.Context(), c.Params("item_id"), c.Params("location_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.NewMovementDTOs(movements))
}

// ListItemMovements godoc
// @Summary      Movimientos de un ítem en todas sus ubicaciones
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  path   string  true   "ID del ítem"
// @Param        from     query  string  false  "Fecha inicial (YYYY-MM-DD o RFC3339)"
// @Param        to       query  string  false  "Fecha final (YYYY-MM-DD o RFC3339)"
// @Param        limit    query  int     false  "Máximo de movimientos (default 100)"
// @Param        offset   query  int     false  "Desplazamiento de la página"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{item_id}/movements [get]
func (h *InventoryHandler) ListItemMovements(c *fiber.Ctx) error {
	from, to, err := queryDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "formato de fecha inválido (use YYYY-MM-DD o RFC3339)"})
	}
	movements, err := h.service.ListMovementsByItem(c.Context(), c.Params("item_id"), from, to, c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.NewMovementDTOs(movements))
}

// ListLocationMovements godoc
// @Summary      Movimientos de una ubicación para todos los ítems
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        location_id  path   string  true   "ID de la ubicación"
// @Param        from         query  string  false  "Fecha inicial (YYYY-MM-DD o RFC3339)"
// @Param        to           query  string  false  "Fecha final (YYYY-MM-DD o RFC3339)"
// @Param        limit        query  int     false  "Máximo de movimientos (default 100)"
// @Param        offset       query  int     false  "Desplazamiento de la página"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/locations/{location_id}/movements [get]
func (h *InventoryHandler) ListLocationMovements(c *fiber.Ctx) error {
	from, to, err := queryDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "formato de fecha inválido (use YYYY-MM-DD o RFC3339)"})
	}
	movements, err := h.service.ListMovementsByLocation(c.Context(), c.Params("location_id"), from, to, c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.NewMovementDTOs(movements))
}

// queryDateRange parsea los parámetros from/to; vacío = sin filtro.
func queryDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = queryTime(c, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = queryTime(c, "to"); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func queryTime(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// KardexPDF godoc
// @Summary      Kardex en PDF de una clave (ítem, ubicación)
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        item_id      path  string  true  "ID del ítem"
// @Param        location_id  path  string  true  "ID de la ubicación"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{item_id}/locations/{location_id}/kardex.pdf [get]
func (h *InventoryHandler) KardexPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.kardex.GenerateKardexPDF(c.Context(), c.Params("item_id"), c.Params("location_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="kardex.pdf"`)
	return c.Send(pdfBytes)
}

// respondDomainError mapea los errores de dominio a códigos HTTP. Los
// conflictos de concurrencia se marcan retryable: el caller reintenta la
// operación completa y el servicio re-planifica.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser mayor que cero"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin registro de stock para esa clave"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en la ubicación"})
	case errors.Is(err, domain.ErrInsufficientAggregateStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_AGGREGATE_STOCK", Message: "stock agregado insuficiente"})
	case errors.Is(err, domain.ErrStockChangedConcurrently):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_CHANGED", Message: "el stock cambió concurrentemente, reintente la operación", Retryable: true})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
