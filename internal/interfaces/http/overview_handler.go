package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// OverviewHandler maneja las consultas agregadas de inventario (protegido).
type OverviewHandler struct {
	uc *inventory.OverviewUseCase
}

// NewOverviewHandler construye el handler.
func NewOverviewHandler(uc *inventory.OverviewUseCase) *OverviewHandler {
	return &OverviewHandler{uc: uc}
}

// GetOverview godoc
// @Summary      Resumen de existencias por ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item    query  string  false  "Filtrar por prefijo de item_id"
// @Param        limit   query  int     false  "Máximo de ítems (default 100)"
// @Param        offset  query  int     false  "Desplazamiento de la página"
// @Success      200  {array}   dto.ItemOverviewDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/overview [get]
func (h *OverviewHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.uc.GetOverview(c.Context(), c.Query("item"), c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total": len(overview),
		"items": overview,
	})
}

// GetLowStock godoc
// @Summary      Alertas de stock bajo el umbral de seguridad
// @Description  Ítems cuya existencia total quedó por debajo de la suma de sus
//
//	umbrales de seguridad, con el detalle por ubicación.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockAlertDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *OverviewHandler) GetLowStock(c *fiber.Ctx) error {
	alerts, err := h.uc.GetLowStockAlerts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total":  len(alerts),
		"alerts": alerts,
	})
}
