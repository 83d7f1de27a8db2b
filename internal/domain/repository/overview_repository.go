package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// LocationQuantity es el detalle por ubicación de un ítem.
type LocationQuantity struct {
	LocationID string
	Quantity   decimal.Decimal
}

// ItemOverview resume las existencias de un ítem: total y desglose por ubicación.
type ItemOverview struct {
	ItemID        string
	TotalQuantity decimal.Decimal
	Locations     []LocationQuantity
}

// LowStockItem es un ítem cuya existencia total quedó por debajo de la suma
// de sus umbrales de seguridad.
type LowStockItem struct {
	ItemID          string
	CurrentStock    decimal.Decimal
	SafetyStock     decimal.Decimal
	LocationDetails []LocationQuantity
}

// OverviewRepository define el puerto de consultas agregadas de inventario
// (solo lectura, sin bloqueo).
type OverviewRepository interface {
	// ListOverview devuelve el resumen por ítem con paginación; itemFilter
	// filtra por prefijo de item_id ("" = todos).
	ListOverview(ctx context.Context, itemFilter string, limit, offset int) ([]ItemOverview, error)
	// ListLowStock devuelve los ítems con sum(quantity) < sum(safety_stock).
	ListLowStock(ctx context.Context) ([]LowStockItem, error)
}
