package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.OverviewRepository = (*OverviewRepo)(nil)

// OverviewRepo consultas agregadas de inventario sobre PostgreSQL
// (solo lectura, sin bloqueo; usable con pool o tx).
type OverviewRepo struct {
	q Querier
}

// NewOverviewRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOverviewRepository(q Querier) *OverviewRepo {
	return &OverviewRepo{q: q}
}

// ListOverview devuelve el resumen por ítem (total + desglose por ubicación)
// con paginación; la página se corta por ítem, no por fila.
func (r *OverviewRepo) ListOverview(ctx context.Context, itemFilter string, limit, offset int) ([]repository.ItemOverview, error) {
	query := `
		SELECT s.item_id, s.location_id, s.quantity
		FROM stock_records s
		JOIN (
			SELECT item_id FROM stock_records
			WHERE ($1 = '' OR item_id LIKE $1 || '%')
			GROUP BY item_id
			ORDER BY item_id
			LIMIT $2 OFFSET $3
		) page ON page.item_id = s.item_id
		ORDER BY s.item_id, s.location_id`
	rows, err := r.q.Query(ctx, query, itemFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list overview: %w", err)
	}
	defer rows.Close()

	var list []repository.ItemOverview
	for rows.Next() {
		var lq repository.LocationQuantity
		var itemID string
		if err := rows.Scan(&itemID, &lq.LocationID, &lq.Quantity); err != nil {
			return nil, fmt.Errorf("scan overview: %w", err)
		}
		if len(list) == 0 || list[len(list)-1].ItemID != itemID {
			list = append(list, repository.ItemOverview{ItemID: itemID})
		}
		last := &list[len(list)-1]
		last.TotalQuantity = last.TotalQuantity.Add(lq.Quantity)
		last.Locations = append(last.Locations, lq)
	}
	return list, rows.Err()
}

// ListLowStock devuelve los ítems con sum(quantity) < sum(safety_stock),
// con el detalle por ubicación de cada uno.
func (r *OverviewRepo) ListLowStock(ctx context.Context) ([]repository.LowStockItem, error) {
	query := `
		SELECT s.item_id, s.location_id, s.quantity, low.total_quantity, low.total_safety
		FROM stock_records s
		JOIN (
			SELECT item_id,
			       SUM(quantity)     AS total_quantity,
			       SUM(safety_stock) AS total_safety
			FROM stock_records
			GROUP BY item_id
			HAVING SUM(quantity) < SUM(safety_stock)
		) low ON low.item_id = s.item_id
		ORDER BY s.item_id, s.location_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []repository.LowStockItem
	for rows.Next() {
		var item repository.LowStockItem
		var lq repository.LocationQuantity
		if err := rows.Scan(&item.ItemID, &lq.LocationID, &lq.Quantity, &item.CurrentStock, &item.SafetyStock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		if len(list) == 0 || list[len(list)-1].ItemID != item.ItemID {
			list = append(list, item)
		}
		last := &list[len(list)-1]
		last.LocationDetails = append(last.LocationDetails, lq)
	}
	return list, rows.Err()
}
