package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// OverviewUseCase expone consultas agregadas de inventario: resumen por ítem
// y alertas de stock bajo. Solo lectura, sin bloqueos ni transacción.
type OverviewUseCase struct {
	overviewRepo repository.OverviewRepository
}

// NewOverviewUseCase construye el caso de uso.
func NewOverviewUseCase(overviewRepo repository.OverviewRepository) *OverviewUseCase {
	return &OverviewUseCase{overviewRepo: overviewRepo}
}

// GetOverview devuelve el resumen de existencias por ítem (total + desglose
// por ubicación) con paginación. itemFilter filtra por prefijo de item_id.
func (uc *OverviewUseCase) GetOverview(ctx context.Context, itemFilter string, limit, offset int) ([]dto.ItemOverviewDTO, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := uc.overviewRepo.ListOverview(ctx, itemFilter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemOverviewDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ItemOverviewDTO{
			ItemID:        r.ItemID,
			TotalQuantity: r.TotalQuantity,
			Locations:     toLocationDTOs(r.Locations),
		})
	}
	return out, nil
}

// GetLowStockAlerts devuelve los ítems cuya existencia total quedó por debajo
// de la suma de sus umbrales de seguridad, con el detalle por ubicación.
func (uc *OverviewUseCase) GetLowStockAlerts(ctx context.Context) ([]dto.LowStockAlertDTO, error) {
	rows, err := uc.overviewRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockAlertDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockAlertDTO{
			ItemID:          r.ItemID,
			CurrentStock:    r.CurrentStock,
			SafetyStock:     r.SafetyStock,
			LocationDetails: toLocationDTOs(r.LocationDetails),
		})
	}
	return out, nil
}

func toLocationDTOs(locations []repository.LocationQuantity) []dto.LocationQuantityDTO {
	out := make([]dto.LocationQuantityDTO, 0, len(locations))
	for _, l := range locations {
		out = append(out, dto.LocationQuantityDTO{LocationID: l.LocationID, Quantity: l.Quantity})
	}
	return out
}
