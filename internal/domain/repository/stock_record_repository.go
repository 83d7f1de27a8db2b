package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockRecordRepository define el puerto del store de stock por (ítem, ubicación).
// Todo acceso que informe una decisión de mutación debe pasar por GetForUpdate
// dentro de una transacción: leer-decidir-escribir sin bloqueo es el defecto
// clásico que este puerto evita.
type StockRecordRepository interface {
	// Get devuelve la fila sin bloquear, o nil si no existe.
	Get(ctx context.Context, itemID, locationID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) hasta el fin de la
	// transacción; los lectores que contienden por la misma clave esperan.
	// Devuelve nil si la fila no existe.
	GetForUpdate(ctx context.Context, itemID, locationID string) (*entity.StockRecord, error)
	// Insert crea la fila inicial. Una violación de unicidad (dos escritores
	// creando la misma clave a la vez) se reporta como ErrStockChangedConcurrently.
	Insert(ctx context.Context, record *entity.StockRecord) error
	// ApplyDelta suma delta (positivo entrada, negativo salida) a la fila ya
	// bloqueada e incrementa Version. Falla con ErrInsufficientStock si la
	// cantidad resultante fuese negativa.
	ApplyDelta(ctx context.Context, itemID, locationID string, delta decimal.Decimal) (*entity.StockRecord, error)
	// ListByItem devuelve el snapshot de candidatas de un ítem (sin bloquear),
	// ordenadas por location_id ascendente.
	ListByItem(ctx context.Context, itemID string) ([]*entity.StockRecord, error)
}
