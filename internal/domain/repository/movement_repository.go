package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos. Es append-only
// por diseño: no expone update ni delete.
type MovementRepository interface {
	// Append escribe un movimiento dentro de la transacción actual y devuelve
	// el número de secuencia asignado por el store (monotónico, nunca reusado).
	Append(ctx context.Context, movement *entity.Movement) (int64, error)
	// Replay devuelve los movimientos confirmados de una clave, en orden de
	// secuencia ascendente. Sumar las cantidades con signo reproduce la
	// cantidad actual del stock (invariante de replay).
	Replay(ctx context.Context, itemID, locationID string) ([]*entity.Movement, error)
	// ListByItem lista movimientos de un ítem en un rango de fechas.
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// ListByLocation lista movimientos de una ubicación en un rango de fechas.
	ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
