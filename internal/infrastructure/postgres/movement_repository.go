package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Tabla movements: seq BIGSERIAL PK — la secuencia la
// asigna el propio store de forma atómica y monotónica. El repo no expone
// UPDATE ni DELETE: el libro es append-only por diseño.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `seq, item_id, location_id, direction, quantity, resulting_quantity, correlation_id, remarks, created_at`

// Append escribe un movimiento dentro de la transacción actual y devuelve el
// número de secuencia asignado.
func (r *MovementRepo) Append(ctx context.Context, movement *entity.Movement) (int64, error) {
	query := `
		INSERT INTO movements (item_id, location_id, direction, quantity, resulting_quantity, correlation_id, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	remarks := (*string)(nil)
	if movement.Remarks != "" {
		remarks = &movement.Remarks
	}
	var seq int64
	err := r.q.QueryRow(ctx, query,
		movement.ItemID, movement.LocationID, movement.Direction,
		movement.Quantity, movement.ResultingQuantity, movement.CorrelationID,
		remarks, movement.CreatedAt,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("append movement: %w", err)
	}
	return seq, nil
}

// Replay devuelve los movimientos confirmados de una clave en orden de
// secuencia ascendente (para auditoría y verificación del invariante de replay).
func (r *MovementRepo) Replay(ctx context.Context, itemID, locationID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE item_id = $1 AND location_id = $2
		ORDER BY seq ASC`
	rows, err := r.q.Query(ctx, query, itemID, locationID)
	if err != nil {
		return nil, fmt.Errorf("replay movements: %w", err)
	}
	return scanMovements(rows)
}

// ListByItem lista movimientos de un ítem en un rango de fechas.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE item_id = $1`
	args := []any{itemID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY seq DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	return scanMovements(rows)
}

// ListByLocation lista movimientos de una ubicación en un rango de fechas.
func (r *MovementRepo) ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE location_id = $1`
	args := []any{locationID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY seq DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by location: %w", err)
	}
	return scanMovements(rows)
}

func appendDateRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", len(args)+1)
		args = append(args, *to)
	}
	return query, args
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var remarks *string
		if err := rows.Scan(&m.Seq, &m.ItemID, &m.LocationID, &m.Direction,
			&m.Quantity, &m.ResultingQuantity, &m.CorrelationID, &remarks, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if remarks != nil {
			m.Remarks = *remarks
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
