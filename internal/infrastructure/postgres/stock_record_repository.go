package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL
// (usable con pool o tx). Tabla stock_records: PK (item_id, location_id),
// CHECK (quantity >= 0) como respaldo del guard del servicio.
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

const stockRecordColumns = `item_id, location_id, quantity, safety_stock, version, updated_at`

// Get obtiene la fila sin bloquear; nil si no existe.
func (r *StockRecordRepo) Get(ctx context.Context, itemID, locationID string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE item_id = $1 AND location_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, itemID, locationID), "get stock record")
}

// GetForUpdate obtiene la fila y la bloquea hasta el fin de la transacción
// (SELECT FOR UPDATE); nil si no existe.
func (r *StockRecordRepo) GetForUpdate(ctx context.Context, itemID, locationID string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE item_id = $1 AND location_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, itemID, locationID), "get stock record for update")
}

// Insert crea la fila inicial; la fila queda bloqueada para el resto de la
// transacción. Dos escritores creando la misma clave a la vez: el segundo
// recibe la violación de unicidad, que se reporta como conflicto reintentable.
func (r *StockRecordRepo) Insert(ctx context.Context, record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (item_id, location_id, quantity, safety_stock, version, updated_at)
		VALUES ($1, $2, $3, $4, 0, now())`
	_, err := r.q.Exec(ctx, query, record.ItemID, record.LocationID, record.Quantity, record.SafetyStock)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrStockChangedConcurrently
		}
		return fmt.Errorf("insert stock record: %w", err)
	}
	return nil
}

// ApplyDelta suma delta a la fila bloqueada, incrementa version y devuelve el
// estado resultante. El CHECK de la tabla respalda el guard del servicio: una
// cantidad resultante negativa se reporta como ErrInsufficientStock.
func (r *StockRecordRepo) ApplyDelta(ctx context.Context, itemID, locationID string, delta decimal.Decimal) (*entity.StockRecord, error) {
	query := `
		UPDATE stock_records
		SET quantity = quantity + $3, version = version + 1, updated_at = now()
		WHERE item_id = $1 AND location_id = $2
		RETURNING ` + stockRecordColumns
	record, err := r.scanOne(r.q.QueryRow(ctx, query, itemID, locationID, delta), "apply stock delta")
	if err != nil {
		if isCheckViolation(err) {
			return nil, domain.ErrInsufficientStock
		}
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// ListByItem devuelve el snapshot de un ítem sin bloquear, ordenado por
// location_id ascendente (orden estable para el Allocator).
func (r *StockRecordRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE item_id = $1
		ORDER BY location_id ASC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ItemID, &s.LocationID, &s.Quantity, &s.SafetyStock, &s.Version, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *StockRecordRepo) scanOne(row pgx.Row, op string) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := row.Scan(&s.ItemID, &s.LocationID, &s.Quantity, &s.SafetyStock, &s.Version, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
