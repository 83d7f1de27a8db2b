package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	dominv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockMovementService orquesta entradas y salidas de stock como una única
// transacción: bloquea filas (SELECT FOR UPDATE), invoca el Allocator cuando
// la salida abarca varias ubicaciones, aplica las deducciones y registra los
// movimientos en el libro, todo o nada. No reintenta internamente: un
// ErrStockChangedConcurrently se reintenta repitiendo la llamada completa.
type StockMovementService struct {
	txRunner  TxRunner
	stockRepo repository.StockRecordRepository // lecturas fuera de transacción
	movRepo   repository.MovementRepository    // lecturas fuera de transacción
	order     dominv.CandidateOrder
}

// NewStockMovementService construye el servicio. order define la prioridad de
// ubicaciones cuando la salida no indica una; nil usa LocationID ascendente.
func NewStockMovementService(
	txRunner TxRunner,
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	order dominv.CandidateOrder,
) *StockMovementService {
	if order == nil {
		order = dominv.OrderByLocationID
	}
	return &StockMovementService{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		movRepo:   movRepo,
		order:     order,
	}
}

// StockInInput entrada para una entrada de stock. SafetyStock solo se aplica
// al crear la fila (primera vez que el ítem se almacena en esa ubicación).
type StockInInput struct {
	ItemID      string
	LocationID  string
	Quantity    decimal.Decimal
	SafetyStock *decimal.Decimal
	Remarks     string
}

// StockOutInput entrada para una salida de stock. LocationHint vacío delega
// el reparto en el Allocator sobre todas las ubicaciones con existencia.
type StockOutInput struct {
	ItemID       string
	Quantity     decimal.Decimal
	LocationHint string
	Remarks      string
}

// StockIn registra una entrada: bloquea la fila destino (creándola con
// cantidad cero si no existe), suma la cantidad y agrega un movimiento IN.
func (s *StockMovementService) StockIn(ctx context.Context, input StockInInput) (*entity.Movement, error) {
	if input.ItemID == "" || input.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if input.SafetyStock != nil && input.SafetyStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	var result *entity.Movement

	err := s.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
	) error {
		record, err := stockRepo.GetForUpdate(ctx, input.ItemID, input.LocationID)
		if err != nil {
			return err
		}
		if record == nil {
			// Primera entrada en esta ubicación: crear la fila. El INSERT deja
			// la fila bloqueada para el resto de la transacción; si otro
			// escritor la creó antes, la violación de unicidad llega como
			// ErrStockChangedConcurrently y el caller reintenta.
			record = &entity.StockRecord{
				ItemID:     input.ItemID,
				LocationID: input.LocationID,
				Quantity:   decimal.Zero,
				UpdatedAt:  now,
			}
			if input.SafetyStock != nil {
				record.SafetyStock = *input.SafetyStock
			}
			if err := stockRepo.Insert(ctx, record); err != nil {
				return err
			}
		}

		updated, err := stockRepo.ApplyDelta(ctx, input.ItemID, input.LocationID, input.Quantity)
		if err != nil {
			return err
		}

		mov := &entity.Movement{
			ItemID:            input.ItemID,
			LocationID:        input.LocationID,
			Direction:         entity.DirectionIN,
			Quantity:          input.Quantity,
			ResultingQuantity: updated.Quantity,
			CorrelationID:     uuid.New().String(),
			Remarks:           input.Remarks,
			CreatedAt:         now,
		}
		seq, err := movRepo.Append(ctx, mov)
		if err != nil {
			return err
		}
		mov.Seq = seq
		result = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// StockOut registra una salida. Con LocationHint deduce todo de esa ubicación
// (sin Allocator); sin hint toma un snapshot de candidatas, arma el plan y
// bloquea las filas del plan en orden de LocationID ascendente (orden total
// que evita deadlocks entre salidas concurrentes). Si bajo bloqueo alguna
// ubicación ya no alcanza su porción, aborta con ErrStockChangedConcurrently
// sin aplicar nada. Devuelve los movimientos en el orden del plan, todos con
// el mismo CorrelationID.
func (s *StockMovementService) StockOut(ctx context.Context, input StockOutInput) ([]*entity.Movement, error) {
	if input.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now().UTC()
	correlationID := uuid.New().String()
	var result []*entity.Movement

	err := s.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
	) error {
		if input.LocationHint != "" {
			mov, err := s.deductAt(ctx, stockRepo, movRepo, input, input.LocationHint, input.Quantity, correlationID, now)
			if err != nil {
				return err
			}
			result = []*entity.Movement{mov}
			return nil
		}

		// Snapshot sin bloqueo para planear; el bloqueo y la re-verificación
		// vienen después, por ubicación.
		records, err := stockRepo.ListByItem(ctx, input.ItemID)
		if err != nil {
			return err
		}
		candidates := make([]dominv.Candidate, 0, len(records))
		for _, r := range records {
			if r.Quantity.GreaterThan(decimal.Zero) {
				candidates = append(candidates, dominv.Candidate{
					LocationID: r.LocationID,
					Available:  r.Quantity,
				})
			}
		}
		s.order(candidates)

		plan, err := dominv.Allocate(input.Quantity, candidates)
		if err != nil {
			return err
		}

		// Bloquear en orden de LocationID ascendente, independiente del orden
		// de prioridad del plan, y re-verificar que cada ubicación aún cubre
		// su porción.
		byLocation := make(map[string]decimal.Decimal, len(plan.Allocations))
		lockOrder := make([]string, 0, len(plan.Allocations))
		for _, a := range plan.Allocations {
			byLocation[a.LocationID] = a.Quantity
			lockOrder = append(lockOrder, a.LocationID)
		}
		sort.Strings(lockOrder)

		for _, locationID := range lockOrder {
			record, err := stockRepo.GetForUpdate(ctx, input.ItemID, locationID)
			if err != nil {
				return err
			}
			if record == nil || record.Quantity.LessThan(byLocation[locationID]) {
				// Un escritor concurrente movió stock entre el snapshot y el
				// bloqueo: abortar entero, el caller re-planifica al reintentar.
				return domain.ErrStockChangedConcurrently
			}
		}

		movements := make([]*entity.Movement, 0, len(plan.Allocations))
		for _, a := range plan.Allocations {
			mov, err := s.deductLocked(ctx, stockRepo, movRepo, input.ItemID, a.LocationID, a.Quantity, correlationID, input.Remarks, now)
			if err != nil {
				return err
			}
			movements = append(movements, mov)
		}
		result = movements
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// deductAt bloquea la ubicación indicada y deduce todo allí. La fila ausente
// es un error para una salida contra una ubicación concreta.
func (s *StockMovementService) deductAt(
	ctx context.Context,
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	input StockOutInput,
	locationID string,
	quantity decimal.Decimal,
	correlationID string,
	now time.Time,
) (*entity.Movement, error) {
	record, err := stockRepo.GetForUpdate(ctx, input.ItemID, locationID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if record.Quantity.LessThan(quantity) {
		return nil, domain.ErrInsufficientStock
	}
	return s.deductLocked(ctx, stockRepo, movRepo, input.ItemID, locationID, quantity, correlationID, input.Remarks, now)
}

// deductLocked aplica la deducción sobre una fila ya bloqueada y agrega el
// movimiento OUT correspondiente en la misma transacción.
func (s *StockMovementService) deductLocked(
	ctx context.Context,
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	itemID, locationID string,
	quantity decimal.Decimal,
	correlationID, remarks string,
	now time.Time,
) (*entity.Movement, error) {
	updated, err := stockRepo.ApplyDelta(ctx, itemID, locationID, quantity.Neg())
	if err != nil {
		return nil, err
	}
	mov := &entity.Movement{
		ItemID:            itemID,
		LocationID:        locationID,
		Direction:         entity.DirectionOUT,
		Quantity:          quantity,
		ResultingQuantity: updated.Quantity,
		CorrelationID:     correlationID,
		Remarks:           remarks,
		CreatedAt:         now,
	}
	seq, err := movRepo.Append(ctx, mov)
	if err != nil {
		return nil, err
	}
	mov.Seq = seq
	return mov, nil
}

// GetQuantity devuelve la cantidad actual sin bloquear; clave ausente = cero.
func (s *StockMovementService) GetQuantity(ctx context.Context, itemID, locationID string) (decimal.Decimal, error) {
	if itemID == "" || locationID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	record, err := s.stockRepo.Get(ctx, itemID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	if record == nil {
		return decimal.Zero, nil
	}
	return record.Quantity, nil
}

// ReplayMovements devuelve los movimientos confirmados de una clave en orden
// de secuencia, para auditoría y verificación del invariante de replay.
func (s *StockMovementService) ReplayMovements(ctx context.Context, itemID, locationID string) ([]*entity.Movement, error) {
	if itemID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.movRepo.Replay(ctx, itemID, locationID)
}

// ListMovementsByItem lista los movimientos de un ítem (todas sus ubicaciones)
// en un rango de fechas opcional, paginado, del más reciente al más antiguo.
func (s *StockMovementService) ListMovementsByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	limit, offset = clampPage(limit, offset)
	return s.movRepo.ListByItem(ctx, itemID, from, to, limit, offset)
}

// ListMovementsByLocation lista los movimientos de una ubicación (todos los
// ítems) en un rango de fechas opcional, paginado, del más reciente al más antiguo.
func (s *StockMovementService) ListMovementsByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	limit, offset = clampPage(limit, offset)
	return s.movRepo.ListByLocation(ctx, locationID, from, to, limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
