package inventory_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: TxRunner + repos con semántica transaccional.
// Run trabaja sobre una copia del estado y solo la publica en el commit; el
// mutex serializa transacciones, emulando el bloqueo de fila a granularidad
// gruesa (el segundo escritor espera a que el primero confirme, como con
// SELECT FOR UPDATE).
// ──────────────────────────────────────────────────────────────────────────────

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func key(itemID, locationID string) string { return itemID + "|" + locationID }

type memState struct {
	stock     map[string]*entity.StockRecord
	movements []*entity.Movement
	nextSeq   int64
}

func newMemState() *memState {
	return &memState{stock: make(map[string]*entity.StockRecord), nextSeq: 1}
}

func (s *memState) clone() *memState {
	c := &memState{
		stock:     make(map[string]*entity.StockRecord, len(s.stock)),
		movements: make([]*entity.Movement, len(s.movements)),
		nextSeq:   s.nextSeq,
	}
	for k, v := range s.stock {
		cp := *v
		c.stock[k] = &cp
	}
	for i, m := range s.movements {
		cp := *m
		c.movements[i] = &cp
	}
	return c
}

type memTxRunner struct {
	mu    sync.Mutex
	state *memState
	// beforeLock permite a los tests simular un escritor concurrente entre el
	// snapshot de candidatas y el bloqueo de filas.
	beforeLock func(s *memState)
}

func newMemTxRunner() *memTxRunner { return &memTxRunner{state: newMemState()} }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft := r.state.clone()
	stockRepo := &memStockRepo{state: draft, beforeLock: r.beforeLock}
	movRepo := &memMovementRepo{state: draft}

	if err := fn(stockRepo, movRepo); err != nil {
		return err // rollback: se descarta el draft
	}
	if err := ctx.Err(); err != nil {
		return err // cancelación antes del commit: rollback
	}
	r.state = draft
	return nil
}

func (r *memTxRunner) snapshot() *memState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.clone()
}

// memStockRepo opera sobre el draft de una transacción abierta.
type memStockRepo struct {
	state      *memState
	beforeLock func(s *memState)
	snapped    bool
}

func (m *memStockRepo) Get(_ context.Context, itemID, locationID string) (*entity.StockRecord, error) {
	rec, ok := m.state.stock[key(itemID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memStockRepo) GetForUpdate(ctx context.Context, itemID, locationID string) (*entity.StockRecord, error) {
	if m.snapped && m.beforeLock != nil {
		// Interferencia simulada: otro escritor confirmó entre snapshot y lock.
		m.beforeLock(m.state)
		m.snapped = false
	}
	return m.Get(ctx, itemID, locationID)
}

func (m *memStockRepo) Insert(_ context.Context, record *entity.StockRecord) error {
	k := key(record.ItemID, record.LocationID)
	if _, exists := m.state.stock[k]; exists {
		return domain.ErrStockChangedConcurrently // violación de unicidad
	}
	cp := *record
	m.state.stock[k] = &cp
	return nil
}

func (m *memStockRepo) ApplyDelta(_ context.Context, itemID, locationID string, delta decimal.Decimal) (*entity.StockRecord, error) {
	rec, ok := m.state.stock[key(itemID, locationID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	next := rec.Quantity.Add(delta)
	if next.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}
	rec.Quantity = next
	rec.Version++
	cp := *rec
	return &cp, nil
}

func (m *memStockRepo) ListByItem(_ context.Context, itemID string) ([]*entity.StockRecord, error) {
	var list []*entity.StockRecord
	for _, rec := range m.state.stock {
		if rec.ItemID == itemID {
			cp := *rec
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LocationID < list[j].LocationID })
	m.snapped = true
	return list, nil
}

// memMovementRepo: libro append-only sobre el draft.
type memMovementRepo struct {
	state *memState
}

func (m *memMovementRepo) Append(_ context.Context, movement *entity.Movement) (int64, error) {
	cp := *movement
	cp.Seq = m.state.nextSeq
	m.state.nextSeq++
	m.state.movements = append(m.state.movements, &cp)
	return cp.Seq, nil
}

func (m *memMovementRepo) Replay(_ context.Context, itemID, locationID string) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, mov := range m.state.movements {
		if mov.ItemID == itemID && mov.LocationID == locationID {
			cp := *mov
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
	return list, nil
}

func (m *memMovementRepo) ListByItem(_ context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return filterMovements(m.state.movements, func(mov *entity.Movement) bool {
		return mov.ItemID == itemID
	}, from, to, limit, offset), nil
}

func (m *memMovementRepo) ListByLocation(_ context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return filterMovements(m.state.movements, func(mov *entity.Movement) bool {
		return mov.LocationID == locationID
	}, from, to, limit, offset), nil
}

// filterMovements emula las consultas de listado del adaptador: filtro, rango
// de fechas, orden seq descendente y paginación.
func filterMovements(all []*entity.Movement, match func(*entity.Movement) bool, from, to *time.Time, limit, offset int) []*entity.Movement {
	var list []*entity.Movement
	for _, mov := range all {
		if !match(mov) {
			continue
		}
		if from != nil && mov.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && mov.CreatedAt.After(*to) {
			continue
		}
		cp := *mov
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seq > list[j].Seq })
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list
}

// readers atados al estado confirmado (lecturas fuera de transacción).
type memStockReader struct{ runner *memTxRunner }

func (r *memStockReader) Get(ctx context.Context, itemID, locationID string) (*entity.StockRecord, error) {
	repo := &memStockRepo{state: r.runner.snapshot()}
	return repo.Get(ctx, itemID, locationID)
}
func (r *memStockReader) GetForUpdate(ctx context.Context, itemID, locationID string) (*entity.StockRecord, error) {
	return r.Get(ctx, itemID, locationID)
}
func (r *memStockReader) Insert(context.Context, *entity.StockRecord) error {
	panic("mutación fuera de transacción")
}
func (r *memStockReader) ApplyDelta(context.Context, string, string, decimal.Decimal) (*entity.StockRecord, error) {
	panic("mutación fuera de transacción")
}
func (r *memStockReader) ListByItem(ctx context.Context, itemID string) ([]*entity.StockRecord, error) {
	repo := &memStockRepo{state: r.runner.snapshot()}
	return repo.ListByItem(ctx, itemID)
}

type memMovementReader struct{ runner *memTxRunner }

func (r *memMovementReader) Append(context.Context, *entity.Movement) (int64, error) {
	panic("append fuera de transacción")
}
func (r *memMovementReader) Replay(ctx context.Context, itemID, locationID string) ([]*entity.Movement, error) {
	repo := &memMovementRepo{state: r.runner.snapshot()}
	return repo.Replay(ctx, itemID, locationID)
}
func (r *memMovementReader) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	repo := &memMovementRepo{state: r.runner.snapshot()}
	return repo.ListByItem(ctx, itemID, from, to, limit, offset)
}
func (r *memMovementReader) ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	repo := &memMovementRepo{state: r.runner.snapshot()}
	return repo.ListByLocation(ctx, locationID, from, to, limit, offset)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newService(t *testing.T) (*appinv.StockMovementService, *memTxRunner) {
	t.Helper()
	runner := newMemTxRunner()
	svc := appinv.NewStockMovementService(
		runner,
		&memStockReader{runner: runner},
		&memMovementReader{runner: runner},
		nil, // prioridad por defecto: LocationID ascendente
	)
	return svc, runner
}

// seed confirma stock inicial directamente en el estado.
func seed(t *testing.T, runner *memTxRunner, itemID, locationID string, quantity int64) {
	t.Helper()
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.state.stock[key(itemID, locationID)] = &entity.StockRecord{
		ItemID:     itemID,
		LocationID: locationID,
		Quantity:   qty(quantity),
	}
}

func currentQty(t *testing.T, svc *appinv.StockMovementService, itemID, locationID string) decimal.Decimal {
	t.Helper()
	q, err := svc.GetQuantity(context.Background(), itemID, locationID)
	require.NoError(t, err)
	return q
}

func ledgerLen(runner *memTxRunner) int {
	return len(runner.snapshot().movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// StockIn
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_CreaFilaYAcumula(t *testing.T) {
	svc, runner := newService(t)
	ctx := context.Background()

	mov, err := svc.StockIn(ctx, appinv.StockInInput{ItemID: "A", LocationID: "loc-1", Quantity: qty(10)})
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionIN, mov.Direction)
	assert.True(t, mov.ResultingQuantity.Equal(qty(10)), "la primera entrada crea la fila en cero y suma")
	assert.NotEmpty(t, mov.CorrelationID)
	assert.Equal(t, int64(1), mov.Seq)

	mov2, err := svc.StockIn(ctx, appinv.StockInInput{ItemID: "A", LocationID: "loc-1", Quantity: qty(5), Remarks: "reposición"})
	require.NoError(t, err)
	assert.True(t, mov2.ResultingQuantity.Equal(qty(15)))
	assert.Equal(t, int64(2), mov2.Seq, "la secuencia del libro es monotónica")

	assert.True(t, currentQty(t, svc, "A", "loc-1").Equal(qty(15)))
	rec := runner.snapshot().stock[key("A", "loc-1")]
	assert.Equal(t, int64(2), rec.Version, "cada mutación incrementa la versión")
}

func TestStockIn_Validaciones(t *testing.T) {
	svc, runner := newService(t)
	ctx := context.Background()

	_, err := svc.StockIn(ctx, appinv.StockInInput{ItemID: "A", LocationID: "loc-1", Quantity: qty(0)})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.StockIn(ctx, appinv.StockInInput{ItemID: "A", LocationID: "loc-1", Quantity: qty(-4)})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.StockIn(ctx, appinv.StockInInput{ItemID: "", LocationID: "loc-1", Quantity: qty(1)})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := qty(-1)
	_, err = svc.StockIn(ctx, appinv.StockInInput{ItemID: "A", LocationID: "loc-1", Quantity: qty(1), SafetyStock: &negative})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "el umbral de seguridad no puede ser negativo")

	assert.Zero(t, ledgerLen(runner), "ninguna validación fallida debe tocar el libro")
}

func TestStockIn_GuardaSafetyStockAlCrear(t *testing.T) {
	svc, runner := newService(t)
	safety := qty(5)

	_, err := svc.StockIn(context.Background(), appinv.StockInInput{
		ItemID: "A", LocationID: "loc-1", Quantity: qty(3), SafetyStock: &safety,
	})
	require.NoError(t, err)

	rec := runner.snapshot().stock[key("A", "loc-1")]
	assert.True(t, rec.SafetyStock.Equal(qty(5)))
}

// ──────────────────────────────────────────────────────────────────────────────
// StockOut con ubicación indicada
// ──────────────────────────────────────────────────────────────────────────────

func TestStockOut_ConUbicacion(t *testing.T) {
	svc, runner := newService(t)
	seed(t, runner, "A", "loc-1", 10)
	ctx := context.Background()

	movs, err := svc.StockOut(ctx, appinv.StockOutInput{ItemID: "A", Quantity: qty(4), LocationHint: "loc-1"})
	require.NoError(t, err)
	require.Len(t, movs, 1, "con hint suficiente no interviene el Allocator")
	assert.Equal(t, entity.DirectionOUT, movs[0].Direction)
	assert.True(t, movs[0].ResultingQuantity.Equal(qty(6)))
	assert.True(t, currentQty(t, svc, "A", "loc-1").Equal(qty(6)))
}

func TestStockOut_ConUbicacionInsuficiente(t *testing.T) {
	svc, runner := newService(t)
	seed(t, runner, "A", "loc-1", 3)
	seed(t, runner, "A", "loc-2", 50)

	// Con hint no hay fallback al reparto: la ubicación indicada debe alcanzar.
	_, err := svc.StockOut(context.Background(), appinv.StockOutInput{ItemID: "A", Quantity: qty(5), LocationHint: "loc-1"})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, currentQty(t, svc, "A", "loc-1").Equal(qty(3)), "el fallo no deja deducción parcial")
	assert.Zero(t, ledgerLen(runner))
}

func TestStockOut_UbicacionInexistente(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.StockOut(context.Background(), appinv.StockOutInput{ItemID: "A", Quantity: qty(1), LocationHint: "loc-9"})
	require.ErrorIs(t, err, domain.ErrNotFound, "salida contra una ubicación concreta sin fila es un error")
}

// ──────────────────────────────────────────────────────────────────────────────
// StockOut multi-ubicación (Allocator)
// ──────────────────────────────────────────────────────────────────────────────

// Escenario del diseño: (A, loc-1, 10) y (A, loc-2, 5); salida de 12 produce
// dos movimientos con el mismo correlation_id y saldos 0 y 3.
func TestStockOut_RepartoMultiUbicacion(t *testing.T) {
	svc, runner := newService(t)
	seed(t, runner, "A", "loc-1", 10)
	seed(t, runner, "A", "loc-2", 5)

	movs, err := svc.StockOut(context.Background(), appinv.StockOutInput{ItemID: "A", Quantity: qty(12)})
	require.NoError(t, err)
	require.Len(t, movs, 2)

	assert.Equal(t, "loc-1", movs[0].LocationID)
	assert.True(t, movs[0].Quantity.Equal(qty(10)))
	assert.True(t, movs[0].ResultingQuantity.Equal(qty(0)))

	assert.Equal(t, "loc-2", movs[1].LocationID)
	assert.True(t, movs[1].Quantity.Equal(qty(2)))
	assert.True(t, movs[1].ResultingQuantity.Equal(qty(3)))

	assert.Equal(t, movs[0].CorrelationID, movs[1].CorrelationID,
		"una salida lógica multi-ubicación comparte correlation_id")
	assert.Less(t, movs[0].Seq, movs[1].Seq)

	assert.True(t, currentQty(t, svc, "A", "loc-1").Equal(qty(0)))
	assert.True(t, currentQty(t, svc, "A", "loc-2").Equal(qty(3)))
}

// Escenario del diseño: salida de 20 con 15 en total falla sin efectos.
func TestStockOut_AgregadoInsuficienteEsIdempotente(t *testing.T) {
	svc, runner := newService(t)
	seed(t, runner, "A", "loc-1", 10)
	seed(t, runner, "A", "loc-2", 5)

	_, err := svc.StockOut(context.Background(), appinv.StockOutInput{ItemID: "A", Quantity: qty(20)})
	require.ErrorIs(t, err, domain.ErrInsufficientAggregateStock)

	assert.True(t, currentQty(t, svc, "A", "loc-1").Equal(qty(10)))
	assert.True(t, currentQty(t, svc, "A", "loc-2").Equal(qty(5)))
	assert.Zero(t, ledgerLen(runner), "el fallo no agrega movimientos")
}

func TestStockOut_UnaUbicacionSuficienteNoSeDivide(t *testing.T) {
	svc, runner := newService(t)
	seed(t, runner, "A", "loc-1", 10)
	seed(t, runner, "A", "loc-2", 5)

	movs, err := svc.StockOut(context.Background(), appinv.StockOutInput{ItemID: "A", Quantity: qty(8)})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "loc-1", movs[0].LocationID)
}

// Un escritor concurrente reduce loc-1 entre el snapshot y el bloqueo: la
// operación completa aborta como conflicto reintentable, sin aplicar nada.
func TestStockOut_ReVerificacionBajoBloqueo(t *testing.T) {
	svc, runner := newService(t)
	seed(t, runner, "A", "loc-1", 10)
	seed(t, runner, "A", "loc-2", 5)
	runner.beforeLock = func(s *memState) {
		s.stock[key("A", "loc-1")].Quantity = qty(1)
	}

	_, err := svc.StockOut(context.Background(), appinv.StockOutInput{ItemID: "A", Quantity: qty(12)})
	require.ErrorIs(t, err, domain.ErrStockChangedConcurrently)

	assert.True(t, currentQty(t, svc, "A", "loc-1").Equal(qty(10)), "rollback: el draft se descarta entero")
	assert.Zero(t, ledgerLen(runner))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de replay
// ──────────────────────────────────────────────────────────────────────────────

func TestReplay_SumaDeltasIgualaCantidadActual(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	steps := []struct {
		in       bool
		location string
		quantity int64
	}{
		{true, "loc-1", 10}, {true, "loc-2", 7}, {false, "loc-1", 3},
		{true, "loc-1", 4}, {false, "loc-2", 6}, {false, "loc-1", 5},
	}
	for _, s := range steps {
		var err error
		if s.in {
			_, err = svc.StockIn(ctx, appinv.StockInInput{ItemID: "A", LocationID: s.location, Quantity: qty(s.quantity)})
		} else {
			_, err = svc.StockOut(ctx, appinv.StockOutInput{ItemID: "A", Quantity: qty(s.quantity), LocationHint: s.location})
		}
		require.NoError(t, err)
	}

	for _, location := range []string{"loc-1", "loc-2"} {
		movements, err := svc.ReplayMovements(ctx, "A", location)
		require.NoError(t, err)

		running := decimal.Zero
		lastSeq := int64(0)
		for _, m := range movements {
			require.Greater(t, m.Seq, lastSeq, "replay en orden de secuencia estricto")
			lastSeq = m.Seq
			running = running.Add(m.SignedQuantity())
			assert.True(t, running.Equal(m.ResultingQuantity),
				"el saldo corrido debe coincidir con resulting_quantity en cada paso")
		}
		assert.True(t, running.Equal(currentQty(t, svc, "A", location)),
			"sumar los deltas con signo reproduce la cantidad actual")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos salidas concurrentes por la última unidad: exactamente una gana; la otra
// falla con stock insuficiente después de esperar el commit de la primera. La
// cantidad nunca queda negativa.
func TestStockOut_ConcurrenciaUltimaUnidad(t *testing.T) {
	svc, runner := newService(t)
	seed(t, runner, "A", "loc-1", 1)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StockOut(context.Background(), appinv.StockOutInput{
				ItemID: "A", Quantity: qty(1), LocationHint: "loc-1",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case err == domain.ErrInsufficientStock:
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una salida gana")
	assert.Equal(t, 1, insufficient)
	assert.True(t, currentQty(t, svc, "A", "loc-1").Equal(qty(0)), "nunca negativo")
	assert.Equal(t, 1, ledgerLen(runner))
}

func TestStockOut_ConcurrenciaMuchosEscritores(t *testing.T) {
	svc, runner := newService(t)
	seed(t, runner, "A", "loc-1", 10)

	const writers = 25
	var wg sync.WaitGroup
	results := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StockOut(context.Background(), appinv.StockOutInput{
				ItemID: "A", Quantity: qty(1), LocationHint: "loc-1",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 10, ok, "solo hay 10 unidades que ganar")
	assert.True(t, currentQty(t, svc, "A", "loc-1").Equal(qty(0)))
	assert.Equal(t, 10, ledgerLen(runner), "un movimiento por deducción confirmada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_ContextoCanceladoHaceRollback(t *testing.T) {
	svc, runner := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.StockIn(ctx, appinv.StockInInput{ItemID: "A", LocationID: "loc-1", Quantity: qty(5)})
	require.ErrorIs(t, err, context.Canceled)

	assert.True(t, currentQty(t, svc, "A", "loc-1").Equal(qty(0)), "nada visible tras el rollback")
	assert.Zero(t, ledgerLen(runner))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetQuantity_ClaveAusenteEsCero(t *testing.T) {
	svc, _ := newService(t)
	q, err := svc.GetQuantity(context.Background(), "A", "loc-1")
	require.NoError(t, err)
	assert.True(t, q.Equal(decimal.Zero))
}

func TestListMovements_PorItemPaginadoDescendente(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	// Cuatro movimientos del ítem A (seq 1..4) y uno de B que no debe aparecer.
	for _, loc := range []string{"loc-1", "loc-2", "loc-1", "loc-2"} {
		_, err := svc.StockIn(ctx, appinv.StockInInput{ItemID: "A", LocationID: loc, Quantity: qty(1)})
		require.NoError(t, err)
	}
	_, err := svc.StockIn(ctx, appinv.StockInInput{ItemID: "B", LocationID: "loc-1", Quantity: qty(1)})
	require.NoError(t, err)

	page1, err := svc.ListMovementsByItem(ctx, "A", nil, nil, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, int64(4), page1[0].Seq, "primero el más reciente")
	assert.Equal(t, int64(3), page1[1].Seq)

	page2, err := svc.ListMovementsByItem(ctx, "A", nil, nil, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, int64(2), page2[0].Seq)
	assert.Equal(t, int64(1), page2[1].Seq)

	_, err = svc.ListMovementsByItem(ctx, "", nil, nil, 10, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_PorUbicacionConRangoDeFechas(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, step := range []struct{ item, loc string }{
		{"A", "loc-1"}, {"A", "loc-2"}, {"B", "loc-1"},
	} {
		_, err := svc.StockIn(ctx, appinv.StockInInput{ItemID: step.item, LocationID: step.loc, Quantity: qty(1)})
		require.NoError(t, err)
	}

	movs, err := svc.ListMovementsByLocation(ctx, "loc-1", nil, nil, 100, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2, "solo los movimientos de loc-1, de ambos ítems")
	assert.Equal(t, "B", movs[0].ItemID)
	assert.Equal(t, "A", movs[1].ItemID)

	// Un rango completamente en el futuro no devuelve nada.
	future := time.Now().UTC().Add(24 * time.Hour)
	movs, err = svc.ListMovementsByLocation(ctx, "loc-1", &future, nil, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)

	_, err = svc.ListMovementsByLocation(ctx, "", nil, nil, 10, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
