package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos: el libro es de solo lectura en estos tests.
// ──────────────────────────────────────────────────────────────────────────────

type fixedMovementRepo struct {
	movements []*entity.Movement
}

func (r *fixedMovementRepo) Append(context.Context, *entity.Movement) (int64, error) {
	panic("solo lectura en estos tests")
}

func (r *fixedMovementRepo) Replay(_ context.Context, itemID, locationID string) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.movements {
		if m.ItemID == itemID && m.LocationID == locationID {
			list = append(list, m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
	return list, nil
}

func (r *fixedMovementRepo) ListByItem(_ context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.list(func(m *entity.Movement) bool { return m.ItemID == itemID }, from, to, limit, offset), nil
}

func (r *fixedMovementRepo) ListByLocation(_ context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.list(func(m *entity.Movement) bool { return m.LocationID == locationID }, from, to, limit, offset), nil
}

func (r *fixedMovementRepo) list(match func(*entity.Movement) bool, from, to *time.Time, limit, offset int) []*entity.Movement {
	var list []*entity.Movement
	for _, m := range r.movements {
		if !match(m) {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		list = append(list, m)
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

type noopStockRepo struct{}

func (noopStockRepo) Get(context.Context, string, string) (*entity.StockRecord, error) {
	return nil, nil
}
func (noopStockRepo) GetForUpdate(context.Context, string, string) (*entity.StockRecord, error) {
	return nil, nil
}
func (noopStockRepo) Insert(context.Context, *entity.StockRecord) error { return nil }
func (noopStockRepo) ApplyDelta(context.Context, string, string, decimal.Decimal) (*entity.StockRecord, error) {
	return nil, nil
}
func (noopStockRepo) ListByItem(context.Context, string) ([]*entity.StockRecord, error) {
	return nil, nil
}

type noopTxRunner struct{}

func (noopTxRunner) Run(_ context.Context, _ func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
) error) error {
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func day(d int) time.Time {
	return time.Date(2026, 1, d, 12, 0, 0, 0, time.UTC)
}

func fixedLedger() *fixedMovementRepo {
	mov := func(seq int64, item, loc string, createdAt time.Time) *entity.Movement {
		return &entity.Movement{
			Seq: seq, ItemID: item, LocationID: loc,
			Direction: entity.DirectionIN, Quantity: decimal.NewFromInt(1),
			ResultingQuantity: decimal.NewFromInt(seq),
			CorrelationID:     "corr", CreatedAt: createdAt,
		}
	}
	return &fixedMovementRepo{movements: []*entity.Movement{
		mov(1, "A", "loc-1", day(1)),
		mov(2, "A", "loc-2", day(2)),
		mov(3, "A", "loc-1", day(3)),
		mov(4, "B", "loc-1", day(4)),
	}}
}

func buildMovementsApp(repo *fixedMovementRepo) *fiber.App {
	service := inventory.NewStockMovementService(noopTxRunner{}, noopStockRepo{}, repo, nil)
	handler := apphttp.NewInventoryHandler(service, nil)

	app := fiber.New()
	app.Get("/api/inventory/items/:item_id/movements", handler.ListItemMovements)
	app.Get("/api/inventory/locations/:location_id/movements", handler.ListLocationMovements)
	return app
}

func getMovements(t *testing.T, app *fiber.App, path string) (int, []dto.MovementDTO) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	var body []dto.MovementDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func seqs(movements []dto.MovementDTO) []int64 {
	out := make([]int64, 0, len(movements))
	for _, m := range movements {
		out = append(out, m.Seq)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestListItemMovements_PaginadoDescendente(t *testing.T) {
	app := buildMovementsApp(fixedLedger())

	status, body := getMovements(t, app, "/api/inventory/items/A/movements?limit=2")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []int64{3, 2}, seqs(body), "primero el más reciente, solo el ítem pedido")

	status, body = getMovements(t, app, "/api/inventory/items/A/movements?limit=2&offset=2")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []int64{1}, seqs(body), "la última página devuelve el resto")
}

func TestListItemMovements_RangoDeFechas(t *testing.T) {
	app := buildMovementsApp(fixedLedger())

	status, body := getMovements(t, app, "/api/inventory/items/A/movements?from=2026-01-02&to=2026-01-02T23:59:59Z")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []int64{2}, seqs(body), "solo los movimientos dentro del rango")

	status, body = getMovements(t, app, "/api/inventory/items/A/movements?from=2027-01-01")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body, "un rango futuro no devuelve movimientos")
}

func TestListItemMovements_FechaInvalida(t *testing.T) {
	app := buildMovementsApp(fixedLedger())

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/items/A/movements?from=ayer", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_DATE", body.Code)
}

func TestListLocationMovements_CruzaItems(t *testing.T) {
	app := buildMovementsApp(fixedLedger())

	status, body := getMovements(t, app, "/api/inventory/locations/loc-1/movements")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []int64{4, 3, 1}, seqs(body), "todos los ítems de la ubicación, descendente")
}
