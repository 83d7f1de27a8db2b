package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la frontera transaccional del motor de
// stock: o todos los bloqueos, deducciones y appends quedan visibles, o
// ninguno. Si el contexto se cancela antes del commit, se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// ReportGenerator genera la representación PDF del kardex de una clave
// (ítem, ubicación) a partir de sus movimientos confirmados.
type ReportGenerator interface {
	GenerateKardexPDF(ctx context.Context, itemID, locationID string, movements []*entity.Movement) ([]byte, error)
}
