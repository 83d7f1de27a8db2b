package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// KardexUseCase genera el kardex en PDF de una clave (ítem, ubicación):
// su historial de movimientos confirmados en orden de secuencia.
type KardexUseCase struct {
	movRepo   repository.MovementRepository
	generator ReportGenerator
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(movRepo repository.MovementRepository, generator ReportGenerator) *KardexUseCase {
	return &KardexUseCase{movRepo: movRepo, generator: generator}
}

// GenerateKardexPDF devuelve los bytes del PDF. Una clave sin movimientos
// devuelve ErrNotFound (no hay kardex que mostrar).
func (uc *KardexUseCase) GenerateKardexPDF(ctx context.Context, itemID, locationID string) ([]byte, error) {
	if itemID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	movements, err := uc.movRepo.Replay(ctx, itemID, locationID)
	if err != nil {
		return nil, err
	}
	if len(movements) == 0 {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateKardexPDF(ctx, itemID, locationID, movements)
}
