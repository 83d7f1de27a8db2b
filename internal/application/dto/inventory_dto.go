package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockInRequest body para POST /api/inventory/stock-in.
// safety_stock es opcional y solo se aplica al crear la fila de stock.
type StockInRequest struct {
	ItemID      string           `json:"item_id"`
	LocationID  string           `json:"location_id"`
	Quantity    decimal.Decimal  `json:"quantity"`
	SafetyStock *decimal.Decimal `json:"safety_stock,omitempty"`
	Remarks     string           `json:"remarks,omitempty"`
}

// StockOutRequest body para POST /api/inventory/stock-out.
// location_id es opcional: vacío reparte entre ubicaciones vía Allocator.
type StockOutRequest struct {
	ItemID     string          `json:"item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	LocationID string          `json:"location_id,omitempty"`
	Remarks    string          `json:"remarks,omitempty"`
}

// MovementDTO representación de un movimiento del libro.
type MovementDTO struct {
	Seq               int64           `json:"seq"`
	ItemID            string          `json:"item_id"`
	LocationID        string          `json:"location_id"`
	Direction         string          `json:"direction"`
	Quantity          decimal.Decimal `json:"quantity"`
	ResultingQuantity decimal.Decimal `json:"resulting_quantity"`
	CorrelationID     string          `json:"correlation_id"`
	Remarks           string          `json:"remarks,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// NewMovementDTO convierte la entidad al DTO de respuesta.
func NewMovementDTO(m *entity.Movement) MovementDTO {
	return MovementDTO{
		Seq:               m.Seq,
		ItemID:            m.ItemID,
		LocationID:        m.LocationID,
		Direction:         m.Direction,
		Quantity:          m.Quantity,
		ResultingQuantity: m.ResultingQuantity,
		CorrelationID:     m.CorrelationID,
		Remarks:           m.Remarks,
		CreatedAt:         m.CreatedAt,
	}
}

// NewMovementDTOs convierte una lista de movimientos.
func NewMovementDTOs(movements []*entity.Movement) []MovementDTO {
	out := make([]MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, NewMovementDTO(m))
	}
	return out
}

// QuantityResponse respuesta de GET .../quantity.
type QuantityResponse struct {
	ItemID     string          `json:"item_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// LocationQuantityDTO detalle de existencia por ubicación.
type LocationQuantityDTO struct {
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ItemOverviewDTO resumen de existencias de un ítem.
type ItemOverviewDTO struct {
	ItemID        string                `json:"item_id"`
	TotalQuantity decimal.Decimal       `json:"total_quantity"`
	Locations     []LocationQuantityDTO `json:"locations"`
}

// LowStockAlertDTO alerta de ítem por debajo de su umbral de seguridad.
type LowStockAlertDTO struct {
	ItemID          string                `json:"item_id"`
	CurrentStock    decimal.Decimal       `json:"current_stock"`
	SafetyStock     decimal.Decimal       `json:"safety_stock"`
	LocationDetails []LocationQuantityDTO `json:"location_details"`
}
