package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento.
const (
	DirectionIN  = "IN"  // entrada
	DirectionOUT = "OUT" // salida
)

// Movement es una entrada inmutable del libro de movimientos: un cambio de
// cantidad en una ubicación. Seq lo asigna el store de forma monotónica;
// una vez escrito el registro nunca se actualiza ni se borra.
// ResultingQuantity es la cantidad de la fila de stock después de aplicar
// el movimiento; CorrelationID agrupa las filas producidas por una misma
// salida multi-ubicación.
type Movement struct {
	Seq               int64
	ItemID            string
	LocationID        string
	Direction         string          // IN | OUT
	Quantity          decimal.Decimal // siempre > 0; la dirección da el signo
	ResultingQuantity decimal.Decimal
	CorrelationID     string
	Remarks           string
	CreatedAt         time.Time
}

// SignedQuantity devuelve la cantidad con signo (+IN, -OUT), útil para
// verificar el invariante de replay.
func (m *Movement) SignedQuantity() decimal.Decimal {
	if m.Direction == DirectionOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
