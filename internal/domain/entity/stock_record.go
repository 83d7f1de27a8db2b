package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa la existencia de un ítem en una ubicación concreta.
// Quantity nunca es negativa fuera de una transacción; Version se incrementa
// en cada mutación para detectar lost updates.
type StockRecord struct {
	ItemID      string
	LocationID  string
	Quantity    decimal.Decimal
	SafetyStock decimal.Decimal
	Version     int64
	UpdatedAt   time.Time
}
