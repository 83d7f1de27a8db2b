package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrInsufficientStock: la ubicación indicada no tiene cantidad suficiente.
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrInsufficientAggregateStock: la suma de todas las ubicaciones no alcanza
	// la cantidad solicitada; no se aplica ninguna deducción parcial.
	ErrInsufficientAggregateStock = errors.New("stock agregado insuficiente")
	// ErrStockChangedConcurrently: otro escritor modificó el stock entre el
	// snapshot y el bloqueo de filas. Reintentable: repetir la operación completa.
	ErrStockChangedConcurrently = errors.New("el stock cambió concurrentemente")
)
