// Package inventory contiene la lógica de dominio pura del motor de stock:
// decisiones sin efectos secundarios ni I/O, testeables de forma aislada.
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Candidate es una ubicación candidata para una salida: su ID y la cantidad
// disponible observada en el snapshot (sin bloquear).
type Candidate struct {
	LocationID string
	Available  decimal.Decimal
}

// Allocation es una porción del plan: cuánto deducir de una ubicación.
type Allocation struct {
	LocationID string
	Quantity   decimal.Decimal
}

// Plan es el resultado del Allocator: una secuencia ordenada de deducciones
// cuyas cantidades suman exactamente lo solicitado. Es transitorio: se consume
// dentro de la misma transacción que lo produjo y nunca se persiste.
type Plan struct {
	Allocations []Allocation
}

// Total devuelve la suma de las cantidades del plan.
func (p Plan) Total() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		total = total.Add(a.Quantity)
	}
	return total
}

// Allocate decide cómo repartir una salida de `requested` unidades entre las
// ubicaciones candidatas, consumiendo en el orden recibido (orden = prioridad).
// Toma min(restante, disponible) de cada candidata hasta completar lo pedido.
// Las candidatas sin disponible se saltan (no hay que bloquearlas). Si una sola
// candidata alcanza, el plan tiene una única entrada. Si la suma de disponibles
// no alcanza, devuelve ErrInsufficientAggregateStock sin plan parcial.
//
// Es determinista: con la misma entrada produce siempre el mismo plan. El
// orden de prioridad lo decide el caller (ver CandidateOrder).
func Allocate(requested decimal.Decimal, candidates []Candidate) (Plan, error) {
	if !requested.GreaterThan(decimal.Zero) {
		return Plan{}, domain.ErrInvalidQuantity
	}

	total := decimal.Zero
	for _, c := range candidates {
		total = total.Add(c.Available)
	}
	if total.LessThan(requested) {
		return Plan{}, domain.ErrInsufficientAggregateStock
	}

	remaining := requested
	plan := Plan{Allocations: make([]Allocation, 0, len(candidates))}
	for _, c := range candidates {
		if remaining.IsZero() {
			break
		}
		if !c.Available.GreaterThan(decimal.Zero) {
			continue
		}
		take := decimal.Min(remaining, c.Available)
		plan.Allocations = append(plan.Allocations, Allocation{
			LocationID: c.LocationID,
			Quantity:   take,
		})
		remaining = remaining.Sub(take)
	}
	return plan, nil
}

// CandidateOrder define la estrategia de prioridad entre ubicaciones cuando la
// salida no indica ubicación. Debe ser estable y reproducible.
type CandidateOrder func([]Candidate)

// OrderByLocationID ordena las candidatas por LocationID ascendente. Es el
// orden por defecto y coincide con el orden de bloqueo de filas, lo que evita
// deadlocks entre salidas multi-ubicación concurrentes.
func OrderByLocationID(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].LocationID < candidates[j].LocationID
	})
}
