// Package pdf implementa la generación del kardex en PDF: el historial de
// movimientos de una clave (ítem, ubicación) en orden de secuencia.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: KARDEX DE INVENTARIO  │  Ítem + Ubicación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Seq | Fecha | Dir | Cantidad | Saldo | Observación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CIERRE: saldo final según el último movimiento             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appinventory "github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorOut     = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoKardexGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoKardexGenerator struct{}

var _ appinventory.ReportGenerator = (*MarotoKardexGenerator)(nil)

// NewMarotoKardexGenerator construye el generador.
func NewMarotoKardexGenerator() *MarotoKardexGenerator { return &MarotoKardexGenerator{} }

// GenerateKardexPDF genera el PDF y devuelve sus bytes. movements viene en
// orden de secuencia ascendente (salida de Replay).
func (g *MarotoKardexGenerator) GenerateKardexPDF(
	_ context.Context,
	itemID, locationID string,
	movements []*entity.Movement,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(itemID, locationID))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovementRows(movements) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(closingRow(movements))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) e identificación de la clave (der).
func headerRow(itemID, locationID string) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("KARDEX DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Movimientos confirmados en orden de secuencia", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Ítem: "+itemID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Ubicación: "+locationID, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Seq", 1, align.Center),
		h("Fecha", 3, align.Left),
		h("Dir", 1, align.Center),
		h("Cantidad", 2, align.Right),
		h("Saldo", 2, align.Right),
		h("Observación", 3, align.Left),
	)
}

// tableMovementRows: una fila por movimiento; las salidas en rojo.
func tableMovementRows(movements []*entity.Movement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mov := range movements {
		dirColor := colorPrimary
		signed := "+" + mov.Quantity.String()
		if mov.Direction == entity.DirectionOUT {
			dirColor = colorOut
			signed = "-" + mov.Quantity.String()
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", mov.Seq),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				mov.CreatedAt.Format("02/01/2006 15:04"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				mov.Direction,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: dirColor, Style: fontstyle.Bold},
			)),
			col.New(2).Add(text.New(
				signed,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: dirColor},
			)),
			col.New(2).Add(text.New(
				mov.ResultingQuantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				mov.Remarks,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// closingRow: saldo final según el último movimiento.
func closingRow(movements []*entity.Movement) core.Row {
	final := "0"
	if len(movements) > 0 {
		final = movements[len(movements)-1].ResultingQuantity.String()
	}
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("SALDO FINAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 1,
		})),
		col.New(2).Add(text.New(final, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 1,
		})),
	)
}
