// Package pdf implementa la generación del reporte Z de cierre de caja.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Caja  │  ID sesión + estado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OPERADOR: nombre + apertura/cierre                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Hora | Tipo | Referencia | Monto                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Apertura / Esperado / Contado / Diferencia         │
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
	"github.com/shopspring/decimal"

	appcaisse "github.com/jhoicas/Caisse-api/internal/application/caisse"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
)

var _ appcaisse.ReportGenerator = (*SessionReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// SessionReportGenerator implementa caisse.ReportGenerator usando Maroto v2.
type SessionReportGenerator struct{}

// NewSessionReportGenerator construye el generador.
func NewSessionReportGenerator() *SessionReportGenerator { return &SessionReportGenerator{} }

// GenerateSessionReport genera el PDF del reporte de sesión y devuelve sus bytes.
func (g *SessionReportGenerator) GenerateSessionReport(
	_ context.Context,
	session *entity.CaisseSession,
	movements []*entity.CaisseMovement,
	operatorName string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Caja", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(session))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(operatorRow(session, operatorName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovementRows(movements) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(session))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y ID de sesión + estado (der).
func headerRow(session *entity.CaisseSession) core.Row {
	title := "REPORTE DE CAJA"
	if session.Status == entity.SessionStatusClosed {
		title = "REPORTE Z DE CIERRE"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sesión: "+session.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+session.Status, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Apertura: "+session.OpenedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// operatorRow: operador y, si la sesión está cerrada, hora de cierre.
func operatorRow(session *entity.CaisseSession, operatorName string) core.Row {
	closedInfo := "Sesión aún activa"
	if session.ClosedAt != nil {
		closedInfo = "Cierre: " + session.ClosedAt.Format("02/01/2006 15:04")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("OPERADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s", operatorName, closedInfo), props.Text{
				Size: 9, Top: 7,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de asientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Hora", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Referencia", 5, align.Left),
		h("Monto", 3, align.Right),
	)
}

// tableMovementRows: una fila por asiento, egresos en rojo.
func tableMovementRows(movements []*entity.CaisseMovement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, m := range movements {
		amountColor := (*props.Color)(nil)
		if m.Amount.IsNegative() {
			amountColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				m.CreatedAt.Format("15:04:05"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				m.Type,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				nonEmpty(m.Reference, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				"$"+m.Amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: amountColor},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(session *entity.CaisseSession) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	expected := session.CurrentAmount
	if session.ExpectedAmount != nil {
		expected = *session.ExpectedAmount
	}
	counted := "—"
	if session.ClosingAmount != nil {
		counted = "$" + session.ClosingAmount.StringFixed(2)
	}
	difference := decimal.Zero
	if session.Difference != nil {
		difference = *session.Difference
	}

	diffColor := colorPrimary
	if difference.IsNegative() {
		diffColor = colorRed
	}

	return row.New(30).Add(
		col.New(4),
		col.New(4).Add(
			label("Monto de apertura:"),
			label("Esperado en caja:"),
			label("Contado al cierre:"),
			text.New("DIFERENCIA:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: diffColor, Right: 2,
			}),
		),
		col.New(4).Add(
			value("$"+session.OpeningAmount.StringFixed(2)),
			value("$"+expected.StringFixed(2)),
			value(counted),
			text.New("$"+difference.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: diffColor, Right: 1,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
