// Package pdf implementa la generación del estado de comisiones mensual
// en PDF, el documento que se entrega al vendedor con su liquidación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Mes liquidado                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Brutas / Salud 4% / Reserva 2.5% / NETAS           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Pedido | Cliente | Factura | F. Pago | Comisión      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS: comisiones perdidas y pagos sin fecha              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/application/reportes"
)

var _ reportes.EstadoPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reportes.EstadoPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateEstadoPDF genera el PDF del estado de comisiones y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateEstadoPDF(estado *dto.EstadoComisionesMes) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de Comisiones "+estado.Mes, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(estado))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(resumenRow(estado))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(estado.Detalle) {
		m.AddRows(r)
	}

	if len(estado.Alertas) > 0 {
		m.AddRows(line.NewRow(3))
		for _, r := range alertasRows(estado.Alertas) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y mes + número de facturas (der).
func headerRow(estado *dto.EstadoComisionesMes) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("ESTADO DE COMISIONES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Liquidación mensual de ventas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Mes: "+estado.Mes, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New(fmt.Sprintf("Facturas cobradas: %d", estado.FacturasProcesadas), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// resumenRow: bloque de liquidación alineado a la derecha.
func resumenRow(estado *dto.EstadoComisionesMes) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	netasLabel := text.New("COMISIONES NETAS:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2,
	})
	netasValue := text.New("$"+formatMoney(estado.ComisionesNetas.StringFixed(0)), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1,
	})

	return row.New(32).Add(
		col.New(4),
		col.New(4).Add(
			label("Comisiones brutas:"),
			label("Descuento salud (4%):"),
			label("Reserva (2.5%):"),
			netasLabel,
		),
		col.New(4).Add(
			value("$"+formatMoney(estado.ComisionesBrutas.StringFixed(0))),
			value("-$"+formatMoney(estado.DescuentoSalud.StringFixed(0))),
			value("-$"+formatMoney(estado.DescuentoReserva.StringFixed(0))),
			netasValue,
		),
	)
}

// tableHeaderRow: cabecera de la tabla de facturas liquidadas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Pedido", 2, align.Left),
		h("Cliente", 4, align.Left),
		h("Factura", 2, align.Left),
		h("F. Pago", 2, align.Center),
		h("Comisión", 2, align.Right),
	)
}

// tableDetailRows: una fila por factura liquidada en el mes.
func tableDetailRows(detalle []dto.FacturaResponse) []core.Row {
	result := make([]core.Row, 0, len(detalle))
	for _, f := range detalle {
		comision := "$" + formatMoney(f.ComisionAjustada.StringFixed(0))
		textProps := props.Text{Size: 8, Top: 1}
		if f.ComisionPerdida {
			comision = "$0 (perdida)"
			textProps.Color = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(f.Pedido, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(4).Add(text.New(f.Cliente, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(f.Factura, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(f.FechaPagoReal, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(comision, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: textProps.Color,
			})),
		))
	}
	return result
}

// alertasRows: notas de calidad de datos y comisiones perdidas.
func alertasRows(alertas []string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ALERTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1,
			}),
		)),
	}
	for _, a := range alertas {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("• "+a, props.Text{Size: 7.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}
