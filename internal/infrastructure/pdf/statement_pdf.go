// Package pdf genera el extracto de horas de un usuario del banco de tiempo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Banco de Tiempo       │  Extracto + fecha emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TITULAR: Nombre + email + saldo actual                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Servicio | Papel | Horas | Estado           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Horas recibidas / prestadas / saldo               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
)

var _ ports.StatementRenderer = (*StatementPDF)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 110, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StatementPDF implementa ports.StatementRenderer usando Maroto v2.
type StatementPDF struct {
	title string
}

// NewStatementPDF construye el generador. title aparece en la cabecera y en los metadatos.
func NewStatementPDF(title string) *StatementPDF {
	if title == "" {
		title = "Banco de Tiempo"
	}
	return &StatementPDF{title: title}
}

// RenderStatement genera el PDF y devuelve sus bytes.
func (g *StatementPDF) RenderStatement(_ context.Context, st *ports.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extracto de horas - "+st.Usuario, true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(holderRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(st.Lineas) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin transacciones registradas.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(tableDetailRows(st.Lineas)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(st))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar extracto: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *StatementPDF) headerRow(st *ports.Statement) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(
			text.New("EXTRACTO DE HORAS", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+st.GeneradoEn.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func holderRow(st *ports.Statement) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("TITULAR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(st.Usuario, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(st.Email, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Saldo actual", props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorGray}),
			text.New(formatHoras(st.HorasSaldo), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6, Color: colorPrimary,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Servicio", 5, align.Left),
		h("Papel", 2, align.Center),
		h("Horas", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

// tableDetailRows una fila por línea del extracto.
func tableDetailRows(lineas []ports.StatementLine) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, l := range lineas {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.Fecha.Format("02/01/2006"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(truncate(l.Servicio, 60), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Rol, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Horas), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(l.Estado, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func totalsRow(st *ports.Statement) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(4).Add(
			label("Horas recibidas (confirmadas):"),
			label("Horas prestadas (confirmadas):"),
		),
		col.New(2).Add(
			value(formatHoras(st.HorasRecibidas)),
			value(formatHoras(st.HorasPrestadas)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatHoras "1 hora", "3 horas".
func formatHoras(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d hora", n)
	}
	return fmt.Sprintf("%d horas", n)
}

// truncate corta s a max runas añadiendo "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
