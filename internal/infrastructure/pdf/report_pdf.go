// Package pdf genera el relatório mensal en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Relatório Mensal + período │ Titular + emisión     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: Compras / Produção / Desperdício / Total           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLAS: por categoria │ por fornecedor │ por motivo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAIXA: entradas / saídas / saldo                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 136, Green: 56, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator genera el PDF del relatório mensal.
type ReportGenerator struct {
	printer *message.Printer
	now     func() time.Time
}

// NewReportGenerator construye el generador; los importes se formatean en pt-BR.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{printer: message.NewPrinter(language.BrazilianPortuguese), now: time.Now}
}

// MonthlyReportPDF genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) MonthlyReportPDF(_ context.Context, rep *dto.MonthlyReportDTO, owner string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório Mensal "+rep.DateLabel, true).
		WithAuthor(owner, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(rep, owner))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(g.table("Gastos por Categoria", rep.ExpensesByCategory)...)
	m.AddRows(g.table("Gastos por Fornecedor", rep.ExpensesBySupplier)...)
	m.AddRows(g.table("Desperdício por Motivo", rep.WasteByReason)...)
	m.AddRows(g.table("Despesas Operacionais", rep.OperationalByCat)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.cashRow(rep.CashFlow))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReportGenerator) headerRow(rep *dto.MonthlyReportDTO, owner string) core.Row {
	period := fmt.Sprintf("%s a %s", rep.From.Format("02/01/2006"), rep.To.Format("02/01/2006"))
	return row.New(18).Add(
		col.New(7).Add(
			text.New("RELATÓRIO MENSAL", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(rep.DateLabel+"  ("+period+")", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(owner, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Emitido em "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: bloque de totales; el total combinado se destaca.
func (g *ReportGenerator) summaryRow(rep *dto.MonthlyReportDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(d decimal.Decimal) core.Component {
		return text.New(g.Money(d), props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Compras:"),
			label("Custo de produção:"),
			label("Desperdício:"),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2}),
		),
		col.New(3).Add(
			value(rep.TotalExpenses),
			value(rep.ProductionCost),
			value(rep.WasteCost),
			text.New(g.Money(rep.NetExpenses), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}),
		),
		col.New(3),
	)
}

// table título más una fila por grupo; nada si no hay grupos.
func (g *ReportGenerator) table(title string, totals []report.Total) []core.Row {
	if len(totals) == 0 {
		return nil
	}
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}))),
	}
	for _, t := range totals {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(t.Key, props.Text{Size: 8, Top: 1, Left: 2})),
			col.New(4).Add(text.New(g.Money(t.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *ReportGenerator) cashRow(c report.CashTotals) core.Row {
	cell := func(label string, d decimal.Decimal) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(g.Money(d), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Entradas", c.Inflow),
		cell("Saídas", c.Outflow),
		cell("Saldo", c.Balance),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Money formatea un importe como moneda brasileña. Ej: 1234.5 → "R$ 1.234,50".
func (g *ReportGenerator) Money(d decimal.Decimal) string {
	return g.printer.Sprintf("R$ %v", number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}
