// Package pdf genera el comprobante de un retiro de saldo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + ID seller  │  N° retiro + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUENTA DESTINO: Banco / Titular / N° cuenta                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Estado | Referencia de pago | Monto               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del retiro + leyenda                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/christoferrrnewtech/dentpal-api/internal/application/ports"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
)

var _ ports.WithdrawalStatementRenderer = (*StatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 130}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorFailed  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// StatementGenerator implementa ports.WithdrawalStatementRenderer con Maroto v2.
type StatementGenerator struct{}

func NewStatementGenerator() *StatementGenerator { return &StatementGenerator{} }

// RenderStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) RenderStatement(w *entity.Withdrawal, seller *entity.Seller) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de retiro", true).
		WithAuthor(nonEmpty(seller.ShopName, "DentPal"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(w, seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(accountRow(w))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailHeaderRow())
	m.AddRows(detailRow(w))
	if w.Status == entity.WithdrawalFailed && w.FailureReason != "" {
		m.AddRows(failureRow(w.FailureReason))
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(w))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(w *entity.Withdrawal, seller *entity.Seller) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(seller.ShopName, "Seller"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Seller ID: "+seller.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE RETIRO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(w.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Solicitado: "+w.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func accountRow(w *entity.Withdrawal) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CUENTA DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(w.AccountName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Banco: %s   |   N° cuenta: %s",
				nonEmpty(w.BankName, "—"),
				maskAccount(w.AccountNumber),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func detailHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Estado", 3, align.Left),
		h("Referencia de pago", 5, align.Left),
		h("Monto", 4, align.Right),
	)
}

func detailRow(w *entity.Withdrawal) core.Row {
	return row.New(9).Add(
		col.New(3).Add(text.New(strings.ToUpper(w.Status), props.Text{Size: 9, Top: 2, Left: 1})),
		col.New(5).Add(text.New(nonEmpty(w.PayoutRef, "—"), props.Text{Size: 9, Top: 2, Left: 1})),
		col.New(4).Add(text.New(w.Currency+" "+formatMoney(w.Amount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Right: 1,
		})),
	)
}

func failureRow(reason string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Motivo del rechazo: "+reason, props.Text{Size: 8, Top: 3, Color: colorFailed}),
	))
}

func footerRow(w *entity.Withdrawal) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(w.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Código de verificación del retiro.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Actualizado: "+w.UpdatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 10, Left: 3, Color: colorGray,
			}),
			text.New("Este comprobante no es una factura.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 20, Left: 3, Color: colorPrimary,
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

// formatMoney separa miles con coma y deja dos decimales. Ej: 1500 → "1,500.00".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}

// maskAccount deja visibles los últimos 4 dígitos.
func maskAccount(s string) string {
	if len(s) <= 4 {
		return nonEmpty(s, "—")
	}
	return strings.Repeat("•", len(s)-4) + s[len(s)-4:]
}

func shortID(id string) string {
	if len(id) > 8 {
		return "#" + strings.ToUpper(id[:8])
	}
	return "#" + strings.ToUpper(id)
}
