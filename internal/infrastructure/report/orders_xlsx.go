// Package report exporta listados del dashboard a hojas de cálculo.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/ports"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
)

var _ ports.OrderReportExporter = (*OrdersXLSX)(nil)

const ordersSheet = "Orders"

// OrdersHeader columnas de la exportación de pedidos.
var OrdersHeader = []string{
	"Order ID",
	"Seller ID",
	"Buyer ID",
	"Status",
	"Items",
	"Subtotal",
	"Shipping Fee",
	"Discount",
	"Total",
	"Carrier",
	"Tracking Number",
	"Payment Ref",
	"Created At",
}

var ordersColumnWidths = []float64{38, 38, 38, 16, 40, 12, 12, 12, 12, 14, 20, 24, 20}

// OrdersXLSX implementa ports.OrderReportExporter con excelize.
type OrdersXLSX struct{}

func NewOrdersXLSX() *OrdersXLSX { return &OrdersXLSX{} }

// ExportOrders escribe una fila por pedido con su estado canónico.
func (e *OrdersXLSX) ExportOrders(orders []*entity.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ordersSheet)
	if err != nil {
		return nil, fmt.Errorf("report: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("report: eliminar hoja por defecto: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#006E82"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("report: estilo de cabecera: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("report: estilo de montos: %w", err)
	}

	if err := f.SetSheetRow(ordersSheet, "A1", &OrdersHeader); err != nil {
		return nil, fmt.Errorf("report: escribir cabecera: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(OrdersHeader), 1)
	if err := f.SetCellStyle(ordersSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("report: aplicar estilo de cabecera: %w", err)
	}
	for i, w := range ordersColumnWidths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(ordersSheet, name, name, w); err != nil {
			return nil, fmt.Errorf("report: ancho de columna %s: %w", name, err)
		}
	}

	for i, o := range orders {
		r := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, r)
		values := []any{
			o.ID,
			o.SellerID,
			o.BuyerID,
			string(o.Status),
			itemsLabel(o.Items),
			o.Summary.Subtotal.InexactFloat64(),
			o.Summary.ShippingFee.InexactFloat64(),
			o.Summary.Discount.InexactFloat64(),
			o.Summary.Total.InexactFloat64(),
			o.Shipping.Carrier,
			o.Shipping.TrackingNumber,
			o.PaymentRef,
			createdAt(o),
		}
		if err := f.SetSheetRow(ordersSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("report: escribir fila %d: %w", r, err)
		}
		from, _ := excelize.CoordinatesToCellName(6, r)
		to, _ := excelize.CoordinatesToCellName(9, r)
		if err := f.SetCellStyle(ordersSheet, from, to, moneyStyle); err != nil {
			return nil, fmt.Errorf("report: estilo de fila %d: %w", r, err)
		}
	}

	if err := f.SetPanes(ordersSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("report: fijar cabecera: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("report: serializar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// itemsLabel "2x Brackets; 1x Composite".
func itemsLabel(items []entity.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, "; ")
}

func createdAt(o *entity.Order) string {
	if o.CreatedAt.IsZero() {
		return ""
	}
	return o.CreatedAt.UTC().Format("2006-01-02 15:04")
}
