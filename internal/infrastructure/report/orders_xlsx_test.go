package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/orderstatus"
)

func TestExportOrders_UnaFilaPorPedido(t *testing.T) {
	orders := []*entity.Order{
		{
			ID: "o-1", SellerID: "s-1", BuyerID: "b-1", Status: orderstatus.ToShip,
			Items: []entity.OrderItem{
				{Name: "Brackets", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
				{Name: "Composite", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
			},
			Summary:   entity.OrderSummary{Subtotal: decimal.NewFromInt(250), Total: decimal.NewFromInt(1250)},
			CreatedAt: time.Date(2026, 2, 3, 4, 5, 0, 0, time.UTC),
		},
		{ID: "o-2", SellerID: "s-2", Status: orderstatus.Pending},
	}

	out, err := NewOrdersXLSX().ExportOrders(orders)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ordersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, OrdersHeader, rows[0])
	assert.Equal(t, "o-1", rows[1][0])
	assert.Equal(t, "to-ship", rows[1][3])
	assert.Equal(t, "2x Brackets; 1x Composite", rows[1][4])
	assert.Equal(t, "2026-02-03 04:05", rows[1][12])
	assert.Equal(t, "pending", rows[2][3])

	total, err := f.GetCellValue(ordersSheet, "I2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1250", total)
}

func TestExportOrders_SinPedidosSoloCabecera(t *testing.T) {
	out, err := NewOrdersXLSX().ExportOrders(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ordersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, []string{ordersSheet}, f.GetSheetList())
}
