package ports

import "github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"

// OrderReportExporter genera el reporte de pedidos (XLSX).
type OrderReportExporter interface {
	ExportOrders(orders []*entity.Order) ([]byte, error)
}

// WithdrawalStatementRenderer genera el comprobante de un retiro (PDF).
type WithdrawalStatementRenderer interface {
	RenderStatement(w *entity.Withdrawal, seller *entity.Seller) ([]byte, error)
}
