package orderschema

// Rutas históricas de cada campo lógico, en orden de preferencia. La primera con valor gana.
// Formato: claves separadas por punto; "[n]" indexa un arreglo.
var (
	shippingStatusPaths = []string{"shipping.status", "shippingInfo.status", "shippingStatus", "fulfillment.stage"}
	paymentStatusPaths  = []string{"payment.status", "paymentStatus", "paymongo.status", "paymentInfo.status"}
	topStatusPaths      = []string{"status", "orderStatus"}

	sellerPaths = []string{"sellerId", "seller_id", "sellerIds[0]"}
	buyerPaths  = []string{"buyerId", "userId", "customerId"}

	subtotalPaths    = []string{"summary.subtotal", "subtotal", "subTotal"}
	shippingFeePaths = []string{"summary.shippingFee", "shippingFee", "shipping.fee", "deliveryFee"}
	discountPaths    = []string{"summary.discount", "discount", "discountAmount"}
	totalPaths       = []string{"summary.total", "totalAmount", "total", "grandTotal"}

	itemsPaths   = []string{"items", "orderItems", "cartItems"}
	historyPaths = []string{"statusHistory", "history", "timeline"}

	carrierPaths  = []string{"shipping.carrier", "shippingInfo.courier", "courier"}
	trackingPaths = []string{"shipping.trackingNumber", "shippingInfo.trackingNo", "trackingNumber"}
	labelPaths    = []string{"shipping.labelUrl", "shippingInfo.labelUrl", "shippingLabelUrl"}
	addressPaths  = []string{"shipping.address", "shippingAddress", "shippingInfo.address"}

	paymentRefPaths = []string{"payment.reference", "payment.transactionId", "paymongo.paymentIntentId", "paymentIntentId"}

	createdAtPaths = []string{"createdAt", "created_at", "dateOrdered"}
	updatedAtPaths = []string{"updatedAt", "updated_at"}

	// Campos de cada línea de pedido.
	itemProductPaths  = []string{"productId", "product_id", "id"}
	itemNamePaths     = []string{"name", "productName", "title"}
	itemQuantityPaths = []string{"quantity", "qty"}
	itemPricePaths    = []string{"unitPrice", "price", "unit_price"}

	// Campos de cada entrada del historial.
	historyStatusPaths = []string{"status", "state"}
	historyAtPaths     = []string{"at", "timestamp", "date"}
	historyNotePaths   = []string{"note", "message"}

	addressPartPaths = []string{"line1", "addressLine", "street", "barangay", "city", "province", "postalCode", "zip"}
)
