package orderschema_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/orderschema"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/orderstatus"
)

// fromJSON simula la lectura de un documento JSONB (números como float64).
func fromJSON(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

const legacyV1 = `{
	"userId": "buyer-1",
	"sellerIds": ["seller-9"],
	"orderStatus": "Confirmed",
	"paymongo": {"status": "paid", "paymentIntentId": "pi_123"},
	"shippingInfo": {"courier": "JRS", "trackingNo": "TRK-1", "address": {"line1": "12 Rizal St", "city": "Cebu"}},
	"cartItems": [
		{"product_id": "p1", "productName": "Composite resin", "qty": 2, "price": "450.50"},
		{"id": "p2", "title": "Gloves", "price": 100}
	],
	"deliveryFee": 80,
	"totalAmount": "1081",
	"timeline": [{"state": "pending", "timestamp": 1700000000000}],
	"dateOrdered": {"_seconds": 1700000000, "_nanoseconds": 0}
}`

func TestDecode_EsquemaHistorico(t *testing.T) {
	o, err := orderschema.Decode("o-1", fromJSON(t, legacyV1))
	require.NoError(t, err)

	assert.Equal(t, "buyer-1", o.BuyerID)
	assert.Equal(t, "seller-9", o.SellerID)
	assert.Equal(t, "pi_123", o.PaymentRef)
	assert.Equal(t, 1, o.SchemaVersion)
	assert.Equal(t, orderstatus.Signals{Payment: "paid", Top: "confirmed"}, o.Signals)
	assert.Equal(t, orderstatus.ToShip, o.Status)

	require.Len(t, o.Items, 2)
	assert.Equal(t, "p1", o.Items[0].ProductID)
	assert.Equal(t, "Composite resin", o.Items[0].Name)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.True(t, o.Items[0].UnitPrice.Equal(decimal.RequireFromString("450.50")))
	assert.Equal(t, 1, o.Items[1].Quantity, "cantidad ausente cuenta como 1")

	assert.True(t, o.Summary.Total.Equal(decimal.NewFromInt(1081)))
	assert.True(t, o.Summary.ShippingFee.Equal(decimal.NewFromInt(80)))

	assert.Equal(t, "JRS", o.Shipping.Carrier)
	assert.Equal(t, "TRK-1", o.Shipping.TrackingNumber)
	assert.Equal(t, "12 Rizal St, Cebu", o.Shipping.Address)

	require.Len(t, o.History, 1)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), o.History[0].At)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), o.CreatedAt)
}

func TestDecode_IgnoraEstadoCanonicoAlmacenado(t *testing.T) {
	doc := fromJSON(t, `{"status": "pending", "canonicalStatus": "completed", "shipping": {"status": "in_transit"}}`)
	o, err := orderschema.Decode("o-2", doc)
	require.NoError(t, err)
	assert.Equal(t, orderstatus.Processing, o.Status)
}

func TestDecode_TotalCalculadoSiFalta(t *testing.T) {
	doc := fromJSON(t, `{"items": [{"productId": "p", "quantity": 3, "unitPrice": "10"}], "shippingFee": 5, "discount": 2}`)
	o, err := orderschema.Decode("o-3", doc)
	require.NoError(t, err)
	assert.True(t, o.Summary.Subtotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, o.Summary.Total.Equal(decimal.NewFromInt(33)))
}

func TestDecode_DocumentoNil(t *testing.T) {
	_, err := orderschema.Decode("o-4", nil)
	assert.Error(t, err)
}

func TestCanonicalize_EsIdempotente(t *testing.T) {
	out, changed, err := orderschema.Canonicalize("o-1", fromJSON(t, legacyV1))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, orderschema.CurrentVersion, out["schemaVersion"])

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	again, changed, err := orderschema.Canonicalize("o-1", fromJSON(t, string(raw)))
	require.NoError(t, err)
	assert.False(t, changed, "un documento canónico no debe reescribirse")

	o, err := orderschema.Decode("o-1", again)
	require.NoError(t, err)
	assert.Equal(t, 2, o.SchemaVersion)
	assert.Equal(t, orderstatus.ToShip, o.Status)
	assert.Equal(t, "seller-9", o.SellerID)
}

func TestFields_MergeConservaLasDemasClaves(t *testing.T) {
	doc := fromJSON(t, legacyV1)
	o, err := orderschema.Decode("o-1", doc)
	require.NoError(t, err)

	o.Signals.Top = "cancelled"
	patch := orderschema.Fields(o, "status", "statusHistory", "nope")
	require.Len(t, patch, 2)

	for k, v := range patch {
		doc[k] = v
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	merged, err := orderschema.Decode("o-1", fromJSON(t, string(raw)))
	require.NoError(t, err)

	// Pago "paid" gana sobre la cancelación en la precedencia.
	assert.Equal(t, orderstatus.ToShip, merged.Status)
	assert.Equal(t, "cancelled", merged.Signals.Top)
	assert.Equal(t, "seller-9", merged.SellerID)
	assert.True(t, merged.Summary.Total.Equal(decimal.NewFromInt(1081)))
}

func TestCanonicalize_NoPierdeDatos(t *testing.T) {
	doc := fromJSON(t, `{
		"sellerId": "s-1",
		"status": "pending",
		"buyerName": "Dra. Reyes",
		"notes": "entregar en la tarde",
		"voucherCode": "DENT10",
		"items": [{"productId": "p1", "price": "10.125", "sku": "RES-A2"}, "renglón suelto"],
		"totalAmount": "10.125",
		"shipping": {"fee": 80}
	}`)

	out, changed, err := orderschema.Canonicalize("o-1", doc)
	require.NoError(t, err)
	assert.True(t, changed)

	for _, k := range []string{"buyerName", "notes", "voucherCode"} {
		assert.Equal(t, doc[k], out[k], "clave desconocida %q", k)
	}

	items, ok := out["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "RES-A2", first["sku"])
	assert.Equal(t, "10.125", first["price"])
	assert.Equal(t, "10.125", first["unitPrice"], "los montos no se redondean")
	assert.Equal(t, "renglón suelto", items[1])

	summary, ok := out["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "10.125", summary["total"])
	assert.Equal(t, float64(80), out["shipping"].(map[string]any)["fee"])

	legacy, ok := out["legacy"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "10.125", legacy["totalAmount"], "la clave histórica interpretada pasa a legacy")
	_, stillTop := out["totalAmount"]
	assert.False(t, stillTop)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	again, changed, err := orderschema.Canonicalize("o-1", fromJSON(t, string(raw)))
	require.NoError(t, err)
	assert.False(t, changed)

	o, err := orderschema.Decode("o-1", again)
	require.NoError(t, err)
	assert.True(t, o.Summary.Total.Equal(decimal.RequireFromString("10.125")))
	assert.True(t, o.Summary.ShippingFee.Equal(decimal.NewFromInt(80)))
	require.Len(t, o.Items, 1)
	assert.True(t, o.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.125")))
}

func TestCanonicalize_ValorDesplazadoVaALegacy(t *testing.T) {
	doc := fromJSON(t, `{"sellerId": "s-1", "payment": "gcash", "paymentStatus": "paid", "createdAt": "2024-03-01"}`)

	out, _, err := orderschema.Canonicalize("o-1", doc)
	require.NoError(t, err)

	legacy, ok := out["legacy"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gcash", legacy["payment"])
	assert.Equal(t, "paid", legacy["paymentStatus"])
	assert.Equal(t, "2024-03-01", out["createdAt"], "fecha equivalente conserva el formato original")

	o, err := orderschema.Decode("o-1", out)
	require.NoError(t, err)
	assert.Equal(t, orderstatus.ToShip, o.Status)
}
