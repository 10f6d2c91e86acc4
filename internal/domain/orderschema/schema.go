// Package orderschema adapta los documentos de pedido escritos por distintas generaciones de
// esquema (y por integraciones de envío y pago) a entity.Order. Se ejecuta una sola vez en el
// borde de almacenamiento; el resto del sistema nunca lee claves históricas.
package orderschema

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/orderstatus"
)

// CurrentVersion versión del esquema canónico que escribe Encode.
const CurrentVersion = 2

// Decode construye el pedido desde un documento en cualquier versión de esquema.
// El estado canónico se deriva siempre de las señales; un valor almacenado se ignora.
func Decode(id string, doc map[string]any) (*entity.Order, error) {
	if doc == nil {
		return nil, fmt.Errorf("orderschema: documento vacío para pedido %s", id)
	}
	o := &entity.Order{
		ID:            id,
		BuyerID:       firstString(doc, buyerPaths),
		SellerID:      firstString(doc, sellerPaths),
		PaymentRef:    firstString(doc, paymentRefPaths),
		SchemaVersion: firstInt(doc, []string{"schemaVersion"}),
		CreatedAt:     firstTime(doc, createdAtPaths),
		UpdatedAt:     firstTime(doc, updatedAtPaths),
		Document:      doc,
		Signals: orderstatus.Signals{
			Shipping: firstString(doc, shippingStatusPaths),
			Payment:  firstString(doc, paymentStatusPaths),
			Top:      firstString(doc, topStatusPaths),
		}.Normalized(),
	}
	if o.SchemaVersion == 0 {
		o.SchemaVersion = 1
	}

	for _, raw := range firstList(doc, itemsPaths) {
		price, _ := firstDecimal(raw, itemPricePaths)
		qty := firstInt(raw, itemQuantityPaths)
		if qty == 0 {
			qty = 1
		}
		o.Items = append(o.Items, entity.OrderItem{
			ProductID: firstString(raw, itemProductPaths),
			Name:      firstString(raw, itemNamePaths),
			Quantity:  qty,
			UnitPrice: price,
		})
	}

	o.Summary.Subtotal, _ = firstDecimal(doc, subtotalPaths)
	o.Summary.ShippingFee, _ = firstDecimal(doc, shippingFeePaths)
	o.Summary.Discount, _ = firstDecimal(doc, discountPaths)
	total, ok := firstDecimal(doc, totalPaths)
	if !ok {
		if o.Summary.Subtotal.IsZero() {
			o.Summary.Subtotal = itemsSubtotal(o.Items)
		}
		total = o.Summary.Subtotal.Add(o.Summary.ShippingFee).Sub(o.Summary.Discount)
	}
	o.Summary.Total = total

	for _, raw := range firstList(doc, historyPaths) {
		status := firstString(raw, historyStatusPaths)
		if status == "" {
			continue
		}
		o.History = append(o.History, entity.StatusChange{
			Status: status,
			At:     firstTime(raw, historyAtPaths),
			Note:   firstString(raw, historyNotePaths),
		})
	}

	o.Shipping = entity.ShippingInfo{
		Carrier:        firstString(doc, carrierPaths),
		TrackingNumber: firstString(doc, trackingPaths),
		LabelURL:       firstString(doc, labelPaths),
	}
	for _, p := range addressPaths {
		if v, ok := lookup(doc, p); ok {
			o.Shipping.Address = formatAddress(v)
			break
		}
	}

	o.Status = orderstatus.Classify(o.Signals)
	return o, nil
}

func itemsSubtotal(items []entity.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total())
	}
	return sum
}

// Encode escribe el pedido en el esquema canónico (versión CurrentVersion), solo con las claves
// que el esquema conoce. Para reescribir un documento existente usar Canonicalize o Fields, que
// conservan el resto. Los montos van como string para no perder precisión.
func Encode(o *entity.Order) map[string]any {
	items := make([]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"productId": it.ProductID,
			"name":      it.Name,
			"quantity":  it.Quantity,
			"unitPrice": formatAmount(it.UnitPrice),
		})
	}
	history := make([]any, 0, len(o.History))
	for _, h := range o.History {
		entry := map[string]any{"status": h.Status}
		setIf(entry, "at", formatTime(h.At))
		if h.Note != "" {
			entry["note"] = h.Note
		}
		history = append(history, entry)
	}

	doc := map[string]any{
		"schemaVersion": CurrentVersion,
		"buyerId":       o.BuyerID,
		"sellerId":      o.SellerID,
		"items":         items,
		"summary": map[string]any{
			"subtotal":    formatAmount(o.Summary.Subtotal),
			"shippingFee": formatAmount(o.Summary.ShippingFee),
			"discount":    formatAmount(o.Summary.Discount),
			"total":       formatAmount(o.Summary.Total),
		},
		"statusHistory": history,
		"shipping": map[string]any{
			"status":         o.Signals.Shipping,
			"carrier":        o.Shipping.Carrier,
			"trackingNumber": o.Shipping.TrackingNumber,
			"labelUrl":       o.Shipping.LabelURL,
			"address":        o.Shipping.Address,
		},
		"payment": map[string]any{
			"status":    o.Signals.Payment,
			"reference": o.PaymentRef,
		},
		"status": o.Signals.Top,
	}
	setIf(doc, "createdAt", formatTime(o.CreatedAt))
	setIf(doc, "updatedAt", formatTime(o.UpdatedAt))
	return doc
}

func setIf(m map[string]any, key string, v any) {
	if v != nil {
		m[key] = v
	}
}

// Canonicalize reescribe un documento al esquema actual sin perder datos: las claves canónicas se
// superponen al documento original, las claves desconocidas se conservan y las claves históricas
// ya interpretadas se mueven bajo "legacy". changed es false si el documento ya estaba en forma
// canónica (comparación por JSON serializado).
func Canonicalize(id string, doc map[string]any) (out map[string]any, changed bool, err error) {
	o, err := Decode(id, doc)
	if err != nil {
		return nil, false, err
	}
	canon := Encode(o)
	ov := newOverlay(true)
	out = make(map[string]any, len(doc)+len(canon))
	for k, v := range doc {
		if k == legacyKey {
			continue
		}
		if _, isCanon := canon[k]; !isCanon && legacyRoots[k] {
			ov.stash(k, v)
			continue
		}
		out[k] = v
	}
	for k, v := range canon {
		out[k] = ov.key(doc, k, v)
	}
	if legacy := ov.merged(doc); legacy != nil {
		out[legacyKey] = legacy
	}

	before, err := json.Marshal(doc)
	if err != nil {
		return nil, false, fmt.Errorf("orderschema: serializar documento %s: %w", id, err)
	}
	after, err := json.Marshal(out)
	if err != nil {
		return nil, false, fmt.Errorf("orderschema: serializar documento canónico %s: %w", id, err)
	}
	return out, string(before) != string(after), nil
}

// Fields devuelve solo las claves canónicas indicadas, para actualizaciones parciales con merge.
// Cada valor se superpone al que tenía el documento leído, de modo que las subclaves que el
// esquema no conoce (p. ej. shipping.fee) sobreviven al merge de primer nivel.
func Fields(o *entity.Order, keys ...string) map[string]any {
	full := Encode(o)
	ov := newOverlay(false)
	out := make(map[string]any, len(keys)+1)
	for _, k := range keys {
		if v, ok := full[k]; ok {
			out[k] = ov.key(o.Document, k, v)
		}
	}
	if ov.dirty() {
		out[legacyKey] = ov.merged(o.Document)
	}
	return out
}

// Document devuelve el documento completo del pedido: la forma canónica superpuesta al documento
// leído, sin perder las claves que el esquema no conoce.
func Document(o *entity.Order) map[string]any {
	full := Encode(o)
	keys := make([]string, 0, len(full))
	for k := range full {
		keys = append(keys, k)
	}
	out := make(map[string]any, len(o.Document)+len(full))
	for k, v := range o.Document {
		out[k] = v
	}
	for k, v := range Fields(o, keys...) {
		out[k] = v
	}
	return out
}
