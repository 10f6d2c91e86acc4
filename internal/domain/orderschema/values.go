package orderschema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// lookup resuelve una ruta "a.b[0].c" sobre un documento JSON decodificado.
func lookup(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		key, idx, hasIdx := splitIndex(part)
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil, false
		}
		if hasIdx {
			arr, ok := cur.([]any)
			if !ok || idx >= len(arr) {
				return nil, false
			}
			cur = arr[idx]
		}
	}
	return cur, cur != nil
}

func splitIndex(part string) (key string, idx int, ok bool) {
	open := strings.IndexByte(part, '[')
	if open < 0 || !strings.HasSuffix(part, "]") {
		return part, 0, false
	}
	n, err := strconv.Atoi(part[open+1 : len(part)-1])
	if err != nil || n < 0 {
		return part, 0, false
	}
	return part[:open], n, true
}

// firstString devuelve el primer valor no vacío entre las rutas.
func firstString(doc map[string]any, paths []string) string {
	for _, p := range paths {
		if v, ok := lookup(doc, p); ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstDecimal(doc map[string]any, paths []string) (decimal.Decimal, bool) {
	for _, p := range paths {
		if v, ok := lookup(doc, p); ok {
			if d, ok := asDecimal(v); ok {
				return d, true
			}
		}
	}
	return decimal.Zero, false
}

func firstInt(doc map[string]any, paths []string) int {
	if d, ok := firstDecimal(doc, paths); ok {
		return int(d.IntPart())
	}
	return 0
}

func firstTime(doc map[string]any, paths []string) time.Time {
	for _, p := range paths {
		if v, ok := lookup(doc, p); ok {
			if t, ok := asTime(v); ok {
				return t
			}
		}
	}
	return time.Time{}
}

func firstList(doc map[string]any, paths []string) []map[string]any {
	arr, _ := firstRawList(doc, paths)
	if arr == nil {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// firstRawList devuelve el primer arreglo entre las rutas y la ruta donde se encontró.
func firstRawList(doc map[string]any, paths []string) ([]any, string) {
	for _, p := range paths {
		v, ok := lookup(doc, p)
		if !ok {
			continue
		}
		if arr, ok := v.([]any); ok {
			return arr, p
		}
	}
	return nil, ""
}

func asString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

func asDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(x, ",", ""))
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	}
	return decimal.Zero, false
}

// asTime acepta RFC 3339, segundos o milisegundos unix, y timestamps exportados
// como objeto {"_seconds": n} o {"seconds": n}.
func asTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.UTC(), true
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t.UTC(), true
		}
		return time.Time{}, false
	case map[string]any:
		for _, k := range []string{"_seconds", "seconds"} {
			if sec, ok := asDecimal(x[k]); ok {
				return time.Unix(sec.IntPart(), 0).UTC(), true
			}
		}
		return time.Time{}, false
	}
	d, ok := asDecimal(v)
	if !ok || d.IsZero() {
		return time.Time{}, false
	}
	n := d.IntPart()
	if n > 1_000_000_000_000 {
		return time.UnixMilli(n).UTC(), true
	}
	return time.Unix(n, 0).UTC(), true
}

func formatAddress(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case map[string]any:
		parts := make([]string, 0, len(addressPartPaths))
		for _, k := range addressPartPaths {
			if s := asString(x[k]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

// formatAmount escribe el monto como string con al menos dos decimales y sin redondear.
func formatAmount(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 2 {
		places = 2
	}
	return d.StringFixed(places)
}

func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}
