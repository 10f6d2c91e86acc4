package orderschema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// legacyKey clave donde se guardan los valores históricos que la forma canónica desplaza.
const legacyKey = "legacy"

// legacyRoots claves de primer nivel de las rutas históricas.
var legacyRoots = rootsOf(
	shippingStatusPaths, paymentStatusPaths, topStatusPaths, sellerPaths, buyerPaths,
	subtotalPaths, shippingFeePaths, discountPaths, totalPaths, itemsPaths, historyPaths,
	carrierPaths, trackingPaths, labelPaths, addressPaths, paymentRefPaths,
	createdAtPaths, updatedAtPaths,
)

func rootsOf(lists ...[]string) map[string]bool {
	out := map[string]bool{}
	for _, paths := range lists {
		for _, p := range paths {
			if i := strings.IndexAny(p, ".["); i >= 0 {
				p = p[:i]
			}
			out[p] = true
		}
	}
	return out
}

// listSource de dónde lee Decode cada arreglo canónico y qué elementos convierte.
type listSource struct {
	paths []string
	take  func(map[string]any) bool
}

var listSources = map[string]listSource{
	"items": {
		paths: itemsPaths,
		take:  func(map[string]any) bool { return true },
	},
	"statusHistory": {
		paths: historyPaths,
		take:  func(m map[string]any) bool { return firstString(m, historyStatusPaths) != "" },
	},
}

// overlay superpone valores canónicos a los del documento. Lo que se pisa con otra forma
// (objeto por escalar, o al revés) se guarda en legacy bajo su ruta; con keepReplaced también
// los escalares que cambian de valor.
type overlay struct {
	keepReplaced bool
	legacy       map[string]any
}

func newOverlay(keepReplaced bool) *overlay {
	return &overlay{keepReplaced: keepReplaced, legacy: map[string]any{}}
}

func (ov *overlay) dirty() bool { return len(ov.legacy) > 0 }

func (ov *overlay) stash(path string, v any) {
	if v == nil {
		return
	}
	ov.legacy[path] = v
}

// merged legacy del documento más lo desplazado en esta pasada. Un valor ya guardado nunca se
// pisa: el nuevo va a "<ruta>.<n>". nil si no hay nada que guardar.
func (ov *overlay) merged(doc map[string]any) map[string]any {
	prev, _ := doc[legacyKey].(map[string]any)
	if !ov.dirty() {
		if len(prev) == 0 {
			return nil
		}
		return prev
	}
	out := make(map[string]any, len(prev)+len(ov.legacy))
	for k, v := range prev {
		out[k] = v
	}
	for k, v := range ov.legacy {
		key := k
		for n := 1; ; n++ {
			old, taken := out[key]
			if !taken {
				break
			}
			if equivalent(old, v) {
				key = ""
				break
			}
			key = k + "." + strconv.Itoa(n)
		}
		if key != "" {
			out[key] = v
		}
	}
	return out
}

// key valor final de la clave canónica k sobre el documento.
func (ov *overlay) key(doc map[string]any, k string, canon any) any {
	src := doc[k]
	if ls, ok := listSources[k]; ok {
		list, path := firstRawList(doc, ls.paths)
		if path != k {
			ov.stash(k, src)
		}
		items, _ := canon.([]any)
		return ov.list(k, list, items, ls.take)
	}
	return ov.value(k, src, canon)
}

// list alinea cada elemento canónico con el elemento de origen que lo produjo. Los elementos que
// Decode no interpreta quedan en su lugar; los canónicos nuevos van al final.
func (ov *overlay) list(path string, src, canon []any, take func(map[string]any) bool) []any {
	out := make([]any, 0, len(src)+len(canon))
	next := 0
	for i, el := range src {
		m, ok := el.(map[string]any)
		if !ok || !take(m) {
			out = append(out, el)
			continue
		}
		at := fmt.Sprintf("%s[%d]", path, i)
		if next >= len(canon) {
			ov.stash(at, el)
			continue
		}
		out = append(out, ov.value(at, m, canon[next]))
		next++
	}
	return append(out, canon[next:]...)
}

func (ov *overlay) value(path string, src, canon any) any {
	if src == nil {
		return canon
	}
	srcMap, srcIsMap := src.(map[string]any)
	canonMap, canonIsMap := canon.(map[string]any)
	_, srcIsList := src.([]any)
	switch {
	case srcIsMap && canonIsMap:
		out := make(map[string]any, len(srcMap)+len(canonMap))
		for k, v := range srcMap {
			out[k] = v
		}
		for k, v := range canonMap {
			out[k] = ov.value(path+"."+k, srcMap[k], v)
		}
		return out
	case srcIsMap || canonIsMap || srcIsList:
		ov.stash(path, src)
		return canon
	case equivalent(src, canon):
		return src
	}
	if ov.keepReplaced {
		ov.stash(path, src)
	}
	return canon
}

// equivalent compara escalares como montos, fechas o texto (sin distinguir mayúsculas).
// Objetos y arreglos solo son equivalentes si son iguales.
func equivalent(a, b any) bool {
	if !isScalar(a) || !isScalar(b) {
		return reflect.DeepEqual(a, b)
	}
	if da, ok := asDecimal(a); ok {
		if db, ok := asDecimal(b); ok {
			return da.Equal(db)
		}
	}
	if ta, ok := asTime(a); ok {
		if tb, ok := asTime(b); ok {
			return ta.Equal(tb)
		}
	}
	return strings.EqualFold(asString(a), asString(b))
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}
