// Package report contiene las agregaciones puras sobre listas ya leídas (sin I/O).
// Cada función agrupa por una clave y suma o cuenta un campo; el orden de los grupos es el
// de primera aparición en la entrada, y SortDesc ordena de forma estable.
package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Total par clave → suma.
type Total struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
}

// Count par clave → cantidad.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// GroupSum agrupa items por key y suma value.
func GroupSum[T any](items []T, key func(T) string, value func(T) decimal.Decimal) []Total {
	idx := make(map[string]int)
	out := make([]Total, 0)
	for _, it := range items {
		k := key(it)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Total{Key: k, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(value(it))
	}
	return out
}

// GroupCount agrupa items por key y cuenta ocurrencias.
func GroupCount[T any](items []T, key func(T) string) []Count {
	idx := make(map[string]int)
	out := make([]Count, 0)
	for _, it := range items {
		k := key(it)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Count{Key: k})
		}
		out[i].Count++
	}
	return out
}

// SortDesc devuelve una copia ordenada por total descendente; los empates conservan el orden de entrada.
func SortDesc(ts []Total) []Total {
	out := append([]Total(nil), ts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out
}

// SortCountDesc igual que SortDesc para conteos.
func SortCountDesc(cs []Count) []Count {
	out := append([]Count(nil), cs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopN los n mayores totales (orden estable). n <= 0 devuelve todos.
func TopN(ts []Total, n int) []Total {
	out := SortDesc(ts)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TopNCount los n mayores conteos (orden estable). n <= 0 devuelve todos.
func TopNCount(cs []Count, n int) []Count {
	out := SortCountDesc(cs)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Sum suma de todos los totales.
func Sum(ts []Total) decimal.Decimal {
	s := decimal.Zero
	for _, t := range ts {
		s = s.Add(t.Total)
	}
	return s
}

// AsMap vista clave → total, útil en respuestas JSON y en tests.
func AsMap(ts []Total) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(ts))
	for _, t := range ts {
		m[t.Key] = t.Total
	}
	return m
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
