// Package pagination normalizes client-supplied limite/pagina query values
// into a bounded, deterministic window over an ordered collection.  The
// policy is shared by every listing endpoint; only the per-resource ceiling
// differs.
package pagination

import "strconv"

// Per-resource page-size ceilings.
const (
	MaxFilms  = 20
	MaxActors = 10
	MaxOscars = 10
)

// Defaults applied before clamping when a value is missing or non-numeric.
const (
	defaultLimite = 5
	defaultPagina = 1
)

// Params is a normalized page request.  Limite is always in [1, ceiling] and
// Pagina is always >= 1; a Params produced by Normalize can be applied to a
// query or a slice without further checking.
type Params struct {
	Limite int // page size after clamping
	Pagina int // 1-based page number after clamping
}

// Normalize parses the raw limite/pagina query values and clamps them.
// Missing or non-numeric input falls back to the defaults (5, 1).  Limite is
// clamped into [1, max]; Pagina is clamped to a minimum of 1 and has no
// upper bound: requesting past the end of the collection yields an empty
// window, not an error.
func Normalize(limiteRaw, paginaRaw string, max int) Params {
	limite := defaultLimite
	if n, err := strconv.Atoi(limiteRaw); err == nil {
		limite = n
	}
	pagina := defaultPagina
	if n, err := strconv.Atoi(paginaRaw); err == nil {
		pagina = n
	}
	if limite < 1 {
		limite = 1
	}
	if limite > max {
		limite = max
	}
	if pagina < 1 {
		pagina = 1
	}
	return Params{Limite: limite, Pagina: pagina}
}

// Offset returns the number of elements preceding the window.
func (p Params) Offset() int {
	return (p.Pagina - 1) * p.Limite
}

// Window returns the page of items selected by p, preserving the slice's
// order.  The result is a contiguous subsequence of at most p.Limite
// elements; pages past the end are empty.
func Window[T any](items []T, p Params) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limite
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
