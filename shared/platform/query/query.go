package query

import "strings"

// ---------- Tipos de filtrado / paginación / ordenamiento ----------

// OffsetPagination para paginación clásica
type OffsetPagination struct {
	Limit  int
	Offset int
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize aplica el límite por defecto y el máximo permitido.
func (p OffsetPagination) Normalize() OffsetPagination {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// SortDirection es la dirección de ordenación.
type SortDirection string

const (
	Asc  SortDirection = "ASC"
	Desc SortDirection = "DESC"
)

// ParseSortDirection acepta "asc"/"desc" sin distinguir mayúsculas; cualquier otra cosa es ASC.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Sort indica campo y dirección.
type Sort struct {
	Field     string // ej. "created_at", "name", "email"
	Direction SortDirection
}

func (s Sort) Desc() bool { return s.Direction == Desc }
