package domain

import (
	"context"
	"fmt"

	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/platform/query"
)

// ---------- Interfaces (Ports) ----------

// PartnerRepository persiste snapshots de Partner.
// Create devuelve un error de integridad (persistence.IsIntegrityViolation) si el email ya existe.
// GetByID y Update devuelven sql.ErrNoRows si el partner no existe.
type PartnerRepository interface {
	Create(ctx context.Context, p Snapshot) error
	Update(ctx context.Context, p Snapshot) error
	GetByID(ctx context.Context, id sharedDomain.DomainEntityId) (Snapshot, error)
	List(ctx context.Context, criteria sharedDomain.Criteria, page query.OffsetPagination, sort query.Sort) ([]Snapshot, error)
}

// ---------- Criterios ----------

// Campos por los que se puede filtrar u ordenar.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

// SortableFields es la lista blanca de campos de ordenación.
var SortableFields = map[string]bool{
	FieldName:      true,
	FieldEmail:     true,
	FieldCreatedAt: true,
}

// ---------- Helpers comunes (cache keys, etc.) ----------

// CacheKeyByID forma una key consistente para cache usando ID.
func CacheKeyByID(id sharedDomain.DomainEntityId) string {
	return fmt.Sprintf("partner:id:%s", id)
}
