package mocks

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"

	partnerDomain "github.com/davicafu/sharedkernel/internal/partner/domain"
	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/platform/persistence"
	sharedQuery "github.com/davicafu/sharedkernel/shared/platform/query"
)

// InMemoryPartnerRepo simula PartnerRepository con las mismas reglas de unicidad que SQLite.
type InMemoryPartnerRepo struct {
	Partners map[sharedDomain.DomainEntityId]partnerDomain.Snapshot
	// Fail, si no es nil, se devuelve en Create y Update.
	Fail error
	mu   sync.Mutex
}

var _ partnerDomain.PartnerRepository = (*InMemoryPartnerRepo)(nil)

func NewInMemoryPartnerRepo() *InMemoryPartnerRepo {
	return &InMemoryPartnerRepo{Partners: make(map[sharedDomain.DomainEntityId]partnerDomain.Snapshot)}
}

func (r *InMemoryPartnerRepo) Create(ctx context.Context, p partnerDomain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	for _, existing := range r.Partners {
		if existing.ID == p.ID || strings.EqualFold(existing.Email, p.Email) {
			return persistence.ErrDuplicateKey
		}
	}
	r.Partners[p.ID] = p
	return nil
}

func (r *InMemoryPartnerRepo) Update(ctx context.Context, p partnerDomain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	if _, ok := r.Partners[p.ID]; !ok {
		return sql.ErrNoRows
	}
	r.Partners[p.ID] = p
	return nil
}

func (r *InMemoryPartnerRepo) GetByID(ctx context.Context, id sharedDomain.DomainEntityId) (partnerDomain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Partners[id]
	if !ok {
		return partnerDomain.Snapshot{}, sql.ErrNoRows
	}
	return p, nil
}

func (r *InMemoryPartnerRepo) List(
	ctx context.Context,
	criteria sharedDomain.Criteria,
	page sharedQuery.OffsetPagination,
	s sharedQuery.Sort,
) ([]partnerDomain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var conds []sharedDomain.Criterion
	join := sharedDomain.OpAnd
	if criteria != nil {
		conds = criteria.ToConditions()
		join = sharedDomain.JoinOperator(criteria)
	}

	var list []partnerDomain.Snapshot
	for _, p := range r.Partners {
		if matches(p, conds, join) {
			list = append(list, p)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		less := lessBy(list[i], list[j], s.Field)
		if s.Desc() {
			return lessBy(list[j], list[i], s.Field)
		}
		return less
	})

	page = page.Normalize()
	if page.Offset >= len(list) {
		return []partnerDomain.Snapshot{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[page.Offset:end], nil
}

// ---------- Helpers ----------

func matches(p partnerDomain.Snapshot, conds []sharedDomain.Criterion, join sharedDomain.LogicalOperator) bool {
	if len(conds) == 0 {
		return true
	}
	for _, c := range conds {
		ok := matchCriterion(p, c)
		if join == sharedDomain.OpOr && ok {
			return true
		}
		if join == sharedDomain.OpAnd && !ok {
			return false
		}
	}
	return join == sharedDomain.OpAnd
}

func matchCriterion(p partnerDomain.Snapshot, c sharedDomain.Criterion) bool {
	if c.Op == sharedDomain.OpIsNull {
		switch c.Field {
		case "deleted_at":
			return p.DeletedAt == nil
		case "deleted_by":
			return p.DeletedBy == nil
		}
		return false
	}

	var field string
	switch c.Field {
	case partnerDomain.FieldName:
		field = p.Name
	case partnerDomain.FieldEmail:
		field = p.Email
	case partnerDomain.FieldStatus:
		field = string(p.Status)
	default:
		return false
	}
	value, _ := c.Value.(string)

	switch c.Op {
	case sharedDomain.OpEq:
		return field == value
	case sharedDomain.OpNeq:
		return field != value
	case sharedDomain.OpILike, sharedDomain.OpLike:
		return strings.Contains(strings.ToLower(field), strings.ToLower(strings.Trim(value, "%")))
	}
	return false
}

func lessBy(a, b partnerDomain.Snapshot, field string) bool {
	switch field {
	case partnerDomain.FieldName:
		return a.Name < b.Name
	case partnerDomain.FieldEmail:
		return a.Email < b.Email
	default:
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID.String() < b.ID.String()
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// ErrStorage es un fallo genérico de almacenamiento para tests.
var ErrStorage = errors.New("storage unavailable")
