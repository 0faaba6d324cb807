package application

import (
	"context"
	"fmt"
	"time"

	"github.com/davicafu/sharedkernel/internal/partner/domain"
	sharedApp "github.com/davicafu/sharedkernel/shared/application"
	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/domain/valueobjects"
	sharedBus "github.com/davicafu/sharedkernel/shared/platform/bus"
	sharedCache "github.com/davicafu/sharedkernel/shared/platform/cache"
	"github.com/davicafu/sharedkernel/shared/platform/persistence"
	"github.com/davicafu/sharedkernel/shared/platform/query"
	"github.com/davicafu/sharedkernel/shared/utils"
	"go.uber.org/zap"
)

const (
	readAttempts = 3
	readDelay    = 100 * time.Millisecond
)

// PartnerService define los casos de uso relacionados con Partner.
type PartnerService struct {
	repo      domain.PartnerRepository
	cache     sharedCache.Cache
	publisher sharedBus.EventPublisher
	clock     sharedDomain.Clock
	cacheTTL  time.Duration
	log       *zap.Logger
}

func NewPartnerService(
	repo domain.PartnerRepository,
	cache sharedCache.Cache,
	publisher sharedBus.EventPublisher,
	clock sharedDomain.Clock,
	cacheTTL time.Duration,
	log *zap.Logger,
) *PartnerService {
	if clock == nil {
		clock = sharedDomain.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PartnerService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		clock:     clock,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// ---------- Commands ----------

type RegisterPartner struct {
	Name  string
	Email string
}

type RenamePartner struct {
	ID   sharedDomain.DomainEntityId
	Name string
}

type RemovePartner struct {
	ID sharedDomain.DomainEntityId
	By sharedDomain.DomainEntityId
}

// ---------- Queries ----------

type ListPartners struct {
	Name           string
	Status         domain.Status
	IncludeDeleted bool
	View           sharedApp.QueryView
	Page           query.OffsetPagination
	Sort           query.Sort
}

// RegisterHandler expone Register como CommandHandler del kernel.
func (s *PartnerService) RegisterHandler() sharedApp.CommandHandler[RegisterPartner, *domain.Partner] {
	return sharedApp.CommandHandlerFunc[RegisterPartner, *domain.Partner](s.Register)
}

// ListHandler expone List como QueryHandler del kernel.
func (s *PartnerService) ListHandler() sharedApp.QueryHandler[ListPartners, []PartnerView] {
	return sharedApp.QueryHandlerFunc[ListPartners, []PartnerView](s.List)
}

// Register da de alta un partner. Un email repetido es EntityAlreadyExists.
func (s *PartnerService) Register(ctx context.Context, cmd RegisterPartner) (*domain.Partner, error) {
	email, err := valueobjects.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	p, err := domain.Register(cmd.Name, email, s.clock)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p.Snapshot()); err != nil {
		if persistence.IsIntegrityViolation(err) {
			return nil, sharedDomain.NewEntityAlreadyExists(domain.AggregateType, email.String(), "email")
		}
		return nil, sharedDomain.NewFailedToSave(domain.AggregateType, p.ID(), err)
	}

	s.publish(ctx, p)
	sharedCache.Store(ctx, s.cache, domain.CacheKeyByID(p.ID()), p.Snapshot(), s.cacheTTL, s.log)
	return p, nil
}

// Get obtiene un partner, primero desde caché. Incluye los borrados lógicamente.
func (s *PartnerService) Get(ctx context.Context, id sharedDomain.DomainEntityId) (*domain.Partner, error) {
	return s.load(ctx, id)
}

func (s *PartnerService) Rename(ctx context.Context, cmd RenamePartner) (*domain.Partner, error) {
	return s.mutate(ctx, cmd.ID, func(p *domain.Partner) error {
		return p.Rename(cmd.Name)
	})
}

func (s *PartnerService) Suspend(ctx context.Context, id sharedDomain.DomainEntityId) (*domain.Partner, error) {
	return s.mutate(ctx, id, (*domain.Partner).Suspend)
}

func (s *PartnerService) Remove(ctx context.Context, cmd RemovePartner) (*domain.Partner, error) {
	return s.mutate(ctx, cmd.ID, func(p *domain.Partner) error {
		return p.Remove(cmd.By)
	})
}

func (s *PartnerService) Reinstate(ctx context.Context, id sharedDomain.DomainEntityId) (*domain.Partner, error) {
	return s.mutate(ctx, id, (*domain.Partner).Reinstate)
}

// List filtra por fragmento de nombre y estado; los borrados se excluyen salvo IncludeDeleted.
func (s *PartnerService) List(ctx context.Context, q ListPartners) ([]PartnerView, error) {
	var criteria []sharedDomain.Criteria
	if q.Name != "" {
		criteria = append(criteria, sharedDomain.FieldContains(domain.FieldName, q.Name))
	}
	if q.Status != "" {
		criteria = append(criteria, sharedDomain.FieldEquals(domain.FieldStatus, string(q.Status)))
	}
	if !q.IncludeDeleted {
		criteria = append(criteria, sharedDomain.NotDeleted())
	}

	sort := q.Sort
	if !domain.SortableFields[sort.Field] {
		sort = query.Sort{Field: domain.FieldCreatedAt, Direction: sort.Direction}
	}

	snaps, err := s.repo.List(ctx, sharedDomain.And(criteria...), q.Page.Normalize(), sort)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}

	views := make([]PartnerView, 0, len(snaps))
	for _, snap := range snaps {
		views = append(views, NewPartnerView(snap, q.View))
	}
	return views, nil
}

// ---------- Helpers ----------

func (s *PartnerService) load(ctx context.Context, id sharedDomain.DomainEntityId) (*domain.Partner, error) {
	key := domain.CacheKeyByID(id)
	if s.cache != nil {
		var cached domain.Snapshot
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return domain.Rehydrate(cached, s.clock)
		}
	}

	var (
		snap     domain.Snapshot
		notFound bool
	)
	err := utils.Retry(ctx, readAttempts, readDelay, func() error {
		var err error
		snap, err = s.repo.GetByID(ctx, id)
		if persistence.IsNoRows(err) {
			notFound = true
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get partner %s: %w", id, err)
	}
	if notFound {
		return nil, sharedDomain.NewEntityNotFound(domain.AggregateType, id)
	}

	p, err := domain.Rehydrate(snap, s.clock)
	if err != nil {
		return nil, &persistence.MappingError{Target: domain.AggregateType, Err: err}
	}
	sharedCache.Store(ctx, s.cache, key, snap, s.cacheTTL, s.log)
	return p, nil
}

// mutate carga el agregado, aplica fn y persiste solo si hubo eventos nuevos.
func (s *PartnerService) mutate(ctx context.Context, id sharedDomain.DomainEntityId, fn func(*domain.Partner) error) (*domain.Partner, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if !p.HasPendingEvents() {
		return p, nil
	}

	if err := s.repo.Update(ctx, p.Snapshot()); err != nil {
		if persistence.IsNoRows(err) {
			return nil, sharedDomain.NewEntityNotFound(domain.AggregateType, id)
		}
		return nil, sharedDomain.NewFailedToUpdate(domain.AggregateType, id, err)
	}

	sharedCache.Invalidate(ctx, s.cache, domain.CacheKeyByID(id), s.log)
	s.publish(ctx, p)
	return p, nil
}

// publish entrega los eventos tras confirmar la escritura. Un fallo no deshace
// el cambio: se registra y los eventos quedan pendientes en el agregado.
func (s *PartnerService) publish(ctx context.Context, p *domain.Partner) {
	pending := len(p.DomainEvents())
	if err := sharedBus.Dispatch(ctx, s.publisher, p); err != nil {
		s.log.Error("Failed to publish partner events",
			zap.String("partner_id", p.ID().String()),
			zap.Int("events", pending),
			zap.Error(err))
	}
}
