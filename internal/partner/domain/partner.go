package domain

import (
	"strings"
	"time"

	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/domain/valueobjects"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

const maxNameLength = 120

// AggregateType identifica al agregado en los eventos.
var AggregateType = sharedDomain.AggregateTypeName[Partner]()

// Partner es una aseguradora asociada. Toda mutación pasa por sus métodos de negocio,
// que registran el evento correspondiente.
type Partner struct {
	sharedDomain.AggregateRoot
	name   string
	email  valueobjects.Email
	status Status
	clock  sharedDomain.Clock
}

// Register crea un partner activo y emite PartnerRegistered.
func Register(name string, email valueobjects.Email, clock sharedDomain.Clock) (*Partner, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	root, err := sharedDomain.NewAggregateRoot(sharedDomain.NewDomainEntityId(), clock)
	if err != nil {
		return nil, err
	}
	p := &Partner{AggregateRoot: root, name: name, email: email, status: StatusActive, clock: clock}
	p.AddDomainEvent(PartnerRegistered{
		BaseEvent: p.newEvent(PartnerRegisteredType),
		Name:      name,
		Email:     email.String(),
	})
	return p, nil
}

// Rehydrate reconstruye un partner persistido, sin eventos pendientes.
func Rehydrate(s Snapshot, clock sharedDomain.Clock) (*Partner, error) {
	email, err := valueobjects.NewEmail(s.Email)
	if err != nil {
		return nil, err
	}
	m, err := sharedDomain.RestoreModel(s.ID, s.CreatedAt, s.UpdatedAt, s.DeletedAt, s.DeletedBy, clock)
	if err != nil {
		return nil, err
	}
	status := s.Status
	if status == "" {
		status = StatusActive
	}
	return &Partner{
		AggregateRoot: sharedDomain.RestoreAggregateRoot(m),
		name:          s.Name,
		email:         email,
		status:        status,
		clock:         clock,
	}, nil
}

func (p *Partner) Name() string { return p.name }

func (p *Partner) Email() valueobjects.Email { return p.email }

func (p *Partner) Status() Status { return p.status }

// Rename cambia el nombre. Un nombre igual al actual no hace nada.
func (p *Partner) Rename(name string) error {
	if p.IsDeleted() {
		return sharedDomain.NewInvalidOperation("Cannot rename a removed partner")
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	if name == p.name {
		return nil
	}
	old := p.name
	p.name = name
	p.Touch()
	p.AddDomainEvent(PartnerRenamed{
		BaseEvent: p.newEvent(PartnerRenamedType),
		OldName:   old,
		NewName:   name,
	})
	return nil
}

func (p *Partner) Suspend() error {
	if p.IsDeleted() {
		return sharedDomain.NewInvalidOperation("Cannot suspend a removed partner")
	}
	if p.status == StatusSuspended {
		return sharedDomain.NewInvalidOperation("Partner is already suspended")
	}
	p.status = StatusSuspended
	p.Touch()
	p.AddDomainEvent(PartnerSuspended{BaseEvent: p.newEvent(PartnerSuspendedType)})
	return nil
}

// Remove hace un borrado lógico en nombre de by.
func (p *Partner) Remove(by sharedDomain.DomainEntityId) error {
	if p.IsDeleted() {
		return sharedDomain.NewInvalidOperation("Partner is already removed")
	}
	if by.IsZero() {
		return sharedDomain.InvalidArgument("removedBy must not be empty")
	}
	p.SoftDelete(by)
	p.AddDomainEvent(PartnerRemoved{
		BaseEvent: p.newEvent(PartnerRemovedType),
		RemovedBy: by.String(),
	})
	return nil
}

// Reinstate deshace Remove. Solo aplica a partners borrados.
func (p *Partner) Reinstate() error {
	if !p.IsDeleted() {
		return sharedDomain.NewInvalidOperation("Partner is not removed")
	}
	p.Restore()
	p.AddDomainEvent(PartnerReinstated{BaseEvent: p.newEvent(PartnerReinstatedType)})
	return nil
}

func (p *Partner) newEvent(eventType string) sharedDomain.BaseEvent {
	return sharedDomain.NewBaseEvent(p.ID(), AggregateType, eventType, p.clock)
}

func (p *Partner) String() string {
	return "Partner(id=" + p.ID().String() + ")"
}

func validateName(name string) error {
	var v sharedDomain.Validator
	v.Check(name != "", "name", "must not be blank")
	v.Check(len(name) <= maxNameLength, "name", "must be at most 120 characters")
	return v.Err()
}

// Snapshot es la forma plana del partner para persistencia y caché.
type Snapshot struct {
	ID        sharedDomain.DomainEntityId  `json:"id"`
	Name      string                       `json:"name"`
	Email     string                       `json:"email"`
	Status    Status                       `json:"status"`
	CreatedAt time.Time                    `json:"createdAt"`
	UpdatedAt time.Time                    `json:"updatedAt"`
	DeletedAt *time.Time                   `json:"deletedAt,omitempty"`
	DeletedBy *sharedDomain.DomainEntityId `json:"deletedBy,omitempty"`
}

func (p *Partner) Snapshot() Snapshot {
	return Snapshot{
		ID:        p.ID(),
		Name:      p.name,
		Email:     p.email.String(),
		Status:    p.status,
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
		DeletedAt: p.DeletedAt(),
		DeletedBy: p.DeletedBy(),
	}
}
