package domain

import (
	"fmt"
	"time"
)

// Identifiable es cualquier cosa con identidad de entidad.
type Identifiable interface {
	ID() DomainEntityId
}

// Model es la base de toda entidad: identidad, timestamps y borrado lógico.
//
// Los campos son privados; Touch, SoftDelete y Restore son los únicos caminos de
// mutación y deben invocarse desde los métodos de negocio de la entidad que lo embebe.
type Model struct {
	id        DomainEntityId
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
	deletedBy *DomainEntityId
	clock     Clock
}

// NewModel crea un modelo nuevo. createdAt se captura del reloj en este momento.
func NewModel(id DomainEntityId, clock Clock) (Model, error) {
	if id.IsZero() {
		return Model{}, InvalidArgument("model id must not be empty")
	}
	clock = clockOrSystem(clock)
	now := clock.Now()
	return Model{
		id:        id,
		createdAt: now,
		updatedAt: now,
		clock:     clock,
	}, nil
}

// RestoreModel rehidrata un modelo persistido.
// Si updatedAt es anterior a createdAt se iguala a createdAt; deletedBy se ignora sin deletedAt.
func RestoreModel(id DomainEntityId, createdAt, updatedAt time.Time, deletedAt *time.Time, deletedBy *DomainEntityId, clock Clock) (Model, error) {
	if id.IsZero() {
		return Model{}, InvalidArgument("model id must not be empty")
	}
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}
	m := Model{
		id:        id,
		createdAt: createdAt,
		updatedAt: updatedAt,
		clock:     clockOrSystem(clock),
	}
	if deletedAt != nil {
		at := *deletedAt
		m.deletedAt = &at
		if deletedBy != nil {
			by := *deletedBy
			m.deletedBy = &by
		}
	}
	return m, nil
}

func (m *Model) ID() DomainEntityId { return m.id }

func (m *Model) CreatedAt() time.Time { return m.createdAt }

func (m *Model) UpdatedAt() time.Time { return m.updatedAt }

// DeletedAt devuelve una copia; nil si la entidad no está borrada.
func (m *Model) DeletedAt() *time.Time {
	if m.deletedAt == nil {
		return nil
	}
	at := *m.deletedAt
	return &at
}

func (m *Model) DeletedBy() *DomainEntityId {
	if m.deletedBy == nil {
		return nil
	}
	by := *m.deletedBy
	return &by
}

func (m *Model) IsDeleted() bool { return m.deletedAt != nil }

// Touch actualiza updatedAt. Nunca retrocede: updatedAt >= createdAt siempre.
func (m *Model) Touch() {
	now := clockOrSystem(m.clock).Now()
	if now.Before(m.updatedAt) {
		return
	}
	m.updatedAt = now
}

// SoftDelete marca la entidad como borrada por el actor indicado.
func (m *Model) SoftDelete(by DomainEntityId) {
	m.Touch()
	at := m.updatedAt
	m.deletedAt = &at
	m.deletedBy = &by
}

// Restore deshace un borrado lógico.
func (m *Model) Restore() {
	m.deletedAt = nil
	m.deletedBy = nil
	m.Touch()
}

// Equals compara por identidad, no por estructura.
func (m *Model) Equals(other Identifiable) bool {
	if other == nil {
		return false
	}
	return m.id == other.ID()
}

// HashKey devuelve la clave de hash de la entidad: su id.
func (m *Model) HashKey() DomainEntityId { return m.id }

func (m *Model) String() string {
	return fmt.Sprintf("Model(id=%s)", m.id)
}

// SameEntity indica si dos entidades comparten identidad.
func SameEntity(a, b Identifiable) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}
