package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel_CapturesOwnCreationTime(t *testing.T) {
	clock := newSteppingClock()

	m1, err := NewModel(NewDomainEntityId(), clock)
	require.NoError(t, err)
	m2, err := NewModel(NewDomainEntityId(), clock)
	require.NoError(t, err)

	assert.True(t, m2.CreatedAt().After(m1.CreatedAt()), "cada instancia captura su propio createdAt")
	assert.Equal(t, m1.CreatedAt(), m1.UpdatedAt())
	assert.False(t, m1.IsDeleted())
	assert.Nil(t, m1.DeletedBy())
}

func TestNewModel_RejectsEmptyID(t *testing.T) {
	_, err := NewModel(DomainEntityId{}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestModel_EqualityByID(t *testing.T) {
	id := NewDomainEntityId()
	a, _ := NewModel(id, newSteppingClock())
	b, _ := RestoreModel(id, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil, nil)
	c, _ := NewModel(NewDomainEntityId(), nil)

	assert.True(t, a.Equals(&b), "mismo id con timestamps distintos son la misma entidad")
	assert.Equal(t, a.HashKey(), b.HashKey())
	assert.False(t, a.Equals(&c))
	assert.False(t, a.Equals(nil))
	assert.True(t, SameEntity(&a, &b))
}

func TestModel_Touch(t *testing.T) {
	m, _ := NewModel(NewDomainEntityId(), newSteppingClock())
	before := m.UpdatedAt()

	m.Touch()

	assert.True(t, m.UpdatedAt().After(before))
	assert.Equal(t, before, m.CreatedAt())
}

func TestModel_TouchNeverGoesBackwards(t *testing.T) {
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	past := ClockFunc(func() time.Time { return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC) })
	m, _ := RestoreModel(NewDomainEntityId(), future, future, nil, nil, past)

	m.Touch()

	assert.Equal(t, future, m.UpdatedAt())
	assert.False(t, m.UpdatedAt().Before(m.CreatedAt()))
}

func TestModel_SoftDeleteAndRestore(t *testing.T) {
	m, _ := NewModel(NewDomainEntityId(), newSteppingClock())
	actor := NewDomainEntityId()
	beforeDelete := m.UpdatedAt()

	m.SoftDelete(actor)

	require.True(t, m.IsDeleted())
	require.NotNil(t, m.DeletedBy())
	assert.Equal(t, actor, *m.DeletedBy())
	assert.True(t, m.UpdatedAt().After(beforeDelete))
	assert.Equal(t, m.UpdatedAt(), *m.DeletedAt())

	beforeRestore := m.UpdatedAt()
	m.Restore()

	assert.False(t, m.IsDeleted())
	assert.Nil(t, m.DeletedBy())
	assert.Nil(t, m.DeletedAt())
	assert.True(t, m.UpdatedAt().After(beforeRestore))
}

func TestRestoreModel_NormalisesInvariants(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(-time.Hour)
	by := NewDomainEntityId()

	m, err := RestoreModel(NewDomainEntityId(), created, updated, nil, &by, nil)

	require.NoError(t, err)
	assert.Equal(t, created, m.UpdatedAt(), "updatedAt nunca es anterior a createdAt")
	assert.Nil(t, m.DeletedBy(), "deletedBy requiere deletedAt")
}

func TestModel_AccessorsReturnCopies(t *testing.T) {
	m, _ := NewModel(NewDomainEntityId(), newSteppingClock())
	m.SoftDelete(NewDomainEntityId())

	at := m.DeletedAt()
	*at = time.Time{}

	assert.False(t, m.DeletedAt().IsZero())
}
