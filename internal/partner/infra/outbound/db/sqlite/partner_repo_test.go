package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/davicafu/sharedkernel/internal/partner/domain"
	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/platform/persistence"
	sharedQuery "github.com/davicafu/sharedkernel/shared/platform/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *PartnerRepoSQLite {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// :memory: es por conexión
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitSQLite(db))
	return NewPartnerRepoSQLite(db)
}

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func snapshot(name, email string, offset time.Duration) domain.Snapshot {
	return domain.Snapshot{
		ID:        sharedDomain.NewDomainEntityId(),
		Name:      name,
		Email:     email,
		Status:    domain.StatusActive,
		CreatedAt: base.Add(offset),
		UpdatedAt: base.Add(offset),
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()
	p := snapshot("Acme", "contact@acme.io", 0)

	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	assert.Nil(t, got.DeletedAt)
	assert.Nil(t, got.DeletedBy)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, snapshot("Acme", "contact@acme.io", 0)))

	err := repo.Create(ctx, snapshot("Otra", "CONTACT@acme.io", time.Second))

	assert.ErrorIs(t, err, persistence.ErrDuplicateKey)
	assert.True(t, persistence.IsIntegrityViolation(err))
}

func TestGetByID_NotFound(t *testing.T) {
	repo := setupDB(t)

	_, err := repo.GetByID(context.Background(), sharedDomain.NewDomainEntityId())

	assert.True(t, persistence.IsNoRows(err))
}

func TestUpdate_SoftDelete(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()
	p := snapshot("Acme", "contact@acme.io", 0)
	require.NoError(t, repo.Create(ctx, p))

	by := sharedDomain.NewDomainEntityId()
	at := base.Add(time.Hour)
	p.Status = domain.StatusSuspended
	p.UpdatedAt = at
	p.DeletedAt = &at
	p.DeletedBy = &by
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuspended, got.Status)
	require.NotNil(t, got.DeletedAt)
	assert.True(t, at.Equal(*got.DeletedAt))
	require.NotNil(t, got.DeletedBy)
	assert.Equal(t, by, *got.DeletedBy)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := setupDB(t)

	err := repo.Update(context.Background(), snapshot("Acme", "contact@acme.io", 0))

	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestList_Criteria(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()
	a := snapshot("Acme Seguros", "a@acme.io", 0)
	b := snapshot("ACME Vida", "b@acme.io", time.Minute)
	c := snapshot("Globex", "c@globex.com", 2*time.Minute)
	for _, p := range []domain.Snapshot{a, b, c} {
		require.NoError(t, repo.Create(ctx, p))
	}
	by := sharedDomain.NewDomainEntityId()
	a.DeletedAt, a.DeletedBy = &base, &by
	require.NoError(t, repo.Update(ctx, a))

	page := sharedQuery.OffsetPagination{}
	byName := sharedQuery.Sort{Field: domain.FieldName, Direction: sharedQuery.Desc}

	got, err := repo.List(ctx, sharedDomain.And(sharedDomain.FieldContains(domain.FieldName, "acme")), page, byName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme Seguros", got[0].Name, "orden binario: minúsculas después")

	got, err = repo.List(ctx, sharedDomain.And(sharedDomain.FieldContains(domain.FieldName, "acme"), sharedDomain.NotDeleted()), page, byName)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	got, err = repo.List(ctx, sharedDomain.Or(
		sharedDomain.FieldEquals(domain.FieldEmail, "c@globex.com"),
		sharedDomain.FieldEquals(domain.FieldEmail, "b@acme.io"),
	), page, sharedQuery.Sort{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID, "orden por defecto: created_at ascendente")
}

func TestList_Pagination(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()
	for i, name := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, snapshot(name, name+"@acme.io", time.Duration(i)*time.Minute)))
	}

	got, err := repo.List(ctx, nil, sharedQuery.OffsetPagination{Limit: 2, Offset: 2}, sharedQuery.Sort{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Name)
}

func TestList_RejectsUnknownField(t *testing.T) {
	repo := setupDB(t)

	_, err := repo.List(context.Background(), sharedDomain.FieldEquals("password", "x"), sharedQuery.OffsetPagination{}, sharedQuery.Sort{})

	assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
}
