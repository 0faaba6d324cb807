package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/sharedkernel/internal/partner/domain"
	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/platform/persistence"
	sharedQuery "github.com/davicafu/sharedkernel/shared/platform/query"
)

func TestBuildWhere(t *testing.T) {
	where, args, err := buildWhere(sharedDomain.And(
		sharedDomain.FieldContains(domain.FieldName, "acme"),
		sharedDomain.FieldEquals(domain.FieldStatus, "ACTIVE"),
		sharedDomain.NotDeleted(),
	))

	require.NoError(t, err)
	assert.Equal(t, "name ILIKE $1 AND status = $2 AND deleted_at IS NULL", where)
	assert.Equal(t, []any{"%acme%", "ACTIVE"}, args)
}

func TestBuildWhere_Or(t *testing.T) {
	where, args, err := buildWhere(sharedDomain.Or(
		sharedDomain.FieldEquals(domain.FieldEmail, "a@acme.io"),
		sharedDomain.FieldEquals(domain.FieldEmail, "b@acme.io"),
	))

	require.NoError(t, err)
	assert.Equal(t, "email = $1 OR email = $2", where)
	assert.Len(t, args, 2)
}

func TestBuildWhere_UnknownField(t *testing.T) {
	_, _, err := buildWhere(sharedDomain.FieldEquals("password", "x"))

	assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
}

// setupPostgresTestDB se conecta a Postgres, crea el esquema y limpia la tabla.
func setupPostgresTestDB(t *testing.T) *sql.DB {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		t.Skip("DATABASE_URL no está configurada, saltando test de integración con Postgres")
	}

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping())
	require.NoError(t, InitPostgresSchema(context.Background(), db))

	_, err = db.Exec(`TRUNCATE TABLE partners`)
	require.NoError(t, err)
	return db
}

func TestPartnerRepoPostgres_Integration(t *testing.T) {
	repo := NewPartnerRepoPostgres(setupPostgresTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	p := domain.Snapshot{
		ID:        sharedDomain.NewDomainEntityId(),
		Name:      "Acme",
		Email:     "contact@acme.io",
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, p))

	dup := p
	dup.ID = sharedDomain.NewDomainEntityId()
	dup.Email = "CONTACT@acme.io"
	assert.ErrorIs(t, repo.Create(ctx, dup), persistence.ErrDuplicateKey)

	by := sharedDomain.NewDomainEntityId()
	p.DeletedAt, p.DeletedBy = &now, &by
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	list, err := repo.List(ctx, sharedDomain.And(sharedDomain.FieldContains(domain.FieldName, "ACM"), sharedDomain.NotDeleted()), sharedQuery.OffsetPagination{}, sharedQuery.Sort{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.GetByID(ctx, sharedDomain.NewDomainEntityId())
	assert.True(t, persistence.IsNoRows(err))
}
