package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // Driver de PostgreSQL

	"github.com/davicafu/sharedkernel/internal/partner/domain"
	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/platform/persistence"
	sharedQuery "github.com/davicafu/sharedkernel/shared/platform/query"
)

const partnerColumns = `id, name, email, status, created_at, updated_at, deleted_at, deleted_by`

var columns = map[string]string{
	domain.FieldName:      "name",
	domain.FieldEmail:     "email",
	domain.FieldStatus:    "status",
	domain.FieldCreatedAt: "created_at",
	"deleted_at":          "deleted_at",
	"deleted_by":          "deleted_by",
}

// PartnerRepoPostgres implementa PartnerRepository sobre database/sql con el driver pgx.
type PartnerRepoPostgres struct {
	db *sql.DB
}

var _ domain.PartnerRepository = (*PartnerRepoPostgres)(nil)

func NewPartnerRepoPostgres(db *sql.DB) *PartnerRepoPostgres {
	return &PartnerRepoPostgres{db: db}
}

// ------------------ Escritura ------------------

func (r *PartnerRepoPostgres) Create(ctx context.Context, p domain.Snapshot) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO partners (`+partnerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.Email, string(p.Status), p.CreatedAt, p.UpdatedAt, p.DeletedAt, nullID(p.DeletedBy),
	)
	return persistence.Classify(err)
}

func (r *PartnerRepoPostgres) Update(ctx context.Context, p domain.Snapshot) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE partners SET name=$1, email=$2, status=$3, updated_at=$4, deleted_at=$5, deleted_by=$6 WHERE id=$7`,
		p.Name, p.Email, string(p.Status), p.UpdatedAt, p.DeletedAt, nullID(p.DeletedBy), p.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", persistence.Classify(err))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ------------------ Lectura ------------------

func (r *PartnerRepoPostgres) GetByID(ctx context.Context, id sharedDomain.DomainEntityId) (domain.Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id=$1`, id)
	return scanPartner(row)
}

func (r *PartnerRepoPostgres) List(ctx context.Context, criteria sharedDomain.Criteria, page sharedQuery.OffsetPagination, sort sharedQuery.Sort) ([]domain.Snapshot, error) {
	whereSQL, args, err := buildWhere(criteria)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + partnerColumns + " FROM partners"
	if whereSQL != "" {
		query += " WHERE " + whereSQL
	}

	orderBy := "created_at"
	if domain.SortableFields[sort.Field] {
		orderBy = columns[sort.Field]
	}
	dir := sharedQuery.Asc
	if sort.Desc() {
		dir = sharedQuery.Desc
	}

	page = page.Normalize()
	query += fmt.Sprintf(" ORDER BY %s %s, id LIMIT $%d OFFSET $%d", orderBy, dir, len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partners := []domain.Snapshot{}
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

// ------------------ Helpers ------------------

type scanner interface {
	Scan(dest ...any) error
}

func scanPartner(s scanner) (domain.Snapshot, error) {
	var (
		p         domain.Snapshot
		status    string
		deletedAt sql.NullTime
		deletedBy sql.NullString
	)
	err := s.Scan(&p.ID, &p.Name, &p.Email, &status, &p.CreatedAt, &p.UpdatedAt, &deletedAt, &deletedBy)
	if err == sql.ErrNoRows {
		return domain.Snapshot{}, err
	}
	if err != nil {
		return domain.Snapshot{}, &persistence.MappingError{Target: domain.AggregateType, Err: err}
	}

	p.Status = domain.Status(status)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	if deletedAt.Valid {
		at := deletedAt.Time.UTC()
		p.DeletedAt = &at
	}
	if deletedBy.Valid {
		by, err := sharedDomain.ParseDomainEntityId(deletedBy.String)
		if err != nil {
			return domain.Snapshot{}, &persistence.MappingError{Target: domain.AggregateType, Err: err}
		}
		p.DeletedBy = &by
	}
	return p, nil
}

// buildWhere traduce criterios a SQL para Postgres ($1, $2...).
func buildWhere(criteria sharedDomain.Criteria) (string, []any, error) {
	if criteria == nil {
		return "", nil, nil
	}
	var (
		clauses []string
		args    []any
	)
	for _, c := range criteria.ToConditions() {
		col, ok := columns[c.Field]
		if !ok {
			return "", nil, sharedDomain.InvalidArgument(fmt.Sprintf("unsupported filter field %q", c.Field))
		}
		if c.Op == sharedDomain.OpIsNull {
			clauses = append(clauses, col+" IS NULL")
			continue
		}
		args = append(args, c.Value)
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", col, c.Op, len(args)))
	}
	join := " " + string(sharedDomain.JoinOperator(criteria)) + " "
	return strings.Join(clauses, join), args, nil
}

func nullID(id *sharedDomain.DomainEntityId) any {
	if id == nil {
		return nil
	}
	return id.String()
}

// ------------------ Inicialización del Esquema ------------------

// InitPostgresSchema crea la tabla partners si no existe. El email es único sin distinguir mayúsculas.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
    CREATE TABLE IF NOT EXISTS partners (
        id UUID PRIMARY KEY,
        name TEXT NOT NULL,
        email TEXT NOT NULL,
        status TEXT NOT NULL,
        created_at TIMESTAMP WITH TIME ZONE NOT NULL,
        updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
        deleted_at TIMESTAMP WITH TIME ZONE,
        deleted_by UUID
    )`); err != nil {
		return fmt.Errorf("failed to create partners table: %w", err)
	}
	_, err := db.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS partners_email_key ON partners (lower(email))`)
	return err
}
