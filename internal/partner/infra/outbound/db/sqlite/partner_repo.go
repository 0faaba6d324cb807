package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/davicafu/sharedkernel/internal/partner/domain"
	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/platform/persistence"
	sharedQuery "github.com/davicafu/sharedkernel/shared/platform/query"
)

const partnerColumns = `id, name, email, status, created_at, updated_at, deleted_at, deleted_by`

// columns traduce los campos de criterio a columnas; cualquier otro se rechaza.
var columns = map[string]string{
	domain.FieldName:      "name",
	domain.FieldEmail:     "email",
	domain.FieldStatus:    "status",
	domain.FieldCreatedAt: "created_at",
	"deleted_at":          "deleted_at",
	"deleted_by":          "deleted_by",
}

type PartnerRepoSQLite struct {
	db *sql.DB
}

var _ domain.PartnerRepository = (*PartnerRepoSQLite)(nil)

func NewPartnerRepoSQLite(db *sql.DB) *PartnerRepoSQLite {
	return &PartnerRepoSQLite{db: db}
}

// ------------------ Métodos ------------------

// Create inserta el partner. Un email o id repetido devuelve persistence.ErrDuplicateKey.
func (r *PartnerRepoSQLite) Create(ctx context.Context, p domain.Snapshot) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO partners (`+partnerColumns+`) VALUES (?,?,?,?,?,?,?,?)`,
		p.ID.String(), p.Name, p.Email, string(p.Status),
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(), nullTime(p.DeletedAt), nullID(p.DeletedBy),
	)
	if err != nil {
		return persistence.Classify(err)
	}
	return nil
}

// Update sobrescribe el estado mutable; sql.ErrNoRows si no existe.
func (r *PartnerRepoSQLite) Update(ctx context.Context, p domain.Snapshot) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE partners SET name=?, email=?, status=?, updated_at=?, deleted_at=?, deleted_by=? WHERE id=?`,
		p.Name, p.Email, string(p.Status), p.UpdatedAt.UTC(), nullTime(p.DeletedAt), nullID(p.DeletedBy), p.ID.String(),
	)
	if err != nil {
		return persistence.Classify(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PartnerRepoSQLite) GetByID(ctx context.Context, id sharedDomain.DomainEntityId) (domain.Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = ?`, id.String())
	return scanPartner(row)
}

// List traduce los criterios a un WHERE parametrizado.
func (r *PartnerRepoSQLite) List(
	ctx context.Context,
	criteria sharedDomain.Criteria,
	page sharedQuery.OffsetPagination,
	sort sharedQuery.Sort,
) ([]domain.Snapshot, error) {
	where, args, err := buildWhere(criteria)
	if err != nil {
		return nil, err
	}

	orderBy := "created_at"
	if col, ok := columns[sort.Field]; ok && domain.SortableFields[sort.Field] {
		orderBy = col
	}
	dir := sharedQuery.Asc
	if sort.Desc() {
		dir = sharedQuery.Desc
	}

	page = page.Normalize()
	query := fmt.Sprintf(`SELECT %s FROM partners %s ORDER BY %s %s, id LIMIT ? OFFSET ?`,
		partnerColumns, where, orderBy, dir)
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

func buildWhere(criteria sharedDomain.Criteria) (string, []any, error) {
	if criteria == nil {
		return "", nil, nil
	}
	var (
		conditions []string
		args       []any
	)
	for _, c := range criteria.ToConditions() {
		col, ok := columns[c.Field]
		if !ok {
			return "", nil, sharedDomain.InvalidArgument(fmt.Sprintf("unsupported filter field %q", c.Field))
		}
		switch c.Op {
		case sharedDomain.OpIsNull:
			conditions = append(conditions, col+" IS NULL")
		case sharedDomain.OpILike:
			// LIKE en SQLite ya ignora mayúsculas para ASCII
			conditions = append(conditions, col+" LIKE ?")
			args = append(args, c.Value)
		default:
			conditions = append(conditions, fmt.Sprintf("%s %s ?", col, c.Op))
			args = append(args, c.Value)
		}
	}
	if len(conditions) == 0 {
		return "", nil, nil
	}
	join := " " + string(sharedDomain.JoinOperator(criteria)) + " "
	return "WHERE " + strings.Join(conditions, join), args, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullID(id *sharedDomain.DomainEntityId) any {
	if id == nil {
		return nil
	}
	return id.String()
}

// ------------------ Inicialización de DB ------------------

// InitSQLite crea la tabla partners si no existe.
func InitSQLite(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS partners (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL COLLATE NOCASE UNIQUE,
            status TEXT NOT NULL,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            deleted_at DATETIME NULL,
            deleted_by TEXT NULL
        )
    `)
	return err
}
