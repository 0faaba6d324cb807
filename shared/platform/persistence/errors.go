package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateKey lo devuelven los repositorios cuando una restricción única se incumple.
var ErrDuplicateKey = errors.New("duplicate key")

// MappingError indica que una fila no pudo convertirse al tipo de lectura.
type MappingError struct {
	Target string
	Err    error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("Failed to map database row to %s: %v", e.Target, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

func (e *MappingError) ErrorType() string { return "MappingError" }

// IsIntegrityViolation reconoce violaciones de integridad de Postgres, SQLite y Mongo.
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Clase 23: integrity_constraint_violation
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "23"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}

	return mongo.IsDuplicateKeyError(err)
}

// IsNoRows reconoce el "no encontrado" de database/sql y de Mongo.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments)
}

// Classify traduce el error del driver a ErrDuplicateKey cuando aplica, conservando la causa.
func Classify(err error) error {
	if err == nil || errors.Is(err, ErrDuplicateKey) {
		return err
	}
	if IsIntegrityViolation(err) {
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}
	return err
}
