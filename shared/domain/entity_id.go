package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// canonicalIDLength es la longitud de la forma canónica 8-4-4-4-12.
const canonicalIDLength = 36

// DomainEntityId es el identificador opaco de cualquier entidad del dominio.
// Es comparable, por lo que puede usarse directamente como clave de un mapa.
type DomainEntityId struct {
	value uuid.UUID
}

// FormatError indica que un texto no es un identificador válido.
type FormatError struct {
	Input  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	return e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is hace que un FormatError sea también un argumento inválido.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func (e *FormatError) ErrorType() string { return "FormatError" }

// NewDomainEntityId genera un identificador aleatorio.
func NewDomainEntityId() DomainEntityId {
	return DomainEntityId{value: uuid.New()}
}

// DomainEntityIdFrom envuelve un UUID ya existente.
func DomainEntityIdFrom(u uuid.UUID) DomainEntityId {
	return DomainEntityId{value: u}
}

// ParseDomainEntityId construye un identificador desde su forma canónica.
func ParseDomainEntityId(s string) (DomainEntityId, error) {
	if strings.TrimSpace(s) == "" {
		return DomainEntityId{}, &FormatError{Input: s, Reason: "UUID string cannot be empty"}
	}
	if len(s) != canonicalIDLength {
		return DomainEntityId{}, &FormatError{Input: s, Reason: fmt.Sprintf("Invalid UUID string: %s", s)}
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return DomainEntityId{}, &FormatError{Input: s, Reason: fmt.Sprintf("Invalid UUID string: %s", s), Err: err}
	}
	return DomainEntityId{value: u}, nil
}

// MustParseDomainEntityId es como ParseDomainEntityId pero entra en pánico. Solo para tests y constantes.
func MustParseDomainEntityId(s string) DomainEntityId {
	id, err := ParseDomainEntityId(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id DomainEntityId) UUID() uuid.UUID { return id.value }

func (id DomainEntityId) IsZero() bool { return id.value == uuid.Nil }

func (id DomainEntityId) String() string { return id.value.String() }

func (id DomainEntityId) MarshalText() ([]byte, error) {
	return []byte(id.value.String()), nil
}

func (id *DomainEntityId) UnmarshalText(b []byte) error {
	parsed, err := ParseDomainEntityId(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implementa driver.Valuer; se guarda como TEXT.
func (id DomainEntityId) Value() (driver.Value, error) {
	return id.value.String(), nil
}

// Scan implementa sql.Scanner.
func (id *DomainEntityId) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return id.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 16 {
			u, err := uuid.FromBytes(v)
			if err != nil {
				return err
			}
			*id = DomainEntityId{value: u}
			return nil
		}
		return id.UnmarshalText(v)
	case nil:
		*id = DomainEntityId{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DomainEntityId", src)
	}
}
