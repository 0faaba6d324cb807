package domain

import (
	"errors"
	"fmt"
)

// ---------- Errores genéricos (no de dominio) ----------

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIllegalState    = errors.New("illegal state")
	ErrNoSuchElement   = errors.New("no such element")
)

// kindError asocia un mensaje libre a uno de los sentinels anteriores.
type kindError struct {
	sentinel error
	typeName string
	msg      string
	cause    error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.cause }

func (e *kindError) Is(target error) bool { return target == e.sentinel }

func (e *kindError) ErrorType() string { return e.typeName }

// InvalidArgument crea un error que cumple errors.Is(err, ErrInvalidArgument).
func InvalidArgument(msg string) error {
	return &kindError{sentinel: ErrInvalidArgument, typeName: "InvalidArgument", msg: msg}
}

// IllegalState crea un error que cumple errors.Is(err, ErrIllegalState).
func IllegalState(msg string) error {
	return &kindError{sentinel: ErrIllegalState, typeName: "IllegalState", msg: msg}
}

// NoSuchElement crea un error que cumple errors.Is(err, ErrNoSuchElement).
func NoSuchElement(msg string) error {
	return &kindError{sentinel: ErrNoSuchElement, typeName: "NoSuchElement", msg: msg}
}

// ---------- Taxonomía de errores de dominio ----------

// ErrorKind es el conjunto cerrado de fallos de dominio.
type ErrorKind int

const (
	KindBusinessRuleViolation ErrorKind = iota + 1
	KindEntityNotFound
	KindEntityAlreadyExists
	KindInvalidOperation
	KindFailedToSave
	KindFailedToUpdate
	KindValidationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindBusinessRuleViolation:
		return "BusinessRuleViolation"
	case KindEntityNotFound:
		return "EntityNotFound"
	case KindEntityAlreadyExists:
		return "EntityAlreadyExists"
	case KindInvalidOperation:
		return "InvalidOperation"
	case KindFailedToSave:
		return "FailedToSave"
	case KindFailedToUpdate:
		return "FailedToUpdate"
	case KindValidationFailed:
		return "ValidationFailed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// DomainError es un fallo esperado y con significado de negocio.
// Solo los campos relevantes para su Kind vienen informados.
type DomainError struct {
	Kind           ErrorKind
	Msg            string
	RuleName       string
	EntityType     string
	EntityID       string
	IdentifierName string
	Errors         []ValidationError
	Err            error
}

func (e *DomainError) Error() string { return e.Msg }

func (e *DomainError) Unwrap() error { return e.Err }

// Is permite comparar contra un DomainError "plantilla" que solo tiene Kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Kind == e.Kind
}

func (e *DomainError) ErrorType() string { return e.Kind.String() }

// Plantillas para errors.Is.
var (
	ErrBusinessRuleViolation = &DomainError{Kind: KindBusinessRuleViolation}
	ErrEntityNotFound        = &DomainError{Kind: KindEntityNotFound}
	ErrEntityAlreadyExists   = &DomainError{Kind: KindEntityAlreadyExists}
	ErrInvalidOperation      = &DomainError{Kind: KindInvalidOperation}
	ErrFailedToSave          = &DomainError{Kind: KindFailedToSave}
	ErrFailedToUpdate        = &DomainError{Kind: KindFailedToUpdate}
	ErrValidationFailed      = &DomainError{Kind: KindValidationFailed}
)

func NewBusinessRuleViolation(msg, ruleName string) *DomainError {
	return &DomainError{Kind: KindBusinessRuleViolation, Msg: msg, RuleName: ruleName}
}

func NewEntityNotFound(entityType string, entityID any) *DomainError {
	id := fmt.Sprint(entityID)
	return &DomainError{
		Kind:       KindEntityNotFound,
		Msg:        fmt.Sprintf("%s with ID '%s' was not found", entityType, id),
		EntityType: entityType,
		EntityID:   id,
	}
}

// NewEntityAlreadyExists; identifierName vacío equivale a "ID".
func NewEntityAlreadyExists(entityType string, identifier any, identifierName string) *DomainError {
	name := identifierName
	if name == "" {
		name = "ID"
	}
	id := fmt.Sprint(identifier)
	return &DomainError{
		Kind:           KindEntityAlreadyExists,
		Msg:            fmt.Sprintf("%s with identifier: %s '%s' already exists", entityType, name, id),
		EntityType:     entityType,
		EntityID:       id,
		IdentifierName: identifierName,
	}
}

func NewInvalidOperation(msg string) *DomainError {
	return &DomainError{Kind: KindInvalidOperation, Msg: msg}
}

func NewFailedToSave(entityType string, entityID any, cause error) *DomainError {
	id := fmt.Sprint(entityID)
	return &DomainError{
		Kind:       KindFailedToSave,
		Msg:        fmt.Sprintf("Failed to save %s with ID '%s'", entityType, id),
		EntityType: entityType,
		EntityID:   id,
		Err:        cause,
	}
}

func NewFailedToUpdate(entityType string, entityID any, cause error) *DomainError {
	id := fmt.Sprint(entityID)
	return &DomainError{
		Kind:       KindFailedToUpdate,
		Msg:        fmt.Sprintf("Failed to update %s with ID '%s'", entityType, id),
		EntityType: entityType,
		EntityID:   id,
		Err:        cause,
	}
}

// NewValidationFailed; si msg viene vacío se genera uno con el número de errores.
func NewValidationFailed(errs []ValidationError, msg string) *DomainError {
	if msg == "" {
		msg = fmt.Sprintf("Validation failed. %d error(s).", len(errs))
	}
	copied := make([]ValidationError, len(errs))
	copy(copied, errs)
	return &DomainError{Kind: KindValidationFailed, Msg: msg, Errors: copied}
}

// AsDomainError busca un DomainError en la cadena de err.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind indica si err contiene un DomainError del tipo indicado.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsDomainError(err)
	return ok && de.Kind == kind
}
