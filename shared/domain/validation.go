package domain

import "fmt"

// ValidationError describe una restricción incumplida. Field vacío = error global.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ConstraintViolation es una violación identificada por la ruta de la propiedad.
type ConstraintViolation struct {
	PropertyPath string
	Message      string
}

// ConstraintViolationError agrupa violaciones detectadas al validar parámetros de un caso de uso.
type ConstraintViolationError struct {
	Violations []ConstraintViolation
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("%d constraint(s) violated", len(e.Violations))
}

func (e *ConstraintViolationError) ErrorType() string { return "ConstraintViolation" }

// ValidationErrors convierte las violaciones al formato canónico.
func (e *ConstraintViolationError) ValidationErrors() []ValidationError {
	out := make([]ValidationError, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, ValidationError{Field: v.PropertyPath, Message: v.Message})
	}
	return out
}

// Validator acumula errores de validación campo a campo.
type Validator struct {
	errs []ValidationError
}

// Check registra message para field cuando ok es falso.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.errs = append(v.errs, ValidationError{Field: field, Message: message})
	}
}

func (v *Validator) Valid() bool { return len(v.errs) == 0 }

func (v *Validator) Errors() []ValidationError {
	out := make([]ValidationError, len(v.errs))
	copy(out, v.errs)
	return out
}

// Err devuelve nil o un DomainError ValidationFailed con lo acumulado.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return NewValidationFailed(v.errs, "")
}
