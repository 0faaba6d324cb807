package presentation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/platform/persistence"
)

const (
	CodeValidationFailed        = "VALIDATION_FAILED"
	CodeConstraintViolation     = "CONSTRAINT_VIOLATION"
	CodeMissingRequestParameter = "MISSING_REQUEST_PARAMETER"
)

// Failure es el resultado de traducir un error: todo lo necesario para el envoltorio.
type Failure struct {
	Status  int
	Code    string
	Message string
	Details map[string]string
	Err     error
}

// Translator convierte cualquier error en un Failure. Nunca falla ni relanza.
type Translator struct {
	clock domain.Clock
}

func NewTranslator(clock domain.Clock) *Translator {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Translator{clock: clock}
}

var fieldNameRegex = regexp.MustCompile(`\b(\w+)\s*\(`)

// Translate clasifica err. El orden importa: los errores de presentación envuelven a otros
// y deben reconocerse antes que su causa.
func (t *Translator) Translate(err error, req RequestInfo) Failure {
	if err == nil {
		err = errors.New("unknown error")
	}
	if wrapped, ok := asBodyDecodeError(err); ok {
		err = wrapped
	}

	var (
		missing    *MissingParameterError
		fieldErrs  validator.ValidationErrors
		violations *domain.ConstraintViolationError
		decodeErr  *BodyDecodeError
		domainErr  *domain.DomainError
		mappingErr *persistence.MappingError
	)

	switch {
	case errors.As(err, &missing):
		return Failure{
			Status:  http.StatusBadRequest,
			Code:    CodeMissingRequestParameter,
			Message: fmt.Sprintf("Missing required request parameter '%s'", missing.Name),
			Details: map[string]string{
				"parameterName": missing.Name,
				"parameterType": missing.Type,
				"message":       missing.Error(),
			},
			Err: err,
		}

	case errors.As(err, &fieldErrs):
		errs := fieldValidationErrors(fieldErrs)
		return Failure{
			Status:  http.StatusBadRequest,
			Code:    CodeValidationFailed,
			Message: fmt.Sprintf("Validation failed. %d error(s).", len(errs)),
			Details: ValidationDetails(errs),
			Err:     err,
		}

	case errors.As(err, &violations):
		errs := violations.ValidationErrors()
		return Failure{
			Status:  http.StatusBadRequest,
			Code:    CodeConstraintViolation,
			Message: fmt.Sprintf("Validation failed. %d constraint(s) violated.", len(errs)),
			Details: ValidationDetails(errs),
			Err:     err,
		}

	case errors.As(err, &decodeErr):
		return t.bodyDecodeFailure(err, decodeErr)

	case errors.As(err, &domainErr):
		return t.domainFailure(err, domainErr)

	case errors.As(err, &mappingErr):
		return Failure{
			Status:  http.StatusBadRequest,
			Message: "Failed to map database row to projection: " + causeMessage(mappingErr),
			Err:     err,
		}

	case persistence.IsIntegrityViolation(err):
		return Failure{
			Status:  http.StatusConflict,
			Message: err.Error(),
			Err:     err,
		}

	case errors.Is(err, domain.ErrInvalidArgument):
		return Failure{
			Status:  http.StatusBadRequest,
			Message: "Invalid request: " + orDefault(err.Error(), "Invalid argument provided"),
			Details: map[string]string{
				"errorType": ErrorTypeOf(err),
				"error":     orDefault(err.Error(), "No details available"),
			},
			Err: err,
		}

	case errors.Is(err, domain.ErrIllegalState):
		return Failure{
			Status:  http.StatusInternalServerError,
			Message: orDefault(err.Error(), "The system is in an unexpected state"),
			Details: map[string]string{
				"errorType":  ErrorTypeOf(err),
				"message":    orDefault(err.Error(), "No error message available"),
				"suggestion": "Retry the request or contact support if the issue persists",
			},
			Err: err,
		}

	case errors.Is(err, domain.ErrNoSuchElement), persistence.IsNoRows(err):
		msg := orDefault(err.Error(), "The requested element was not found")
		return Failure{
			Status:  http.StatusNotFound,
			Message: msg,
			Details: map[string]string{
				"errorType":  ErrorTypeOf(err),
				"message":    msg,
				"suggestion": "Verify that the requested resource exists and try again",
			},
			Err: err,
		}
	}

	return t.unexpected(err, req)
}

func (t *Translator) domainFailure(err error, de *domain.DomainError) Failure {
	switch de.Kind {
	case domain.KindEntityNotFound:
		return Failure{
			Status:  http.StatusNotFound,
			Message: orDefault(de.Msg, "The requested resource was not found"),
			Err:     err,
		}
	case domain.KindEntityAlreadyExists:
		msg := orDefault(de.Msg, "A resource with the same identifier already exists")
		return Failure{
			Status:  http.StatusConflict,
			Message: msg,
			Details: map[string]string{
				"errorType":  de.ErrorType(),
				"message":    msg,
				"suggestion": "Try updating the existing resource or use a different identifier",
			},
			Err: err,
		}
	case domain.KindValidationFailed:
		return Failure{
			Status:  http.StatusBadRequest,
			Code:    CodeValidationFailed,
			Message: de.Msg,
			Details: ValidationDetails(de.Errors),
			Err:     err,
		}
	case domain.KindFailedToSave, domain.KindFailedToUpdate:
		return Failure{
			Status:  http.StatusInternalServerError,
			Message: de.Msg,
			Err:     err,
		}
	default:
		// BusinessRuleViolation, InvalidOperation y cualquier tipo futuro.
		return Failure{
			Status:  http.StatusBadRequest,
			Message: de.Msg,
			Err:     err,
		}
	}
}

func (t *Translator) bodyDecodeFailure(err error, de *BodyDecodeError) Failure {
	const invalidFormat = "Invalid request format"

	if errors.Is(de, domain.ErrInvalidArgument) {
		msg := orDefault(rootCause(de).Error(), invalidFormat)
		details := map[string]string{
			"error":      msg,
			"suggestion": "Check the request format and required fields",
		}
		if m := fieldNameRegex.FindStringSubmatch(msg); m != nil {
			details["field"] = m[1]
			details["suggestion"] = fmt.Sprintf("Check the provided value for '%s'", m[1])
		}
		return Failure{Status: http.StatusBadRequest, Message: invalidFormat, Details: details, Err: err}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(de, &typeErr) && typeErr.Field != "" {
		return Failure{
			Status:  http.StatusBadRequest,
			Message: invalidFormat,
			Details: map[string]string{
				"field":      typeErr.Field,
				"error":      typeErr.Error(),
				"suggestion": fmt.Sprintf("Check the provided value for '%s'", typeErr.Field),
			},
			Err: err,
		}
	}

	return Failure{
		Status:  http.StatusBadRequest,
		Message: "Invalid JSON body format",
		Details: map[string]string{
			"error":      "Request body is not a valid JSON",
			"suggestion": "Ensure the request body is a valid JSON document",
		},
		Err: err,
	}
}

func (t *Translator) unexpected(err error, req RequestInfo) Failure {
	return Failure{
		Status:  http.StatusInternalServerError,
		Message: "An unexpected error occurred while processing your request",
		Details: map[string]string{
			"errorType":  ErrorTypeOf(err),
			"message":    orDefault(err.Error(), "No error message available"),
			"path":       req.Path,
			"timestamp":  t.clock.Now().Format("2006-01-02T15:04:05.000Z07:00"),
			"suggestion": "Please contact support if the problem persists",
		},
		Err: err,
	}
}

// ValidationDetails aplana la lista como field.<campo> o error.<índice>, más totalErrors.
func ValidationDetails(errs []domain.ValidationError) map[string]string {
	details := make(map[string]string, len(errs)+1)
	for i, e := range errs {
		key := "error." + strconv.Itoa(i)
		if e.Field != "" {
			key = "field." + e.Field
		}
		details[key] = e.Message
	}
	details["totalErrors"] = strconv.Itoa(len(errs))
	return details
}

func fieldValidationErrors(errs validator.ValidationErrors) []domain.ValidationError {
	out := make([]domain.ValidationError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, domain.ValidationError{Field: fe.Field(), Message: tagMessage(fe)})
	}
	return out
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must have length %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// ErrorTypeOf devuelve el nombre del tipo del error más externo que lo declare,
// o el nombre del tipo concreto de la causa raíz.
func ErrorTypeOf(err error) string {
	type typed interface{ ErrorType() string }
	for e := err; e != nil; e = errors.Unwrap(e) {
		if t, ok := e.(typed); ok {
			return t.ErrorType()
		}
	}
	root := rootCause(err)
	if name := domain.TypeNameOf(root); name != "" {
		return name
	}
	return reflect.TypeOf(root).String()
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func causeMessage(err error) string {
	if cause := errors.Unwrap(err); cause != nil && cause.Error() != "" {
		return cause.Error()
	}
	return orDefault(err.Error(), "see server logs")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
