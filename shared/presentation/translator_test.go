package presentation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/platform/persistence"
)

var req = RequestInfo{Method: "GET", Path: "/partners/1"}

func translate(err error) Failure {
	return NewTranslator(fixedClock()).Translate(err, req)
}

func TestTranslate_EntityNotFound(t *testing.T) {
	id := domain.NewDomainEntityId()

	f := translate(domain.NewEntityNotFound("Partner", id))

	assert.Equal(t, http.StatusNotFound, f.Status)
	assert.Equal(t, fmt.Sprintf("Partner with ID '%s' was not found", id), f.Message)
	assert.Empty(t, f.Code)
}

func TestTranslate_DomainValidationFailed(t *testing.T) {
	err := domain.NewValidationFailed([]domain.ValidationError{
		{Field: "name", Message: "must not be blank"},
		{Message: "partner must have a contact"},
	}, "")

	f := translate(err)

	assert.Equal(t, http.StatusBadRequest, f.Status)
	assert.Equal(t, CodeValidationFailed, f.Code)
	assert.Equal(t, "2", f.Details["totalErrors"])
	assert.Equal(t, "must not be blank", f.Details["field.name"])
	assert.Equal(t, "partner must have a contact", f.Details["error.1"])
}

func TestTranslate_MissingParameter(t *testing.T) {
	f := translate(&MissingParameterError{Name: "id", Type: "UUID"})

	assert.Equal(t, http.StatusBadRequest, f.Status)
	assert.Equal(t, CodeMissingRequestParameter, f.Code)
	assert.Equal(t, "Missing required request parameter 'id'", f.Message)
	assert.Equal(t, "id", f.Details["parameterName"])
	assert.Equal(t, "UUID", f.Details["parameterType"])
	assert.Equal(t, "Required request parameter 'id' of type 'UUID' is missing", f.Details["message"])
}

func TestTranslate_Unexpected(t *testing.T) {
	f := translate(errors.New("nil map write"))

	assert.Equal(t, http.StatusInternalServerError, f.Status)
	assert.Equal(t, "An unexpected error occurred while processing your request", f.Message)
	for _, key := range []string{"errorType", "message", "path", "timestamp", "suggestion"} {
		assert.Contains(t, f.Details, key)
	}
	assert.Equal(t, "nil map write", f.Details["message"])
	assert.Equal(t, "/partners/1", f.Details["path"])
	assert.Equal(t, "2025-06-01T12:00:00.000Z", f.Details["timestamp"])
}

func TestTranslate_ContextCancelledIsGeneric(t *testing.T) {
	f := translate(fmt.Errorf("query partners: %w", context.DeadlineExceeded))

	assert.Equal(t, http.StatusInternalServerError, f.Status)
}

func TestTranslate_PassesStringsThroughUnescaped(t *testing.T) {
	payload := `<script>alert("x")</script>`

	f := translate(domain.InvalidArgument(payload))

	assert.Equal(t, "Invalid request: "+payload, f.Message)
	assert.Equal(t, payload, f.Details["error"])
}

func TestTranslate_Table(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"invalid argument", domain.InvalidArgument("name is required"), 400, "", "Invalid request: name is required"},
		{"id mal formado", mustFormatErr(t), 400, "", "Invalid request: Invalid UUID string: nope"},
		{"illegal state", domain.IllegalState("cache not warmed"), 500, "", "cache not warmed"},
		{"no such element", domain.NoSuchElement("no partner"), 404, "", "no partner"},
		{"sql no rows", fmt.Errorf("get: %w", sql.ErrNoRows), 404, "", ""},
		{"already exists", domain.NewEntityAlreadyExists("Partner", "a@b.com", "email"), 409, "", "Partner with identifier: email 'a@b.com' already exists"},
		{"integridad postgres", fmt.Errorf("insert: %w", pgDup), 409, "", ""},
		{"duplicate key", persistence.ErrDuplicateKey, 409, "", "duplicate key"},
		{"mapping", &persistence.MappingError{Target: "PartnerView", Err: errors.New("nil name")}, 400, "", "Failed to map database row to projection: nil name"},
		{"business rule", domain.NewBusinessRuleViolation("limit exceeded", "Limit"), 400, "", "limit exceeded"},
		{"invalid operation", domain.NewInvalidOperation("already suspended"), 400, "", "already suspended"},
		{"failed to save", domain.NewFailedToSave("Partner", "1", errors.New("disk")), 500, "", "Failed to save Partner with ID '1'"},
		{"failed to update", domain.NewFailedToUpdate("Partner", "1", errors.New("disk")), 500, "", "Failed to update Partner with ID '1'"},
		{"constraint violation", &domain.ConstraintViolationError{Violations: []domain.ConstraintViolation{{PropertyPath: "list.limit", Message: "must be positive"}}}, 400, CodeConstraintViolation, "Validation failed. 1 constraint(s) violated."},
		{"pánico con error", &PanicError{Value: domain.NewEntityNotFound("Partner", "9")}, 404, "", "Partner with ID '9' was not found"},
		{"pánico sin error", &PanicError{Value: "boom"}, 500, "", "An unexpected error occurred while processing your request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := translate(tt.err)

			assert.Equal(t, tt.wantStatus, f.Status)
			assert.Equal(t, tt.wantCode, f.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, f.Message)
			}
			assert.NotEmpty(t, f.Message)
			assert.Equal(t, tt.err, f.Err)
		})
	}
}

func mustFormatErr(t *testing.T) error {
	t.Helper()
	_, err := domain.ParseDomainEntityId("nope")
	require.Error(t, err)
	return err
}

func TestTranslate_AlreadyExistsDetails(t *testing.T) {
	f := translate(domain.NewEntityAlreadyExists("Partner", "a@b.com", "email"))

	assert.Equal(t, "EntityAlreadyExists", f.Details["errorType"])
	assert.Equal(t, "Try updating the existing resource or use a different identifier", f.Details["suggestion"])
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func TestTranslate_FrameworkValidation(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	err := v.Struct(registerRequest{Email: "not-an-email"})
	require.Error(t, err)

	f := translate(err)

	assert.Equal(t, http.StatusBadRequest, f.Status)
	assert.Equal(t, CodeValidationFailed, f.Code)
	assert.Equal(t, "Validation failed. 2 error(s).", f.Message)
	assert.Equal(t, "2", f.Details["totalErrors"])
}

func TestTranslate_BodyDecode(t *testing.T) {
	t.Run("json inválido", func(t *testing.T) {
		var dst map[string]any
		err := json.Unmarshal([]byte(`{"name":`), &dst)

		f := translate(&BodyDecodeError{Err: err})

		assert.Equal(t, http.StatusBadRequest, f.Status)
		assert.Equal(t, "Invalid JSON body format", f.Message)
		assert.Equal(t, "Request body is not a valid JSON", f.Details["error"])
	})

	t.Run("tipo incorrecto", func(t *testing.T) {
		var dst struct {
			Age int `json:"age"`
		}
		err := json.Unmarshal([]byte(`{"age":"ten"}`), &dst)

		f := translate(&BodyDecodeError{Err: err})

		assert.Equal(t, "Invalid request format", f.Message)
		assert.Equal(t, "age", f.Details["field"])
	})

	t.Run("argumento inválido con campo", func(t *testing.T) {
		f := translate(&BodyDecodeError{Err: domain.InvalidArgument("Failed to invoke Email (value must be valid)")})

		assert.Equal(t, "Invalid request format", f.Message)
		assert.Equal(t, "Email", f.Details["field"])
		assert.Equal(t, "Check the provided value for 'Email'", f.Details["suggestion"])
	})

	t.Run("argumento inválido sin campo", func(t *testing.T) {
		var dst struct {
			ID domain.DomainEntityId `json:"id"`
		}
		err := json.Unmarshal([]byte(`{"id":"bad"}`), &dst)

		f := translate(&BodyDecodeError{Err: err})

		assert.Equal(t, "Invalid request format", f.Message)
		assert.Equal(t, "Invalid UUID string: bad", f.Details["error"])
		assert.NotContains(t, f.Details, "field")
	})
}

func TestErrorTypeOf(t *testing.T) {
	assert.Equal(t, "EntityNotFound", ErrorTypeOf(fmt.Errorf("wrap: %w", domain.NewEntityNotFound("P", "1"))))
	assert.Equal(t, "InvalidArgument", ErrorTypeOf(domain.InvalidArgument("x")))
	assert.Equal(t, "errorString", ErrorTypeOf(errors.New("x")))
}

func TestValidationDetails_Empty(t *testing.T) {
	assert.Equal(t, map[string]string{"totalErrors": "0"}, ValidationDetails(nil))
}

func TestTranslate_FrameworkDecodeErrors(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	syntaxErr := json.Unmarshal([]byte(`{bad`), &dst)
	typeErr := json.Unmarshal([]byte(`{"name": 5}`), &dst)

	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"sintaxis", syntaxErr, "Invalid JSON body format"},
		{"tipo", typeErr, "Invalid request format"},
		{"cuerpo vacío", io.EOF, "Invalid JSON body format"},
		{"cuerpo truncado", io.ErrUnexpectedEOF, "Invalid JSON body format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := translate(tt.err)

			assert.Equal(t, http.StatusBadRequest, f.Status)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestTranslate_WrappedEOFIsUnexpected(t *testing.T) {
	f := translate(fmt.Errorf("read partner row: %w", io.ErrUnexpectedEOF))

	assert.Equal(t, http.StatusInternalServerError, f.Status)
}
