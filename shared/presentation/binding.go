package presentation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/davicafu/sharedkernel/shared/domain"
)

var registerTagNames sync.Once

// RegisterJSONTagNames hace que el validador de gin informe los campos por su nombre JSON.
func RegisterJSONTagNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// BindJSON decodifica y valida el cuerpo. Los fallos de validación se devuelven tal cual;
// cualquier otro fallo se envuelve en BodyDecodeError.
func BindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return err
	}
	return &BodyDecodeError{Err: err}
}

// asBodyDecodeError reconoce los fallos de lectura que devuelve el binding de gin
// cuando el handler llama a c.ShouldBindJSON o c.BindJSON directamente.
// Solo se aceptan errores sin envolver: un io.EOF envuelto viene de otra capa.
func asBodyDecodeError(err error) (*BodyDecodeError, bool) {
	switch err.(type) {
	case *json.SyntaxError, *json.UnmarshalTypeError:
		return &BodyDecodeError{Err: err}, true
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &BodyDecodeError{Err: err}, true
	}
	return nil, false
}

// boundError devuelve err como BodyDecodeError si gin lo registró como fallo de binding.
// Los fallos de validación se dejan tal cual.
func boundError(c *gin.Context, err error) error {
	var fieldErrs validator.ValidationErrors
	var decodeErr *BodyDecodeError
	if errors.As(err, &fieldErrs) || errors.As(err, &decodeErr) {
		return err
	}
	for _, e := range c.Errors.ByType(gin.ErrorTypeBind) {
		if e.Err == err {
			return &BodyDecodeError{Err: err}
		}
	}
	return err
}

// RequiredQuery devuelve el parámetro de query o un MissingParameterError si está vacío.
func RequiredQuery(c *gin.Context, name, typ string) (string, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return "", &MissingParameterError{Name: name, Type: typ}
	}
	return v, nil
}

// PathID lee un parámetro de ruta como DomainEntityId.
func PathID(c *gin.Context, name string) (domain.DomainEntityId, error) {
	return domain.ParseDomainEntityId(c.Param(name))
}

// QueryID lee un parámetro de query obligatorio de tipo UUID.
func QueryID(c *gin.Context, name string) (domain.DomainEntityId, error) {
	raw, err := RequiredQuery(c, name, "UUID")
	if err != nil {
		return domain.DomainEntityId{}, err
	}
	return domain.ParseDomainEntityId(raw)
}

// --- Helpers de respuesta ---

// Respond escribe data como JSON; ResponseEnvelope se encarga del envoltorio.
// Si data ya es un Envelope sale tal cual.
func Respond(c *gin.Context, status int, data any) {
	switch data.(type) {
	case Envelope, *Envelope:
		c.Set(envelopePassthroughKey, true)
	}
	c.JSON(status, data)
}

func OK(c *gin.Context, data any) {
	Respond(c, http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	Respond(c, http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail registra err para ErrorHandler y corta la cadena.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
