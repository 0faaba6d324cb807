package presentation

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/davicafu/sharedkernel/shared/domain"
)

// RequestMetadata describe la petición que originó la respuesta.
type RequestMetadata struct {
	Method        string `json:"method"`
	Path          string `json:"path"`
	Query         string `json:"query,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// ResponseMetadata describe el estado HTTP y el tiempo de proceso.
type ResponseMetadata struct {
	Status           int       `json:"status"`
	StatusCode       int       `json:"statusCode"`
	Reason           string    `json:"reason"`
	Timestamp        time.Time `json:"timestamp"`
	ProcessingTimeMs *int64    `json:"processingTimeMs,omitempty"`
}

type Meta struct {
	Request     RequestMetadata  `json:"request"`
	Response    ResponseMetadata `json:"response"`
	Version     string           `json:"version,omitempty"`
	Environment string           `json:"environment,omitempty"`
}

// ErrorBody es la parte de error del envoltorio. Los valores se copian tal cual, sin escapar.
// Details no distingue null de cadena vacía: un valor null se decodifica como "".
// El kit nunca emite valores null en Details.
type ErrorBody struct {
	Message string            `json:"message,omitempty"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// Envelope es la forma de toda respuesta HTTP.
// Con Success=true Error es nil; con Success=false Data es nil.
type Envelope struct {
	Success bool       `json:"success"`
	Meta    Meta       `json:"meta"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// DecodeData convierte el Data de un envoltorio ya decodificado al tipo T.
func DecodeData[T any](env Envelope) (T, error) {
	var out T
	if env.Data == nil {
		return out, nil
	}
	raw, err := json.Marshal(env.Data)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}

// Builder construye envoltorios de éxito y de fallo con los mismos metadatos.
// No guarda estado mutable: es seguro compartirlo entre peticiones.
type Builder struct {
	cfg   Config
	clock domain.Clock
}

func NewBuilder(cfg Config, clock domain.Clock) *Builder {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Builder{cfg: cfg, clock: clock}
}

func (b *Builder) Success(req RequestInfo, status int, data any) Envelope {
	return Envelope{
		Success: true,
		Meta:    b.meta(req, status),
		Data:    data,
	}
}

func (b *Builder) Failure(req RequestInfo, status int, message, code string, details map[string]string) Envelope {
	return Envelope{
		Success: false,
		Meta:    b.meta(req, status),
		Error: &ErrorBody{
			Message: message,
			Code:    code,
			Details: details,
		},
	}
}

func (b *Builder) meta(req RequestInfo, status int) Meta {
	now := b.clock.Now()
	resp := ResponseMetadata{
		Status:     status,
		StatusCode: status,
		Reason:     http.StatusText(status),
		Timestamp:  now,
	}
	if !req.Start.IsZero() {
		ms := now.Sub(req.Start).Milliseconds()
		if ms < 0 {
			ms = 0
		}
		resp.ProcessingTimeMs = &ms
	}
	return Meta{
		Request: RequestMetadata{
			Method:        req.Method,
			Path:          req.Path,
			Query:         req.Query,
			CorrelationID: req.CorrelationID,
		},
		Response:    resp,
		Version:     b.cfg.Version,
		Environment: b.cfg.Environment,
	}
}

// Wrap envuelve payload como éxito salvo que ya sea un envoltorio o el envoltorio esté desactivado.
func (b *Builder) Wrap(payload any, req RequestInfo, status int) any {
	if !b.cfg.Enabled {
		return payload
	}
	switch payload.(type) {
	case Envelope, *Envelope:
		return payload
	}
	if status < 200 || status > 299 {
		return b.Failure(req, status, failureMessage(payload), "", nil)
	}
	return b.Success(req, status, payload)
}
