package presentation

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/sharedkernel/shared/domain"
)

const (
	// RequestStartKey guarda en el gin.Context el instante de inicio de la petición.
	RequestStartKey = "sharedkernel.presentation.request_start"

	HeaderCorrelationID = "X-Correlation-Id"
	HeaderRequestID     = "X-Request-Id"

	envelopeWrittenKey = "sharedkernel.presentation.envelope_written"
	// envelopePassthroughKey marca que el handler respondió con un Envelope propio.
	envelopePassthroughKey = "sharedkernel.presentation.envelope_passthrough"
)

// RequestInfo son los datos de la petición que viajan a los metadatos del envoltorio.
// Start a cero significa que no se registró el inicio.
type RequestInfo struct {
	Method        string
	Path          string
	Query         string
	CorrelationID string
	Start         time.Time
}

// RequestInfoFrom extrae RequestInfo del contexto de gin.
func RequestInfoFrom(c *gin.Context) RequestInfo {
	info := RequestInfo{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		Query:         c.Request.URL.RawQuery,
		CorrelationID: CorrelationID(c),
	}
	if v, ok := c.Get(RequestStartKey); ok {
		if start, ok := v.(time.Time); ok {
			info.Start = start
		}
	}
	return info
}

// CorrelationID devuelve la primera cabecera de correlación no vacía, o "".
func CorrelationID(c *gin.Context) string {
	for _, h := range []string{HeaderCorrelationID, HeaderRequestID} {
		if v := strings.TrimSpace(c.GetHeader(h)); v != "" {
			return v
		}
	}
	return ""
}

// RequestTiming registra el instante de inicio antes de ejecutar el resto de la cadena.
func RequestTiming(clock domain.Clock) gin.HandlerFunc {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return func(c *gin.Context) {
		c.Set(RequestStartKey, clock.Now())
		c.Next()
	}
}
