package presentation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/sharedkernel/shared/domain"
)

// ErrorHandler recupera pánicos y traduce el último error registrado con c.Error
// a un envoltorio de fallo. Cada fallo se registra en el log una sola vez, aquí.
func ErrorHandler(builder *Builder, translator *Translator, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				_ = c.Error(&PanicError{Value: rec})
				c.Abort()
				writeFailure(c, builder, translator, log)
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			writeFailure(c, builder, translator, log)
		}
	}
}

func writeFailure(c *gin.Context, builder *Builder, translator *Translator, log *zap.Logger) {
	if c.GetBool(envelopeWrittenKey) {
		return
	}
	err := boundError(c, c.Errors.Last().Err)
	req := RequestInfoFrom(c)
	f := translator.Translate(err, req)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", f.Status),
		zap.String("code", f.Code),
		zap.String("error_type", ErrorTypeOf(err)),
	}
	if req.CorrelationID != "" {
		fields = append(fields, zap.String("correlation_id", req.CorrelationID))
	}
	if f.Status >= http.StatusInternalServerError {
		log.Error(f.Message, append(fields, zap.Error(err))...)
	} else {
		log.Warn(f.Message, append(fields, zap.String("error", err.Error()))...)
	}

	if bw, ok := c.Writer.(*bufferedWriter); ok {
		bw.reset()
	} else if c.Writer.Written() {
		return
	}
	c.Set(envelopeWrittenKey, true)
	c.PureJSON(f.Status, builder.Failure(req, f.Status, f.Message, f.Code, f.Details))
}

// bufferedWriter retiene el cuerpo del handler para poder envolverlo después.
type bufferedWriter struct {
	gin.ResponseWriter
	body      bytes.Buffer
	status    int
	headerNow bool
}

func newBufferedWriter(w gin.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
}

// reset descarta lo escrito por el handler para sustituirlo por el envoltorio de error.
func (w *bufferedWriter) reset() {
	w.body.Reset()
	w.status = http.StatusOK
	w.headerNow = false
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.Written() {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() { w.headerNow = true }

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.headerNow = true
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.headerNow = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int { return w.status }

func (w *bufferedWriter) Size() int {
	if !w.headerNow {
		return -1
	}
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool { return w.headerNow }

// Flush se ignora: el cuerpo solo sale cuando el handler termina.
func (w *bufferedWriter) Flush() {}

// ResponseEnvelope envuelve las respuestas JSON del handler en un Envelope.
// No hace nada si está desactivado, si la respuesta no es JSON o si ya es un envoltorio.
func ResponseEnvelope(builder *Builder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !builder.cfg.Enabled {
			c.Next()
			return
		}

		original := c.Writer
		bw := newBufferedWriter(original)
		c.Writer = bw
		c.Next()
		c.Writer = original

		body := bw.body.Bytes()
		if !shouldWrap(c, bw.status, original.Header().Get("Content-Type"), body) {
			flush(original, bw, body)
			return
		}

		out, err := marshalEnvelope(builder.wrapBody(RequestInfoFrom(c), bw.status, body))
		if err != nil {
			flush(original, bw, body)
			return
		}
		original.Header().Del("Content-Length")
		original.Header().Set("Content-Type", "application/json; charset=utf-8")
		original.WriteHeader(bw.status)
		_, _ = original.Write(out)
	}
}

// flush copia tal cual lo que escribió el handler. Si no escribió nada, gin completará la respuesta.
func flush(w gin.ResponseWriter, bw *bufferedWriter, body []byte) {
	w.WriteHeader(bw.status)
	if len(body) > 0 {
		_, _ = w.Write(body)
		return
	}
	if bw.headerNow {
		w.WriteHeaderNow()
	}
}

func shouldWrap(c *gin.Context, status int, contentType string, body []byte) bool {
	if c.GetBool(envelopeWrittenKey) || len(body) == 0 {
		return false
	}
	if c.GetBool(envelopePassthroughKey) {
		return false
	}
	if status == http.StatusNoContent || status == http.StatusNotModified {
		return false
	}
	if !IsJSONContentType(contentType) || !json.Valid(body) {
		return false
	}
	return !looksLikeEnvelope(body)
}

// IsJSONContentType acepta application/json y subtipos de proveedor application/*+json.
func IsJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if mediaType == "application/json" {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}

// envelopeShape es la parte mínima que identifica un Envelope serializado.
type envelopeShape struct {
	Success *bool `json:"success"`
	Meta    *struct {
		Request *struct {
			Method *string `json:"method"`
		} `json:"request"`
		Response *struct {
			Status *int `json:"status"`
		} `json:"response"`
	} `json:"meta"`
}

// looksLikeEnvelope exige success booleano, meta.request.method y meta.response.status.
// Un DTO con claves success y meta de otro tipo no cuenta como envoltorio.
func looksLikeEnvelope(body []byte) bool {
	var shape envelopeShape
	if err := json.Unmarshal(body, &shape); err != nil {
		return false
	}
	if shape.Success == nil || shape.Meta == nil {
		return false
	}
	m := shape.Meta
	return m.Request != nil && m.Request.Method != nil && m.Response != nil && m.Response.Status != nil
}

// wrapBody construye el envoltorio para un cuerpo JSON ya serializado.
func (b *Builder) wrapBody(req RequestInfo, status int, body []byte) Envelope {
	if status >= 200 && status <= 299 {
		if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
			return b.Success(req, status, nil)
		}
		return b.Success(req, status, json.RawMessage(body))
	}
	return b.Failure(req, status, messageFromBody(body), "", nil)
}

// marshalEnvelope serializa sin escapar HTML: los valores viajan tal cual.
func marshalEnvelope(env Envelope) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// failureMessage obtiene el mensaje de un cuerpo de error arbitrario.
func failureMessage(payload any) string {
	switch v := payload.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return messageFromBody(v)
	case json.RawMessage:
		return messageFromBody(v)
	case error:
		return v.Error()
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprint(payload)
	}
	return messageFromBody(raw)
}

// messageFromBody toma la clave "error" y si no "message"; si no es un objeto, el texto crudo.
func messageFromBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		for _, key := range []string{"error", "message"} {
			if v, ok := obj[key]; ok {
				return jsonText(v)
			}
		}
		return string(trimmed)
	}
	return jsonText(trimmed)
}

func jsonText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(v, &nested); err == nil {
		if msg, ok := nested["message"]; ok {
			return jsonText(msg)
		}
	}
	if string(v) == "null" {
		return ""
	}
	return string(v)
}

// Install registra la cadena completa en el orden timing → envoltorio → errores.
func Install(engine *gin.Engine, cfg Config, clock domain.Clock, log *zap.Logger) *Builder {
	builder := NewBuilder(cfg, clock)
	engine.Use(
		RequestTiming(clock),
		ResponseEnvelope(builder),
		ErrorHandler(builder, NewTranslator(clock), log),
	)
	RegisterJSONTagNames()
	return builder
}
