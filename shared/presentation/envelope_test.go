package presentation

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_RoundTripSuccess(t *testing.T) {
	ms := int64(12)
	original := Envelope{
		Success: true,
		Meta: Meta{
			Request:     RequestMetadata{Method: "GET", Path: "/partners", Query: "name=acme", CorrelationID: "abc-123"},
			Response:    ResponseMetadata{Status: 200, StatusCode: 200, Reason: "OK", Timestamp: fixedNow, ProcessingTimeMs: &ms},
			Version:     "1.2.0",
			Environment: "test",
		},
		Data: map[string]any{"name": "acme", "count": float64(2)},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Envelope
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, original, decoded)
}

func TestEnvelope_RoundTripFailureWithNullOptionals(t *testing.T) {
	original := Envelope{
		Success: false,
		Meta: Meta{
			Request:  RequestMetadata{Method: "DELETE", Path: "/partners/1"},
			Response: ResponseMetadata{Status: 404, StatusCode: 404, Reason: "Not Found", Timestamp: fixedNow},
		},
		Error: &ErrorBody{Message: "Partner with ID '1' was not found"},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.NotContains(t, generic, "data")
	meta := generic["meta"].(map[string]any)
	assert.NotContains(t, meta, "version")
	assert.NotContains(t, meta["request"], "correlationId")
	assert.NotContains(t, meta["request"], "query")
	assert.NotContains(t, meta["response"], "processingTimeMs")
	assert.NotContains(t, generic["error"], "code")

	var decoded Envelope
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}

func TestEnvelope_IgnoresUnknownFields(t *testing.T) {
	raw := `{"success":true,"meta":{"request":{"method":"GET","path":"/"},"response":{"status":200,"statusCode":200,"reason":"OK","timestamp":"2025-06-01T12:00:00Z"}},"data":{"id":"1"},"extra":42}`

	var decoded Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))

	type item struct {
		ID string `json:"id"`
	}
	got, err := DecodeData[item](decoded)
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
}

func TestBuilder_MetadataFromRequest(t *testing.T) {
	b := NewBuilder(Config{Enabled: true, Version: "2.0", Environment: "staging"}, fixedClock())
	req := RequestInfo{Method: "POST", Path: "/partners", CorrelationID: "c-1", Start: fixedNow.Add(-150 * time.Millisecond)}

	env := b.Success(req, http.StatusCreated, map[string]string{"id": "1"})

	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.Equal(t, 201, env.Meta.Response.Status)
	assert.Equal(t, 201, env.Meta.Response.StatusCode)
	assert.Equal(t, "Created", env.Meta.Response.Reason)
	assert.Equal(t, fixedNow, env.Meta.Response.Timestamp)
	require.NotNil(t, env.Meta.Response.ProcessingTimeMs)
	assert.Equal(t, int64(150), *env.Meta.Response.ProcessingTimeMs)
	assert.Equal(t, "c-1", env.Meta.Request.CorrelationID)
	assert.Equal(t, "2.0", env.Meta.Version)
	assert.Equal(t, "staging", env.Meta.Environment)
}

func TestBuilder_NoStartMeansNoProcessingTime(t *testing.T) {
	b := NewBuilder(DefaultConfig(), fixedClock())

	env := b.Failure(RequestInfo{Method: "GET", Path: "/"}, http.StatusBadRequest, "bad", "X", nil)

	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	assert.Nil(t, env.Meta.Response.ProcessingTimeMs)
	assert.Equal(t, "bad", env.Error.Message)
	assert.Equal(t, "X", env.Error.Code)
}

func TestBuilder_Wrap(t *testing.T) {
	b := NewBuilder(DefaultConfig(), fixedClock())
	req := RequestInfo{Method: "GET", Path: "/x"}

	wrapped := b.Wrap(map[string]int{"a": 1}, req, http.StatusOK)
	env, ok := wrapped.(Envelope)
	require.True(t, ok)
	assert.True(t, env.Success)

	assert.Equal(t, env, b.Wrap(env, req, http.StatusOK), "envolver un envoltorio no lo cambia")
	assert.Same(t, &env, b.Wrap(&env, req, http.StatusOK))

	failed := b.Wrap(map[string]string{"error": "boom"}, req, http.StatusBadGateway).(Envelope)
	assert.False(t, failed.Success)
	assert.Equal(t, "boom", failed.Error.Message)

	disabled := NewBuilder(Config{Enabled: false}, fixedClock())
	payload := map[string]int{"a": 1}
	assert.Equal(t, payload, disabled.Wrap(payload, req, http.StatusOK))
}

func TestMessageFromBody(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"error":"boom"}`, "boom"},
		{`{"error":{"message":"nested"}}`, "nested"},
		{`{"message":"from message"}`, "from message"},
		{`{"error":"first","message":"second"}`, "first"},
		{`{"other":1}`, `{"other":1}`},
		{`"plain json string"`, "plain json string"},
		{`not json at all`, "not json at all"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, messageFromBody([]byte(tt.body)))
		})
	}
}

func TestIsJSONContentType(t *testing.T) {
	assert.True(t, IsJSONContentType("application/json"))
	assert.True(t, IsJSONContentType("application/json; charset=utf-8"))
	assert.True(t, IsJSONContentType("application/problem+json"))
	assert.True(t, IsJSONContentType("application/vnd.acme.v1+json"))
	assert.False(t, IsJSONContentType("text/plain"))
	assert.False(t, IsJSONContentType("text/html; charset=utf-8"))
	assert.False(t, IsJSONContentType(""))
}

func TestEnvelope_NullDetailValueDecodesAsEmpty(t *testing.T) {
	raw := `{"success":false,"meta":{"request":{"method":"GET","path":"/"},"response":{"status":400,"statusCode":400,"reason":"Bad Request","timestamp":"2025-06-01T12:00:00Z"}},"error":{"message":"bad","details":{"field":null,"totalErrors":"1"}}}`

	var decoded Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))

	require.NotNil(t, decoded.Error)
	value, ok := decoded.Error.Details["field"]
	assert.True(t, ok, "la clave se conserva")
	assert.Empty(t, value)
	assert.Equal(t, "1", decoded.Error.Details["totalErrors"])
}
