package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDomainEntityId_RoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := NewDomainEntityId()

		parsed, err := ParseDomainEntityId(id.String())

		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
}

func TestParseDomainEntityId_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not-a-uuid",
		"123e4567-e89b-12d3-a456-42661417400",   // corto
		"123e4567e89b12d3a456426614174000",      // sin guiones
		"{123e4567-e89b-12d3-a456-426614174000}", // con llaves
		"123e4567-e89b-12d3-a456-42661417400z",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDomainEntityId(in)

			require.Error(t, err)
			var fe *FormatError
			assert.ErrorAs(t, err, &fe)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestParseDomainEntityId_EmptyMessage(t *testing.T) {
	_, err := ParseDomainEntityId("")
	assert.EqualError(t, err, "UUID string cannot be empty")
}

func TestDomainEntityId_JSON(t *testing.T) {
	type wrapper struct {
		ID DomainEntityId `json:"id"`
	}
	id := MustParseDomainEntityId("123e4567-e89b-12d3-a456-426614174000")

	b, err := json.Marshal(wrapper{ID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"123e4567-e89b-12d3-a456-426614174000"}`, string(b))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, id, decoded.ID)

	err = json.Unmarshal([]byte(`{"id":"bad"}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDomainEntityId_Scan(t *testing.T) {
	id := NewDomainEntityId()

	var fromString DomainEntityId
	require.NoError(t, fromString.Scan(id.String()))
	assert.Equal(t, id, fromString)

	var fromBytes DomainEntityId
	raw := id.UUID()
	require.NoError(t, fromBytes.Scan(raw[:]))
	assert.Equal(t, id, fromBytes)

	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, id.String(), v)

	var bad DomainEntityId
	assert.Error(t, bad.Scan(42))
}

func TestDomainEntityId_UsableAsMapKey(t *testing.T) {
	id := NewDomainEntityId()
	same := MustParseDomainEntityId(id.String())

	m := map[DomainEntityId]int{id: 1}
	m[same]++

	assert.Len(t, m, 1)
	assert.Equal(t, 2, m[id])
}
