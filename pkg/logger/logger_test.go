package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"", "prod", "dev", "nop"} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		assert.NotNil(t, l)
	}

	_, err := New("verbose")
	assert.EqualError(t, err, `unknown log mode "verbose"`)
}

func TestInit(t *testing.T) {
	assert.NotNil(t, Logger(), "antes de Init hay un logger nop")

	Init("nop")

	assert.NotNil(t, Logger())
	assert.NotNil(t, Sugar())
	assert.Panics(t, func() { Init("verbose") })
}
