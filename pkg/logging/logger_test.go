package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmi313/tagratecheck/pkg/logging"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)

	logger.Info().Str("dataset", "SY2023Steelhead").Msg("loading")

	output := buf.String()
	assert.Contains(t, output, `"dataset":"SY2023Steelhead"`)
	assert.Contains(t, output, `"message":"loading"`)
}

func TestDefault(t *testing.T) {
	logger := logging.Default()
	require.NotNil(t, logger)
}

func TestSetDefault(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(*original) })

	var buf bytes.Buffer
	logging.SetDefault(logging.New(&buf))

	logging.Info().Msg("via package-level helper")
	assert.Contains(t, buf.String(), "via package-level helper")
}

func TestTestLogger(t *testing.T) {
	log := logging.NewTestLogger(t)

	log.Warn().Str("file", "rates.csv").Msg("header fallback")

	assert.True(t, log.Contains("header fallback"))
	assert.Equal(t, 1, log.Count())

	log.Clear()
	assert.Equal(t, 0, log.Count())
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNopLogger()
	require.NotNil(t, logger)
	logger.Error().Msg("discarded")
}
