package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger(t *testing.T) {
	t.Cleanup(func() {
		Configure(Config{Level: InfoLevel, Pretty: true, Output: os.Stdout})
	})
}

func TestConfigureLevelFiltering(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})

	Debug().Msg("too quiet")
	Info().Msg("still too quiet")
	Warn().Msg("loud enough")
	Error().Msg("also loud")

	out := buf.String()
	assert.NotContains(t, out, "too quiet")
	assert.Contains(t, out, "loud enough")
	assert.Contains(t, out, "also loud")
}

func TestConfigureJSONOutput(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf})

	Info().Str("school", "MSU").Msg("catalog loaded")

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"school":"MSU"`)
	assert.Contains(t, out, `"message":"catalog loaded"`)
}

func TestWithField(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf})

	lgr := WithField("component", "indexer")
	lgr.Info().Msg("embedded course")

	assert.Contains(t, buf.String(), `"component":"indexer"`)
}
