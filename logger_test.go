package authclient_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	authclient "github.com/renthub-et/go-authclient"
)

func TestZerologAdapter(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)

	var adapter authclient.Logger = authclient.NewZerologAdapter(logger)

	adapter.Debug("debug %d", 1)
	adapter.Info("info %s", "line")
	adapter.Warn("warn line")
	adapter.Error("error line")

	out := buf.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, "debug 1")
	assert.Contains(t, out, "info line")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"level":"error"`)
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.InfoLevel)

	adapter := authclient.NewZerologAdapter(logger)
	adapter.Debug("suppressed")
	adapter.Info("kept")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "kept")
}
