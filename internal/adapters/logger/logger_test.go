package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opnix.dev/opnix/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLoggerWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Info("converting package")
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "converting package")
}

func TestLoggerWarn(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Warn("filter did not match")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Error(zerr.New("boom"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "boom")
}
