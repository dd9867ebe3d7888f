package progrock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opnix.dev/opnix/internal/adapters/telemetry/progrock"
)

func TestRecorder_Integration(t *testing.T) {
	recorder := progrock.New()
	require.NotNil(t, recorder)

	_, vertex := recorder.Record(context.Background(), "convert foo-1.0")
	vertex.Log("classifying dependencies")
	vertex.Complete(nil)

	assert.NoError(t, recorder.Close())
}
