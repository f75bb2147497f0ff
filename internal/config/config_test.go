package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weegigs/wee-counter-go/counter"
)

func TestFromEnvironment(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		c, err := FromEnvironment()
		require.NoError(t, err)

		assert.Equal(t, counter.DefaultMaxCount, c.MaxCount)
		assert.Equal(t, 0, c.InitialCount)
		assert.Equal(t, 4*time.Second, c.BannerTTL)
		assert.Equal(t, TraceExporterNone, c.TraceExporter)
		assert.True(t, c.OTLPInsecure)
		assert.Empty(t, c.MetricsFile)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("COUNTER_MAX_COUNT", "25")
		t.Setenv("COUNTER_INITIAL_COUNT", "5")
		t.Setenv("COUNTER_BANNER_TTL", "1500ms")
		t.Setenv("LOGGING_LEVEL", "debug")
		t.Setenv("COUNTER_TRACE_EXPORTER", "Console")
		t.Setenv("COUNTER_METRICS_FILE", "/tmp/counter.prom")

		c, err := FromEnvironment()
		require.NoError(t, err)

		assert.Equal(t, 25, c.MaxCount)
		assert.Equal(t, 5, c.InitialCount)
		assert.Equal(t, 1500*time.Millisecond, c.BannerTTL)
		assert.Equal(t, "debug", c.LogLevel)
		assert.Equal(t, TraceExporterConsole, c.TraceExporter)
		assert.Equal(t, "/tmp/counter.prom", c.MetricsFile)

		store, err := counter.New(c.StoreOptions()...)
		require.NoError(t, err)
		assert.Equal(t, counter.State{Counter: 5, MaxCount: 25}, store.Read())
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		t.Setenv("COUNTER_MAX_COUNT", "ten")

		_, err := FromEnvironment()
		assert.Error(t, err)
	})

	t.Run("rejects initial count above the ceiling", func(t *testing.T) {
		t.Setenv("COUNTER_MAX_COUNT", "3")
		t.Setenv("COUNTER_INITIAL_COUNT", "4")

		_, err := FromEnvironment()
		assert.EqualError(t, err, "COUNTER_INITIAL_COUNT must be within [0, 3], got 4")
	})

	t.Run("rejects unknown exporters", func(t *testing.T) {
		t.Setenv("COUNTER_TRACE_EXPORTER", "zipkin")

		_, err := FromEnvironment()
		assert.EqualError(t, err, `unsupported COUNTER_TRACE_EXPORTER "zipkin"`)
	})

	t.Run("rejects bad banner durations", func(t *testing.T) {
		t.Setenv("COUNTER_BANNER_TTL", "soon")

		_, err := FromEnvironment()
		assert.Error(t, err)
	})
}
