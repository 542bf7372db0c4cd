package observability

import (
	"testing"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/bar-order-service/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMetrics(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		provider, err := SetupMetrics(config.MetricsConf{})
		require.NoError(t, err)
		assert.IsType(t, &NoopProvider{}, provider)
		assert.NoError(t, provider.Count("orders.created", 1, nil))
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{
				Enabled:   true,
				Addr:      "localhost:8125",
				Namespace: "bar_orders.",
				Tags:      []string{"env:test"},
			},
		}

		provider, err := SetupMetrics(cfg)
		require.NoError(t, err)
		dd, ok := provider.(*DatadogProvider)
		require.True(t, ok, "got %T", provider)
		assert.NoError(t, dd.Close())
	})
}

func TestDatadogProvider_ForwardsToClient(t *testing.T) {
	// NoOpClient implementa ClientInterface sem rede
	provider := &DatadogProvider{client: &statsd.NoOpClient{}}

	assert.NoError(t, provider.Count("orders.created", 1, []string{"tenant:a"}))
	assert.NoError(t, provider.Gauge("orders.pending", 3, nil))
	assert.NoError(t, provider.Histogram("orders.total", 1200, nil))
}
