package metrics

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Event identifica um fato de negócio que gera métrica.
type Event string

const (
	OrderCreated       Event = "order_created"
	OrderTotal         Event = "order_total"
	NotificationFailed Event = "notification_failed"
	TenantResetDeleted Event = "tenant_reset_deleted"
)

// DefaultDefinitions liga cada evento ao nome e tipo enviados ao provider.
func DefaultDefinitions() map[Event]MetricDefinition {
	return map[Event]MetricDefinition{
		OrderCreated:       {Name: "orders.created", Type: TypeCount},
		OrderTotal:         {Name: "orders.total", Type: TypeHistogram},
		NotificationFailed: {Name: "orders.notification_failed", Type: TypeCount},
		TenantResetDeleted: {Name: "tenant.reset.deleted", Type: TypeCount},
	}
}

// Recorder traduz eventos de domínio em chamadas ao Provider. Falhas de
// envio nunca chegam ao chamador: vão para o log em nível debug.
type Recorder struct {
	definitions map[Event]MetricDefinition
	provider    Provider
}

// NewRecorder usa DefaultDefinitions; provider nil descarta tudo.
func NewRecorder(provider Provider) *Recorder {
	return &Recorder{
		definitions: DefaultDefinitions(),
		provider:    provider,
	}
}

// Record envia value para a métrica associada ao evento.
func (r *Recorder) Record(event Event, value float64, tags ...string) {
	if r == nil || r.provider == nil {
		return
	}
	if err := r.send(event, value, tags); err != nil {
		log.Debug().Err(err).Str("event", string(event)).Msg("metric not sent")
	}
}

func (r *Recorder) send(event Event, value float64, tags []string) error {
	def, exists := r.definitions[event]
	if !exists {
		return fmt.Errorf("metrics: undefined event %s", event)
	}

	switch def.Type {
	case TypeCount:
		return r.provider.Count(def.Name, value, tags)
	case TypeGauge:
		return r.provider.Gauge(def.Name, value, tags)
	case TypeHistogram:
		return r.provider.Histogram(def.Name, value, tags)
	default:
		return fmt.Errorf("metrics: unsupported type %s", def.Type)
	}
}
