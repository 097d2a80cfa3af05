package core

import "github.com/prometheus/client_golang/prometheus"

// bridgeMetrics mirrors the repo's existing registry-plus-gauges pattern
// (HealthLogger in system_health_logging.go) scoped to the bridge module.
// These are ambient observability, never read back by the state machine
// itself — a metrics backend outage must never change Lock/Witness/Release
// behavior.
type bridgeMetrics struct {
	outgoingOpened    prometheus.Counter
	outgoingFinalized prometheus.Counter
	incomingFinalized prometheus.Counter
	divergentBuckets  prometheus.Counter
}

func newBridgeMetrics(reg prometheus.Registerer) *bridgeMetrics {
	m := &bridgeMetrics{
		outgoingOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridge_outgoing_slots_opened_total",
			Help: "Outgoing signature-collection slots opened by Lock.",
		}),
		outgoingFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridge_outgoing_slots_finalized_total",
			Help: "Outgoing slots that reached witness threshold.",
		}),
		incomingFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridge_incoming_slots_finalized_total",
			Help: "Incoming slots that reached witness threshold on one bucket.",
		}),
		divergentBuckets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridge_incoming_divergent_buckets_total",
			Help: "Distinct operation-hash buckets opened for an incoming id beyond the first.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.outgoingOpened, m.outgoingFinalized, m.incomingFinalized, m.divergentBuckets)
	}
	return m
}

var metrics = newBridgeMetrics(nil)

// SetMetricsRegistry re-registers the bridge's counters against reg,
// mirroring HealthLogger's pattern of taking its own prometheus.Registry
// rather than assuming the global default registry.
func SetMetricsRegistry(reg prometheus.Registerer) {
	metrics = newBridgeMetrics(reg)
}
