package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name. The cache layer
// increments it from a client hook.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tweetapp_redis_errors_total",
	Help: "Total number of Redis command errors",
}, []string{"command"})

// SequenceIssued counts ids issued per sequence name.
var SequenceIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tweetapp_sequence_ids_issued_total",
	Help: "Total number of identifiers issued per sequence counter",
}, []string{"sequence"})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
