package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por outro backend sem alterar o servidor.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
	Close() error
}

// Nomes das métricas emitidas pelo servidor. O namespace é aplicado pelo provider.
const (
	MetricRequests       = "requests"
	MetricCacheHit       = "cache.hit"
	MetricCacheMiss      = "cache.miss"
	MetricSynthesisError = "synthesis.error"
	MetricLatency        = "request.latency_ms"
	MetricDelay          = "request.delay_ms"
	MetricRoutes         = "routes"
)
