package metrics

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Recorder traduz os eventos do servidor em métricas. Falhas de envio são
// apenas logadas em debug: métricas nunca derrubam uma requisição.
type Recorder struct {
	provider Provider
	log      zerolog.Logger
}

func NewRecorder(p Provider, log zerolog.Logger) *Recorder {
	return &Recorder{provider: p, log: log}
}

func routeTag(route string) string {
	return "route:" + route
}

func (r *Recorder) check(name string, err error) {
	if err != nil {
		r.log.Debug().Err(err).Str("metric", name).Msg("falha ao enviar métrica")
	}
}

// Request registra uma requisição concluída.
func (r *Recorder) Request(route string, status int, latency time.Duration) {
	tags := []string{routeTag(route), "status:" + strconv.Itoa(status)}
	r.check(MetricRequests, r.provider.Count(MetricRequests, 1, tags))
	r.check(MetricLatency, r.provider.Histogram(MetricLatency, float64(latency.Milliseconds()), tags))
}

// Cache registra um hit ou miss do cache de respostas.
func (r *Recorder) Cache(route string, hit bool) {
	name := MetricCacheMiss
	if hit {
		name = MetricCacheHit
	}
	r.check(name, r.provider.Count(name, 1, []string{routeTag(route)}))
}

func (r *Recorder) SynthesisError(route string) {
	r.check(MetricSynthesisError, r.provider.Count(MetricSynthesisError, 1, []string{routeTag(route)}))
}

func (r *Recorder) Delay(route string, d time.Duration) {
	r.check(MetricDelay, r.provider.Histogram(MetricDelay, float64(d.Milliseconds()), []string{routeTag(route)}))
}

// Routes publica quantas rotas foram registradas.
func (r *Recorder) Routes(n int) {
	r.check(MetricRoutes, r.provider.Gauge(MetricRoutes, float64(n), nil))
}
