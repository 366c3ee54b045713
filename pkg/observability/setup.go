package observability

import (
	"fmt"
	"strings"

	"github.com/DataDog/datadog-go/v5/statsd"

	"github.com/raywall/backend-faker/pkg/config"
	"github.com/raywall/backend-faker/pkg/metrics"
)

// NoopProvider é um placeholder para quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }
func (n *NoopProvider) Close() error                                              { return nil }

// DatadogProvider envia as métricas do servidor para o agente via DogStatsD.
type DatadogProvider struct {
	client statsd.ClientInterface
}

func NewDatadogProvider(client statsd.ClientInterface) *DatadogProvider {
	return &DatadogProvider{client: client}
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

// Histogram usa distribution: latência e delay são agregados no servidor
// do Datadog, entre todas as instâncias do faker.
func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Distribution(name, value, tags, 1)
}

// Close descarrega o buffer do statsd.
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// SetupMetrics escolhe o provider a partir da configuração.
func SetupMetrics(cfg config.MetricsConf) (metrics.Provider, error) {
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	client, err := statsd.New(cfg.Datadog.Addr, clientOptions(cfg.Datadog)...)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	return NewDatadogProvider(client), nil
}

func clientOptions(cfg config.DatadogConf) []statsd.Option {
	tags := []string{"service:backend-faker"}
	if cfg.Env != "" {
		tags = append(tags, "env:"+cfg.Env)
	}

	opts := []statsd.Option{statsd.WithTags(tags)}
	if ns := strings.TrimSuffix(cfg.Namespace, "."); ns != "" {
		opts = append(opts, statsd.WithNamespace(ns+"."))
	}
	return opts
}
