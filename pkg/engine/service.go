package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/raywall/backend-faker/pkg/cache"
	"github.com/raywall/backend-faker/pkg/config"
	"github.com/raywall/backend-faker/pkg/faker"
	"github.com/raywall/backend-faker/pkg/logger"
	"github.com/raywall/backend-faker/pkg/metrics"
	"github.com/raywall/backend-faker/pkg/observability"
	"github.com/raywall/backend-faker/pkg/responder"
	"github.com/raywall/backend-faker/pkg/schema"
	"github.com/raywall/backend-faker/pkg/synth"
)

// MockEngine reúne tudo o que uma requisição precisa: schema, catálogo de
// geradores, cache de respostas e observabilidade. Uma instância por
// servidor; nada aqui é global.
type MockEngine struct {
	Config      *config.Config
	Schema      schema.Schema
	Logger      zerolog.Logger
	Metrics     metrics.Provider
	Recorder    *metrics.Recorder
	Catalog     *faker.Catalog
	Cache       *cache.Cache
	Synthesizer *synth.Synthesizer
}

// Option permite substituir dependências na construção (usado em testes).
type Option func(*options)

type options struct {
	store     cache.Store
	provider  metrics.Provider
	logOutput io.Writer
}

// WithStore força o Store do cache, ignorando cfg.Cache.
func WithStore(s cache.Store) Option {
	return func(o *options) { o.store = s }
}

// WithMetrics força o provider de métricas, ignorando cfg.Metrics.
func WithMetrics(p metrics.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithLogOutput redireciona os logs.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

func NewMockEngine(cfg *config.Config, s schema.Schema, opts ...Option) (*MockEngine, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	log := logger.Configure(cfg.Logging, o.logOutput)

	provider := o.provider
	if provider == nil {
		var err error
		provider, err = observability.SetupMetrics(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("falha métricas: %w", err)
		}
	}

	store := o.store
	if store == nil {
		store = newStore(cfg.Cache)
	}

	catalog := faker.NewCatalog(cfg.Seed)
	c := cache.New(store)

	return &MockEngine{
		Config:      cfg,
		Schema:      s,
		Logger:      log,
		Metrics:     provider,
		Recorder:    metrics.NewRecorder(provider, log),
		Catalog:     catalog,
		Cache:       c,
		Synthesizer: synth.New(catalog, c),
	}, nil
}

func newStore(cfg config.CacheConf) cache.Store {
	if cfg.Backend == "redis" {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		return cache.NewRedisStore(client, cfg.Redis.Prefix)
	}
	return cache.NewMemoryStore()
}

// Respond devolve a resposta de (route, id), do cache ou recém-sintetizada.
func (me *MockEngine) Respond(ctx context.Context, route schema.Route, id string) (*responder.Response, error) {
	resp, hit, err := me.Cache.GetOrBuild(ctx, route.Path, id, func(ctx context.Context) (*responder.Response, error) {
		return me.Synthesizer.Synthesize(ctx, route.Path, id, route.Fields)
	})
	if err != nil {
		me.Recorder.SynthesisError(route.Path)
		return nil, err
	}
	me.Recorder.Cache(route.Path, hit)
	return resp, nil
}

// Check valida todas as rotas e loga cada campo mal definido. As rotas
// continuam registradas; apenas as requisições para elas falham.
func (me *MockEngine) Check() map[string][]error {
	out := make(map[string][]error)
	for _, route := range me.Schema {
		errs := me.Synthesizer.Check(route)
		if len(errs) == 0 {
			continue
		}
		out[route.Path] = errs
		for _, err := range errs {
			me.Logger.Warn().Err(err).Str("route", route.Path).Msg("campo mal definido no schema")
		}
	}
	return out
}

// Delay sorteia o atraso artificial da requisição em [0, delay] ms.
func (me *MockEngine) Delay() time.Duration {
	if me.Config.MaxDelayMs <= 0 {
		return 0
	}
	return time.Duration(me.Catalog.IntN(0, me.Config.MaxDelayMs)) * time.Millisecond
}

// Close libera os recursos de observabilidade.
func (me *MockEngine) Close() error {
	return me.Metrics.Close()
}
