package config

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/raywall/backend-faker/pkg/config/injector"
)

// Options controla as camadas opcionais do carregamento.
type Options struct {
	// File é o caminho de um arquivo YAML de configuração (opcional).
	File string
	// Flags são os valores informados na linha de comando, com chaves
	// separadas por ponto (ex: "cache.backend").
	Flags map[string]any
	// Injector resolve ${env.X}, ${ssm./path} e ${secret.id}. Nil usa injector.New().
	Injector *injector.Injector
}

// Load monta a configuração em camadas e valida o resultado.
func Load(ctx context.Context, opts Options) (*Config, error) {
	var cfg Config

	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}

	if opts.File != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := k.Unmarshal("", &cfg); err != nil {
			return nil, fmt.Errorf("unmarshaling config file: %w", err)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}

	if len(opts.Flags) > 0 {
		k := koanf.New(".")
		if err := k.Load(confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
		if err := k.Unmarshal("", &cfg); err != nil {
			return nil, fmt.Errorf("unmarshaling flags: %w", err)
		}
	}

	inj := opts.Injector
	if inj == nil {
		inj = injector.New()
	}
	if err := inj.Inject(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("falha na injeção de variáveis: %w", err)
	}

	if err := NewValidator().Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
