package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/raywall/backend-faker/pkg/config"
	"github.com/raywall/backend-faker/pkg/engine"
	"github.com/raywall/backend-faker/pkg/schema"
	"github.com/raywall/backend-faker/pkg/transport"
)

var (
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	schemaLoader  = schema.Load
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// bootstrap carrega configuração e schema e monta o engine.
func bootstrap(ctx context.Context, opts config.Options) (*engine.MockEngine, error) {
	cfg, err := config.Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	s, err := schemaLoader(ctx, cfg.SchemaPath)
	if err != nil {
		return nil, err
	}

	return engine.NewMockEngine(cfg, s)
}

// run contém a lógica principal testável
func run(ctx context.Context, opts config.Options) error {
	me, err := bootstrap(ctx, opts)
	if err != nil {
		return err
	}
	defer me.Close()

	log.Logger = me.Logger
	me.Check()

	return serverStarter(me)
}

// validate reporta todos os campos mal definidos do schema.
func validate(ctx context.Context, opts config.Options, out io.Writer) error {
	me, err := bootstrap(ctx, opts)
	if err != nil {
		return err
	}
	defer me.Close()

	problems := me.Check()
	if len(problems) == 0 {
		fmt.Fprintf(out, "schema %s ok: %d rotas\n", me.Config.SchemaPath, len(me.Schema))
		return nil
	}

	routes := make([]string, 0, len(problems))
	total := 0
	for route, errs := range problems {
		routes = append(routes, route)
		total += len(errs)
	}
	sort.Strings(routes)

	for _, route := range routes {
		for _, err := range problems[route] {
			fmt.Fprintf(out, "%s: %v\n", route, err)
		}
	}
	return fmt.Errorf("schema %s inválido: %d campo(s) com erro", me.Config.SchemaPath, total)
}
