// Package synth materializa o corpo de uma rota a partir da sua árvore de
// campos: expande LIST, resolve JOIN e reconstrói o objeto aninhado.
package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"

	"github.com/mitchellh/copystructure"

	"github.com/raywall/backend-faker/pkg/faker"
	"github.com/raywall/backend-faker/pkg/responder"
	"github.com/raywall/backend-faker/pkg/schema"
)

// Lister dá acesso às respostas já memorizadas de um path, usadas como
// candidatas no JOIN.
type Lister interface {
	List(ctx context.Context, path string) ([]*responder.Response, error)
}

type Synthesizer struct {
	catalog *faker.Catalog
	lister  Lister
}

func New(catalog *faker.Catalog, lister Lister) *Synthesizer {
	return &Synthesizer{catalog: catalog, lister: lister}
}

// field é uma folha já ligada ao seu gerador, ou um valor literal.
type field struct {
	path    []string
	entry   faker.Entry
	args    []any
	literal any
	isConst bool
}

type plan struct {
	fields     []field
	directives schema.Directives
}

// Synthesize gera a resposta de (route, id). Um campo que não resolve ou
// cujo gerador rejeita os argumentos aborta apenas esta resposta.
func (s *Synthesizer) Synthesize(ctx context.Context, route, id string, tree schema.Tree) (*responder.Response, error) {
	p, errs := s.compile(route, tree)
	if len(errs) > 0 {
		return nil, errs[0]
	}

	count := 1
	if p.directives.HasList {
		count = s.catalog.IntN(0, p.directives.ListMax)
	}

	items := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		item, err := s.generate(route, p.fields)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if p.directives.Join != "" {
		if err := s.join(ctx, p.directives.Join, id, items); err != nil {
			return nil, err
		}
	}

	if p.directives.HasList {
		return responder.Build(200, items)
	}
	return responder.Build(200, items[0])
}

// Check valida todos os campos da rota sem gerar valores.
func (s *Synthesizer) Check(route schema.Route) []error {
	_, errs := s.compile(route.Path, route.Fields)
	return errs
}

func (s *Synthesizer) compile(route string, tree schema.Tree) (plan, []error) {
	cloned, err := copystructure.Copy(tree)
	if err != nil {
		return plan{}, []error{&schema.DefinitionError{Route: route, Err: fmt.Errorf("failed to clone field tree: %w", err)}}
	}
	clone, _ := cloned.(schema.Tree)

	set, err := schema.Deflate(clone, route)
	if err != nil {
		return plan{}, []error{err}
	}

	p := plan{directives: set.Directives, fields: make([]field, 0, len(set.Leaves))}
	var errs []error
	for _, leaf := range set.Leaves {
		raw, ok := leaf.Spec.(string)
		if !ok {
			p.fields = append(p.fields, field{path: leaf.Path, literal: leaf.Spec, isConst: true})
			continue
		}

		spec, err := faker.ParseSpec(raw)
		if err != nil {
			errs = append(errs, &schema.DefinitionError{Route: route, Field: leaf.Key(), Err: err})
			continue
		}
		entry, err := s.catalog.Resolve(spec.Method)
		if err != nil {
			errs = append(errs, &schema.DefinitionError{Route: route, Field: leaf.Key(), Err: err})
			continue
		}
		p.fields = append(p.fields, field{path: leaf.Path, entry: entry, args: spec.Args})
	}
	return p, errs
}

func (s *Synthesizer) generate(route string, fields []field) (map[string]any, error) {
	values := make([]schema.Value, 0, len(fields))
	for _, f := range fields {
		if f.isConst {
			values = append(values, schema.Value{Path: f.path, Data: f.literal})
			continue
		}
		v, err := s.catalog.Invoke(f.entry, f.args)
		if err != nil {
			return nil, fmt.Errorf("route %s, field %q: %w", route, schema.Leaf{Path: f.path}.Key(), err)
		}
		values = append(values, schema.Value{Path: f.path, Data: v})
	}
	return schema.Inflate(values), nil
}

// join copia, em cada item gerado, os campos de toda resposta memorizada
// em target cujo "id" é igual ao id numérico da requisição. Sem id
// numérico, ou sem candidatos, os itens ficam como estão.
func (s *Synthesizer) join(ctx context.Context, target, id string, items []map[string]any) error {
	if id == "" || s.lister == nil {
		return nil
	}
	want, err := strconv.Atoi(id)
	if err != nil {
		return nil
	}

	responses, err := s.lister.List(ctx, target)
	if err != nil {
		return fmt.Errorf("join %s: %w", target, err)
	}

	for _, resp := range responses {
		for _, candidate := range candidates(resp.Data) {
			if !matchesID(candidate["id"], want) {
				continue
			}
			for _, item := range items {
				maps.Copy(item, candidate)
			}
		}
	}
	return nil
}

func candidates(data any) []map[string]any {
	switch v := data.(type) {
	case map[string]any:
		return []map[string]any{v}
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, e := range v {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case []map[string]any:
		return v
	}
	return nil
}

func matchesID(v any, want int) bool {
	switch n := v.(type) {
	case int:
		return n == want
	case int64:
		return n == int64(want)
	case float64:
		return n == float64(want)
	case json.Number:
		i, err := n.Int64()
		return err == nil && i == int64(want)
	}
	return false
}
