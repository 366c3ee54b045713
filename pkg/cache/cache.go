package cache

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/raywall/backend-faker/pkg/responder"
)

// BuildFunc sintetiza a resposta em caso de miss.
type BuildFunc func(ctx context.Context) (*responder.Response, error)

// Cache aplica a memorização por (path, id) sobre um Store. Misses
// concorrentes para a mesma identidade executam a síntese uma única vez.
type Cache struct {
	store Store
	group singleflight.Group
}

func New(store Store) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Cache{store: store}
}

// Store devolve o armazenamento subjacente.
func (c *Cache) Store() Store {
	return c.store
}

// List repassa para o Store; usado pela resolução de JOIN.
func (c *Cache) List(ctx context.Context, path string) ([]*responder.Response, error) {
	return c.store.List(ctx, path)
}

// GetOrBuild devolve a resposta guardada para (path, id) ou chama build e
// grava o resultado. Requisições sem id são sempre sintetizadas de novo;
// o resultado ainda é gravado sob o id vazio para ficar visível ao JOIN.
func (c *Cache) GetOrBuild(ctx context.Context, path, id string, build BuildFunc) (*responder.Response, bool, error) {
	if id == "" {
		resp, err := build(ctx)
		if err != nil {
			return nil, false, err
		}
		if err := c.store.Put(ctx, path, id, resp); err != nil {
			return nil, false, err
		}
		return resp, false, nil
	}

	if resp, ok, err := c.store.Get(ctx, path, id); err != nil {
		return nil, false, err
	} else if ok {
		return resp, true, nil
	}

	v, err, _ := c.group.Do(path+"\x00"+id, func() (interface{}, error) {
		if resp, ok, err := c.store.Get(ctx, path, id); err != nil {
			return nil, err
		} else if ok {
			return resp, nil
		}

		resp, err := build(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.store.Put(ctx, path, id, resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*responder.Response), false, nil
}
