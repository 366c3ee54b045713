package cache

import (
	"context"
	"sort"
	"sync"

	"github.com/raywall/backend-faker/pkg/responder"
)

// MemoryStore guarda as respostas em mapas aninhados path -> id -> resposta.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]*responder.Response
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[string]*responder.Response)}
}

func (s *MemoryStore) Get(_ context.Context, path, id string) (*responder.Response, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp, ok := s.entries[path][id]
	return resp, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, path, id string, resp *responder.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.entries[path]
	if !ok {
		byID = make(map[string]*responder.Response)
		s.entries[path] = byID
	}
	byID[id] = resp
	return nil
}

func (s *MemoryStore) List(_ context.Context, path string) ([]*responder.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.entries[path]
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*responder.Response, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id])
	}
	return out, nil
}
