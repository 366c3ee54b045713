// Package cache memoriza as respostas geradas por (path, id) durante a vida
// do processo.
package cache

import (
	"context"

	"github.com/raywall/backend-faker/pkg/responder"
)

// Store é o armazenamento das respostas. Implementações precisam ser
// seguras para uso concorrente.
type Store interface {
	// Get devolve a resposta guardada para (path, id). O bool indica se houve hit.
	Get(ctx context.Context, path, id string) (*responder.Response, bool, error)
	// Put grava (ou sobrescreve) a resposta para (path, id).
	Put(ctx context.Context, path, id string, resp *responder.Response) error
	// List devolve todas as respostas guardadas sob um path, ordenadas por id.
	List(ctx context.Context, path string) ([]*responder.Response, error)
}
