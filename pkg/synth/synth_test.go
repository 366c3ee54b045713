package synth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/backend-faker/pkg/cache"
	"github.com/raywall/backend-faker/pkg/faker"
	"github.com/raywall/backend-faker/pkg/responder"
	"github.com/raywall/backend-faker/pkg/schema"
)

type MockLister struct {
	ListFunc func(ctx context.Context, path string) ([]*responder.Response, error)
}

func (m *MockLister) List(ctx context.Context, path string) ([]*responder.Response, error) {
	return m.ListFunc(ctx, path)
}

func TestSynthesize_Object(t *testing.T) {
	s := New(faker.NewCatalog(1), nil)
	tree := schema.Tree{
		"name": "firstName",
		"age":  "number(18,65)",
		"address": map[string]any{
			"city": "address.city",
			"geo":  map[string]any{"lat": "latitude"},
		},
		"active": true,
	}

	resp, err := s.Synthesize(context.Background(), "/users/:id", "7", tree)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)

	data := resp.Data.(map[string]any)
	assert.NotEmpty(t, data["name"])
	age := data["age"].(int)
	assert.GreaterOrEqual(t, age, 18)
	assert.LessOrEqual(t, age, 65)
	assert.Equal(t, true, data["active"])

	address := data["address"].(map[string]any)
	assert.NotEmpty(t, address["city"])
	assert.Contains(t, address["geo"].(map[string]any), "lat")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &decoded))
	assert.Len(t, decoded, 4)
}

func TestSynthesize_List(t *testing.T) {
	s := New(faker.NewCatalog(9), nil)
	tree := schema.Tree{"LIST": 5, "id": "uuid", "title": "lorem.sentence"}

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		resp, err := s.Synthesize(context.Background(), "/posts", "", tree)
		require.NoError(t, err)

		items, ok := resp.Data.([]any)
		require.True(t, ok, "esperado lista, recebido %T", resp.Data)
		assert.LessOrEqual(t, len(items), 5)
		seen[len(items)] = true

		for _, it := range items {
			m := it.(map[string]any)
			assert.NotContains(t, m, "LIST")
			assert.Contains(t, m, "title")
		}
	}
	assert.True(t, seen[0], "lista vazia nunca sorteada")
	assert.True(t, seen[5], "lista cheia nunca sorteada")
}

func TestSynthesize_EmptyListSerializesAsArray(t *testing.T) {
	s := New(faker.NewCatalog(1), nil)
	resp, err := s.Synthesize(context.Background(), "/none", "", schema.Tree{"LIST": 0, "id": "uuid"})
	require.NoError(t, err)
	assert.Equal(t, "[]", resp.Body)
}

func TestSynthesize_Join(t *testing.T) {
	ctx := context.Background()
	c := cache.New(nil)
	s := New(faker.NewCatalog(3), c)

	author, err := responder.Build(200, map[string]any{"id": 1, "name": "A"})
	require.NoError(t, err)
	require.NoError(t, c.Store().Put(ctx, "/authors", "", author))

	other, _ := responder.Build(200, []any{
		map[string]any{"id": 2, "name": "B"},
		map[string]any{"id": float64(1), "country": "BR"},
	})
	require.NoError(t, c.Store().Put(ctx, "/authors", "x", other))

	tree := schema.Tree{"JOIN": "/authors", "authorId": "number"}

	t.Run("Casa pelo id numerico", func(t *testing.T) {
		resp, err := s.Synthesize(ctx, "/books/:id", "1", tree)
		require.NoError(t, err)

		book := resp.Data.(map[string]any)
		assert.Equal(t, "A", book["name"])
		assert.Equal(t, "BR", book["country"])
		assert.Contains(t, book, "authorId")
		assert.NotContains(t, book, "JOIN")
	})

	t.Run("Sem candidato o item fica intacto", func(t *testing.T) {
		resp, err := s.Synthesize(ctx, "/books/:id", "99", tree)
		require.NoError(t, err)
		assert.NotContains(t, resp.Data.(map[string]any), "name")
	})

	t.Run("Id nao numerico ou ausente ignora o join", func(t *testing.T) {
		for _, id := range []string{"", "abc"} {
			resp, err := s.Synthesize(ctx, "/books/:id", id, tree)
			require.NoError(t, err)
			assert.NotContains(t, resp.Data.(map[string]any), "name")
		}
	})

	t.Run("Join em todos os itens da lista", func(t *testing.T) {
		listTree := schema.Tree{"JOIN": "/authors", "LIST": 3, "n": "number"}
		for i := 0; i < 20; i++ {
			resp, err := s.Synthesize(ctx, "/books/:id", "1", listTree)
			require.NoError(t, err)
			for _, it := range resp.Data.([]any) {
				assert.Equal(t, "A", it.(map[string]any)["name"])
			}
		}
	})
}

func TestSynthesize_JoinListerError(t *testing.T) {
	listErr := errors.New("redis down")
	s := New(faker.NewCatalog(1), &MockLister{
		ListFunc: func(ctx context.Context, path string) ([]*responder.Response, error) {
			return nil, listErr
		},
	})

	_, err := s.Synthesize(context.Background(), "/books/:id", "1", schema.Tree{"JOIN": "/authors", "a": "uuid"})
	assert.ErrorIs(t, err, listErr)
}

func TestSynthesize_Failures(t *testing.T) {
	s := New(faker.NewCatalog(1), nil)

	t.Run("Gerador inexistente identifica o campo", func(t *testing.T) {
		_, err := s.Synthesize(context.Background(), "/bad", "", schema.Tree{
			"ok":   "uuid",
			"user": map[string]any{"name": "fistName"},
		})
		var defErr *schema.DefinitionError
		require.ErrorAs(t, err, &defErr)
		assert.Equal(t, "/bad", defErr.Route)
		assert.Equal(t, "user.name", defErr.Field)

		var notFound *faker.GeneratorNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("Argumentos rejeitados", func(t *testing.T) {
		_, err := s.Synthesize(context.Background(), "/bad", "", schema.Tree{"age": "number(x,y)"})
		var invErr *faker.GeneratorInvocationError
		require.ErrorAs(t, err, &invErr)
		assert.ErrorContains(t, err, `"age"`)
	})

	t.Run("Sintaxe invalida", func(t *testing.T) {
		_, err := s.Synthesize(context.Background(), "/bad", "", schema.Tree{"age": "number(1"})
		var defErr *schema.DefinitionError
		assert.ErrorAs(t, err, &defErr)
	})

	t.Run("LIST invalido", func(t *testing.T) {
		_, err := s.Synthesize(context.Background(), "/bad", "", schema.Tree{"LIST": "many"})
		var defErr *schema.DefinitionError
		assert.ErrorAs(t, err, &defErr)
	})
}

func TestSynthesize_DoesNotMutateSource(t *testing.T) {
	s := New(faker.NewCatalog(1), nil)
	tree := schema.Tree{
		"LIST": 2,
		"JOIN": "/x",
		"user": map[string]any{"name": "firstName"},
	}
	snapshot, err := json.Marshal(tree)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.Synthesize(context.Background(), "/p/:id", "1", tree)
		require.NoError(t, err)
	}

	after, _ := json.Marshal(tree)
	assert.JSONEq(t, string(snapshot), string(after))
}

func TestCheck(t *testing.T) {
	s := New(faker.NewCatalog(1), nil)

	errs := s.Check(schema.Route{Path: "/r", Fields: schema.Tree{
		"a": "nope",
		"b": "uuid",
		"c": map[string]any{"d": "alsoNope"},
	}})
	require.Len(t, errs, 2)

	assert.Empty(t, s.Check(schema.Route{Path: "/ok", Fields: schema.Tree{"b": "uuid"}}))
}
