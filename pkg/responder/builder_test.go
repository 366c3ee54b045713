package responder

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Run("Objeto", func(t *testing.T) {
		resp, err := Build(200, map[string]any{
			"id":   1,
			"name": "Ana",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
		assert.JSONEq(t, `{"id":1,"name":"Ana"}`, resp.Body)
	})

	t.Run("Lista vazia serializa como array", func(t *testing.T) {
		resp, err := Build(200, []map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "[]", resp.Body)
		assert.Equal(t, []any{}, resp.Data)
	})

	t.Run("Mapas com chave interface sao normalizados", func(t *testing.T) {
		resp, err := Build(200, map[string]any{
			"meta": map[any]any{1: "um", "dois": 2},
		})
		require.NoError(t, err)

		var decoded map[string]map[string]any
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &decoded))
		assert.Equal(t, "um", decoded["meta"]["1"])
		assert.Equal(t, map[string]any{"1": "um", "dois": 2}, resp.Data.(map[string]any)["meta"])
	})

	t.Run("Valor nao serializavel", func(t *testing.T) {
		_, err := Build(200, map[string]any{"n": math.Inf(1)})
		assert.Error(t, err)
	})
}

func TestErrorBody(t *testing.T) {
	assert.JSONEq(t, `{"error":"boom"}`, string(ErrorBody(errors.New("boom"))))
}
