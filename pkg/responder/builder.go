package responder

import (
	"encoding/json"
	"fmt"
)

// Response é o corpo pronto de uma rota: os dados gerados, a serialização
// JSON já calculada e o status HTTP.
type Response struct {
	Status int    `json:"status"`
	Data   any    `json:"data"`
	Body   string `json:"body"`
}

// Build normaliza os dados e pré-serializa o corpo, de forma que respostas
// servidas do cache sejam byte a byte iguais à primeira.
func Build(status int, data any) (*Response, error) {
	clean := sanitize(data)

	bytes, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("erro json marshal: %w", err)
	}

	return &Response{
		Status: status,
		Data:   clean,
		Body:   string(bytes),
	}, nil
}

// ErrorBody monta o corpo `{"error": "..."}` usado nas respostas de falha.
func ErrorBody(err error) []byte {
	bytes, mErr := json.Marshal(map[string]string{"error": err.Error()})
	if mErr != nil {
		return []byte(`{"error":"internal error"}`)
	}
	return bytes
}

func sanitize(input any) any {
	switch x := input.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprintf("%v", k)] = sanitize(v)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[k] = sanitize(v)
		}
		return m
	case []map[string]any:
		l := make([]any, len(x))
		for i, v := range x {
			l[i] = sanitize(v)
		}
		return l
	case []any:
		l := make([]any, len(x))
		for i, v := range x {
			l[i] = sanitize(v)
		}
		return l
	default:
		return input
	}
}
