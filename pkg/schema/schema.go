package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Chaves de controle. As variantes com underscore são aceitas por
// compatibilidade com schemas antigos.
const (
	KeyList       = "LIST"
	KeyJoin       = "JOIN"
	LegacyKeyList = "_LIST_"
	LegacyKeyJoin = "_CONNECT_"
)

// Tree é a árvore de campos de uma rota: cada valor é uma string de
// gerador, uma sub-árvore ou uma chave de controle.
type Tree = map[string]any

// Route associa um path HTTP à sua árvore de campos.
type Route struct {
	Path   string
	Fields Tree
}

// Schema é a lista ordenada de rotas carregada do arquivo.
type Schema []Route

// IsReserved informa se a chave é uma diretiva de controle.
func IsReserved(key string) bool {
	switch key {
	case KeyList, KeyJoin, LegacyKeyList, LegacyKeyJoin:
		return true
	}
	return false
}

// UnmarshalJSON decodifica `{"/path": {...}}`, exigindo exatamente uma chave.
func (r *Route) UnmarshalJSON(data []byte) error {
	var raw map[string]Tree
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("route definition must be an object of {path: fields}: %w", err)
	}
	return r.fromMap(raw)
}

// MarshalJSON devolve o mesmo formato aceito por UnmarshalJSON.
func (r Route) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]Tree{r.Path: r.Fields})
}

// UnmarshalYAML permite escrever o schema em YAML com a mesma estrutura.
func (r *Route) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]Tree
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("route definition must be a mapping of {path: fields}: %w", err)
	}
	return r.fromMap(raw)
}

func (r *Route) fromMap(raw map[string]Tree) error {
	if len(raw) != 1 {
		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("route definition must have exactly one path, got %d %v", len(raw), keys)
	}
	for path, fields := range raw {
		if fields == nil {
			fields = Tree{}
		}
		r.Path = path
		r.Fields = fields
	}
	return nil
}

// Paths lista os paths na ordem do schema.
func (s Schema) Paths() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Path
	}
	return out
}

// Find devolve a rota com o path informado.
func (s Schema) Find(path string) (Route, bool) {
	for _, r := range s {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}
