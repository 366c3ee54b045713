package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Leaf é um campo folha da árvore, identificado pelo caminho explícito de
// segmentos até ele. Spec guarda o valor cru do schema (normalmente a
// string do gerador).
type Leaf struct {
	Path []string
	Spec any
}

// Key devolve o caminho com segmentos separados por ponto, usado apenas
// em mensagens e logs.
func (l Leaf) Key() string {
	return strings.Join(l.Path, ".")
}

// Directives reúne as chaves de controle encontradas no topo da rota.
type Directives struct {
	HasList bool
	ListMax int
	Join    string
}

// FlatSet é o resultado de Deflate.
type FlatSet struct {
	Leaves     []Leaf
	Directives Directives
}

// Deflate percorre a árvore em profundidade e devolve as folhas em ordem
// determinística, separando as diretivas de controle do topo. Chaves
// reservadas em níveis internos são tratadas como campos comuns.
func Deflate(tree Tree, route string) (FlatSet, error) {
	var out FlatSet
	for _, key := range sortedKeys(tree) {
		value := tree[key]
		switch key {
		case KeyList, LegacyKeyList:
			n, err := listCount(value)
			if err != nil {
				return FlatSet{}, &DefinitionError{Route: route, Field: key, Err: err}
			}
			out.Directives.HasList = true
			out.Directives.ListMax = n
			continue
		case KeyJoin, LegacyKeyJoin:
			target, ok := value.(string)
			if !ok || target == "" {
				return FlatSet{}, &DefinitionError{Route: route, Field: key, Err: fmt.Errorf("join target must be a non-empty path string, got %T", value)}
			}
			out.Directives.Join = target
			continue
		}
		out.Leaves = deflateInto(out.Leaves, []string{key}, value)
	}
	return out, nil
}

func deflateInto(acc []Leaf, prefix []string, value any) []Leaf {
	child, ok := asTree(value)
	if !ok || len(child) == 0 {
		path := make([]string, len(prefix))
		copy(path, prefix)
		if ok {
			value = map[string]any{}
		}
		return append(acc, Leaf{Path: path, Spec: value})
	}
	for _, key := range sortedKeys(child) {
		next := make([]string, len(prefix)+1)
		copy(next, prefix)
		next[len(prefix)] = key
		acc = deflateInto(acc, next, child[key])
	}
	return acc
}

// Value é uma folha já gerada.
type Value struct {
	Path []string
	Data any
}

// Inflate reconstrói o objeto aninhado a partir das folhas geradas.
// Caminhos mais profundos são aplicados primeiro, de forma que um
// conflito entre uma folha e um objeto intermediário fica com o valor
// mais raso.
func Inflate(values []Value) map[string]any {
	ordered := make([]Value, len(values))
	copy(ordered, values)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Path) > len(ordered[j].Path)
	})

	root := map[string]any{}
	for _, v := range ordered {
		if len(v.Path) == 0 {
			continue
		}
		node := root
		for _, seg := range v.Path[:len(v.Path)-1] {
			next, ok := node[seg].(map[string]any)
			if !ok {
				next = map[string]any{}
				node[seg] = next
			}
			node = next
		}
		node[v.Path[len(v.Path)-1]] = v.Data
	}
	return root
}

func listCount(value any) (int, error) {
	switch n := value.(type) {
	case int:
		if n >= 0 {
			return n, nil
		}
	case int64:
		if n >= 0 && n <= math.MaxInt32 {
			return int(n), nil
		}
	case uint64:
		if n <= math.MaxInt32 {
			return int(n), nil
		}
	case float64:
		if n >= 0 && n == math.Trunc(n) && n <= math.MaxInt32 {
			return int(n), nil
		}
	case json.Number:
		i, err := n.Int64()
		if err == nil && i >= 0 && i <= math.MaxInt32 {
			return int(i), nil
		}
	}
	return 0, fmt.Errorf("list size must be a non-negative integer, got %v", value)
}

func asTree(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
