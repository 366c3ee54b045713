package faker

import (
	"regexp"
	"strconv"
	"strings"
)

// specPattern separa o nome do método da cláusula de argumentos.
// Ex: "number(1, 100)" -> ["number", "1, 100"]
var specPattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)?)\s*(\((.*)\))?\s*$`)

var intToken = regexp.MustCompile(`^-?[0-9]+$`)

// Spec é uma string de gerador já decomposta.
type Spec struct {
	// Method é o nome do gerador sem a cláusula de argumentos.
	Method string
	// Args contém os argumentos convertidos (bool, int ou string).
	// Quando ArrayWrapped é true, Args tem um único elemento do tipo []any.
	Args []any
	// ArrayWrapped indica que a cláusula veio entre colchetes: `words([3])`.
	ArrayWrapped bool
}

// ParseSpec interpreta a DSL compacta usada nos campos do schema.
//
//	"number(1,100)"    -> Method "number", Args [1 100]
//	"words([3])"       -> Method "words", Args [[3]], ArrayWrapped
//	"flag(true,false)" -> Method "flag", Args [true false]
//	"firstName"        -> Method "firstName", Args []
func ParseSpec(raw string) (Spec, error) {
	m := specPattern.FindStringSubmatch(raw)
	if m == nil {
		return Spec{}, &SpecSyntaxError{Spec: raw, Reason: "expected method or method(args)"}
	}

	spec := Spec{Method: m[1], Args: []any{}}
	clause := strings.TrimSpace(m[3])
	if strings.ContainsAny(clause, "()") {
		return Spec{}, &SpecSyntaxError{Spec: raw, Reason: "unbalanced or nested parentheses"}
	}
	if clause == "" {
		return spec, nil
	}

	if strings.HasPrefix(clause, "[") {
		if !strings.HasSuffix(clause, "]") {
			return Spec{}, &SpecSyntaxError{Spec: raw, Reason: "unterminated array argument"}
		}
		spec.ArrayWrapped = true
		spec.Args = []any{splitTokens(clause[1 : len(clause)-1])}
		return spec, nil
	}
	if strings.ContainsAny(clause, "[]") {
		return Spec{}, &SpecSyntaxError{Spec: raw, Reason: "array brackets must wrap the whole argument list"}
	}

	spec.Args = splitTokens(clause)
	return spec, nil
}

func splitTokens(clause string) []any {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return []any{}
	}
	parts := strings.Split(clause, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		out = append(out, coerce(strings.TrimSpace(p)))
	}
	return out
}

// coerce aplica a regra mais específica: booleano > inteiro > string.
func coerce(tok string) any {
	switch tok {
	case "true":
		return true
	case "false":
		return false
	}
	if intToken.MatchString(tok) {
		if n, err := strconv.Atoi(tok); err == nil {
			return n
		}
	}
	if len(tok) >= 2 {
		first, last := tok[0], tok[len(tok)-1]
		if (first == '\'' || first == '"') && first == last {
			return tok[1 : len(tok)-1]
		}
	}
	return tok
}
