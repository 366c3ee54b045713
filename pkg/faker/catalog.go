package faker

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// Generator produz um valor sintético a partir dos argumentos da DSL.
// Geradores não devem alterar o slice de argumentos recebido.
type Generator func(f *gofakeit.Faker, args []any) (any, error)

// Entry é um gerador resolvido no catálogo.
type Entry struct {
	Category string
	Method   string
	Generate Generator
}

// Catalog é o registro de geradores organizado por categoria.
//
// A busca por nome usa um mapa plano construído no registro, então resolver
// um campo não percorre as categorias a cada requisição. Quando duas
// categorias expõem o mesmo método, vale o primeiro registro.
type Catalog struct {
	mu         sync.Mutex
	faker      *gofakeit.Faker
	categories map[string]map[string]Entry
	order      []string
	flat       map[string]Entry
}

// NewCatalog cria um catálogo com os geradores padrão.
// seed 0 usa uma semente aleatória.
func NewCatalog(seed uint64) *Catalog {
	c := NewEmptyCatalog(seed)
	registerDefaults(c)
	return c
}

// NewEmptyCatalog cria um catálogo sem geradores registrados.
func NewEmptyCatalog(seed uint64) *Catalog {
	return &Catalog{
		faker:      gofakeit.New(seed),
		categories: make(map[string]map[string]Entry),
		flat:       make(map[string]Entry),
	}
}

// Register adiciona um gerador à categoria informada.
func (c *Catalog) Register(category, method string, gen Generator) {
	c.mu.Lock()
	defer c.mu.Unlock()

	methods, ok := c.categories[category]
	if !ok {
		methods = make(map[string]Entry)
		c.categories[category] = methods
		c.order = append(c.order, category)
	}
	entry := Entry{Category: category, Method: method, Generate: gen}
	methods[method] = entry
	if _, taken := c.flat[method]; !taken {
		c.flat[method] = entry
	}
}

// Resolve encontra o gerador para um nome simples ("firstName") ou
// qualificado pela categoria ("name.firstName").
func (c *Catalog) Resolve(name string) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if category, method, ok := strings.Cut(name, "."); ok {
		if entry, found := c.categories[category][method]; found {
			return entry, nil
		}
		return Entry{}, &GeneratorNotFoundError{Name: name}
	}
	if entry, found := c.flat[name]; found {
		return entry, nil
	}
	return Entry{}, &GeneratorNotFoundError{Name: name}
}

// Invoke executa o gerador com acesso exclusivo à fonte aleatória.
// Panics do gerador viram GeneratorInvocationError.
func (c *Catalog) Invoke(entry Entry, args []any) (value any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = &GeneratorInvocationError{
				Category: entry.Category,
				Method:   entry.Method,
				Args:     args,
				Err:      fmt.Errorf("panic: %v", r),
			}
		}
	}()

	value, err = entry.Generate(c.faker, args)
	if err != nil {
		return nil, &GeneratorInvocationError{
			Category: entry.Category,
			Method:   entry.Method,
			Args:     args,
			Err:      err,
		}
	}
	return value, nil
}

// IntN sorteia um inteiro em [min, max], inclusive.
func (c *Catalog) IntN(min, max int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if max <= min {
		return min
	}
	return c.faker.Number(min, max)
}

// Methods lista os métodos registrados por categoria, em ordem de registro
// das categorias e ordem alfabética dos métodos.
func (c *Catalog) Methods() map[string][]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string][]string, len(c.order))
	for _, category := range c.order {
		names := make([]string, 0, len(c.categories[category]))
		for name := range c.categories[category] {
			names = append(names, name)
		}
		sort.Strings(names)
		out[category] = names
	}
	return out
}

// Categories retorna as categorias na ordem em que foram registradas.
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}
