// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package faker

import (
	"fmt"
)

// GeneratorNotFoundError é retornado quando nenhuma categoria do catálogo
// possui o método solicitado.
type GeneratorNotFoundError struct {
	// Name é o nome do gerador como escrito no schema (ex: "firstName", "name.firstName").
	Name string
}

// Error retorna uma mensagem indicando o gerador ausente.
//
// Exemplo de Retorno: "faker: generator \"fistName\" not found in catalog"
func (e *GeneratorNotFoundError) Error() string {
	return fmt.Sprintf("faker: generator %q not found in catalog", e.Name)
}

// GeneratorInvocationError é retornado quando um gerador resolvido rejeita
// os argumentos recebidos (aridade ou tipo incorretos).
type GeneratorInvocationError struct {
	// Category e Method identificam o gerador (ex: "random", "number").
	Category string
	Method   string
	// Args são os argumentos já convertidos que foram passados ao gerador.
	Args []any
	// Err é a causa original.
	Err error
}

// Error retorna uma mensagem detalhada com o gerador e os argumentos.
func (e *GeneratorInvocationError) Error() string {
	return fmt.Sprintf("faker: %s.%s rejected arguments %v: %v", e.Category, e.Method, e.Args, e.Err)
}

// Unwrap retorna o erro original.
func (e *GeneratorInvocationError) Unwrap() error {
	return e.Err
}

// SpecSyntaxError é retornado quando uma string de gerador não segue o
// formato `metodo(arg, ...)`.
type SpecSyntaxError struct {
	Spec   string
	Reason string
}

func (e *SpecSyntaxError) Error() string {
	return fmt.Sprintf("faker: invalid generator spec %q: %s", e.Spec, e.Reason)
}
