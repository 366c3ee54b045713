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
package schema

import "fmt"

// LoadError é retornado quando o schema não pode ser lido ou decodificado.
// É fatal na inicialização.
type LoadError struct {
	// Source é a origem informada (caminho local, s3://, dynamodb://).
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("schema: failed to load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DefinitionError aponta um campo mal definido em uma rota. Afeta apenas
// as respostas daquela rota.
type DefinitionError struct {
	// Route é o path da rota (ex: "/users/:id").
	Route string
	// Field é o caminho do campo, com segmentos separados por ponto (ex: "address.city").
	Field string
	Err   error
}

func (e *DefinitionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema: route %s: %v", e.Route, e.Err)
	}
	return fmt.Sprintf("schema: route %s, field %q: %v", e.Route, e.Field, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}
