// Package backendfaker é um servidor de API fake guiado por um schema
// declarativo: cada rota mapeia nomes de campos para geradores de dados
// sintéticos, e o servidor responde JSON com os valores gerados.
//
// Visão Geral:
// Um schema (JSON ou YAML, lido de arquivo local, S3 ou DynamoDB) é uma lista
// de rotas no formato {"/users/:id": {"name": "firstName", "age": "number(18,65)"}}.
// Para cada requisição GET o servidor:
// 1. Procura a resposta de (path, id) no cache; requisições sem id sempre geram de novo.
// 2. Achata a árvore de campos, resolve cada gerador no catálogo e gera os valores.
// 3. Expande LIST em uma lista de tamanho aleatório e aplica o JOIN com outra rota.
// 4. Reconstrói o objeto aninhado, memoriza e responde após um atraso opcional.
//
// Sub-Pacotes Principais:
//
// 1. pkg/faker:
//   - Catálogo de geradores por categoria (name, address, internet, lorem, random...).
//   - Parser da DSL "metodo(arg1, arg2)" com argumentos tipados e arrays "[...]".
//
// 2. pkg/schema:
//   - Rotas, diretivas LIST/JOIN e o achatamento (Deflate/Inflate) por caminhos de segmentos.
//   - Loader com suporte a file://, s3:// e dynamodb://.
//
// 3. pkg/synth e pkg/cache:
//   - Síntese das respostas e memorização por (path, id) em memória ou Redis.
//
// 4. pkg/transport e pkg/engine:
//   - Router gorilla/mux com CORS, correlation id, log por requisição e métricas.
//
// O binário fica em cmd/backend-faker:
//
//	backend-faker -b backend.json -p 2000 -d 300
//	backend-faker validate -b backend.json
package backendfaker
