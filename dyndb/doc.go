// Package dyndb é a camada de acesso chave-valor da tabela única.
//
// Visão Geral:
// O pacote expõe a interface `Table`, agnóstica de entidade, com as operações
// Get, Put, Update (SET parcial com condições), Delete, Query (por chave de
// partição, condição opcional na ordenação e índice opcional) e BatchDelete.
// Não há validação de domínio aqui; toda falha do DynamoDB é propagada
// encapsulada (`dyndb: <op> failed: %w`) e a ausência de item é `ErrNotFound`.
//
// Implementações:
// - `New(client, cfg)`: DynamoDB via AWS SDK v2 (expression builders e paginação).
// - `NewMemoryTable(cfg)`: réplica em memória com a mesma semântica de chaves e GSIs.
// - `MockTable`: campos de função para injetar falhas em testes.
//
// BatchDelete divide as chaves em lotes de até 25 (`MaxBatchWrite`). A operação
// NÃO é atômica: uma falha no meio deixa um conjunto parcialmente removido.
// Reenviar as mesmas chaves é seguro, pois remover chave ausente é no-op.
//
// Exemplo de Query Fluente:
//
//	items, err := dyndb.From(table).
//		Index("GSI2").
//		KeyEqual("gsi2pk", "tenant:abc#PATRON#p1").
//		ScanForward(false).
//		Exec(ctx)
//
//	orders, err := dyndb.DecodeAll[models.Order](items)
package dyndb
