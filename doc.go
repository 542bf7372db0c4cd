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

// Package barorders é o backend de pedidos de um bar, multi-tenant, sobre
// uma única tabela DynamoDB.
//
// Visão Geral:
// Cada usuário autenticado é dono de um tenant ("tenant:<sub>") com seus
// patrons (clientes da casa) e pedidos. O cardápio (categorias, itens e
// blends) é público e compartilhado na partição "tenant:PUBLIC".
//
// Sub-Pacotes Principais:
//
// 1. dyndb:
//   - Interface `Table` (Get, Put, Update, Delete, Query, BatchDelete).
//   - Implementação DynamoDB (AWS SDK v2) e réplica em memória.
//
// 2. repository:
//   - Esquema de chaves (pk/sk, GSI1 por nome de patron, GSI2 por histórico).
//   - Repositórios de patrons, pedidos, cardápio e tenant.
//
// 3. service:
//   - Criação de pedidos com preço do servidor e linhas desnormalizadas.
//   - Reset de tenant em lotes, idempotente e não transacional.
//
// 4. pkg/transport:
//   - Rotas REST (gorilla/mux), CORS, correlation id e adaptador Lambda.
//
// 5. pkg/notify:
//   - Aviso de pedido criado via webhook de chat e fila SQS, best-effort.
//
// Executáveis:
//   - cmd/server: runtime `local` (HTTP) ou `lambda`.
//   - cmd/toolkit: validação de configuração, seed do cardápio e emissão de
//     tokens para o runtime local.
package barorders
