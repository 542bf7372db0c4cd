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
//
// Package notify entrega o aviso de pedido criado a colaboradores externos.
//
// Visão Geral:
// A notificação é um efeito colateral best-effort, disparado depois que o
// pedido já foi gravado. Nenhuma falha daqui altera o resultado da criação:
// o `Dispatcher` registra o erro em log e métrica e segue.
//
// Sinks:
// - `WebhookSink`: POST `{"content": "..."}` para um webhook de chat. A URL é
//   resolvida a cada envio (SSM, Secrets Manager ou variável de ambiente);
//   URL vazia ou placeholder significa notificação desligada.
// - `QueueSink`: publica o evento `order.created` em uma fila SQS.
// - `Fanout`: chama todos os sinks e junta os erros com `errors.Join`.
//
// Modos do Dispatcher:
// - `sync`: aguarda a entrega antes de responder (Lambda congela o ambiente
//   depois da resposta, então goroutines pendentes não terminariam).
// - `async`: entrega em goroutine com contexto desacoplado da requisição e
//   timeout próprio; `Wait` aguarda as entregas pendentes no shutdown.
package notify
