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
// Package service contém os fluxos que atravessam mais de um repositório.
//
// OrderService.CreateOrder:
//  1. valida a requisição antes de tocar no armazenamento;
//  2. carrega o patron no tenant de quem chama (NotFound se for de outro tenant);
//  3. resolve cada item no cardápio público: ausente ou inativo é ValidationError,
//     o preço usado é sempre o do servidor;
//  4. grava o pedido como `pending` com linhas desnormalizadas;
//  5. entrega a notificação pelo `notify.Dispatcher` sem influenciar o resultado.
//
// ResetService apaga patrons e pedidos de um tenant em lotes de 25. A operação
// não é transacional; repetir depois de uma falha parcial é seguro.
package service
