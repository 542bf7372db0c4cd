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
// Package repository mapeia as operações de domínio sobre a tabela única.
//
// Esquema de chaves:
//
//	Entidade   PK                 SK
//	Patron     tenant:<sub>       PATRON:<id>     (GSI1: <tenant>#PATRON / nome)
//	Order      tenant:<sub>       ORDER:<id>      (GSI2: <tenant>#PATRON#<patron> / createdAt)
//	Category   tenant:PUBLIC      CATEGORY:<id>
//	MenuItem   tenant:PUBLIC      MENU:<id>
//	Blend      tenant:PUBLIC      BLEND:<id>
//
// Os repositórios recebem o tenant já resolvido (`tenant:<sub>`) e nunca o
// derivam de dados do cliente. Erros do store saem como apperr: ausência
// vira NotFound e o restante vira Infrastructure.
package repository
