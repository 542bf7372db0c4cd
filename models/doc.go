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
// Package models define as entidades persistidas na tabela única.
//
// Os campos de chave (`pk`, `sk`, `gsi*`) ficam fora do JSON: a API expõe
// apenas os atributos de domínio. Timestamps são strings UTC com precisão
// fixa de milissegundos, de forma que a ordem lexicográfica coincide com a
// ordem cronológica (o GSI2 depende disso).
package models
