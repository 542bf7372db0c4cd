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
package envloader

import (
	"fmt"
	"reflect"
)

// InvalidConfigError é retornado quando a função Load recebe um argumento 'config'
// que não é um ponteiro para uma struct.
type InvalidConfigError struct {
	// Value é o tipo refletido que foi fornecido (ex: reflect.String, reflect.Ptr).
	Value reflect.Type
}

// Error retorna uma mensagem formatada indicando o tipo de argumento inválido.
//
// O método é implementado para satisfazer a interface Go `error`.
//
// Exemplo de Retorno: "envloader: config must be a pointer to struct, got string"
func (e *InvalidConfigError) Error() string {
	if e.Value.Kind() != reflect.Ptr {
		return fmt.Sprintf("envloader: config must be a pointer to struct, got %s", e.Value.Kind())
	}
	return fmt.Sprintf("envloader: config must be a pointer to struct, got pointer to %s", e.Value.Elem().Kind())
}

// FieldError indica que o valor de uma variável (ou do envDefault do campo)
// não converte para o tipo do campo.
type FieldError struct {
	FieldName string
	EnvVar    string
	// Value é o valor bruto que falhou na conversão.
	Value string
	// FromDefault é verdadeiro quando Value veio da tag envDefault: erro de
	// declaração da struct, não do ambiente.
	FromDefault bool
	// Err é o erro de conversão (*strconv.NumError, erro de
	// time.ParseDuration ou *UnsupportedTypeError).
	Err error
}

func (e *FieldError) Error() string {
	source := "env"
	if e.FromDefault {
		source = "envDefault of"
	}
	return fmt.Sprintf("envloader: error setting field %s from %s %s=%s: %v",
		e.FieldName, source, e.EnvVar, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError é retornado para campos fora dos tipos carregáveis:
// string, inteiros, bool, float, time.Duration e []string. Mapas, interfaces
// e slices de outros tipos caem aqui.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("envloader: unsupported type %s", e.Type)
}
