// Package apperr define a taxonomia de erros da aplicação e o mapeamento
// para status HTTP.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifica a falha.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindAuthorization    Kind = "authorization"
	KindConflict         Kind = "conflict"
	KindMethodNotAllowed Kind = "method_not_allowed"
	KindInfrastructure   Kind = "infrastructure"
)

// Error é o erro de domínio propagado até a camada de transporte.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Code é o valor do campo `code` no corpo de erro.
func (e *Error) Code() string { return string(e.Kind) }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return newError(KindAuthorization, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

func MethodNotAllowed(format string, args ...any) *Error {
	return newError(KindMethodNotAllowed, format, args...)
}

// Infrastructure encapsula uma falha de store ou colaborador externo.
// A mensagem vai para o cliente; err fica apenas no log.
func Infrastructure(err error, message string) *Error {
	return &Error{Kind: KindInfrastructure, Message: message, Err: err}
}

// KindOf devolve a categoria de err; erros fora da taxonomia são infraestrutura.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInfrastructure
}

// Is reporta se err pertence à categoria kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusOf mapeia err para o status HTTP.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage devolve o texto seguro para o cliente: falhas de
// infraestrutura nunca expõem o detalhe interno.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindInfrastructure && e.Message == "" {
			return "internal server error"
		}
		return e.Message
	}
	return "internal server error"
}
