package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/golang-jwt/jwt/v5"
	"github.com/raywall/bar-order-service/pkg/apperr"
)

// ErrNoIdentity indica requisição sem identidade autenticada.
var ErrNoIdentity = errors.New("identity: no authenticated identity")

// Authenticator extrai as claims de uma requisição.
type Authenticator interface {
	Authenticate(r *http.Request) (Claims, error)
}

// AuthenticatorFunc adapta uma função a Authenticator.
type AuthenticatorFunc func(r *http.Request) (Claims, error)

func (f AuthenticatorFunc) Authenticate(r *http.Request) (Claims, error) { return f(r) }

// APIGatewayAuthenticator lê as claims que o authorizer do API Gateway
// anexou ao evento (Cognito em "claims" ou Lambda authorizer na raiz).
// A requisição precisa ter passado pelo adaptador gorillamux.
type APIGatewayAuthenticator struct{}

func (APIGatewayAuthenticator) Authenticate(r *http.Request) (Claims, error) {
	proxyCtx, ok := core.GetAPIGatewayContextFromContext(r.Context())
	if !ok || proxyCtx.Authorizer == nil {
		return Claims{}, ErrNoIdentity
	}

	source := proxyCtx.Authorizer
	if nested, ok := source["claims"].(map[string]interface{}); ok {
		source = nested
	}
	return claimsFromMap(source)
}

func claimsFromMap(m map[string]interface{}) (Claims, error) {
	sub, _ := m["sub"].(string)
	if sub == "" {
		return Claims{}, ErrNoIdentity
	}
	email, _ := m["email"].(string)

	var groups []string
	switch g := m["cognito:groups"].(type) {
	case string:
		groups = splitGroups(g)
	case []interface{}:
		for _, v := range g {
			if s, ok := v.(string); ok && s != "" {
				groups = append(groups, s)
			}
		}
	case []string:
		groups = g
	}
	return Claims{Subject: sub, Email: email, Groups: groups}, nil
}

// tokenClaims é o payload esperado no bearer token do runtime local.
type tokenClaims struct {
	Email  string   `json:"email,omitempty"`
	Groups []string `json:"cognito:groups,omitempty"`
	jwt.RegisteredClaims
}

// BearerAuthenticator valida tokens HS256 do header Authorization.
// Usado no runtime local, onde não há API Gateway na frente.
type BearerAuthenticator struct {
	Secret []byte
}

func (b BearerAuthenticator) Authenticate(r *http.Request) (Claims, error) {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(raw) == "" {
		return Claims{}, ErrNoIdentity
	}
	return b.Verify(strings.TrimSpace(raw))
}

// Verify valida assinatura, algoritmo e expiração do token.
func (b BearerAuthenticator) Verify(raw string) (Claims, error) {
	if len(b.Secret) == 0 {
		return Claims{}, errors.New("identity: bearer secret not configured")
	}
	var tc tokenClaims
	token, err := jwt.ParseWithClaims(raw, &tc, func(*jwt.Token) (interface{}, error) {
		return b.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, fmt.Errorf("identity: invalid token: %w", err)
	}
	if !token.Valid || tc.Subject == "" {
		return Claims{}, ErrNoIdentity
	}
	return Claims{Subject: tc.Subject, Email: tc.Email, Groups: tc.Groups}, nil
}

// Issue assina um token para c válido por ttl (uso local e testes).
func (b BearerAuthenticator) Issue(c Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email:  c.Email,
		Groups: c.Groups,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(b.Secret)
}

// Chain tenta cada autenticador em ordem; o primeiro com identidade vence.
type Chain []Authenticator

func (c Chain) Authenticate(r *http.Request) (Claims, error) {
	var errs []error
	for _, a := range c {
		claims, err := a.Authenticate(r)
		if err == nil {
			return claims, nil
		}
		if !errors.Is(err, ErrNoIdentity) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return Claims{}, errors.Join(errs...)
	}
	return Claims{}, ErrNoIdentity
}

// Require converte a falha de autenticação em AuthorizationError.
func Require(a Authenticator, r *http.Request) (Claims, error) {
	claims, err := a.Authenticate(r)
	if err != nil {
		if errors.Is(err, ErrNoIdentity) {
			return Claims{}, apperr.Forbidden("authentication required")
		}
		return Claims{}, &apperr.Error{Kind: apperr.KindAuthorization, Message: "invalid credentials", Err: err}
	}
	return claims, nil
}
