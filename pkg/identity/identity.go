// Package identity resolve tenant e privilégios a partir das claims já
// verificadas pelo provedor de autenticação.
package identity

import (
	"context"
	"strings"

	"github.com/raywall/bar-order-service/pkg/apperr"
)

const (
	tenantPrefix = "tenant:"
	// reservedSubject nomeia a partição pública do cardápio.
	reservedSubject = "PUBLIC"
)

// Claims são os dados de identidade de quem chama.
type Claims struct {
	Subject string   `json:"sub"`
	Email   string   `json:"email"`
	Groups  []string `json:"groups"`
}

// InGroup reporta se as claims incluem o grupo.
func (c Claims) InGroup(group string) bool {
	if group == "" {
		return false
	}
	for _, g := range c.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// TenantIDFor deriva o tenant do subject: "tenant:" + sub. O subject
// reservado PUBLIC é recusado para que nenhum tenant colida com a partição
// compartilhada.
func TenantIDFor(subject string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", apperr.Forbidden("authenticated subject is required")
	}
	if subject == reservedSubject {
		return "", apperr.Forbidden("subject %q is reserved", subject)
	}
	return tenantPrefix + subject, nil
}

// NormalizeTenantID aceita tanto o subject cru quanto a forma "tenant:<sub>".
func NormalizeTenantID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperr.Validation("tenantId is required")
	}
	sub := strings.TrimPrefix(raw, tenantPrefix)
	if strings.TrimSpace(sub) == "" {
		return "", apperr.Validation("tenantId is required")
	}
	if sub == reservedSubject {
		return "", apperr.Validation("the public partition cannot be reset")
	}
	return tenantPrefix + sub, nil
}

// Policy decide privilégios a partir dos grupos.
type Policy struct {
	AdminGroup         string `yaml:"admin_group" env:"ADMIN_GROUP" envDefault:"admin"`
	PlatformAdminGroup string `yaml:"platform_admin_group" env:"PLATFORM_ADMIN_GROUP" envDefault:"platform-admin"`
}

// DefaultPolicy usa os grupos "admin" e "platform-admin".
func DefaultPolicy() Policy {
	return Policy{AdminGroup: "admin", PlatformAdminGroup: "platform-admin"}
}

// IsAdmin é verdadeiro sse o caller pertence ao grupo admin.
func (p Policy) IsAdmin(c Claims) bool {
	return c.InGroup(p.AdminGroup)
}

// IsPlatformAdmin autoriza operações sobre tenants de terceiros.
func (p Policy) IsPlatformAdmin(c Claims) bool {
	return c.InGroup(p.PlatformAdminGroup)
}

type claimsKey struct{}

// WithClaims associa as claims ao contexto da requisição.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// FromContext recupera as claims gravadas por WithClaims.
func FromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(Claims)
	return c, ok
}

// splitGroups aceita "a,b", "a b" e "[a, b]" (formato do Cognito via API Gateway).
func splitGroups(raw string) []string {
	raw = strings.Trim(strings.TrimSpace(raw), "[]")
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	groups := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			groups = append(groups, f)
		}
	}
	return groups
}
