package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// URLResolver devolve a URL do webhook no momento do envio. "" significa
// notificação desligada.
type URLResolver interface {
	ResolveURL(ctx context.Context) (string, error)
}

// StaticURL é uma URL fixa vinda da configuração.
type StaticURL string

func (s StaticURL) ResolveURL(context.Context) (string, error) { return string(s), nil }

// EnvResolver lê a URL de uma variável de ambiente a cada chamada.
type EnvResolver struct {
	Var string
}

func (e EnvResolver) ResolveURL(context.Context) (string, error) {
	return os.Getenv(e.Var), nil
}

// SSMResolver lê a URL do Parameter Store (SecureString descriptografado).
// Parâmetro inexistente equivale a notificação desligada.
type SSMResolver struct {
	Client SSMClient
	Name   string
}

func (r SSMResolver) ResolveURL(ctx context.Context) (string, error) {
	out, err := r.Client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(r.Name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var missing *ssmtypes.ParameterNotFound
		if errors.As(err, &missing) {
			return "", nil
		}
		return "", fmt.Errorf("notify: ssm get parameter failed: %w", err)
	}
	if out.Parameter == nil {
		return "", nil
	}
	return aws.ToString(out.Parameter.Value), nil
}

// SecretResolver lê a URL do Secrets Manager. O segredo pode ser a URL pura
// ou um JSON com a chave "url" (ou "webhookUrl").
type SecretResolver struct {
	Client   SecretsClient
	SecretID string
}

func (r SecretResolver) ResolveURL(ctx context.Context) (string, error) {
	out, err := r.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(r.SecretID),
	})
	if err != nil {
		return "", fmt.Errorf("notify: secrets manager get secret failed: %w", err)
	}
	val := strings.TrimSpace(aws.ToString(out.SecretString))

	var data map[string]string
	if err := json.Unmarshal([]byte(val), &data); err == nil {
		if u := data["url"]; u != "" {
			return u, nil
		}
		return data["webhookUrl"], nil
	}
	return val, nil
}

var placeholders = map[string]bool{
	"":            true,
	"placeholder": true,
	"dummy":       true,
	"none":        true,
	"disabled":    true,
	"changeme":    true,
}

// IsPlaceholder reporta se url não é um endpoint utilizável.
func IsPlaceholder(url string) bool {
	u := strings.ToLower(strings.TrimSpace(url))
	if placeholders[u] {
		return true
	}
	return !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://")
}
