package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *AppConfig) error {
	if err := cv.validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("field '%s' failed rule '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("config: structural validation failed:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("config: structural validation failed: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *AppConfig) error {
	// o runtime lambda é stateless entre invocações
	if cfg.Storage.Driver == "memory" && cfg.Service.Runtime != "local" {
		return fmt.Errorf("storage driver 'memory' requires runtime 'local'")
	}

	// sem API Gateway na frente, a identidade vem do bearer token
	if cfg.Service.Runtime == "local" && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("runtime 'local' requires JWT_SECRET to verify bearer tokens")
	}

	if cfg.Auth.Policy.AdminGroup == "" {
		return fmt.Errorf("admin group must not be empty")
	}
	if cfg.Auth.Policy.AdminGroup == cfg.Auth.Policy.PlatformAdminGroup {
		return fmt.Errorf("platform admin group must differ from admin group")
	}

	if cfg.Notify.ParameterSource == "env" && cfg.Notify.ParameterName == "" && cfg.Notify.WebhookURL == "" {
		return fmt.Errorf("parameter source 'env' requires WEBHOOK_PARAMETER_NAME")
	}
	if cfg.Notify.Timeout <= 0 {
		return fmt.Errorf("notify timeout must be positive")
	}
	return nil
}
