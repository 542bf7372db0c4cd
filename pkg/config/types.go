package config

import (
	"time"

	"github.com/raywall/bar-order-service/pkg/identity"
	"github.com/raywall/bar-order-service/repository"
)

// AppConfig é a configuração completa do serviço. Um arquivo YAML opcional é
// lido primeiro e as variáveis de ambiente sobrescrevem o que vier dele.
type AppConfig struct {
	Service ServiceConf `yaml:"service"`
	Storage StorageConf `yaml:"storage"`
	Auth    AuthConf    `yaml:"auth"`
	Notify  NotifyConf  `yaml:"notify"`
	Logging LoggingConf `yaml:"logging"`
	Metrics MetricsConf `yaml:"metrics"`
}

type ServiceConf struct {
	Name           string        `yaml:"name" env:"SERVICE_NAME" envDefault:"bar-order-service" validate:"required"`
	Runtime        string        `yaml:"runtime" env:"RUNTIME" envDefault:"local" validate:"oneof=local lambda"`
	Port           int           `yaml:"port" env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" envDefault:"10s"`
	Region         string        `yaml:"region" env:"AWS_REGION"`
}

type StorageConf struct {
	Driver    string `yaml:"driver" env:"STORAGE_DRIVER" envDefault:"dynamodb" validate:"oneof=dynamodb memory"`
	TableName string `yaml:"table_name" env:"TABLE_NAME" validate:"required_if=Driver dynamodb"`

	// Endpoint aponta para um DynamoDB local (ex: http://localhost:8000).
	Endpoint string             `yaml:"endpoint" env:"DYNAMODB_ENDPOINT"`
	Indexes  repository.Indexes `yaml:"indexes"`

	// SeedCatalog é carregado no boot (caminho local ou s3://bucket/key).
	SeedCatalog string `yaml:"seed_catalog" env:"SEED_CATALOG"`
}

type AuthConf struct {
	Policy identity.Policy `yaml:"policy"`

	// JWTSecret assina os bearer tokens aceitos no runtime local.
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

type NotifyConf struct {
	Mode            string        `yaml:"mode" env:"NOTIFY_MODE" envDefault:"async" validate:"oneof=sync async"`
	Timeout         time.Duration `yaml:"timeout" env:"NOTIFY_TIMEOUT" envDefault:"5s"`
	WebhookURL      string        `yaml:"webhook_url" env:"WEBHOOK_URL"`
	ParameterName   string        `yaml:"parameter_name" env:"WEBHOOK_PARAMETER_NAME"`
	ParameterSource string        `yaml:"parameter_source" env:"WEBHOOK_PARAMETER_SOURCE" envDefault:"ssm" validate:"oneof=ssm secretsmanager env"`
	QueueURL        string        `yaml:"queue_url" env:"ORDER_QUEUE_URL"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"LOG_ENABLED" envDefault:"true"`
	Level   string `yaml:"level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `yaml:"format" env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool     `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string   `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string   `yaml:"namespace" env:"DD_NAMESPACE" envDefault:"bar_orders."`
	Tags      []string `yaml:"tags" env:"DD_TAGS"`
}
