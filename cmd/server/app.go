package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/gorilla/mux"
	"github.com/raywall/bar-order-service/dyndb"
	"github.com/raywall/bar-order-service/pkg/awscfg"
	"github.com/raywall/bar-order-service/pkg/config"
	"github.com/raywall/bar-order-service/pkg/identity"
	"github.com/raywall/bar-order-service/pkg/metrics"
	"github.com/raywall/bar-order-service/pkg/notify"
	"github.com/raywall/bar-order-service/pkg/observability"
	"github.com/raywall/bar-order-service/pkg/seed"
	"github.com/raywall/bar-order-service/pkg/transport"
	"github.com/raywall/bar-order-service/repository"
	"github.com/raywall/bar-order-service/service"
	"github.com/rs/zerolog/log"
)

// awsConfigLoader é substituído nos testes.
var awsConfigLoader = awscfg.Load

type app struct {
	router     *mux.Router
	dispatcher *notify.Dispatcher
	closers    []io.Closer
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
}

// lazyAWS só carrega a configuração da AWS se algum componente precisar.
type lazyAWS struct {
	ctx    context.Context
	region string
}

func (l lazyAWS) get() (aws.Config, error) {
	cfg, err := awsConfigLoader(l.ctx, l.region)
	if err != nil {
		return aws.Config{}, fmt.Errorf("aws config: %w", err)
	}
	return cfg, nil
}

func buildApp(ctx context.Context, cfg *config.AppConfig) (*app, error) {
	a := &app{}
	awsLazy := lazyAWS{ctx: ctx, region: cfg.Service.Region}

	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	if c, ok := provider.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	recorder := metrics.NewRecorder(provider)

	table, err := buildTable(cfg.Storage, awsLazy)
	if err != nil {
		return nil, err
	}

	idx := cfg.Storage.Indexes
	patrons := repository.NewPatronRepository(table, idx)
	menu := repository.NewMenuRepository(table)
	orders := repository.NewOrderRepository(table, idx)

	if cfg.Storage.SeedCatalog != "" {
		if err := seedCatalog(ctx, cfg.Storage.SeedCatalog, menu, awsLazy); err != nil {
			return nil, err
		}
	}

	notifier, err := buildNotifier(cfg.Notify, awsLazy)
	if err != nil {
		return nil, err
	}
	a.dispatcher = notify.NewDispatcher(notifier, notify.Mode(cfg.Notify.Mode), cfg.Notify.Timeout, recorder)

	a.router = transport.NewRouter(transport.Deps{
		Patrons:        patrons,
		Menu:           menu,
		Orders:         service.NewOrderService(patrons, menu, orders, a.dispatcher, recorder),
		Reset:          service.NewResetService(repository.NewTenantRepository(table), cfg.Auth.Policy, recorder),
		Auth:           buildAuthenticator(cfg),
		Policy:         cfg.Auth.Policy,
		RequestTimeout: cfg.Service.RequestTimeout,
	})
	return a, nil
}

func buildTable(cfg config.StorageConf, awsLazy lazyAWS) (dyndb.Table, error) {
	schema := repository.Schema(cfg.TableName, cfg.Indexes)
	if cfg.Driver == "memory" {
		log.Warn().Msg("using in-memory storage: data is lost on restart")
		return dyndb.NewMemoryTable(schema), nil
	}

	awsCfg, err := awsLazy.get()
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return dyndb.New(client, schema), nil
}

func buildAuthenticator(cfg *config.AppConfig) identity.Authenticator {
	chain := identity.Chain{identity.APIGatewayAuthenticator{}}
	if cfg.Auth.JWTSecret != "" {
		chain = append(chain, identity.BearerAuthenticator{Secret: []byte(cfg.Auth.JWTSecret)})
	}
	return chain
}

func buildNotifier(cfg config.NotifyConf, awsLazy lazyAWS) (notify.Notifier, error) {
	var sinks notify.Fanout

	resolver, err := buildResolver(cfg, awsLazy)
	if err != nil {
		return nil, err
	}
	sinks = append(sinks, notify.NewWebhookSink(resolver, cfg.Timeout))

	if cfg.QueueURL != "" {
		awsCfg, err := awsLazy.get()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, &notify.QueueSink{Client: sqs.NewFromConfig(awsCfg), QueueURL: cfg.QueueURL})
	}
	return sinks, nil
}

func buildResolver(cfg config.NotifyConf, awsLazy lazyAWS) (notify.URLResolver, error) {
	if cfg.WebhookURL != "" || cfg.ParameterName == "" {
		return notify.StaticURL(cfg.WebhookURL), nil
	}
	if cfg.ParameterSource == "env" {
		return notify.EnvResolver{Var: cfg.ParameterName}, nil
	}

	awsCfg, err := awsLazy.get()
	if err != nil {
		return nil, err
	}
	if cfg.ParameterSource == "secretsmanager" {
		return notify.SecretResolver{Client: secretsmanager.NewFromConfig(awsCfg), SecretID: cfg.ParameterName}, nil
	}
	return notify.SSMResolver{Client: ssm.NewFromConfig(awsCfg), Name: cfg.ParameterName}, nil
}

func seedCatalog(ctx context.Context, location string, menu *repository.MenuRepository, awsLazy lazyAWS) error {
	var client seed.S3Client
	if strings.HasPrefix(location, "s3://") {
		awsCfg, err := awsLazy.get()
		if err != nil {
			return err
		}
		client = s3.NewFromConfig(awsCfg)
	}
	catalog, err := seed.Open(ctx, location, client)
	if err != nil {
		return err
	}
	_, err = seed.Load(ctx, menu, catalog)
	return err
}
