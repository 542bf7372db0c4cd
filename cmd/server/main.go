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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/raywall/bar-order-service/pkg/config"
	"github.com/raywall/bar-order-service/pkg/logger"
	"github.com/raywall/bar-order-service/pkg/transport"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 15 * time.Second

var (
	configPath string
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = lambda.Start
)

func init() {
	// opcional: sem arquivo, tudo vem das variáveis de ambiente
	configPath = os.Getenv("CONFIG_FILE_PATH")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath); err != nil {
		log.Fatal().Err(err).Msg("service stopped")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger.Configure(cfg.Logging)

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info().
		Str("service", cfg.Service.Name).
		Str("runtime", cfg.Service.Runtime).
		Str("storage", cfg.Storage.Driver).
		Msg("service starting")

	switch cfg.Service.Runtime {
	case "local":
		addr := fmt.Sprintf(":%d", cfg.Service.Port)
		err := serverStarter(ctx, addr, a.router, shutdownTimeout)
		// entregas assíncronas pendentes terminam antes do processo sair
		a.dispatcher.Wait()
		return err
	case "lambda":
		handler := transport.NewLambdaHandler(a.router)
		// o ambiente congela depois da resposta: aguarda as notificações
		handler.AfterRequest = a.dispatcher.Wait
		lambdaStarter(handler.Handle)
		return nil
	default:
		return fmt.Errorf("unknown runtime: %s", cfg.Service.Runtime)
	}
}
