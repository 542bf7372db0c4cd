package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/bar-order-service/dyndb"
	"github.com/raywall/bar-order-service/pkg/awscfg"
	"github.com/raywall/bar-order-service/pkg/config"
	"github.com/raywall/bar-order-service/pkg/identity"
	"github.com/raywall/bar-order-service/pkg/seed"
	"github.com/raywall/bar-order-service/repository"
)

// tableOpener é substituído nos testes.
var tableOpener = openTable

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Comandos esperados: validate | seed | token")
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		cmd := flag.NewFlagSet("validate", flag.ExitOnError)
		file := cmd.String("file", "", "Caminho do arquivo YAML de configuração")
		cmd.Parse(os.Args[2:])
		err = runValidate(os.Stdout, *file)
	case "seed":
		cmd := flag.NewFlagSet("seed", flag.ExitOnError)
		catalog := cmd.String("catalog", "", "Catálogo YAML/JSON (caminho local ou s3://bucket/key)")
		file := cmd.String("file", os.Getenv("CONFIG_FILE_PATH"), "Arquivo de configuração do serviço")
		dryRun := cmd.Bool("dry-run", false, "Só valida o catálogo")
		cmd.Parse(os.Args[2:])
		err = runSeed(context.Background(), os.Stdout, *file, *catalog, *dryRun)
	case "token":
		cmd := flag.NewFlagSet("token", flag.ExitOnError)
		sub := cmd.String("sub", "", "Subject do usuário")
		groups := cmd.String("groups", "", "Grupos separados por vírgula")
		ttl := cmd.Duration("ttl", time.Hour, "Validade do token")
		cmd.Parse(os.Args[2:])
		err = runToken(os.Stdout, os.Getenv("JWT_SECRET"), *sub, *groups, *ttl)
	default:
		err = fmt.Errorf("comando desconhecido: %s", os.Args[1])
	}

	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func runValidate(out io.Writer, path string) error {
	if path == "" {
		return fmt.Errorf("flag -file é obrigatória")
	}
	fmt.Fprintf(out, "🔍 Analisando configuração: %s ...\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if os.Getenv("OUTPUT_FORMAT") == "json" {
		return json.NewEncoder(out).Encode(map[string]any{
			"valid":   true,
			"runtime": cfg.Service.Runtime,
			"storage": cfg.Storage.Driver,
			"table":   cfg.Storage.TableName,
		})
	}
	fmt.Fprintln(out, "✅ Configuração Válida e Pronta para Deploy!")
	return nil
}

func runSeed(ctx context.Context, out io.Writer, cfgPath, location string, dryRun bool) error {
	if location == "" {
		return fmt.Errorf("flag -catalog é obrigatória")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	var client seed.S3Client
	if strings.HasPrefix(location, "s3://") {
		awsCfg, err := awscfg.Load(ctx, cfg.Service.Region)
		if err != nil {
			return err
		}
		client = s3.NewFromConfig(awsCfg)
	}
	catalog, err := seed.Open(ctx, location, client)
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Fprintf(out, "catálogo válido: %d categorias, %d blends, %d itens\n",
			len(catalog.Categories), len(catalog.Blends), len(catalog.MenuItems))
		return nil
	}

	table, err := tableOpener(ctx, cfg)
	if err != nil {
		return err
	}
	res, err := seed.Load(ctx, repository.NewMenuRepository(table), catalog)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ criados: %d categorias, %d blends, %d itens (%d já existiam)\n",
		res.Categories, res.Blends, res.MenuItems, res.Skipped)
	return nil
}

func openTable(ctx context.Context, cfg *config.AppConfig) (dyndb.Table, error) {
	if cfg.Storage.Driver == "memory" {
		return nil, fmt.Errorf("seed requires the dynamodb storage driver")
	}
	awsCfg, err := awscfg.Load(ctx, cfg.Service.Region)
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		}
	})
	return dyndb.New(client, repository.Schema(cfg.Storage.TableName, cfg.Storage.Indexes)), nil
}

func runToken(out io.Writer, secret, sub, groups string, ttl time.Duration) error {
	if secret == "" {
		return fmt.Errorf("JWT_SECRET não definido")
	}
	if sub == "" {
		return fmt.Errorf("flag -sub é obrigatória")
	}
	claims := identity.Claims{Subject: sub}
	for _, g := range strings.Split(groups, ",") {
		if g = strings.TrimSpace(g); g != "" {
			claims.Groups = append(claims.Groups, g)
		}
	}
	token, err := identity.BearerAuthenticator{Secret: []byte(secret)}.Issue(claims, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	return nil
}
