package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raywall/bar-order-service/dyndb"
	"github.com/raywall/bar-order-service/pkg/config"
	"github.com/raywall/bar-order-service/pkg/identity"
	"github.com/raywall/bar-order-service/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
service:
  name: "cli-test"
  runtime: "lambda"
storage:
  driver: "dynamodb"
  table_name: "bar-orders"
logging:
  level: "info"
  format: "console"
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "service.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestRunValidate_HappyPath valida um arquivo real.
func TestRunValidate_HappyPath(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runValidate(&out, writeFile(t, validConfig)))
	assert.Contains(t, out.String(), "Configuração Válida")
}

func TestRunValidate_JSONOutput(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "json")
	var out bytes.Buffer
	require.NoError(t, runValidate(&out, writeFile(t, validConfig)))
	assert.Contains(t, out.String(), `"table":"bar-orders"`)
}

func TestRunValidate_Errors(t *testing.T) {
	assert.Error(t, runValidate(&bytes.Buffer{}, ""))

	// dynamodb sem nome de tabela
	bad := strings.Replace(validConfig, `table_name: "bar-orders"`, "", 1)
	assert.Error(t, runValidate(&bytes.Buffer{}, writeFile(t, bad)))
}

func TestRunSeed(t *testing.T) {
	cfgPath := writeFile(t, validConfig)
	table := dyndb.NewMemoryTable(repository.Schema("bar-orders", repository.DefaultIndexes()))

	original := tableOpener
	tableOpener = func(context.Context, *config.AppConfig) (dyndb.Table, error) { return table, nil }
	defer func() { tableOpener = original }()

	var out bytes.Buffer
	require.NoError(t, runSeed(context.Background(), &out, cfgPath, "../../pkg/seed/testdata/catalog.yaml", true))
	assert.Contains(t, out.String(), "2 categorias")
	assert.Zero(t, table.Len())

	out.Reset()
	require.NoError(t, runSeed(context.Background(), &out, cfgPath, "../../pkg/seed/testdata/catalog.yaml", false))
	assert.Contains(t, out.String(), "3 itens")
	assert.Equal(t, 7, table.Len())

	assert.Error(t, runSeed(context.Background(), &out, cfgPath, "", false))
}

func TestRunToken(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runToken(&out, "secret", "alice", "admin, platform-admin", time.Minute))

	claims, err := identity.BearerAuthenticator{Secret: []byte("secret")}.Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, []string{"admin", "platform-admin"}, claims.Groups)

	assert.Error(t, runToken(&out, "", "alice", "", time.Minute))
	assert.Error(t, runToken(&out, "secret", "", "", time.Minute))
}
