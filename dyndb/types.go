// dyndb/types.go
package dyndb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MaxBatchWrite é o limite de requisições por chamada BatchWriteItem imposto pelo DynamoDB.
const MaxBatchWrite = 25

var (
	// ErrNotFound – erro padrão quando o item não existe
	ErrNotFound = errors.New("dyndb: item not found")
	// ErrConditionFailed indica que a condição de um Update não foi satisfeita.
	ErrConditionFailed = errors.New("dyndb: condition check failed")
)

// Item é a forma crua de um registro da tabela (atributos heterogêneos).
type Item = map[string]types.AttributeValue

// Key identifica um registro pela chave primária composta (partição + ordenação).
type Key struct {
	PK string
	SK string
}

// DynamoDBClient interface para abstrair o cliente DynamoDB
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DynamoDBClient = (*dynamodb.Client)(nil)

// Table é o contrato da camada de acesso: operações agnósticas de entidade
// sobre uma tabela única com chave (PK, SK).
//
// Nenhuma operação multi-item é transacional. BatchDelete em particular é
// best-effort: uma falha no meio da sequência deixa um conjunto parcialmente
// removido e o chamador só retoma reenviando as mesmas chaves.
type Table interface {
	Get(ctx context.Context, key Key) (Item, error)
	Put(ctx context.Context, item Item) error
	Update(ctx context.Context, key Key, set map[string]any, opts ...UpdateOption) (Item, error)
	Delete(ctx context.Context, key Key) error
	Query(ctx context.Context, spec QuerySpec) ([]Item, error)
	BatchDelete(ctx context.Context, keys []Key) (int, error)
}

// GlobalSecondaryIndex para GSIs
type GlobalSecondaryIndex struct {
	Name           string               `yaml:"name"`
	HashKey        string               `yaml:"hash_key"`
	SortKey        string               `yaml:"sort_key"`
	ProjectionType types.ProjectionType `yaml:"projection_type"`
}

// TableConfig — configuração da tabela
type TableConfig struct {
	TableName string                 `yaml:"table_name" env:"TABLE_NAME"`
	HashKey   string                 `yaml:"hash_key" env:"TABLE_HASH_KEY" envDefault:"pk"`
	SortKey   string                 `yaml:"sort_key" env:"TABLE_SORT_KEY" envDefault:"sk"`
	Indexes   []GlobalSecondaryIndex `yaml:"indexes"`
}

// Index devolve a definição de um GSI pelo nome.
func (c TableConfig) Index(name string) (GlobalSecondaryIndex, bool) {
	for _, idx := range c.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return GlobalSecondaryIndex{}, false
}

func (c TableConfig) withDefaults() TableConfig {
	if c.HashKey == "" {
		c.HashKey = "pk"
	}
	if c.SortKey == "" {
		c.SortKey = "sk"
	}
	return c
}

// UpdateOption ajusta o comportamento de Table.Update.
type UpdateOption func(*updateOptions)

type updateOptions struct {
	required []string
	equals   map[string]any
}

// RequireAttributes condiciona o update à existência dos atributos informados.
// Com a chave de partição, equivale a "só atualiza se o item existir".
func RequireAttributes(names ...string) UpdateOption {
	return func(o *updateOptions) {
		o.required = append(o.required, names...)
	}
}

// IfEquals condiciona o update ao valor atual de um atributo
// (controle otimista de concorrência por versão).
func IfEquals(name string, value any) UpdateOption {
	return func(o *updateOptions) {
		if o.equals == nil {
			o.equals = make(map[string]any)
		}
		o.equals[name] = value
	}
}

func collectUpdateOptions(opts []UpdateOption) updateOptions {
	var o updateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
