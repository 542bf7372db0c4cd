// dyndb/store.go
package dyndb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// maxUnprocessedRounds limita o reenvio imediato de UnprocessedItems de um lote.
const maxUnprocessedRounds = 3

type dynamoTable struct {
	client DynamoDBClient
	cfg    TableConfig
}

// New cria a implementação DynamoDB da Table.
func New(client DynamoDBClient, cfg TableConfig) Table {
	return &dynamoTable{
		client: client,
		cfg:    cfg.withDefaults(),
	}
}

func (t *dynamoTable) key(k Key) Item {
	return Item{
		t.cfg.HashKey: &types.AttributeValueMemberS{Value: k.PK},
		t.cfg.SortKey: &types.AttributeValueMemberS{Value: k.SK},
	}
}

// Get item por chave primária
func (t *dynamoTable) Get(ctx context.Context, key Key) (Item, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.cfg.TableName),
		Key:            t.key(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dyndb: get failed: %w", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	return out.Item, nil
}

// Put item (upsert, substitui o item inteiro)
func (t *dynamoTable) Put(ctx context.Context, item Item) error {
	_, err := t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.cfg.TableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dyndb: put failed: %w", err)
	}
	return nil
}

// Update aplica SET parcial e devolve o item completo após a alteração.
func (t *dynamoTable) Update(ctx context.Context, key Key, set map[string]any, opts ...UpdateOption) (Item, error) {
	if len(set) == 0 {
		return nil, errors.New("dyndb: update requires at least one field")
	}
	o := collectUpdateOptions(opts)

	// nomes ordenados mantêm a expressão determinística
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	var update expression.UpdateBuilder
	for i, name := range names {
		if i == 0 {
			update = expression.Set(expression.Name(name), expression.Value(set[name]))
			continue
		}
		update = update.Set(expression.Name(name), expression.Value(set[name]))
	}
	builder := expression.NewBuilder().WithUpdate(update)

	if cond, ok := buildCondition(o); ok {
		builder = builder.WithCondition(cond)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("dyndb: update expression: %w", err)
	}

	out, err := t.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.cfg.TableName),
		Key:                       t.key(key),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, ErrConditionFailed
		}
		return nil, fmt.Errorf("dyndb: update failed: %w", err)
	}
	return out.Attributes, nil
}

func buildCondition(o updateOptions) (expression.ConditionBuilder, bool) {
	var conds []expression.ConditionBuilder
	for _, name := range o.required {
		conds = append(conds, expression.AttributeExists(expression.Name(name)))
	}
	eqNames := make([]string, 0, len(o.equals))
	for name := range o.equals {
		eqNames = append(eqNames, name)
	}
	sort.Strings(eqNames)
	for _, name := range eqNames {
		conds = append(conds, expression.Equal(expression.Name(name), expression.Value(o.equals[name])))
	}

	switch len(conds) {
	case 0:
		return expression.ConditionBuilder{}, false
	case 1:
		return conds[0], true
	default:
		return expression.And(conds[0], conds[1], conds[2:]...), true
	}
}

// Delete item (idempotente: remover chave ausente não é erro)
func (t *dynamoTable) Delete(ctx context.Context, key Key) error {
	_, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.cfg.TableName),
		Key:       t.key(key),
	})
	if err != nil {
		return fmt.Errorf("dyndb: delete failed: %w", err)
	}
	return nil
}

// Query percorre todas as páginas e devolve os itens na ordem do índice.
func (t *dynamoTable) Query(ctx context.Context, spec QuerySpec) ([]Item, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	keyCond := expression.Key(spec.PartitionName).Equal(expression.Value(spec.PartitionValue))
	switch spec.SortOp {
	case SortEqual:
		keyCond = keyCond.And(expression.Key(spec.SortName).Equal(expression.Value(spec.SortValue)))
	case SortBeginsWith:
		keyCond = keyCond.And(expression.Key(spec.SortName).BeginsWith(spec.SortValue))
	}

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("dyndb: query expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(t.cfg.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(spec.ScanForward),
	}
	if spec.IndexName != "" {
		input.IndexName = aws.String(spec.IndexName)
	}

	var items []Item
	paginator := dynamodb.NewQueryPaginator(t.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dyndb: query failed: %w", err)
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// BatchDelete — deletes em lotes de no máximo 25 (limite do BatchWriteItem).
// Não é atômico: devolve quantas chaves foram removidas antes da falha.
func (t *dynamoTable) BatchDelete(ctx context.Context, keys []Key) (int, error) {
	deleted := 0
	for start := 0; start < len(keys); start += MaxBatchWrite {
		end := start + MaxBatchWrite
		if end > len(keys) {
			end = len(keys)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, k := range keys[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: t.key(k)},
			})
		}

		if err := t.writeChunk(ctx, requests); err != nil {
			return deleted, err
		}
		deleted += end - start
	}
	return deleted, nil
}

func (t *dynamoTable) writeChunk(ctx context.Context, requests []types.WriteRequest) error {
	pending := requests
	for round := 0; len(pending) > 0; round++ {
		if round == maxUnprocessedRounds {
			return fmt.Errorf("dyndb: batch delete left %d unprocessed items", len(pending))
		}
		out, err := t.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				t.cfg.TableName: pending,
			},
		})
		if err != nil {
			return fmt.Errorf("dyndb: batch delete failed: %w", err)
		}
		pending = nil
		if out != nil {
			pending = out.UnprocessedItems[t.cfg.TableName]
		}
	}
	return nil
}
