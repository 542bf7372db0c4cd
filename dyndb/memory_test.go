package dyndb_test

import (
	"context"
	"testing"

	"github.com/raywall/bar-order-service/dyndb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	PK     string `dynamodbav:"pk"`
	SK     string `dynamodbav:"sk"`
	GSI1PK string `dynamodbav:"gsi1pk,omitempty"`
	GSI1SK string `dynamodbav:"gsi1sk,omitempty"`
	Name   string `dynamodbav:"name"`
	Order  int    `dynamodbav:"order"`
}

func newMemory() *dyndb.MemoryTable {
	return dyndb.NewMemoryTable(dyndb.TableConfig{
		TableName: "mem",
		Indexes: []dyndb.GlobalSecondaryIndex{
			{Name: "GSI1", HashKey: "gsi1pk", SortKey: "gsi1sk"},
		},
	})
}

func put(t *testing.T, table dyndb.Table, r record) {
	t.Helper()
	item, err := dyndb.Encode(r)
	require.NoError(t, err)
	require.NoError(t, table.Put(context.Background(), item))
}

func TestMemoryTable_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	table := newMemory()

	put(t, table, record{PK: "tenant:a", SK: "PATRON:1", Name: "Alice"})

	item, err := table.Get(ctx, dyndb.Key{PK: "tenant:a", SK: "PATRON:1"})
	require.NoError(t, err)
	got, err := dyndb.Decode[record](item)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = table.Get(ctx, dyndb.Key{PK: "tenant:b", SK: "PATRON:1"})
	assert.ErrorIs(t, err, dyndb.ErrNotFound)

	require.NoError(t, table.Delete(ctx, dyndb.Key{PK: "tenant:a", SK: "PATRON:1"}))
	require.NoError(t, table.Delete(ctx, dyndb.Key{PK: "tenant:a", SK: "PATRON:1"}))
	assert.Zero(t, table.Len())
}

func TestMemoryTable_PutRequiresKeys(t *testing.T) {
	table := newMemory()
	item, err := dyndb.Encode(record{PK: "tenant:a"})
	require.NoError(t, err)
	assert.Error(t, table.Put(context.Background(), item))
}

func TestMemoryTable_QueryBySortPrefix(t *testing.T) {
	ctx := context.Background()
	table := newMemory()

	put(t, table, record{PK: "tenant:a", SK: "ORDER:2"})
	put(t, table, record{PK: "tenant:a", SK: "ORDER:1"})
	put(t, table, record{PK: "tenant:a", SK: "PATRON:1"})
	put(t, table, record{PK: "tenant:b", SK: "ORDER:9"})

	items, err := dyndb.From(table).
		KeyEqual("pk", "tenant:a").
		KeyBeginsWith("sk", "ORDER:").
		Exec(ctx)
	require.NoError(t, err)
	records, err := dyndb.DecodeAll[record](items)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "ORDER:1", records[0].SK)
	assert.Equal(t, "ORDER:2", records[1].SK)

	items, err = dyndb.From(table).
		KeyEqual("pk", "tenant:a").
		KeyBeginsWith("sk", "ORDER:").
		ScanForward(false).
		Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORDER:2", dyndb.StringAttr(items[0], "sk"))
}

func TestMemoryTable_IndexSkipsItemsWithoutIndexKeys(t *testing.T) {
	ctx := context.Background()
	table := newMemory()

	put(t, table, record{PK: "tenant:a", SK: "PATRON:1", GSI1PK: "tenant:a#PATRON", GSI1SK: "Carol", Name: "Carol"})
	put(t, table, record{PK: "tenant:a", SK: "PATRON:2", GSI1PK: "tenant:a#PATRON", GSI1SK: "Alice", Name: "Alice"})
	put(t, table, record{PK: "tenant:a", SK: "PATRON:3", GSI1PK: "tenant:a#PATRON", Name: "no sort key"})

	items, err := dyndb.From(table).
		Index("GSI1").
		KeyEqual("gsi1pk", "tenant:a#PATRON").
		Exec(ctx)
	require.NoError(t, err)

	records, err := dyndb.DecodeAll[record](items)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].Name)
	assert.Equal(t, "Carol", records[1].Name)
}

func TestMemoryTable_UnknownIndex(t *testing.T) {
	table := newMemory()
	_, err := dyndb.From(table).Index("GSI9").KeyEqual("x", "y").Exec(context.Background())
	assert.Error(t, err)
}

func TestMemoryTable_UpdateConditions(t *testing.T) {
	ctx := context.Background()
	table := newMemory()
	key := dyndb.Key{PK: "tenant:a", SK: "PATRON:1"}

	_, err := table.Update(ctx, key, map[string]any{"name": "Bob"}, dyndb.RequireAttributes("pk"))
	assert.ErrorIs(t, err, dyndb.ErrConditionFailed)
	assert.Zero(t, table.Len())

	put(t, table, record{PK: "tenant:a", SK: "PATRON:1", Name: "Alice", Order: 1})

	item, err := table.Update(ctx, key, map[string]any{"name": "Bob"}, dyndb.RequireAttributes("pk"))
	require.NoError(t, err)
	assert.Equal(t, "Bob", dyndb.StringAttr(item, "name"))

	_, err = table.Update(ctx, key, map[string]any{"order": 3}, dyndb.IfEquals("order", 2))
	assert.ErrorIs(t, err, dyndb.ErrConditionFailed)

	_, err = table.Update(ctx, key, map[string]any{"order": 2}, dyndb.IfEquals("order", 1))
	assert.NoError(t, err)
}

func TestMemoryTable_UpdateWithoutConditionUpserts(t *testing.T) {
	table := newMemory()
	item, err := table.Update(context.Background(), dyndb.Key{PK: "tenant:a", SK: "X:1"}, map[string]any{"name": "new"})
	require.NoError(t, err)
	assert.Equal(t, "tenant:a", dyndb.StringAttr(item, "pk"))
	assert.Equal(t, 1, table.Len())
}

func TestMemoryTable_BatchDelete(t *testing.T) {
	ctx := context.Background()
	table := newMemory()

	var keys []dyndb.Key
	for _, k := range makeKeys(60) {
		put(t, table, record{PK: k.PK, SK: k.SK})
		keys = append(keys, k)
	}
	// chave ausente conta como removida
	keys = append(keys, dyndb.Key{PK: "tenant:u1", SK: "ORDER:missing"})

	deleted, err := table.BatchDelete(ctx, keys)
	require.NoError(t, err)
	assert.Equal(t, 61, deleted)
	assert.Zero(t, table.Len())
}

func TestMemoryTable_BatchDeleteHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table := newMemory()
	deleted, err := table.BatchDelete(ctx, makeKeys(3))
	assert.Error(t, err)
	assert.Zero(t, deleted)
}

func TestMockTable_DelegatesToFallback(t *testing.T) {
	ctx := context.Background()
	mem := newMemory()
	mock := &dyndb.MockTable{
		Fallback: mem,
		DeleteFn: func(context.Context, dyndb.Key) error { return assert.AnError },
	}

	put(t, mock, record{PK: "tenant:a", SK: "PATRON:1"})
	_, err := mock.Get(ctx, dyndb.Key{PK: "tenant:a", SK: "PATRON:1"})
	require.NoError(t, err)
	assert.ErrorIs(t, mock.Delete(ctx, dyndb.Key{PK: "tenant:a", SK: "PATRON:1"}), assert.AnError)
	assert.Equal(t, 1, mem.Len())
}
