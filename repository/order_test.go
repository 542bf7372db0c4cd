package repository

import (
	"context"
	"testing"

	"github.com/raywall/bar-order-service/models"
	"github.com/raywall/bar-order-service/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putOrder(t *testing.T, repo *OrderRepository, tenantID, patronID string) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:         repo.NewID(),
		PatronID:   patronID,
		PatronName: "Alice",
		Items:      []models.OrderLine{{MenuID: "m1", Name: "Highball", Price: 600, Quantity: 1, Subtotal: 600}},
		Total:      600,
		Status:     models.OrderPending,
		CreatedAt:  repo.Now(),
	}
	require.NoError(t, repo.Put(context.Background(), tenantID, order))
	return order
}

func TestOrderRepository_PutSetsKeys(t *testing.T) {
	repo := NewOrderRepository(newTestTable(), DefaultIndexes(), WithClock(stepClock()), WithIDGenerator(seqIDs("o")))

	order := putOrder(t, repo, "tenant:a", "p1")
	assert.Equal(t, "tenant:a", order.PK)
	assert.Equal(t, "ORDER:o-1", order.SK)
	assert.Equal(t, "tenant:a#PATRON#p1", order.GSI2PK)
	assert.Equal(t, order.CreatedAt, order.GSI2SK)

	got, err := repo.Get(context.Background(), "tenant:a", "o-1")
	require.NoError(t, err)
	assert.Equal(t, int64(600), got.Total)
	assert.Equal(t, models.OrderPending, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Highball", got.Items[0].Name)
}

func TestOrderRepository_PutRequiresIdentity(t *testing.T) {
	repo := NewOrderRepository(newTestTable(), DefaultIndexes())
	err := repo.Put(context.Background(), "tenant:a", &models.Order{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestOrderRepository_ListByPatronNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestTable(), DefaultIndexes(), WithClock(stepClock()))

	first := putOrder(t, repo, "tenant:a", "p1")
	putOrder(t, repo, "tenant:a", "p2")
	second := putOrder(t, repo, "tenant:a", "p1")
	third := putOrder(t, repo, "tenant:a", "p1")

	orders, err := repo.ListByPatron(ctx, "tenant:a", "p1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, third.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)
	assert.Equal(t, first.ID, orders[2].ID)
}

func TestOrderRepository_ListByTenantCoversAllPatrons(t *testing.T) {
	ctx := context.Background()
	table := newTestTable()
	repo := NewOrderRepository(table, DefaultIndexes(), WithClock(stepClock()))
	patrons := NewPatronRepository(table, DefaultIndexes())

	_, err := patrons.Create(ctx, "tenant:a", "Alice")
	require.NoError(t, err)
	a := putOrder(t, repo, "tenant:a", "p1")
	b := putOrder(t, repo, "tenant:a", "p2")
	putOrder(t, repo, "tenant:b", "p1")

	orders, err := repo.ListByTenant(ctx, "tenant:a")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, b.ID, orders[0].ID)
	assert.Equal(t, a.ID, orders[1].ID)
}

func TestOrderRepository_GetOtherTenantIsNotFound(t *testing.T) {
	repo := NewOrderRepository(newTestTable(), DefaultIndexes())
	order := putOrder(t, repo, "tenant:a", "p1")

	_, err := repo.Get(context.Background(), "tenant:b", order.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestTenantRepository_KeysAndPurge(t *testing.T) {
	ctx := context.Background()
	table := newTestTable()
	orders := NewOrderRepository(table, DefaultIndexes())
	patrons := NewPatronRepository(table, DefaultIndexes())
	menu := NewMenuRepository(table)
	tenants := NewTenantRepository(table)

	_, err := patrons.Create(ctx, "tenant:a", "Alice")
	require.NoError(t, err)
	putOrder(t, orders, "tenant:a", "p1")
	putOrder(t, orders, "tenant:b", "p1")
	_, err = menu.CreateCategory(ctx, CategoryFields{Name: ptr("Beer")})
	require.NoError(t, err)

	keys, err := tenants.Keys(ctx, "tenant:a")
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	deleted, err := tenants.Purge(ctx, keys)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	keys, err = tenants.Keys(ctx, "tenant:a")
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Equal(t, 2, table.Len(), "other tenant and public partition untouched")
}
