package repository

import (
	"context"
	"sort"

	"github.com/raywall/bar-order-service/dyndb"
	"github.com/raywall/bar-order-service/models"
	"github.com/raywall/bar-order-service/pkg/apperr"
)

// OrderRepository persiste pedidos na partição do tenant.
type OrderRepository struct {
	table dyndb.Table
	index string
	opts  options
}

func NewOrderRepository(table dyndb.Table, idx Indexes, opts ...Option) *OrderRepository {
	return &OrderRepository{
		table: table,
		index: idx.withDefaults().Orders,
		opts:  defaultOptions(opts),
	}
}

// NewID gera o id do próximo pedido.
func (r *OrderRepository) NewID() string { return r.opts.newID() }

// Now devolve o instante usado como createdAt.
func (r *OrderRepository) Now() string { return models.Timestamp(r.opts.now()) }

// Put grava o pedido preenchendo as chaves da tabela e do GSI2.
func (r *OrderRepository) Put(ctx context.Context, tenantID string, order *models.Order) error {
	if order.ID == "" || order.PatronID == "" || order.CreatedAt == "" {
		return apperr.Validation("order requires id, patronId and createdAt")
	}
	key := orderKey(tenantID, order.ID)
	order.PK = key.PK
	order.SK = key.SK
	order.GSI2PK = orderHistoryPK(tenantID, order.PatronID)
	order.GSI2SK = order.CreatedAt

	item, err := dyndb.Encode(order)
	if err != nil {
		return infraError(err, "order")
	}
	if err := r.table.Put(ctx, item); err != nil {
		return infraError(err, "order")
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, tenantID, orderID string) (*models.Order, error) {
	item, err := r.table.Get(ctx, orderKey(tenantID, orderID))
	if err != nil {
		return nil, storeError(err, "order", orderID)
	}
	order, err := dyndb.Decode[models.Order](item)
	if err != nil {
		return nil, infraError(err, "order")
	}
	return order, nil
}

// ListByPatron consulta o GSI2 do mais recente ao mais antigo.
func (r *OrderRepository) ListByPatron(ctx context.Context, tenantID, patronID string) ([]models.Order, error) {
	items, err := dyndb.From(r.table).
		Index(r.index).
		KeyEqual(attrGSI2PK, orderHistoryPK(tenantID, patronID)).
		ScanForward(false).
		Exec(ctx)
	if err != nil {
		return nil, infraError(err, "orders")
	}
	return decodeNewestFirst(items)
}

// ListByTenant cobre todos os patrons. Nenhum índice ordena por tempo no
// tenant inteiro, então a ordenação é feita aqui.
func (r *OrderRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.Order, error) {
	items, err := dyndb.From(r.table).
		KeyEqual(attrPK, tenantID).
		KeyBeginsWith(attrSK, prefixOrder).
		Exec(ctx)
	if err != nil {
		return nil, infraError(err, "orders")
	}
	return decodeNewestFirst(items)
}

func decodeNewestFirst(items []dyndb.Item) ([]models.Order, error) {
	orders, err := dyndb.DecodeAll[models.Order](items)
	if err != nil {
		return nil, infraError(err, "orders")
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt > orders[j].CreatedAt
	})
	return orders, nil
}
