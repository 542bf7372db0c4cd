package repository

import (
	"context"

	"github.com/raywall/bar-order-service/dyndb"
)

// TenantRepository opera sobre a partição inteira de um tenant.
type TenantRepository struct {
	table dyndb.Table
}

func NewTenantRepository(table dyndb.Table) *TenantRepository {
	return &TenantRepository{table: table}
}

// Keys lista a chave de cada item da partição (patrons e pedidos).
func (r *TenantRepository) Keys(ctx context.Context, tenantID string) ([]dyndb.Key, error) {
	items, err := dyndb.From(r.table).KeyEqual(attrPK, tenantID).Exec(ctx)
	if err != nil {
		return nil, infraError(err, "tenant data")
	}
	keys := make([]dyndb.Key, 0, len(items))
	for _, item := range items {
		keys = append(keys, dyndb.Key{
			PK: dyndb.StringAttr(item, attrPK),
			SK: dyndb.StringAttr(item, attrSK),
		})
	}
	return keys, nil
}

// Purge remove as chaves em lotes. Em falha devolve quantas já saíram;
// repetir com as mesmas chaves é seguro.
func (r *TenantRepository) Purge(ctx context.Context, keys []dyndb.Key) (int, error) {
	deleted, err := r.table.BatchDelete(ctx, keys)
	if err != nil {
		return deleted, infraError(err, "tenant data")
	}
	return deleted, nil
}
