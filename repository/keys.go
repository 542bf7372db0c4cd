package repository

import (
	"errors"

	"github.com/raywall/bar-order-service/dyndb"
	"github.com/raywall/bar-order-service/pkg/apperr"
)

// PublicTenant é a partição compartilhada do cardápio.
const PublicTenant = "tenant:PUBLIC"

const (
	prefixPatron   = "PATRON:"
	prefixOrder    = "ORDER:"
	prefixCategory = "CATEGORY:"
	prefixMenu     = "MENU:"
	prefixBlend    = "BLEND:"
)

// Nomes de atributos de chave.
const (
	attrPK     = "pk"
	attrSK     = "sk"
	attrGSI1PK = "gsi1pk"
	attrGSI1SK = "gsi1sk"
	attrGSI2PK = "gsi2pk"
	attrGSI2SK = "gsi2sk"
)

// Indexes nomeia os dois GSIs da tabela.
type Indexes struct {
	Patrons string `yaml:"patrons" env:"GSI1_NAME" envDefault:"GSI1"`
	Orders  string `yaml:"orders" env:"GSI2_NAME" envDefault:"GSI2"`
}

// DefaultIndexes devolve os nomes usados quando nada é configurado.
func DefaultIndexes() Indexes {
	return Indexes{Patrons: "GSI1", Orders: "GSI2"}
}

func (i Indexes) withDefaults() Indexes {
	d := DefaultIndexes()
	if i.Patrons == "" {
		i.Patrons = d.Patrons
	}
	if i.Orders == "" {
		i.Orders = d.Orders
	}
	return i
}

// Schema descreve a tabela única com os dois GSIs.
func Schema(tableName string, idx Indexes) dyndb.TableConfig {
	idx = idx.withDefaults()
	return dyndb.TableConfig{
		TableName: tableName,
		HashKey:   attrPK,
		SortKey:   attrSK,
		Indexes: []dyndb.GlobalSecondaryIndex{
			{Name: idx.Patrons, HashKey: attrGSI1PK, SortKey: attrGSI1SK, ProjectionType: "ALL"},
			{Name: idx.Orders, HashKey: attrGSI2PK, SortKey: attrGSI2SK, ProjectionType: "ALL"},
		},
	}
}

func patronKey(tenantID, patronID string) dyndb.Key {
	return dyndb.Key{PK: tenantID, SK: prefixPatron + patronID}
}

func orderKey(tenantID, orderID string) dyndb.Key {
	return dyndb.Key{PK: tenantID, SK: prefixOrder + orderID}
}

func categoryKey(id string) dyndb.Key {
	return dyndb.Key{PK: PublicTenant, SK: prefixCategory + id}
}

func menuKey(id string) dyndb.Key {
	return dyndb.Key{PK: PublicTenant, SK: prefixMenu + id}
}

func blendKey(id string) dyndb.Key {
	return dyndb.Key{PK: PublicTenant, SK: prefixBlend + id}
}

// patronIndexPK é a partição do GSI1: todos os patrons de um tenant.
func patronIndexPK(tenantID string) string {
	return tenantID + "#PATRON"
}

// orderHistoryPK é a partição do GSI2: histórico de um patron.
func orderHistoryPK(tenantID, patronID string) string {
	return tenantID + "#PATRON#" + patronID
}

// storeError traduz falhas do store para a taxonomia de domínio.
func storeError(err error, entity, id string) error {
	if errors.Is(err, dyndb.ErrNotFound) || errors.Is(err, dyndb.ErrConditionFailed) {
		return apperr.NotFound("%s %s not found", entity, id)
	}
	return apperr.Infrastructure(err, "failed to access "+entity)
}

func infraError(err error, entity string) error {
	return apperr.Infrastructure(err, "failed to access "+entity)
}
