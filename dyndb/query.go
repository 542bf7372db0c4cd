// dyndb/query.go
package dyndb

import (
	"context"
	"errors"
)

// SortOperator define a condição aplicada à chave de ordenação.
type SortOperator int

const (
	SortNone SortOperator = iota
	SortEqual
	SortBeginsWith
)

// QuerySpec descreve uma consulta por chave: igualdade na partição, condição
// opcional na ordenação, índice opcional e direção.
type QuerySpec struct {
	IndexName      string
	PartitionName  string
	PartitionValue string
	SortName       string
	SortOp         SortOperator
	SortValue      string
	ScanForward    bool
}

// Validate garante que a consulta tem ao menos a condição de partição.
func (s QuerySpec) Validate() error {
	if s.PartitionName == "" || s.PartitionValue == "" {
		return errors.New("dyndb: query requires a partition key condition")
	}
	if s.SortOp != SortNone && s.SortName == "" {
		return errors.New("dyndb: sort condition without sort key name")
	}
	return nil
}

// QueryBuilder — o builder fluente
type QueryBuilder struct {
	table Table
	spec  QuerySpec
}

// From inicia uma consulta sobre a tabela. A ordem padrão é ascendente.
func From(t Table) *QueryBuilder {
	return &QueryBuilder{
		table: t,
		spec:  QuerySpec{ScanForward: true},
	}
}

func (qb *QueryBuilder) Index(name string) *QueryBuilder {
	qb.spec.IndexName = name
	return qb
}

// KeyEqual na primeira chamada define a partição; na segunda, igualdade na ordenação.
func (qb *QueryBuilder) KeyEqual(key, value string) *QueryBuilder {
	if qb.spec.PartitionName == "" {
		qb.spec.PartitionName = key
		qb.spec.PartitionValue = value
		return qb
	}
	qb.spec.SortName = key
	qb.spec.SortOp = SortEqual
	qb.spec.SortValue = value
	return qb
}

func (qb *QueryBuilder) KeyBeginsWith(key, prefix string) *QueryBuilder {
	qb.spec.SortName = key
	qb.spec.SortOp = SortBeginsWith
	qb.spec.SortValue = prefix
	return qb
}

func (qb *QueryBuilder) ScanForward(forward bool) *QueryBuilder {
	qb.spec.ScanForward = forward
	return qb
}

// Spec expõe a consulta montada.
func (qb *QueryBuilder) Spec() QuerySpec {
	return qb.spec
}

// Exec executa a consulta percorrendo todas as páginas.
func (qb *QueryBuilder) Exec(ctx context.Context) ([]Item, error) {
	return qb.table.Query(ctx, qb.spec)
}
