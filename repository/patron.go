package repository

import (
	"context"
	"strings"

	"github.com/raywall/bar-order-service/dyndb"
	"github.com/raywall/bar-order-service/models"
	"github.com/raywall/bar-order-service/pkg/apperr"
)

// PatronRepository persiste patrons na partição do tenant.
type PatronRepository struct {
	table dyndb.Table
	index string
	opts  options
}

func NewPatronRepository(table dyndb.Table, idx Indexes, opts ...Option) *PatronRepository {
	return &PatronRepository{
		table: table,
		index: idx.withDefaults().Patrons,
		opts:  defaultOptions(opts),
	}
}

// List devolve os patrons do tenant em ordem alfabética (GSI1).
func (r *PatronRepository) List(ctx context.Context, tenantID string) ([]models.Patron, error) {
	items, err := dyndb.From(r.table).
		Index(r.index).
		KeyEqual(attrGSI1PK, patronIndexPK(tenantID)).
		Exec(ctx)
	if err != nil {
		return nil, infraError(err, "patrons")
	}
	patrons, err := dyndb.DecodeAll[models.Patron](items)
	if err != nil {
		return nil, infraError(err, "patrons")
	}
	return patrons, nil
}

// Get busca um patron; patron de outro tenant é NotFound.
func (r *PatronRepository) Get(ctx context.Context, tenantID, patronID string) (*models.Patron, error) {
	if strings.TrimSpace(patronID) == "" {
		return nil, apperr.Validation("patronId is required")
	}
	item, err := r.table.Get(ctx, patronKey(tenantID, patronID))
	if err != nil {
		return nil, storeError(err, "patron", patronID)
	}
	patron, err := dyndb.Decode[models.Patron](item)
	if err != nil {
		return nil, infraError(err, "patron")
	}
	return patron, nil
}

// Create cria um patron com id novo; nome vazio após trim é ValidationError.
func (r *PatronRepository) Create(ctx context.Context, tenantID, name string) (*models.Patron, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	id := r.opts.newID()
	key := patronKey(tenantID, id)
	patron := &models.Patron{
		PK:        key.PK,
		SK:        key.SK,
		GSI1PK:    patronIndexPK(tenantID),
		GSI1SK:    name,
		ID:        id,
		Name:      name,
		CreatedAt: models.Timestamp(r.opts.now()),
	}

	item, err := dyndb.Encode(patron)
	if err != nil {
		return nil, infraError(err, "patron")
	}
	if err := r.table.Put(ctx, item); err != nil {
		return nil, infraError(err, "patron")
	}
	return patron, nil
}

// UpdateName troca o nome e a chave de ordenação do GSI1.
func (r *PatronRepository) UpdateName(ctx context.Context, tenantID, patronID, name string) (*models.Patron, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if strings.TrimSpace(patronID) == "" {
		return nil, apperr.Validation("patronId is required")
	}

	item, err := r.table.Update(ctx, patronKey(tenantID, patronID), map[string]any{
		"name":      name,
		attrGSI1SK:  name,
		"updatedAt": models.Timestamp(r.opts.now()),
	}, dyndb.RequireAttributes(attrPK))
	if err != nil {
		return nil, storeError(err, "patron", patronID)
	}
	patron, err := dyndb.Decode[models.Patron](item)
	if err != nil {
		return nil, infraError(err, "patron")
	}
	return patron, nil
}
