package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/raywall/bar-order-service/dyndb"
	"github.com/raywall/bar-order-service/models"
	"github.com/raywall/bar-order-service/pkg/apperr"
)

// MenuItemFields carrega os campos informados pelo admin. Ponteiro nil
// significa "não informado": no update o atributo fica como está.
type MenuItemFields struct {
	Name            *string   `json:"name"`
	Price           *int64    `json:"price"`
	CategoryID      *string   `json:"categoryId"`
	Description     *string   `json:"description"`
	Recipe          *string   `json:"recipe"`
	ImageURL        *string   `json:"imageUrl"`
	Thumbnail       *string   `json:"thumbnail"`
	IsActive        *bool     `json:"isActive"`
	AvailableBlends *[]string `json:"availableBlends"`
	// ExpectedUpdatedAt, no update, só aplica a mudança se o item ainda
	// tiver esse updatedAt. Ignorado na criação.
	ExpectedUpdatedAt *string `json:"expectedUpdatedAt"`
}

type CategoryFields struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

type BlendFields struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

// MenuRepository administra categorias, itens e blends da partição pública.
type MenuRepository struct {
	table dyndb.Table
	opts  options
}

func NewMenuRepository(table dyndb.Table, opts ...Option) *MenuRepository {
	return &MenuRepository{
		table: table,
		opts:  defaultOptions(opts),
	}
}

func listPublic[T any](ctx context.Context, table dyndb.Table, prefix, entity string) ([]T, error) {
	items, err := dyndb.From(table).
		KeyEqual(attrPK, PublicTenant).
		KeyBeginsWith(attrSK, prefix).
		Exec(ctx)
	if err != nil {
		return nil, infraError(err, entity)
	}
	out, err := dyndb.DecodeAll[T](items)
	if err != nil {
		return nil, infraError(err, entity)
	}
	return out, nil
}

func getEntity[T any](ctx context.Context, table dyndb.Table, key dyndb.Key, entity, id string) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("%s id is required", entity)
	}
	item, err := table.Get(ctx, key)
	if err != nil {
		return nil, storeError(err, entity, id)
	}
	v, err := dyndb.Decode[T](item)
	if err != nil {
		return nil, infraError(err, entity)
	}
	return v, nil
}

func putEntity(ctx context.Context, table dyndb.Table, v any, entity string) error {
	item, err := dyndb.Encode(v)
	if err != nil {
		return infraError(err, entity)
	}
	if err := table.Put(ctx, item); err != nil {
		return infraError(err, entity)
	}
	return nil
}

func updateEntity[T any](ctx context.Context, table dyndb.Table, key dyndb.Key, set map[string]any, entity, id string, opts ...dyndb.UpdateOption) (*T, error) {
	opts = append([]dyndb.UpdateOption{dyndb.RequireAttributes(attrPK)}, opts...)
	item, err := table.Update(ctx, key, set, opts...)
	if err != nil {
		return nil, storeError(err, entity, id)
	}
	v, err := dyndb.Decode[T](item)
	if err != nil {
		return nil, infraError(err, entity)
	}
	return v, nil
}

// ---- listagens ----

// Categories devolve todas as categorias por `order`, inclusive inativas.
func (r *MenuRepository) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := listPublic[models.Category](ctx, r.table, prefixCategory, "categories")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Order != categories[j].Order {
			return categories[i].Order < categories[j].Order
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// MenuItems devolve todos os itens por nome, inclusive inativos.
func (r *MenuRepository) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	items, err := listPublic[models.MenuItem](ctx, r.table, prefixMenu, "menu items")
	if err != nil {
		return nil, err
	}
	sortItemsByName(items)
	return items, nil
}

func (r *MenuRepository) Blends(ctx context.Context) ([]models.Blend, error) {
	blends, err := listPublic[models.Blend](ctx, r.table, prefixBlend, "blends")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(blends, func(i, j int) bool {
		if blends[i].Order != blends[j].Order {
			return blends[i].Order < blends[j].Order
		}
		return blends[i].Name < blends[j].Name
	})
	return blends, nil
}

func sortItemsByName(items []models.MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
}

// ListMenu monta o cardápio do cliente: só categorias ativas, cada uma com
// seus itens ativos ordenados por nome.
func (r *MenuRepository) ListMenu(ctx context.Context) ([]models.Category, error) {
	categories, err := r.Categories(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.MenuItems(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]models.MenuItem)
	for _, item := range items {
		if !item.IsActive {
			continue
		}
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}

	menu := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if !c.IsActive {
			continue
		}
		c.Items = byCategory[c.ID]
		if c.Items == nil {
			c.Items = []models.MenuItem{}
		}
		menu = append(menu, c)
	}
	return menu, nil
}

// ---- menu items ----

func (r *MenuRepository) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return getEntity[models.MenuItem](ctx, r.table, menuKey(id), "menu item", id)
}

func (r *MenuRepository) CreateMenuItem(ctx context.Context, f MenuItemFields) (*models.MenuItem, error) {
	name := trimmed(f.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if f.Price == nil || *f.Price <= 0 {
		return nil, apperr.Validation("price must be greater than zero")
	}
	categoryID := trimmed(f.CategoryID)
	if categoryID == "" {
		return nil, apperr.Validation("categoryId is required")
	}
	blends := []string{}
	if f.AvailableBlends != nil {
		blends = normalizeIDs(*f.AvailableBlends)
	}
	if err := r.checkReferences(ctx, categoryID, blends); err != nil {
		return nil, err
	}

	id := r.opts.newID()
	now := models.Timestamp(r.opts.now())
	key := menuKey(id)
	item := &models.MenuItem{
		PK:              key.PK,
		SK:              key.SK,
		ID:              id,
		Name:            name,
		Price:           *f.Price,
		CategoryID:      categoryID,
		Description:     value(f.Description),
		Recipe:          value(f.Recipe),
		ImageURL:        value(f.ImageURL),
		Thumbnail:       value(f.Thumbnail),
		IsActive:        f.IsActive == nil || *f.IsActive,
		AvailableBlends: blends,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := putEntity(ctx, r.table, item, "menu item"); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenuItem aplica só os campos informados e sempre renova updatedAt.
func (r *MenuRepository) UpdateMenuItem(ctx context.Context, id string, f MenuItemFields) (*models.MenuItem, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("menu item id is required")
	}
	set := map[string]any{"updatedAt": models.Timestamp(r.opts.now())}

	if f.Name != nil {
		name := trimmed(f.Name)
		if name == "" {
			return nil, apperr.Validation("name is required")
		}
		set["name"] = name
	}
	if f.Price != nil {
		if *f.Price <= 0 {
			return nil, apperr.Validation("price must be greater than zero")
		}
		set["price"] = *f.Price
	}
	categoryID := ""
	if f.CategoryID != nil {
		categoryID = trimmed(f.CategoryID)
		if categoryID == "" {
			return nil, apperr.Validation("categoryId is required")
		}
		set["categoryId"] = categoryID
	}
	var blends []string
	if f.AvailableBlends != nil {
		blends = normalizeIDs(*f.AvailableBlends)
		set["availableBlends"] = blends
	}
	if err := r.checkReferences(ctx, categoryID, blends); err != nil {
		return nil, err
	}

	setIfPresent(set, "description", f.Description)
	setIfPresent(set, "recipe", f.Recipe)
	setIfPresent(set, "imageUrl", f.ImageURL)
	setIfPresent(set, "thumbnail", f.Thumbnail)
	if f.IsActive != nil {
		set["isActive"] = *f.IsActive
	}

	if f.ExpectedUpdatedAt == nil {
		return updateEntity[models.MenuItem](ctx, r.table, menuKey(id), set, "menu item", id)
	}

	expected := trimmed(f.ExpectedUpdatedAt)
	item, err := updateEntity[models.MenuItem](ctx, r.table, menuKey(id), set, "menu item", id,
		dyndb.IfEquals("updatedAt", expected))
	if apperr.Is(err, apperr.KindNotFound) {
		// a condição falha igual para item ausente e versão divergente
		if _, getErr := r.GetMenuItem(ctx, id); getErr == nil {
			return nil, apperr.Conflict("menu item %s was modified after %s", id, expected)
		}
	}
	return item, err
}

func (r *MenuRepository) DeleteMenuItem(ctx context.Context, id string) error {
	if _, err := r.GetMenuItem(ctx, id); err != nil {
		return err
	}
	if err := r.table.Delete(ctx, menuKey(id)); err != nil {
		return infraError(err, "menu item")
	}
	return nil
}

// checkReferences garante que categoria e blends referenciados existem.
// Valores vazios não são verificados.
func (r *MenuRepository) checkReferences(ctx context.Context, categoryID string, blendIDs []string) error {
	if categoryID != "" {
		if _, err := r.GetCategory(ctx, categoryID); err != nil {
			return err
		}
	}
	for _, id := range blendIDs {
		if _, err := r.GetBlend(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// ---- categories ----

func (r *MenuRepository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return getEntity[models.Category](ctx, r.table, categoryKey(id), "category", id)
}

// CreateCategory anexa a categoria ao final: order = max(existentes) + 1.
func (r *MenuRepository) CreateCategory(ctx context.Context, f CategoryFields) (*models.Category, error) {
	name := trimmed(f.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	existing, err := r.Categories(ctx)
	if err != nil {
		return nil, err
	}
	maxOrder := 0
	for _, c := range existing {
		if c.Order > maxOrder {
			maxOrder = c.Order
		}
	}

	id := r.opts.newID()
	now := models.Timestamp(r.opts.now())
	key := categoryKey(id)
	category := &models.Category{
		PK:          key.PK,
		SK:          key.SK,
		ID:          id,
		Name:        name,
		Description: value(f.Description),
		ImageURL:    value(f.ImageURL),
		Order:       maxOrder + 1,
		IsActive:    f.IsActive == nil || *f.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := putEntity(ctx, r.table, category, "category"); err != nil {
		return nil, err
	}
	return category, nil
}

func (r *MenuRepository) UpdateCategory(ctx context.Context, id string, f CategoryFields) (*models.Category, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("category id is required")
	}
	set := map[string]any{"updatedAt": models.Timestamp(r.opts.now())}
	if f.Name != nil {
		name := trimmed(f.Name)
		if name == "" {
			return nil, apperr.Validation("name is required")
		}
		set["name"] = name
	}
	setIfPresent(set, "description", f.Description)
	setIfPresent(set, "imageUrl", f.ImageURL)
	if f.Order != nil {
		set["order"] = *f.Order
	}
	if f.IsActive != nil {
		set["isActive"] = *f.IsActive
	}
	return updateEntity[models.Category](ctx, r.table, categoryKey(id), set, "category", id)
}

// DeleteCategory recusa (ConflictError) enquanto algum item, ativo ou não,
// apontar para a categoria. Não há cascata.
func (r *MenuRepository) DeleteCategory(ctx context.Context, id string) error {
	if _, err := r.GetCategory(ctx, id); err != nil {
		return err
	}
	items, err := r.MenuItems(ctx)
	if err != nil {
		return err
	}
	inUse := 0
	for _, item := range items {
		if item.CategoryID == id {
			inUse++
		}
	}
	if inUse > 0 {
		return apperr.Conflict("category %s is still referenced by %d menu item(s)", id, inUse)
	}
	if err := r.table.Delete(ctx, categoryKey(id)); err != nil {
		return infraError(err, "category")
	}
	return nil
}

// ---- blends ----

func (r *MenuRepository) GetBlend(ctx context.Context, id string) (*models.Blend, error) {
	return getEntity[models.Blend](ctx, r.table, blendKey(id), "blend", id)
}

func (r *MenuRepository) CreateBlend(ctx context.Context, f BlendFields) (*models.Blend, error) {
	name := trimmed(f.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	existing, err := r.Blends(ctx)
	if err != nil {
		return nil, err
	}
	maxOrder := 0
	for _, b := range existing {
		if b.Order > maxOrder {
			maxOrder = b.Order
		}
	}

	id := r.opts.newID()
	now := models.Timestamp(r.opts.now())
	key := blendKey(id)
	blend := &models.Blend{
		PK:          key.PK,
		SK:          key.SK,
		ID:          id,
		Name:        name,
		Description: value(f.Description),
		Order:       maxOrder + 1,
		IsActive:    f.IsActive == nil || *f.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := putEntity(ctx, r.table, blend, "blend"); err != nil {
		return nil, err
	}
	return blend, nil
}

func (r *MenuRepository) UpdateBlend(ctx context.Context, id string, f BlendFields) (*models.Blend, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("blend id is required")
	}
	set := map[string]any{"updatedAt": models.Timestamp(r.opts.now())}
	if f.Name != nil {
		name := trimmed(f.Name)
		if name == "" {
			return nil, apperr.Validation("name is required")
		}
		set["name"] = name
	}
	setIfPresent(set, "description", f.Description)
	if f.Order != nil {
		set["order"] = *f.Order
	}
	if f.IsActive != nil {
		set["isActive"] = *f.IsActive
	}
	return updateEntity[models.Blend](ctx, r.table, blendKey(id), set, "blend", id)
}

// DeleteBlend recusa enquanto algum item listar o blend como disponível.
func (r *MenuRepository) DeleteBlend(ctx context.Context, id string) error {
	if _, err := r.GetBlend(ctx, id); err != nil {
		return err
	}
	items, err := r.MenuItems(ctx)
	if err != nil {
		return err
	}
	inUse := 0
	for _, item := range items {
		if item.OffersBlend(id) {
			inUse++
		}
	}
	if inUse > 0 {
		return apperr.Conflict("blend %s is still offered by %d menu item(s)", id, inUse)
	}
	if err := r.table.Delete(ctx, blendKey(id)); err != nil {
		return infraError(err, "blend")
	}
	return nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func setIfPresent(set map[string]any, name string, p *string) {
	if p != nil {
		set[name] = *p
	}
}

// normalizeIDs remove vazios e duplicados preservando a ordem.
func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
