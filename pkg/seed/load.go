package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/raywall/bar-order-service/repository"
	"github.com/rs/zerolog/log"
)

// Result conta o que foi criado e o que já existia.
type Result struct {
	Categories int
	Blends     int
	MenuItems  int
	Skipped    int
}

// Load grava o catálogo: categorias, depois blends, depois itens. Entidades
// cujo nome já existe são reaproveitadas, então rodar duas vezes não duplica.
func Load(ctx context.Context, repo *repository.MenuRepository, c *Catalog) (Result, error) {
	var res Result

	categories, err := repo.Categories(ctx)
	if err != nil {
		return res, err
	}
	categoryIDs := make(map[string]string)
	for _, existing := range categories {
		categoryIDs[refKey(existing.Name)] = existing.ID
	}
	for _, spec := range c.Categories {
		ref := refKey(firstNonEmpty(spec.Ref, spec.Name))
		if id, ok := categoryIDs[refKey(spec.Name)]; ok {
			categoryIDs[ref] = id
			res.Skipped++
			continue
		}
		created, err := repo.CreateCategory(ctx, repository.CategoryFields{
			Name:        &spec.Name,
			Description: &spec.Description,
			ImageURL:    &spec.ImageURL,
			IsActive:    spec.IsActive,
		})
		if err != nil {
			return res, fmt.Errorf("seed: category %q: %w", spec.Name, err)
		}
		categoryIDs[ref] = created.ID
		categoryIDs[refKey(spec.Name)] = created.ID
		res.Categories++
	}

	blends, err := repo.Blends(ctx)
	if err != nil {
		return res, err
	}
	blendIDs := make(map[string]string)
	for _, existing := range blends {
		blendIDs[refKey(existing.Name)] = existing.ID
	}
	for _, spec := range c.Blends {
		ref := refKey(firstNonEmpty(spec.Ref, spec.Name))
		if id, ok := blendIDs[refKey(spec.Name)]; ok {
			blendIDs[ref] = id
			res.Skipped++
			continue
		}
		created, err := repo.CreateBlend(ctx, repository.BlendFields{
			Name:        &spec.Name,
			Description: &spec.Description,
			IsActive:    spec.IsActive,
		})
		if err != nil {
			return res, fmt.Errorf("seed: blend %q: %w", spec.Name, err)
		}
		blendIDs[ref] = created.ID
		blendIDs[refKey(spec.Name)] = created.ID
		res.Blends++
	}

	items, err := repo.MenuItems(ctx)
	if err != nil {
		return res, err
	}
	existingItems := make(map[string]bool)
	for _, it := range items {
		existingItems[refKey(it.Name)] = true
	}
	for _, spec := range c.MenuItems {
		if existingItems[refKey(spec.Name)] {
			res.Skipped++
			continue
		}
		categoryID, ok := categoryIDs[refKey(spec.Category)]
		if !ok {
			return res, fmt.Errorf("seed: menu item %q references unknown category %q", spec.Name, spec.Category)
		}
		blendList := make([]string, 0, len(spec.Blends))
		for _, b := range spec.Blends {
			id, ok := blendIDs[refKey(b)]
			if !ok {
				return res, fmt.Errorf("seed: menu item %q references unknown blend %q", spec.Name, b)
			}
			blendList = append(blendList, id)
		}

		price := spec.Price
		if _, err := repo.CreateMenuItem(ctx, repository.MenuItemFields{
			Name:            &spec.Name,
			Price:           &price,
			CategoryID:      &categoryID,
			Description:     &spec.Description,
			Recipe:          &spec.Recipe,
			ImageURL:        &spec.ImageURL,
			Thumbnail:       &spec.Thumbnail,
			IsActive:        spec.IsActive,
			AvailableBlends: &blendList,
		}); err != nil {
			return res, fmt.Errorf("seed: menu item %q: %w", spec.Name, err)
		}
		existingItems[refKey(spec.Name)] = true
		res.MenuItems++
	}

	log.Ctx(ctx).Info().
		Int("categories", res.Categories).
		Int("blends", res.Blends).
		Int("menu_items", res.MenuItems).
		Int("skipped", res.Skipped).
		Msg("catalog loaded")
	return res, nil
}

func refKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
