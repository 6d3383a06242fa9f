package items

import (
	"fmt"

	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ItemRepository interface {
	GetByLocation(location string) ([]models.Item, error)
	GetItem(itemID int) (*models.Item, error)
	Search(query string, location string) ([]models.Item, error)
}

type itemRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) ItemRepository {
	return &itemRepositoryImpl{repository: r}
}

var itemColumns = []interface{}{
	"item_id", "item_name", "category", "location",
	"quantity_total", "quantity_available", "quantity_checked_out",
	"purchase_price", "restock_date", "condition", "status",
	"last_audit_date", "notes", "image_url",
}

func (r *itemRepositoryImpl) GetByLocation(location string) ([]models.Item, error) {
	var items []models.Item
	query := r.repository.GoquDBWrapper.
		Select(itemColumns...).
		From("items").
		Where(goqu.Ex{"location": location}).
		Order(goqu.I("item_name").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, custom_error.WrapStoreError("failed to fetch items for location", err)
	}

	return items, nil
}

func (r *itemRepositoryImpl) GetItem(itemID int) (*models.Item, error) {
	var item models.Item
	query := r.repository.GoquDBWrapper.
		Select(itemColumns...).
		From("items").
		Where(goqu.Ex{"item_id": itemID})

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, custom_error.WrapStoreError("failed to fetch item", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("item", fmt.Sprintf("%d", itemID))
	}

	return &item, nil
}

// Search matches the query case-insensitively against item name and category.
// Results come back in item_id order so paging stays stable.
func (r *itemRepositoryImpl) Search(searchText string, location string) ([]models.Item, error) {
	pattern := "%" + searchText + "%"
	query := r.repository.GoquDBWrapper.
		Select(itemColumns...).
		From("items").
		Where(goqu.Or(
			goqu.C("item_name").ILike(pattern),
			goqu.C("category").ILike(pattern),
		)).
		Order(goqu.I("item_id").Asc())

	if location != "" {
		query = query.Where(goqu.C("location").Eq(location))
	}

	var items []models.Item
	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, custom_error.WrapStoreError("failed to search items", err)
	}

	return items, nil
}

