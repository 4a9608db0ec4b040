package repo

import (
	"context"

	"github.com/Skotchmaster/shop_api/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, mapError(err)
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (Result, error) {
	res := r.DB.WithContext(ctx).Create(prod)
	if res.Error != nil {
		return Result{}, mapError(res.Error)
	}
	return Result{AffectedRows: res.RowsAffected, InsertedID: prod.ID}, nil
}

// UpdateProduct overwrites every column of the row, nil optionals included.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, prod *models.Product) (Result, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        prod.Name,
			"description": nullable(prod.Description),
			"price":       prod.Price,
			"category":    nullable(prod.Category),
			"image_url":   nullable(prod.ImageURL),
		})
	if res.Error != nil {
		return Result{}, mapError(res.Error)
	}
	return Result{AffectedRows: res.RowsAffected}, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) (Result, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return Result{}, mapError(res.Error)
	}
	return Result{AffectedRows: res.RowsAffected}, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
