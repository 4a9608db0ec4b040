package repo

import (
	"context"

	"github.com/Skotchmaster/shop_api/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) (Result, error) {
	res := r.DB.WithContext(ctx).Create(u)
	if res.Error != nil {
		return Result{}, mapError(res.Error)
	}
	return Result{AffectedRows: res.RowsAffected, InsertedID: u.ID}, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}
