package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aiqfome-api/internal/domain"
)

type FavoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) Create(ctx context.Context, f *domain.FavoriteProduct) error {
	return translate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *FavoriteRepo) Exists(ctx context.Context, customerID uint, productID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.FavoriteProduct{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&n).Error
	return n > 0, err
}

func (r *FavoriteRepo) FindOwned(ctx context.Context, customerID, id uint) (*domain.FavoriteProduct, error) {
	var f domain.FavoriteProduct
	err := r.db.WithContext(ctx).First(&f, "id = ? AND customer_id = ?", id, customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepo) ListByCustomer(ctx context.Context, customerID uint) ([]domain.FavoriteProduct, error) {
	fs := []domain.FavoriteProduct{}
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id asc").
		Find(&fs).Error
	return fs, err
}

// DeleteOwned 只删自己的；返回是否删到
func (r *FavoriteRepo) DeleteOwned(ctx context.Context, customerID, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		Delete(&domain.FavoriteProduct{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
