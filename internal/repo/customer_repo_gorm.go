package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aiqfome-api/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CustomerRepo) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) FindByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).First(&c, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) taken(ctx context.Context, column, value string, exceptID uint) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&domain.Customer{}).Where(column+" = ?", value)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CustomerRepo) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	return r.taken(ctx, "email", email, exceptID)
}

func (r *CustomerRepo) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	return r.taken(ctx, "username", username, exceptID)
}

// List limit<=0 时返回全部
func (r *CustomerRepo) List(ctx context.Context, offset, limit int) ([]domain.Customer, int64, error) {
	base := func() *gorm.DB { return r.db.WithContext(ctx).Model(&domain.Customer{}) }
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q := base().Order("id asc")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	cs := []domain.Customer{}
	if err := q.Find(&cs).Error; err != nil {
		return nil, 0, err
	}
	return cs, total, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

// SetActive 返回记录是否存在
func (r *CustomerRepo) SetActive(ctx context.Context, id uint, active bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// 值没变时部分驱动 RowsAffected=0，再确认一次
	found, err := r.FindByID(ctx, id)
	return found != nil, err
}
