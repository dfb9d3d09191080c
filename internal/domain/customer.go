package domain

import (
	"context"
	"strconv"
	"time"

	"aiqfome-api/internal/core/auth"
)

// Customer 删除只置 IsActive=false，记录保留
type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	FirstName    string    `gorm:"size:150;not null" json:"first_name"`
	LastName     string    `gorm:"size:150;not null" json:"last_name"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) Role() string {
	if c.IsStaff {
		return auth.RoleAdmin
	}
	return auth.RoleUser
}

func (c *Customer) UID() string { return strconv.FormatUint(uint64(c.ID), 10) }

// CustomerRepository 查不到时返回 (nil, nil)
type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindByUsername(ctx context.Context, username string) (*Customer, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error)
	List(ctx context.Context, offset, limit int) ([]Customer, int64, error)
	Update(ctx context.Context, c *Customer) error
	SetActive(ctx context.Context, id uint, active bool) (bool, error)
}
