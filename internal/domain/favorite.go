package domain

import (
	"context"
	"time"
)

type FavoriteProduct struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index;uniqueIndex:idx_customer_product" json:"-"`
	ProductID  int64     `gorm:"not null;uniqueIndex:idx_customer_product" json:"product_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Customer *Customer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (FavoriteProduct) TableName() string { return "favorite_products" }

// EnrichedFavorite 收藏 + 商品目录字段；查不到商品时目录字段为 null
type EnrichedFavorite struct {
	ID          uint     `json:"id"`
	ProductID   int64    `json:"product_id"`
	Title       *string  `json:"title"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price"`
	RatingRate  *float64 `json:"rating_rate"`
	RatingCount *int     `json:"rating_count"`
}

func Enrich(f FavoriteProduct, p *Product) EnrichedFavorite {
	out := EnrichedFavorite{ID: f.ID, ProductID: f.ProductID}
	if p == nil {
		return out
	}
	title, image := p.Title, p.Image
	price := p.Price.InexactFloat64()
	rate, count := p.Rating.Rate, p.Rating.Count
	out.Title, out.Image, out.Price = &title, &image, &price
	out.RatingRate, out.RatingCount = &rate, &count
	return out
}

type FavoriteRepository interface {
	Create(ctx context.Context, f *FavoriteProduct) error
	Exists(ctx context.Context, customerID uint, productID int64) (bool, error)
	FindOwned(ctx context.Context, customerID, id uint) (*FavoriteProduct, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]FavoriteProduct, error)
	DeleteOwned(ctx context.Context, customerID, id uint) (bool, error)
}
