package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aiqfome-api/internal/domain"
)

type ProductLookup interface {
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

type FavoriteService struct {
	repo     domain.FavoriteRepository
	products ProductLookup
	log      *zap.Logger
	// 列表补全商品信息的并发数
	EnrichConcurrency int
}

func NewFavoriteService(r domain.FavoriteRepository, products ProductLookup, l *zap.Logger) *FavoriteService {
	if l == nil {
		l = zap.NewNop()
	}
	return &FavoriteService{repo: r, products: products, log: l, EnrichConcurrency: 4}
}

func (s *FavoriteService) Create(ctx context.Context, customerID uint, productID int64) (*domain.EnrichedFavorite, error) {
	exists, err := s.repo.Exists(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewFieldError(domain.FieldNonField, domain.MsgUniqueFavorite)
	}

	p, err := s.products.Product(ctx, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			s.log.Warn("catalog lookup failed", zap.Int64("product_id", productID), zap.Error(err))
		}
		return nil, domain.NewFieldError("product_id", domain.MsgProductMissing)
	}

	f := &domain.FavoriteProduct{CustomerID: customerID, ProductID: productID}
	if err := s.repo.Create(ctx, f); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewFieldError(domain.FieldNonField, domain.MsgUniqueFavorite)
		}
		return nil, err
	}
	out := domain.Enrich(*f, p)
	return &out, nil
}

// enrich 查不到商品时字段留空，不让整个请求失败
func (s *FavoriteService) enrich(ctx context.Context, f domain.FavoriteProduct) domain.EnrichedFavorite {
	p, err := s.products.Product(ctx, f.ProductID)
	if err != nil {
		s.log.Warn("favorite enrich failed",
			zap.Uint("favorite_id", f.ID), zap.Int64("product_id", f.ProductID), zap.Error(err))
		return domain.Enrich(f, nil)
	}
	return domain.Enrich(f, p)
}

func (s *FavoriteService) List(ctx context.Context, customerID uint) ([]domain.EnrichedFavorite, error) {
	fs, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EnrichedFavorite, len(fs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.EnrichConcurrency))
	for i := range fs {
		g.Go(func() error {
			out[i] = s.enrich(gctx, fs[i])
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

func (s *FavoriteService) Get(ctx context.Context, customerID, id uint) (*domain.EnrichedFavorite, error) {
	f, err := s.repo.FindOwned(ctx, customerID, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	out := s.enrich(ctx, *f)
	return &out, nil
}

func (s *FavoriteService) Delete(ctx context.Context, customerID, id uint) error {
	deleted, err := s.repo.DeleteOwned(ctx, customerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
