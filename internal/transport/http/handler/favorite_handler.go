package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aiqfome-api/internal/domain"
	"aiqfome-api/internal/service"
	"aiqfome-api/internal/transport/http/ez"
	mdw "aiqfome-api/internal/transport/http/middleware"
)

// FavoriteHandler 登录用户只能操作自己的收藏
type FavoriteHandler struct {
	svc *service.FavoriteService
	log *zap.Logger
}

func NewFavoriteHandler(svc *service.FavoriteService, l *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{svc: svc, log: l}
}

func (h *FavoriteHandler) Priority() int { return 20 }

type favoriteIn struct {
	ProductID *int64 `json:"product_id" binding:"required,gt=0"`
}

func (h *FavoriteHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.EnrichedFavorite]{
		Method: http.MethodGet,
		Path:   "/customers/favorite-products/",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.EnrichedFavorite, error) {
			return h.svc.List(c.Request.Context(), mdw.CurrentCustomer(c).ID)
		},
	})

	ez.RegisterAction(e, ez.Action[favoriteIn, *domain.EnrichedFavorite]{
		Method: http.MethodPost,
		Path:   "/customers/favorite-products/",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *favoriteIn) (*domain.EnrichedFavorite, error) {
			return h.svc.Create(c.Request.Context(), mdw.CurrentCustomer(c).ID, *in.ProductID)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.EnrichedFavorite]{
		Method: http.MethodGet,
		Path:   "/customers/favorite-products/:id/",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.EnrichedFavorite, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), mdw.CurrentCustomer(c).ID, id)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/customers/favorite-products/:id/",
		Binder: ez.BindNone,
		Auth:   true,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, h.svc.Delete(c.Request.Context(), mdw.CurrentCustomer(c).ID, id)
		},
	})
}
