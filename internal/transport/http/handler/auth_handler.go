package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aiqfome-api/internal/core/auth"
	"aiqfome-api/internal/service"
	"aiqfome-api/internal/transport/http/ez"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, l *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: l}
}

func (h *AuthHandler) Priority() int { return 10 }

type loginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshIn struct {
	Refresh string `json:"refresh" binding:"required"`
}

type accessOut struct {
	Access string `json:"access"`
}

// MountPublic /auth/* 无需登录
func (h *AuthHandler) MountPublic(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[loginIn, auth.TokenPair]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (auth.TokenPair, error) {
			return h.svc.Login(c.Request.Context(), in.Username, in.Password)
		},
	})

	ez.RegisterAction(e, ez.Action[refreshIn, accessOut]{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *refreshIn) (accessOut, error) {
			access, err := h.svc.Refresh(c.Request.Context(), in.Refresh)
			return accessOut{Access: access}, err
		},
	})

	ez.RegisterAction(e, ez.Action[refreshIn, struct{}]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *refreshIn) (struct{}, error) {
			return struct{}{}, h.svc.Logout(c.Request.Context(), in.Refresh)
		},
	})
}
