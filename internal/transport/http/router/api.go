package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"aiqfome-api/internal/core/config"
	"aiqfome-api/internal/core/server"
	"aiqfome-api/internal/service"
	"aiqfome-api/internal/transport/http/handler"
	mdw "aiqfome-api/internal/transport/http/middleware"
	resp "aiqfome-api/internal/transport/http/response"
)

// Deps 组装路由需要的依赖
type Deps struct {
	App       config.App
	Limits    config.Limits
	CORS      config.CORS
	Auth      *service.AuthService
	Customers *service.CustomerService
	Favorites *service.FavoriteService
	// /health 依次调用，任一失败返回 503
	Checks map[string]func(context.Context) error
}

func NewAPIEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := server.NewRouter(l, server.Options{
		Name:         d.App.Name,
		Mode:         d.App.Mode,
		AllowOrigins: d.CORS.AllowOrigins,
	})

	lim := d.Limits
	r.Use(
		mdw.RequestID(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst),
		mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst),
		mdw.ConcurrencyLimit(lim.MaxInFlight),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(time.Duration(lim.RequestTimeoutSec)*time.Second),
	)

	r.GET("/health", health(d.Checks))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reg := &Registry{}
	reg.Register(
		handler.NewAuthHandler(d.Auth, l),
		handler.NewFavoriteHandler(d.Favorites, l),
		handler.NewCustomerHandler(d.Customers, l),
	)
	reg.MountPublic(r.Group(""))
	reg.MountAPI(r.Group("", mdw.Authenticate(d.Auth)))

	return r
}

func health(checks map[string]func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		failed := map[string]string{}
		for name, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, resp.New(resp.CodeUnavailable, resp.CodeMsgMap[resp.CodeUnavailable], failed))
			return
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"ok": 1}))
	}
}
