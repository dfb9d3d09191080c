package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"aiqfome-api/internal/core/logger"
	mdw "aiqfome-api/internal/transport/http/middleware"
)

type Options struct {
	Name         string
	Mode         string // debug / release / test
	AllowOrigins []string
}

func NewRouter(l *zap.Logger, o Options) *gin.Engine {
	if l == nil {
		l = zap.NewNop()
	}
	if o.Mode != "" {
		gin.SetMode(o.Mode)
	}
	// gin 的路由调试输出走 zap
	gin.DefaultWriter = logger.ToWriter(l.Named("gin"), zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(l.Named("gin"), zapcore.ErrorLevel)
	r := gin.New()
	r.Use(mdw.Recovery(l))
	if len(o.AllowOrigins) == 0 {
		r.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = o.AllowOrigins
		cc.AddAllowHeaders("Authorization")
		cc.ExposeHeaders = []string{mdw.KeyRequestID}
		r.Use(cors.New(cc))
	}
	return r
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       rt,
		ReadHeaderTimeout: rt,
		WriteTimeout:      wt,
		IdleTimeout:       it,
		MaxHeaderBytes:    1 << 20, // 1MB
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
