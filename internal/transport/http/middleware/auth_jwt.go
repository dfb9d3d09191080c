package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aiqfome-api/internal/domain"
	resp "aiqfome-api/internal/transport/http/response"
)

const ctxCustomer = "customer"

type Authenticator interface {
	Authenticate(ctx context.Context, access string) (*domain.Customer, error)
}

// Authenticate 校验 Bearer access token；用户不存在或已停用一律 401
func Authenticate(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				resp.Error(resp.CodeUnauthorized, "Authentication credentials were not provided."))
			return
		}
		cust, err := a.Authenticate(c.Request.Context(), strings.TrimSpace(strings.TrimPrefix(ah, "Bearer ")))
		if err != nil {
			msg := "Given token not valid for any token type"
			switch {
			case errors.Is(err, domain.ErrInactive):
				msg = "User is inactive"
			case !errors.Is(err, domain.ErrTokenInvalid):
				c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, ""))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, msg))
			return
		}
		c.Set(ctxCustomer, cust)
		c.Next()
	}
}

// CurrentCustomer 未经过 Authenticate 时返回 nil
func CurrentCustomer(c *gin.Context) *domain.Customer {
	v, ok := c.Get(ctxCustomer)
	if !ok {
		return nil
	}
	cust, _ := v.(*domain.Customer)
	return cust
}
