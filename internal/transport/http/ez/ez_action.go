package ez

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aiqfome-api/internal/domain"
	mdw "aiqfome-api/internal/transport/http/middleware"
	resp "aiqfome-api/internal/transport/http/response"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / BindBody 取
)

// 统一错误对象；Fields 非空时作为字段错误返回
type AErr struct {
	Code   int
	Msg    string
	Fields map[string][]string
	Err    error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}
func Invalid(fields map[string][]string) error {
	return &AErr{Code: resp.CodeBadRequest, Fields: fields}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string   // "GET" | "POST" | "PUT" | "DELETE"
	Path    string   // 例："/auth/login"、"/customers/:id/"
	Binder  Binder   // 绑定方式
	Auth    bool     // 是否要求登录
	Roles   []string // 限定角色（可选，隐含 Auth）
	Status  int      // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// errorResponse 把 handler / service 返回的错误映射为 HTTP 状态 + 响应体
func errorResponse(err error) (int, resp.Resp) {
	var ae *AErr
	if errors.As(err, &ae) {
		if len(ae.Fields) > 0 {
			return ae.Code, resp.Invalid(ae.Fields)
		}
		if ae.Code >= http.StatusInternalServerError {
			return ae.Code, resp.Error(ae.Code, "")
		}
		return ae.Code, resp.Error(ae.Code, ae.Msg)
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, resp.Invalid(ve.Fields)
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, resp.Error(resp.CodeNotFound, "Not found.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrTokenBlacklisted):
		return http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "Token is blacklisted")
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "Token is invalid or expired")
	case errors.Is(err, domain.ErrInactive):
		return http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "User is inactive")
	}
	return http.StatusInternalServerError, resp.Error(resp.CodeServerError, "")
}

func (e EZ) fail(c *gin.Context, err error) {
	code, body := errorResponse(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		e.log.Error("action failed",
			zap.String("rid", mdw.RequestIDFrom(c)),
			zap.String("route", c.FullPath()),
			zap.Error(err))
	}
	c.AbortWithStatusJSON(code, body)
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

// 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		// 1) 鉴权/角色
		if a.Auth || len(a.Roles) > 0 {
			cust := mdw.CurrentCustomer(c)
			if cust == nil {
				e.fail(c, Unauthorized("Authentication credentials were not provided."))
				return
			}
			if len(a.Roles) > 0 && !hasRole(cust.Role(), a.Roles) {
				e.fail(c, Forbidden("You do not have permission to perform this action."))
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = BindBody(c, &in)
		case BindQuery:
			if err := c.ShouldBindQuery(&in); err != nil {
				bindErr = bindError(err)
			}
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			e.fail(c, bindErr)
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, err)
			return
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// ParamID 路径上的数字 id；非法时按不存在处理
func ParamID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, NotFound("Not found.")
	}
	return uint(id), nil
}
