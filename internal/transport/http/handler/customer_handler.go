package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aiqfome-api/internal/core/auth"
	"aiqfome-api/internal/domain"
	"aiqfome-api/internal/service"
	"aiqfome-api/internal/transport/http/ez"
)

// CustomerHandler /customers/ 仅 staff 可用
type CustomerHandler struct {
	svc *service.CustomerService
	log *zap.Logger
}

func NewCustomerHandler(svc *service.CustomerService, l *zap.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, log: l}
}

// 排在 favorites 之后，/customers/:id/ 不影响静态路径
func (h *CustomerHandler) Priority() int { return 30 }

type listQ struct {
	Offset int `form:"offset" binding:"min=0"`
	Limit  int `form:"limit"  binding:"min=0,max=1000"` // 0 = 不分页
}

type listOut struct {
	Total int64             `json:"total"`
	Items []domain.Customer `json:"items"`
}

type detailOut struct {
	Detail string `json:"detail"`
}

var staff = []string{auth.RoleAdmin}

// bindInput 绑定请求体；有字段错误时把唯一性冲突一并带上
func (h *CustomerHandler) bindInput(c *gin.Context, exceptID uint) (service.CustomerInput, error) {
	var in service.CustomerInput
	err := ez.BindBody(c, &in)
	var ae *ez.AErr
	if err == nil || !errors.As(err, &ae) || len(ae.Fields) == 0 {
		return in, err
	}
	conflicts, uerr := h.svc.UniqueConflicts(c.Request.Context(), in, exceptID)
	if uerr != nil {
		return in, uerr
	}
	for k, msgs := range conflicts {
		if _, bad := ae.Fields[k]; !bad {
			ae.Fields[k] = msgs
		}
	}
	return in, ae
}

func (h *CustomerHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/customers/",
		Binder: ez.BindQuery,
		Roles:  staff,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			items, total, err := h.svc.List(c.Request.Context(), in.Offset, in.Limit)
			if err != nil {
				return listOut{}, err
			}
			if items == nil {
				items = []domain.Customer{}
			}
			return listOut{Total: total, Items: items}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Customer]{
		Method: http.MethodPost,
		Path:   "/customers/",
		Binder: ez.BindNone,
		Roles:  staff,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Customer, error) {
			in, err := h.bindInput(c, 0)
			if err != nil {
				return nil, err
			}
			return h.svc.Create(c.Request.Context(), in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Customer]{
		Method: http.MethodGet,
		Path:   "/customers/:id/",
		Binder: ez.BindNone,
		Roles:  staff,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Customer, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), id)
		},
	})

	// PUT：先确认记录存在（404），再校验请求体
	ez.RegisterAction(e, ez.Action[struct{}, *domain.Customer]{
		Method: http.MethodPut,
		Path:   "/customers/:id/",
		Binder: ez.BindNone,
		Roles:  staff,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Customer, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
				return nil, err
			}
			in, err := h.bindInput(c, id)
			if err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), id, in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, detailOut]{
		Method: http.MethodDelete,
		Path:   "/customers/:id/",
		Binder: ez.BindNone,
		Roles:  staff,
		Handler: func(c *gin.Context, _ *struct{}) (detailOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return detailOut{}, err
			}
			if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
				return detailOut{}, err
			}
			return detailOut{Detail: "customer deactivated"}, nil
		},
	})
}
