package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// 模块可选择实现其中一个或两个接口
type PublicModule interface{ MountPublic(*gin.RouterGroup) }
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

type Registry struct {
	public []PublicModule
	api    []APIModule
}

// Register 根据类型断言分发到 Public/API 列表
func (r *Registry) Register(mods ...any) {
	for _, mod := range mods {
		if m, ok := mod.(PublicModule); ok {
			r.public = append(r.public, m)
		}
		if m, ok := mod.(APIModule); ok {
			r.api = append(r.api, m)
		}
	}
}

// MountPublic 挂载无需登录的路由
func (r *Registry) MountPublic(g *gin.RouterGroup) {
	for _, m := range sorted(r.public) {
		m.MountPublic(g)
	}
}

// MountAPI 挂载需要登录的路由（g 已带 Authenticate）
func (r *Registry) MountAPI(g *gin.RouterGroup) {
	for _, m := range sorted(r.api) {
		m.MountAPI(g)
	}
}

func sorted[M any](mods []M) []M {
	out := append([]M(nil), mods...)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityOf(out[i]) < priorityOf(out[j])
	})
	return out
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
