package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mod struct {
	name  string
	prio  int
	order *[]string
}

func (m mod) MountAPI(*gin.RouterGroup) { *m.order = append(*m.order, m.name) }
func (m mod) Priority() int            { return m.prio }

type publicOnly struct{ order *[]string }

func (p publicOnly) MountPublic(*gin.RouterGroup) { *p.order = append(*p.order, "public") }

func TestRegistryOrder(t *testing.T) {
	var order []string
	reg := &Registry{}
	reg.Register(
		mod{name: "customers", prio: 30, order: &order},
		mod{name: "favorites", prio: 20, order: &order},
		publicOnly{order: &order},
	)
	g := gin.New().Group("")
	reg.MountPublic(g)
	reg.MountAPI(g)
	assert.Equal(t, []string{"public", "favorites", "customers"}, order)
	assert.Equal(t, 100, priorityOf(publicOnly{}))
}
