package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiqfome-api/internal/core/auth"
)

func TestProductDecodesCatalogJSON(t *testing.T) {
	raw := `{"id":1,"title":"Fjallraven Backpack","price":109.95,"description":"bag",
	"category":"men's clothing","image":"https://img/1.jpg","rating":{"rate":3.9,"count":120}}`
	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "109.95", p.Price.String())
	assert.Equal(t, 120, p.Rating.Count)
}

func TestEnrich(t *testing.T) {
	f := FavoriteProduct{ID: 7, CustomerID: 1, ProductID: 3}

	empty := Enrich(f, nil)
	assert.Equal(t, uint(7), empty.ID)
	assert.Nil(t, empty.Title)
	assert.Nil(t, empty.RatingCount)

	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"title":"Shirt","price":22.3,"image":"i","rating":{"rate":4.1,"count":259}}`), &p))
	e := Enrich(f, &p)
	require.NotNil(t, e.Title)
	assert.Equal(t, "Shirt", *e.Title)
	assert.Equal(t, "i", *e.Image)
	assert.InDelta(t, 22.3, *e.Price, 1e-9)
	assert.InDelta(t, 4.1, *e.RatingRate, 1e-9)
	assert.Equal(t, 259, *e.RatingCount)

	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"product_id":3,"title":null,"image":null,"price":null,"rating_rate":null,"rating_count":null}`, string(b))
}

func TestValidationError(t *testing.T) {
	var v *ValidationError
	assert.True(t, v.Empty())

	v = NewFieldError("email", MsgRequired)
	v.Add("email", "Enter a valid email address.")
	v.Add("first_name", MsgRequired)
	assert.False(t, v.Empty())
	assert.Len(t, v.Fields["email"], 2)
	assert.Equal(t, "validation failed: email: This field is required. Enter a valid email address.; first_name: This field is required.", v.Error())
}

func TestCustomerRole(t *testing.T) {
	c := Customer{ID: 12}
	assert.Equal(t, auth.RoleUser, c.Role())
	c.IsStaff = true
	assert.Equal(t, auth.RoleAdmin, c.Role())
	assert.Equal(t, "12", c.UID())
}
