package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole_ClosedSet(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Role
	}{
		{"admin", "ROLE_ADMIN", RoleAdmin},
		{"user", "ROLE_USER", RoleUser},
		{"absent", "", RoleUser},
		{"unknown", "ROLE_SUPERUSER", RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRole(tt.raw))
		})
	}
}

func TestRole_IsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, Role("ROLE_OTHER").IsAdmin())
}

func TestSearchCriteria_Values_OmitsEmpty(t *testing.T) {
	min := 1.5
	max := 10.0
	c := SearchCriteria{Name: "fudge", MinPrice: &min, MaxPrice: &max}

	v := c.Values()
	assert.Equal(t, "fudge", v.Get("name"))
	assert.Equal(t, "1.5", v.Get("minPrice"))
	assert.Equal(t, "10", v.Get("maxPrice"))
	_, hasCategory := v["category"]
	assert.False(t, hasCategory, "empty category must not be serialized")
}

func TestSearchCriteria_IsEmpty(t *testing.T) {
	assert.True(t, SearchCriteria{}.IsEmpty())
	assert.False(t, SearchCriteria{Category: "chocolate"}.IsEmpty())
	zero := 0.0
	assert.False(t, SearchCriteria{MinPrice: &zero}.IsEmpty(), "an explicit zero bound is a criterion")
}

func TestSweetInput_Validate(t *testing.T) {
	valid := SweetInput{Name: "Fudge", Category: "chocolate", Price: 2.5, Quantity: 10}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		in   SweetInput
		want error
	}{
		{"missing name", SweetInput{Category: "c"}, ErrNameRequired},
		{"missing category", SweetInput{Name: "n"}, ErrCategoryRequired},
		{"negative price", SweetInput{Name: "n", Category: "c", Price: -1}, ErrNegativePrice},
		{"negative quantity", SweetInput{Name: "n", Category: "c", Quantity: -1}, ErrNegativeQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.in.Validate(), tt.want)
		})
	}
}
