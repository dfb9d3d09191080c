package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("duplicate record")
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInactive           = errors.New("customer is inactive")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrTokenBlacklisted   = errors.New("token is blacklisted")
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

const (
	MsgRequired       = "This field is required."
	MsgUnique         = "This field must be unique."
	MsgUsernameExists = "A user with that username already exists."
	MsgUniqueFavorite = "The fields customer, product_id must make a unique set."
	MsgProductMissing = "product not found"

	FieldNonField = "non_field_errors"
)

// ValidationError 字段 -> 错误信息列表
type ValidationError struct {
	Fields map[string][]string
}

func NewFieldError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

func (v *ValidationError) Add(field, msg string) {
	if v.Fields == nil {
		v.Fields = map[string][]string{}
	}
	v.Fields[field] = append(v.Fields[field], msg)
}

func (v *ValidationError) Empty() bool { return v == nil || len(v.Fields) == 0 }

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(v.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
