package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"aiqfome-api/internal/core/auth"
	"aiqfome-api/internal/domain"
	"aiqfome-api/pkg/utils"
)

type TokenBlacklist interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	customers domain.CustomerRepository
	jwt       *auth.JWTer
	blacklist TokenBlacklist
}

func NewAuthService(customers domain.CustomerRepository, j *auth.JWTer, bl TokenBlacklist) *AuthService {
	return &AuthService{customers: customers, jwt: j, blacklist: bl}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	c, err := s.customers.FindByUsername(ctx, username)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if c == nil || !c.IsActive || !utils.CheckPassword(password, c.PasswordHash) {
		return auth.TokenPair{}, domain.ErrInvalidCredentials
	}
	return s.jwt.IssuePair(c.UID(), c.Role())
}

// activeCustomer 根据 token 里的 uid 取当前有效用户
func (s *AuthService) activeCustomer(ctx context.Context, claims *auth.Claims) (*domain.Customer, error) {
	id, err := strconv.ParseUint(claims.UID, 10, 64)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	c, err := s.customers.FindByID(ctx, uint(id))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrTokenInvalid
	}
	if !c.IsActive {
		return nil, domain.ErrInactive
	}
	return c, nil
}

func (s *AuthService) parseRefresh(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwt.ParseType(token, auth.TypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	black, err := s.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if black {
		return nil, domain.ErrTokenBlacklisted
	}
	return claims, nil
}

// Refresh 用 refresh token 换新的 access token；角色按当前用户记录重新计算
func (s *AuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.parseRefresh(ctx, refresh)
	if err != nil {
		return "", err
	}
	c, err := s.activeCustomer(ctx, claims)
	if err != nil {
		return "", err
	}
	return s.jwt.Issue(c.UID(), c.Role())
}

func (s *AuthService) Logout(ctx context.Context, refresh string) error {
	claims, err := s.parseRefresh(ctx, refresh)
	if err != nil {
		return err
	}
	return s.blacklist.Add(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Authenticate 校验 access token，返回当前用户
func (s *AuthService) Authenticate(ctx context.Context, access string) (*domain.Customer, error) {
	claims, err := s.jwt.ParseType(access, auth.TypeAccess)
	if err != nil {
		if errors.Is(err, auth.ErrWrongType) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	return s.activeCustomer(ctx, claims)
}
