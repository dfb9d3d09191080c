package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aiqfome-api/internal/domain"
	"aiqfome-api/pkg/utils"
)

// CustomerInput POST / PUT 共用，PUT 为整体替换；is_staff 缺省时保持原值
type CustomerInput struct {
	Username  string `json:"username"   binding:"required,max=150,username"`
	Email     string `json:"email"      binding:"required,max=191,email"`
	Password  string `json:"password"   binding:"required,max=72"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name"  binding:"required,max=150"`
	IsStaff   *bool  `json:"is_staff"`
}

func (in *CustomerInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
}

type CustomerService struct {
	repo domain.CustomerRepository
}

func NewCustomerService(r domain.CustomerRepository) *CustomerService {
	return &CustomerService{repo: r}
}

func (s *CustomerService) List(ctx context.Context, offset, limit int) ([]domain.Customer, int64, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*domain.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// checkUnique 唯一性校验，exceptID 为更新时的自身 id；空值不查
func (s *CustomerService) checkUnique(ctx context.Context, in *CustomerInput, exceptID uint) error {
	v := &domain.ValidationError{}
	if in.Username != "" {
		taken, err := s.repo.UsernameTaken(ctx, in.Username, exceptID)
		if err != nil {
			return err
		}
		if taken {
			v.Add("username", domain.MsgUsernameExists)
		}
	}
	if in.Email != "" {
		taken, err := s.repo.EmailTaken(ctx, in.Email, exceptID)
		if err != nil {
			return err
		}
		if taken {
			v.Add("email", domain.MsgUnique)
		}
	}
	if !v.Empty() {
		return v
	}
	return nil
}

// UniqueConflicts 只返回唯一性冲突的字段，用于和格式错误一起返回
func (s *CustomerService) UniqueConflicts(ctx context.Context, in CustomerInput, exceptID uint) (map[string][]string, error) {
	in.normalize()
	err := s.checkUnique(ctx, &in, exceptID)
	var v *domain.ValidationError
	if errors.As(err, &v) {
		return v.Fields, nil
	}
	return nil, err
}

// uniqueRace 并发写入撞唯一索引时，重新判断是哪个字段
func (s *CustomerService) uniqueRace(ctx context.Context, in *CustomerInput, exceptID uint, err error) error {
	if !errors.Is(err, domain.ErrDuplicate) {
		return err
	}
	if e := s.checkUnique(ctx, in, exceptID); e != nil {
		return e
	}
	return domain.NewFieldError("email", domain.MsgUnique)
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	in.normalize()
	if err := s.checkUnique(ctx, &in, 0); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	c := &domain.Customer{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsStaff:      in.IsStaff != nil && *in.IsStaff,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, s.uniqueRace(ctx, &in, 0, err)
	}
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, in CustomerInput) (*domain.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.normalize()
	if err := s.checkUnique(ctx, &in, id); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	c.Username = in.Username
	c.Email = in.Email
	c.PasswordHash = hash
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	if in.IsStaff != nil {
		c.IsStaff = *in.IsStaff
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, s.uniqueRace(ctx, &in, id, err)
	}
	return c, nil
}

// Deactivate 软删除：只置 is_active=false
func (s *CustomerService) Deactivate(ctx context.Context, id uint) error {
	found, err := s.repo.SetActive(ctx, id, false)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}
