package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/storage/docstore"
)

// UserService 用户注册与查询.
type UserService struct {
	users docstore.UserStore
	cost  int
}

// NewUserService 创建用户服务.
func NewUserService(users docstore.UserStore, cfg configs.AuthConfig) *UserService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &UserService{users: users, cost: cost}
}

// Register 创建用户，依次校验 email、password 与邮箱唯一性.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrMissingEmail
	}

	if password == "" {
		return nil, ErrMissingPassword
	}

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrAlreadyExist
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	u := &model.User{Email: email, Password: string(hash)}
	if err := s.users.InsertUser(ctx, u); err != nil {
		if errors.Is(err, docstore.ErrDuplicate) {
			return nil, ErrAlreadyExist
		}

		return nil, err
	}

	return u, nil
}

// Authenticate 校验邮箱与密码.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrUnauthorized
		}

		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}

	return u, nil
}

// Get 按 ID 查询用户，ID 非法或不存在返回 ErrNotFound.
func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	id, err := model.ParseID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	u, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return u, nil
}
