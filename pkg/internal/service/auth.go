package service

import (
	"context"
	"errors"

	"github.com/yeisme/filevault/pkg/internal/model"
)

// AuthService 登录、登出与当前用户查询.
type AuthService struct {
	gate  *SessionGate
	users *UserService
}

// NewAuthService 创建认证服务.
func NewAuthService(gate *SessionGate, users *UserService) *AuthService {
	return &AuthService{gate: gate, users: users}
}

// Connect 校验凭据并签发令牌.
func (s *AuthService) Connect(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrUnauthorized
	}

	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	return s.gate.Issue(ctx, u.ID.String())
}

// Disconnect 注销令牌.
func (s *AuthService) Disconnect(ctx context.Context, token string) error {
	return s.gate.Revoke(ctx, token)
}

// Me 返回已认证用户，用户已不存在时视为未认证.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}

		return nil, err
	}

	return u, nil
}
