package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yeisme/filevault/pkg/configs"
	ctxPkg "github.com/yeisme/filevault/pkg/context"
	"github.com/yeisme/filevault/pkg/internal/storage/kv"
	nlog "github.com/yeisme/filevault/pkg/log"
)

// SessionGate 把请求令牌解析为用户 ID. KV 中键为 prefix+token，值为用户 ID.
type SessionGate struct {
	store  kv.KVStore
	prefix string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSessionGate 创建会话校验器.
func NewSessionGate(store kv.KVStore, cfg configs.AuthConfig) *SessionGate {
	return &SessionGate{
		store:  store,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.SessionTTL,
		logger: nlog.Component("session"),
	}
}

// Resolve 返回令牌对应的用户 ID. 令牌为空、不存在、值为空或 KV 不可用时均返回 ErrUnauthorized.
func (g *SessionGate) Resolve(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrUnauthorized
	}

	val, err := g.store.Get(ctx, g.key(token))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			l := ctxPkg.WithTraceContext(ctx, g.logger)
			l.Error().Err(err).Msg("session lookup failed")
		}

		return "", ErrUnauthorized
	}

	userID := strings.TrimSpace(string(val))
	if userID == "" {
		return "", ErrUnauthorized
	}

	return userID, nil
}

// Issue 为用户签发新令牌.
func (g *SessionGate) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := g.store.Set(ctx, g.key(token), []byte(userID), g.ttl); err != nil {
		return "", err
	}

	return token, nil
}

// Revoke 使令牌失效，令牌无效时返回 ErrUnauthorized.
func (g *SessionGate) Revoke(ctx context.Context, token string) error {
	if _, err := g.Resolve(ctx, token); err != nil {
		return err
	}

	return g.store.Delete(ctx, g.key(token))
}

func (g *SessionGate) key(token string) string {
	return g.prefix + token
}
