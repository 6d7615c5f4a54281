package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/filevault/pkg/internal/service"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "", "")
	assert.ErrorIs(t, err, service.ErrMissingEmail)

	_, err = f.users.Register(ctx, "bob@dylan.com", "")
	assert.ErrorIs(t, err, service.ErrMissingPassword)

	u, err := f.users.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	assert.False(t, u.ID.IsZero())
	assert.NotEqual(t, "toto1234!", u.Password)

	_, err = f.users.Register(ctx, "bob@dylan.com", "other")
	assert.ErrorIs(t, err, service.ErrAlreadyExist)
}

func TestConnectDisconnect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	_, err = f.auth.Connect(ctx, "bob@dylan.com", "wrong")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.auth.Connect(ctx, "nobody@dylan.com", "toto1234!")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	token, err := f.auth.Connect(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := f.gate.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), userID)

	me, err := f.auth.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "bob@dylan.com", me.Email)

	_, err = f.auth.Me(ctx, owner)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	require.NoError(t, f.auth.Disconnect(ctx, token))

	_, err = f.gate.Resolve(ctx, token)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	_, err = f.users.Authenticate(ctx, "bob@dylan.com", "nope")
	require.ErrorIs(t, err, service.ErrUnauthorized)
	assert.Equal(t, "Unauthorized", err.Error())

	_, err = f.users.Authenticate(ctx, "ghost@dylan.com", "nope")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}
