package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"blogapi/internal/common"
	"blogapi/internal/common/security"
	"blogapi/internal/domain/model"
	"blogapi/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	users []*model.User
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("duplicate user: %w", common.ErrConflict)
		}
	}
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

type memRevoker struct {
	revoked map[string]time.Duration
}

func newMemRevoker() *memRevoker {
	return &memRevoker{revoked: map[string]time.Duration{}}
}

func (m *memRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

func initTestJWT(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:     []byte("test-secret-key"),
		JWTExp:     time.Hour,
		CookieName: "access_token",
	}
	security.InitJWT()
}

func newAuthService() (*AuthService, *memUserRepo, *memRevoker) {
	users := &memUserRepo{}
	revoker := newMemRevoker()
	return NewAuthService(users, revoker), users, revoker
}

func TestRegisterRequiresAllFields(t *testing.T) {
	svc, _, _ := newAuthService()

	for _, req := range []RegisterRequest{
		{Email: "a@x.com", Password: "pw"},
		{Username: "a", Password: "pw"},
		{Username: "a", Email: "a@x.com"},
	} {
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, common.ErrBadRequest)
	}
}

func TestRegisterHashesAndStripsPassword(t *testing.T) {
	svc, users, _ := newAuthService()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "pw123456",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.HashedPassword)

	stored, err := users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123456", stored.HashedPassword)
	assert.True(t, security.CheckPasswordHash("pw123456", stored.HashedPassword))
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw123456"})
	require.NoError(t, err)

	// Same email, different username
	_, err = svc.Register(ctx, RegisterRequest{Username: "alice2", Email: "alice@x.com", Password: "pw123456"})
	assert.ErrorIs(t, err, common.ErrConflict)

	// Same username, different email
	_, err = svc.Register(ctx, RegisterRequest{Username: "alice", Email: "other@x.com", Password: "pw123456"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestLoginUnknownUser(t *testing.T) {
	initTestJWT(t)
	svc, _, _ := newAuthService()

	_, _, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	initTestJWT(t)
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw123456"})
	require.NoError(t, err)

	_, token, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "nope"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	initTestJWT(t)
	svc, _, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw123456"})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "pw123456"})
	require.NoError(t, err)
	assert.Empty(t, user.HashedPassword)

	claims, err := security.ParseToken(token)
	require.NoError(t, err)
	userID, err := security.GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestLogoutRevokesToken(t *testing.T) {
	initTestJWT(t)
	svc, _, revoker := newAuthService()
	ctx := context.Background()

	token, err := security.GenerateToken("user-1")
	require.NoError(t, err)
	claims, err := security.ParseToken(token)
	require.NoError(t, err)
	jti, err := security.GetTokenIDFromClaims(claims)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	ttl, ok := revoker.revoked[jti]
	require.True(t, ok)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, config.AppConfig.JWTExp)
}

func TestLogoutIgnoresGarbageToken(t *testing.T) {
	initTestJWT(t)
	svc, _, revoker := newAuthService()

	require.NoError(t, svc.Logout(context.Background(), "not-a-token"))
	require.NoError(t, svc.Logout(context.Background(), ""))
	assert.Empty(t, revoker.revoked)
}
