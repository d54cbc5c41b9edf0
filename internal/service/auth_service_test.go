package service

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitbuddy/backend/internal/db"
	"fitbuddy/backend/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	_, err = db.RunMigrations(database, db.MigrationsFS(""))
	require.NoError(t, err)
	return NewAuthService(repository.NewUserRepository(database), "test-secret", time.Hour)
}

func TestAuth_RegisterLoginMe(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	registered, apiErr := svc.Register(ctx, RegisterInput{Name: " Sam ", Email: "Sam@Example.com", Password: "secret1"})
	require.Nil(t, apiErr)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "Sam", registered.User.Name)
	assert.Equal(t, "sam@example.com", registered.User.Email)
	assert.Empty(t, registered.User.PasswordHash)

	loggedIn, apiErr := svc.Login(ctx, "sam@example.com", "secret1")
	require.Nil(t, apiErr)

	userID, apiErr := svc.ParseToken(loggedIn.Token)
	require.Nil(t, apiErr)
	assert.Equal(t, registered.User.ID, userID)

	me, apiErr := svc.Me(ctx, userID)
	require.Nil(t, apiErr)
	assert.Equal(t, "Sam", me.Name)
}

func TestAuth_RegisterRules(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	for _, in := range []RegisterInput{
		{Email: "a@example.com", Password: "secret1"},
		{Name: "A", Email: "not-an-email", Password: "secret1"},
		{Name: "A", Email: "a@example.com", Password: "12345"},
	} {
		_, apiErr := svc.Register(ctx, in)
		require.NotNil(t, apiErr, "%+v", in)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "validation_failed", apiErr.Code)
	}
}

func TestAuth_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, apiErr := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.Nil(t, apiErr)

	_, apiErr = svc.Register(ctx, RegisterInput{Name: "B", Email: "A@example.com", Password: "secret2"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Email already exists", apiErr.Message)
}

func TestAuth_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, apiErr := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.Nil(t, apiErr)

	_, apiErr = svc.Login(ctx, "a@example.com", "wrong-pass")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Message)

	_, apiErr = svc.Login(ctx, "nobody@example.com", "secret1")
	require.NotNil(t, apiErr)
	assert.Equal(t, "Invalid email or password", apiErr.Message)

	_, apiErr = svc.ParseToken("garbage")
	require.NotNil(t, apiErr)
}
