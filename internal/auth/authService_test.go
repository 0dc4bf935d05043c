package auth_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Wissal65/RAG-Application/internal/auth"
	"github.com/Wissal65/RAG-Application/internal/data/sqlStore"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) auth.Service {
	t.Helper()
	store, err := sqlStore.NewSQLiteStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	return auth.NewService(store, "test-secret")
}

// raceStore reports no existing user on lookup but a unique-index loss on
// insert, the window a concurrent registration slips through.
type raceStore struct {
	sqlStore.Store
}

func (s *raceStore) GetUserByEmail(ctx context.Context, email string) (*commonModels.User, error) {
	return nil, sqlStore.ErrNotFound
}

func (s *raceStore) CreateUser(ctx context.Context, user *commonModels.User) error {
	return sqlStore.ErrDuplicate
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Someone@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "someone@example.com", user.Email)
	assert.NotEmpty(t, user.Id)

	t.Run("duplicate registration", func(t *testing.T) {
		_, err := svc.Register(ctx, "someone@example.com", "password123")
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})

	t.Run("duplicate past the lookup still maps to email taken", func(t *testing.T) {
		// Simulates two registrations racing: the lookup sees no user, but
		// the insert loses to the unique index.
		racing := auth.NewService(&raceStore{}, "test-secret")
		_, err := racing.Register(ctx, "raced@example.com", "password123")
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})

	t.Run("login roundtrip", func(t *testing.T) {
		token, loggedIn, err := svc.Login(ctx, "someone@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, user.Id, loggedIn.Id)

		userId, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.Id, userId)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "someone@example.com", "wrong-password")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password123"},
		{"no at sign", "not-an-email", "password123"},
		{"short password", "a@b.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestVerifyToken_Invalid(t *testing.T) {
	svc := newService(t)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifyToken("not.a.jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		otherStore, err := sqlStore.NewSQLiteStore(filepath.Join(t.TempDir(), "other.db"))
		require.NoError(t, err)
		other := auth.NewService(otherStore, "different-secret")

		_, regErr := other.Register(context.Background(), "x@y.com", "password123")
		require.NoError(t, regErr)
		token, _, loginErr := other.Login(context.Background(), "x@y.com", "password123")
		require.NoError(t, loginErr)

		_, verifyErr := svc.VerifyToken(token)
		assert.ErrorIs(t, verifyErr, auth.ErrInvalidToken)
	})
}
