package usecase_test

import (
	"context"
	"testing"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/usecase"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Role = role
	return nil
}

func authFixture() (*fakeUserRepo, usecase.AuthService) {
	userRepo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	repo := &repository.Repository{User: userRepo}
	jwtCfg := utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1}
	return userRepo, usecase.NewAuthService(repo, jwtCfg, zap.NewNop())
}

func TestRegister_Success(t *testing.T) {
	userRepo, svc := authFixture()

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "frank",
		Email:    "frank@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, entity.RoleUser, resp.Role)

	user, err := userRepo.FindByEmail(context.Background(), "frank@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)

	// Password must be stored hashed, never verbatim.
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc := authFixture()

	req := &request.RegisterRequest{
		Username: "frank",
		Email:    "frank@example.com",
		Password: "correct-horse",
	}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestRegister_ValidationFailures(t *testing.T) {
	_, svc := authFixture()

	cases := []struct {
		name string
		req  *request.RegisterRequest
	}{
		{"short password", &request.RegisterRequest{Username: "frank", Email: "frank@example.com", Password: "short"}},
		{"bad email", &request.RegisterRequest{Username: "frank", Email: "not-an-email", Password: "correct-horse"}},
		{"missing username", &request.RegisterRequest{Email: "frank@example.com", Password: "correct-horse"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLogin(t *testing.T) {
	_, svc := authFixture()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "frank",
		Email:    "frank@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &request.LoginRequest{
			Email:    "frank@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)

		claims, err := utils.ParseAccessToken(resp.Token, utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
		require.NoError(t, err)
		assert.Equal(t, resp.UserID, claims.UserID)
		assert.Equal(t, string(entity.RoleUser), claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &request.LoginRequest{
			Email:    "frank@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
	})

	t.Run("unknown email yields the same error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &request.LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})
}
