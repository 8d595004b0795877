package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, obj *models.User) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id any, dest *models.User) error {
	args := m.Called(ctx, id, dest)
	if args.Error(0) == nil && args.Get(1) != nil {
		src := args.Get(1).(*models.User)
		*dest = *src
	}
	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, obj *models.User) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id any) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	args := m.Called(ctx, email, dest)
	if args.Error(0) == nil && args.Get(1) != nil {
		src := args.Get(1).(*models.User)
		*dest = *src
	}
	return args.Error(0)
}

func TestAuthService_LoginAndSessionRoundTrip(t *testing.T) {
	repo := &mockUserRepository{}
	svc := NewAuthService(repo, []byte("0123456789abcdef0123456789abcdef"))

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Email: "admin@example.com", PasswordHash: string(hash), IsAdmin: true}
	repo.On("GetByEmail", mock.Anything, "admin@example.com", mock.Anything).Return(nil, user)

	token, u, err := svc.Login(context.Background(), "admin@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := svc.GetSession(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, u.ID, sess.UserID)
	require.True(t, sess.IsAdmin)
}

func TestAuthService_LoginRejectsBadPassword(t *testing.T) {
	repo := &mockUserRepository{}
	svc := NewAuthService(repo, []byte("0123456789abcdef0123456789abcdef"))

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "u@example.com", mock.Anything).
		Return(nil, &models.User{Email: "u@example.com", PasswordHash: string(hash)})

	_, _, err = svc.Login(context.Background(), "u@example.com", "wrong-password")
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

func TestAuthService_SessionRejectsForeignToken(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, []byte("0123456789abcdef0123456789abcdef"))
	other := NewAuthService(&mockUserRepository{}, []byte("ffffffffffffffffffffffffffffffff"))

	repo := &mockUserRepository{}
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "u@example.com", mock.Anything).
		Return(nil, &models.User{Email: "u@example.com", PasswordHash: string(hash)})
	issuer := NewAuthService(repo, []byte("ffffffffffffffffffffffffffffffff"))

	token, _, err := issuer.Login(context.Background(), "u@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.GetSession(context.Background(), token)
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))

	_, err = other.GetSession(context.Background(), token)
	require.NoError(t, err)
}
