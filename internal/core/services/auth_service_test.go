package services

import (
	"context"
	"testing"

	"univ-biblio/internal/adapters/persistence/models"
	"univ-biblio/internal/config"
	"univ-biblio/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func validRegisterInput() *RegisterInput {
	return &RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.edu",
		Password:  "secret123",
		Phone:     "+33 6 12 34 56 78",
	}
}

func TestRegisterCreatesActiveUser(t *testing.T) {
	var created *models.User
	users := &mockUserRepo{
		ExistsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		CreateFn: func(ctx context.Context, user *models.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	tokens := &mockRefreshTokenRepo{
		CreateFn: func(ctx context.Context, token *models.RefreshToken) error { return nil },
	}

	svc := NewAuthService(users, tokens, testConfig())
	resp, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	require.NotNil(t, created)
	require.Equal(t, "USER", created.Role)
	require.True(t, created.IsActive)
	require.NotEqual(t, "secret123", created.Password)
	require.True(t, password.Verify("secret123", created.Password))

	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "ada@example.edu", resp.User.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		ExistsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}

	svc := NewAuthService(users, &mockRefreshTokenRepo{}, testConfig())
	_, err := svc.Register(context.Background(), validRegisterInput())
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterFieldValidation(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockRefreshTokenRepo{}, testConfig())

	cases := []struct {
		name   string
		mutate func(in *RegisterInput)
	}{
		{"empty first name", func(in *RegisterInput) { in.FirstName = "" }},
		{"empty last name", func(in *RegisterInput) { in.LastName = "" }},
		{"malformed email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *RegisterInput) { in.Password = "abc" }},
		{"malformed phone", func(in *RegisterInput) { in.Phone = "call me" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(input)
			_, err := svc.Register(context.Background(), input)
			require.ErrorIs(t, err, ErrInvalidField)
		})
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	hashed, err := password.Hash("secret123")
	require.NoError(t, err)

	users := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Password: hashed, Role: "USER", IsActive: true}, nil
		},
	}
	tokens := &mockRefreshTokenRepo{
		CreateFn: func(ctx context.Context, token *models.RefreshToken) error { return nil },
	}

	svc := NewAuthService(users, tokens, testConfig())

	resp, err := svc.Login(context.Background(), &LoginInput{Email: "ada@example.edu", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "ada@example.edu", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailIsGenericError(t *testing.T) {
	users := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewAuthService(users, &mockRefreshTokenRepo{}, testConfig())
	_, err := svc.Login(context.Background(), &LoginInput{Email: "ghost@example.edu", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	hashed, err := password.Hash("secret123")
	require.NoError(t, err)

	users := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Password: hashed, IsActive: false}, nil
		},
	}

	svc := NewAuthService(users, &mockRefreshTokenRepo{}, testConfig())
	_, err = svc.Login(context.Background(), &LoginInput{Email: "ada@example.edu", Password: "secret123"})
	require.ErrorIs(t, err, ErrUserInactive)
}

func TestRefreshTokenRotation(t *testing.T) {
	hashed, err := password.Hash("secret123")
	require.NoError(t, err)

	user := &models.User{ID: 1, Email: "ada@example.edu", Password: hashed, Role: "USER", IsActive: true}

	stored := map[string]*models.RefreshToken{}
	var nextID uint
	revoked := map[uint]bool{}

	users := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return user, nil
		},
	}
	tokens := &mockRefreshTokenRepo{
		CreateFn: func(ctx context.Context, token *models.RefreshToken) error {
			nextID++
			token.ID = nextID
			stored[token.TokenHash] = token
			return nil
		},
		GetByTokenHashFn: func(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
			token, ok := stored[tokenHash]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			if revoked[token.ID] {
				token.RevokedAt = &testNow
			}
			return token, nil
		},
		RevokeFn: func(ctx context.Context, id uint) error {
			revoked[id] = true
			return nil
		},
	}

	svc := NewAuthService(users, tokens, testConfig())

	login, err := svc.Login(context.Background(), &LoginInput{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is single-use.
	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockRefreshTokenRepo{}, testConfig())
	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesByHash(t *testing.T) {
	var revokedHash string
	tokens := &mockRefreshTokenRepo{
		RevokeByTokenHashFn: func(ctx context.Context, tokenHash string) error {
			revokedHash = tokenHash
			return nil
		},
	}

	svc := NewAuthService(&mockUserRepo{}, tokens, testConfig())
	require.NoError(t, svc.Logout(context.Background(), "some-refresh-token"))
	require.Equal(t, password.HashToken("some-refresh-token"), revokedHash)
}
