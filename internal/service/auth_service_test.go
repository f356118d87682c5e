package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mentorsurvey/internal/model"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	auth, err := NewAuthService(AuthConfig{
		Username:  "director",
		Password:  "capstone",
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
	require.NoError(t, err)
	return auth
}

func TestAuthLogin(t *testing.T) {
	auth := newTestAuth(t)

	resp, err := auth.Login("director", "capstone")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "director", claims.Username)

	_, err = auth.Login("director", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login("someone", "capstone")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	auth, err := NewAuthService(AuthConfig{
		Username:     "director",
		Password:     "ignored",
		PasswordHash: string(hash),
		JWTSecret:    "test-secret",
	})
	require.NoError(t, err)

	_, err = auth.Login("director", "s3cret")
	assert.NoError(t, err)
	_, err = auth.Login("director", "ignored")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthConfigRequired(t *testing.T) {
	_, err := NewAuthService(AuthConfig{Username: "d", Password: "p"})
	assert.Error(t, err)
	_, err = NewAuthService(AuthConfig{Username: "d", JWTSecret: "x"})
	assert.Error(t, err)
}

func TestValidateTokenRejects(t *testing.T) {
	auth := newTestAuth(t)

	t.Run("expired", func(t *testing.T) {
		resp, err := auth.Login("director", "capstone")
		require.NoError(t, err)
		auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { auth.now = time.Now }()

		_, err = auth.ValidateToken(resp.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign secret", func(t *testing.T) {
		claims := &model.DirectorClaims{
			Username: "director",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
		require.NoError(t, err)

		_, err = auth.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := auth.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
