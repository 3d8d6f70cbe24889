package utils

import (
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Setenv("AUTH_TOKEN", "test-secret")
	os.Exit(m.Run())
}

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("55e8af6a1d41c82e0cc92c11", true)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "55e8af6a1d41c82e0cc92c11", claims.UserID)
	assert.True(t, claims.VerificationStatus)

	// expiry lands two hours out
	expiry := time.Unix(claims.ExpiresAt, 0)
	assert.WithinDuration(t, time.Now().Add(TokenLifetime), expiry, time.Minute)
}

func TestValidateJWTUnverifiedPoster(t *testing.T) {
	token, err := GenerateJWT("55e8af6a1d41c82e0cc92c12", false)
	assert.NoError(t, err)

	claims, err := ValidateJWT(token)
	assert.NoError(t, err)
	assert.False(t, claims.VerificationStatus)
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	claims := &Claims{
		UserID: "55e8af6a1d41c82e0cc92c11",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-other-secret"))
	assert.NoError(t, err)

	_, err = ValidateJWT(signed)
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	claims := &Claims{
		UserID: "55e8af6a1d41c82e0cc92c11",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Minute).Unix(),
			IssuedAt:  time.Now().Add(-3 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = ValidateJWT(signed)
	assert.EqualError(t, err, "token has expired")
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
