package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims carried by every auth token. VerificationStatus is captured at
// issue time and seeds the isVerified flag of properties the caller lists.
type Claims struct {
	UserID             string `json:"userId"`
	VerificationStatus bool   `json:"verificationStatus"`
	jwt.StandardClaims
}

const TokenLifetime = 2 * time.Hour

func jwtKey() []byte {
	return []byte(os.Getenv("AUTH_TOKEN"))
}

func GenerateJWT(userID string, verificationStatus bool) (string, error) {
	expirationTime := time.Now().Add(TokenLifetime)

	claims := &Claims{
		UserID:             userID,
		VerificationStatus: verificationStatus,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    "real_estate_backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtKey())
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ValidateJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})

	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return nil, errors.New("invalid token signature")
		}
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, errors.New("token has expired")
		}
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
