package controllers

import (
	"net/http"

	"github.com/ncr-housing/real_estate_backend/utils"
)

type ContextKey string

// AuthClaimsKey carries the verified token claims between the auth
// middleware and the handlers.
const AuthClaimsKey = ContextKey("authClaims")

func authClaims(r *http.Request) (*utils.Claims, bool) {
	claims, ok := r.Context().Value(AuthClaimsKey).(*utils.Claims)
	return claims, ok
}
