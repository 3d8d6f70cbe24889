package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ncr-housing/real_estate_backend/config"
	"github.com/ncr-housing/real_estate_backend/controllers"
	"github.com/ncr-housing/real_estate_backend/models"
	"github.com/ncr-housing/real_estate_backend/utils"
)

// IsAuth verifies the bearer token and injects the decoded claims into the
// request context. Read endpoints never pass through here.
func IsAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			log.Printf("Missing Authorization header from request %s %s", r.Method, r.URL)
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized or no token!")
			return
		}

		tokenParts := strings.Split(tokenHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			log.Printf("Invalid Authorization header format from request %s %s", r.Method, r.URL)
			utils.WriteError(w, http.StatusUnauthorized, "Invalid Token")
			return
		}

		claims, err := utils.ValidateJWT(tokenParts[1])
		if err != nil {
			log.Printf("Invalid or expired token: %v", err)
			utils.WriteError(w, http.StatusUnauthorized, "Invalid Token")
			return
		}

		ctx := context.WithValue(r.Context(), controllers.AuthClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// fetchOwnedProperty loads the property an ownership check inspects. Package
// variable so tests can stub the lookup.
var fetchOwnedProperty = func(ctx context.Context, id primitive.ObjectID) (models.Property, error) {
	var property models.Property
	err := config.PropertyCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	return property, err
}

// IsOwner gates the mutating property endpoints: it loads the property named
// in the path and rejects callers that are not its poster. Must run after
// IsAuth.
func IsOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(controllers.AuthClaimsKey).(*utils.Claims)
		if !ok {
			log.Println("Auth claims missing in context")
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized or no token!")
			return
		}

		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			utils.WriteError(w, http.StatusUnauthorized, "Invalid request!")
			return
		}

		property, err := fetchOwnedProperty(r.Context(), objID)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusNotFound, "Property not found or don't exist!")
			return
		}
		if err != nil {
			log.Printf("Error loading property %s for ownership check: %v", propertyID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again!")
			return
		}

		if property.PostedBy.Hex() != claims.UserID {
			log.Printf("User %s attempted to mutate property %s owned by %s", claims.UserID, propertyID, property.PostedBy.Hex())
			utils.WriteError(w, http.StatusUnauthorized, "Sorry! You don't own this property.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
