package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncr-housing/real_estate_backend/config"
	"github.com/ncr-housing/real_estate_backend/models"
	"github.com/ncr-housing/real_estate_backend/utils"
)

// GetUserProfile returns the caller's profile, password excluded. A
// deactivated profile answers 401 until its status is flipped back.
func GetUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authClaims(r)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized or no token!")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			log.Printf("Invalid user id in token: %v", err)
			utils.WriteError(w, http.StatusUnauthorized, "Invalid Token")
			return
		}

		var user models.User
		err = config.UserCollection.FindOne(
			r.Context(),
			bson.M{"_id": userID},
			options.FindOne().SetProjection(bson.M{"password": 0}),
		).Decode(&user)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusNotFound, "User not exist!")
			return
		}
		if err != nil {
			log.Printf("Error fetching profile %s: %v", claims.UserID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Error fetching profile")
			return
		}

		if !user.IsActive {
			utils.WriteError(w, http.StatusUnauthorized, "Profile Deactivated!")
			return
		}

		utils.WriteData(w, http.StatusOK, user)
	}
}

// UpdateProfileRequest carries the profile fields a user may change.
// IsVerified is a pointer so an absent flag leaves the stored value alone.
type UpdateProfileRequest struct {
	Fullname         string   `json:"fullname"`
	Email            string   `json:"email"`
	Contact          string   `json:"contact"`
	IsVerified       *bool    `json:"isVerified"`
	VerificationType []string `json:"verificationType"`
}

// UpdateProfile partially updates the caller's profile. verificationType
// entries are union-merged, never removed.
func UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authClaims(r)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized or no token!")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			log.Printf("Invalid user id in token: %v", err)
			utils.WriteError(w, http.StatusUnauthorized, "Invalid Token")
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid profile payload: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		for _, vt := range req.VerificationType {
			if !models.IsValidVerificationType(vt) {
				utils.WriteError(w, http.StatusBadRequest, "Invalid verification type: "+vt)
				return
			}
		}

		setDoc := bson.M{"updatedAt": time.Now()}
		if req.Fullname != "" {
			setDoc["fullname"] = strings.TrimSpace(req.Fullname)
		}
		if req.Email != "" {
			setDoc["email"] = strings.ToLower(strings.TrimSpace(req.Email))
		}
		if req.Contact != "" {
			setDoc["contact"] = strings.TrimSpace(req.Contact)
		}
		if req.IsVerified != nil {
			setDoc["isVerified"] = *req.IsVerified
		}

		update := bson.M{"$set": setDoc}
		if len(req.VerificationType) > 0 {
			update["$addToSet"] = bson.M{"verificationType": bson.M{"$each": req.VerificationType}}
		}

		var updated models.User
		err = config.UserCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": userID},
			update,
			options.FindOneAndUpdate().
				SetReturnDocument(options.After).
				SetProjection(bson.M{"password": 0}),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusNotFound, "User not found or don't exist!")
			return
		}
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.WriteError(w, http.StatusBadRequest, "Either Email or Contact Number already exists")
				return
			}
			log.Printf("Profile update failed for %s: %v", claims.UserID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Profile update failed")
			return
		}

		utils.WriteMessage(w, http.StatusCreated, "Profile update successfully!", updated)
	}
}

// UpdateUserStatus activates or deactivates the caller's profile based on
// the status query parameter.
func UpdateUserStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authClaims(r)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized or no token!")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			log.Printf("Invalid user id in token: %v", err)
			utils.WriteError(w, http.StatusUnauthorized, "Invalid Token")
			return
		}

		status := r.URL.Query().Get("status")
		if status == "" {
			utils.WriteError(w, http.StatusBadRequest, "Invalid request!")
			return
		}
		active, err := strconv.ParseBool(status)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid request!")
			return
		}

		var updated models.User
		err = config.UserCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": userID},
			bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().
				SetReturnDocument(options.After).
				SetProjection(bson.M{"password": 0}),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusNotFound, "User not found or don't exist!")
			return
		}
		if err != nil {
			log.Printf("Status change failed for %s: %v", claims.UserID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Status change failed")
			return
		}

		utils.WriteMessage(w, http.StatusCreated, "Status changed successfully!", updated)
	}
}
