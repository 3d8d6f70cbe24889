package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ncr-housing/real_estate_backend/config"
	"github.com/ncr-housing/real_estate_backend/models"
	"github.com/ncr-housing/real_estate_backend/utils"
)

var validate = validator.New()

type RegisterRequest struct {
	Fullname string `json:"fullname" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Contact  string `json:"contact" validate:"required,len=10"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userData is the login payload the frontend keeps around.
type userData struct {
	UserID             primitive.ObjectID `json:"userid"`
	Username           string             `json:"username"`
	UserEmail          string             `json:"userEmail"`
	UserContact        string             `json:"userContact"`
	UserRole           string             `json:"userRole"`
	UserStatus         bool               `json:"userStatus"`
	VerificationStatus bool               `json:"verificationStatus"`
	VerificationType   []string           `json:"verificationType"`
}

func registerValidationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid request payload"
	}

	fe := errs[0]
	switch fe.Field() {
	case "Fullname":
		if fe.Tag() == "required" {
			return "Name is required"
		}
		return "Kindly provide a valid Name"
	case "Email":
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Invalid email found. Kindly provide a valid email!"
	case "Password":
		if fe.Tag() == "required" {
			return "Password is required"
		}
		return "Password must be atleast 6 characters long"
	case "Contact":
		if fe.Tag() == "required" {
			return "Contact is required"
		}
		return "Kindly provide a valid contact number"
	case "Experience":
		return "Experience is required"
	case "CompanyName":
		return "Company name is required"
	}
	return "Invalid request payload"
}

// RegisterUser creates an account. Email and contact are unique across users;
// a clash with either rejects the registration as a whole.
func RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding registration data: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		req.Fullname = strings.TrimSpace(req.Fullname)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.Contact = strings.TrimSpace(req.Contact)

		if err := validate.Struct(req); err != nil {
			utils.WriteError(w, http.StatusBadRequest, registerValidationMessage(err))
			return
		}

		role := req.Role
		if role == "" {
			role = models.DefaultUserRole
		}
		if !models.IsValidUserRole(role) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid role")
			return
		}

		count, err := config.UserCollection.CountDocuments(r.Context(), bson.M{
			"$or": []bson.M{{"email": req.Email}, {"contact": req.Contact}},
		})
		if err != nil {
			log.Printf("Error checking for duplicate user: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again!")
			return
		}
		if count > 0 {
			utils.WriteError(w, http.StatusBadRequest, "Either Email or Contact Number already exists")
			return
		}

		hashedPwd, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again!")
			return
		}

		now := time.Now()
		user := models.User{
			Fullname:         req.Fullname,
			Email:            req.Email,
			Password:         hashedPwd,
			Contact:          req.Contact,
			Role:             role,
			IsActive:         true,
			IsVerified:       false,
			VerificationType: []string{},
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		if _, err := config.UserCollection.InsertOne(r.Context(), user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.WriteError(w, http.StatusBadRequest, "Either Email or Contact Number already exists")
				return
			}
			log.Printf("Error inserting user into the database: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again!")
			return
		}

		utils.WriteMessage(w, http.StatusCreated, "Account Created", nil)
	}
}

// LoginUser verifies credentials and issues a 2h token. Unknown email and
// wrong password answer identically so accounts cannot be enumerated.
func LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding login credentials: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		if req.Email == "" {
			utils.WriteError(w, http.StatusBadRequest, "Kindly provide an Email")
			return
		}
		if req.Password == "" {
			utils.WriteError(w, http.StatusBadRequest, "Kindly provide a Password")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		var user models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid Credentials. Kindly provide correct details!!")
			return
		}
		if err != nil {
			log.Printf("Error looking up user %s: %v", email, err)
			utils.WriteError(w, http.StatusInternalServerError, "Signin failed. Please try again!")
			return
		}

		if !utils.CheckPasswordHash(req.Password, user.Password) {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid Credentials. Kindly provide correct details!!")
			return
		}

		token, err := utils.GenerateJWT(user.ID.Hex(), user.IsVerified)
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "Signin failed. Please try again!")
			return
		}

		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
			Message: "Login Success",
			Status:  "success",
			Token:   token,
			Data: userData{
				UserID:             user.ID,
				Username:           user.Fullname,
				UserEmail:          user.Email,
				UserContact:        user.Contact,
				UserRole:           user.Role,
				UserStatus:         user.IsActive,
				VerificationStatus: user.IsVerified,
				VerificationType:   user.VerificationType,
			},
		})
	}
}
