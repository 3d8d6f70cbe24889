package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncr-housing/real_estate_backend/config"
	"github.com/ncr-housing/real_estate_backend/models"
	"github.com/ncr-housing/real_estate_backend/utils"
)

const agentListLimit = 8

func agentProjection() bson.M {
	return bson.M{
		"fullname":          1,
		"contact":           1,
		"email":             1,
		"profileImg.imgUrl": 1,
		"agentType":         1,
		"companyName":       1,
		"experience":        1,
	}
}

type ExpertAgentRequest struct {
	Fullname    string          `json:"fullname" validate:"required,min=3"`
	Email       string          `json:"email" validate:"required,email"`
	Contact     string          `json:"contact" validate:"required,len=10"`
	ProfileImg  models.ImageRef `json:"profileImg"`
	Experience  string          `json:"experience" validate:"required"`
	CompanyName string          `json:"companyName" validate:"required"`
	AgentType   string          `json:"agentType"`
}

// AddExpertAgent creates a directory entry. agentType defaults to Bronze.
func AddExpertAgent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExpertAgentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid expert agent payload: %v", err)
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

		agentType := req.AgentType
		if agentType == "" {
			agentType = models.DefaultAgentType
		}
		if !models.IsValidAgentType(agentType) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid agent type")
			return
		}

		now := time.Now()
		agent := models.ExpertAgent{
			Fullname:    req.Fullname,
			Email:       req.Email,
			Contact:     req.Contact,
			ProfileImg:  req.ProfileImg,
			Experience:  req.Experience,
			CompanyName: req.CompanyName,
			AgentType:   agentType,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := config.ExpertCollection.InsertOne(r.Context(), agent); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.WriteError(w, http.StatusBadRequest, "Either Email or Contact Number already exists")
				return
			}
			log.Printf("Error inserting expert agent: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to add expert agent")
			return
		}

		utils.WriteMessage(w, http.StatusCreated, "Expert User listed successfully!", nil)
	}
}

func listAgents(w http.ResponseWriter, r *http.Request, filter bson.M, emptyMsg string) {
	findOptions := options.Find().
		SetProjection(agentProjection()).
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(agentListLimit)

	cursor, err := config.ExpertCollection.Find(r.Context(), filter, findOptions)
	if err != nil {
		log.Printf("Error fetching expert agents with filter %+v: %v", filter, err)
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching expert agents")
		return
	}
	defer cursor.Close(r.Context())

	var agents []models.ExpertAgent
	if err := cursor.All(r.Context(), &agents); err != nil {
		log.Printf("Error decoding expert agents: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching expert agents")
		return
	}

	if len(agents) == 0 {
		utils.WriteError(w, http.StatusNotFound, emptyMsg)
		return
	}

	utils.WriteData(w, http.StatusOK, agents)
}

// ExpertAgentList returns the active agents, newest first.
func ExpertAgentList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listAgents(w, r, bson.M{"isActive": true}, "No agents exists currently!")
	}
}

// AgentsByType returns agents of one tier (Gold/Platinum/Bronze).
func AgentsByType() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentType := mux.Vars(r)["type"]
		if !models.IsValidAgentType(agentType) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid agent type")
			return
		}
		listAgents(w, r, bson.M{"agentType": agentType}, "No agents currently!")
	}
}

// UpdateExpertAgent replaces an agent's profile scalars.
func UpdateExpertAgent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID := mux.Vars(r)["agentId"]
		objID, err := primitive.ObjectIDFromHex(agentID)
		if err != nil {
			log.Printf("Invalid agent ID %s: %v", agentID, err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid agent ID")
			return
		}

		var req ExpertAgentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid expert agent payload: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		if req.AgentType != "" && !models.IsValidAgentType(req.AgentType) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid agent type")
			return
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
		if req.AgentType != "" {
			setDoc["agentType"] = req.AgentType
		}
		if req.CompanyName != "" {
			setDoc["companyName"] = req.CompanyName
		}
		if req.Experience != "" {
			setDoc["experience"] = req.Experience
		}

		var updated models.ExpertAgent
		err = config.ExpertCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": objID},
			bson.M{"$set": setDoc},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusNotFound, "No expert agent found!")
			return
		}
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.WriteError(w, http.StatusBadRequest, "Either Email or Contact Number already exists")
				return
			}
			log.Printf("Expert agent update failed for %s: %v", agentID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Profile update failed")
			return
		}

		utils.WriteMessage(w, http.StatusCreated, "Profile updated successfully!", updated)
	}
}

// ChangeAgentStatus activates or deactivates a directory entry.
func ChangeAgentStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID := mux.Vars(r)["agentId"]
		objID, err := primitive.ObjectIDFromHex(agentID)
		if err != nil {
			log.Printf("Invalid agent ID %s: %v", agentID, err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid agent ID")
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

		var updated models.ExpertAgent
		err = config.ExpertCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": objID},
			bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusNotFound, "No expert agent found!")
			return
		}
		if err != nil {
			log.Printf("Agent status change failed for %s: %v", agentID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Status change failed")
			return
		}

		utils.WriteMessage(w, http.StatusCreated, "Status changed successfully", updated)
	}
}
