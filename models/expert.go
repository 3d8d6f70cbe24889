package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var AgentTypes = []string{"Gold", "Platinum", "Bronze"}

const DefaultAgentType = "Bronze"

// ExpertAgent is the agent directory entry. It carries no link to a User
// account; the directory is managed independently.
type ExpertAgent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Fullname    string             `bson:"fullname" json:"fullname"`
	Email       string             `bson:"email" json:"email"`
	Contact     string             `bson:"contact" json:"contact"`
	ProfileImg  ImageRef           `bson:"profileImg,omitempty" json:"profileImg,omitempty"`
	Experience  string             `bson:"experience" json:"experience"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	AgentType   string             `bson:"agentType" json:"agentType"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func IsValidAgentType(v string) bool {
	return contains(AgentTypes, v)
}
