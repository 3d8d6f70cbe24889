package routes

import (
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/ncr-housing/real_estate_backend/controllers"
	"github.com/ncr-housing/real_estate_backend/middleware"
	"github.com/ncr-housing/real_estate_backend/storage"
)

func Routes(router *mux.Router, media storage.MediaStore, redisClient *redis.Client) {
	api := router.PathPrefix("/api").Subrouter()

	// Auth routes
	api.HandleFunc("/register", controllers.RegisterUser()).Methods("POST")
	api.HandleFunc("/login", controllers.LoginUser()).Methods("POST")

	// Public property reads
	api.HandleFunc("/property/{id}", controllers.GetProperty()).Methods("GET")
	api.HandleFunc("/search/property", controllers.SearchProperties()).Methods("POST")
	api.HandleFunc("/latest/property", controllers.LatestProperties(redisClient)).Methods("GET")
	api.HandleFunc("/featured/property", controllers.FeaturedProperties(redisClient)).Methods("GET")
	api.HandleFunc("/bank-morgage/property", controllers.BankMorgageProperties(redisClient)).Methods("GET")
	api.HandleFunc("/project/property", controllers.ProjectProperties(redisClient)).Methods("GET")
	api.HandleFunc("/readyToMove/property", controllers.ReadyToMoveProperties(redisClient)).Methods("GET")
	api.HandleFunc("/underConstruction/property", controllers.UnderConstructionProperties(redisClient)).Methods("GET")

	// Expert agent directory
	api.HandleFunc("/add-expert", controllers.AddExpertAgent()).Methods("POST")
	api.HandleFunc("/experts", controllers.ExpertAgentList()).Methods("GET")
	api.HandleFunc("/update/expert/{agentId}", controllers.UpdateExpertAgent()).Methods("PUT")
	api.HandleFunc("/expert/{agentId}", controllers.ChangeAgentStatus()).Methods("PUT")
	api.HandleFunc("/expert/{type}", controllers.AgentsByType()).Methods("GET")

	// Routes that require authentication
	authenticated := api.PathPrefix("/").Subrouter()
	authenticated.Use(middleware.IsAuth)

	authenticated.HandleFunc("/my-property", controllers.MyProperties()).Methods("GET")
	authenticated.HandleFunc("/list-property", controllers.CreateProperty(redisClient)).Methods("POST")
	authenticated.HandleFunc("/property-images", controllers.UploadPropertyImages(redisClient)).Methods("PUT")
	authenticated.HandleFunc("/media/upload", controllers.UploadMedia(media)).Methods("POST")
	authenticated.HandleFunc("/update/my-profile", controllers.UpdateProfile()).Methods("PUT")
	authenticated.HandleFunc("/profile/status", controllers.UpdateUserStatus()).Methods("PUT")
	authenticated.HandleFunc("/user/profile", controllers.GetUserProfile()).Methods("GET")

	// Mutating property routes additionally require ownership
	owned := api.PathPrefix("/").Subrouter()
	owned.Use(middleware.IsAuth, middleware.IsOwner)

	owned.HandleFunc("/update/property/{id}", controllers.UpdateProperty(redisClient)).Methods("PUT")
	owned.HandleFunc("/delete/property/{id}", controllers.DeleteProperty(media, redisClient)).Methods("DELETE")
}
