package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncr-housing/real_estate_backend/config"
	"github.com/ncr-housing/real_estate_backend/models"
	"github.com/ncr-housing/real_estate_backend/utils"
)

const (
	searchLimit            = 30
	latestLimit            = 30
	featuredLimit          = 8
	readyToMoveLimit       = 30
	underConstructionLimit = 30
	bankMorgageLimit       = 25
	projectLimit           = 25

	listingCacheTTL = 10 * time.Minute
)

// listingProjection is the reduced shape every listing endpoint returns.
// postedBy is kept so the poster join can resolve it.
func listingProjection() bson.M {
	return bson.M{
		"title":                    1,
		"dimensions":               1,
		"price":                    1,
		"propertyType":             1,
		"availability":             1,
		"gallery.bannerImg.imgUrl": 1,
		"location":                 1,
		"reraApproved":             1,
		"postedBy":                 1,
	}
}

func fetchProperties(ctx context.Context, filter bson.M, limit int64, projection bson.M) ([]models.Property, error) {
	findOptions := options.Find().
		SetProjection(projection).
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := config.PropertyCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// attachPosters resolves the postedBy references in a second query and hangs
// the poster projection off each property.
func attachPosters(ctx context.Context, properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}

	idSet := make(map[primitive.ObjectID]bool, len(properties))
	posterIDs := make([]primitive.ObjectID, 0, len(properties))
	for _, prop := range properties {
		if prop.PostedBy.IsZero() || idSet[prop.PostedBy] {
			continue
		}
		idSet[prop.PostedBy] = true
		posterIDs = append(posterIDs, prop.PostedBy)
	}
	if len(posterIDs) == 0 {
		return nil
	}

	projection := bson.M{"fullname": 1, "email": 1, "contact": 1, "role": 1}
	cursor, err := config.UserCollection.Find(ctx, bson.M{"_id": bson.M{"$in": posterIDs}}, options.Find().SetProjection(projection))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var posters []models.UserSummary
	if err := cursor.All(ctx, &posters); err != nil {
		return err
	}

	posterMap := make(map[primitive.ObjectID]models.UserSummary, len(posters))
	for _, poster := range posters {
		posterMap[poster.ID] = poster
	}

	for i := range properties {
		if poster, ok := posterMap[properties[i].PostedBy]; ok {
			p := poster
			properties[i].Poster = &p
		}
	}
	return nil
}

// SearchProperties runs the dynamic filter search. An empty result is a 404
// "no match", distinct from a 500 persistence failure.
func SearchProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid search payload: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		filter, err := BuildSearchFilter(req)
		if err != nil {
			log.Printf("Rejected search filter: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid price range. Kindly provide it as <min>-<max>.")
			return
		}

		properties, err := fetchProperties(r.Context(), filter, searchLimit, listingProjection())
		if err != nil {
			log.Printf("Error searching properties with filter %+v: %v", filter, err)
			utils.WriteError(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}

		if len(properties) == 0 {
			utils.WriteError(w, http.StatusNotFound, "Sorry! We currently don't have any properties matching the criteria")
			return
		}

		if err := attachPosters(r.Context(), properties); err != nil {
			log.Printf("Error attaching posters to search results: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}

		utils.WriteData(w, http.StatusOK, properties)
	}
}

// listProperties is the shared fixed-filter listing handler: cache-aside on
// redis, newest first, capped, poster join.
func listProperties(redisClient *redis.Client, cacheKey string, filter bson.M, limit int64, projection bson.M, emptyMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cached, err := redisClient.Get(r.Context(), cacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
		if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", cacheKey, err)
		}

		properties, err := fetchProperties(r.Context(), filter, limit, projection)
		if err != nil {
			log.Printf("Error fetching properties for %s: %v", cacheKey, err)
			utils.WriteError(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}

		if len(properties) == 0 {
			utils.WriteError(w, http.StatusNotFound, emptyMsg)
			return
		}

		if err := attachPosters(r.Context(), properties); err != nil {
			log.Printf("Error attaching posters for %s: %v", cacheKey, err)
			utils.WriteError(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}

		body, err := json.Marshal(utils.APIResponse{Data: properties, Status: "success"})
		if err != nil {
			log.Printf("Failed to serialize properties for %s: %v", cacheKey, err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to encode response")
			return
		}

		if err := redisClient.Set(r.Context(), cacheKey, body, listingCacheTTL).Err(); err != nil {
			log.Printf("Failed to cache response for key %s: %v", cacheKey, err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}
}

func LatestProperties(redisClient *redis.Client) http.HandlerFunc {
	filter := bson.M{"propertyStatus": "Latest", "isVerified": true}
	return listProperties(redisClient, "listing:latest", filter, latestLimit, listingProjection(), "No properties found!")
}

// FeaturedProperties additionally exposes the showcase gallery.
func FeaturedProperties(redisClient *redis.Client) http.HandlerFunc {
	filter := bson.M{"propertyStatus": "Featured", "isVerified": true}
	projection := listingProjection()
	projection["gallery.showcaseImg"] = 1
	return listProperties(redisClient, "listing:featured", filter, featuredLimit, projection, "No featured property exists!")
}

func ReadyToMoveProperties(redisClient *redis.Client) http.HandlerFunc {
	filter := bson.M{"propertyOverview": "Ready To Move", "isVerified": true}
	return listProperties(redisClient, "listing:readyToMove", filter, readyToMoveLimit, listingProjection(), "No Properties Exists!")
}

func UnderConstructionProperties(redisClient *redis.Client) http.HandlerFunc {
	filter := bson.M{"propertyOverview": "Under Construction", "isVerified": true}
	return listProperties(redisClient, "listing:underConstruction", filter, underConstructionLimit, listingProjection(), "No Properties Exists!")
}

func BankMorgageProperties(redisClient *redis.Client) http.HandlerFunc {
	filter := bson.M{"propertyType": "Bank Morgage", "isVerified": true}
	return listProperties(redisClient, "listing:bankMorgage", filter, bankMorgageLimit, listingProjection(), "No Bank Morgage property exists!")
}

func ProjectProperties(redisClient *redis.Client) http.HandlerFunc {
	filter := bson.M{"propertyType": "Project", "isVerified": true}
	return listProperties(redisClient, "listing:project", filter, projectLimit, listingProjection(), "No Projects exists")
}

// GetProperty returns one property in full, poster resolved.
func GetProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			utils.WriteError(w, http.StatusUnauthorized, "Invalid request!")
			return
		}

		var property models.Property
		err = config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&property)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusNotFound, "Property not found!")
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", propertyID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Error fetching property")
			return
		}

		properties := []models.Property{property}
		if err := attachPosters(r.Context(), properties); err != nil {
			log.Printf("Error attaching poster for property %s: %v", propertyID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Error fetching property")
			return
		}

		utils.WriteData(w, http.StatusOK, properties[0])
	}
}

// invalidateListingCache drops every cached listing response. Fired after any
// property mutation.
func invalidateListingCache(redisClient *redis.Client) {
	ctx := context.Background()
	const scanPattern = "listing:*"
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = redisClient.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern '%s': %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := redisClient.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, execErr := pipe.Exec(ctx); execErr != nil {
		log.Printf("Error deleting %d listing cache keys: %v", len(keysToDelete), execErr)
	} else {
		log.Printf("Listing cache invalidated, %d keys removed", len(keysToDelete))
	}
}
