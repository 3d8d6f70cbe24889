package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncr-housing/real_estate_backend/config"
	"github.com/ncr-housing/real_estate_backend/models"
	"github.com/ncr-housing/real_estate_backend/storage"
	"github.com/ncr-housing/real_estate_backend/utils"
)

// CreatePropertyRequest mirrors the flat body the listing form submits;
// location arrives as individual fields.
type CreatePropertyRequest struct {
	Title            string             `json:"title"`
	Summary          string             `json:"summary"`
	Availability     string             `json:"availability"`
	Dimensions       []models.Dimension `json:"dimensions"`
	Price            float64            `json:"price"`
	BuildYear        string             `json:"buildYear"`
	PropertyOverview string             `json:"propertyOverview"`
	PropertyType     string             `json:"propertyType"`
	Address          string             `json:"address"`
	City             string             `json:"city"`
	Street           string             `json:"street"`
	Pincode          int                `json:"pincode"`
	Latitude         string             `json:"latitude"`
	Longitude        string             `json:"longitude"`
	BannerImg        models.ImageRef    `json:"bannerImg"`
	Nearby           []string           `json:"nearby"`
	Amenities        []string           `json:"amenities"`
	Brochure         models.ImageRef    `json:"brochure"`
	PriceList        models.ImageRef    `json:"priceList"`
	MapImg           models.ImageRef    `json:"mapImg"`
	ReraApproved     bool               `json:"reraApproved"`
}

func (req *CreatePropertyRequest) validate() string {
	switch {
	case req.Title == "":
		return "Title is required"
	case req.Price <= 0:
		return "Price is required"
	case req.PropertyType == "":
		return "Property type is required"
	case !models.IsValidPropertyType(req.PropertyType):
		return "Invalid property type"
	case req.Pincode == 0:
		return "Pincode is required"
	case req.Availability != "" && !models.IsValidAvailability(req.Availability):
		return "Invalid availability"
	case req.PropertyOverview != "" && !models.IsValidPropertyOverview(req.PropertyOverview):
		return "Invalid property overview"
	}
	for _, tag := range req.Nearby {
		if !models.IsValidNearbyTag(tag) {
			return "Invalid nearby tag: " + tag
		}
	}
	for _, amenity := range req.Amenities {
		if !models.IsValidAmenity(amenity) {
			return "Invalid amenity: " + amenity
		}
	}
	return ""
}

// CreateProperty lists a new property for the caller. isVerified is seeded
// from the verification flag the token was issued with, so verified posters
// go live without a moderation step.
func CreateProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authClaims(r)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized or no token!")
			return
		}

		posterID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			log.Printf("Invalid user id in token: %v", err)
			utils.WriteError(w, http.StatusUnauthorized, "Invalid Token")
			return
		}

		var req CreatePropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid property payload: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		if msg := req.validate(); msg != "" {
			utils.WriteError(w, http.StatusBadRequest, msg)
			return
		}

		now := time.Now()
		property := models.Property{
			ID:               primitive.NewObjectID(),
			Title:            req.Title,
			Summary:          req.Summary,
			PostedBy:         posterID,
			Availability:     req.Availability,
			Dimensions:       req.Dimensions,
			Price:            req.Price,
			BuildYear:        req.BuildYear,
			PropertyOverview: req.PropertyOverview,
			PropertyType:     req.PropertyType,
			PropertyStatus:   models.DefaultPropertyStatus,
			IsVerified:       claims.VerificationStatus,
			ReraApproved:     req.ReraApproved,
			Nearby:           req.Nearby,
			Amenities:        req.Amenities,
			Docs: models.Docs{
				Brochure:  req.Brochure,
				PriceList: req.PriceList,
				MapImg:    req.MapImg,
			},
			Gallery: models.Gallery{BannerImg: req.BannerImg},
			Location: models.Location{
				Address: req.Address,
				City:    req.City,
				Street:  req.Street,
				Pincode: req.Pincode,
				MapCoordinates: models.MapCoordinates{
					Latitude:  req.Latitude,
					Longitude: req.Longitude,
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := config.PropertyCollection.InsertOne(r.Context(), property); err != nil {
			log.Printf("Insert failed: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to create property")
			return
		}

		go invalidateListingCache(redisClient)

		utils.WriteMessage(w, http.StatusCreated, "Property listed successfully!", property)
	}
}

// MyProperties lists the caller's own postings, verified or not.
func MyProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authClaims(r)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized or no token!")
			return
		}

		posterID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			log.Printf("Invalid user id in token: %v", err)
			utils.WriteError(w, http.StatusUnauthorized, "Invalid Token")
			return
		}

		projection := bson.M{
			"title":                    1,
			"dimensions":               1,
			"price":                    1,
			"availability":             1,
			"gallery.bannerImg.imgUrl": 1,
			"location":                 1,
			"isVerified":               1,
			"postedBy":                 1,
		}

		cursor, err := config.PropertyCollection.Find(r.Context(), bson.M{"postedBy": posterID}, options.Find().SetProjection(projection))
		if err != nil {
			log.Printf("Error fetching properties for user %s: %v", claims.UserID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}
		defer cursor.Close(r.Context())

		var properties []models.Property
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Error decoding properties for user %s: %v", claims.UserID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}

		if len(properties) == 0 {
			utils.WriteError(w, http.StatusNotFound, "You haven't posted any properties")
			return
		}

		if err := attachPosters(r.Context(), properties); err != nil {
			log.Printf("Error attaching posters for user %s: %v", claims.UserID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}

		utils.WriteData(w, http.StatusOK, properties)
	}
}

// Scalar fields an update may replace. Anything outside this set and the
// merged list fields is dropped, so _id, postedBy, isVerified and the gallery
// stay out of reach of the update body.
var updatablePropertyFields = map[string]bool{
	"title":            true,
	"summary":          true,
	"availability":     true,
	"price":            true,
	"docs":             true,
	"buildYear":        true,
	"propertyOverview": true,
	"propertyType":     true,
	"reraApproved":     true,
	"address":          true,
	"city":             true,
	"street":           true,
	"pincode":          true,
	"latitude":         true,
	"longitude":        true,
}

// Flat location fields are rewritten to their nested paths.
var locationFieldPaths = map[string]string{
	"address":   "location.address",
	"city":      "location.city",
	"street":    "location.street",
	"pincode":   "location.pincode",
	"latitude":  "location.mapCoordinates.latitude",
	"longitude": "location.mapCoordinates.longitude",
}

// List-valued fields merge via set union instead of being replaced; an
// update can add entries but never remove them.
var mergedListFields = []string{"dimensions", "amenities", "nearby"}

// validateUpdateEnums rejects enum-valued scalars the schema doesn't know.
func validateUpdateEnums(updateData map[string]interface{}) string {
	if v, ok := updateData["availability"].(string); ok && v != "" && !models.IsValidAvailability(v) {
		return "Invalid availability"
	}
	if v, ok := updateData["propertyType"].(string); ok && v != "" && !models.IsValidPropertyType(v) {
		return "Invalid property type"
	}
	if v, ok := updateData["propertyOverview"].(string); ok && v != "" && !models.IsValidPropertyOverview(v) {
		return "Invalid property overview"
	}
	return ""
}

// buildPropertyUpdate turns a decoded update body into the mongo update
// document: unknown fields are dropped, flat location fields move to their
// nested paths, and the list-valued fields are union-merged through
// $addToSet so an update can add entries but never remove them.
func buildPropertyUpdate(updateData map[string]interface{}) bson.M {
	addToSet := bson.M{}
	for _, field := range mergedListFields {
		value, present := updateData[field]
		if !present {
			continue
		}
		items, ok := value.([]interface{})
		if !ok || len(items) == 0 {
			continue
		}
		addToSet[field] = bson.M{"$each": items}
	}

	setDoc := bson.M{}
	for field, value := range updateData {
		if !updatablePropertyFields[field] {
			continue
		}
		if path, ok := locationFieldPaths[field]; ok {
			setDoc[path] = value
			continue
		}
		setDoc[field] = value
	}
	setDoc["updatedAt"] = time.Now()

	update := bson.M{"$set": setDoc}
	if len(addToSet) > 0 {
		update["$addToSet"] = addToSet
	}
	return update
}

// UpdateProperty applies a partial update: supplied scalars replace their
// stored values wholesale, list fields union-merge. Ownership was already
// verified by the middleware.
func UpdateProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var updateData map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
			log.Printf("Invalid update data: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid update data")
			return
		}

		if msg := validateUpdateEnums(updateData); msg != "" {
			utils.WriteError(w, http.StatusBadRequest, msg)
			return
		}

		update := buildPropertyUpdate(updateData)

		var updated models.Property
		err = config.PropertyCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": objID},
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusNotFound, "Property not exist or not found!")
			return
		}
		if err != nil {
			log.Printf("Update failed for property %s: %v", propertyID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Update failed")
			return
		}

		go invalidateListingCache(redisClient)

		utils.WriteMessage(w, http.StatusCreated, "Property updated successfully!", updated)
	}
}

// deletePropertyMedia walks every embedded media reference and deletes it
// from the media store, sequentially. It returns how many deletions went
// through; on error the remaining refs are left untouched.
func deletePropertyMedia(ctx context.Context, media storage.MediaStore, property *models.Property) (int, error) {
	refs := property.MediaRefs()
	for i, publicID := range refs {
		if err := media.Delete(ctx, publicID); err != nil {
			return i, err
		}
	}
	return len(refs), nil
}

// DeleteProperty runs the deletion cascade: mark the record, clear its media
// from the store, then remove it. A media failure aborts the cascade and the
// record stays put, pendingDeletion flag included, so interrupted deletions
// can be found and resumed.
func DeleteProperty(media storage.MediaStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var property models.Property
		err = config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&property)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusNotFound, "Property not found or don't exist")
			return
		}
		if err != nil {
			log.Printf("Error loading property %s for deletion: %v", propertyID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Delete failed")
			return
		}

		_, err = config.PropertyCollection.UpdateOne(r.Context(), bson.M{"_id": objID}, bson.M{"$set": bson.M{"pendingDeletion": true}})
		if err != nil {
			log.Printf("Failed to mark property %s for deletion: %v", propertyID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Delete failed")
			return
		}

		deleted, err := deletePropertyMedia(r.Context(), media, &property)
		if err != nil {
			log.Printf("Media cascade aborted for property %s after %d deletions: %v", propertyID, deleted, err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to remove property media. The property was not deleted.")
			return
		}

		if _, err := config.PropertyCollection.DeleteOne(r.Context(), bson.M{"_id": objID}); err != nil {
			log.Printf("Delete failed for property %s: %v", propertyID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Delete failed")
			return
		}

		go invalidateListingCache(redisClient)

		utils.WriteMessage(w, http.StatusOK, "Property deleted!", nil)
	}
}

// UploadPropertyImagesRequest attaches showcase image refs to a property.
type UploadPropertyImagesRequest struct {
	PropertyID  string            `json:"propertyId"`
	ShowcaseImg []models.ImageRef `json:"showcaseImg"`
}

// UploadPropertyImages replaces the showcase gallery of a property with the
// provided refs.
func UploadPropertyImages(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UploadPropertyImagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid showcase payload: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		objID, err := primitive.ObjectIDFromHex(req.PropertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", req.PropertyID, err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var updated models.Property
		err = config.PropertyCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": objID},
			bson.M{"$set": bson.M{"gallery.showcaseImg": req.ShowcaseImg, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			utils.WriteError(w, http.StatusNotFound, "Property not found!")
			return
		}
		if err != nil {
			log.Printf("Failed to attach showcase images to property %s: %v", req.PropertyID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to upload images")
			return
		}

		go invalidateListingCache(redisClient)

		utils.WriteMessage(w, http.StatusCreated, "Images uploaded successfully", updated)
	}
}

const maxUploadBytes = 10 << 20

// UploadMedia stores one multipart file in the media store and returns the
// {imgUrl, publicId} ref the image fields embed.
func UploadMedia(media storage.MediaStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Printf("Invalid multipart payload: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "Invalid upload payload")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			log.Printf("Missing upload file: %v", err)
			utils.WriteError(w, http.StatusBadRequest, "A file is required")
			return
		}
		defer file.Close()

		folder := r.FormValue("folder")
		if folder == "" {
			folder = "PropertyImages"
		}

		publicID := folder + "/" + uuid.NewString() + filepath.Ext(header.Filename)
		contentType := header.Header.Get("Content-Type")

		url, err := media.Upload(r.Context(), publicID, file, contentType)
		if err != nil {
			log.Printf("Media upload failed for %s: %v", publicID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Error uploading file!")
			return
		}

		ref := models.ImageRef{ImgURL: url, PublicID: publicID}
		utils.WriteMessage(w, http.StatusCreated, "File uploaded successfully", ref)
	}
}
