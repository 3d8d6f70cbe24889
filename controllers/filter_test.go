package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildSearchFilter(t *testing.T) {
	tests := []struct {
		name    string
		req     SearchRequest
		want    bson.M
		wantErr bool
	}{
		{
			name: "no criteria still pins verification",
			req:  SearchRequest{},
			want: bson.M{"isVerified": true},
		},
		{
			name: "availability exact match",
			req:  SearchRequest{Availability: "Rent"},
			want: bson.M{"isVerified": true, "availability": "Rent"},
		},
		{
			name: "city becomes a loose address match",
			req:  SearchRequest{City: "Noida"},
			want: bson.M{
				"isVerified":       true,
				"location.address": primitive.Regex{Pattern: "Noida", Options: "i"},
			},
		},
		{
			name: "dimensions match configuration entries",
			req:  SearchRequest{Dimensions: "3BHK"},
			want: bson.M{"isVerified": true, "dimensions.configuration": "3BHK"},
		},
		{
			name: "price range is inclusive on both ends",
			req:  SearchRequest{Price: "1000000-2000000"},
			want: bson.M{
				"isVerified": true,
				"price":      bson.M{"$gte": float64(1000000), "$lte": float64(2000000)},
			},
		},
		{
			name: "rera false is a real constraint",
			req:  SearchRequest{Rera: boolPtr(false)},
			want: bson.M{"isVerified": true, "reraApproved": false},
		},
		{
			name: "rera true filters approved listings",
			req:  SearchRequest{Rera: boolPtr(true)},
			want: bson.M{"isVerified": true, "reraApproved": true},
		},
		{
			name: "all criteria combine",
			req: SearchRequest{
				Availability: "Sale",
				City:         "Delhi",
				PropertyType: "Flat",
				Dimensions:   "2BHK",
				Price:        "500000-900000",
				Rera:         boolPtr(true),
			},
			want: bson.M{
				"isVerified":               true,
				"availability":             "Sale",
				"location.address":         primitive.Regex{Pattern: "Delhi", Options: "i"},
				"propertyType":             "Flat",
				"dimensions.configuration": "2BHK",
				"price":                    bson.M{"$gte": float64(500000), "$lte": float64(900000)},
				"reraApproved":             true,
			},
		},
		{
			name:    "price without separator is rejected",
			req:     SearchRequest{Price: "1000000"},
			wantErr: true,
		},
		{
			name:    "price with non-numeric bound is rejected",
			req:     SearchRequest{Price: "cheap-expensive"},
			wantErr: true,
		},
		{
			name:    "inverted price range is rejected",
			req:     SearchRequest{Price: "2000000-1000000"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildSearchFilter(tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriceRange)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriceRange(t *testing.T) {
	min, max, err := parsePriceRange(" 1000 - 2000 ")
	assert.NoError(t, err)
	assert.Equal(t, float64(1000), min)
	assert.Equal(t, float64(2000), max)

	_, _, err = parsePriceRange("")
	assert.Error(t, err)
}

func TestBuildPropertyUpdate(t *testing.T) {
	update := buildPropertyUpdate(map[string]interface{}{
		"title":      "Sunrise Apartments",
		"price":      float64(4500000),
		"address":    "Sector 62, Noida",
		"pincode":    float64(201301),
		"latitude":   "28.62",
		"amenities":  []interface{}{"Gym", "Parking"},
		"nearby":     []interface{}{"Metro"},
		"postedBy":   "55e8af6a1d41c82e0cc92c11",
		"isVerified": true,
	})

	setDoc, ok := update["$set"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, "Sunrise Apartments", setDoc["title"])
	assert.Equal(t, "Sector 62, Noida", setDoc["location.address"])
	assert.Equal(t, float64(201301), setDoc["location.pincode"])
	assert.Equal(t, "28.62", setDoc["location.mapCoordinates.latitude"])
	assert.Contains(t, setDoc, "updatedAt")

	// ownership and moderation flags can never be written through an update
	assert.NotContains(t, setDoc, "postedBy")
	assert.NotContains(t, setDoc, "isVerified")

	// list fields merge, they are never part of $set
	assert.NotContains(t, setDoc, "amenities")
	assert.NotContains(t, setDoc, "nearby")

	addToSet, ok := update["$addToSet"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, bson.M{"$each": []interface{}{"Gym", "Parking"}}, addToSet["amenities"])
	assert.Equal(t, bson.M{"$each": []interface{}{"Metro"}}, addToSet["nearby"])
}

func TestBuildPropertyUpdateDropsUnknownFields(t *testing.T) {
	update := buildPropertyUpdate(map[string]interface{}{
		"title":           "Sunrise Apartments",
		"gallery":         "junk",
		"docs":            bson.M{"brochure": bson.M{"imgUrl": "u", "publicId": "p"}},
		"madeUpField":     42,
		"pendingDeletion": false,
	})

	setDoc := update["$set"].(bson.M)
	assert.Equal(t, "Sunrise Apartments", setDoc["title"])
	assert.Contains(t, setDoc, "docs")

	// anything outside the schema's updatable set never reaches $set
	assert.NotContains(t, setDoc, "gallery")
	assert.NotContains(t, setDoc, "madeUpField")
	assert.NotContains(t, setDoc, "pendingDeletion")
}

func TestBuildPropertyUpdateWithoutListFields(t *testing.T) {
	update := buildPropertyUpdate(map[string]interface{}{"summary": "Spacious"})
	assert.NotContains(t, update, "$addToSet")

	setDoc := update["$set"].(bson.M)
	assert.Equal(t, "Spacious", setDoc["summary"])
}
