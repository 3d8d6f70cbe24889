package controllers

import (
	"errors"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchRequest is the sparse criteria set accepted by the property search.
// Empty strings mean "no constraint". Rera is a pointer so an explicit false
// can be told apart from an absent filter.
type SearchRequest struct {
	Availability string `json:"availability"`
	City         string `json:"city"`
	PropertyType string `json:"propertyType"`
	Dimensions   string `json:"dimensions"`
	Price        string `json:"price"`
	Rera         *bool  `json:"rera"`
}

var ErrInvalidPriceRange = errors.New("invalid price range, expected \"<min>-<max>\"")

// BuildSearchFilter assembles the composite query for the property search.
// Every search is conjoined with isVerified:true so unmoderated listings
// never surface.
func BuildSearchFilter(req SearchRequest) (bson.M, error) {
	filter := bson.M{"isVerified": true}

	if req.Availability != "" {
		filter["availability"] = req.Availability
	}

	// Deliberately loose: a case-insensitive substring match against the
	// full address, not an exact city match.
	if req.City != "" {
		filter["location.address"] = primitive.Regex{Pattern: req.City, Options: "i"}
	}

	if req.PropertyType != "" {
		filter["propertyType"] = req.PropertyType
	}

	if req.Dimensions != "" {
		filter["dimensions.configuration"] = req.Dimensions
	}

	if req.Price != "" {
		min, max, err := parsePriceRange(req.Price)
		if err != nil {
			return nil, err
		}
		filter["price"] = bson.M{"$gte": min, "$lte": max}
	}

	if req.Rera != nil {
		filter["reraApproved"] = *req.Rera
	}

	return filter, nil
}

// parsePriceRange parses an inclusive "<min>-<max>" range. Malformed ranges
// are rejected rather than silently matching nothing.
func parsePriceRange(s string) (float64, float64, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, ErrInvalidPriceRange
	}

	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, ErrInvalidPriceRange
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, ErrInvalidPriceRange
	}
	if min > max {
		return 0, 0, ErrInvalidPriceRange
	}

	return min, max, nil
}
