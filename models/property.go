package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Availability of a listing.
var Availabilities = []string{"Rent", "Sale"}

// Construction state of a listing.
var PropertyOverviews = []string{"Under Construction", "Ready To Move"}

// "Bank Morgage" keeps the spelling the collection was seeded with.
var PropertyTypes = []string{
	"Plot",
	"Shop",
	"Flat",
	"Villa",
	"Project",
	"Bank Morgage",
	"Independent House",
}

var PropertyStatuses = []string{"Latest", "Featured", "Upcoming"}

const DefaultPropertyStatus = "Latest"

var NearbyTags = []string{
	"Hospital",
	"Mall",
	"Cafe & Restaurants",
	"Bank & ATM",
	"Shopping Mart",
	"Fire Station",
	"Police Station",
	"Railway",
	"Metro",
	"Bus Station",
	"Banquet Hall",
	"Community Park/Garden",
	"Salon",
	"Airport",
	"Departmental Stores",
	"School",
	"Stationary & Book Store",
	"Medical Store",
	"Food & Vegetable Store",
	"Shops",
}

var Amenities = []string{
	"Air Condition",
	"Heating",
	"Wi-Fi",
	"Microwave",
	"Refrigerator",
	"Smoking Allow",
	"Terrace",
	"Balcony",
	"Parking",
	"Garage",
	"Power Back Up",
	"Security",
	"Lift",
	"Swimming Pool",
	"Gym",
	"Laundry Service",
	"Kids Play Area",
	"Maintenance Staff",
	"Waste Disposal",
	"Squash",
	"Sports Zone",
	"Yoga Center",
	"Cycling Track",
	"Jogging Track",
	"Food Court",
	"Hotel",
	"Party Hall",
	"Furnished interior",
}

// ImageRef is the stored handle for a media-store object: the public URL plus
// the opaque id needed to delete it later.
type ImageRef struct {
	ImgURL   string `bson:"imgUrl,omitempty" json:"imgUrl,omitempty"`
	PublicID string `bson:"publicId,omitempty" json:"publicId,omitempty"`
}

type Dimension struct {
	Configuration string   `bson:"configuration,omitempty" json:"configuration,omitempty"`
	Area          string   `bson:"area,omitempty" json:"area,omitempty"`
	FloorPlanImg  ImageRef `bson:"floorPlanImg,omitempty" json:"floorPlanImg,omitempty"`
}

type Docs struct {
	Brochure  ImageRef `bson:"brochure,omitempty" json:"brochure,omitempty"`
	PriceList ImageRef `bson:"priceList,omitempty" json:"priceList,omitempty"`
	MapImg    ImageRef `bson:"mapImg,omitempty" json:"mapImg,omitempty"`
}

type Gallery struct {
	BannerImg   ImageRef   `bson:"bannerImg,omitempty" json:"bannerImg,omitempty"`
	ShowcaseImg []ImageRef `bson:"showcaseImg,omitempty" json:"showcaseImg,omitempty"`
}

type MapCoordinates struct {
	Latitude  string `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude string `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

type Location struct {
	Address        string         `bson:"address,omitempty" json:"address,omitempty"`
	City           string         `bson:"city,omitempty" json:"city,omitempty"`
	Street         string         `bson:"street,omitempty" json:"street,omitempty"`
	Pincode        int            `bson:"pincode,omitempty" json:"pincode,omitempty"`
	MapCoordinates MapCoordinates `bson:"mapCoordinates,omitempty" json:"mapCoordinates,omitempty"`
}

type Property struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title            string             `bson:"title,omitempty" json:"title,omitempty"`
	Summary          string             `bson:"summary,omitempty" json:"summary,omitempty"`
	PostedBy         primitive.ObjectID `bson:"postedBy,omitempty" json:"-"`
	Availability     string             `bson:"availability,omitempty" json:"availability,omitempty"`
	Dimensions       []Dimension        `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Price            float64            `bson:"price,omitempty" json:"price,omitempty"`
	Docs             Docs               `bson:"docs,omitempty" json:"docs,omitempty"`
	Gallery          Gallery            `bson:"gallery,omitempty" json:"gallery,omitempty"`
	Location         Location           `bson:"location,omitempty" json:"location,omitempty"`
	Nearby           []string           `bson:"nearby,omitempty" json:"nearby,omitempty"`
	Amenities        []string           `bson:"amenities,omitempty" json:"amenities,omitempty"`
	BuildYear        string             `bson:"buildYear,omitempty" json:"buildYear,omitempty"`
	PropertyOverview string             `bson:"propertyOverview,omitempty" json:"propertyOverview,omitempty"`
	PropertyType     string             `bson:"propertyType,omitempty" json:"propertyType,omitempty"`
	PropertyStatus   string             `bson:"propertyStatus,omitempty" json:"propertyStatus,omitempty"`
	IsVerified       bool               `bson:"isVerified" json:"isVerified"`
	ReraApproved     bool               `bson:"reraApproved" json:"reraApproved"`
	PendingDeletion  bool               `bson:"pendingDeletion,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt        time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`

	// Poster is filled in by the poster join on reads; it is never stored.
	Poster *UserSummary `bson:"-" json:"postedBy,omitempty"`
}

// MediaRefs lists every embedded media public id on the property, in the
// order the deletion cascade walks them. Empty refs are skipped.
func (p *Property) MediaRefs() []string {
	refs := make([]string, 0, 4+len(p.Gallery.ShowcaseImg)+len(p.Dimensions))
	for _, id := range []string{
		p.Gallery.BannerImg.PublicID,
		p.Docs.Brochure.PublicID,
		p.Docs.PriceList.PublicID,
		p.Docs.MapImg.PublicID,
	} {
		if id != "" {
			refs = append(refs, id)
		}
	}
	for _, img := range p.Gallery.ShowcaseImg {
		if img.PublicID != "" {
			refs = append(refs, img.PublicID)
		}
	}
	for _, dim := range p.Dimensions {
		if dim.FloorPlanImg.PublicID != "" {
			refs = append(refs, dim.FloorPlanImg.PublicID)
		}
	}
	return refs
}

func IsValidAvailability(v string) bool {
	return contains(Availabilities, v)
}

func IsValidPropertyOverview(v string) bool {
	return contains(PropertyOverviews, v)
}

func IsValidPropertyType(v string) bool {
	return contains(PropertyTypes, v)
}

func IsValidPropertyStatus(v string) bool {
	return contains(PropertyStatuses, v)
}

func IsValidNearbyTag(v string) bool {
	return contains(NearbyTags, v)
}

func IsValidAmenity(v string) bool {
	return contains(Amenities, v)
}
