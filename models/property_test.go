package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaRefsOrderAndSkipping(t *testing.T) {
	property := Property{
		Docs: Docs{
			Brochure:  ImageRef{PublicID: "docs/brochure"},
			PriceList: ImageRef{PublicID: "docs/prices"},
		},
		Gallery: Gallery{
			BannerImg: ImageRef{PublicID: "gallery/banner"},
			ShowcaseImg: []ImageRef{
				{PublicID: "gallery/show-1"},
				{ImgURL: "https://cdn.example.com/legacy.jpg"},
				{PublicID: "gallery/show-2"},
			},
		},
		Dimensions: []Dimension{
			{Configuration: "2BHK", FloorPlanImg: ImageRef{PublicID: "plans/2bhk"}},
			{Configuration: "Plot"},
		},
	}

	refs := property.MediaRefs()

	// banner and docs first, then showcase, then floor plans; refs without a
	// public id (the map image, a legacy showcase entry, a plot without a
	// floor plan) are skipped
	assert.Equal(t, []string{
		"gallery/banner",
		"docs/brochure",
		"docs/prices",
		"gallery/show-1",
		"gallery/show-2",
		"plans/2bhk",
	}, refs)
}

func TestMediaRefsEmptyProperty(t *testing.T) {
	var property Property
	assert.Empty(t, property.MediaRefs())
}

func TestEnumHelpers(t *testing.T) {
	assert.True(t, IsValidPropertyType("Bank Morgage"))
	assert.False(t, IsValidPropertyType("Bank Mortgage"))

	assert.True(t, IsValidAvailability("Rent"))
	assert.False(t, IsValidAvailability("rent"))

	assert.True(t, IsValidPropertyOverview("Ready To Move"))
	assert.False(t, IsValidPropertyOverview("Ready"))

	assert.True(t, IsValidPropertyStatus("Featured"))
	assert.False(t, IsValidPropertyStatus("Trending"))

	assert.True(t, IsValidNearbyTag("Community Park/Garden"))
	assert.False(t, IsValidNearbyTag("Casino"))

	assert.True(t, IsValidAmenity("Furnished interior"))
	assert.False(t, IsValidAmenity("Helipad"))

	assert.True(t, IsValidAgentType("Platinum"))
	assert.False(t, IsValidAgentType("Silver"))

	assert.True(t, IsValidUserRole("dealer"))
	assert.False(t, IsValidUserRole("tenant"))

	assert.True(t, IsValidVerificationType("Phone"))
	assert.False(t, IsValidVerificationType("Fax"))
}
