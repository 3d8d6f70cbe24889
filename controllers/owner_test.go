package controllers

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ncr-housing/real_estate_backend/models"
)

// MockMediaStore is a mock implementation of storage.MediaStore.
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Upload(ctx context.Context, publicID string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, publicID, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

func cascadeFixture() *models.Property {
	return &models.Property{
		Title: "Green Valley Villa",
		Docs: models.Docs{
			Brochure:  models.ImageRef{PublicID: "docs/brochure-1"},
			PriceList: models.ImageRef{PublicID: "docs/prices-1"},
			MapImg:    models.ImageRef{PublicID: "docs/map-1"},
		},
		Gallery: models.Gallery{
			BannerImg: models.ImageRef{PublicID: "gallery/banner-1"},
			ShowcaseImg: []models.ImageRef{
				{PublicID: "gallery/show-1"},
				{PublicID: "gallery/show-2"},
			},
		},
		Dimensions: []models.Dimension{
			{Configuration: "2BHK", FloorPlanImg: models.ImageRef{PublicID: "plans/2bhk"}},
			{Configuration: "3BHK", FloorPlanImg: models.ImageRef{PublicID: "plans/3bhk"}},
		},
	}
}

func TestDeletePropertyMediaRemovesEveryRef(t *testing.T) {
	property := cascadeFixture()
	media := new(MockMediaStore)
	for _, id := range property.MediaRefs() {
		media.On("Delete", mock.Anything, id).Return(nil).Once()
	}

	deleted, err := deletePropertyMedia(context.Background(), media, property)

	assert.NoError(t, err)
	// banner + brochure + price list + map image + 2 showcase + 2 floor plans
	assert.Equal(t, 8, deleted)
	media.AssertExpectations(t)
}

func TestDeletePropertyMediaAbortsOnFirstFailure(t *testing.T) {
	property := cascadeFixture()
	media := new(MockMediaStore)
	media.On("Delete", mock.Anything, "gallery/banner-1").Return(nil).Once()
	media.On("Delete", mock.Anything, "docs/brochure-1").Return(errors.New("media store unavailable")).Once()

	deleted, err := deletePropertyMedia(context.Background(), media, property)

	assert.Error(t, err)
	assert.Equal(t, 1, deleted)
	// nothing past the failing ref is attempted
	media.AssertNumberOfCalls(t, "Delete", 2)
}

func TestDeletePropertyMediaSkipsEmptyRefs(t *testing.T) {
	property := &models.Property{
		Gallery: models.Gallery{
			BannerImg:   models.ImageRef{PublicID: "gallery/banner-2"},
			ShowcaseImg: []models.ImageRef{{ImgURL: "https://cdn.example.com/a.jpg"}},
		},
	}
	media := new(MockMediaStore)
	media.On("Delete", mock.Anything, "gallery/banner-2").Return(nil).Once()

	deleted, err := deletePropertyMedia(context.Background(), media, property)

	assert.NoError(t, err)
	assert.Equal(t, 1, deleted)
	media.AssertExpectations(t)
}

func TestCreatePropertyRequestValidate(t *testing.T) {
	valid := CreatePropertyRequest{
		Title:        "Green Valley Villa",
		Price:        7500000,
		PropertyType: "Villa",
		Pincode:      201301,
		Availability: "Sale",
		Nearby:       []string{"Hospital", "Metro"},
		Amenities:    []string{"Gym"},
	}
	assert.Empty(t, valid.validate())

	tests := []struct {
		name   string
		mutate func(*CreatePropertyRequest)
		want   string
	}{
		{"missing title", func(r *CreatePropertyRequest) { r.Title = "" }, "Title is required"},
		{"missing price", func(r *CreatePropertyRequest) { r.Price = 0 }, "Price is required"},
		{"missing property type", func(r *CreatePropertyRequest) { r.PropertyType = "" }, "Property type is required"},
		{"unknown property type", func(r *CreatePropertyRequest) { r.PropertyType = "Castle" }, "Invalid property type"},
		{"missing pincode", func(r *CreatePropertyRequest) { r.Pincode = 0 }, "Pincode is required"},
		{"unknown availability", func(r *CreatePropertyRequest) { r.Availability = "Lease" }, "Invalid availability"},
		{"unknown nearby tag", func(r *CreatePropertyRequest) { r.Nearby = []string{"Casino"} }, "Invalid nearby tag: Casino"},
		{"unknown amenity", func(r *CreatePropertyRequest) { r.Amenities = []string{"Helipad"} }, "Invalid amenity: Helipad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Equal(t, tt.want, req.validate())
		})
	}
}
