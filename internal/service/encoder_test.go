package service

import (
	"errors"
	"testing"

	"houseprice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

// sampleHouse is the first row of the training data
func sampleHouse() *model.HouseFeatures {
	return &model.HouseFeatures{
		Area:             float64Ptr(7420),
		Bedrooms:         intPtr(4),
		Bathrooms:        intPtr(2),
		Stories:          intPtr(3),
		MainRoad:         "yes",
		GuestRoom:        "no",
		Basement:         "no",
		HotWaterHeating:  "no",
		AirConditioning:  "yes",
		Parking:          intPtr(2),
		PrefArea:         "yes",
		FurnishingStatus: "furnished",
	}
}

func TestEncode_SampleHouse(t *testing.T) {
	vec, err := Encode(sampleHouse())
	require.NoError(t, err)

	want := EncodedVector{7420, 4, 2, 3, 1, 0, 0, 0, 1, 2, 1, 2}
	assert.Equal(t, want, vec)
	assert.Len(t, vec, FeatureCount)
}

func TestEncode_Deterministic(t *testing.T) {
	h := sampleHouse()
	first, err := Encode(h)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Encode(h)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncode_FurnishingOrdinal(t *testing.T) {
	tests := []struct {
		status string
		want   float64
	}{
		{"furnished", 2},
		{"semi-furnished", 1},
		{"unfurnished", 0},
		{"Semi-Furnished", 1},
		{"  UNFURNISHED ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			h := sampleHouse()
			h.FurnishingStatus = tt.status
			vec, err := Encode(h)
			require.NoError(t, err)
			assert.Equal(t, tt.want, vec[FeatureCount-1])
		})
	}
}

func TestEncode_BinaryCaseInsensitive(t *testing.T) {
	h := sampleHouse()
	h.MainRoad = "NO"
	h.GuestRoom = "Yes"

	vec, err := Encode(h)
	require.NoError(t, err)
	assert.Equal(t, 0.0, vec[4])
	assert.Equal(t, 1.0, vec[5])
}

func TestEncode_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(h *model.HouseFeatures)
		wantField string
	}{
		{"unknown furnishing", func(h *model.HouseFeatures) { h.FurnishingStatus = "luxury" }, FeatureFurnishingStatus},
		{"unknown basement", func(h *model.HouseFeatures) { h.Basement = "maybe" }, FeatureBasement},
		{"empty prefarea", func(h *model.HouseFeatures) { h.PrefArea = "" }, FeaturePrefArea},
		{"missing area", func(h *model.HouseFeatures) { h.Area = nil }, FeatureArea},
		{"missing stories", func(h *model.HouseFeatures) { h.Stories = nil }, FeatureStories},
		{"missing parking", func(h *model.HouseFeatures) { h.Parking = nil }, FeatureParking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := sampleHouse()
			tt.mutate(h)

			_, err := Encode(h)
			var encErr *EncodingError
			require.True(t, errors.As(err, &encErr), "expected EncodingError, got %v", err)
			assert.Equal(t, tt.wantField, encErr.Field)
		})
	}
}

func TestEncode_Nil(t *testing.T) {
	_, err := Encode(nil)
	var encErr *EncodingError
	assert.True(t, errors.As(err, &encErr))
}

func TestFeatureOrder_ReturnsCopy(t *testing.T) {
	order := FeatureOrder()
	require.Len(t, order, 12)
	assert.Equal(t, FeatureArea, order[0])
	assert.Equal(t, FeatureFurnishingStatus, order[11])

	order[0] = "mutated"
	assert.Equal(t, FeatureArea, FeatureOrder()[0])
}
