package service

import (
	"fmt"
	"strings"

	"houseprice/internal/model"
)

// EncodedVector is the numeric model input, ordered as FeatureOrder
type EncodedVector []float64

// EncodingError reports a value that has no numeric encoding. Validation
// should make this unreachable; seeing one means the two disagree.
type EncodingError struct {
	Field string
	Value string
}

func (e *EncodingError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("cannot encode %s: value is missing", e.Field)
	}
	return fmt.Sprintf("cannot encode %s: unexpected value %q", e.Field, e.Value)
}

// Encode maps a house record onto the vector the model was trained on
func Encode(h *model.HouseFeatures) (EncodedVector, error) {
	if h == nil {
		return nil, &EncodingError{Field: "record"}
	}

	vec := make(EncodedVector, 0, FeatureCount)

	if h.Area == nil {
		return nil, &EncodingError{Field: FeatureArea}
	}
	vec = append(vec, *h.Area)

	for _, f := range []struct {
		name string
		v    *int
	}{
		{FeatureBedrooms, h.Bedrooms},
		{FeatureBathrooms, h.Bathrooms},
		{FeatureStories, h.Stories},
	} {
		if f.v == nil {
			return nil, &EncodingError{Field: f.name}
		}
		vec = append(vec, float64(*f.v))
	}

	for _, f := range []struct {
		name  string
		value string
	}{
		{FeatureMainRoad, h.MainRoad},
		{FeatureGuestRoom, h.GuestRoom},
		{FeatureBasement, h.Basement},
		{FeatureHotWaterHeating, h.HotWaterHeating},
		{FeatureAirConditioning, h.AirConditioning},
	} {
		x, err := encodeBinary(f.name, f.value)
		if err != nil {
			return nil, err
		}
		vec = append(vec, x)
	}

	if h.Parking == nil {
		return nil, &EncodingError{Field: FeatureParking}
	}
	vec = append(vec, float64(*h.Parking))

	pref, err := encodeBinary(FeaturePrefArea, h.PrefArea)
	if err != nil {
		return nil, err
	}
	vec = append(vec, pref)

	furnishing, ok := furnishingMapping[normalize(h.FurnishingStatus)]
	if !ok {
		return nil, &EncodingError{Field: FeatureFurnishingStatus, Value: h.FurnishingStatus}
	}
	vec = append(vec, furnishing)

	return vec, nil
}

func encodeBinary(field, value string) (float64, error) {
	x, ok := binaryMapping[normalize(value)]
	if !ok {
		return 0, &EncodingError{Field: field, Value: value}
	}
	return x, nil
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
