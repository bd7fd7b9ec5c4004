package service

// SchemaVersion identifies the encoding contract shared with the training
// notebook. Artifacts exported under a different version are rejected.
const SchemaVersion = "v1"

// Feature names, in the column order the model was fitted with.
const (
	FeatureArea             = "area"
	FeatureBedrooms         = "bedrooms"
	FeatureBathrooms        = "bathrooms"
	FeatureStories          = "stories"
	FeatureMainRoad         = "mainroad"
	FeatureGuestRoom        = "guestroom"
	FeatureBasement         = "basement"
	FeatureHotWaterHeating  = "hotwaterheating"
	FeatureAirConditioning  = "airconditioning"
	FeatureParking          = "parking"
	FeaturePrefArea         = "prefarea"
	FeatureFurnishingStatus = "furnishingstatus"
)

var featureOrder = [...]string{
	FeatureArea,
	FeatureBedrooms,
	FeatureBathrooms,
	FeatureStories,
	FeatureMainRoad,
	FeatureGuestRoom,
	FeatureBasement,
	FeatureHotWaterHeating,
	FeatureAirConditioning,
	FeatureParking,
	FeaturePrefArea,
	FeatureFurnishingStatus,
}

// FeatureCount is the width of every EncodedVector
const FeatureCount = len(featureOrder)

// FeatureOrder returns a copy of the encoding order
func FeatureOrder() []string {
	out := make([]string, FeatureCount)
	copy(out, featureOrder[:])
	return out
}

// Categorical value sets
const (
	Yes = "yes"
	No  = "no"

	Furnished     = "furnished"
	SemiFurnished = "semi-furnished"
	Unfurnished   = "unfurnished"
)

var binaryMapping = map[string]float64{
	Yes: 1,
	No:  0,
}

// Ordinal, matching the label encoding used at training time
var furnishingMapping = map[string]float64{
	Furnished:     2,
	SemiFurnished: 1,
	Unfurnished:   0,
}

// IsBinaryValue reports whether v is an accepted yes/no value
func IsBinaryValue(v string) bool {
	_, ok := binaryMapping[normalize(v)]
	return ok
}

// IsFurnishingValue reports whether v is an accepted furnishing status
func IsFurnishingValue(v string) bool {
	_, ok := furnishingMapping[normalize(v)]
	return ok
}
