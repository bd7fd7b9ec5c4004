package model

// HouseFeatures is one house record as submitted by a client.
// Numeric fields are pointers so that a missing field is distinguishable
// from an explicit zero.
type HouseFeatures struct {
	Area             *float64 `json:"area" binding:"required,gt=0"`
	Bedrooms         *int     `json:"bedrooms" binding:"required,min=1"`
	Bathrooms        *int     `json:"bathrooms" binding:"required,min=1"`
	Stories          *int     `json:"stories" binding:"required,min=1"`
	MainRoad         string   `json:"mainroad" binding:"required,yesno"`
	GuestRoom        string   `json:"guestroom" binding:"required,yesno"`
	Basement         string   `json:"basement" binding:"required,yesno"`
	HotWaterHeating  string   `json:"hotwaterheating" binding:"required,yesno"`
	AirConditioning  string   `json:"airconditioning" binding:"required,yesno"`
	Parking          *int     `json:"parking" binding:"required,min=0"`
	PrefArea         string   `json:"prefarea" binding:"required,yesno"`
	FurnishingStatus string   `json:"furnishingstatus" binding:"required,furnishing"`
}

// PredictionResult is the response for a single prediction. The confidence
// and interval fields are not computed and always serialize as null.
type PredictionResult struct {
	Prediction              *float64     `json:"prediction"`
	ConfidenceScore         *float64     `json:"confidence_score"`
	PredictionIntervalLower *float64     `json:"prediction_interval_lower"`
	PredictionIntervalUpper *float64     `json:"prediction_interval_upper"`
	Error                   *RecordError `json:"error,omitempty"`
}

// NewPredictionResult wraps a computed price
func NewPredictionResult(price float64) PredictionResult {
	return PredictionResult{Prediction: &price}
}

// BatchPredictionResponse holds one result per input, in input order
type BatchPredictionResponse struct {
	Predictions []PredictionResult `json:"predictions"`
	Errors      []RecordError      `json:"errors,omitempty"`
}

// FieldError describes one field that failed validation
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag,omitempty"`
	Message string `json:"message"`
}

// RecordError reports why the record at Index could not be predicted
type RecordError struct {
	Index   int          `json:"index"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// ModelInfo is the static metadata served by /model-info
type ModelInfo struct {
	ModelType     string   `json:"model_type"`
	ProblemType   string   `json:"problem_type"`
	SchemaVersion string   `json:"schema_version"`
	Features      []string `json:"features"`
	FeatureCount  int      `json:"feature_count"`
	R2Score       *float64 `json:"r2_score,omitempty"`
	TrainedAt     string   `json:"trained_at,omitempty"`
}
