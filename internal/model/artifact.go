package model

// ModelArtifact is the persisted form of a fitted linear regression,
// exported by the training notebook as JSON or YAML.
type ModelArtifact struct {
	SchemaVersion string    `json:"schema_version" yaml:"schema_version"`
	ModelType     string    `json:"model_type" yaml:"model_type"`
	ProblemType   string    `json:"problem_type" yaml:"problem_type"`
	Features      []string  `json:"features" yaml:"features"`
	Coefficients  []float64 `json:"coefficients" yaml:"coefficients"`
	Intercept     float64   `json:"intercept" yaml:"intercept"`
	R2Score       *float64  `json:"r2_score,omitempty" yaml:"r2_score,omitempty"`
	TrainedAt     string    `json:"trained_at,omitempty" yaml:"trained_at,omitempty"`
}
