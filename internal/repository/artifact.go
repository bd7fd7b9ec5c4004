package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"houseprice/internal/model"

	"gopkg.in/yaml.v3"
)

// ModelLoadError reports a model artifact that cannot be served.
// It is fatal at startup.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load model artifact %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// LoadArtifact reads a model artifact from disk. The format is chosen by
// file extension: .yaml/.yml use YAML, anything else JSON.
func LoadArtifact(path string) (*model.ModelArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ModelLoadError{Path: path, Err: errors.New("artifact is empty")}
	}

	var artifact model.ModelArtifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&artifact); err != nil {
			return nil, &ModelLoadError{Path: path, Err: fmt.Errorf("failed to decode yaml: %w", err)}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&artifact); err != nil {
			return nil, &ModelLoadError{Path: path, Err: fmt.Errorf("failed to decode json: %w", err)}
		}
	}

	if len(artifact.Coefficients) == 0 {
		return nil, &ModelLoadError{Path: path, Err: errors.New("artifact has no coefficients")}
	}
	return &artifact, nil
}
