package handler

import (
	"net/http"

	"houseprice/internal/service"

	"github.com/gin-gonic/gin"
)

// BuildInfo is stamped into the binary at link time
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

// InfoHandler serves liveness, build and model metadata
type InfoHandler struct {
	predictor *service.PredictionService
	build     BuildInfo
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(predictor *service.PredictionService, build BuildInfo) *InfoHandler {
	return &InfoHandler{
		predictor: predictor,
		build:     build,
	}
}

// Health handles GET /
func (h *InfoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "House Price Prediction API is running",
	})
}

// Version handles GET /version
func (h *InfoHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, h.build)
}

// ModelInfo handles GET /model-info
func (h *InfoHandler) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictor.Info())
}
