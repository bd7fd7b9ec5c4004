package handler

import "github.com/gin-gonic/gin"

// Register mounts every endpoint on the router
func Register(router gin.IRouter, predictions *PredictionHandler, info *InfoHandler) {
	router.GET("/", info.Health)
	router.GET("/version", info.Version)
	router.GET("/model-info", info.ModelInfo)
	router.GET("/test-form", TestForm)

	router.POST("/predict", predictions.Predict)
	router.POST("/batch-predict", predictions.BatchPredict)
}
