package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"houseprice/internal/logger"
	"houseprice/internal/model"
	"houseprice/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PredictionHandler handles prediction-related HTTP requests
type PredictionHandler struct {
	predictor    *service.PredictionService
	log          *zap.Logger
	batchMaxSize int
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictor *service.PredictionService, log *zap.Logger, batchMaxSize int) (*PredictionHandler, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}
	return &PredictionHandler{
		predictor:    predictor,
		log:          log,
		batchMaxSize: batchMaxSize,
	}, nil
}

// Request body caps. A house record is a few hundred bytes of JSON, so
// maxRecordBytes leaves generous room for whitespace.
const (
	maxRecordBytes   = 4 << 10
	maxEnvelopeBytes = 1 << 10
)

// batchRequest defers record decoding so that one bad record cannot fail
// the others
type batchRequest struct {
	Inputs []json.RawMessage `json:"inputs"`
}

// Predict handles POST /predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	log := h.log.With(zap.String("request_id", logger.RequestID(c)))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRecordBytes)

	var req model.HouseFeatures
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("rejected prediction input", zap.Error(err))
		if tooLarge(c, err) {
			return
		}
		if fields, ok := fieldErrors(err); ok {
			c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{
				Error:  "Validation failed: " + summarize(fields),
				Fields: fields,
			})
			return
		}
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	log.Info("prediction endpoint called", zap.Any("input", req))

	price, vec, err := h.predictor.PredictFeatures(&req)
	if err != nil {
		status, msg := h.classify(log, err)
		c.JSON(status, model.ErrorResponse{Error: msg})
		return
	}

	log.Info("prediction made",
		zap.Float64s("encoded_features", []float64(vec)),
		zap.Float64("prediction", price),
	)
	c.JSON(http.StatusOK, model.NewPredictionResult(price))
}

// BatchPredict handles POST /batch-predict. Every record is validated and
// predicted on its own; failures are reported against their index.
func (h *PredictionHandler) BatchPredict(c *gin.Context) {
	log := h.log.With(zap.String("request_id", logger.RequestID(c)))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.batchBodyLimit())

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("rejected batch request", zap.Error(err))
		if tooLarge(c, err) {
			return
		}
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}
	if len(req.Inputs) == 0 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "No inputs provided"})
		return
	}
	if len(req.Inputs) > h.batchMaxSize {
		c.JSON(http.StatusRequestEntityTooLarge, model.ErrorResponse{
			Error: fmt.Sprintf("Batch of %d inputs exceeds the limit of %d", len(req.Inputs), h.batchMaxSize),
		})
		return
	}

	log.Info("batch prediction endpoint called", zap.Int("inputs", len(req.Inputs)))

	results := make([]model.PredictionResult, len(req.Inputs))
	var (
		failures []model.RecordError
		records  []*model.HouseFeatures
		indexes  []int
	)
	fail := func(i int, recErr model.RecordError) {
		results[i] = model.PredictionResult{Error: &recErr}
		failures = append(failures, recErr)
	}

	for i, raw := range req.Inputs {
		record, err := decodeRecord(raw)
		if err != nil {
			fail(i, h.recordError(log, i, err))
			continue
		}
		records = append(records, &record)
		indexes = append(indexes, i)
	}

	prices, _, errs := h.predictor.PredictFeaturesBatch(records)
	for j, i := range indexes {
		if errs[j] != nil {
			fail(i, h.recordError(log, i, errs[j]))
			continue
		}
		results[i] = model.NewPredictionResult(prices[j])
	}

	// failures were appended in discovery order, not index order
	sortByIndex(failures)

	log.Info("batch predictions made",
		zap.Int("succeeded", len(req.Inputs)-len(failures)),
		zap.Int("failed", len(failures)),
	)

	response := model.BatchPredictionResponse{Predictions: results, Errors: failures}
	switch {
	case len(failures) == len(req.Inputs):
		c.JSON(http.StatusUnprocessableEntity, response)
	case len(failures) > 0:
		c.JSON(http.StatusPartialContent, response)
	default:
		c.JSON(http.StatusOK, response)
	}
}

func (h *PredictionHandler) recordError(log *zap.Logger, index int, err error) model.RecordError {
	if fields, ok := fieldErrors(err); ok {
		return model.RecordError{Index: index, Message: summarize(fields), Fields: fields}
	}
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return model.RecordError{Index: index, Message: "Invalid record: " + err.Error()}
	}
	_, msg := h.classify(log.With(zap.Int("index", index)), err)
	return model.RecordError{Index: index, Message: msg}
}

// classify maps failures past validation onto a status and client message
func (h *PredictionHandler) classify(log *zap.Logger, err error) (int, string) {
	var encErr *service.EncodingError
	switch {
	case errors.As(err, &encErr):
		log.Error("encoder rejected validated input", zap.Error(err))
		return http.StatusInternalServerError, "Encoding failed: " + err.Error()
	case errors.Is(err, service.ErrNonFinitePrediction):
		log.Warn("non-finite prediction", zap.Error(err))
		return http.StatusUnprocessableEntity, "Prediction failed: input is outside the range the model can evaluate"
	default:
		log.Error("error during prediction", zap.Error(err))
		return http.StatusInternalServerError, "Prediction failed: " + err.Error()
	}
}

func (h *PredictionHandler) batchBodyLimit() int64 {
	return int64(h.batchMaxSize)*maxRecordBytes + maxEnvelopeBytes
}

// tooLarge answers 413 when err came from the body size cap
func tooLarge(c *gin.Context, err error) bool {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return false
	}
	c.JSON(http.StatusRequestEntityTooLarge, model.ErrorResponse{
		Error: fmt.Sprintf("Request body exceeds the limit of %d bytes", maxErr.Limit),
	})
	return true
}

func sortByIndex(errs []model.RecordError) {
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Index < errs[j].Index
	})
}
