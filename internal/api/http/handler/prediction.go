package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dtroode/premium-server/internal/api/http/middleware"
	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
)

const maxHistoryLimit = 100

// PredictionService defines prediction, feedback and history operations.
type PredictionService interface {
	Predict(ctx context.Context, accountID uuid.UUID, input model.PredictionInput) (model.Prediction, error)
	RecordFeedback(ctx context.Context, accountID, predictionID uuid.UUID, satisfied bool) (model.Prediction, error)
	History(ctx context.Context, accountID uuid.UUID, page model.Page) ([]model.Prediction, error)
}

// Prediction handles HTTP endpoints for premium predictions.
type Prediction struct {
	predictions    PredictionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPrediction creates a new Prediction handler.
func NewPrediction(predictions PredictionService, contextManager model.ContextManager, logger *logger.Logger) *Prediction {
	return &Prediction{
		predictions:    predictions,
		contextManager: contextManager,
		logger:         logger,
	}
}

// PredictResponse is returned by a successful prediction.
type PredictResponse struct {
	PredictionID string  `json:"predictionId"`
	Price        float64 `json:"price"`
	Message      string  `json:"message"`
}

type feedbackRequest struct {
	PredictionID *string `json:"predictionId"`
	IsSatisfied  *bool   `json:"isSatisfied"`
}

// HistoryItem is one entry of the prediction history.
type HistoryItem struct {
	ID             string               `json:"_id"`
	UserID         string               `json:"userId"`
	Inputs         model.ClinicalInputs `json:"inputs"`
	PredictedPrice float64              `json:"predictedPrice"`
	IsSatisfied    model.Satisfaction   `json:"isSatisfied"`
	Timestamp      time.Time            `json:"timestamp"`
}

func (h *Prediction) accountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok || claims.AccountID == uuid.Nil {
		h.logger.Error("Prediction handler: no session claims in context", "path", r.URL.Path)
		handleError(w, h.logger, model.ErrUnauthenticated, "Server error")
		return uuid.Nil, false
	}
	return claims.AccountID, true
}

// Predict prices the posted clinical inputs and stores the result.
func (h *Prediction) Predict(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var input model.PredictionInput
	if err := decodeJSON(w, r, &input); err != nil {
		handleError(w, h.logger, err, "Error processing prediction")
		return
	}

	prediction, err := h.predictions.Predict(r.Context(), accountID, input)
	if err != nil {
		handleError(w, h.logger, err, "Error processing prediction")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, PredictResponse{
		PredictionID: prediction.ID.String(),
		Price:        prediction.Price,
		Message:      "Prediction successful",
	})
}

// Feedback records whether the caller is satisfied with one of their predictions.
func (h *Prediction) Feedback(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req feedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err, "Error saving feedback")
		return
	}
	if req.PredictionID == nil || *req.PredictionID == "" {
		handleError(w, h.logger, model.NewValidationError("predictionId", "is required"), "Server error")
		return
	}
	predictionID, err := uuid.Parse(*req.PredictionID)
	if err != nil {
		handleError(w, h.logger, model.NewValidationError("predictionId", "must be a valid id"), "Server error")
		return
	}
	if req.IsSatisfied == nil {
		handleError(w, h.logger, model.NewValidationError("isSatisfied", "is required"), "Server error")
		return
	}

	if _, err := h.predictions.RecordFeedback(r.Context(), accountID, predictionID, *req.IsSatisfied); err != nil {
		handleError(w, h.logger, err, "Error saving feedback")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, middleware.MessageResponse{Message: "Feedback recorded"})
}

// History lists the caller's predictions, newest first.
func (h *Prediction) History(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		handleError(w, h.logger, err, "Server error")
		return
	}

	predictions, err := h.predictions.History(r.Context(), accountID, page)
	if err != nil {
		handleError(w, h.logger, err, "Error fetching history")
		return
	}

	items := make([]HistoryItem, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, HistoryItem{
			ID:             p.ID.String(),
			UserID:         p.AccountID.String(),
			Inputs:         p.Inputs,
			PredictedPrice: p.Price,
			IsSatisfied:    p.Satisfaction,
			Timestamp:      p.CreatedAt,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// parsePage reads the optional limit and offset query parameters.
func parsePage(r *http.Request) (model.Page, error) {
	var page model.Page
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxHistoryLimit {
			return model.Page{}, model.NewValidationError("limit", "must be an integer between 1 and 100")
		}
		page.Limit = limit
	}

	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return model.Page{}, model.NewValidationError("offset", "must be a non-negative integer")
		}
		page.Offset = offset
	}

	return page, nil
}
