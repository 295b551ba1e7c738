package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/metrics"
	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
)

// Prediction prices clinical inputs and keeps the per-account history.
type Prediction struct {
	predictions model.PredictionStore
	scorer      model.Scorer
	sink        model.SampleSink
	validator   *Validator
	logger      *logger.Logger
	now         func() time.Time
}

func NewPrediction(
	predictions model.PredictionStore,
	scorer model.Scorer,
	sink model.SampleSink,
	validator *Validator,
	logger *logger.Logger,
) *Prediction {
	return &Prediction{
		predictions: predictions,
		scorer:      scorer,
		sink:        sink,
		validator:   validator,
		logger:      logger,
		now:         time.Now,
	}
}

// Predict validates input, prices it and stores exactly one record.
// Nothing is stored when validation or scoring fails.
func (p *Prediction) Predict(ctx context.Context, accountID uuid.UUID, input model.PredictionInput) (prediction model.Prediction, err error) {
	var scorerTime time.Duration
	defer func() { metrics.RecordPrediction(scorerTime, err) }()

	if err := p.validator.Struct(input); err != nil {
		p.logger.Debug("Prediction service: invalid input",
			"account_id", accountID,
			"error", err.Error())
		return model.Prediction{}, err
	}
	inputs := input.Inputs()

	start := time.Now()
	price, err := p.scorer.Score(ctx, inputs)
	scorerTime = time.Since(start)
	if err != nil {
		p.logger.Error("Prediction service: scorer failed",
			"account_id", accountID,
			"error", err.Error())
		if !errors.Is(err, model.ErrUpstream) {
			err = fmt.Errorf("%w: %v", model.ErrUpstream, err)
		}
		return model.Prediction{}, fmt.Errorf("failed to score inputs: %w", err)
	}

	prediction, err = p.predictions.Create(ctx, model.Prediction{
		ID:        uuid.New(),
		AccountID: accountID,
		Inputs:    inputs,
		Price:     price,
		CreatedAt: p.now(),
	})
	if err != nil {
		p.logger.Error("Prediction service: failed to store prediction",
			"account_id", accountID,
			"error", err.Error())
		return model.Prediction{}, fmt.Errorf("failed to store prediction: %w", err)
	}

	p.logger.Info("Prediction service: prediction stored",
		"account_id", accountID,
		"prediction_id", prediction.ID,
		"price", prediction.Price)

	p.export(ctx, prediction)

	return prediction, nil
}

// RecordFeedback sets the satisfaction flag of a prediction owned by accountID.
// Repeated feedback overwrites the previous answer.
func (p *Prediction) RecordFeedback(ctx context.Context, accountID, predictionID uuid.UUID, satisfied bool) (model.Prediction, error) {
	existing, err := p.predictions.GetByID(ctx, predictionID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			p.logger.Error("Prediction service: failed to get prediction",
				"prediction_id", predictionID,
				"error", err.Error())
		}
		return model.Prediction{}, fmt.Errorf("failed to get prediction: %w", err)
	}

	if existing.AccountID != accountID {
		p.logger.Warn("Prediction service: feedback on foreign prediction",
			"account_id", accountID,
			"prediction_id", predictionID)
		return model.Prediction{}, model.ErrForbidden
	}

	updated, err := p.predictions.SetSatisfaction(ctx, predictionID, accountID, model.SatisfactionFromBool(satisfied))
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			p.logger.Error("Prediction service: failed to record feedback",
				"prediction_id", predictionID,
				"error", err.Error())
		}
		return model.Prediction{}, fmt.Errorf("failed to record feedback: %w", err)
	}

	metrics.RecordFeedback(satisfied)
	p.logger.Info("Prediction service: feedback recorded",
		"account_id", accountID,
		"prediction_id", predictionID,
		"satisfaction", updated.Satisfaction.String())

	p.export(ctx, updated)

	return updated, nil
}

// History returns the account's predictions, newest first.
func (p *Prediction) History(ctx context.Context, accountID uuid.UUID, page model.Page) ([]model.Prediction, error) {
	if page.Limit < 0 {
		return nil, model.NewValidationError("limit", "must be greater than or equal to 1")
	}
	if page.Offset < 0 {
		return nil, model.NewValidationError("offset", "must be greater than or equal to 0")
	}

	predictions, err := p.predictions.ListByAccount(ctx, accountID, page)
	if err != nil {
		p.logger.Error("Prediction service: failed to list predictions",
			"account_id", accountID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}

	return predictions, nil
}

// export hands the record to the sample sink. Failures do not affect the caller.
func (p *Prediction) export(ctx context.Context, prediction model.Prediction) {
	if err := p.sink.Export(ctx, prediction); err != nil {
		p.logger.Error("Prediction service: failed to export sample",
			"prediction_id", prediction.ID,
			"error", err.Error())
	}
}
