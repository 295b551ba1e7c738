package handler

import (
	"context"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
)

type stubIdentity struct {
	google   func(ctx context.Context, credential string) (model.Session, error)
	withCode func(ctx context.Context, email, code string) (model.Session, error)
	sendCode func(ctx context.Context, email string) error
}

func (s *stubIdentity) LoginWithGoogle(ctx context.Context, credential string) (model.Session, error) {
	return s.google(ctx, credential)
}

func (s *stubIdentity) LoginWithCode(ctx context.Context, email, code string) (model.Session, error) {
	return s.withCode(ctx, email, code)
}

func (s *stubIdentity) SendCode(ctx context.Context, email string) error {
	return s.sendCode(ctx, email)
}

type stubPredictions struct {
	predict  func(ctx context.Context, accountID uuid.UUID, input model.PredictionInput) (model.Prediction, error)
	feedback func(ctx context.Context, accountID, predictionID uuid.UUID, satisfied bool) (model.Prediction, error)
	history  func(ctx context.Context, accountID uuid.UUID, page model.Page) ([]model.Prediction, error)
}

func (s *stubPredictions) Predict(ctx context.Context, accountID uuid.UUID, input model.PredictionInput) (model.Prediction, error) {
	return s.predict(ctx, accountID, input)
}

func (s *stubPredictions) RecordFeedback(ctx context.Context, accountID, predictionID uuid.UUID, satisfied bool) (model.Prediction, error) {
	return s.feedback(ctx, accountID, predictionID, satisfied)
}

func (s *stubPredictions) History(ctx context.Context, accountID uuid.UUID, page model.Page) ([]model.Prediction, error) {
	return s.history(ctx, accountID, page)
}
