package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
)

var _ model.PredictionStore = (*PredictionRepository)(nil)

// PredictionRepository keeps prediction records in a map.
// It is safe for concurrent use.
type PredictionRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]model.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{
		records: make(map[uuid.UUID]model.Prediction),
	}
}

func (r *PredictionRepository) Create(_ context.Context, prediction model.Prediction) (model.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prediction.ID == uuid.Nil {
		prediction.ID = uuid.New()
	}
	r.records[prediction.ID] = prediction
	return prediction, nil
}

func (r *PredictionRepository) GetByID(_ context.Context, id uuid.UUID) (model.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[id]
	if !ok {
		return model.Prediction{}, model.ErrNotFound
	}
	return p, nil
}

func (r *PredictionRepository) ListByAccount(_ context.Context, accountID uuid.UUID, page model.Page) ([]model.Prediction, error) {
	r.mu.RLock()
	out := make([]model.Prediction, 0)
	for _, p := range r.records {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})

	if page.Offset > 0 {
		if page.Offset >= len(out) {
			return make([]model.Prediction, 0), nil
		}
		out = out[page.Offset:]
	}
	if page.Limit > 0 && page.Limit < len(out) {
		out = out[:page.Limit]
	}
	return out, nil
}

func (r *PredictionRepository) SetSatisfaction(_ context.Context, id, accountID uuid.UUID, satisfaction model.Satisfaction) (model.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.records[id]
	if !ok || p.AccountID != accountID {
		return model.Prediction{}, model.ErrNotFound
	}
	p.Satisfaction = satisfaction
	r.records[id] = p
	return p, nil
}
