package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ model.PredictionStore = (*PredictionRepository)(nil)

const predictionColumns = `id, account_id, age, diabetes, blood_pressure_problems, any_transplants,
	any_chronic_diseases, height, weight, known_allergies, history_of_cancer_in_family,
	number_of_major_surgeries, price, is_satisfied, created_at`

type PredictionRepository struct {
	db Querier
}

func NewPredictionRepository(db Querier) *PredictionRepository {
	return &PredictionRepository{
		db: db,
	}
}

func scanPrediction(row pgx.Row) (model.Prediction, error) {
	var (
		p         model.Prediction
		satisfied *bool
	)
	in := &p.Inputs
	err := row.Scan(
		&p.ID, &p.AccountID, &in.Age, &in.Diabetes, &in.BloodPressureProblems, &in.AnyTransplants,
		&in.AnyChronicDiseases, &in.Height, &in.Weight, &in.KnownAllergies, &in.HistoryOfCancerInFamily,
		&in.NumberOfMajorSurgeries, &p.Price, &satisfied, &p.CreatedAt,
	)
	if err != nil {
		return model.Prediction{}, err
	}
	p.Satisfaction = model.SatisfactionFromPtr(satisfied)
	return p, nil
}

func (r *PredictionRepository) Create(ctx context.Context, prediction model.Prediction) (model.Prediction, error) {
	query := `
		INSERT INTO predictions (id, account_id, age, diabetes, blood_pressure_problems, any_transplants,
			any_chronic_diseases, height, weight, known_allergies, history_of_cancer_in_family,
			number_of_major_surgeries, price, is_satisfied, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + predictionColumns

	in := prediction.Inputs
	saved, err := scanPrediction(r.db.QueryRow(ctx, query,
		prediction.ID, prediction.AccountID, in.Age, in.Diabetes, in.BloodPressureProblems, in.AnyTransplants,
		in.AnyChronicDiseases, in.Height, in.Weight, in.KnownAllergies, in.HistoryOfCancerInFamily,
		in.NumberOfMajorSurgeries, prediction.Price, prediction.Satisfaction.Ptr(), prediction.CreatedAt,
	))
	if err != nil {
		return model.Prediction{}, fmt.Errorf("failed to create prediction: %w", err)
	}

	return saved, nil
}

func (r *PredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`

	prediction, err := scanPrediction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Prediction{}, model.ErrNotFound
		}
		return model.Prediction{}, fmt.Errorf("failed to get prediction by id: %w", err)
	}

	return prediction, nil
}

func (r *PredictionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, page model.Page) ([]model.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF($2::int, 0) OFFSET $3`

	rows, err := r.db.Query(ctx, query, accountID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]model.Prediction, 0)
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return predictions, nil
}

func (r *PredictionRepository) SetSatisfaction(ctx context.Context, id, accountID uuid.UUID, satisfaction model.Satisfaction) (model.Prediction, error) {
	query := `
		UPDATE predictions SET is_satisfied = $3
		WHERE id = $1 AND account_id = $2
		RETURNING ` + predictionColumns

	prediction, err := scanPrediction(r.db.QueryRow(ctx, query, id, accountID, satisfaction.Ptr()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Prediction{}, model.ErrNotFound
		}
		return model.Prediction{}, fmt.Errorf("failed to set satisfaction: %w", err)
	}

	return prediction, nil
}
