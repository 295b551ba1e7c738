package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var predictionCols = []string{"id", "account_id", "age", "diabetes", "blood_pressure_problems", "any_transplants",
	"any_chronic_diseases", "height", "weight", "known_allergies", "history_of_cancer_in_family",
	"number_of_major_surgeries", "price", "is_satisfied", "created_at"}

func addPredictionRow(rows *pgxmock.Rows, p model.Prediction) *pgxmock.Rows {
	in := p.Inputs
	return rows.AddRow(p.ID, p.AccountID, in.Age, in.Diabetes, in.BloodPressureProblems, in.AnyTransplants,
		in.AnyChronicDiseases, in.Height, in.Weight, in.KnownAllergies, in.HistoryOfCancerInFamily,
		in.NumberOfMajorSurgeries, p.Price, p.Satisfaction.Ptr(), p.CreatedAt)
}

func samplePrediction(accountID uuid.UUID, createdAt time.Time) model.Prediction {
	return model.Prediction{
		ID:        uuid.New(),
		AccountID: accountID,
		Inputs: model.ClinicalInputs{
			Age: 40, Diabetes: 1, BloodPressureProblems: 0, AnyTransplants: 0, AnyChronicDiseases: 1,
			Height: 170, Weight: 70, KnownAllergies: 0, HistoryOfCancerInFamily: 1, NumberOfMajorSurgeries: 3,
		},
		Price:     28000.5,
		CreatedAt: createdAt,
	}
}

func TestPredictionRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	p := samplePrediction(uuid.New(), time.Now())
	in := p.Inputs

	mock.ExpectQuery(`INSERT INTO predictions`).
		WithArgs(p.ID, p.AccountID, in.Age, in.Diabetes, in.BloodPressureProblems, in.AnyTransplants,
			in.AnyChronicDiseases, in.Height, in.Weight, in.KnownAllergies, in.HistoryOfCancerInFamily,
			in.NumberOfMajorSurgeries, p.Price, (*bool)(nil), p.CreatedAt).
		WillReturnRows(addPredictionRow(pgxmock.NewRows(predictionCols), p))

	got, err := NewPredictionRepository(mock).Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, model.SatisfactionUnset, got.Satisfaction)
}

func TestPredictionRepository_GetByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	id := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM predictions WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(predictionCols))

	_, err := NewPredictionRepository(mock).GetByID(context.Background(), id)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestPredictionRepository_ListByAccount(t *testing.T) {
	mock := newMockPool(t)
	accountID := uuid.New()
	now := time.Now()
	newer := samplePrediction(accountID, now)
	newer.Satisfaction = model.SatisfactionSatisfied
	older := samplePrediction(accountID, now.Add(-time.Hour))

	rows := pgxmock.NewRows(predictionCols)
	addPredictionRow(rows, newer)
	addPredictionRow(rows, older)

	mock.ExpectQuery(`ORDER BY created_at DESC, id DESC`).
		WithArgs(accountID, 0, 0).
		WillReturnRows(rows)

	got, err := NewPredictionRepository(mock).ListByAccount(context.Background(), accountID, model.Page{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, model.SatisfactionSatisfied, got[0].Satisfaction)
	assert.Equal(t, older.ID, got[1].ID)
}

func TestPredictionRepository_ListByAccount_Empty(t *testing.T) {
	mock := newMockPool(t)
	accountID := uuid.New()
	mock.ExpectQuery(`FROM predictions`).
		WithArgs(accountID, 10, 20).
		WillReturnRows(pgxmock.NewRows(predictionCols))

	got, err := NewPredictionRepository(mock).ListByAccount(context.Background(), accountID, model.Page{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPredictionRepository_SetSatisfaction(t *testing.T) {
	accountID := uuid.New()
	p := samplePrediction(accountID, time.Now())
	updated := p
	updated.Satisfaction = model.SatisfactionUnsatisfied

	t.Run("updated", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`UPDATE predictions SET is_satisfied = \$3`).
			WithArgs(p.ID, accountID, updated.Satisfaction.Ptr()).
			WillReturnRows(addPredictionRow(pgxmock.NewRows(predictionCols), updated))

		got, err := NewPredictionRepository(mock).SetSatisfaction(context.Background(), p.ID, accountID, model.SatisfactionUnsatisfied)
		require.NoError(t, err)
		assert.Equal(t, model.SatisfactionUnsatisfied, got.Satisfaction)
	})

	t.Run("no matching row", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`UPDATE predictions`).
			WithArgs(p.ID, accountID, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(predictionCols))

		_, err := NewPredictionRepository(mock).SetSatisfaction(context.Background(), p.ID, accountID, model.SatisfactionSatisfied)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}
