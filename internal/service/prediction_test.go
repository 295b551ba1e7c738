package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	servermocks "github.com/dtroode/premium-server/internal/mocks"
	"github.com/dtroode/premium-server/internal/model"
	"github.com/dtroode/premium-server/internal/repository/memory"
	"github.com/dtroode/premium-server/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type predictionFixture struct {
	svc    *Prediction
	store  *memory.PredictionRepository
	scorer *servermocks.Scorer
	sink   *servermocks.SampleSink
	clock  *testutil.Clock
}

func newPredictionFixture(t *testing.T) predictionFixture {
	t.Helper()
	store := memory.NewPredictionRepository()
	scorer := servermocks.NewScorer(t)
	sink := servermocks.NewSampleSink(t)
	clock := testutil.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	svc := NewPrediction(store, scorer, sink, NewValidator(), testutil.MakeNoopLogger())
	svc.now = clock.Now

	return predictionFixture{svc: svc, store: store, scorer: scorer, sink: sink, clock: clock}
}

func TestPrediction_Predict(t *testing.T) {
	ctx := context.Background()
	f := newPredictionFixture(t)
	accountID := uuid.New()
	input := testutil.ValidInput()

	f.scorer.On("Score", mock.Anything, input.Inputs()).Return(28750.5, nil).Once()
	f.sink.On("Export", mock.Anything, mock.AnythingOfType("model.Prediction")).Return(nil).Once()

	got, err := f.svc.Predict(ctx, accountID, input)
	require.NoError(t, err)
	assert.Equal(t, 28750.5, got.Price)
	assert.Equal(t, accountID, got.AccountID)
	assert.Equal(t, model.SatisfactionUnset, got.Satisfaction)

	stored, err := f.store.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, input.Inputs(), stored.Inputs)
	assert.Equal(t, 28750.5, stored.Price)
	assert.Equal(t, f.clock.Now(), stored.CreatedAt)

	history, err := f.svc.History(ctx, accountID, model.Page{})
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestPrediction_Predict_ValidationStopsEarly(t *testing.T) {
	ctx := context.Background()
	f := newPredictionFixture(t)
	accountID := uuid.New()

	input := testutil.ValidInput()
	input.NumberOfMajorSurgeries = testutil.IntPtr(11)

	_, err := f.svc.Predict(ctx, accountID, input)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "NumberOfMajorSurgeries", verr.Field)

	f.scorer.AssertNotCalled(t, "Score", mock.Anything, mock.Anything)

	history, err := f.svc.History(ctx, accountID, model.Page{})
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPrediction_Predict_ScorerFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "timeout", err: fmt.Errorf("%w: %v", model.ErrUpstream, context.DeadlineExceeded)},
		{name: "unclassified", err: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newPredictionFixture(t)
			accountID := uuid.New()

			f.scorer.On("Score", mock.Anything, mock.Anything).Return(0.0, tt.err).Once()

			_, err := f.svc.Predict(ctx, accountID, testutil.ValidInput())
			require.ErrorIs(t, err, model.ErrUpstream)

			history, err := f.svc.History(ctx, accountID, model.Page{})
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestPrediction_Predict_StoreFailure(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewPredictionStore(t)
	scorer := servermocks.NewScorer(t)
	sink := servermocks.NewSampleSink(t)

	scorer.On("Score", mock.Anything, mock.Anything).Return(100.0, nil).Once()
	store.On("Create", mock.Anything, mock.Anything).Return(model.Prediction{}, assert.AnError).Once()

	svc := NewPrediction(store, scorer, sink, NewValidator(), testutil.MakeNoopLogger())
	_, err := svc.Predict(ctx, uuid.New(), testutil.ValidInput())
	require.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, model.ErrUpstream)
}

func TestPrediction_Predict_SinkFailureIgnored(t *testing.T) {
	ctx := context.Background()
	f := newPredictionFixture(t)

	f.scorer.On("Score", mock.Anything, mock.Anything).Return(100.0, nil).Once()
	f.sink.On("Export", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	got, err := f.svc.Predict(ctx, uuid.New(), testutil.ValidInput())
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Price)
}

func TestPrediction_History_Descending(t *testing.T) {
	ctx := context.Background()
	f := newPredictionFixture(t)
	accountID := uuid.New()

	f.scorer.On("Score", mock.Anything, mock.Anything).Return(100.0, nil)
	f.sink.On("Export", mock.Anything, mock.Anything).Return(nil)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		p, err := f.svc.Predict(ctx, accountID, testutil.ValidInput())
		require.NoError(t, err)
		ids = append(ids, p.ID)
		f.clock.Advance(time.Second)
	}

	history, err := f.svc.History(ctx, accountID, model.Page{})
	require.NoError(t, err)
	require.Len(t, history, 5)
	for i := 1; i < len(history); i++ {
		assert.True(t, history[i-1].CreatedAt.After(history[i].CreatedAt))
	}
	assert.Equal(t, ids[4], history[0].ID)

	page, err := f.svc.History(ctx, accountID, model.Page{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[3], page[0].ID)

	other, err := f.svc.History(ctx, uuid.New(), model.Page{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestPrediction_History_InvalidPage(t *testing.T) {
	f := newPredictionFixture(t)

	var verr *model.ValidationError
	_, err := f.svc.History(context.Background(), uuid.New(), model.Page{Offset: -1})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "offset", verr.Field)
}

func TestPrediction_RecordFeedback(t *testing.T) {
	ctx := context.Background()
	f := newPredictionFixture(t)
	owner, stranger := uuid.New(), uuid.New()

	f.scorer.On("Score", mock.Anything, mock.Anything).Return(100.0, nil).Once()
	f.sink.On("Export", mock.Anything, mock.Anything).Return(nil)

	p, err := f.svc.Predict(ctx, owner, testutil.ValidInput())
	require.NoError(t, err)

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.svc.RecordFeedback(ctx, owner, uuid.New(), true)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("foreign prediction", func(t *testing.T) {
		_, err := f.svc.RecordFeedback(ctx, stranger, p.ID, true)
		require.ErrorIs(t, err, model.ErrForbidden)

		stored, err := f.store.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, model.SatisfactionUnset, stored.Satisfaction)
	})

	t.Run("owner, repeated feedback overwrites", func(t *testing.T) {
		got, err := f.svc.RecordFeedback(ctx, owner, p.ID, true)
		require.NoError(t, err)
		assert.Equal(t, model.SatisfactionSatisfied, got.Satisfaction)

		got, err = f.svc.RecordFeedback(ctx, owner, p.ID, false)
		require.NoError(t, err)
		assert.Equal(t, model.SatisfactionUnsatisfied, got.Satisfaction)

		stored, err := f.store.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, model.SatisfactionUnsatisfied, stored.Satisfaction)
		assert.Equal(t, p.Price, stored.Price)
		assert.Equal(t, p.Inputs, stored.Inputs)
	})
}
