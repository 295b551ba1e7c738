package scorer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Score(t *testing.T) {
	inputs := model.ClinicalInputs{
		Age: 45, Diabetes: 0, BloodPressureProblems: 1, AnyTransplants: 0, AnyChronicDiseases: 0,
		Height: 172, Weight: 80, KnownAllergies: 0, HistoryOfCancerInFamily: 1, NumberOfMajorSurgeries: 2,
	}

	tests := []struct {
		name      string
		status    int
		body      string
		wantPrice float64
		wantErr   bool
	}{
		{name: "success", status: http.StatusOK, body: `{"premium_price": 28750.5}`, wantPrice: 28750.5},
		{name: "integer price", status: http.StatusOK, body: `{"premium_price": 31000}`, wantPrice: 31000},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantErr: true},
		{name: "missing field", status: http.StatusOK, body: `{"price": 1}`, wantErr: true},
		{name: "non numeric", status: http.StatusOK, body: `{"premium_price": "cheap"}`, wantErr: true},
		{name: "malformed", status: http.StatusOK, body: `not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/predict", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var got map[string]int
				if assert.NoError(t, json.NewDecoder(r.Body).Decode(&got)) {
					assert.Equal(t, 45, got["Age"])
					assert.Equal(t, 2, got["NumberOfMajorSurgeries"])
					assert.Len(t, got, 10)
				}

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			price, err := NewClient(srv.URL+"/", time.Second).Score(context.Background(), inputs)
			if tt.wantErr {
				require.ErrorIs(t, err, model.ErrUpstream)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, price)
		})
	}
}

func TestClient_Score_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, 50*time.Millisecond).Score(context.Background(), model.ClinicalInputs{})
	require.ErrorIs(t, err, model.ErrUpstream)
}

func TestClient_Score_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Score(context.Background(), model.ClinicalInputs{})
	require.ErrorIs(t, err, model.ErrUpstream)
}
