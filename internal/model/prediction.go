package model

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PredictionStore defines persistence operations for prediction records.
type PredictionStore interface {
	Create(ctx context.Context, prediction Prediction) (Prediction, error)
	GetByID(ctx context.Context, id uuid.UUID) (Prediction, error)
	// ListByAccount returns records newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID, page Page) ([]Prediction, error)
	// SetSatisfaction updates the flag of the record owned by accountID.
	SetSatisfaction(ctx context.Context, id, accountID uuid.UUID, satisfaction Satisfaction) (Prediction, error)
}

// Page limits a listing. Zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

// ClinicalInputs is the validated scoring payload.
type ClinicalInputs struct {
	Age                     int `json:"Age"`
	Diabetes                int `json:"Diabetes"`
	BloodPressureProblems   int `json:"BloodPressureProblems"`
	AnyTransplants          int `json:"AnyTransplants"`
	AnyChronicDiseases      int `json:"AnyChronicDiseases"`
	Height                  int `json:"Height"`
	Weight                  int `json:"Weight"`
	KnownAllergies          int `json:"KnownAllergies"`
	HistoryOfCancerInFamily int `json:"HistoryOfCancerInFamily"`
	NumberOfMajorSurgeries  int `json:"NumberOfMajorSurgeries"`
}

// PredictionInput is a raw scoring request. Nil fields were absent from the request.
type PredictionInput struct {
	Age                     *int `json:"Age" validate:"required,min=0,max=150"`
	Diabetes                *int `json:"Diabetes" validate:"required,oneof=0 1"`
	BloodPressureProblems   *int `json:"BloodPressureProblems" validate:"required,oneof=0 1"`
	AnyTransplants          *int `json:"AnyTransplants" validate:"required,oneof=0 1"`
	AnyChronicDiseases      *int `json:"AnyChronicDiseases" validate:"required,oneof=0 1"`
	Height                  *int `json:"Height" validate:"required,min=1,max=300"`
	Weight                  *int `json:"Weight" validate:"required,min=1,max=500"`
	KnownAllergies          *int `json:"KnownAllergies" validate:"required,oneof=0 1"`
	HistoryOfCancerInFamily *int `json:"HistoryOfCancerInFamily" validate:"required,oneof=0 1"`
	NumberOfMajorSurgeries  *int `json:"NumberOfMajorSurgeries" validate:"required,min=0,max=10"`
}

// Inputs converts a validated request. It must only be called after validation.
func (p PredictionInput) Inputs() ClinicalInputs {
	return ClinicalInputs{
		Age:                     *p.Age,
		Diabetes:                *p.Diabetes,
		BloodPressureProblems:   *p.BloodPressureProblems,
		AnyTransplants:          *p.AnyTransplants,
		AnyChronicDiseases:      *p.AnyChronicDiseases,
		Height:                  *p.Height,
		Weight:                  *p.Weight,
		KnownAllergies:          *p.KnownAllergies,
		HistoryOfCancerInFamily: *p.HistoryOfCancerInFamily,
		NumberOfMajorSurgeries:  *p.NumberOfMajorSurgeries,
	}
}

// Prediction represents a stored prediction record.
type Prediction struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Inputs       ClinicalInputs
	Price        float64
	Satisfaction Satisfaction
	CreatedAt    time.Time
}

// Satisfaction is the user feedback attached to a prediction.
type Satisfaction int8

const (
	// SatisfactionUnset means no feedback was given yet.
	SatisfactionUnset Satisfaction = iota
	// SatisfactionSatisfied means the user accepted the price.
	SatisfactionSatisfied
	// SatisfactionUnsatisfied means the user rejected the price.
	SatisfactionUnsatisfied
)

// SatisfactionFromBool maps a feedback answer to a Satisfaction.
func SatisfactionFromBool(satisfied bool) Satisfaction {
	if satisfied {
		return SatisfactionSatisfied
	}
	return SatisfactionUnsatisfied
}

// SatisfactionFromPtr maps a nullable flag to a Satisfaction.
func SatisfactionFromPtr(satisfied *bool) Satisfaction {
	if satisfied == nil {
		return SatisfactionUnset
	}
	return SatisfactionFromBool(*satisfied)
}

// Ptr returns nil for unset and the flag otherwise.
func (s Satisfaction) Ptr() *bool {
	switch s {
	case SatisfactionSatisfied:
		v := true
		return &v
	case SatisfactionUnsatisfied:
		v := false
		return &v
	default:
		return nil
	}
}

func (s Satisfaction) String() string {
	switch s {
	case SatisfactionSatisfied:
		return "satisfied"
	case SatisfactionUnsatisfied:
		return "unsatisfied"
	default:
		return "unset"
	}
}

// MarshalJSON encodes the flag as null, true or false.
func (s Satisfaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Ptr())
}

// UnmarshalJSON decodes null, true or false.
func (s *Satisfaction) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("satisfaction must be a boolean or null: %w", err)
	}
	*s = SatisfactionFromPtr(v)
	return nil
}
