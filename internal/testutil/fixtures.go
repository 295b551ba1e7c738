package testutil

import (
	"sync"
	"time"

	"github.com/dtroode/premium-server/internal/model"
)

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func IntPtr(v int) *int {
	return &v
}

// ValidInput returns a complete, valid scoring request.
func ValidInput() model.PredictionInput {
	return model.PredictionInput{
		Age:                     IntPtr(45),
		Diabetes:                IntPtr(0),
		BloodPressureProblems:   IntPtr(1),
		AnyTransplants:          IntPtr(0),
		AnyChronicDiseases:      IntPtr(0),
		Height:                  IntPtr(172),
		Weight:                  IntPtr(80),
		KnownAllergies:          IntPtr(1),
		HistoryOfCancerInFamily: IntPtr(0),
		NumberOfMajorSurgeries:  IntPtr(2),
	}
}
