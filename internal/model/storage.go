package model

import "context"

// SampleSink exports prediction records, with their feedback, as training samples.
type SampleSink interface {
	Export(ctx context.Context, prediction Prediction) error
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
