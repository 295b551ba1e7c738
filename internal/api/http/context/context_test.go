package context

import (
	"context"
	"testing"
	"time"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestManager_Claims(t *testing.T) {
	t.Parallel()

	m := NewManager()

	_, ok := m.GetClaimsFromContext(context.Background())
	assert.False(t, ok)

	claims := model.SessionClaims{
		AccountID: uuid.New(),
		Email:     "a@b.com",
		Name:      "a",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	ctx := m.SetClaimsToContext(context.Background(), claims)

	got, ok := m.GetClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, got)
}
