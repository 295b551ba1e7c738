package google

import (
	"context"
	"testing"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type stubValidator struct {
	payload  *idtoken.Payload
	err      error
	audience string
}

func (s *stubValidator) Validate(_ context.Context, _ string, audience string) (*idtoken.Payload, error) {
	s.audience = audience
	return s.payload, s.err
}

func TestVerifier_Verify(t *testing.T) {
	tests := []struct {
		name       string
		credential string
		payload    *idtoken.Payload
		err        error
		want       model.GoogleIdentity
		wantErr    bool
	}{
		{
			name:       "verified",
			credential: "cred",
			payload: &idtoken.Payload{Subject: "sub-1", Claims: map[string]interface{}{
				"email": "g@example.com", "email_verified": true, "name": "Gee", "picture": "https://example.com/p.png",
			}},
			want: model.GoogleIdentity{Subject: "sub-1", Email: "g@example.com", EmailVerified: true, Name: "Gee", Picture: "https://example.com/p.png"},
		},
		{
			name:       "string verified flag",
			credential: "cred",
			payload: &idtoken.Payload{Subject: "sub-1", Claims: map[string]interface{}{
				"email": "g@example.com", "email_verified": "true",
			}},
			want: model.GoogleIdentity{Subject: "sub-1", Email: "g@example.com", EmailVerified: true},
		},
		{
			name:       "unverified email",
			credential: "cred",
			payload: &idtoken.Payload{Subject: "sub-1", Claims: map[string]interface{}{
				"email": "g@example.com", "email_verified": false,
			}},
			wantErr: true,
		},
		{
			name:       "missing subject",
			credential: "cred",
			payload:    &idtoken.Payload{Claims: map[string]interface{}{"email": "g@example.com", "email_verified": true}},
			wantErr:    true,
		},
		{
			name:       "validator rejects",
			credential: "cred",
			err:        assert.AnError,
			wantErr:    true,
		},
		{
			name:    "empty credential",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubValidator{payload: tt.payload, err: tt.err}
			v := NewVerifierWithValidator(stub, "client-id")

			got, err := v.Verify(context.Background(), tt.credential)
			if tt.wantErr {
				require.ErrorIs(t, err, model.ErrInvalidAssertion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "client-id", stub.audience)
		})
	}
}
