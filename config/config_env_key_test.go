package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"push": map[string]any{
			"vapidPublicKey":   "pk",
			"toleranceMinutes": 5,
		},
		"secretKey": map[string]any{
			"access": "a",
		},
		"postgres": map[string]any{
			"sslMode": "disable",
		},
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "camelCase leaf is restored", in: "PUSH_VAPIDPUBLICKEY", want: "push.vapidPublicKey"},
		{name: "camelCase parent is restored", in: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{name: "nested camelCase leaf", in: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{name: "unknown key falls back to lowercase", in: "PUSH_UNKNOWN_FIELD", want: "push.unknown.field"},
		{name: "numeric segments pass through", in: "POSTGRES_REPLICAS_0_HOST", want: "postgres.replicas.0.host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.in, existing))
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "vapidpublickey", normalizeToken("vapidPublicKey"))
	assert.Equal(t, "tolerance", normalizeToken("TOLERANCE"))
	assert.Equal(t, "maxsize", normalizeToken("max_size"))
}
