package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordDeterministic(t *testing.T) {
	for _, p := range []string{"", "secret1", "admin123", "пароль"} {
		assert.Equal(t, HashPassword(p), HashPassword(p), "input %q", p)
		assert.Len(t, HashPassword(p), 64)
		if p != "" {
			assert.NotEqual(t, p, HashPassword(p))
		}
	}
}

func TestHashPasswordDistinct(t *testing.T) {
	corpus := []string{"", "a", "b", "secret1", "secret2", "Secret1", "admin123", "admin1234", " admin123"}
	seen := make(map[string]string, len(corpus))
	for _, p := range corpus {
		d := HashPassword(p)
		if prev, ok := seen[d]; ok {
			t.Fatalf("collision between %q and %q", prev, p)
		}
		seen[d] = p
	}
}

func TestHashPasswordKnownDigest(t *testing.T) {
	// sha256("admin123"), the digest deployments already carry for the default admin.
	assert.Equal(t, "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9", HashPassword("admin123"))
}

func TestCheckPasswordHash(t *testing.T) {
	d := HashPassword("secret1")
	assert.True(t, CheckPasswordHash(d, "secret1"))
	assert.False(t, CheckPasswordHash(d, "wrong"))
	assert.False(t, CheckPasswordHash("", "secret1"))
}

func TestDeriveSessionKeys(t *testing.T) {
	a1, e1, err := DeriveSessionKeys("s3cret")
	require.NoError(t, err)
	assert.Len(t, a1, 64)
	assert.Len(t, e1, 32)

	a2, e2, err := DeriveSessionKeys("s3cret")
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, e1, e2)

	a3, _, err := DeriveSessionKeys("other")
	require.NoError(t, err)
	assert.NotEqual(t, a1, a3)
}
