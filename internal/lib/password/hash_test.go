package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "secret123"},
		{name: "empty password", password: ""},
		{name: "unicode password", password: "пароль-密码-🔑"},
		{name: "long password", password: strings.Repeat("a", 72)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := GetHash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)

			require.NoError(t, CompareHash(hash, tt.password))
			require.Error(t, CompareHash(hash, tt.password+"x"))
		})
	}
}

func TestGetHash_FreshSaltPerCall(t *testing.T) {
	first, err := GetHash("secret123")
	require.NoError(t, err)
	second, err := GetHash("secret123")
	require.NoError(t, err)

	// Соль генерируется на каждый вызов, хэши не совпадают
	assert.NotEqual(t, first, second)
	require.NoError(t, CompareHash(first, "secret123"))
	require.NoError(t, CompareHash(second, "secret123"))
}
