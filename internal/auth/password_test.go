package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCheck(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Sup3r$ecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r$ecret", hash)

	assert.True(t, h.Check("Sup3r$ecret", hash))
	assert.False(t, h.Check("wrong", hash))
	assert.False(t, h.Check("", hash))
	assert.False(t, h.Check("Sup3r$ecret", "not-a-hash"))
}

func TestNewHasher_ClampsCost(t *testing.T) {
	h := NewHasher(99)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	h = NewHasher(-1)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		violations int
	}{
		{"valid", "Valid1Pass!", 0},
		{"too short and thin", "aB1!", 1},
		{"no uppercase", "lower1pass!", 1},
		{"no lowercase", "UPPER1PASS!", 1},
		{"no digit", "NoDigitsHere!", 1},
		{"no symbol", "NoSymbols123", 1},
		{"empty", "", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePasswordStrength(tt.password)
			assert.Len(t, got, tt.violations, "violations: %v", got)
		})
	}
}

func TestValidatePasswordStrength_Messages(t *testing.T) {
	got := ValidatePasswordStrength("short")
	assert.Contains(t, got, "Password must be at least 8 characters long")
	assert.Contains(t, got, "Password must contain at least one uppercase letter")
	assert.Contains(t, got, "Password must contain at least one number")
	assert.Contains(t, got, "Password must contain at least one special character")
}
