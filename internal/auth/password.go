package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const passwordSymbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// Hasher wraps bcrypt with a configured cost.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Check reports whether password matches the stored hash. Malformed hashes
// and empty passwords simply fail the check; user input never produces an
// error here.
func (h *Hasher) Check(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength returns the list of policy violations for a
// candidate password. Enforced at the request-validation boundary, not by
// the hasher.
func ValidatePasswordStrength(password string) []string {
	var errs []string

	if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters long")
	}
	if len(password) > 128 {
		errs = append(errs, "Password must be less than 128 characters long")
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	if !upper {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !lower {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !digit {
		errs = append(errs, "Password must contain at least one number")
	}
	if !symbol {
		errs = append(errs, "Password must contain at least one special character")
	}

	return errs
}
