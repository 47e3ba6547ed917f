package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

const (
	seedAdminEmail    = "admin@athleteanalytics.com"
	seedAdminPassword = "admin123"
)

// EnsureAdmin creates the bootstrap admin account if no admin exists yet.
// The default password is only for first login and should be rotated
// immediately.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	var count int
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM users WHERE role = 'admin'").Scan(&count); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := s.Create(ctx, CreateInput{
		Email:     seedAdminEmail,
		Password:  seedAdminPassword,
		Role:      models.RoleAdmin,
		FirstName: "System",
		LastName:  "Admin",
	})
	if errors.Is(err, ErrEmailExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.Warn("seeded default admin account, rotate its password", "email", seedAdminEmail)
	return nil
}
