package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCoach   UserRole = "coach"
	RoleManager UserRole = "manager"
	RoleAthlete UserRole = "athlete"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoach, RoleManager, RoleAthlete:
		return true
	}
	return false
}

type User struct {
	ID                     int64      `json:"id" db:"id"`
	Email                  string     `json:"email" db:"email"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	Role                   UserRole   `json:"role" db:"role"`
	FirstName              string     `json:"first_name" db:"first_name"`
	LastName               string     `json:"last_name" db:"last_name"`
	TenantUniqueID         string     `json:"tenant_unique_id" db:"tenant_unique_id"`
	TenantID               *int64     `json:"tenant_id,omitempty" db:"tenant_id"`
	DateOfBirth            *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Height                 *float64   `json:"height,omitempty" db:"height"`
	Weight                 *float64   `json:"weight,omitempty" db:"weight"`
	Phone                  *string    `json:"phone,omitempty" db:"phone"`
	EmergencyContactName   *string    `json:"emergency_contact_name,omitempty" db:"emergency_contact_name"`
	EmergencyContactNumber *string    `json:"emergency_contact_number,omitempty" db:"emergency_contact_number"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at" db:"updated_at"`
}
