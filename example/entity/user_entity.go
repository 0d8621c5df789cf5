package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff member who signs in to the application.
type User struct {
	TenantScopedEntity
	Email        string      `json:"email" gorm:"uniqueIndex" validate:"required"`
	DisplayName  string      `json:"displayName"`
	Role         Role        `json:"role"`
	PasswordHash string      `json:"-"`
	LastLoginAt  *time.Time  `json:"lastLoginAt"`
	FacilityIDs  []uuid.UUID `json:"facilityIds" gorm:"-"`
}
