package entity

import "github.com/google/uuid"

// TenantScopedEntity is the base of every row owned by a single tenant.
type TenantScopedEntity struct {
	BaseEntity
	TenantID uuid.UUID `json:"tenantId" gorm:"type:uuid;index;not null"`
}
