package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client is a person receiving care at a facility.
type Client struct {
	TenantScopedEntity
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	contactInfo
	FacilityID uuid.UUID `json:"facilityId" gorm:"type:uuid"`
	Facility   *Facility `json:"facility,omitempty"`
	Allergies  []string  `json:"allergies" gorm:"serializer:json"`
	Notes      string    `json:"notes,omitempty"`
}
