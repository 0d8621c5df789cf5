package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseEntity carries the identity and audit columns shared by every table.
type BaseEntity struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey" readonly:"true"`
	CreatedAt time.Time      `json:"createdAt" readonly:"true"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// BeforeCreate assigns a random id to rows inserted without one.
func (e *BaseEntity) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
