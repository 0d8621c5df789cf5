package entity

import (
	"encoding/json"

	"github.com/google/uuid"
)

// AuditLog records one change made through the application.
type AuditLog struct {
	BaseEntity
	// Nil for changes made by background jobs.
	ActorID  *uuid.UUID      `json:"actorId"`
	Action   string          `json:"action"`
	Target   string          `json:"target"`
	Changes  map[string]any  `json:"changes" gorm:"serializer:json"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}
