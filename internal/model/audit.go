package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionReloadReferenceData = "RELOAD_REFERENCE_DATA"
	ActionSeedReferenceData   = "SEED_REFERENCE_DATA"
)

// AuditLog tracks who changed the reference data and when
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nil when triggered at start-up
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // reference source name
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // human readable summary
	Details    string     `gorm:"type:jsonb" json:"details"`                      // serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
