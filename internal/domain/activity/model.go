package activity

import "time"

// Type represents the type of activity event
type Type string

const (
	TypeLeadUpdated        Type = "lead_updated"
	TypeLeadConverted      Type = "lead_converted"
	TypeOpportunityCreated Type = "opportunity_created"
	TypeOpportunityUpdated Type = "opportunity_updated"
	TypeOpportunityDeleted Type = "opportunity_deleted"
	TypeDataReset          Type = "data_reset"
	TypeErrorRateChanged   Type = "error_rate_changed"
)

// Entry represents an event in the activity log
type Entry struct {
	ID        int64     `json:"id"`
	Type      Type      `json:"type"`
	EntityID  *string   `json:"entityId,omitempty"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}
