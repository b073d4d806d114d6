package domain

import (
	"time"

	"github.com/google/uuid"
)

// Model is a named template entity owning zero or more model versions.
// Versions are cascade-deleted with the model.
type Model struct {
	ID          uuid.UUID  `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	UserID      *uuid.UUID `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	License     string     `json:"license"`
	Audience    string     `json:"audience"`
	UseCases    string     `json:"use_cases"`
	Limitations string     `json:"limitations"`
	TradeOffs   string     `json:"trade_offs"`
	Ethics      string     `json:"ethics"`

	// Computed fields
	VersionCount  int  `json:"version_count,omitempty"`
	LatestVersion *int `json:"latest_version,omitempty"`
}
