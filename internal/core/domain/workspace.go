package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the scoping parent of every other entity. Deleting a
// workspace cascades to everything it owns.
type Workspace struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}
