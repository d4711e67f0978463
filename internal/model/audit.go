package model

import "time"

// Audit records who created and last updated a row, and when.
type Audit struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
}

// Stamp marks the row as written by actorID at now. The creation fields are
// set only on the first write. Services call it right before persisting.
func (a *Audit) Stamp(actorID string, now time.Time) {
	if a.CreatedBy == "" {
		a.CreatedBy = actorID
		a.CreatedAt = now
	}
	a.UpdatedBy = actorID
	a.UpdatedAt = now
}
