package domain

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a named, stored set of photographer defaults ("Elopement",
// "Full day, two venues"). Presets hold durations only; generated timelines
// are never stored.
type Preset struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Defaults  Defaults  `json:"defaults"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
