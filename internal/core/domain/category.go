package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IconEmoji   string    `json:"icon_emoji,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
