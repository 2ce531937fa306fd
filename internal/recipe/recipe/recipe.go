package recipe

import (
	"time"

	"github.com/savora/savora/internal/recipe/tag"
)

// Recipe is the aggregate root of the cookbook domain. Every recipe belongs
// to exactly one owner, and all reads and writes are owner-filtered.
type Recipe struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Title       string    `json:"title"`
	TimeMinutes int       `json:"time_minutes"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Tags        []tag.Tag `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Field length limits mirroring the database column constraints.
const (
	MaxTitleLength = 255
	MaxLinkLength  = 255
)
