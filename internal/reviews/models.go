package reviews

import (
	"time"

	"github.com/google/uuid"
)

// Review is a tourist's rating of a plantation visit.
type Review struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	VenueID uuid.UUID `json:"venue_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_user_venue"`
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_venue"`
	Rating  int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment string    `json:"comment" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Review
func (Review) TableName() string {
	return "reviews"
}
