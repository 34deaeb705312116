package users

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level of an account. Plantation admins are scoped to a
// single venue via VenueID.
type Role string

const (
	RoleTourist         Role = "TOURIST"
	RolePlantationAdmin Role = "PLANTATION_ADMIN"
	RoleSuperAdmin      Role = "SUPER_ADMIN"
)

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleTourist, RolePlantationAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID        uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FullName  string     `json:"full_name" gorm:"not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"` // hide in json
	Role      Role       `json:"role" gorm:"not null;default:'TOURIST'"`
	VenueID   *uuid.UUID `json:"venue_id,omitempty" gorm:"type:uuid"` // set for plantation admins
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
