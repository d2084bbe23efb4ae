package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole distinguishes HR-side organizers from candidates
type UserRole string

const (
	UserRoleOrganizer UserRole = "organizer"
	UserRoleCandidate UserRole = "candidate"
)

// User is the minimal identity referenced by rooms and results. Account
// creation and credential handling live in an external service; this table
// only mirrors what room snapshots need.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'candidate'" json:"role"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
