package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
	RoleScout   Role = "scout"
)

// Roles lists every role a signup form may carry.
func Roles() []string {
	return []string{string(RoleAthlete), string(RoleCoach), string(RoleScout)}
}

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FullName     string    `json:"fullName" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"not null"`
	Sport        string    `json:"sport" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
