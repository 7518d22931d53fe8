package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Performance struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Height    float64   `json:"height" gorm:"not null"`
	Weight    float64   `json:"weight" gorm:"not null"`
	Speed     float64   `json:"speed" gorm:"not null"`
	Stamina   float64   `json:"stamina" gorm:"not null"`
	Accuracy  float64   `json:"accuracy" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeaderboardEntry is the aggregate row behind the ranking page: one
// athlete with the mean of speed/stamina/accuracy over all their records.
type LeaderboardEntry struct {
	UserID   uuid.UUID `json:"userId"`
	FullName string    `json:"fullName"`
	Sport    string    `json:"sport"`
	Score    float64   `json:"score"`
}

// AnalysisReport records the outcome of one video analysis. Meta holds
// the uploaded file's metadata (name, size, mime) as submitted.
type AnalysisReport struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    *uuid.UUID     `json:"userId" gorm:"type:uuid;index"`
	FileName  string         `json:"fileName" gorm:"not null"`
	FileSize  int64          `json:"fileSize" gorm:"not null"`
	FileType  string         `json:"fileType"`
	Verdict   string         `json:"verdict" gorm:"type:text"`
	Analysis  string         `json:"analysis" gorm:"type:text"`
	Meta      datatypes.JSON `json:"meta" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"createdAt"`
}
