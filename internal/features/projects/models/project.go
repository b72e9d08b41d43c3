package projects_models

import (
	"time"

	"github.com/google/uuid"
)

// Project is one wedding plan shared by a couple and their helpers.
type Project struct {
	ID          uuid.UUID  `json:"id"          gorm:"column:id"`
	Name        string     `json:"name"        gorm:"column:name"`
	WeddingDate *time.Time `json:"weddingDate" gorm:"column:wedding_date"`
	Venue       string     `json:"venue"       gorm:"column:venue"`
	CreatedBy   uuid.UUID  `json:"createdBy"   gorm:"column:created_by"`
	CreatedAt   time.Time  `json:"createdAt"   gorm:"column:created_at"`
}

func (Project) TableName() string {
	return "projects"
}
