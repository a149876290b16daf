package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Procedure is a catalog entry for a billable medical procedure
type Procedure struct {
	ID              int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Code            string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	Name            string          `gorm:"type:varchar(60);not null;index" json:"name"`
	Description     string          `gorm:"type:varchar(200)" json:"description,omitempty"`
	DepartmentID    *int            `gorm:"index" json:"department_id,omitempty"`
	DurationMinutes int             `gorm:"not null;default:30" json:"duration_minutes"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"base_price"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Procedure) TableName() string {
	return "procedures"
}
