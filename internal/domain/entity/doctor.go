package entity

import (
	"time"

	"github.com/google/uuid"
)

// Department represents a hospital department
type Department struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"name"`
	Location  string    `gorm:"type:varchar(50)" json:"location,omitempty"`
	Phone     string    `gorm:"type:varchar(10)" json:"phone,omitempty"`
	Email     string    `gorm:"type:varchar(50)" json:"email,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors []Doctor `gorm:"foreignKey:DepartmentID" json:"doctors,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}

// Doctor represents a practicing doctor in the directory
type Doctor struct {
	ID             int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	FirstName      string     `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName       string     `gorm:"type:varchar(50);not null" json:"last_name"`
	Specialization string     `gorm:"type:varchar(50);not null;index" json:"specialization"`
	Phone          string     `gorm:"type:varchar(10)" json:"phone,omitempty"`
	Email          string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"email"`
	DepartmentID   *int       `gorm:"index" json:"department_id,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Department   *Department   `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
