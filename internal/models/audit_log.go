package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditEntity string

const (
	AuditJob        AuditEntity = "job"
	AuditDepartment AuditEntity = "department"
	AuditUser       AuditEntity = "user"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	// nil — действие пришло через JSON API без сессии
	UserID *uint
	User   *User `gorm:"constraint:OnDelete:SET NULL"`

	Entity   AuditEntity    `gorm:"size:50;not null"`
	EntityID uint           `gorm:"index"`
	Action   string         `gorm:"size:50;not null"` // "create", "update", "delete"
	Details  datatypes.JSON `gorm:"type:text"`
}
