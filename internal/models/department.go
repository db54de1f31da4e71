package models

import "time"

type Department struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title   string `gorm:"size:100;not null"`
	ChiefID uint   `gorm:"not null;index"`
	Chief   User   `gorm:"foreignKey:ChiefID;constraint:OnDelete:RESTRICT"`
	Members string `gorm:"size:100;not null"` // как и collaborators, просто строка
	Email   string `gorm:"size:100;not null"`
}
