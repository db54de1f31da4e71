package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Email        string   `gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string   `gorm:"size:100;not null"` // bcrypt
	Name         string   `gorm:"size:100;not null"`
	CityFrom     string   `gorm:"size:100;not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'member'"`

	Jobs []Job `gorm:"foreignKey:TeamLeaderID"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
