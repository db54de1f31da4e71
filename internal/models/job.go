package models

import "time"

type Job struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	JobTitle     string `gorm:"size:100;not null"`
	TeamLeaderID uint   `gorm:"not null;index"`
	TeamLeader   User   `gorm:"foreignKey:TeamLeaderID;constraint:OnDelete:RESTRICT"`
	WorkSize     int    `gorm:"not null"`
	// список участников хранится строкой как есть ("2,3")
	Collaborators string `gorm:"size:100;not null"`
	IsFinished    bool   `gorm:"not null;default:false"`

	Categories []Category `gorm:"many2many:job_categories;constraint:OnDelete:CASCADE"`
}

// CategoryIDs и CategoryNames повторяют порядок Categories.
func (j Job) CategoryIDs() []uint {
	ids := make([]uint, 0, len(j.Categories))
	for _, c := range j.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

func (j Job) CategoryNames() []string {
	names := make([]string, 0, len(j.Categories))
	for _, c := range j.Categories {
		names = append(names, c.Name)
	}
	return names
}

func (j Job) HasCategory(id uint) bool {
	for _, c := range j.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
