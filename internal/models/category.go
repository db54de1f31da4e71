package models

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null"`
}

// стартовый набор категорий, порядок определяет ID на чистой базе
var DefaultCategories = []string{
	"Engineering",
	"Science",
	"Management",
	"Support",
}
