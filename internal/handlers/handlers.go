package handlers

import (
	"job-tracker/internal/services"

	"gorm.io/gorm"
)

// Handler собирает JSON API и страницы поверх одних и тех же сервисов.
type Handler struct {
	db          *gorm.DB
	jobs        *services.JobService
	users       *services.UserService
	departments *services.DepartmentService
	categories  *services.CategoryService
}

func New(db *gorm.DB) *Handler {
	return &Handler{
		db:          db,
		jobs:        services.NewJobService(db),
		users:       services.NewUserService(db),
		departments: services.NewDepartmentService(db),
		categories:  services.NewCategoryService(db),
	}
}
