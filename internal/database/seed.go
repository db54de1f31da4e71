package database

import (
	"errors"
	"fmt"
	"log/slog"

	"job-tracker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type demoUser struct {
	Email    string
	Password string
	Name     string
	City     string
}

var demoUsers = []demoUser{
	{Email: "scott@jobs.local", Password: "Scott123!", Name: "Ridley Scott", City: "London"},
	{Email: "weir@jobs.local", Password: "Weir123!", Name: "Andy Weir", City: "Davis"},
	{Email: "watney@jobs.local", Password: "Watney123!", Name: "Mark Watney", City: "Chicago"},
}

type demoJob struct {
	Title         string
	Leader        int // индекс в списке пользователей, 0 — админ
	WorkSize      int
	Collaborators string
	IsFinished    bool
	Categories    []int // индексы в DefaultCategories
}

var demoJobs = []demoJob{
	{Title: "Develop new AI model", Leader: 0, WorkSize: 40, Collaborators: "2,3", Categories: []int{0, 1}},
	{Title: "Write research paper", Leader: 1, WorkSize: 20, Collaborators: "1,4", IsFinished: true, Categories: []int{1}},
	{Title: "Organize team meeting", Leader: 2, WorkSize: 5, Collaborators: "1,2,3,4", Categories: []int{2, 3}},
}

// SeedDemo заполняет пустую базу демо-данными: пользователи, работы и их категории.
// Ожидает, что Setup уже отработал (категории и админ есть).
func SeedDemo(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		if err := tx.Where("role = ?", models.RoleAdmin).Order("id asc").First(&admin).Error; err != nil {
			return fmt.Errorf("load admin: %w", err)
		}

		users := []models.User{admin}
		for _, du := range demoUsers {
			var u models.User
			err := tx.Where("email = ?", du.Email).First(&u).Error
			if err == nil {
				users = append(users, u)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load demo user %s: %w", du.Email, err)
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(du.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", du.Email, err)
			}
			u = models.User{
				Email:        du.Email,
				PasswordHash: string(hash),
				Name:         du.Name,
				CityFrom:     du.City,
				Role:         models.RoleMember,
			}
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("create demo user %s: %w", du.Email, err)
			}
			slog.Info("created demo user", "email", u.Email, "id", u.ID)
			users = append(users, u)
		}

		var jobCount int64
		if err := tx.Model(&models.Job{}).Count(&jobCount).Error; err != nil {
			return err
		}
		if jobCount > 0 {
			slog.Info("jobs already exist in the database, skipping demo jobs")
			return nil
		}

		var categories []models.Category
		if err := tx.Order("id asc").Find(&categories).Error; err != nil {
			return err
		}
		if len(categories) < len(models.DefaultCategories) {
			return fmt.Errorf("expected %d seeded categories, got %d", len(models.DefaultCategories), len(categories))
		}

		for _, dj := range demoJobs {
			job := models.Job{
				JobTitle:      dj.Title,
				TeamLeaderID:  users[dj.Leader].ID,
				WorkSize:      dj.WorkSize,
				Collaborators: dj.Collaborators,
				IsFinished:    dj.IsFinished,
			}
			for _, idx := range dj.Categories {
				job.Categories = append(job.Categories, categories[idx])
			}
			if err := tx.Omit("Categories.*").Create(&job).Error; err != nil {
				return fmt.Errorf("create demo job %q: %w", dj.Title, err)
			}
		}

		slog.Info("initial jobs added to the database", "count", len(demoJobs))
		return nil
	})
}
