package database

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"job-tracker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// AdminSeed — учётка админа, которая создаётся, если админов ещё нет.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
	City     string
}

// Init подключается к Postgres с ретраями и готовит схему.
func Init(dsn string, admin AdminSeed) error {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		slog.Info("trying to connect to DB", "attempt", i, "max", maxAttempts)

		DB, err = Open(postgres.Open(dsn))
		if err == nil {
			slog.Info("connected to DB successfully")
			break
		}

		slog.Warn("failed to connect to DB", "error", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
	}

	return Setup(DB, admin)
}

func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// Setup — миграции + обязательные сиды (категории и админ).
func Setup(db *gorm.DB, admin AdminSeed) error {
	if err := Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := SeedCategories(db); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := EnsureAdmin(db, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Job{},
		&models.Department{},
		&models.AuditLog{},
	)
}

func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := make([]models.Category, 0, len(models.DefaultCategories))
	for _, name := range models.DefaultCategories {
		categories = append(categories, models.Category{Name: name})
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	slog.Info("initial categories added", "count", len(categories))
	return nil
}

// EnsureAdmin создаёт админа только если в базе нет ни одного.
func EnsureAdmin(db *gorm.DB, seed AdminSeed) error {
	if seed.Email == "" || seed.Password == "" {
		return errors.New("admin email and password are required")
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	admin := models.User{
		Email:        seed.Email,
		PasswordHash: string(hash),
		Name:         seed.Name,
		CityFrom:     seed.City,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	slog.Info("created default admin user", "email", admin.Email, "id", admin.ID)
	return nil
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
