package services

import (
	"context"
	"errors"
	"strings"

	"job-tracker/internal/database"
	"job-tracker/internal/models"

	"gorm.io/gorm"
)

// DepartmentInput приходит только из форм, поэтому все поля обязательны.
type DepartmentInput struct {
	Title   string
	ChiefID uint
	Members string
	Email   string
}

func (in *DepartmentInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Members = strings.TrimSpace(in.Members)
	in.Email = strings.TrimSpace(in.Email)
}

func (in DepartmentInput) validate() error {
	switch {
	case in.Title == "":
		return missingField("title")
	case in.ChiefID == 0:
		return missingField("chief_id")
	case in.Members == "":
		return missingField("members")
	case in.Email == "":
		return missingField("email")
	}
	if validate.Var(in.Email, "email") != nil {
		return badRequest("Invalid email address")
	}
	return nil
}

type DepartmentService struct {
	db *gorm.DB
}

func NewDepartmentService(db *gorm.DB) *DepartmentService {
	return &DepartmentService{db: db}
}

func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := s.db.WithContext(ctx).Preload("Chief").Order("id asc").Find(&departments).Error; err != nil {
		return nil, internal("list departments", err)
	}
	return departments, nil
}

func (s *DepartmentService) Get(ctx context.Context, id uint) (*models.Department, error) {
	var department models.Department
	if err := s.db.WithContext(ctx).Preload("Chief").First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, internal("get department", err)
	}
	return &department, nil
}

func (s *DepartmentService) Create(ctx context.Context, actor *models.User, in DepartmentInput) (*models.Department, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	department := models.Department{
		Title:   in.Title,
		ChiefID: in.ChiefID,
		Members: in.Members,
		Email:   in.Email,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, in.ChiefID, ErrChiefNotFound); err != nil {
			return err
		}
		if err := tx.Create(&department).Error; err != nil {
			return internal("create department", err)
		}
		return database.CreateAuditLog(tx, actorID(actor), models.AuditDepartment, department.ID, "create", map[string]any{
			"title": department.Title,
		})
	})
	if err != nil {
		return nil, asServiceError("create department", err)
	}

	return s.Get(ctx, department.ID)
}

// Update доступен любому авторизованному пользователю.
func (s *DepartmentService) Update(ctx context.Context, actor *models.User, id uint, in DepartmentInput) (*models.Department, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var department models.Department
		if err := tx.First(&department, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartmentNotFound
			}
			return internal("load department", err)
		}
		if err := ensureUserExists(tx, in.ChiefID, ErrChiefNotFound); err != nil {
			return err
		}

		err := tx.Model(&department).Updates(map[string]any{
			"title":    in.Title,
			"chief_id": in.ChiefID,
			"members":  in.Members,
			"email":    in.Email,
		}).Error
		if err != nil {
			return internal("update department", err)
		}
		return database.CreateAuditLog(tx, actorID(actor), models.AuditDepartment, department.ID, "update", map[string]any{
			"title": in.Title,
		})
	})
	if err != nil {
		return nil, asServiceError("update department", err)
	}

	return s.Get(ctx, id)
}

// Delete — только для админа.
func (s *DepartmentService) Delete(ctx context.Context, actor *models.User, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var department models.Department
		if err := tx.First(&department, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartmentNotFound
			}
			return internal("load department", err)
		}
		if !CanDeleteDepartment(actor) {
			return ErrForbidden
		}
		if err := tx.Delete(&department).Error; err != nil {
			return internal("delete department", err)
		}
		return database.CreateAuditLog(tx, actorID(actor), models.AuditDepartment, department.ID, "delete", map[string]any{
			"title": department.Title,
		})
	})
	return asServiceError("delete department", err)
}

func CanDeleteDepartment(user *models.User) bool {
	return user != nil && user.IsAdmin()
}
