package services

import (
	"context"
	"errors"
	"strings"

	"job-tracker/internal/database"
	"job-tracker/internal/models"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var validate = validator.New()

type UserInput struct {
	Email    *string
	Password *string
	Name     *string
	CityFrom *string
}

var userRequiredFields = []string{"email", "password", "name", "city_from"}

func DecodeUserInput(p Payload, create bool) (UserInput, error) {
	var in UserInput

	if create {
		if err := p.Require(userRequiredFields...); err != nil {
			return in, err
		}
	}

	fields := []struct {
		name string
		dst  **string
	}{
		{"email", &in.Email},
		{"password", &in.Password},
		{"name", &in.Name},
		{"city_from", &in.CityFrom},
	}
	for _, f := range fields {
		if !p.Has(f.name) {
			continue
		}
		s, err := p.String(f.name)
		if err != nil {
			return in, err
		}
		*f.dst = &s
	}

	return in, nil
}

func (in *UserInput) normalize() {
	for _, s := range []*string{in.Email, in.Name, in.CityFrom} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
}

func (in UserInput) validate(create bool) error {
	if create {
		switch {
		case in.Email == nil:
			return missingField("email")
		case in.Password == nil:
			return missingField("password")
		case in.Name == nil:
			return missingField("name")
		case in.CityFrom == nil:
			return missingField("city_from")
		}
	}
	if in.Email != nil && validate.Var(*in.Email, "required,email") != nil {
		return badRequest("Invalid email address")
	}
	if in.Password != nil && len(*in.Password) < minPasswordLength {
		return badRequest("Password must be at least %d characters", minPasswordLength)
	}
	if in.Name != nil && *in.Name == "" {
		return badRequest("Name cannot be blank")
	}
	if in.CityFrom != nil && *in.CityFrom == "" {
		return badRequest("City from cannot be blank")
	}
	return nil
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func preloadJobIDs(db *gorm.DB) *gorm.DB {
	return db.Preload("Jobs", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "team_leader_id").Order("id asc")
	})
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := preloadJobIDs(s.db.WithContext(ctx)).Order("id asc").Find(&users).Error; err != nil {
		return nil, internal("list users", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := preloadJobIDs(s.db.WithContext(ctx)).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internal("get user", err)
	}
	return &user, nil
}

// Create регистрирует участника. Пароль всегда хешируется.
func (s *UserService) Create(ctx context.Context, actor *models.User, in UserInput) (*models.User, error) {
	in.normalize()
	if err := in.validate(true); err != nil {
		return nil, err
	}

	hash, err := HashPassword(*in.Password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, *in.Email, 0); err != nil {
			return err
		}

		user = models.User{
			Email:        *in.Email,
			PasswordHash: hash,
			Name:         *in.Name,
			CityFrom:     *in.CityFrom,
			Role:         models.RoleMember,
		}
		if err := tx.Create(&user).Error; err != nil {
			return internal("create user", err)
		}

		return database.CreateAuditLog(tx, actorID(actor), models.AuditUser, user.ID, "create", map[string]any{
			"email": user.Email,
		})
	})
	if err != nil {
		return nil, asServiceError("create user", err)
	}

	return s.Get(ctx, user.ID)
}

func (s *UserService) Update(ctx context.Context, actor *models.User, id uint, in UserInput) (*models.User, error) {
	in.normalize()
	if err := in.validate(false); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return internal("load user", err)
		}

		updates := map[string]any{}
		changed := []string{}
		if in.Email != nil {
			if err := ensureEmailFree(tx, *in.Email, user.ID); err != nil {
				return err
			}
			updates["email"] = *in.Email
			changed = append(changed, "email")
		}
		if in.Password != nil {
			hash, err := HashPassword(*in.Password)
			if err != nil {
				return internal("hash password", err)
			}
			updates["password_hash"] = hash
			changed = append(changed, "password")
		}
		if in.Name != nil {
			updates["name"] = *in.Name
			changed = append(changed, "name")
		}
		if in.CityFrom != nil {
			updates["city_from"] = *in.CityFrom
			changed = append(changed, "city_from")
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return internal("update user", err)
		}

		return database.CreateAuditLog(tx, actorID(actor), models.AuditUser, user.ID, "update", map[string]any{
			"fields": changed,
		})
	})
	if err != nil {
		return nil, asServiceError("update user", err)
	}

	return s.Get(ctx, id)
}

// Delete запрещён, пока пользователь руководит работами или департаментами.
func (s *UserService) Delete(ctx context.Context, actor *models.User, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return internal("load user", err)
		}

		var jobs, departments int64
		if err := tx.Model(&models.Job{}).Where("team_leader_id = ?", user.ID).Count(&jobs).Error; err != nil {
			return internal("count led jobs", err)
		}
		if err := tx.Model(&models.Department{}).Where("chief_id = ?", user.ID).Count(&departments).Error; err != nil {
			return internal("count chaired departments", err)
		}
		if jobs > 0 || departments > 0 {
			return ErrUserStillReferenced
		}

		// записи аудита остаются, ссылку на автора обнуляем
		if err := tx.Model(&models.AuditLog{}).Where("user_id = ?", user.ID).Update("user_id", nil).Error; err != nil {
			return internal("detach audit logs", err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return internal("delete user", err)
		}

		actorRef := actorID(actor)
		if actorRef != nil && *actorRef == user.ID {
			actorRef = nil
		}
		return database.CreateAuditLog(tx, actorRef, models.AuditUser, user.ID, "delete", map[string]any{
			"email": user.Email,
		})
	})
	return asServiceError("delete user", err)
}

// Authenticate не различает "нет такого email" и "неверный пароль".
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, internal("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func ensureEmailFree(tx *gorm.DB, email string, exceptID uint) error {
	var count int64
	q := tx.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return internal("check email", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}
