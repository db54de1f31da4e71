package services

import (
	"context"
	"errors"
	"strings"

	"job-tracker/internal/database"
	"job-tracker/internal/models"

	"gorm.io/gorm"
)

// JobInput — провалидированные поля работы. nil — поле не передано.
type JobInput struct {
	JobTitle      *string
	TeamLeaderID  *uint
	WorkSize      *int
	Collaborators *string
	IsFinished    *bool

	// SetCategories отличает "категории не трогаем" от "очистить категории".
	SetCategories bool
	CategoryIDs   []uint
}

var jobRequiredFields = []string{"job_title", "team_leader_id", "work_size", "collaborators"}

// DecodeJobInput разбирает JSON-тело. Для создания сначала проверяется
// наличие обязательных полей, потом типы.
func DecodeJobInput(p Payload, create bool) (JobInput, error) {
	var in JobInput

	if create {
		if err := p.Require(jobRequiredFields...); err != nil {
			return in, err
		}
	}

	if p.Has("job_title") {
		s, err := p.String("job_title")
		if err != nil {
			return in, err
		}
		in.JobTitle = &s
	}
	if p.Has("team_leader_id") {
		n, err := p.Int("team_leader_id")
		if err != nil {
			return in, err
		}
		if n <= 0 {
			return in, ErrTeamLeaderNotFound
		}
		id := uint(n)
		in.TeamLeaderID = &id
	}
	if p.Has("work_size") {
		n, err := p.Int("work_size")
		if err != nil {
			return in, err
		}
		in.WorkSize = &n
	}
	if p.Has("collaborators") {
		s, err := p.String("collaborators")
		if err != nil {
			return in, err
		}
		in.Collaborators = &s
	}
	if p.Has("is_finished") {
		b, err := p.Bool("is_finished")
		if err != nil {
			return in, err
		}
		in.IsFinished = &b
	}

	// category_ids — основное имя, categories — старое
	for _, key := range []string{"category_ids", "categories"} {
		if !p.Has(key) {
			continue
		}
		ids, err := p.IDList(key)
		if err != nil {
			return in, err
		}
		in.SetCategories = true
		in.CategoryIDs = ids
		break
	}

	return in, nil
}

func (in JobInput) validate(create bool) error {
	if create {
		switch {
		case in.JobTitle == nil:
			return missingField("job_title")
		case in.TeamLeaderID == nil:
			return missingField("team_leader_id")
		case in.WorkSize == nil:
			return missingField("work_size")
		case in.Collaborators == nil:
			return missingField("collaborators")
		}
	}
	if in.JobTitle != nil && strings.TrimSpace(*in.JobTitle) == "" {
		return badRequest("Job title cannot be blank")
	}
	if in.WorkSize != nil && *in.WorkSize < 0 {
		return badRequest("Work size must not be negative")
	}
	return nil
}

type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

func preloadCategories(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("categories.id asc")
	})
}

func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := preloadCategories(s.db.WithContext(ctx)).Order("id asc").Find(&jobs).Error; err != nil {
		return nil, internal("list jobs", err)
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := preloadCategories(s.db.WithContext(ctx)).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, internal("get job", err)
	}
	return &job, nil
}

func (s *JobService) Create(ctx context.Context, actor *models.User, in JobInput) (*models.Job, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}

	var job models.Job
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, *in.TeamLeaderID, ErrTeamLeaderNotFound); err != nil {
			return err
		}

		var categories []models.Category
		if in.SetCategories {
			var err error
			if categories, err = resolveCategories(tx, in.CategoryIDs); err != nil {
				return err
			}
		}

		job = models.Job{
			JobTitle:      strings.TrimSpace(*in.JobTitle),
			TeamLeaderID:  *in.TeamLeaderID,
			WorkSize:      *in.WorkSize,
			Collaborators: *in.Collaborators,
			Categories:    categories,
		}
		if in.IsFinished != nil {
			job.IsFinished = *in.IsFinished
		}

		// сами категории не пересохраняем, только строки в job_categories
		if err := tx.Omit("Categories.*").Create(&job).Error; err != nil {
			return internal("create job", err)
		}

		return database.CreateAuditLog(tx, actorID(actor), models.AuditJob, job.ID, "create", map[string]any{
			"job_title":    job.JobTitle,
			"category_ids": job.CategoryIDs(),
		})
	})
	if err != nil {
		return nil, asServiceError("create job", err)
	}

	return s.Get(ctx, job.ID)
}

// Update меняет только переданные поля; категории, если переданы,
// заменяются целиком. Вошедший пользователь должен быть тимлидом или админом.
func (s *JobService) Update(ctx context.Context, actor *models.User, id uint, in JobInput) (*models.Job, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return internal("load job", err)
		}
		if !mayManage(actor, job) {
			return ErrForbidden
		}

		updates := map[string]any{}
		if in.JobTitle != nil {
			updates["job_title"] = strings.TrimSpace(*in.JobTitle)
		}
		if in.TeamLeaderID != nil {
			if err := ensureUserExists(tx, *in.TeamLeaderID, ErrTeamLeaderNotFound); err != nil {
				return err
			}
			updates["team_leader_id"] = *in.TeamLeaderID
		}
		if in.WorkSize != nil {
			updates["work_size"] = *in.WorkSize
		}
		if in.Collaborators != nil {
			updates["collaborators"] = *in.Collaborators
		}
		if in.IsFinished != nil {
			updates["is_finished"] = *in.IsFinished
		}

		var categories []models.Category
		if in.SetCategories {
			var err error
			if categories, err = resolveCategories(tx, in.CategoryIDs); err != nil {
				return err
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&job).Updates(updates).Error; err != nil {
				return internal("update job", err)
			}
		}

		details := map[string]any{}
		for k, v := range updates {
			details[k] = v
		}

		if in.SetCategories {
			assoc := tx.Model(&job).Association("Categories")
			var err error
			if len(categories) == 0 {
				err = assoc.Clear()
			} else {
				err = assoc.Replace(categories)
			}
			if err != nil {
				return internal("replace job categories", err)
			}
			details["category_ids"] = in.CategoryIDs
		}

		return database.CreateAuditLog(tx, actorID(actor), models.AuditJob, job.ID, "update", details)
	})
	if err != nil {
		return nil, asServiceError("update job", err)
	}

	return s.Get(ctx, id)
}

// Delete удаляет работу вместе со строками job_categories.
func (s *JobService) Delete(ctx context.Context, actor *models.User, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return internal("load job", err)
		}
		if !mayManage(actor, job) {
			return ErrForbidden
		}

		if err := tx.Model(&job).Association("Categories").Clear(); err != nil {
			return internal("clear job categories", err)
		}
		if err := tx.Delete(&job).Error; err != nil {
			return internal("delete job", err)
		}

		return database.CreateAuditLog(tx, actorID(actor), models.AuditJob, job.ID, "delete", map[string]any{
			"job_title": job.JobTitle,
		})
	})
	return asServiceError("delete job", err)
}

// CanManageJob — редактировать и удалять работу может тимлид или админ.
func CanManageJob(user models.User, job models.Job) bool {
	return user.IsAdmin() || user.ID == job.TeamLeaderID
}

// без сессии (открытый API) проверять некого; с сессией действует то же правило, что и на страницах
func mayManage(actor *models.User, job models.Job) bool {
	return actor == nil || CanManageJob(*actor, job)
}

// resolveCategories проверяет, что все id существуют; дубликаты схлопываются.
func resolveCategories(tx *gorm.DB, ids []uint) ([]models.Category, error) {
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return []models.Category{}, nil
	}

	var categories []models.Category
	if err := tx.Where("id IN ?", unique).Order("id asc").Find(&categories).Error; err != nil {
		return nil, internal("load categories", err)
	}
	if len(categories) != len(unique) {
		return nil, ErrUnknownCategoryIDs
	}
	return categories, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func ensureUserExists(tx *gorm.DB, id uint, notFound *Error) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return internal("check user", err)
	}
	if count == 0 {
		return notFound
	}
	return nil
}

func actorID(actor *models.User) *uint {
	if actor == nil || actor.ID == 0 {
		return nil
	}
	id := actor.ID
	return &id
}
