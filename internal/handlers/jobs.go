package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"job-tracker/internal/middleware"
	"job-tracker/internal/models"
	"job-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

//
// ФОРМА РАБОТЫ (создание и редактирование)
//

func jsonValue(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// jobInputFromForm прогоняет форму через ту же валидацию, что и JSON API.
func jobInputFromForm(c *gin.Context) (services.JobInput, error) {
	p := services.Payload{}
	for _, field := range []string{"job_title", "team_leader_id", "work_size", "collaborators"} {
		if v := strings.TrimSpace(c.PostForm(field)); v != "" {
			p[field] = jsonValue(v)
		}
	}
	p["is_finished"] = jsonValue(c.PostForm("is_finished") != "")

	ids := []int{}
	for _, raw := range c.PostFormArray("category_ids") {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return services.JobInput{}, services.ErrInvalidCategoryIDs
		}
		ids = append(ids, n)
	}
	p["category_ids"] = jsonValue(ids)

	return services.DecodeJobInput(p, true)
}

func (h *Handler) renderJobForm(c *gin.Context, status int, title, action string, job models.Job, errMsg string) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		reportInternal(c, err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки категорий")
		return
	}
	users, err := h.userChoices(c)
	if err != nil {
		reportInternal(c, err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки пользователей")
		return
	}
	render(c, status, "job_form.html", gin.H{
		"title":      title,
		"action":     action,
		"job":        job,
		"users":      users,
		"categories": categories,
		"error":      errMsg,
	})
}

// форма заполняется тем, что ввёл пользователь, чтобы не терять данные при ошибке
func jobFromForm(c *gin.Context) models.Job {
	job := models.Job{
		JobTitle:      c.PostForm("job_title"),
		Collaborators: c.PostForm("collaborators"),
		IsFinished:    c.PostForm("is_finished") != "",
	}
	if id, err := strconv.Atoi(c.PostForm("team_leader_id")); err == nil && id > 0 {
		job.TeamLeaderID = uint(id)
	}
	if n, err := strconv.Atoi(c.PostForm("work_size")); err == nil {
		job.WorkSize = n
	}
	for _, raw := range c.PostFormArray("category_ids") {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			job.Categories = append(job.Categories, models.Category{ID: uint(id)})
		}
	}
	return job
}

func formError(c *gin.Context, err error) (int, string) {
	kind := services.KindOf(err)
	if kind == services.KindInternal {
		reportInternal(c, err)
	}
	return statusFor(kind), services.PublicMessage(err)
}

//
// СОЗДАНИЕ
//

func (h *Handler) ShowNewJob(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	h.renderJobForm(c, http.StatusOK, "Add Job", "/jobs/new", models.Job{TeamLeaderID: user.ID}, "")
}

func (h *Handler) CreateJob(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	in, err := jobInputFromForm(c)
	if err == nil {
		_, err = h.jobs.Create(c.Request.Context(), user, in)
	}
	if err != nil {
		status, msg := formError(c, err)
		h.renderJobForm(c, status, "Add Job", "/jobs/new", jobFromForm(c), msg)
		return
	}

	redirectWithFlash(c, "/", "Работа успешно добавлена!")
}

//
// РЕДАКТИРОВАНИЕ / УДАЛЕНИЕ — только тимлид или админ
//

// loadManagedJob отвечает сам и возвращает false, если дальше идти нельзя.
func (h *Handler) loadManagedJob(c *gin.Context, denied string) (*models.Job, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "Работа не найдена")
		return nil, false
	}

	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			c.String(http.StatusNotFound, "Работа не найдена")
		} else {
			reportInternal(c, err)
			c.String(http.StatusInternalServerError, "Ошибка загрузки работы")
		}
		return nil, false
	}

	user, _ := middleware.CurrentUser(c)
	if !services.CanManageJob(*user, *job) {
		c.String(http.StatusForbidden, denied)
		return nil, false
	}
	return job, true
}

func (h *Handler) ShowEditJob(c *gin.Context) {
	job, ok := h.loadManagedJob(c, "У вас нет прав для редактирования этой работы.")
	if !ok {
		return
	}
	h.renderJobForm(c, http.StatusOK, "Edit Job", "/jobs/"+strconv.FormatUint(uint64(job.ID), 10)+"/edit", *job, "")
}

func (h *Handler) UpdateJob(c *gin.Context) {
	job, ok := h.loadManagedJob(c, "У вас нет прав для редактирования этой работы.")
	if !ok {
		return
	}
	action := "/jobs/" + strconv.FormatUint(uint64(job.ID), 10) + "/edit"
	user, _ := middleware.CurrentUser(c)

	// форма присылает все поля, поэтому набор категорий всегда заменяется
	in, err := jobInputFromForm(c)
	if err == nil {
		_, err = h.jobs.Update(c.Request.Context(), user, job.ID, in)
	}
	if err != nil {
		status, msg := formError(c, err)
		edited := jobFromForm(c)
		edited.ID = job.ID
		h.renderJobForm(c, status, "Edit Job", action, edited, msg)
		return
	}

	redirectWithFlash(c, "/", "Работа успешно обновлена!")
}

func (h *Handler) DeleteJob(c *gin.Context) {
	job, ok := h.loadManagedJob(c, "У вас нет прав для удаления этой работы.")
	if !ok {
		return
	}
	user, _ := middleware.CurrentUser(c)

	if err := h.jobs.Delete(c.Request.Context(), user, job.ID); err != nil {
		status, msg := formError(c, err)
		c.String(status, msg)
		return
	}

	redirectWithFlash(c, "/", "Работа успешно удалена!")
}
