package handlers

import (
	"net/http"

	"job-tracker/internal/middleware"
	"job-tracker/internal/models"
	"job-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

type jobRow struct {
	Job       models.Job
	Leader    string
	CanManage bool
}

// IndexPage — список работ с именами тимлидов.
func (h *Handler) IndexPage(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	jobs, err := h.jobs.List(c.Request.Context())
	if err != nil {
		reportInternal(c, err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки работ")
		return
	}

	names, err := h.userNames(c)
	if err != nil {
		reportInternal(c, err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки пользователей")
		return
	}

	rows := make([]jobRow, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, jobRow{
			Job:       j,
			Leader:    names[j.TeamLeaderID],
			CanManage: user != nil && services.CanManageJob(*user, j),
		})
	}

	render(c, http.StatusOK, "index.html", gin.H{"jobs": rows})
}

func (h *Handler) userNames(c *gin.Context) (map[uint]string, error) {
	var users []models.User
	if err := h.db.WithContext(c.Request.Context()).Select("id", "name").Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

// список для выпадающих меню (тимлид / начальник департамента)
func (h *Handler) userChoices(c *gin.Context) ([]models.User, error) {
	var users []models.User
	if err := h.db.WithContext(c.Request.Context()).Select("id", "name").Order("name asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
