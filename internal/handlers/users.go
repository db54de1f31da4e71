package handlers

import (
	"errors"
	"net/http"

	"job-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

// ShowUserHometown — публичная карточка: имя и город.
func (h *Handler) ShowUserHometown(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "Пользователь не найден")
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.String(http.StatusNotFound, "Пользователь не найден")
			return
		}
		reportInternal(c, err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки пользователя")
		return
	}

	render(c, http.StatusOK, "hometown.html", gin.H{
		"user": user,
	})
}
