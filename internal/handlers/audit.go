package handlers

import (
	"net/http"

	"job-tracker/internal/database"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs — последние 200 записей, доступ режет RequireRole(admin).
func (h *Handler) ListAuditLogs(c *gin.Context) {
	logs, err := database.ListAuditLogs(h.db.WithContext(c.Request.Context()), 200)
	if err != nil {
		reportInternal(c, err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки журнала")
		return
	}

	render(c, http.StatusOK, "audit_list.html", gin.H{
		"logs": logs,
	})
}
