package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"job-tracker/internal/dto"
	"job-tracker/internal/services"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindBadRequest:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// reportInternal пишет настоящую причину в лог и Sentry; клиенту она не уходит.
func reportInternal(c *gin.Context, err error) {
	slog.Error("internal error",
		"request_id", c.GetString("request_id"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	} else if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.CaptureException(err)
	}
}

func respondError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	if kind == services.KindInternal {
		reportInternal(c, err)
	}
	c.JSON(statusFor(kind), dto.ErrorResponse{Error: services.PublicMessage(err)})
}

// parseID — некорректный id в пути трактуется как отсутствующая запись.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func bindPayload(c *gin.Context) (services.Payload, bool) {
	var p services.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid JSON body"})
		return nil, false
	}
	if p == nil {
		p = services.Payload{}
	}
	return p, true
}
