package handlers

import (
	"net/http"

	"job-tracker/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// render — обёртка над c.HTML, которая во все шаблоны прокидывает
// CurrentUser и накопившиеся flash-сообщения.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = u
		data["IsAdmin"] = u.IsAdmin()
	}

	sess := sessions.Default(c)
	if flashes := sess.Flashes(); len(flashes) > 0 {
		data["Flashes"] = flashes
		_ = sess.Save()
	}

	c.HTML(status, tmpl, data)
}

// flash + redirect, как после успешной отправки формы
func redirectWithFlash(c *gin.Context, location, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
	c.Redirect(http.StatusFound, location)
}
