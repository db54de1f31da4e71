package middleware

import (
	"log/slog"

	"job-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	SessionUserKey    = "user_id"
	currentUserCtxKey = "CurrentUser"
)

// InjectUser кладёт в контекст пользователя из сессии.
// Если пользователя уже нет в базе, сессия очищается.
func InjectUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uid, ok := sess.Get(SessionUserKey).(uint); ok && uid > 0 {
			var user models.User
			if err := db.WithContext(c.Request.Context()).First(&user, uid).Error; err == nil {
				c.Set(currentUserCtxKey, &user)
			} else {
				slog.Info("dropping session of missing user", "user_id", uid, "error", err)
				sess.Clear()
				_ = sess.Save()
			}
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserCtxKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// Login / Logout меняют состояние сессии: anonymous <-> authenticated.
func Login(c *gin.Context, user *models.User) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(SessionUserKey, user.ID)
	return sess.Save()
}

func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	return sess.Save()
}
