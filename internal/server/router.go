package server

import (
	"html/template"
	"net/http"
	"strings"

	"job-tracker/internal/config"
	"job-tracker/internal/handlers"
	"job-tracker/internal/middleware"
	"job-tracker/internal/models"
	"job-tracker/web"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API смонтирован под обоими префиксами: старые клиенты ходят в /api, новые в /api/v2.
var apiPrefixes = []string{"/api", "/api/v2"}

func maskEmail(email string) string {
	runes := []rune(email)
	atIdx := -1
	for i, r := range runes {
		if r == '@' {
			atIdx = i
			break
		}
	}
	if atIdx <= 0 {
		return "***"
	}
	prefix := runes[:atIdx]
	domain := string(runes[atIdx:])
	if len(prefix) <= 2 {
		return string(prefix) + "***" + domain
	}
	return string(prefix[:2]) + "***" + domain
}

func templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"maskEmail": maskEmail,
		"join":      strings.Join,
	}).ParseFS(web.Templates, "templates/*.html"))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()

	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.SetHTMLTemplate(templates())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.SessionName, store))

	r.Use(middleware.InjectUser(db))

	h := handlers.New(db)

	// публичная карточка пользователя
	r.GET("/users/:id/hometown", h.ShowUserHometown)

	// AUTH
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// ГЛАВНАЯ
	auth.GET("/", h.IndexPage)

	// РАБОТЫ — права тимлида/админа проверяются в хендлерах
	auth.GET("/jobs/new", h.ShowNewJob)
	auth.POST("/jobs/new", h.CreateJob)
	auth.GET("/jobs/:id/edit", h.ShowEditJob)
	auth.POST("/jobs/:id/edit", h.UpdateJob)
	auth.POST("/jobs/:id/delete", h.DeleteJob)

	// ДЕПАРТАМЕНТЫ
	auth.GET("/departments", h.ListDepartments)
	auth.GET("/departments/new", h.ShowNewDepartment)
	auth.POST("/departments/new", h.CreateDepartment)
	auth.GET("/departments/:id/edit", h.ShowEditDepartment)
	auth.POST("/departments/:id/edit", h.UpdateDepartment)
	// удаление — только админ, проверка в сервисе
	auth.POST("/departments/:id/delete", h.DeleteDepartment)

	// АУДИТ
	auth.GET("/audit",
		middleware.RequireRole(models.RoleAdmin),
		h.ListAuditLogs,
	)

	// JSON API
	for _, prefix := range apiPrefixes {
		api := r.Group(prefix)
		mutate := middleware.RequireAPIAuth(cfg.APIRequireAuth)

		api.GET("/jobs", h.APIListJobs)
		api.GET("/jobs/:id", h.APIGetJob)
		api.POST("/jobs", mutate, h.APICreateJob)
		api.PUT("/jobs/:id", mutate, h.APIUpdateJob)
		api.DELETE("/jobs/:id", mutate, h.APIDeleteJob)

		api.GET("/users", h.APIListUsers)
		api.GET("/users/:id", h.APIGetUser)
		api.POST("/users", mutate, h.APICreateUser)
		api.PUT("/users/:id", mutate, h.APIUpdateUser)
		api.DELETE("/users/:id", mutate, h.APIDeleteUser)

		api.GET("/categories", h.APIListCategories)
		api.GET("/departments", h.APIListDepartments)
		api.GET("/departments/:id", h.APIGetDepartment)
	}

	// HEALTHCHECK
	r.GET("/health", h.Health)

	return r
}
