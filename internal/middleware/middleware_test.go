package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"job-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withUser подкладывает пользователя так же, как это делает InjectUser.
func withUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(currentUserCtxKey, user)
		}
		c.Next()
	}
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(r, http.MethodGet, "/", nil)
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	incoming := uuid.NewString()
	w = serve(r, http.MethodGet, "/", http.Header{RequestIDHeader: {incoming}})
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	// мусор в заголовке заменяется
	w = serve(r, http.MethodGet, "/", http.Header{RequestIDHeader: {"<script>"}})
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestRequireAuth(t *testing.T) {
	for _, tc := range []struct {
		name string
		user *models.User
		want int
	}{
		{"anonymous", nil, http.StatusFound},
		{"member", &models.User{ID: 2, Role: models.RoleMember}, http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(withUser(tc.user))
			r.GET("/jobs/new", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := serve(r, http.MethodGet, "/jobs/new", nil)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusFound {
				assert.Equal(t, "/login", w.Header().Get("Location"))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	for _, tc := range []struct {
		name string
		user *models.User
		want int
	}{
		{"anonymous", nil, http.StatusFound},
		{"member", &models.User{ID: 2, Role: models.RoleMember}, http.StatusForbidden},
		{"admin", &models.User{ID: 1, Role: models.RoleAdmin}, http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(withUser(tc.user))
			r.GET("/audit", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

			assert.Equal(t, tc.want, serve(r, http.MethodGet, "/audit", nil).Code)
		})
	}
}

func TestRequireAPIAuth(t *testing.T) {
	for _, tc := range []struct {
		name    string
		enabled bool
		user    *models.User
		want    int
	}{
		{"disabled", false, nil, http.StatusOK},
		{"enabled anonymous", true, nil, http.StatusUnauthorized},
		{"enabled with session", true, &models.User{ID: 1}, http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(withUser(tc.user))
			r.POST("/api/jobs", RequireAPIAuth(tc.enabled), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := serve(r, http.MethodPost, "/api/jobs", nil)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
			}
		})
	}
}
