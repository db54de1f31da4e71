package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"

	"job-tracker/internal/config"
	"job-tracker/internal/database/dbtest"
	"job-tracker/internal/models"
	"job-tracker/internal/server"
	"job-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		SessionSecret: "test-session-secret",
		SessionName:   "jt_session",
		CORSOrigins:   []string{"*"},
		LogLevel:      "error",
		AppEnv:        "test",
	}
}

type testApp struct {
	srv *httptest.Server
	db  *gorm.DB
}

func newTestApp(t *testing.T, tweak ...func(*config.Config)) *testApp {
	t.Helper()

	cfg := testConfig()
	for _, f := range tweak {
		f(cfg)
	}

	db := dbtest.Open(t)
	srv := httptest.NewServer(server.NewRouter(cfg, db))
	t.Cleanup(srv.Close)

	return &testApp{srv: srv, db: db}
}

// client хранит куки между запросами и не ходит по редиректам сам.
func (a *testApp) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type apiResponse struct {
	Status int
	Body   map[string]any
}

func (a *testApp) doJSON(t *testing.T, method, path string, body any) apiResponse {
	t.Helper()
	return a.doJSONAs(t, http.DefaultClient, method, path, body)
}

// doJSONAs шлёт запрос от имени клиента с сессией.
func (a *testApp) doJSONAs(t *testing.T, c *http.Client, method, path string, body any) apiResponse {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := apiResponse{Status: resp.StatusCode}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out.Body))
	return out
}

func (a *testApp) get(t *testing.T, c *http.Client, path string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(a.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (a *testApp) postForm(t *testing.T, c *http.Client, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(a.srv.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (a *testApp) login(t *testing.T, email, password string) *http.Client {
	t.Helper()
	c := a.client(t)
	resp, _ := a.postForm(t, c, "/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
	return c
}

func (a *testApp) loginAdmin(t *testing.T) *http.Client {
	return a.login(t, dbtest.Admin.Email, dbtest.Admin.Password)
}

func (a *testApp) createMember(t *testing.T, email string) *models.User {
	t.Helper()
	pw, name, city := "secret42", "Mark Watney", "Chicago"
	user, err := services.NewUserService(a.db).Create(context.Background(), nil, services.UserInput{
		Email:    &email,
		Password: &pw,
		Name:     &name,
		CityFrom: &city,
	})
	require.NoError(t, err)
	return user
}

func (a *testApp) createJob(t *testing.T, leaderID uint, categories ...uint) *models.Job {
	t.Helper()
	title, size, collab, done := "Deployment of residential modules 1 and 2", 15, "2,3", false
	job, err := services.NewJobService(a.db).Create(context.Background(), nil, services.JobInput{
		JobTitle:      &title,
		TeamLeaderID:  &leaderID,
		WorkSize:      &size,
		Collaborators: &collab,
		IsFinished:    &done,
		SetCategories: categories != nil,
		CategoryIDs:   categories,
	})
	require.NoError(t, err)
	return job
}

func (a *testApp) createDepartment(t *testing.T, chiefID uint) *models.Department {
	t.Helper()
	dep, err := services.NewDepartmentService(a.db).Create(context.Background(), nil, services.DepartmentInput{
		Title:   "Department of geological exploration",
		ChiefID: chiefID,
		Members: "2,3",
		Email:   "geo@mars.org",
	})
	require.NoError(t, err)
	return dep
}

func toStrings(t *testing.T, v any) []string {
	t.Helper()
	items, ok := v.([]any)
	require.True(t, ok, "expected array, got %T", v)
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.(string))
	}
	return out
}

func toIDs(t *testing.T, v any) []float64 {
	t.Helper()
	items, ok := v.([]any)
	require.True(t, ok, "expected array, got %T", v)
	out := make([]float64, 0, len(items))
	for _, it := range items {
		out = append(out, it.(float64))
	}
	return out
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
