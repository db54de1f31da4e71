package server_test

import (
	"net/http"
	"net/url"
	"testing"

	"job-tracker/internal/database/dbtest"
	"job-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	for _, path := range []string{"/", "/departments", "/jobs/new", "/departments/new", "/audit"} {
		resp, _ := app.get(t, c, path)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
}

func TestIndexShowsJobs(t *testing.T) {
	app := newTestApp(t)
	app.createJob(t, 1, 1)
	app.createMember(t, "watney@mars.org")
	c := app.login(t, "watney@mars.org", "secret42")

	resp, body := app.get(t, c, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Deployment of residential modules 1 and 2")
	assert.Contains(t, body, "Engineering")
	// чужую работу участник не редактирует
	assert.NotContains(t, body, "/jobs/1/edit")
}

func TestHometownIsPublic(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	resp, body := app.get(t, c, "/users/1/hometown")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Administrator")
	assert.Contains(t, body, "Moscow")

	resp, _ = app.get(t, c, "/users/99/hometown")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegisterHashesPassword(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	form := url.Values{
		"email":     {"scott@mars.org"},
		"password":  {"ridley1"},
		"name":      {"Ridley Scott"},
		"city_from": {"South Shields"},
	}
	resp, _ := app.postForm(t, c, "/register", form)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	var user models.User
	require.NoError(t, app.db.Where("email = ?", "scott@mars.org").First(&user).Error)
	assert.Equal(t, models.RoleMember, user.Role)
	assert.NotEqual(t, "ridley1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("ridley1")))

	resp, body := app.postForm(t, c, "/register", form)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Пользователь с таким email уже существует.")

	app.login(t, "scott@mars.org", "ridley1")
}

func TestLoginAndLogout(t *testing.T) {
	app := newTestApp(t)

	bad := app.client(t)
	resp, body := app.postForm(t, bad, "/login", url.Values{"email": {dbtest.Admin.Email}, "password": {"wrong"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Неправильный логин или пароль.")

	resp, body = app.postForm(t, bad, "/login", url.Values{"email": {"nobody@mars.org"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Неправильный логин или пароль.")

	c := app.loginAdmin(t)

	// flash после входа показывается один раз
	resp, body = app.get(t, c, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Вы успешно вошли!")
	_, body = app.get(t, c, "/")
	assert.NotContains(t, body, "Вы успешно вошли!")

	resp, _ = app.get(t, c, "/jobs/new")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.get(t, c, "/logout")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = app.get(t, c, "/jobs/new")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestCreateJobFromForm(t *testing.T) {
	app := newTestApp(t)
	c := app.loginAdmin(t)

	form := url.Values{
		"job_title":      {"Exploration of mineral resources"},
		"team_leader_id": {"1"},
		"work_size":      {"15"},
		"collaborators":  {"4,3"},
		"category_ids":   {"2", "3"},
	}
	resp, _ := app.postForm(t, c, "/jobs/new", form)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var job models.Job
	require.NoError(t, app.db.Preload("Categories").First(&job).Error)
	assert.Equal(t, "Exploration of mineral resources", job.JobTitle)
	assert.False(t, job.IsFinished)
	assert.ElementsMatch(t, []uint{2, 3}, job.CategoryIDs())

	form.Set("work_size", "")
	resp, body := app.postForm(t, c, "/jobs/new", form)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Missing required field: work_size")
	// введённые данные остаются в форме
	assert.Contains(t, body, "Exploration of mineral resources")
}

func TestJobEditOnlyLeaderOrAdmin(t *testing.T) {
	app := newTestApp(t)
	job := app.createJob(t, 1, 1)
	app.createMember(t, "watney@mars.org")
	path := "/jobs/" + itoa(job.ID)

	member := app.login(t, "watney@mars.org", "secret42")
	resp, _ := app.get(t, member, path+"/edit")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = app.postForm(t, member, path+"/delete", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = app.get(t, member, "/jobs/999/edit")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	admin := app.loginAdmin(t)
	resp, _ = app.get(t, admin, path+"/edit")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.postForm(t, admin, path+"/edit", url.Values{
		"job_title":      {"Updated title"},
		"team_leader_id": {"1"},
		"work_size":      {"20"},
		"collaborators":  {"2"},
		"is_finished":    {"1"},
		"category_ids":   {"4"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var updated models.Job
	require.NoError(t, app.db.Preload("Categories").First(&updated, job.ID).Error)
	assert.Equal(t, "Updated title", updated.JobTitle)
	assert.True(t, updated.IsFinished)
	assert.Equal(t, []uint{4}, updated.CategoryIDs())

	resp, _ = app.postForm(t, admin, path+"/delete", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.ErrorIs(t, app.db.First(&models.Job{}, job.ID).Error, gorm.ErrRecordNotFound)
}

func TestLeaderManagesOwnJob(t *testing.T) {
	app := newTestApp(t)
	member := app.createMember(t, "watney@mars.org")
	job := app.createJob(t, member.ID)

	c := app.login(t, "watney@mars.org", "secret42")
	_, body := app.get(t, c, "/")
	assert.Contains(t, body, "/jobs/"+itoa(job.ID)+"/edit")

	resp, _ := app.postForm(t, c, "/jobs/"+itoa(job.ID)+"/delete", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestDepartmentPages(t *testing.T) {
	app := newTestApp(t)
	app.createMember(t, "watney@mars.org")
	member := app.login(t, "watney@mars.org", "secret42")

	resp, _ := app.postForm(t, member, "/departments/new", url.Values{
		"title":    {"Department of geological exploration"},
		"chief_id": {"1"},
		"members":  {"2,3"},
		"email":    {"geo@mars.org"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/departments", resp.Header.Get("Location"))

	var dep models.Department
	require.NoError(t, app.db.First(&dep).Error)
	path := "/departments/" + itoa(dep.ID)

	resp, body := app.get(t, member, "/departments")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Департамент успешно добавлен!")
	assert.Contains(t, body, "ge***@mars.org")

	// редактировать может любой вошедший
	resp, _ = app.postForm(t, member, path+"/edit", url.Values{
		"title":    {"Geology"},
		"chief_id": {"1"},
		"members":  {"2"},
		"email":    {"geo@mars.org"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.NoError(t, app.db.First(&dep, dep.ID).Error)
	assert.Equal(t, "Geology", dep.Title)

	resp, body = app.postForm(t, member, path+"/edit", url.Values{"title": {"Geology"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Missing required field: chief_id")

	// удалять — только админ
	resp, body = app.postForm(t, member, path+"/delete", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "У вас нет прав для удаления этого департамента.")

	admin := app.loginAdmin(t)
	resp, _ = app.postForm(t, admin, path+"/delete", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp, _ = app.postForm(t, admin, path+"/delete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuditPageAdminOnly(t *testing.T) {
	app := newTestApp(t)
	app.createMember(t, "watney@mars.org")
	app.createJob(t, 1, 1)

	member := app.login(t, "watney@mars.org", "secret42")
	resp, _ := app.get(t, member, "/audit")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := app.loginAdmin(t)
	resp, body := app.get(t, admin, "/audit")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "job")
	assert.Contains(t, body, "create")
}
