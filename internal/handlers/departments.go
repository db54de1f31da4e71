package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"job-tracker/internal/middleware"
	"job-tracker/internal/models"
	"job-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListDepartments(c *gin.Context) {
	departments, err := h.departments.List(c.Request.Context())
	if err != nil {
		reportInternal(c, err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки департаментов")
		return
	}

	render(c, http.StatusOK, "departments.html", gin.H{
		"departments": departments,
	})
}

type departmentForm struct {
	Title   string `form:"title"`
	ChiefID uint   `form:"chief_id"`
	Members string `form:"members"`
	Email   string `form:"email"`
}

func (f departmentForm) input() services.DepartmentInput {
	return services.DepartmentInput{
		Title:   f.Title,
		ChiefID: f.ChiefID,
		Members: f.Members,
		Email:   f.Email,
	}
}

func (f departmentForm) model() models.Department {
	return models.Department{
		Title:   f.Title,
		ChiefID: f.ChiefID,
		Members: f.Members,
		Email:   f.Email,
	}
}

func (h *Handler) renderDepartmentForm(c *gin.Context, status int, title, action string, dep models.Department, errMsg string) {
	users, err := h.userChoices(c)
	if err != nil {
		reportInternal(c, err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки пользователей")
		return
	}
	render(c, status, "department_form.html", gin.H{
		"title":      title,
		"action":     action,
		"department": dep,
		"users":      users,
		"error":      errMsg,
	})
}

//
// СОЗДАНИЕ
//

func (h *Handler) ShowNewDepartment(c *gin.Context) {
	h.renderDepartmentForm(c, http.StatusOK, "Add Department", "/departments/new", models.Department{}, "")
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var form departmentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderDepartmentForm(c, http.StatusBadRequest, "Add Department", "/departments/new", form.model(), "Некорректные данные")
		return
	}

	user, _ := middleware.CurrentUser(c)
	if _, err := h.departments.Create(c.Request.Context(), user, form.input()); err != nil {
		status, msg := formError(c, err)
		h.renderDepartmentForm(c, status, "Add Department", "/departments/new", form.model(), msg)
		return
	}

	redirectWithFlash(c, "/departments", "Департамент успешно добавлен!")
}

//
// РЕДАКТИРОВАНИЕ — любой авторизованный пользователь
//

func (h *Handler) loadDepartment(c *gin.Context) (*models.Department, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "Департамент не найден")
		return nil, false
	}

	dep, err := h.departments.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDepartmentNotFound) {
			c.String(http.StatusNotFound, "Департамент не найден")
		} else {
			reportInternal(c, err)
			c.String(http.StatusInternalServerError, "Ошибка загрузки департамента")
		}
		return nil, false
	}
	return dep, true
}

func departmentEditPath(id uint) string {
	return "/departments/" + strconv.FormatUint(uint64(id), 10) + "/edit"
}

func (h *Handler) ShowEditDepartment(c *gin.Context) {
	dep, ok := h.loadDepartment(c)
	if !ok {
		return
	}
	h.renderDepartmentForm(c, http.StatusOK, "Edit Department", departmentEditPath(dep.ID), *dep, "")
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	dep, ok := h.loadDepartment(c)
	if !ok {
		return
	}

	var form departmentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderDepartmentForm(c, http.StatusBadRequest, "Edit Department", departmentEditPath(dep.ID), *dep, "Некорректные данные")
		return
	}

	user, _ := middleware.CurrentUser(c)
	if _, err := h.departments.Update(c.Request.Context(), user, dep.ID, form.input()); err != nil {
		status, msg := formError(c, err)
		edited := form.model()
		edited.ID = dep.ID
		h.renderDepartmentForm(c, status, "Edit Department", departmentEditPath(dep.ID), edited, msg)
		return
	}

	redirectWithFlash(c, "/departments", "Департамент успешно обновлен!")
}

//
// УДАЛЕНИЕ — только админ
//

func (h *Handler) DeleteDepartment(c *gin.Context) {
	dep, ok := h.loadDepartment(c)
	if !ok {
		return
	}

	user, _ := middleware.CurrentUser(c)
	if err := h.departments.Delete(c.Request.Context(), user, dep.ID); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			c.String(http.StatusForbidden, "У вас нет прав для удаления этого департамента.")
			return
		}
		status, msg := formError(c, err)
		c.String(status, msg)
		return
	}

	redirectWithFlash(c, "/departments", "Департамент успешно удален!")
}
