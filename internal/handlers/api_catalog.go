package handlers

import (
	"net/http"

	"job-tracker/internal/dto"
	"job-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) APIListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryListResponse(categories))
}

func (h *Handler) APIListDepartments(c *gin.Context) {
	departments, err := h.departments.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDepartmentListResponse(departments))
}

func (h *Handler) APIGetDepartment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrDepartmentNotFound)
		return
	}

	department, err := h.departments.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DepartmentEnvelope{Department: dto.NewDepartmentResponse(*department)})
}
