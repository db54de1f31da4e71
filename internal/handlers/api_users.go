package handlers

import (
	"net/http"

	"job-tracker/internal/dto"
	"job-tracker/internal/middleware"
	"job-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) APIListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

func (h *Handler) APIGetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrUserNotFound)
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserEnvelope{User: dto.NewUserResponse(*user)})
}

func (h *Handler) APICreateUser(c *gin.Context) {
	p, ok := bindPayload(c)
	if !ok {
		return
	}

	in, err := services.DecodeUserInput(p, true)
	if err != nil {
		respondError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	user, err := h.users.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UserEnvelope{Success: true, User: dto.NewUserResponse(*user)})
}

func (h *Handler) APIUpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrUserNotFound)
		return
	}
	p, ok := bindPayload(c)
	if !ok {
		return
	}

	in, err := services.DecodeUserInput(p, false)
	if err != nil {
		respondError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	user, err := h.users.Update(c.Request.Context(), actor, id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserEnvelope{
		Success: true,
		Message: "User updated successfully",
		User:    dto.NewUserResponse(*user),
	})
}

func (h *Handler) APIDeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrUserNotFound)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	if err := h.users.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "User deleted successfully"})
}
