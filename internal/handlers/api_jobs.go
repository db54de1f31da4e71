package handlers

import (
	"net/http"

	"job-tracker/internal/dto"
	"job-tracker/internal/middleware"
	"job-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) APIListJobs(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewJobListResponse(jobs))
}

func (h *Handler) APIGetJob(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrJobNotFound)
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.JobEnvelope{Job: dto.NewJobResponse(*job)})
}

func (h *Handler) APICreateJob(c *gin.Context) {
	p, ok := bindPayload(c)
	if !ok {
		return
	}

	in, err := services.DecodeJobInput(p, true)
	if err != nil {
		respondError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	job, err := h.jobs.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.JobEnvelope{Success: true, Job: dto.NewJobResponse(*job)})
}

func (h *Handler) APIUpdateJob(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrJobNotFound)
		return
	}
	p, ok := bindPayload(c)
	if !ok {
		return
	}

	in, err := services.DecodeJobInput(p, false)
	if err != nil {
		respondError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	job, err := h.jobs.Update(c.Request.Context(), actor, id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobEnvelope{
		Success: true,
		Message: "Job updated successfully",
		Job:     dto.NewJobResponse(*job),
	})
}

func (h *Handler) APIDeleteJob(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrJobNotFound)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	if err := h.jobs.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Job deleted successfully"})
}
