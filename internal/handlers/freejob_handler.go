package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirenest/jobboard-api/internal/dtos"
	"github.com/hirenest/jobboard-api/internal/services"
)

type FreeJobHandler struct {
	Service *services.FreeJobService
}

func NewFreeJobHandler(s *services.FreeJobService) *FreeJobHandler {
	return &FreeJobHandler{Service: s}
}

// List is GET /free-jobs
func (h *FreeJobHandler) List(c *gin.Context) {
	jobs, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": jobs})
}

// Post is POST /free-jobs
func (h *FreeJobHandler) Post(c *gin.Context) {
	var req dtos.FreeJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	job, err := h.Service.Post(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Free job posted successfully",
		"data":    job,
	})
}
