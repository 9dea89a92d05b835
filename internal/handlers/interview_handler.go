package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirenest/jobboard-api/internal/dtos"
	"github.com/hirenest/jobboard-api/internal/services"
)

type InterviewHandler struct {
	Service *services.InterviewService
}

func NewInterviewHandler(s *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{Service: s}
}

// Create is POST /interviews
func (h *InterviewHandler) Create(c *gin.Context) {
	var req dtos.InterviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	interview, err := h.Service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Interview created successfully",
		"interview": interview,
	})
}

// Update is PUT /interviews/:id
func (h *InterviewHandler) Update(c *gin.Context) {
	var req dtos.InterviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	interview, err := h.Service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Interview updated successfully",
		"interview": interview,
	})
}

// Delete is DELETE /interviews/:id
func (h *InterviewHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interview deleted successfully"})
}

// GetByID is GET /interviews/:id
func (h *InterviewHandler) GetByID(c *gin.Context) {
	view, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListByUser is GET /interviews/user/:user_id
func (h *InterviewHandler) ListByUser(c *gin.Context) {
	views, err := h.Service.ListByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(views) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No interviews found"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// ListByEmployee is GET /interviews/employee/:employee_id
func (h *InterviewHandler) ListByEmployee(c *gin.Context) {
	views, err := h.Service.ListByEmployee(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(views) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No interviews found"})
		return
	}
	c.JSON(http.StatusOK, views)
}
