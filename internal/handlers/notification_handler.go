package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirenest/jobboard-api/internal/dtos"
	"github.com/hirenest/jobboard-api/internal/services"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(s *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: s}
}

// ListAll is GET /notifications
func (h *NotificationHandler) ListAll(c *gin.Context) {
	logs, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GetByID is GET /notifications/:id
func (h *NotificationHandler) GetByID(c *gin.Context) {
	log, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// CandidateFeed is GET /notifications/candidate/:id
func (h *NotificationHandler) CandidateFeed(c *gin.Context) {
	feed, err := h.Service.CandidateFeed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Candidate notifications fetched successfully.",
		"data":    feed,
	})
}

// EmployerFeed is GET /notifications/employer/:id
func (h *NotificationHandler) EmployerFeed(c *gin.Context) {
	feed, err := h.Service.EmployerFeed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Employer notifications fetched successfully.",
		"data":    feed,
	})
}

// MarkRead is PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req dtos.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	if err := h.Service.MarkRead(c.Request.Context(), c.Param("id"), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email status updated successfully"})
}
