package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/dtos"
	"github.com/hirenest/jobboard-api/internal/services"
)

// respondError translates a service error into the wire contract.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
}

type ApplicationHandler struct {
	Service *services.ApplicationService
}

func NewApplicationHandler(s *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Service: s}
}

// Apply is POST /applied-jobs
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and post_id are required"})
		return
	}
	if err := h.Service.Apply(c.Request.Context(), req.UserID, req.PostID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job application successful"})
}

// Withdraw is DELETE /applied-jobs
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	var req dtos.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and post_id are required"})
		return
	}
	if err := h.Service.Withdraw(c.Request.Context(), req.UserID, req.PostID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job application withdrawn successfully"})
}

// SetStatus is PATCH /applied-jobs/:id/status
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	var req dtos.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}
	if err := h.Service.SetStatus(c.Request.Context(), c.Param("id"), req.Action); err != nil {
		respondError(c, err)
		return
	}
	message := "Candidate shortlisted successfully"
	if req.Action == "disapprove" {
		message = "Candidate unshortlisted successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ListByUser is GET /applied-jobs/user/:user_id
func (h *ApplicationHandler) ListByUser(c *gin.Context) {
	apps, err := h.Service.ListByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ListByPost is GET /applied-jobs/post/:post_id
func (h *ApplicationHandler) ListByPost(c *gin.Context) {
	apps, err := h.Service.ListByPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// CountByUser is GET /applied-jobs/user/:user_id/count
func (h *ApplicationHandler) CountByUser(c *gin.Context) {
	count, err := h.Service.CountByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalApplications": count})
}

// CountByPost is GET /applied-jobs/post/:post_id/count
func (h *ApplicationHandler) CountByPost(c *gin.Context) {
	count, err := h.Service.CountByPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

// ListAll is GET /applied-jobs
func (h *ApplicationHandler) ListAll(c *gin.Context) {
	apps, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ListAllWithDetails is GET /applied-jobs/details
func (h *ApplicationHandler) ListAllWithDetails(c *gin.Context) {
	details, err := h.Service.ListAllWithDetails(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Validate is POST /applied-jobs/validate
func (h *ApplicationHandler) Validate(c *gin.Context) {
	var req dtos.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and post_id are required"})
		return
	}
	if err := h.Service.ValidatePair(c.Request.Context(), req.UserID, req.PostID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"valid": false})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// MarkSeen is PATCH /applied-jobs/seen
func (h *ApplicationHandler) MarkSeen(c *gin.Context) {
	var req dtos.SeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post_id is required"})
		return
	}
	if err := h.Service.MarkSeen(c.Request.Context(), req.PostID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "message": "Seen status updated"})
}

// Shortlisted is GET /applied-jobs/shortlisted/:user_id
func (h *ApplicationHandler) Shortlisted(c *gin.Context) {
	apps, err := h.Service.ShortlistedCandidates(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ShortlistedCount is GET /applied-jobs/shortlisted/:user_id/count
func (h *ApplicationHandler) ShortlistedCount(c *gin.Context) {
	count, err := h.Service.ShortlistedCount(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalShortlisted": count})
}

// JobsByUser is GET /jobs/user/:user_id
func (h *ApplicationHandler) JobsByUser(c *gin.Context) {
	jobs, err := h.Service.JobsByOwner(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}
