package auditlog

import (
	"net/http"

	"inventory/internal/repository"

	"github.com/gin-gonic/gin"
)

// Resource types that carry an audit trail.
var knownResourceTypes = map[string]bool{
	"item":             true,
	"checkout":         true,
	"checkout_history": true,
}

type AuditHandler struct {
	repository *repository.Repository
}

func NewAuditHandler(r *repository.Repository) *AuditHandler {
	return &AuditHandler{repository: r}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit/:resource_type/:resource_id", h.GetResourceLog)
}

type resourceLogURI struct {
	ResourceType string `uri:"resource_type" binding:"required"`
	ResourceID   int    `uri:"resource_id" binding:"required"`
}

// GetResourceLog lists the audit trail of a single resource, newest first.
func (h *AuditHandler) GetResourceLog(c *gin.Context) {
	var uri resourceLogURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters"})
		return
	}
	if !knownResourceTypes[uri.ResourceType] {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown resource type"})
		return
	}

	logs, err := h.repository.GetResourceLog(uri.ResourceID, uri.ResourceType)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"resource_type": uri.ResourceType,
		"resource_id":   uri.ResourceID,
		"total_entries": len(logs),
		"entries":       logs,
	})
}
