package checkout

import (
	"net/http"

	"inventory/pkg/auditlog"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 50

// AuditLogger matches auditlog.Auditlog.Log so tests can swap in a mock.
type AuditLogger interface {
	Log(action string, data interface{}, item auditlog.Auditable)
}

type CheckoutHandler struct {
	service  Service
	auditLog AuditLogger
}

func NewCheckoutHandler(service Service, auditLog AuditLogger) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		auditLog: auditLog,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkout", h.Checkout)
	router.POST("/checkout/checkin", h.Checkin)
	router.GET("/checkout/active", h.ActiveCheckouts)
	router.GET("/checkout/overdue", h.OverdueCheckouts)
	router.GET("/checkout/user/:ldap", h.UserHistory)
	router.GET("/checkout/item/:item_id/history", h.ItemHistory)
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	created, err := h.service.Checkout(req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	go h.auditLog.Log(
		"checkout",
		map[string]interface{}{
			"item_id":  created.ItemID,
			"user_id":  created.UserID,
			"quantity": created.Quantity,
			"msg":      "Item checked out",
		},
		created,
	)

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Item checked out successfully",
		"checkout": created,
	})
}

func (h *CheckoutHandler) Checkin(c *gin.Context) {
	var req CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	record, err := h.service.Checkin(req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	go h.auditLog.Log(
		"checkin",
		map[string]interface{}{
			"checkout_id": record.CheckoutID,
			"item_id":     record.ItemID,
			"quantity":    record.Quantity,
			"late_return": record.LateReturn,
			"msg":         "Item checked in",
		},
		record,
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item checked in successfully",
		"history": record,
	})
}

func (h *CheckoutHandler) ActiveCheckouts(c *gin.Context) {
	var query ActiveQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	checkouts, err := h.service.ActiveCheckouts(ActiveFilter{UserID: query.UserID, ItemID: query.ItemID})
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if checkouts == nil {
		checkouts = []models.ActiveCheckout{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                true,
		"total_active_checkouts": len(checkouts),
		"checkouts":              checkouts,
	})
}

func (h *CheckoutHandler) OverdueCheckouts(c *gin.Context) {
	checkouts, err := h.service.OverdueCheckouts()
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if checkouts == nil {
		checkouts = []models.ActiveCheckout{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"total_overdue": len(checkouts),
		"checkouts":     checkouts,
	})
}

func (h *CheckoutHandler) UserHistory(c *gin.Context) {
	var uri UserHistoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters"})
		return
	}
	var query HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	if query.Limit <= 0 {
		query.Limit = defaultHistoryLimit
	}

	user, history, err := h.service.UserHistory(uri.LDAP, query.Limit)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if history == nil {
		history = []models.HistoryRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"ldap":      user.LDAP,
			"full_name": user.FullName,
		},
		"total_records": len(history),
		"history":       history,
	})
}

func (h *CheckoutHandler) ItemHistory(c *gin.Context) {
	var uri ItemHistoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters"})
		return
	}
	var query HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	if query.Limit <= 0 {
		query.Limit = defaultHistoryLimit
	}

	history, err := h.service.ItemHistory(uri.ItemID, query.Limit)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if history == nil {
		history = []models.HistoryRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"total_records": len(history),
		"history":       history,
	})
}
