package users

import (
	"net/http"

	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	repository UserRepository
}

func NewHandler(repository UserRepository) *UsersHandler {
	return &UsersHandler{repository: repository}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", h.GetUsers)
}

// GetUsers lists active users for the checkout form's user picker.
func (h *UsersHandler) GetUsers(c *gin.Context) {
	users, err := h.repository.GetUsers()
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"total_users": len(users),
		"users":       users,
	})
}
