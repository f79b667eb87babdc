package users

import (
	"errors"
	"net/http"

	"github.com/hopeIsCo0l/AnuTest/pkg/models"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"github.com/gin-gonic/gin"
)

// UserRepository is the read side of the configured accounts.
type UserRepository interface {
	GetUser(username string) (*models.User, error)
	GetUsers() []models.User
}

type UsersHandler struct {
	Repository UserRepository
}

func NewHandler(r UserRepository) *UsersHandler {
	return &UsersHandler{
		Repository: r,
	}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users/me", security.Authorize(roles.Staff), h.GetCurrentUser)
	router.GET("/users", security.Authorize(roles.Admin), h.GetUserList)
}

func (h *UsersHandler) GetCurrentUser(c *gin.Context) {
	username := c.GetString(security.ContextUsername)
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.Repository.GetUser(username)
	if err != nil {
		if errors.Is(err, security.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	c.JSON(http.StatusOK, h.Repository.GetUsers())
}
