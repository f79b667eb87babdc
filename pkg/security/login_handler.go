package security

import (
	"errors"
	"net/http"

	"github.com/hopeIsCo0l/AnuTest/internal/rate_limiter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginHandler struct {
	users       *UserDirectory
	tokens      *TokenIssuer
	rateLimiter *rate_limiter.RateLimiter
	log         *zap.Logger
}

func NewLoginHandler(users *UserDirectory, tokens *TokenIssuer, limiter *rate_limiter.RateLimiter, log *zap.Logger) *LoginHandler {
	return &LoginHandler{users: users, tokens: tokens, rateLimiter: limiter, log: log}
}

func (l *LoginHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/auth", rate_limiter.Middleware(l.rateLimiter, "Too many login attempts. Try again later."), l.Login)
}

func (l *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, err := l.users.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.log.Warn("Failed login attempt", zap.String("username", req.Username))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := l.tokens.GenerateJWT(user)
	if err != nil {
		l.log.Error("Failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
