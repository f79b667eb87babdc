package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hopeIsCo0l/AnuTest/pkg/models"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDirectory(t *testing.T) *UserDirectory {
	t.Helper()
	admin, err := NewUser("admin", "Factory Admin", "secret", roles.Admin)
	require.NoError(t, err)
	staff, err := NewUser("staff", "Line Staff", "staffpass", roles.Staff)
	require.NoError(t, err)
	return NewUserDirectory(admin, staff)
}

func TestNewUser_Rejects(t *testing.T) {
	_, err := NewUser("admin", "Admin", "", roles.Admin)
	assert.Error(t, err)

	_, err = NewUser("admin", "Admin", "pw", roles.Role("root"))
	assert.Error(t, err)
}

func TestAuthenticateUser(t *testing.T) {
	directory := newDirectory(t)

	user, err := directory.AuthenticateUser("admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Factory Admin", user.Name)
	assert.Equal(t, roles.Admin, user.Role)

	_, err = directory.AuthenticateUser("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = directory.AuthenticateUser("nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateJWT(&models.User{Username: "staff", Name: "Line Staff", Role: roles.Staff})
	require.NoError(t, err)

	claims, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff", claims.Username)
	assert.Equal(t, "Line Staff", claims.Name)
	assert.Equal(t, "staff", claims.Role)

	other, err := NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Minute)
	require.NoError(t, err)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := issuer.GenerateJWT(&models.User{Username: "staff", Role: roles.Staff})
	require.NoError(t, err)

	_, err = issuer.ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}

func TestMiddlewareChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	staffToken, err := issuer.GenerateJWT(&models.User{Username: "staff", Name: "Line Staff", Role: roles.Staff})
	require.NoError(t, err)
	adminToken, err := issuer.GenerateJWT(&models.User{Username: "admin", Name: "Factory Admin", Role: roles.Admin})
	require.NoError(t, err)

	router := gin.New()
	api := router.Group("/api", JWTMiddleware(issuer))
	api.GET("/read", Authorize(roles.Staff), func(c *gin.Context) {
		c.String(http.StatusOK, ActorName(c))
	})
	api.DELETE("/write", Authorize(roles.Admin), func(c *gin.Context) {
		c.String(http.StatusOK, ActorName(c))
	})

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{"missing header", http.MethodGet, "/api/read", "", http.StatusUnauthorized, ""},
		{"garbage token", http.MethodGet, "/api/read", "Bearer nope", http.StatusUnauthorized, ""},
		{"staff reads", http.MethodGet, "/api/read", "Bearer " + staffToken, http.StatusOK, "Line Staff"},
		{"admin reads", http.MethodGet, "/api/read", "Bearer " + adminToken, http.StatusOK, "Factory Admin"},
		{"staff cannot write", http.MethodDelete, "/api/write", "Bearer " + staffToken, http.StatusForbidden, ""},
		{"admin writes", http.MethodDelete, "/api/write", "Bearer " + adminToken, http.StatusOK, "Factory Admin"},
		{"token query parameter", http.MethodGet, "/api/read?token=" + staffToken, "", http.StatusOK, "Line Staff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestActorName_DefaultsToSystem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, models.SystemActor, ActorName(c))

	c.Set(ContextUsername, "staff")
	assert.Equal(t, "staff", ActorName(c))
}

func TestUserDirectory_Lookup(t *testing.T) {
	directory := newDirectory(t)

	user, err := directory.GetUser("staff")
	require.NoError(t, err)
	assert.Equal(t, "Line Staff", user.Name)

	_, err = directory.GetUser("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	users := directory.GetUsers()
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "staff", users[1].Username)
}
