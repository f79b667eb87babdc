package security

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hopeIsCo0l/AnuTest/pkg/models"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserDirectory is the fixed set of accounts allowed to sign in.
type UserDirectory struct {
	users map[string]models.User
}

func NewUserDirectory(users ...models.User) *UserDirectory {
	d := &UserDirectory{users: make(map[string]models.User, len(users))}
	for _, u := range users {
		d.users[u.Username] = u
	}
	return d
}

// NewUser hashes password with bcrypt. An empty password yields an error so a
// misconfigured account can never sign in.
func NewUser(username, name, password string, role roles.Role) (models.User, error) {
	if password == "" {
		return models.User{}, fmt.Errorf("password for %s is not set", username)
	}
	if !role.IsValid() {
		return models.User{}, fmt.Errorf("invalid role %q for %s", role, username)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("unable to hash password for %s: %w", username, err)
	}
	return models.User{Username: username, Name: name, PasswordHash: string(hash), Role: role}, nil
}

func (d *UserDirectory) Len() int {
	return len(d.users)
}

func (d *UserDirectory) GetUser(username string) (*models.User, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// GetUsers lists the accounts ordered by username.
func (d *UserDirectory) GetUsers() []models.User {
	users := make([]models.User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

func (d *UserDirectory) AuthenticateUser(username, password string) (*models.User, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

type Claims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	if ttl <= 0 {
		ttl = 120 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *TokenIssuer) GenerateJWT(user *models.User) (string, error) {
	now := i.now()
	claims := Claims{
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *TokenIssuer) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
