package models

import "github.com/hopeIsCo0l/AnuTest/pkg/roles"

type User struct {
	Username     string     `json:"username"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         roles.Role `json:"role"`
}
