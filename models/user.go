package models

import (
	"strings"
	"time"
)

// User representa um usuario no sistema.
// Os produtos aderidos não ficam aqui: ver Membership.
type User struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Username  string     `gorm:"not null;unique" json:"username" form:"username"`
	Email     string     `gorm:"not null;default:''" json:"email" form:"email"`
	Password  string     `gorm:"not null" json:"password,omitempty" form:"password"`
	FirstName string     `gorm:"default:''" json:"first_name" form:"first_name"`
	LastName  string     `gorm:"default:''" json:"last_name" form:"last_name"`
	Nickname  string     `gorm:"default:''" json:"nickname" form:"nickname"`
	Age       int        `gorm:"not null;default:0" json:"age" form:"age"`
	Money     int        `gorm:"not null;default:0" json:"money" form:"money"`
	Salary    int        `gorm:"not null;default:0" json:"salary" form:"salary"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (user User) MissingFields() string {
	if strings.TrimSpace(user.Username) == "" {
		return "username"
	} else if user.Password == "" {
		return "password"
	} else if CheckPassword(user.Password) != "" {
		return CheckPassword(user.Password)
	}
	return ""
}

// CheckPassword devolve o nome do campo inválido, ou "" se a senha serve.
func CheckPassword(password string) string {
	if len(password) < 8 {
		return "password"
	}
	return ""
}
