package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

type User struct {
	gorm.Model
	Name       string     `json:"name" gorm:"default:''"`
	Email      string     `json:"email" gorm:"unique;not null"`
	Password   string     `json:"-" gorm:"not null"`
	Role       string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	Bio        string     `json:"bio" gorm:"type:text"`
	AvatarURL  string     `json:"avatar_url" gorm:"default:''"`
	LastLogin  *time.Time `json:"last_login"`
	IsDeleted  bool       `gorm:"default:false"`
}
