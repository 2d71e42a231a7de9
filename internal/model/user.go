package model

import (
	"time"
)

type UserRole string

const (
	Learner UserRole = "learner"
	Teacher UserRole = "teacher"
	Parent  UserRole = "parent"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'learner'" json:"role"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `json:"lastLogin"`
	LastSeen  time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// IsGrownUp reports whether the role can author lessons and receive help
// requests.
func (u *User) IsGrownUp() bool {
	return u.Role == Teacher || u.Role == Parent || u.Role == Admin
}
