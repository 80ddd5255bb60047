package models

import (
	"time"
)

const UserTable = "users"

type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleSeeker Role = "SEEKER"
)

func (r Role) Valid() bool { return r == RoleOwner || r == RoleSeeker }

// User 密码按明文存储并原样返回给客户端（客户端把整个对象当作登录态）
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"password"`
	Mobile   string `gorm:"size:32;not null" json:"mobile"`
	Role     Role   `gorm:"size:16;not null" json:"role"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return UserTable
}

// UserSummary 为书籍列表中嵌入的 owner / claimedBy 视图
type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

func (UserSummary) TableName() string { return UserTable }
