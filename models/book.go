// models/book.go
package models

import "time"

const BookTable = "books"

type BookStatus string

const (
	StatusAvailable BookStatus = "AVAILABLE"
	StatusRented    BookStatus = "RENTED"
	StatusExchanged BookStatus = "EXCHANGED"
)

func (s BookStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusExchanged:
		return true
	}
	return false
}

// Book 认领只是一个外键 + 状态字段，二者由客户端分两次请求修改，服务端不做联动
type Book struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null;index" json:"title"`
	Author      string     `gorm:"size:255;not null" json:"author"`
	Genre       *string    `gorm:"size:120;index" json:"genre"`
	Location    string     `gorm:"size:255;not null;index" json:"location"`
	ContactInfo string     `gorm:"size:255;not null" json:"contactInfo"`
	Status      BookStatus `gorm:"size:20;not null;default:'AVAILABLE'" json:"status"`
	CoverImage  *string    `gorm:"size:512" json:"coverImage"`

	OwnerID     string  `gorm:"type:uuid;index;not null" json:"ownerId"`
	ClaimedByID *string `gorm:"type:uuid;index" json:"claimedById"`

	Owner     *UserSummary `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	ClaimedBy *UserSummary `gorm:"foreignKey:ClaimedByID;constraint:OnDelete:SET NULL" json:"claimedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Book) TableName() string { return BookTable }

// BookFilter 三个条件都是大小写不敏感的子串匹配，可任意组合
type BookFilter struct {
	Title    string `form:"title" json:"title,omitempty"`
	Genre    string `form:"genre" json:"genre,omitempty"`
	Location string `form:"location" json:"location,omitempty"`
}
