package models

import "time"

const BookEventTable = "book_events"

type EventKind string

const (
	EventListed    EventKind = "LISTED"
	EventUpdated   EventKind = "UPDATED"
	EventStatus    EventKind = "STATUS"
	EventClaimed   EventKind = "CLAIMED"
	EventUnclaimed EventKind = "UNCLAIMED"
)

// BookEvent 记录一次书籍变更（只追加）
type BookEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    string    `gorm:"type:uuid;index;not null" json:"bookId"`
	Book      *Book     `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	Kind      EventKind `gorm:"size:20;not null" json:"kind"`
	ActorID   *string   `gorm:"type:uuid" json:"actorId,omitempty"`
	Detail    string    `gorm:"size:255" json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (BookEvent) TableName() string { return BookEventTable }
