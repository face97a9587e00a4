package models

import "time"

// NoSession marks the absence of a selected conversation.
const NoSession int64 = -1

type ChatSession struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Messages []ChatMessage `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// CurrentSession summarizes the selected conversation for the UI.
// ID is NoSession and Title is empty when nothing is selected.
type CurrentSession struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// IsValidSessionID reports whether id refers to a real session row.
func IsValidSessionID(id int64) bool {
	return id > 0
}
