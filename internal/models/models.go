package models

import (
	"time"
)

// Message represents a WhatsApp message
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WaID      string    `gorm:"index;not null" json:"wa_id"`
	Sender    string    `gorm:"not null" json:"sender"`
	Content   string    `gorm:"type:text" json:"content"`
	Type      string    `gorm:"type:varchar(50)" json:"type"`
	Status    string    `gorm:"type:varchar(20)" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Message) TableName() string {
	return "messages"
}

// Contact represents a WhatsApp contact
type Contact struct {
	WaID      string    `gorm:"primaryKey" json:"wa_id"` // WhatsApp ID (phone number)
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

// MediaFile represents an image downloaded from the Cloud API and saved to disk
type MediaFile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MediaID   string    `gorm:"index" json:"media_id"`
	Filename  string    `gorm:"type:varchar(255)" json:"filename"`
	MimeType  string    `gorm:"type:varchar(100)" json:"mime_type"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MediaFile) TableName() string {
	return "media_files"
}
