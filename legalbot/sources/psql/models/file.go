package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is created once, after the first successful bot reply for an upload,
// and is referenced by exactly one message.
type File struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	OriginalName  string    `json:"originalName" gorm:"type:varchar(512);not null"`
	MimeType      string    `json:"mimeType" gorm:"type:varchar(255);not null"`
	Data          string    `json:"data" gorm:"type:text"` // base64
	ExtractedText string    `json:"extractedText,omitempty" gorm:"type:text"`
	UploadedBy    string    `json:"uploadedBy" gorm:"type:uuid;index"`
	UploadedAt    time.Time `json:"uploadedAt"`
	// Key of the raw blob in the object-store archive, empty when archival
	// is disabled.
	ObjectKey string `json:"-" gorm:"type:varchar(512)"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
