package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// FileUpload is the transient payload attached to a message between upload
// and the first successful bot reply. It never outlives that request unless
// generation fails before persistence.
type FileUpload struct {
	OriginalName    string `json:"originalName"`
	MimeType        string `json:"mimeType"`
	Data            string `json:"data"` // base64
	ExtractedText   string `json:"extractedText,omitempty"`
	Rejected        bool   `json:"rejected,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// Message is one turn in a chat. Exactly one of FileID / Upload may be set:
// the persistence step resolves Upload into FileID (committed) or drops it
// (rejected / demo / failed generation).
type Message struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Sender    string      `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
	FileID    string      `json:"fileId,omitempty"`
	FileName  string      `json:"fileName,omitempty"`
	Upload    *FileUpload `json:"tempFileData,omitempty"`
}

// Messages is the ordered conversation, stored as one JSON document so a chat
// update always replaces the full array (last write wins at the chat level).
type Messages []Message

func (m Messages) Value() (driver.Value, error) {
	if m == nil {
		m = Messages{}
	}
	return json.Marshal(m)
}

func (m *Messages) Scan(value interface{}) error {
	if value == nil {
		*m = Messages{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported messages column type %T", value)
	}
}

type Chat struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"userId" gorm:"type:uuid;index"`
	UserName  string    `json:"userName" gorm:"type:varchar(255)"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Messages  Messages  `json:"messages" gorm:"type:jsonb"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// FileIDs collects the distinct stored-file references across all messages,
// in first-seen order.
func (c *Chat) FileIDs() []string {
	seen := map[string]bool{}
	var ids []string
	for _, msg := range c.Messages {
		if msg.FileID != "" && !seen[msg.FileID] {
			seen[msg.FileID] = true
			ids = append(ids, msg.FileID)
		}
	}
	return ids
}
