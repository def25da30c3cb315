package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded case document stored in blob storage.
type Document struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CaseID      *uuid.UUID `json:"case_id,omitempty"`
	Filename    string     `json:"filename"`
	MimeType    string     `json:"mime_type"`
	Size        int64      `json:"size"`
	StoragePath string     `json:"storage_path"`
	CreatedAt   time.Time  `json:"created_at"`
}
