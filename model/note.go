package model

import (
	"time"
)

// Note is an uploaded document. The file content is kept inline as a
// base64 data URI in FileData rather than in an external blob store.
type Note struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SubjectID  uint      `gorm:"not null;index" json:"subjectId"`
	FileName   string    `gorm:"not null" json:"fileName"`
	FileType   string    `gorm:"type:varchar(255);not null" json:"fileType"`
	FileSize   int64     `gorm:"not null" json:"fileSize"` // Size in bytes
	FileData   string    `gorm:"type:text;not null" json:"fileData"`
	Professor  string    `gorm:"not null" json:"professor"`
	Semester   string    `gorm:"not null" json:"semester"`
	UploadedAt time.Time `gorm:"autoCreateTime;index" json:"uploadedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Relationships
	Subject *Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"subject,omitempty"`
}
