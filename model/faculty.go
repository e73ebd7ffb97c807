package model

import (
	"time"
)

// Faculty is a division of a university. Names are unique per university.
type Faculty struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UniversityID uint      `gorm:"not null;uniqueIndex:idx_faculties_university_name,priority:1" json:"universityId"`
	Name         string    `gorm:"not null;uniqueIndex:idx_faculties_university_name,priority:2" json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relationships
	University *University `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"university,omitempty"`
	Subjects   []Subject   `gorm:"foreignKey:FacultyID;constraint:OnDelete:CASCADE" json:"subjects"`
}

// Subject is a course of study inside a faculty. Names are unique per faculty.
type Subject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FacultyID uint      `gorm:"not null;uniqueIndex:idx_subjects_faculty_name,priority:1" json:"facultyId"`
	Name      string    `gorm:"not null;uniqueIndex:idx_subjects_faculty_name,priority:2" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Faculty *Faculty `gorm:"foreignKey:FacultyID;constraint:OnDelete:CASCADE" json:"faculty,omitempty"`
	Notes   []Note   `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
}
