package model

import (
	"time"
)

// UniversityType is the category a university is filed under
type UniversityType string

const (
	UniversityTypeTechnical UniversityType = "Technical"
	UniversityTypeMedical   UniversityType = "Medical"
	UniversityTypeEconomic  UniversityType = "Economic"
	UniversityTypeArts      UniversityType = "Arts"
	UniversityTypeLaw       UniversityType = "Law"
	UniversityTypeOther     UniversityType = "Other"
)

// UniversityTypes lists the accepted categories in display order
var UniversityTypes = []UniversityType{
	UniversityTypeTechnical,
	UniversityTypeMedical,
	UniversityTypeEconomic,
	UniversityTypeArts,
	UniversityTypeLaw,
	UniversityTypeOther,
}

// IsValid reports whether t is one of the accepted categories
func (t UniversityType) IsValid() bool {
	for _, known := range UniversityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// University represents an educational institution, the root of the catalog
type University struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;uniqueIndex" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Type        UniversityType `gorm:"type:varchar(20);not null" json:"type"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	// Relationships
	Faculties []Faculty `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"faculties"`
}
