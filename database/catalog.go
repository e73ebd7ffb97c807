package database

import (
	"context"

	"github.com/sahilchouksey/studyshare-api/model"
	"gorm.io/gorm"
)

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// ListUniversities returns every university with faculties and minimal subjects
func (s *GORMStore) ListUniversities(ctx context.Context) ([]model.University, error) {
	var universities []model.University
	err := s.db.WithContext(ctx).
		Preload("Faculties", orderByID).
		Preload("Faculties.Subjects", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "faculty_id").Order("id ASC")
		}).
		Order("id ASC").
		Find(&universities).Error
	return universities, err
}

// CreateUniversity inserts a university; names are unique regardless of case
func (s *GORMStore) CreateUniversity(ctx context.Context, university *model.University) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.University{}).
			Where("LOWER(name) = LOWER(?)", university.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		return tx.Create(university).Error
	})
	return translateError(err)
}

// ListFaculties returns every faculty with its university and subjects
func (s *GORMStore) ListFaculties(ctx context.Context) ([]model.Faculty, error) {
	var faculties []model.Faculty
	err := s.db.WithContext(ctx).
		Preload("University").
		Preload("Subjects", orderByID).
		Order("id ASC").
		Find(&faculties).Error
	return faculties, err
}

// CreateFaculty inserts a faculty; names are unique within a university
func (s *GORMStore) CreateFaculty(ctx context.Context, faculty *model.Faculty) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Faculty{}).
			Where("university_id = ? AND LOWER(name) = LOWER(?)", faculty.UniversityID, faculty.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		return tx.Create(faculty).Error
	})
	return translateError(err)
}

// ListSubjects returns every subject with its ancestry and note metadata
func (s *GORMStore) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := s.db.WithContext(ctx).
		Preload("Faculty.University").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			// file_data is omitted, it can be megabytes per row
			return db.Select("id", "subject_id", "file_name", "file_type", "file_size",
				"professor", "semester", "uploaded_at", "updated_at").
				Order("uploaded_at DESC")
		}).
		Order("id ASC").
		Find(&subjects).Error
	return subjects, err
}

// CreateSubject inserts a subject; names are unique within a faculty
func (s *GORMStore) CreateSubject(ctx context.Context, subject *model.Subject) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Subject{}).
			Where("faculty_id = ? AND LOWER(name) = LOWER(?)", subject.FacultyID, subject.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		return tx.Create(subject).Error
	})
	return translateError(err)
}

// ListNotes returns every note, newest first, with its ancestry loaded
func (s *GORMStore) ListNotes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	err := s.db.WithContext(ctx).
		Preload("Subject.Faculty.University").
		Order("uploaded_at DESC").
		Order("id DESC").
		Find(&notes).Error
	return notes, err
}

// GetNote returns a single note with its ancestry loaded
func (s *GORMStore) GetNote(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := s.db.WithContext(ctx).
		Preload("Subject.Faculty.University").
		First(&note, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &note, nil
}

// CreateNote inserts a note. The subject must exist.
func (s *GORMStore) CreateNote(ctx context.Context, note *model.Note) error {
	return translateError(s.db.WithContext(ctx).Create(note).Error)
}

// UpdateNote changes the editable metadata of a note
func (s *GORMStore) UpdateNote(ctx context.Context, id uint, update NoteUpdate) error {
	result := s.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"file_name": update.FileName,
			"professor": update.Professor,
			"semester":  update.Semester,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNote removes a note permanently
func (s *GORMStore) DeleteNote(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Note{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
