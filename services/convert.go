package services

import (
	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/model"
)

// Conversions from GORM entities to wire types. Collections are always
// non-nil so they encode as [] rather than null.

func toSubjectRefs(subjects []model.Subject) []dto.SubjectRef {
	refs := make([]dto.SubjectRef, 0, len(subjects))
	for _, s := range subjects {
		refs = append(refs, dto.SubjectRef{ID: s.ID, Name: s.Name})
	}
	return refs
}

func toFacultyNode(f model.Faculty) dto.FacultyNode {
	return dto.FacultyNode{
		ID:           f.ID,
		Name:         f.Name,
		UniversityID: f.UniversityID,
		Subjects:     toSubjectRefs(f.Subjects),
	}
}

func toUniversity(u model.University) dto.University {
	faculties := make([]dto.FacultyNode, 0, len(u.Faculties))
	for _, f := range u.Faculties {
		faculties = append(faculties, toFacultyNode(f))
	}
	return dto.University{
		ID:          u.ID,
		Name:        u.Name,
		Description: u.Description,
		Type:        string(u.Type),
		Faculties:   faculties,
	}
}

func toUniversityRef(u *model.University) dto.UniversityRef {
	if u == nil {
		return dto.UniversityRef{}
	}
	return dto.UniversityRef{
		ID:          u.ID,
		Name:        u.Name,
		Description: u.Description,
		Type:        string(u.Type),
	}
}

func toFaculty(f model.Faculty) dto.Faculty {
	return dto.Faculty{
		ID:           f.ID,
		Name:         f.Name,
		UniversityID: f.UniversityID,
		University:   toUniversityRef(f.University),
		Subjects:     toSubjectRefs(f.Subjects),
	}
}

func toNoteSummary(n model.Note) dto.NoteSummary {
	return dto.NoteSummary{
		ID:         n.ID,
		FileName:   n.FileName,
		FileType:   n.FileType,
		FileSize:   n.FileSize,
		Professor:  n.Professor,
		Semester:   n.Semester,
		UploadedAt: n.UploadedAt.UnixMilli(),
	}
}

func toSubject(s model.Subject) dto.Subject {
	notes := make([]dto.NoteSummary, 0, len(s.Notes))
	for _, n := range s.Notes {
		notes = append(notes, toNoteSummary(n))
	}

	var faculty dto.FacultyRef
	if s.Faculty != nil {
		faculty = dto.FacultyRef{
			ID:           s.Faculty.ID,
			Name:         s.Faculty.Name,
			UniversityID: s.Faculty.UniversityID,
			University:   toUniversityRef(s.Faculty.University),
		}
	}

	return dto.Subject{
		ID:        s.ID,
		Name:      s.Name,
		FacultyID: s.FacultyID,
		Faculty:   faculty,
		Notes:     notes,
	}
}

// toNote flattens a note and the names of its ancestors
func toNote(n model.Note) dto.Note {
	note := dto.Note{
		ID:         n.ID,
		Professor:  n.Professor,
		Semester:   n.Semester,
		FileName:   n.FileName,
		FileSize:   n.FileSize,
		FileType:   n.FileType,
		FileData:   n.FileData,
		UploadedAt: n.UploadedAt.UnixMilli(),
		SubjectID:  n.SubjectID,
	}
	if n.Subject != nil {
		note.Subject = n.Subject.Name
		if n.Subject.Faculty != nil {
			note.Faculty = n.Subject.Faculty.Name
			if n.Subject.Faculty.University != nil {
				note.University = n.Subject.Faculty.University.Name
			}
		}
	}
	return note
}
