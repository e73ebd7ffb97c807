package catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/sahilchouksey/studyshare-api/client"
	"github.com/sahilchouksey/studyshare-api/dto"
)

// fakeAPI is an in-memory API that records how often each call is made
type fakeAPI struct {
	mu           sync.Mutex
	nextID       uint
	universities []dto.University
	notes        []dto.Note
	calls        map[string]int
	failLists    error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 100, calls: map[string]int{}}
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) record(name string) {
	f.calls[name]++
	f.nextID++
}

func (f *fakeAPI) ListUniversities(ctx context.Context) ([]dto.University, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListUniversities"]++
	if f.failLists != nil {
		return nil, f.failLists
	}
	out := make([]dto.University, len(f.universities))
	for i, u := range f.universities {
		out[i] = u
		out[i].Faculties = make([]dto.FacultyNode, len(u.Faculties))
		for j, fac := range u.Faculties {
			out[i].Faculties[j] = fac
			out[i].Faculties[j].Subjects = append([]dto.SubjectRef{}, fac.Subjects...)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateUniversity(ctx context.Context, req dto.CreateUniversityRequest) (*dto.University, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateUniversity")
	for _, u := range f.universities {
		if u.Name == req.Name {
			return nil, &client.APIError{Status: http.StatusConflict, Code: "CONFLICT", Message: "University already exists."}
		}
	}
	u := dto.University{ID: f.nextID, Name: req.Name, Description: req.Description, Type: req.Type, Faculties: []dto.FacultyNode{}}
	f.universities = append(f.universities, u)
	return &u, nil
}

func (f *fakeAPI) CreateFaculty(ctx context.Context, req dto.CreateFacultyRequest) (*dto.FacultyNode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateFaculty")
	for i := range f.universities {
		if f.universities[i].ID == req.UniversityID {
			node := dto.FacultyNode{ID: f.nextID, Name: req.Name, UniversityID: req.UniversityID, Subjects: []dto.SubjectRef{}}
			f.universities[i].Faculties = append(f.universities[i].Faculties, node)
			return &node, nil
		}
	}
	return nil, &client.APIError{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: "Invalid university ID."}
}

func (f *fakeAPI) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateSubject")
	for i := range f.universities {
		for j := range f.universities[i].Faculties {
			fac := &f.universities[i].Faculties[j]
			if fac.ID == req.FacultyID {
				fac.Subjects = append(fac.Subjects, dto.SubjectRef{ID: f.nextID, Name: req.Name})
				return &dto.SubjectRecord{ID: f.nextID, Name: req.Name, FacultyID: fac.ID}, nil
			}
		}
	}
	return nil, &client.APIError{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: "Invalid faculty ID."}
}

func (f *fakeAPI) ListNotes(ctx context.Context) ([]dto.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListNotes"]++
	if f.failLists != nil {
		return nil, f.failLists
	}
	return append([]dto.Note{}, f.notes...), nil
}

func (f *fakeAPI) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*dto.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateNote")
	for _, u := range f.universities {
		for _, fac := range u.Faculties {
			for _, sub := range fac.Subjects {
				if sub.ID != req.SubjectID {
					continue
				}
				n := dto.Note{
					ID:         f.nextID,
					University: u.Name,
					Faculty:    fac.Name,
					Subject:    sub.Name,
					Professor:  req.Professor,
					Semester:   req.Semester,
					FileName:   req.FileName,
					FileSize:   req.FileSize,
					FileType:   req.FileType,
					FileData:   req.FileData,
					UploadedAt: int64(f.nextID),
					SubjectID:  sub.ID,
				}
				f.notes = append(f.notes, n)
				return &n, nil
			}
		}
	}
	return nil, &client.APIError{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: "Invalid subject ID."}
}

func (f *fakeAPI) UpdateNote(ctx context.Context, id uint, req dto.UpdateNoteRequest) (*dto.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateNote")
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes[i].FileName = req.FileName
			f.notes[i].Professor = req.Professor
			f.notes[i].Semester = req.Semester
			n := f.notes[i]
			return &n, nil
		}
	}
	return nil, &client.APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Note not found."}
}

func (f *fakeAPI) DeleteNote(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteNote")
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return &client.APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Note not found."}
}

var errOffline = errors.New("connection refused")

// seededAPI returns a fake holding one university with one faculty and subject
func seededAPI() *fakeAPI {
	api := newFakeAPI()
	api.universities = []dto.University{{
		ID: 1, Name: "Tehran University", Description: "d", Type: "Technical",
		Faculties: []dto.FacultyNode{{
			ID: 10, Name: "Engineering", UniversityID: 1,
			Subjects: []dto.SubjectRef{{ID: 20, Name: "Algorithms"}},
		}},
	}}
	return api
}

func sampleNotes() []dto.Note {
	return []dto.Note{
		{ID: 1, University: "Tehran University", Faculty: "Engineering", Subject: "Algorithms", Professor: "Dr. Ahmadi", Semester: "Fall 2024", FileName: "graphs.pdf", FileType: "application/pdf", UploadedAt: 3000},
		{ID: 2, University: "Tehran University", Faculty: "Engineering", Subject: "Calculus", Professor: "Dr. Karimi", Semester: "Spring 2024", FileName: "Limits.txt", FileType: "text/plain", UploadedAt: 1000},
		{ID: 3, University: "Sharif University", Faculty: "Physics", Subject: "Mechanics", Professor: "Dr. Rahimi", Semester: "Fall 2024", FileName: "energy.pdf", FileType: "application/pdf", UploadedAt: 2000},
		{ID: 4, University: "Sharif University", Faculty: "Physics", Subject: "Mechanics", Professor: "Dr. Ahmadi", Semester: "Fall 2023", FileName: "Énergie.docx", FileType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", UploadedAt: 2000},
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
