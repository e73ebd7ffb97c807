package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sahilchouksey/studyshare-api/model"
	"github.com/sahilchouksey/studyshare-api/utils/validation"
)

// MemoryStore is a process-local Storage used for local runs
// (STORAGE_DRIVER=memory) and tests. It enforces the same uniqueness and
// parent checks as the Postgres schema.
type MemoryStore struct {
	mu           sync.RWMutex
	now          func() time.Time
	lastID       uint
	universities map[uint]model.University
	faculties    map[uint]model.Faculty
	subjects     map[uint]model.Subject
	notes        map[uint]model.Note
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates an empty in-memory store stamping uploads with now
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		now:          now,
		universities: make(map[uint]model.University),
		faculties:    make(map[uint]model.Faculty),
		subjects:     make(map[uint]model.Subject),
		notes:        make(map[uint]model.Note),
	}
}

func (s *MemoryStore) Init() error        { return nil }
func (s *MemoryStore) Close() error       { return nil }
func (s *MemoryStore) HealthCheck() error { return nil }

func (s *MemoryStore) nextID() uint {
	s.lastID++
	return s.lastID
}

func sortedIDs[T any](m map[uint]T) []uint {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// subjectsOf returns the subjects of a faculty in id order, id and name only
func (s *MemoryStore) subjectsOf(facultyID uint) []model.Subject {
	subjects := []model.Subject{}
	for _, id := range sortedIDs(s.subjects) {
		subject := s.subjects[id]
		if subject.FacultyID == facultyID {
			subjects = append(subjects, model.Subject{ID: subject.ID, Name: subject.Name, FacultyID: subject.FacultyID})
		}
	}
	return subjects
}

func (s *MemoryStore) facultiesOf(universityID uint) []model.Faculty {
	faculties := []model.Faculty{}
	for _, id := range sortedIDs(s.faculties) {
		faculty := s.faculties[id]
		if faculty.UniversityID == universityID {
			faculty.Subjects = s.subjectsOf(faculty.ID)
			faculties = append(faculties, faculty)
		}
	}
	return faculties
}

func (s *MemoryStore) ListUniversities(ctx context.Context) ([]model.University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	universities := make([]model.University, 0, len(s.universities))
	for _, id := range sortedIDs(s.universities) {
		university := s.universities[id]
		university.Faculties = s.facultiesOf(id)
		universities = append(universities, university)
	}
	return universities, nil
}

func (s *MemoryStore) CreateUniversity(ctx context.Context, university *model.University) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.universities {
		if validation.SameName(existing.Name, university.Name) {
			return ErrDuplicateName
		}
	}

	now := s.now()
	university.ID = s.nextID()
	university.CreatedAt = now
	university.UpdatedAt = now
	university.Faculties = nil
	s.universities[university.ID] = *university
	return nil
}

func (s *MemoryStore) ListFaculties(ctx context.Context) ([]model.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	faculties := make([]model.Faculty, 0, len(s.faculties))
	for _, id := range sortedIDs(s.faculties) {
		faculty := s.faculties[id]
		university := s.universities[faculty.UniversityID]
		faculty.University = &university
		faculty.Subjects = s.subjectsOf(id)
		faculties = append(faculties, faculty)
	}
	return faculties, nil
}

func (s *MemoryStore) CreateFaculty(ctx context.Context, faculty *model.Faculty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.universities[faculty.UniversityID]; !ok {
		return ErrParentNotFound
	}
	for _, existing := range s.faculties {
		if existing.UniversityID == faculty.UniversityID && validation.SameName(existing.Name, faculty.Name) {
			return ErrDuplicateName
		}
	}

	now := s.now()
	faculty.ID = s.nextID()
	faculty.CreatedAt = now
	faculty.UpdatedAt = now
	faculty.University = nil
	faculty.Subjects = nil
	s.faculties[faculty.ID] = *faculty
	return nil
}

func (s *MemoryStore) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subjects := make([]model.Subject, 0, len(s.subjects))
	for _, id := range sortedIDs(s.subjects) {
		subject := s.subjects[id]
		faculty := s.faculties[subject.FacultyID]
		university := s.universities[faculty.UniversityID]
		faculty.University = &university
		faculty.Subjects = nil
		subject.Faculty = &faculty

		notes := []model.Note{}
		for _, note := range s.notes {
			if note.SubjectID == id {
				note.FileData = ""
				notes = append(notes, note)
			}
		}
		sortNotesNewestFirst(notes)
		subject.Notes = notes
		subjects = append(subjects, subject)
	}
	return subjects, nil
}

func (s *MemoryStore) CreateSubject(ctx context.Context, subject *model.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.faculties[subject.FacultyID]; !ok {
		return ErrParentNotFound
	}
	for _, existing := range s.subjects {
		if existing.FacultyID == subject.FacultyID && validation.SameName(existing.Name, subject.Name) {
			return ErrDuplicateName
		}
	}

	now := s.now()
	subject.ID = s.nextID()
	subject.CreatedAt = now
	subject.UpdatedAt = now
	subject.Faculty = nil
	subject.Notes = nil
	s.subjects[subject.ID] = *subject
	return nil
}

// withAncestry attaches subject, faculty and university to a copy of note
func (s *MemoryStore) withAncestry(note model.Note) model.Note {
	subject := s.subjects[note.SubjectID]
	faculty := s.faculties[subject.FacultyID]
	university := s.universities[faculty.UniversityID]
	faculty.University = &university
	faculty.Subjects = nil
	subject.Faculty = &faculty
	subject.Notes = nil
	note.Subject = &subject
	return note
}

func sortNotesNewestFirst(notes []model.Note) {
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].UploadedAt.Equal(notes[j].UploadedAt) {
			return notes[i].ID > notes[j].ID
		}
		return notes[i].UploadedAt.After(notes[j].UploadedAt)
	})
}

func (s *MemoryStore) ListNotes(ctx context.Context) ([]model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]model.Note, 0, len(s.notes))
	for _, note := range s.notes {
		notes = append(notes, s.withAncestry(note))
	}
	sortNotesNewestFirst(notes)
	return notes, nil
}

func (s *MemoryStore) GetNote(ctx context.Context, id uint) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, ErrNotFound
	}
	note = s.withAncestry(note)
	return &note, nil
}

func (s *MemoryStore) CreateNote(ctx context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subjects[note.SubjectID]; !ok {
		return ErrParentNotFound
	}

	now := s.now()
	note.ID = s.nextID()
	note.UploadedAt = now
	note.UpdatedAt = now
	note.Subject = nil
	s.notes[note.ID] = *note
	return nil
}

func (s *MemoryStore) UpdateNote(ctx context.Context, id uint, update NoteUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok {
		return ErrNotFound
	}
	note.FileName = update.FileName
	note.Professor = update.Professor
	note.Semester = update.Semester
	note.UpdatedAt = s.now()
	s.notes[id] = note
	return nil
}

func (s *MemoryStore) DeleteNote(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *MemoryStore) CountCatalog(ctx context.Context) (CatalogCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return CatalogCounts{
		Universities: int64(len(s.universities)),
		Faculties:    int64(len(s.faculties)),
		Subjects:     int64(len(s.subjects)),
		Notes:        int64(len(s.notes)),
	}, nil
}
