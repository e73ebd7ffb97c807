// Package catalog is the client side of StudyShare: an in-memory mirror of
// the catalog plus the filtering, navigation and upload logic built on it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/client"
	"github.com/sahilchouksey/studyshare-api/dto"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDuplicateUniversity = errors.New("university already exists")
	ErrDuplicateFaculty    = errors.New("faculty already exists in this university")
	ErrDuplicateSubject    = errors.New("subject already exists in this faculty")
	ErrDuplicateNote       = errors.New("note with the same details and file name already exists")
	ErrUnknownUniversity   = errors.New("university not found")
	ErrUnknownFaculty      = errors.New("faculty not found")
	ErrUnknownSubject      = errors.New("subject not found")
	ErrUnknownNote         = errors.New("note not found")
	ErrMissingFields       = errors.New("required fields are missing")
)

// API is the subset of the REST client the store uses
type API interface {
	ListUniversities(ctx context.Context) ([]dto.University, error)
	CreateUniversity(ctx context.Context, req dto.CreateUniversityRequest) (*dto.University, error)
	CreateFaculty(ctx context.Context, req dto.CreateFacultyRequest) (*dto.FacultyNode, error)
	CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectRecord, error)
	ListNotes(ctx context.Context) ([]dto.Note, error)
	CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*dto.Note, error)
	UpdateNote(ctx context.Context, id uint, req dto.UpdateNoteRequest) (*dto.Note, error)
	DeleteNote(ctx context.Context, id uint) error
}

var _ API = (*client.Client)(nil)

// Store mirrors the university tree and the flat note list. Every mutation
// goes to the server first and then replaces the affected collection
// wholesale with a fresh fetch.
type Store struct {
	api API

	mu           sync.RWMutex
	universities []dto.University
	notes        []dto.Note
	err          error
}

func NewStore(api API) *Store {
	return &Store{
		api:          api,
		universities: []dto.University{},
		notes:        []dto.Note{},
	}
}

// Load fetches universities and notes concurrently. The cache is replaced
// only when both fetches succeed.
func (s *Store) Load(ctx context.Context) error {
	var universities []dto.University
	var notes []dto.Note

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		universities, err = s.api.ListUniversities(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		notes, err = s.api.ListNotes(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return s.fail("fetch initial data", err)
	}

	s.mu.Lock()
	s.universities = nonNil(universities)
	s.notes = nonNil(notes)
	s.err = nil
	s.mu.Unlock()
	return nil
}

// RefreshUniversities replaces the cached tree with the server's
func (s *Store) RefreshUniversities(ctx context.Context) error {
	universities, err := s.api.ListUniversities(ctx)
	if err != nil {
		return s.fail("fetch universities", err)
	}

	s.mu.Lock()
	s.universities = nonNil(universities)
	s.err = nil
	s.mu.Unlock()
	return nil
}

// RefreshNotes replaces the cached note list with the server's
func (s *Store) RefreshNotes(ctx context.Context) error {
	notes, err := s.api.ListNotes(ctx)
	if err != nil {
		return s.fail("fetch notes", err)
	}

	s.mu.Lock()
	s.notes = nonNil(notes)
	s.err = nil
	s.mu.Unlock()
	return nil
}

// fail records err as the store's failure state
func (s *Store) fail(op string, err error) error {
	log.Errorf("failed to %s: %v", op, err)
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	return fmt.Errorf("%s: %w", op, err)
}

// Err returns the last fetch failure, nil once a fetch succeeds again
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Universities returns a snapshot of the cached tree
func (s *Store) Universities() []dto.University {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]dto.University{}, s.universities...)
}

// Notes returns a snapshot of the cached notes
func (s *Store) Notes() []dto.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]dto.Note{}, s.notes...)
}

func (s *Store) University(id uint) (dto.University, bool) {
	for _, u := range s.Universities() {
		if u.ID == id {
			return u, true
		}
	}
	return dto.University{}, false
}

func (s *Store) Faculty(universityID, facultyID uint) (dto.FacultyNode, bool) {
	u, ok := s.University(universityID)
	if !ok {
		return dto.FacultyNode{}, false
	}
	for _, f := range u.Faculties {
		if f.ID == facultyID {
			return f, true
		}
	}
	return dto.FacultyNode{}, false
}

func (s *Store) Subject(universityID, facultyID, subjectID uint) (dto.SubjectRef, bool) {
	f, ok := s.Faculty(universityID, facultyID)
	if !ok {
		return dto.SubjectRef{}, false
	}
	for _, sub := range f.Subjects {
		if sub.ID == subjectID {
			return sub, true
		}
	}
	return dto.SubjectRef{}, false
}

func (s *Store) Note(id uint) (dto.Note, bool) {
	for _, n := range s.Notes() {
		if n.ID == id {
			return n, true
		}
	}
	return dto.Note{}, false
}

// sameName compares names trimmed and case-insensitively
func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// AddUniversity creates a university unless the cache already holds one
// with the same name
func (s *Store) AddUniversity(ctx context.Context, req dto.CreateUniversityRequest) (*dto.University, error) {
	if blank(req.Name, req.Description, req.Type) {
		return nil, ErrMissingFields
	}
	for _, u := range s.Universities() {
		if sameName(u.Name, req.Name) {
			return nil, ErrDuplicateUniversity
		}
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	created, err := s.api.CreateUniversity(ctx, req)
	if err != nil {
		return nil, err
	}
	// A failed refresh leaves the stale tree in place and is reported by Err
	_ = s.RefreshUniversities(ctx)
	return created, nil
}

// AddFaculty creates a faculty inside the given university
func (s *Store) AddFaculty(ctx context.Context, universityID uint, name string) (*dto.FacultyNode, error) {
	if blank(name) {
		return nil, ErrMissingFields
	}
	u, ok := s.University(universityID)
	if !ok {
		return nil, ErrUnknownUniversity
	}
	for _, f := range u.Faculties {
		if sameName(f.Name, name) {
			return nil, ErrDuplicateFaculty
		}
	}

	created, err := s.api.CreateFaculty(ctx, dto.CreateFacultyRequest{
		Name:         strings.TrimSpace(name),
		UniversityID: universityID,
	})
	if err != nil {
		return nil, err
	}
	_ = s.RefreshUniversities(ctx)
	return created, nil
}

// AddSubject creates a subject inside the given faculty
func (s *Store) AddSubject(ctx context.Context, universityID, facultyID uint, name string) (*dto.SubjectRecord, error) {
	if blank(name) {
		return nil, ErrMissingFields
	}
	f, ok := s.Faculty(universityID, facultyID)
	if !ok {
		return nil, ErrUnknownFaculty
	}
	for _, sub := range f.Subjects {
		if sameName(sub.Name, name) {
			return nil, ErrDuplicateSubject
		}
	}

	created, err := s.api.CreateSubject(ctx, dto.CreateSubjectRequest{
		Name:      strings.TrimSpace(name),
		FacultyID: facultyID,
	})
	if err != nil {
		return nil, err
	}
	_ = s.RefreshUniversities(ctx)
	return created, nil
}

// AddNote uploads a note and refreshes the note list
func (s *Store) AddNote(ctx context.Context, req dto.CreateNoteRequest) (*dto.Note, error) {
	created, err := s.api.CreateNote(ctx, req)
	if err != nil {
		return nil, err
	}
	_ = s.RefreshNotes(ctx)
	return created, nil
}

// UpdateNote edits note metadata. The edit is refused when another note of
// the same subject would end up with identical professor, semester and
// file name.
func (s *Store) UpdateNote(ctx context.Context, id uint, req dto.UpdateNoteRequest) (*dto.Note, error) {
	if blank(req.FileName, req.Professor, req.Semester) {
		return nil, ErrMissingFields
	}
	editing, ok := s.Note(id)
	if !ok {
		return nil, ErrUnknownNote
	}
	for _, n := range s.Notes() {
		if n.ID == id {
			continue
		}
		if n.University == editing.University &&
			n.Faculty == editing.Faculty &&
			n.Subject == editing.Subject &&
			sameName(n.Professor, req.Professor) &&
			sameName(n.Semester, req.Semester) &&
			sameName(n.FileName, req.FileName) {
			return nil, ErrDuplicateNote
		}
	}

	updated, err := s.api.UpdateNote(ctx, id, req)
	if err != nil {
		return nil, err
	}
	_ = s.RefreshNotes(ctx)
	return updated, nil
}

// DeleteNote removes a note on the server and refreshes the note list
func (s *Store) DeleteNote(ctx context.Context, id uint) error {
	if err := s.api.DeleteNote(ctx, id); err != nil {
		return err
	}
	_ = s.RefreshNotes(ctx)
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
