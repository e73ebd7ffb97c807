package database

import (
	"context"
	"errors"

	"github.com/sahilchouksey/studyshare-api/model"
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName is returned when a name is already taken within its scope
	ErrDuplicateName = errors.New("name already exists")
	// ErrParentNotFound is returned when a create references a missing parent
	ErrParentNotFound = errors.New("parent record not found")
)

// NoteUpdate holds the editable metadata of a note
type NoteUpdate struct {
	FileName  string
	Professor string
	Semester  string
}

// CatalogCounts is a row count per catalog table
type CatalogCounts struct {
	Universities int64
	Faculties    int64
	Subjects     int64
	Notes        int64
}

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// Universities are returned with faculties and their subjects (id and name only)
	ListUniversities(ctx context.Context) ([]model.University, error)
	CreateUniversity(ctx context.Context, university *model.University) error

	// Faculties are returned with their university and subjects
	ListFaculties(ctx context.Context) ([]model.Faculty, error)
	CreateFaculty(ctx context.Context, faculty *model.Faculty) error

	// Subjects are returned with faculty, university and notes without file data
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	CreateSubject(ctx context.Context, subject *model.Subject) error

	// Notes are returned with subject, faculty and university loaded
	ListNotes(ctx context.Context) ([]model.Note, error)
	GetNote(ctx context.Context, id uint) (*model.Note, error)
	CreateNote(ctx context.Context, note *model.Note) error
	UpdateNote(ctx context.Context, id uint, update NoteUpdate) error
	DeleteNote(ctx context.Context, id uint) error

	CountCatalog(ctx context.Context) (CatalogCounts, error)
}

var (
	_ Storage = (*GORMStore)(nil)
	_ Storage = (*MemoryStore)(nil)
)
