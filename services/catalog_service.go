package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/database"
	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/model"
	"github.com/sahilchouksey/studyshare-api/utils/cache"
	"github.com/sahilchouksey/studyshare-api/utils/metrics"
	"github.com/sahilchouksey/studyshare-api/utils/notefile"
	"github.com/sahilchouksey/studyshare-api/utils/pdfvalidation"
	"github.com/sahilchouksey/studyshare-api/utils/validation"
)

// UniversitiesCacheKey holds the serialised university tree
const UniversitiesCacheKey = "catalog:universities"

// ErrDuplicateNote is returned when an edit would make a note identical to
// another note of the same subject
var ErrDuplicateNote = errors.New("a note with the same details and file name already exists")

// CatalogService implements the catalog operations on top of a Storage.
// The university tree is cached and dropped whenever the tree changes.
type CatalogService struct {
	store    database.Storage
	cache    cache.Cache
	metrics  *metrics.Metrics
	cacheTTL time.Duration

	// treeMu orders cache writes of the tree against invalidations.
	// treeGen is bumped by every invalidation; a tree read from storage
	// under an older generation is never written to the cache.
	treeMu  sync.Mutex
	treeGen uint64
}

// NewCatalogService creates a catalog service. cache and m may be nil.
func NewCatalogService(store database.Storage, c cache.Cache, m *metrics.Metrics, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		store:    store,
		cache:    c,
		metrics:  m,
		cacheTTL: cacheTTL,
	}
}

// ListUniversities returns the nested university tree
func (s *CatalogService) ListUniversities(ctx context.Context) ([]dto.University, error) {
	if s.cache != nil {
		var cached []dto.University
		err := s.cache.GetJSON(ctx, UniversitiesCacheKey, &cached)
		if err == nil {
			s.metrics.RecordCacheLookup(UniversitiesCacheKey, true)
			return cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			log.Warnf("university cache read failed: %v", err)
		}
		s.metrics.RecordCacheLookup(UniversitiesCacheKey, false)
	}

	return s.loadUniversities(ctx)
}

func (s *CatalogService) loadUniversities(ctx context.Context) ([]dto.University, error) {
	gen := s.treeGeneration()

	universities, err := s.store.ListUniversities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}

	tree := make([]dto.University, 0, len(universities))
	for _, u := range universities {
		tree = append(tree, toUniversity(u))
	}

	s.storeTree(ctx, gen, tree)
	return tree, nil
}

func (s *CatalogService) treeGeneration() uint64 {
	s.treeMu.Lock()
	defer s.treeMu.Unlock()
	return s.treeGen
}

// storeTree caches tree unless the tree changed since gen was read
func (s *CatalogService) storeTree(ctx context.Context, gen uint64, tree []dto.University) {
	if s.cache == nil {
		return
	}

	s.treeMu.Lock()
	defer s.treeMu.Unlock()
	if gen != s.treeGen {
		return
	}
	if err := s.cache.SetJSON(ctx, UniversitiesCacheKey, tree, s.cacheTTL); err != nil {
		log.Warnf("university cache write failed: %v", err)
	}
}

// WarmUniversityCache rebuilds the cached tree from storage
func (s *CatalogService) WarmUniversityCache(ctx context.Context) (int, error) {
	tree, err := s.loadUniversities(ctx)
	if err != nil {
		return 0, err
	}
	return len(tree), nil
}

func (s *CatalogService) invalidateTree(ctx context.Context) {
	if s.cache == nil {
		return
	}

	s.treeMu.Lock()
	defer s.treeMu.Unlock()
	s.treeGen++
	if err := s.cache.Delete(ctx, UniversitiesCacheKey); err != nil {
		log.Warnf("university cache invalidation failed: %v", err)
	}
}

func (s *CatalogService) CreateUniversity(ctx context.Context, req dto.CreateUniversityRequest) (*dto.University, error) {
	university := model.University{
		Name:        validation.SanitizeString(req.Name),
		Description: validation.SanitizeString(req.Description),
		Type:        model.UniversityType(req.Type),
	}
	if err := s.store.CreateUniversity(ctx, &university); err != nil {
		return nil, err
	}
	s.invalidateTree(ctx)

	created := toUniversity(university)
	return &created, nil
}

func (s *CatalogService) ListFaculties(ctx context.Context) ([]dto.Faculty, error) {
	faculties, err := s.store.ListFaculties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}

	result := make([]dto.Faculty, 0, len(faculties))
	for _, f := range faculties {
		result = append(result, toFaculty(f))
	}
	return result, nil
}

func (s *CatalogService) CreateFaculty(ctx context.Context, req dto.CreateFacultyRequest) (*dto.FacultyNode, error) {
	faculty := model.Faculty{
		Name:         validation.SanitizeString(req.Name),
		UniversityID: req.UniversityID,
	}
	if err := s.store.CreateFaculty(ctx, &faculty); err != nil {
		return nil, err
	}
	s.invalidateTree(ctx)

	created := toFacultyNode(faculty)
	return &created, nil
}

func (s *CatalogService) ListSubjects(ctx context.Context) ([]dto.Subject, error) {
	subjects, err := s.store.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	result := make([]dto.Subject, 0, len(subjects))
	for _, sub := range subjects {
		result = append(result, toSubject(sub))
	}
	return result, nil
}

func (s *CatalogService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectRecord, error) {
	subject := model.Subject{
		Name:      validation.SanitizeString(req.Name),
		FacultyID: req.FacultyID,
	}
	if err := s.store.CreateSubject(ctx, &subject); err != nil {
		return nil, err
	}
	s.invalidateTree(ctx)

	return &dto.SubjectRecord{
		ID:        subject.ID,
		Name:      subject.Name,
		FacultyID: subject.FacultyID,
	}, nil
}

// ListNotes returns every note, newest first, with ancestor names resolved
func (s *CatalogService) ListNotes(ctx context.Context) ([]dto.Note, error) {
	notes, err := s.store.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	result := make([]dto.Note, 0, len(notes))
	for _, n := range notes {
		result = append(result, toNote(n))
	}
	return result, nil
}

func (s *CatalogService) GetNote(ctx context.Context, id uint) (*dto.Note, error) {
	note, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toNote(*note)
	return &result, nil
}

// inspectNoteFile lists inconsistencies in an uploaded file. Notes are
// stored exactly as sent; the findings are only logged.
func inspectNoteFile(req dto.CreateNoteRequest) []string {
	var problems []string
	if !notefile.IsAllowedType(req.FileType) {
		problems = append(problems, fmt.Sprintf("file type %q is not on the allow-list", req.FileType))
	}
	if !notefile.IsAllowedSize(req.FileSize) {
		problems = append(problems, fmt.Sprintf("declared size %s exceeds the upload cap", notefile.FormatFileSize(req.FileSize)))
	}

	_, content, err := notefile.DecodeDataURI(req.FileData)
	if err != nil {
		return append(problems, "file data is not a base64 data URI")
	}
	if int64(len(content)) != req.FileSize {
		problems = append(problems, fmt.Sprintf("file data is %d bytes but fileSize is %d", len(content), req.FileSize))
	}

	if req.FileType == "application/pdf" {
		if report := pdfvalidation.InspectNote(content); !report.Sound() {
			problems = append(problems, report.Problem)
		}
	}
	return problems
}

// CreateNote stores an uploaded note and returns it in its denormalised form
func (s *CatalogService) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*dto.Note, error) {
	note := model.Note{
		SubjectID: req.SubjectID,
		FileName:  validation.SanitizeString(req.FileName),
		FileType:  req.FileType,
		FileSize:  req.FileSize,
		FileData:  req.FileData,
		Professor: validation.SanitizeString(req.Professor),
		Semester:  validation.SanitizeString(req.Semester),
	}
	if err := s.store.CreateNote(ctx, &note); err != nil {
		return nil, err
	}
	s.metrics.NoteUploaded()
	log.Infof("note %d uploaded to subject %d (%s, %s)", note.ID, note.SubjectID, note.FileType, notefile.FormatFileSize(note.FileSize))
	if problems := inspectNoteFile(req); len(problems) > 0 {
		log.Warnw("note stored with inconsistent file content", "note", note.ID, "problems", problems)
	}

	return s.GetNote(ctx, note.ID)
}

// UpdateNote edits the metadata of a note. Two notes of one subject may not
// share professor, semester and file name.
func (s *CatalogService) UpdateNote(ctx context.Context, id uint, req dto.UpdateNoteRequest) (*dto.Note, error) {
	existing, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	update := database.NoteUpdate{
		FileName:  validation.SanitizeString(req.FileName),
		Professor: validation.SanitizeString(req.Professor),
		Semester:  validation.SanitizeString(req.Semester),
	}

	notes, err := s.store.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	for _, n := range notes {
		if n.ID == id || n.SubjectID != existing.SubjectID {
			continue
		}
		if validation.SameName(n.Professor, update.Professor) &&
			validation.SameName(n.Semester, update.Semester) &&
			validation.SameName(n.FileName, update.FileName) {
			return nil, ErrDuplicateNote
		}
	}

	if err := s.store.UpdateNote(ctx, id, update); err != nil {
		return nil, err
	}
	return s.GetNote(ctx, id)
}

func (s *CatalogService) DeleteNote(ctx context.Context, id uint) error {
	return s.store.DeleteNote(ctx, id)
}

// NoteFile is the decoded content of a note
type NoteFile struct {
	FileName string
	FileType string
	Content  []byte
}

// DownloadNote decodes the stored data URI of a note
func (s *CatalogService) DownloadNote(ctx context.Context, id uint) (*NoteFile, error) {
	note, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	// Notes are stored as sent; data that is not a data URI is served verbatim
	_, content, err := notefile.DecodeDataURI(note.FileData)
	if err != nil {
		log.Warnf("note %d file data is not a data URI, serving it as stored: %v", id, err)
		content = []byte(note.FileData)
	}
	return &NoteFile{
		FileName: note.FileName,
		FileType: note.FileType,
		Content:  content,
	}, nil
}

// Stats counts the stored catalog and publishes the totals as metrics
func (s *CatalogService) Stats(ctx context.Context) (database.CatalogCounts, error) {
	counts, err := s.store.CountCatalog(ctx)
	if err != nil {
		return counts, fmt.Errorf("count catalog: %w", err)
	}
	s.metrics.SetCatalogCounts(counts.Universities, counts.Faculties, counts.Subjects, counts.Notes)
	return counts, nil
}

// HealthCheck reports whether storage is reachable
func (s *CatalogService) HealthCheck() error {
	return s.store.HealthCheck()
}
