package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/client"
	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/utils/notefile"
)

// UploadStep is the furthest step of the upload form that is enabled
type UploadStep int

const (
	StepUniversity UploadStep = iota
	StepFaculty
	StepSubject
	StepDetails
)

func (s UploadStep) String() string {
	switch s {
	case StepFaculty:
		return "faculty"
	case StepSubject:
		return "subject"
	case StepDetails:
		return "details"
	default:
		return "university"
	}
}

var (
	ErrBusy             = errors.New("an upload request is already in flight")
	ErrStepLocked       = errors.New("previous step has not been completed")
	ErrInvalidFileType  = errors.New("file type is not allowed")
	ErrFileTooLarge     = errors.New("file exceeds the maximum size")
	ErrInvalidSelection = errors.New("invalid university/faculty/subject selection")
)

// Inline messages shown next to the upload form
const (
	MsgMissingUniversityFields = "Please fill in all university fields."
	MsgMissingFacultyName      = "Please enter a faculty name."
	MsgMissingSubjectName      = "Please enter a subject name."
	MsgDuplicateUniversity     = "This university already exists."
	MsgDuplicateFaculty        = "This faculty already exists in this university."
	MsgDuplicateSubject        = "This subject already exists in this faculty."
	MsgInvalidFileType         = "Invalid file type. Allowed: PDF, DOC, PPT, TXT."
	MsgFileTooLarge            = "File is too large. Maximum allowed size is 10MB."
	MsgMissingUploadFields     = "Please fill in all fields and select a valid file."
	MsgInvalidSelection        = "Invalid university/faculty/subject selection."
	MsgUploaded                = "Note uploaded successfully!"
)

// File is a file picked for upload
type File struct {
	Name    string
	Type    string
	Content []byte
}

func (f File) Size() int64 {
	return int64(len(f.Content))
}

// UploadFlow drives the note upload form. Each step is enabled only once
// the step above it has a selection, and changing a selection clears every
// step below it. Only one network request runs at a time.
type UploadFlow struct {
	store *Store

	mu           sync.Mutex
	busy         bool
	universityID uint
	facultyID    uint
	subjectID    uint
	professor    string
	semester     string
	file         *File
	err          string
	notice       string
}

func NewUploadFlow(store *Store) *UploadFlow {
	return &UploadFlow{store: store}
}

// Step reports the furthest enabled step
func (u *UploadFlow) Step() UploadStep {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.step()
}

func (u *UploadFlow) step() UploadStep {
	switch {
	case u.subjectID != 0:
		return StepDetails
	case u.facultyID != 0:
		return StepSubject
	case u.universityID != 0:
		return StepFaculty
	default:
		return StepUniversity
	}
}

// Selection returns the selected university, faculty and subject ids, zero when unset
func (u *UploadFlow) Selection() (universityID, facultyID, subjectID uint) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.universityID, u.facultyID, u.subjectID
}

// Error is the inline error message, empty when there is none
func (u *UploadFlow) Error() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// Notice is the transient success message left by the last upload
func (u *UploadFlow) Notice() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.notice
}

// DismissNotice clears the success message
func (u *UploadFlow) DismissNotice() {
	u.mu.Lock()
	u.notice = ""
	u.mu.Unlock()
}

func (u *UploadFlow) File() (File, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.file == nil {
		return File{}, false
	}
	return *u.file, true
}

func (u *UploadFlow) setError(msg string) {
	u.mu.Lock()
	u.err = msg
	u.mu.Unlock()
}

func (u *UploadFlow) selectUniversity(id uint) {
	u.universityID = id
	u.facultyID = 0
	u.subjectID = 0
}

func (u *UploadFlow) selectFaculty(id uint) {
	u.facultyID = id
	u.subjectID = 0
}

// SelectUniversity picks an existing university and clears faculty and subject
func (u *UploadFlow) SelectUniversity(id uint) error {
	if _, ok := u.store.University(id); !ok {
		return ErrUnknownUniversity
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.selectUniversity(id)
	u.err = ""
	return nil
}

// SelectFaculty picks a faculty of the selected university and clears the subject
func (u *UploadFlow) SelectFaculty(id uint) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.universityID == 0 {
		return ErrStepLocked
	}
	if _, ok := u.store.Faculty(u.universityID, id); !ok {
		return ErrUnknownFaculty
	}
	u.selectFaculty(id)
	u.err = ""
	return nil
}

// SelectSubject picks a subject of the selected faculty
func (u *UploadFlow) SelectSubject(id uint) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.facultyID == 0 {
		return ErrStepLocked
	}
	if _, ok := u.store.Subject(u.universityID, u.facultyID, id); !ok {
		return ErrUnknownSubject
	}
	u.subjectID = id
	u.err = ""
	return nil
}

// begin claims the in-flight slot
func (u *UploadFlow) begin() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.busy {
		return ErrBusy
	}
	u.busy = true
	return nil
}

func (u *UploadFlow) end() {
	u.mu.Lock()
	u.busy = false
	u.mu.Unlock()
}

// Busy reports whether a request is in flight
func (u *UploadFlow) Busy() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.busy
}

// CreateUniversity adds a university inline and selects it
func (u *UploadFlow) CreateUniversity(ctx context.Context, req dto.CreateUniversityRequest) (*dto.University, error) {
	if err := u.begin(); err != nil {
		return nil, err
	}
	defer u.end()

	created, err := u.store.AddUniversity(ctx, req)
	if err != nil {
		u.setError(inlineMessage(err, MsgMissingUniversityFields, "Failed to add university"))
		return nil, err
	}

	u.mu.Lock()
	u.selectUniversity(created.ID)
	u.err = ""
	u.mu.Unlock()
	return created, nil
}

// CreateFaculty adds a faculty to the selected university and selects it
func (u *UploadFlow) CreateFaculty(ctx context.Context, name string) (*dto.FacultyNode, error) {
	universityID, _, _ := u.Selection()
	if universityID == 0 {
		return nil, ErrStepLocked
	}
	if err := u.begin(); err != nil {
		return nil, err
	}
	defer u.end()

	created, err := u.store.AddFaculty(ctx, universityID, name)
	if err != nil {
		u.setError(inlineMessage(err, MsgMissingFacultyName, "Failed to add faculty"))
		return nil, err
	}

	u.mu.Lock()
	if u.universityID == universityID {
		u.selectFaculty(created.ID)
	}
	u.err = ""
	u.mu.Unlock()
	return created, nil
}

// CreateSubject adds a subject to the selected faculty and selects it
func (u *UploadFlow) CreateSubject(ctx context.Context, name string) (*dto.SubjectRecord, error) {
	universityID, facultyID, _ := u.Selection()
	if facultyID == 0 {
		return nil, ErrStepLocked
	}
	if err := u.begin(); err != nil {
		return nil, err
	}
	defer u.end()

	created, err := u.store.AddSubject(ctx, universityID, facultyID, name)
	if err != nil {
		u.setError(inlineMessage(err, MsgMissingSubjectName, "Failed to add subject"))
		return nil, err
	}

	u.mu.Lock()
	if u.universityID == universityID && u.facultyID == facultyID {
		u.subjectID = created.ID
	}
	u.err = ""
	u.mu.Unlock()
	return created, nil
}

// SetFile accepts a file when its type is on the allow-list and its size
// is within the cap. A rejected file clears any previously accepted one.
func (u *UploadFlow) SetFile(f File) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !notefile.IsAllowedType(f.Type) {
		u.file = nil
		u.err = MsgInvalidFileType
		return ErrInvalidFileType
	}
	if !notefile.IsAllowedSize(f.Size()) {
		u.file = nil
		u.err = MsgFileTooLarge
		return ErrFileTooLarge
	}

	u.file = &f
	u.err = ""
	return nil
}

func (u *UploadFlow) SetProfessor(professor string) {
	u.mu.Lock()
	u.professor = professor
	u.mu.Unlock()
}

func (u *UploadFlow) SetSemester(semester string) {
	u.mu.Lock()
	u.semester = semester
	u.mu.Unlock()
}

// Reset clears every field, the selection and the inline error
func (u *UploadFlow) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.reset()
}

func (u *UploadFlow) reset() {
	u.universityID = 0
	u.facultyID = 0
	u.subjectID = 0
	u.professor = ""
	u.semester = ""
	u.file = nil
	u.err = ""
}

// Submit encodes the file as a data URI and creates the note. On success
// the form is reset and a notice is left for the caller to show.
func (u *UploadFlow) Submit(ctx context.Context) (*dto.Note, error) {
	if err := u.begin(); err != nil {
		return nil, err
	}
	defer u.end()

	u.mu.Lock()
	universityID, facultyID, subjectID := u.universityID, u.facultyID, u.subjectID
	professor := strings.TrimSpace(u.professor)
	semester := strings.TrimSpace(u.semester)
	file := u.file
	u.mu.Unlock()

	if universityID == 0 || facultyID == 0 || subjectID == 0 || professor == "" || semester == "" || file == nil {
		u.setError(MsgMissingUploadFields)
		return nil, ErrMissingFields
	}
	if _, ok := u.store.Subject(universityID, facultyID, subjectID); !ok {
		u.setError(MsgInvalidSelection)
		return nil, ErrInvalidSelection
	}

	note, err := u.store.AddNote(ctx, dto.CreateNoteRequest{
		FileName:  file.Name,
		FileType:  file.Type,
		FileSize:  file.Size(),
		FileData:  notefile.EncodeDataURI(file.Type, file.Content),
		Professor: professor,
		Semester:  semester,
		SubjectID: subjectID,
	})
	if err != nil {
		log.Errorf("Failed to upload note: %v", err)
		u.setError(inlineMessage(err, MsgMissingUploadFields, "Failed to upload note"))
		return nil, err
	}

	u.mu.Lock()
	u.reset()
	u.notice = MsgUploaded
	u.mu.Unlock()
	return note, nil
}

// inlineMessage maps err to the message shown in the form. missing is the
// step's own message for ErrMissingFields.
func inlineMessage(err error, missing, fallback string) string {
	switch {
	case errors.Is(err, ErrDuplicateUniversity):
		return MsgDuplicateUniversity
	case errors.Is(err, ErrDuplicateFaculty):
		return MsgDuplicateFaculty
	case errors.Is(err, ErrDuplicateSubject):
		return MsgDuplicateSubject
	case errors.Is(err, ErrMissingFields):
		return missing
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
