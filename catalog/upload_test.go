package catalog

import (
	"bytes"
	"context"
	"testing"

	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/utils/notefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadFixture(t *testing.T) (*UploadFlow, *fakeAPI) {
	t.Helper()
	api := seededAPI()
	store := NewStore(api)
	require.NoError(t, store.Load(context.Background()))
	return NewUploadFlow(store), api
}

func selectAll(t *testing.T, flow *UploadFlow) {
	t.Helper()
	require.NoError(t, flow.SelectUniversity(1))
	require.NoError(t, flow.SelectFaculty(10))
	require.NoError(t, flow.SelectSubject(20))
}

func TestUploadFlowStepsAreGated(t *testing.T) {
	flow, _ := newUploadFixture(t)
	assert.Equal(t, StepUniversity, flow.Step())

	assert.ErrorIs(t, flow.SelectFaculty(10), ErrStepLocked)
	assert.ErrorIs(t, flow.SelectSubject(20), ErrStepLocked)
	_, err := flow.CreateFaculty(context.Background(), "Medicine")
	assert.ErrorIs(t, err, ErrStepLocked)

	require.NoError(t, flow.SelectUniversity(1))
	assert.Equal(t, StepFaculty, flow.Step())
	require.NoError(t, flow.SelectFaculty(10))
	assert.Equal(t, StepSubject, flow.Step())
	require.NoError(t, flow.SelectSubject(20))
	assert.Equal(t, StepDetails, flow.Step())

	assert.ErrorIs(t, flow.SelectSubject(999), ErrUnknownSubject)
	assert.ErrorIs(t, flow.SelectUniversity(999), ErrUnknownUniversity)
}

func TestUploadFlowChangingUniversityClearsLowerSteps(t *testing.T) {
	flow, _ := newUploadFixture(t)
	selectAll(t, flow)

	require.NoError(t, flow.SelectUniversity(1))
	uni, fac, sub := flow.Selection()
	assert.Equal(t, uint(1), uni)
	assert.Zero(t, fac)
	assert.Zero(t, sub)
	assert.Equal(t, StepFaculty, flow.Step())
}

func TestUploadFlowRejectsDisallowedType(t *testing.T) {
	flow, api := newUploadFixture(t)
	selectAll(t, flow)
	flow.SetProfessor("Dr. Ahmadi")
	flow.SetSemester("Fall 2024")

	err := flow.SetFile(File{Name: "run.exe", Type: "application/x-msdownload", Content: []byte("MZ")})
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Equal(t, "Invalid file type. Allowed: PDF, DOC, PPT, TXT.", flow.Error())

	_, err = flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, "Please fill in all fields and select a valid file.", flow.Error())
	assert.Equal(t, 0, api.count("CreateNote"))
}

func TestUploadFlowRejectsOversizedFile(t *testing.T) {
	flow, api := newUploadFixture(t)
	selectAll(t, flow)
	flow.SetProfessor("Dr. Ahmadi")
	flow.SetSemester("Fall 2024")

	big := bytes.Repeat([]byte("a"), int(notefile.MaxFileSize)+1)
	err := flow.SetFile(File{Name: "big.txt", Type: "text/plain", Content: big})
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, "File is too large. Maximum allowed size is 10MB.", flow.Error())
	_, ok := flow.File()
	assert.False(t, ok)

	_, err = flow.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, api.count("CreateNote"))
}

func TestUploadFlowSubmit(t *testing.T) {
	flow, api := newUploadFixture(t)
	selectAll(t, flow)
	flow.SetProfessor("  Dr. Ahmadi ")
	flow.SetSemester("Fall 2024")
	require.NoError(t, flow.SetFile(File{Name: "notes.txt", Type: "text/plain", Content: []byte("hello")}))

	note, err := flow.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, api.count("CreateNote"))
	assert.Equal(t, "Tehran University", note.University)
	assert.Equal(t, "Engineering", note.Faculty)
	assert.Equal(t, "Algorithms", note.Subject)
	assert.Equal(t, "Dr. Ahmadi", note.Professor)
	assert.Equal(t, int64(5), note.FileSize)
	assert.Equal(t, "data:text/plain;base64,aGVsbG8=", note.FileData)

	assert.Equal(t, "Note uploaded successfully!", flow.Notice())
	assert.Equal(t, StepUniversity, flow.Step())
	assert.Empty(t, flow.Error())
	_, ok := flow.File()
	assert.False(t, ok)

	flow.DismissNotice()
	assert.Empty(t, flow.Notice())
}

func TestUploadFlowSubmitSurfacesServerMessage(t *testing.T) {
	flow, api := newUploadFixture(t)
	selectAll(t, flow)
	flow.SetProfessor("Dr. Ahmadi")
	flow.SetSemester("Fall 2024")
	require.NoError(t, flow.SetFile(File{Name: "a.txt", Type: "text/plain", Content: []byte("x")}))

	// the subject disappears server-side after it was selected
	api.universities[0].Faculties[0].Subjects = nil

	_, err := flow.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid subject ID.", flow.Error())
	assert.Equal(t, StepDetails, flow.Step())
}

func TestUploadFlowRejectsConcurrentRequests(t *testing.T) {
	flow, _ := newUploadFixture(t)
	require.NoError(t, flow.begin())
	assert.True(t, flow.Busy())

	_, err := flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	_, err = flow.CreateUniversity(context.Background(), dto.CreateUniversityRequest{Name: "X", Description: "d", Type: "Technical"})
	assert.ErrorIs(t, err, ErrBusy)

	flow.end()
	assert.False(t, flow.Busy())
}

func TestUploadFlowInlineCreateSelectsCreated(t *testing.T) {
	flow, api := newUploadFixture(t)
	ctx := context.Background()

	_, err := flow.CreateUniversity(ctx, dto.CreateUniversityRequest{Name: "TEHRAN university", Description: "d", Type: "Technical"})
	assert.ErrorIs(t, err, ErrDuplicateUniversity)
	assert.Equal(t, "This university already exists.", flow.Error())
	assert.Equal(t, 0, api.count("CreateUniversity"))

	_, err = flow.CreateUniversity(ctx, dto.CreateUniversityRequest{Name: "Sharif University", Type: "Technical"})
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, "Please fill in all university fields.", flow.Error())

	uni, err := flow.CreateUniversity(ctx, dto.CreateUniversityRequest{Name: "Sharif University", Description: "d", Type: "Technical"})
	require.NoError(t, err)
	selectedUni, _, _ := flow.Selection()
	assert.Equal(t, uni.ID, selectedUni)
	assert.Empty(t, flow.Error())

	fac, err := flow.CreateFaculty(ctx, "Physics")
	require.NoError(t, err)
	_, selectedFac, _ := flow.Selection()
	assert.Equal(t, fac.ID, selectedFac)

	_, err = flow.CreateFaculty(ctx, "physics")
	assert.ErrorIs(t, err, ErrDuplicateFaculty)
	assert.Equal(t, "This faculty already exists in this university.", flow.Error())

	sub, err := flow.CreateSubject(ctx, "Mechanics")
	require.NoError(t, err)
	_, _, selectedSub := flow.Selection()
	assert.Equal(t, sub.ID, selectedSub)
	assert.Equal(t, StepDetails, flow.Step())

	_, err = flow.CreateSubject(ctx, "MECHANICS")
	assert.ErrorIs(t, err, ErrDuplicateSubject)
	assert.Equal(t, "This subject already exists in this faculty.", flow.Error())
}

func TestUploadFlowBlankInlineNamesNameTheirStep(t *testing.T) {
	flow, api := newUploadFixture(t)
	ctx := context.Background()
	require.NoError(t, flow.SelectUniversity(1))

	_, err := flow.CreateFaculty(ctx, "   ")
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, "Please enter a faculty name.", flow.Error())

	require.NoError(t, flow.SelectFaculty(10))
	_, err = flow.CreateSubject(ctx, "\t")
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, "Please enter a subject name.", flow.Error())

	assert.Equal(t, 0, api.count("CreateFaculty"))
	assert.Equal(t, 0, api.count("CreateSubject"))
}

func TestUploadStepString(t *testing.T) {
	assert.Equal(t, "university", StepUniversity.String())
	assert.Equal(t, "details", StepDetails.String())
}
