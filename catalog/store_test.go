package catalog

import (
	"context"
	"testing"

	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadFetchesBothCollections(t *testing.T) {
	api := seededAPI()
	api.notes = sampleNotes()
	store := NewStore(api)

	require.NoError(t, store.Load(context.Background()))

	assert.Len(t, store.Universities(), 1)
	assert.Len(t, store.Notes(), 4)
	assert.Equal(t, 1, api.count("ListUniversities"))
	assert.Equal(t, 1, api.count("ListNotes"))
	assert.NoError(t, store.Err())
}

func TestStoreLoadFailureKeepsEmptyCache(t *testing.T) {
	api := seededAPI()
	api.failLists = errOffline
	store := NewStore(api)

	err := store.Load(context.Background())
	require.ErrorIs(t, err, errOffline)

	assert.Empty(t, store.Universities())
	assert.NotNil(t, store.Universities())
	assert.ErrorIs(t, store.Err(), errOffline)

	api.failLists = nil
	require.NoError(t, store.Load(context.Background()))
	assert.NoError(t, store.Err())
}

func TestAddUniversityRejectsDuplicateBeforeNetwork(t *testing.T) {
	store := NewStore(seededAPI())
	require.NoError(t, store.Load(context.Background()))
	api := store.api.(*fakeAPI)

	_, err := store.AddUniversity(context.Background(), dto.CreateUniversityRequest{
		Name: "  tehran UNIVERSITY ", Description: "d", Type: "Technical",
	})

	assert.ErrorIs(t, err, ErrDuplicateUniversity)
	assert.Equal(t, 0, api.count("CreateUniversity"))
}

func TestAddUniversityRequiresAllFields(t *testing.T) {
	api := seededAPI()
	store := NewStore(api)

	_, err := store.AddUniversity(context.Background(), dto.CreateUniversityRequest{Name: "X", Type: "Technical"})

	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, 0, api.count("CreateUniversity"))
}

func TestAddUniversityRefreshesTree(t *testing.T) {
	api := seededAPI()
	store := NewStore(api)
	require.NoError(t, store.Load(context.Background()))

	created, err := store.AddUniversity(context.Background(), dto.CreateUniversityRequest{
		Name: "Sharif University", Description: "d", Type: "Technical",
	})
	require.NoError(t, err)

	u, ok := store.University(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Sharif University", u.Name)
	assert.Empty(t, u.Faculties)
	assert.Equal(t, 2, api.count("ListUniversities"))
}

func TestAddFacultyScopesDuplicateCheckToUniversity(t *testing.T) {
	api := seededAPI()
	store := NewStore(api)
	require.NoError(t, store.Load(context.Background()))

	_, err := store.AddFaculty(context.Background(), 1, "engineering")
	assert.ErrorIs(t, err, ErrDuplicateFaculty)

	_, err = store.AddFaculty(context.Background(), 99, "Engineering")
	assert.ErrorIs(t, err, ErrUnknownUniversity)
	assert.Equal(t, 0, api.count("CreateFaculty"))

	created, err := store.AddFaculty(context.Background(), 1, "Medicine")
	require.NoError(t, err)
	_, ok := store.Faculty(1, created.ID)
	assert.True(t, ok)
}

func TestAddSubjectScopesDuplicateCheckToFaculty(t *testing.T) {
	api := seededAPI()
	store := NewStore(api)
	require.NoError(t, store.Load(context.Background()))

	_, err := store.AddSubject(context.Background(), 1, 10, "ALGORITHMS")
	assert.ErrorIs(t, err, ErrDuplicateSubject)
	assert.Equal(t, 0, api.count("CreateSubject"))

	created, err := store.AddSubject(context.Background(), 1, 10, "Data Structures")
	require.NoError(t, err)
	sub, ok := store.Subject(1, 10, created.ID)
	require.True(t, ok)
	assert.Equal(t, "Data Structures", sub.Name)
}

func TestUpdateNoteRejectsDuplicateWithinSubject(t *testing.T) {
	api := seededAPI()
	api.notes = []dto.Note{
		{ID: 1, University: "Tehran University", Faculty: "Engineering", Subject: "Algorithms", Professor: "Dr. Ahmadi", Semester: "Fall 2024", FileName: "a.pdf"},
		{ID: 2, University: "Tehran University", Faculty: "Engineering", Subject: "Algorithms", Professor: "Dr. Ahmadi", Semester: "Fall 2024", FileName: "b.pdf"},
	}
	store := NewStore(api)
	require.NoError(t, store.Load(context.Background()))

	_, err := store.UpdateNote(context.Background(), 2, dto.UpdateNoteRequest{FileName: "A.PDF", Professor: "dr. ahmadi", Semester: "Fall 2024"})
	assert.ErrorIs(t, err, ErrDuplicateNote)
	assert.Equal(t, 0, api.count("UpdateNote"))

	// Renaming a note to its own current values is not a duplicate
	updated, err := store.UpdateNote(context.Background(), 1, dto.UpdateNoteRequest{FileName: "a.pdf", Professor: "Dr. Ahmadi", Semester: "Fall 2025"})
	require.NoError(t, err)
	assert.Equal(t, "Fall 2025", updated.Semester)

	n, ok := store.Note(1)
	require.True(t, ok)
	assert.Equal(t, "Fall 2025", n.Semester)
}

func TestUpdateNoteUnknownAndMissingFields(t *testing.T) {
	store := NewStore(seededAPI())

	_, err := store.UpdateNote(context.Background(), 1, dto.UpdateNoteRequest{FileName: "a", Professor: "p"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = store.UpdateNote(context.Background(), 42, dto.UpdateNoteRequest{FileName: "a", Professor: "p", Semester: "s"})
	assert.ErrorIs(t, err, ErrUnknownNote)
}

func TestDeleteNoteRefreshesNotes(t *testing.T) {
	api := seededAPI()
	api.notes = sampleNotes()
	store := NewStore(api)
	require.NoError(t, store.Load(context.Background()))

	require.NoError(t, store.DeleteNote(context.Background(), 2))

	_, ok := store.Note(2)
	assert.False(t, ok)
	assert.Len(t, store.Notes(), 3)
}
