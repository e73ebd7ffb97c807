package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/sahilchouksey/studyshare-api/database"
	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/router"
	"github.com/sahilchouksey/studyshare-api/services"
	"github.com/sahilchouksey/studyshare-api/utils/cache"
	"github.com/sahilchouksey/studyshare-api/utils/metrics"
	"github.com/sahilchouksey/studyshare-api/utils/notefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer serves the real route table over an in-memory store
func newServer(t *testing.T) *Client {
	t.Helper()
	c := cache.NewMemoryCache(time.Minute)
	m := metrics.New()
	app := fiber.New()
	router.SetupRoutes(app, router.Dependencies{
		Catalog:        services.NewCatalogService(database.NewMemoryStore(), c, m, time.Minute),
		Cache:          c,
		Metrics:        m,
		IdempotencyTTL: time.Minute,
	})

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/api/"})
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	uni, err := c.CreateUniversity(ctx, dto.CreateUniversityRequest{Name: "Tehran University", Description: "d", Type: "Technical"})
	require.NoError(t, err)
	assert.NotNil(t, uni.Faculties)

	fac, err := c.CreateFaculty(ctx, dto.CreateFacultyRequest{Name: "Engineering", UniversityID: uni.ID})
	require.NoError(t, err)
	sub, err := c.CreateSubject(ctx, dto.CreateSubjectRequest{Name: "Algorithms", FacultyID: fac.ID})
	require.NoError(t, err)

	content := []byte("quicksort notes")
	note, err := c.CreateNote(ctx, dto.CreateNoteRequest{
		FileName:  "quicksort.txt",
		FileType:  "text/plain",
		FileSize:  int64(len(content)),
		FileData:  notefile.EncodeDataURI("text/plain", content),
		Professor: "Dr. Ahmadi",
		Semester:  "Fall 2024",
		SubjectID: sub.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tehran University", note.University)

	universities, err := c.ListUniversities(ctx)
	require.NoError(t, err)
	require.Len(t, universities, 1)
	assert.Equal(t, "Algorithms", universities[0].Faculties[0].Subjects[0].Name)

	faculties, err := c.ListFaculties(ctx)
	require.NoError(t, err)
	assert.Len(t, faculties, 1)

	subjects, err := c.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Len(t, subjects[0].Notes, 1)

	notes, err := c.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	got, err := c.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, *note, *got)

	data, contentType, err := c.DownloadNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, "text/plain", contentType)

	updated, err := c.UpdateNote(ctx, note.ID, dto.UpdateNoteRequest{FileName: "qs.txt", Professor: "Dr. Ahmadi", Semester: "Fall 2024"})
	require.NoError(t, err)
	assert.Equal(t, "qs.txt", updated.FileName)

	require.NoError(t, c.DeleteNote(ctx, note.ID))
	_, err = c.GetNote(ctx, note.ID)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestClientDecodesErrorEnvelope(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	_, err := c.CreateFaculty(ctx, dto.CreateFacultyRequest{Name: "Law", UniversityID: 12})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
	assert.Equal(t, "Invalid university ID.", apiErr.Message)
}

func TestClientSendsFreshIdempotencyKeys(t *testing.T) {
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":1,"name":"A","facultyId":2}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	for i := 0; i < 2; i++ {
		sub, err := c.CreateSubject(context.Background(), dto.CreateSubjectRequest{Name: "A", FacultyID: 2})
		require.NoError(t, err)
		assert.Equal(t, uint(1), sub.ID)
	}

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEqual(t, keys[0], keys[1])
}

func TestClientNonEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}).ListNotes(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "HTTP error! status: 502", apiErr.Message)
}

func TestNewClientFromEnv(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	assert.Equal(t, DefaultBaseURL, NewClientFromEnv().BaseURL())

	t.Setenv(BaseURLEnv, "https://studyshare.example/api/")
	assert.Equal(t, "https://studyshare.example/api", NewClientFromEnv().BaseURL())
}
