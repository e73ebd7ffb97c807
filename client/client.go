package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/sahilchouksey/studyshare-api/dto"
)

const (
	// DefaultBaseURL is used when STUDYSHARE_API_URL is unset
	DefaultBaseURL = "http://localhost:4000/api"
	// BaseURLEnv names the environment variable holding the API origin
	BaseURLEnv = "STUDYSHARE_API_URL"
)

// Client talks to the StudyShare REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	newKey     func() string
}

// Config holds configuration for the client
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new API client. Requests carry no timeout of their
// own, callers bound them through the context.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: config.HTTPClient,
		newKey:     uuid.NewString,
	}
}

// NewClientFromEnv creates a client for the URL in STUDYSHARE_API_URL
func NewClientFromEnv() *Client {
	return NewClient(Config{BaseURL: os.Getenv(BaseURLEnv)})
}

// BaseURL returns the API origin requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-2xx response decoded from the error envelope
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("studyshare API error (status %d, %s): %s", e.Status, e.Code, e.Message)
}

// IsStatus reports whether err is an APIError with the given HTTP status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// doRequest performs a JSON request and decodes the envelope's data into result
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Every write gets a fresh key so a replayed request is rejected once
	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Idempotency-Key", c.newKey())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("%s %s failed: %v", method, endpoint, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, respBody)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{
		Status:  status,
		Message: fmt.Sprintf("HTTP error! status: %d", status),
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		apiErr.Code = env.Error.Code
		if env.Error.Message != "" {
			apiErr.Message = env.Error.Message
		}
	}
	return apiErr
}

func (c *Client) ListUniversities(ctx context.Context) ([]dto.University, error) {
	var universities []dto.University
	if err := c.doRequest(ctx, http.MethodGet, "/universities", nil, &universities); err != nil {
		return nil, err
	}
	return universities, nil
}

func (c *Client) CreateUniversity(ctx context.Context, req dto.CreateUniversityRequest) (*dto.University, error) {
	var university dto.University
	if err := c.doRequest(ctx, http.MethodPost, "/universities", req, &university); err != nil {
		return nil, err
	}
	return &university, nil
}

func (c *Client) ListFaculties(ctx context.Context) ([]dto.Faculty, error) {
	var faculties []dto.Faculty
	if err := c.doRequest(ctx, http.MethodGet, "/faculties", nil, &faculties); err != nil {
		return nil, err
	}
	return faculties, nil
}

func (c *Client) CreateFaculty(ctx context.Context, req dto.CreateFacultyRequest) (*dto.FacultyNode, error) {
	var faculty dto.FacultyNode
	if err := c.doRequest(ctx, http.MethodPost, "/faculties", req, &faculty); err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (c *Client) ListSubjects(ctx context.Context) ([]dto.Subject, error) {
	var subjects []dto.Subject
	if err := c.doRequest(ctx, http.MethodGet, "/subjects", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectRecord, error) {
	var subject dto.SubjectRecord
	if err := c.doRequest(ctx, http.MethodPost, "/subjects", req, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]dto.Note, error) {
	var notes []dto.Note
	if err := c.doRequest(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id uint) (*dto.Note, error) {
	var note dto.Note
	if err := c.doRequest(ctx, http.MethodGet, noteEndpoint(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*dto.Note, error) {
	var note dto.Note
	if err := c.doRequest(ctx, http.MethodPost, "/notes", req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id uint, req dto.UpdateNoteRequest) (*dto.Note, error) {
	var note dto.Note
	if err := c.doRequest(ctx, http.MethodPut, noteEndpoint(id), req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id uint) error {
	return c.doRequest(ctx, http.MethodDelete, noteEndpoint(id), nil, nil)
}

// DownloadNote returns the raw file bytes and their content type
func (c *Client) DownloadNote(ctx context.Context, id uint) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+noteEndpoint(id)+"/download", nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("download of note %d failed: %v", id, err)
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", decodeError(resp.StatusCode, body)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func noteEndpoint(id uint) string {
	return "/notes/" + strconv.FormatUint(uint64(id), 10)
}
