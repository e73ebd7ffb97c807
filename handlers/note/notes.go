package note

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/database"
	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/services"
	"github.com/sahilchouksey/studyshare-api/utils/response"
	"github.com/sahilchouksey/studyshare-api/utils/validation"
)

// NoteHandler handles note-related requests
type NoteHandler struct {
	catalog   *services.CatalogService
	validator *validation.Validator
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(catalog *services.CatalogService) *NoteHandler {
	return &NoteHandler{
		catalog:   catalog,
		validator: validation.NewValidator(),
	}
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ListNotes handles GET /api/notes
func (h *NoteHandler) ListNotes(c *fiber.Ctx) error {
	notes, err := h.catalog.ListNotes(c.UserContext())
	if err != nil {
		log.Errorf("Error fetching notes: %v", err)
		return response.InternalServerError(c, "Failed to fetch notes")
	}

	return response.Success(c, notes)
}

// GetNote handles GET /api/notes/:id
func (h *NoteHandler) GetNote(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid note ID")
	}

	note, err := h.catalog.GetNote(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Note not found")
		}
		log.Errorf("Error fetching note %d: %v", id, err)
		return response.InternalServerError(c, "Failed to fetch note")
	}

	return response.Success(c, note)
}

// CreateNote handles POST /api/notes
func (h *NoteHandler) CreateNote(c *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	note, err := h.catalog.CreateNote(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, database.ErrParentNotFound) {
			return response.ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid subject ID.",
				"BAD_REQUEST", fmt.Sprintf("subject %d does not exist", req.SubjectID))
		}
		log.Errorf("Error creating note: %v", err)
		return response.InternalServerError(c, "Failed to create note.")
	}

	return response.Created(c, note)
}

// UpdateNote handles PUT /api/notes/:id
func (h *NoteHandler) UpdateNote(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid note ID")
	}

	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	note, err := h.catalog.UpdateNote(c.UserContext(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return response.NotFound(c, "Note not found")
		case errors.Is(err, services.ErrDuplicateNote):
			return response.Conflict(c, "A note with the same details and file name already exists.")
		}
		log.Errorf("Error updating note %d: %v", id, err)
		return response.InternalServerError(c, "Failed to update note.")
	}

	return response.SuccessWithMessage(c, "Note updated successfully", note)
}

// DeleteNote handles DELETE /api/notes/:id
func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid note ID")
	}

	if err := h.catalog.DeleteNote(c.UserContext(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Note not found")
		}
		log.Errorf("Error deleting note %d: %v", id, err)
		return response.InternalServerError(c, "Failed to delete note.")
	}

	return response.NoContent(c)
}

// DownloadNote handles GET /api/notes/:id/download
func (h *NoteHandler) DownloadNote(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid note ID")
	}

	file, err := h.catalog.DownloadNote(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Note not found")
		}
		log.Errorf("Error downloading note %d: %v", id, err)
		return response.InternalServerError(c, "Failed to download note.")
	}

	c.Set(fiber.HeaderContentType, file.FileType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.FileName))
	return c.Status(fiber.StatusOK).Send(file.Content)
}
