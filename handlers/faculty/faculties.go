package faculty

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/database"
	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/services"
	"github.com/sahilchouksey/studyshare-api/utils/response"
	"github.com/sahilchouksey/studyshare-api/utils/validation"
)

// FacultyHandler handles faculty-related requests
type FacultyHandler struct {
	catalog   *services.CatalogService
	validator *validation.Validator
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(catalog *services.CatalogService) *FacultyHandler {
	return &FacultyHandler{
		catalog:   catalog,
		validator: validation.NewValidator(),
	}
}

// ListFaculties handles GET /api/faculties
func (h *FacultyHandler) ListFaculties(c *fiber.Ctx) error {
	faculties, err := h.catalog.ListFaculties(c.UserContext())
	if err != nil {
		log.Errorf("Error fetching faculties: %v", err)
		return response.InternalServerError(c, "Failed to fetch faculties")
	}

	return response.Success(c, faculties)
}

// CreateFaculty handles POST /api/faculties
func (h *FacultyHandler) CreateFaculty(c *fiber.Ctx) error {
	var req dto.CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	faculty, err := h.catalog.CreateFaculty(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrParentNotFound):
			return response.BadRequest(c, "Invalid university ID.")
		case errors.Is(err, database.ErrDuplicateName):
			return response.Conflict(c, "This faculty already exists in this university.")
		}
		log.Errorf("Error creating faculty: %v", err)
		return response.InternalServerError(c, "Failed to create faculty.")
	}

	return response.Created(c, faculty)
}
